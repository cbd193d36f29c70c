package ingest

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gamedata-sync/feature/gamedata/models"
)

// armorClasses maps class-signature effect keys to the class an armor set
// belongs to. The effects are hidden on the items, so class can only be
// inferred this way.
var armorClasses = map[string]string{
	"RogueFinisherCriticals":    "Rogue",
	"FighterMajorThreat":        "Fighter",
	"RangerWeakPointDamage":     "Ranger",
	"MageStaffStaminaReduction": "Mage",
}

// setNameSuffix is appended to every derived set name.
const setNameSuffix = " Armor"

// setNameFallback is stored when no common name can be derived.
const setNameFallback = "Unknown"

// ArmorSetLoader derives armor sets from their member items. It runs in the
// relational phase because every attribute it stores is computed from rows
// the core phase wrote.
type ArmorSetLoader struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewArmorSetLoader creates the armor set loader.
func NewArmorSetLoader(db *gorm.DB, logger *zap.Logger) *ArmorSetLoader {
	return &ArmorSetLoader{db: db, logger: logger}
}

func (l *ArmorSetLoader) Name() string { return "armor_sets" }

func (l *ArmorSetLoader) Phase() Phase { return PhaseRelational }

func (l *ArmorSetLoader) Matches(relPath string) bool {
	return strings.Contains(relPath, "Table_ItemSets.json")
}

// Load parses an item sets document, derives each set's display name, tier,
// and class from the already-loaded member items, and replaces the set's
// membership edges.
func (l *ArmorSetLoader) Load(path string) (int, error) {
	table, err := models.ReadDataTable(path)
	if err != nil {
		l.logger.Warn("Skipping unreadable item sets document",
			zap.String("path", path),
			zap.Error(err))
		return 0, nil
	}

	count := 0
	for key, raw := range table.Rows {
		if key == "" {
			continue
		}

		var row models.ItemSetRow
		if err := json.Unmarshal(raw, &row); err != nil {
			l.logger.Warn("Skipping malformed item set row",
				zap.String("key", key),
				zap.Error(err))
			continue
		}

		itemKeys := rowNames(row.Items)
		effectKeys := rowNames(row.StatusEffects)

		set, err := l.deriveSet(key, itemKeys)
		if err != nil {
			return count, err
		}

		err = l.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(upsertByKey).Create(set).Error; err != nil {
				return err
			}

			if err := tx.Where("set_key = ?", key).Delete(&models.ArmorSetItem{}).Error; err != nil {
				return err
			}
			for _, itemKey := range itemKeys {
				edge := models.ArmorSetItem{SetKey: key, ItemKey: itemKey}
				if err := tx.Clauses(upsertByKey).Create(&edge).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("set_key = ?", key).Delete(&models.ArmorSetEffect{}).Error; err != nil {
				return err
			}
			for _, effectKey := range effectKeys {
				edge := models.ArmorSetEffect{SetKey: key, EffectKey: effectKey}
				if err := tx.Clauses(upsertByKey).Create(&edge).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return count, err
		}
		count++
	}

	l.logger.Info("Processed item sets",
		zap.String("path", path),
		zap.Int("rows", count))
	return count, nil
}

// deriveSet computes the aggregate attributes no single source row contains.
// Member items are always considered in document order so the derivation is
// deterministic.
func (l *ArmorSetLoader) deriveSet(key string, itemKeys []string) (*models.ArmorSet, error) {
	var members []models.Item
	if len(itemKeys) > 0 {
		if err := l.db.Where("key IN ?", itemKeys).Find(&members).Error; err != nil {
			return nil, err
		}
	}
	byKey := make(map[string]models.Item, len(members))
	for _, item := range members {
		byKey[item.Key] = item
	}

	ordered := make([]models.Item, 0, len(members))
	for _, itemKey := range itemKeys {
		if item, ok := byKey[itemKey]; ok {
			ordered = append(ordered, item)
		}
	}

	class, err := l.deriveClass(itemKeys)
	if err != nil {
		return nil, err
	}

	return &models.ArmorSet{
		Key:   key,
		Name:  deriveName(ordered) + setNameSuffix,
		Tier:  deriveTier(ordered),
		Class: class,
	}, nil
}

// deriveName recovers the shared naming prefix/infix across per-slot item
// names: the ordered tokens of the first named member that appear in every
// other member's name ("Iron Helmet" + "Iron Greaves" -> "Iron").
func deriveName(members []models.Item) string {
	var tokenSets []map[string]struct{}
	var seed []string
	for _, item := range members {
		if item.Name == "" {
			continue
		}
		tokens := strings.Fields(item.Name)
		if seed == nil {
			seed = tokens
		}
		set := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			set[tok] = struct{}{}
		}
		tokenSets = append(tokenSets, set)
	}
	if seed == nil {
		return setNameFallback
	}

	var common []string
	for _, tok := range seed {
		shared := true
		for _, set := range tokenSets[1:] {
			if _, ok := set[tok]; !ok {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, tok)
		}
	}
	if len(common) == 0 {
		return setNameFallback
	}
	return strings.Join(common, " ")
}

// deriveTier returns the members' tier when they agree, the minimum when
// they disagree, and the unknown sentinel when no member has a known tier.
func deriveTier(members []models.Item) int {
	distinct := make(map[int]struct{})
	min := models.TierUnknown
	for _, item := range members {
		if item.Tier <= 0 {
			continue
		}
		distinct[item.Tier] = struct{}{}
		if min == models.TierUnknown || item.Tier < min {
			min = item.Tier
		}
	}
	if len(distinct) == 0 {
		return models.TierUnknown
	}
	return min
}

// deriveClass scans the effects granted by member items, in document order of
// the items, for a class-signature effect. Hidden effects participate.
func (l *ArmorSetLoader) deriveClass(itemKeys []string) (string, error) {
	if len(itemKeys) == 0 {
		return "", nil
	}

	var assocs []models.ItemStatusEffect
	if err := l.db.Where("item_key IN ?", itemKeys).
		Order("effect_key").
		Find(&assocs).Error; err != nil {
		return "", err
	}

	byItem := make(map[string][]string)
	for _, assoc := range assocs {
		byItem[assoc.ItemKey] = append(byItem[assoc.ItemKey], assoc.EffectKey)
	}

	for _, itemKey := range itemKeys {
		for _, effectKey := range byItem[itemKey] {
			if class, ok := armorClasses[effectKey]; ok {
				return class, nil
			}
		}
	}
	return "", nil
}

func rowNames(refs []models.RowRef) []string {
	var keys []string
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if ref.RowName == "" {
			continue
		}
		if _, dup := seen[ref.RowName]; dup {
			continue
		}
		seen[ref.RowName] = struct{}{}
		keys = append(keys, ref.RowName)
	}
	return keys
}
