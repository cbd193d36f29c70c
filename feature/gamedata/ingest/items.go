package ingest

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gamedata-sync/feature/gamedata/models"
	"gamedata-sync/feature/gamedata/resolve"
)

// slotPrefix is the enum namespace the exporter leaves on equipment slots.
const slotPrefix = "EEquipmentSlot::"

// ItemLoader ingests Table_AllItems documents.
type ItemLoader struct {
	db       *gorm.DB
	resolver *resolve.Resolver
	logger   *zap.Logger
}

// NewItemLoader creates the item loader.
func NewItemLoader(db *gorm.DB, resolver *resolve.Resolver, logger *zap.Logger) *ItemLoader {
	return &ItemLoader{db: db, resolver: resolver, logger: logger}
}

func (l *ItemLoader) Name() string { return "items" }

func (l *ItemLoader) Phase() Phase { return PhaseCore }

func (l *ItemLoader) Matches(relPath string) bool {
	return strings.Contains(relPath, "Table_AllItems.json")
}

// Load parses an items document. Each item row is upserted together with a
// full rebuild of its granted-effect associations in one transaction, so a
// concurrent reader never sees an item with a partially replaced effect set
// and effects removed from the document do not survive a re-ingest.
func (l *ItemLoader) Load(path string) (int, error) {
	table, err := models.ReadDataTable(path)
	if err != nil {
		l.logger.Warn("Skipping unreadable items document",
			zap.String("path", path),
			zap.Error(err))
		return 0, nil
	}

	count := 0
	for key, raw := range table.Rows {
		if key == "" {
			continue
		}

		var row models.ItemRow
		if err := json.Unmarshal(raw, &row); err != nil {
			l.logger.Warn("Skipping malformed item row",
				zap.String("key", key),
				zap.Error(err))
			continue
		}

		item := BuildItem(key, &row, l.resolver)
		assocs := buildAssociations(key, row.EquippableData)

		err := l.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Clauses(upsertByKey).Create(&item).Error; err != nil {
				return err
			}
			// Delete-then-insert so the association set exactly mirrors the
			// document's current content.
			if err := tx.Where("item_key = ?", key).Delete(&models.ItemStatusEffect{}).Error; err != nil {
				return err
			}
			if len(assocs) == 0 {
				return nil
			}
			return tx.Clauses(upsertByKey).Create(&assocs).Error
		})
		if err != nil {
			return count, err
		}
		count++
	}

	l.logger.Info("Processed items",
		zap.String("path", path),
		zap.Int("rows", count))
	return count, nil
}

// BuildItem maps one source row to its normalized record. It is shared with
// the reconcile adapters so that field mapping rules live in one place.
func BuildItem(key string, row *models.ItemRow, resolver *resolve.Resolver) models.Item {
	tier := models.TierUnknown
	if row.Tier != nil {
		tier = *row.Tier
	}

	slot := row.Slot
	if slot == "" {
		slot = "None"
	}
	slot = strings.TrimPrefix(slot, slotPrefix)

	item := models.Item{
		Key:      key,
		Name:     resolver.DisplayText(row.LocalizedDisplayName),
		IconPath: resolver.AssetPath(row.Icon.AssetPathName, true),
		Tier:     tier,
		Slot:     slot,
	}
	if eq := row.EquippableData; eq != nil {
		item.Durability = eq.Durability
		item.FlatDamageReduction = eq.FlatDamageReduction
		item.PercentageDamageReduction = eq.PercentageDamageReduction
	}
	return item
}

func buildAssociations(key string, eq *models.EquippableData) []models.ItemStatusEffect {
	if eq == nil {
		return nil
	}

	var assocs []models.ItemStatusEffect
	seen := make(map[string]struct{})
	add := func(refs []models.RowRef, hidden bool) {
		for _, ref := range refs {
			if ref.RowName == "" {
				continue
			}
			// The composite key is (item, effect); if an effect appears in
			// both lists the hidden entry wins, matching upsert order.
			if _, dup := seen[ref.RowName]; dup {
				for i := range assocs {
					if assocs[i].EffectKey == ref.RowName {
						assocs[i].IsHidden = hidden
					}
				}
				continue
			}
			seen[ref.RowName] = struct{}{}
			assocs = append(assocs, models.ItemStatusEffect{
				ItemKey:   key,
				EffectKey: ref.RowName,
				IsHidden:  hidden,
			})
		}
	}
	add(eq.StatusEffects, false)
	add(eq.HiddenStatusEffects, true)
	return assocs
}
