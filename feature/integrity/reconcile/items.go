package reconcile

import (
	"context"
	"encoding/json"
	"fmt"

	"gamedata-sync/core/reconcile"
	"gamedata-sync/feature/gamedata/ingest"
	"gamedata-sync/feature/gamedata/models"
	"gamedata-sync/feature/gamedata/resolve"

	"gorm.io/gorm"
)

// ItemsAdapter implements the reconcile.Adapter interface for items.
// Source rows are mapped with the same rules the ingest loader applies, so
// a mismatch always means the database has drifted from the documents.
type ItemsAdapter struct {
	resolver *resolve.Resolver
}

// NewItemsAdapter creates a new items adapter.
func NewItemsAdapter(resolver *resolve.Resolver) *ItemsAdapter {
	return &ItemsAdapter{resolver: resolver}
}

// Name returns the unique name of this adapter.
func (a *ItemsAdapter) Name() string {
	return "items"
}

// LoadDBIndex loads all item rows indexed by key.
func (a *ItemsAdapter) LoadDBIndex(ctx context.Context, db *gorm.DB) (map[string]reconcile.DBItem, error) {
	index := make(map[string]reconcile.DBItem)
	if db == nil {
		return index, nil
	}

	var rows []models.Item
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	for _, row := range rows {
		index[row.Key] = row
	}
	return index, nil
}

// LoadSourceIndex parses every staged items document and returns the
// normalized rows indexed by key.
func (a *ItemsAdapter) LoadSourceIndex(ctx context.Context, stagingRoot string) (map[string]reconcile.SourceItem, error) {
	paths, err := findSourceDocs(stagingRoot, "Table_AllItems.json")
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.SourceItem)
	for _, path := range paths {
		table, err := models.ReadDataTable(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read items document %s: %w", path, err)
		}
		for key, raw := range table.Rows {
			if key == "" {
				continue
			}
			var row models.ItemRow
			if err := json.Unmarshal(raw, &row); err != nil {
				continue
			}
			index[key] = ingest.BuildItem(key, &row, a.resolver)
		}
	}
	return index, nil
}

// ResolveName returns the display name for an item.
func (a *ItemsAdapter) ResolveName(dbItem reconcile.DBItem, srcItem reconcile.SourceItem) string {
	if dbItem != nil {
		return dbItem.(models.Item).Name
	}
	if srcItem != nil {
		return srcItem.(models.Item).Name
	}
	return ""
}

// MediaPath returns the item's icon object path.
func (a *ItemsAdapter) MediaPath(dbItem reconcile.DBItem, srcItem reconcile.SourceItem) string {
	if dbItem != nil {
		return dbItem.(models.Item).IconPath
	}
	if srcItem != nil {
		return srcItem.(models.Item).IconPath
	}
	return ""
}

// CompareFields compares an item's database row against its normalized
// source row and returns mismatch descriptions.
func (a *ItemsAdapter) CompareFields(dbItem reconcile.DBItem, srcItem reconcile.SourceItem) []string {
	db := dbItem.(models.Item)
	src := srcItem.(models.Item)

	var mismatches []string
	if db.Name != src.Name {
		mismatches = append(mismatches, fmt.Sprintf("name: source='%s' db='%s'", src.Name, db.Name))
	}
	if db.IconPath != src.IconPath {
		mismatches = append(mismatches, fmt.Sprintf("icon_path: source='%s' db='%s'", src.IconPath, db.IconPath))
	}
	if db.Tier != src.Tier {
		mismatches = append(mismatches, fmt.Sprintf("tier: source=%d db=%d", src.Tier, db.Tier))
	}
	if db.Slot != src.Slot {
		mismatches = append(mismatches, fmt.Sprintf("slot: source='%s' db='%s'", src.Slot, db.Slot))
	}
	if db.Durability != src.Durability {
		mismatches = append(mismatches, fmt.Sprintf("durability: source=%v db=%v", src.Durability, db.Durability))
	}
	if db.FlatDamageReduction != src.FlatDamageReduction {
		mismatches = append(mismatches, fmt.Sprintf("flat_damage_reduction: source=%v db=%v", src.FlatDamageReduction, db.FlatDamageReduction))
	}
	if db.PercentageDamageReduction != src.PercentageDamageReduction {
		mismatches = append(mismatches, fmt.Sprintf("percentage_damage_reduction: source=%v db=%v", src.PercentageDamageReduction, db.PercentageDamageReduction))
	}
	return mismatches
}
