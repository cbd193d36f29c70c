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

// StatusEffectsAdapter implements the reconcile.Adapter interface for
// status effects.
type StatusEffectsAdapter struct {
	resolver *resolve.Resolver
}

// NewStatusEffectsAdapter creates a new status effects adapter.
func NewStatusEffectsAdapter(resolver *resolve.Resolver) *StatusEffectsAdapter {
	return &StatusEffectsAdapter{resolver: resolver}
}

// Name returns the unique name of this adapter.
func (a *StatusEffectsAdapter) Name() string {
	return "status_effects"
}

// LoadDBIndex loads all status effect rows indexed by key.
func (a *StatusEffectsAdapter) LoadDBIndex(ctx context.Context, db *gorm.DB) (map[string]reconcile.DBItem, error) {
	index := make(map[string]reconcile.DBItem)
	if db == nil {
		return index, nil
	}

	var rows []models.StatusEffect
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load status effects: %w", err)
	}
	for _, row := range rows {
		index[row.Key] = row
	}
	return index, nil
}

// LoadSourceIndex parses every staged status effects document and returns
// the normalized rows indexed by key.
func (a *StatusEffectsAdapter) LoadSourceIndex(ctx context.Context, stagingRoot string) (map[string]reconcile.SourceItem, error) {
	paths, err := findSourceDocs(stagingRoot, "Table_StatusEffects.json")
	if err != nil {
		return nil, err
	}

	index := make(map[string]reconcile.SourceItem)
	for _, path := range paths {
		table, err := models.ReadDataTable(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read status effects document %s: %w", path, err)
		}
		for key, raw := range table.Rows {
			if key == "" {
				continue
			}
			var row models.StatusEffectRow
			if err := json.Unmarshal(raw, &row); err != nil {
				continue
			}
			index[key] = ingest.BuildStatusEffect(key, &row, a.resolver)
		}
	}
	return index, nil
}

// ResolveName returns the display name for a status effect.
func (a *StatusEffectsAdapter) ResolveName(dbItem reconcile.DBItem, srcItem reconcile.SourceItem) string {
	if dbItem != nil {
		return dbItem.(models.StatusEffect).Name
	}
	if srcItem != nil {
		return srcItem.(models.StatusEffect).Name
	}
	return ""
}

// MediaPath returns the effect's icon object path.
func (a *StatusEffectsAdapter) MediaPath(dbItem reconcile.DBItem, srcItem reconcile.SourceItem) string {
	if dbItem != nil {
		return dbItem.(models.StatusEffect).IconPath
	}
	if srcItem != nil {
		return srcItem.(models.StatusEffect).IconPath
	}
	return ""
}

// CompareFields compares a status effect's database row against its
// normalized source row.
func (a *StatusEffectsAdapter) CompareFields(dbItem reconcile.DBItem, srcItem reconcile.SourceItem) []string {
	db := dbItem.(models.StatusEffect)
	src := srcItem.(models.StatusEffect)

	var mismatches []string
	if db.Name != src.Name {
		mismatches = append(mismatches, fmt.Sprintf("name: source='%s' db='%s'", src.Name, db.Name))
	}
	if db.IconPath != src.IconPath {
		mismatches = append(mismatches, fmt.Sprintf("icon_path: source='%s' db='%s'", src.IconPath, db.IconPath))
	}
	return mismatches
}
