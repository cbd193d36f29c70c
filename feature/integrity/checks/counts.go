package checks

import (
	"context"
	"fmt"

	"gamedata-sync/core/utils"
	"gamedata-sync/feature/gamedata/models"

	"gorm.io/gorm"
)

// CountsReport summarizes the synchronized store's population.
type CountsReport struct {
	// Tables maps each provisioned table to its row count.
	Tables map[string]int `json:"tables"`
	// VisibleEffectEdges and HiddenEffectEdges split the item effect
	// associations by visibility.
	VisibleEffectEdges int `json:"visible_effect_edges"`
	HiddenEffectEdges  int `json:"hidden_effect_edges"`
	// ItemIconCoverage and EffectIconCoverage are the fractions of rows
	// carrying a resolved icon path, between 0 and 1. A drop here usually
	// means an export changed its asset roots.
	ItemIconCoverage   float64 `json:"item_icon_coverage"`
	EffectIconCoverage float64 `json:"effect_icon_coverage"`
}

// CheckCounts reports row counts per table, the visibility split of the item
// effect associations, and icon coverage for the entities that carry one.
// Aggregates come back in driver-specific types (int64 on sqlite, []byte on
// mysql), so every scanned value goes through the conversion helpers.
func CheckCounts(ctx context.Context, db *gorm.DB) (*CountsReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &CountsReport{Tables: make(map[string]int, len(checkedModels))}

	for _, model := range checkedModels {
		tabler, ok := model.(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %T does not implement TableName", model)
		}
		tableName := tabler.TableName()

		var count interface{}
		row := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM " + tableName).Row()
		if err := row.Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", tableName, err)
		}
		report.Tables[tableName] = utils.ToInt(count)
	}

	rows, err := db.WithContext(ctx).
		Raw("SELECT is_hidden, COUNT(*) FROM Item_StatusEffects GROUP BY is_hidden").Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to scan effect associations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var hidden, count interface{}
		if err := rows.Scan(&hidden, &count); err != nil {
			return nil, fmt.Errorf("failed to read association count: %w", err)
		}
		if utils.ToBool(hidden) {
			report.HiddenEffectEdges = utils.ToInt(count)
		} else {
			report.VisibleEffectEdges = utils.ToInt(count)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	coverage := []struct {
		table  string
		target *float64
	}{
		{models.Item{}.TableName(), &report.ItemIconCoverage},
		{models.StatusEffect{}.TableName(), &report.EffectIconCoverage},
	}
	for _, c := range coverage {
		// AVG over an empty table is NULL, which converts to 0.
		query := fmt.Sprintf(
			"SELECT AVG(CASE WHEN icon_path IS NOT NULL AND icon_path <> '' THEN 1.0 ELSE 0.0 END) FROM %s",
			c.table)
		var ratio interface{}
		if err := db.WithContext(ctx).Raw(query).Row().Scan(&ratio); err != nil {
			return nil, fmt.Errorf("failed to compute icon coverage for %s: %w", c.table, err)
		}
		*c.target = utils.ToFloat(ratio)
	}

	return report, nil
}
