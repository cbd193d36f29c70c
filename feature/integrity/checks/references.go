package checks

import (
	"context"
	"fmt"

	"gamedata-sync/core/utils"

	"gorm.io/gorm"
)

// DanglingRef describes one association row pointing at a missing parent.
type DanglingRef struct {
	// Table and Column locate the dangling foreign key.
	Table  string `json:"table"`
	Column string `json:"column"`
	// Key is the orphaned key value.
	Key string `json:"key"`
	// Owner is the row's other key, for locating the offending row.
	Owner string `json:"owner"`
}

// ReferenceReport is the outcome of a referential consistency check.
type ReferenceReport struct {
	Clean    bool          `json:"clean"`
	Dangling []DanglingRef `json:"dangling"`
}

// referenceChecks covers every foreign key of the association tables.
var referenceChecks = []struct {
	table        string
	column       string
	parentTable  string
	parentColumn string
	ownerColumn  string
}{
	{"Item_StatusEffects", "item_key", "Items", "key", "effect_key"},
	{"Item_StatusEffects", "effect_key", "StatusEffects", "key", "item_key"},
	{"ArmorSet_Items", "set_key", "ArmorSets", "key", "item_key"},
	{"ArmorSet_Items", "item_key", "Items", "key", "set_key"},
	{"ArmorSet_Effects", "set_key", "ArmorSets", "key", "effect_key"},
	{"ArmorSet_Effects", "effect_key", "StatusEffects", "key", "set_key"},
}

// CheckReferences scans the association tables for rows whose keys have no
// parent row. The loaders never enforce foreign keys at write time, so a
// relational pass over stale core rows can leave these behind.
func CheckReferences(ctx context.Context, db *gorm.DB) (*ReferenceReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ReferenceReport{Dangling: []DanglingRef{}}

	for _, check := range referenceChecks {
		query := fmt.Sprintf(
			"SELECT c.%s, c.%s FROM %s c LEFT JOIN %s p ON c.%s = p.%s WHERE p.%s IS NULL",
			check.column, check.ownerColumn, check.table,
			check.parentTable, check.column, check.parentColumn, check.parentColumn)

		rows, err := db.WithContext(ctx).Raw(query).Rows()
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s.%s: %w", check.table, check.column, err)
		}

		for rows.Next() {
			var key, owner interface{}
			if err := rows.Scan(&key, &owner); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to read %s row: %w", check.table, err)
			}
			report.Dangling = append(report.Dangling, DanglingRef{
				Table:  check.table,
				Column: check.column,
				Key:    utils.ToString(key),
				Owner:  utils.ToString(owner),
			})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	report.Clean = len(report.Dangling) == 0
	return report, nil
}
