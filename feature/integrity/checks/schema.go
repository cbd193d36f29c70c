package checks

import (
	"fmt"
	"reflect"
	"strings"

	"gamedata-sync/core/database"
	"gamedata-sync/feature/gamedata/models"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport describes one table's verification outcome.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// checkedModels are the provisioned tables, in dependency order.
var checkedModels = []interface{}{
	models.Item{},
	models.StatusEffect{},
	models.ArmorSet{},
	models.ItemStatusEffect{},
	models.ArmorSetItem{},
	models.ArmorSetEffect{},
}

// CheckSchema verifies the database schema using the GORM models as the
// source of truth. A missing table reports all of its columns as missing.
func CheckSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
		Matched: true,
	}

	for _, model := range checkedModels {
		tabler, ok := model.(interface{ TableName() string })
		if !ok {
			return nil, fmt.Errorf("model %T does not implement TableName", model)
		}
		tableName := tabler.TableName()

		missing, err := database.VerifyColumns(db, tableName, expectedColumns(model))
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", tableName, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: missing, Status: "ok"}
		if len(missing) > 0 {
			tbl.Status = "error"
			report.Matched = false
		}
		report.Tables[tableName] = tbl
	}

	return report, nil
}

// expectedColumns derives the column list from a model's GORM tags.
func expectedColumns(model interface{}) []string {
	val := reflect.TypeOf(model)
	columns := make([]string, 0, val.NumField())
	for i := 0; i < val.NumField(); i++ {
		if col := parseGormColumn(val.Field(i).Tag.Get("gorm")); col != "" {
			columns = append(columns, col)
		}
	}
	return columns
}

func parseGormColumn(tag string) string {
	for _, part := range strings.Split(tag, ";") {
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}
