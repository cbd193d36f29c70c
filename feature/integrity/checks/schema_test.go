package checks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gamedata-sync/feature/gamedata/models"
)

func setupTestDB(t *testing.T, dbName string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Item{},
		&models.StatusEffect{},
		&models.ArmorSet{},
		&models.ItemStatusEffect{},
		&models.ArmorSetItem{},
		&models.ArmorSetEffect{},
	))
	return db
}

func TestCheckSchema_Provisioned(t *testing.T) {
	db := setupTestDB(t, "schema_ok")

	report, err := CheckSchema(db)
	require.NoError(t, err)

	assert.True(t, report.Matched)
	assert.Len(t, report.Tables, 6)
	for table, tbl := range report.Tables {
		assert.Equal(t, "ok", tbl.Status, table)
		assert.Empty(t, tbl.MissingColumns, table)
	}
}

func TestCheckSchema_MissingColumn(t *testing.T) {
	db := setupTestDB(t, "schema_drift")
	require.NoError(t, db.Exec("ALTER TABLE Items DROP COLUMN durability").Error)

	report, err := CheckSchema(db)
	require.NoError(t, err)

	assert.False(t, report.Matched)
	items := report.Tables["Items"]
	assert.Equal(t, "error", items.Status)
	assert.Contains(t, items.MissingColumns, "durability")
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db := setupTestDB(t, "schema_notable")
	require.NoError(t, db.Exec("DROP TABLE ArmorSets").Error)

	report, err := CheckSchema(db)
	require.NoError(t, err)

	assert.False(t, report.Matched)
	sets := report.Tables["ArmorSets"]
	assert.Equal(t, "error", sets.Status)
	assert.Contains(t, sets.MissingColumns, "key")
	assert.Contains(t, sets.MissingColumns, "class")
}

func TestCheckSchema_NilDB(t *testing.T) {
	_, err := CheckSchema(nil)
	assert.Error(t, err)
}
