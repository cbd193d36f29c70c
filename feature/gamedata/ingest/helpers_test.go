package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gamedata-sync/feature/gamedata/resolve"
)

// setupTestDB creates an in-memory SQLite DB with the provisioned schema.
func setupTestDB(t *testing.T, dbName string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE Items (
			key TEXT PRIMARY KEY,
			name TEXT,
			icon_path TEXT,
			tier INTEGER,
			slot TEXT,
			durability REAL,
			flat_damage_reduction REAL,
			percentage_damage_reduction REAL
		)`,
		`CREATE TABLE StatusEffects (
			key TEXT PRIMARY KEY,
			name TEXT,
			icon_path TEXT
		)`,
		`CREATE TABLE ArmorSets (
			key TEXT PRIMARY KEY,
			name TEXT,
			tier INTEGER,
			class TEXT
		)`,
		`CREATE TABLE Item_StatusEffects (
			item_key TEXT,
			effect_key TEXT,
			is_hidden INTEGER DEFAULT 0,
			PRIMARY KEY (item_key, effect_key)
		)`,
		`CREATE TABLE ArmorSet_Items (
			set_key TEXT,
			item_key TEXT,
			PRIMARY KEY (set_key, item_key)
		)`,
		`CREATE TABLE ArmorSet_Effects (
			set_key TEXT,
			effect_key TEXT,
			PRIMARY KEY (set_key, effect_key)
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

const testLocalization = `[
  {
    "Properties": {
      "StringTables": [
        {
          "Key": "game/items",
          "Value": {
            "Entries": [
              {"Key": "100", "Value": {"DefaultText": "Iron Helmet"}},
              {"Key": "101", "Value": {"DefaultText": "Iron Greaves"}},
              {"Key": "102", "Value": {"DefaultText": "Oak Shield"}}
            ]
          }
        },
        {
          "Key": "game/statuseffects",
          "Value": {
            "Entries": [
              {"Key": "7", "Value": {"DefaultText": "Set Bonus"}}
            ]
          }
        }
      ]
    }
  }
]`

func newTestResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Text_enus.json")
	require.NoError(t, os.WriteFile(path, []byte(testLocalization), 0o644))

	resolver, err := resolve.NewResolver(path, "/media/")
	require.NoError(t, err)
	return resolver
}

// writeDoc writes a staged document and returns its absolute path.
func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
