package integrity_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gamedata-sync/feature/gamedata/models"
	"gamedata-sync/feature/integrity"
	"gamedata-sync/feature/integrity/checks"
)

func setupTestApp(t *testing.T, dbName string) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, client, storageCfg, dataCfg := setupFixture(t, dbName)

	app := fiber.New()
	feature := integrity.NewFeature(db, client, storageCfg, dataCfg, zap.NewNop())
	assert.Equal(t, "integrity", feature.Name())
	assert.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, db
}

func TestHandleSchemaCheck(t *testing.T) {
	app, _ := setupTestApp(t, "ih_schema")

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/schema", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var report checks.SchemaReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.True(t, report.Matched)
	assert.Len(t, report.Tables, 6)
}

func TestHandleReferenceCheck(t *testing.T) {
	app, db := setupTestApp(t, "ih_refs")
	require.NoError(t, db.Create(&models.ArmorSetEffect{SetKey: "Ghost", EffectKey: "AlsoGhost"}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/references", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var report checks.ReferenceReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.False(t, report.Clean)
	assert.Len(t, report.Dangling, 2)
}

func TestHandleCountsCheck(t *testing.T) {
	app, db := setupTestApp(t, "ih_counts")
	require.NoError(t, db.Create(&models.Item{Key: "Helmet", Name: "Iron Helmet", IconPath: "/media/UI/Icons/T_UI_Helmet.png"}).Error)
	require.NoError(t, db.Create(&models.ItemStatusEffect{ItemKey: "Helmet", EffectKey: "SetBonus", IsHidden: true}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/counts", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var report checks.CountsReport
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, 1, report.Tables["Items"])
	assert.Equal(t, 1, report.HiddenEffectEdges)
	assert.InDelta(t, 1.0, report.ItemIconCoverage, 1e-9)
}

func TestHandleReconcile(t *testing.T) {
	app, db := setupTestApp(t, "ih_reconcile")
	require.NoError(t, db.Create(&models.Item{
		Key: "Helmet", Name: "Iron Helmet", IconPath: "/media/UI/Icons/T_UI_Helmet.png",
		Tier: 2, Slot: "Head",
	}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/reconcile/items", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var plan struct {
		Summary struct {
			TotalItems int `json:"total_items"`
			Mismatches int `json:"mismatches"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(body, &plan))
	assert.Equal(t, 1, plan.Summary.TotalItems)
	assert.Zero(t, plan.Summary.Mismatches)
}

func TestHandleReconcile_UnknownKind(t *testing.T) {
	app, _ := setupTestApp(t, "ih_kind")

	resp, err := app.Test(httptest.NewRequest("GET", "/integrity/reconcile/creatures", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
