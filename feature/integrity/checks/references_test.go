package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamedata-sync/feature/gamedata/models"
)

func TestCheckReferences_Clean(t *testing.T) {
	db := setupTestDB(t, "refs_clean")

	require.NoError(t, db.Create(&models.Item{Key: "Helmet"}).Error)
	require.NoError(t, db.Create(&models.StatusEffect{Key: "SetBonus"}).Error)
	require.NoError(t, db.Create(&models.ItemStatusEffect{ItemKey: "Helmet", EffectKey: "SetBonus"}).Error)

	report, err := CheckReferences(context.Background(), db)
	require.NoError(t, err)
	assert.True(t, report.Clean)
	assert.Empty(t, report.Dangling)
}

func TestCheckReferences_Dangling(t *testing.T) {
	db := setupTestDB(t, "refs_dangling")

	require.NoError(t, db.Create(&models.Item{Key: "Helmet"}).Error)
	// Effect row was never loaded.
	require.NoError(t, db.Create(&models.ItemStatusEffect{ItemKey: "Helmet", EffectKey: "Ghost"}).Error)
	// Set disappeared but its membership rows survived.
	require.NoError(t, db.Create(&models.ArmorSetItem{SetKey: "LostSet", ItemKey: "Helmet"}).Error)

	report, err := CheckReferences(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, report.Clean)
	require.Len(t, report.Dangling, 2)

	found := map[string]DanglingRef{}
	for _, ref := range report.Dangling {
		found[ref.Table+"."+ref.Column] = ref
	}

	ghost, ok := found["Item_StatusEffects.effect_key"]
	require.True(t, ok)
	assert.Equal(t, "Ghost", ghost.Key)
	assert.Equal(t, "Helmet", ghost.Owner)

	lost, ok := found["ArmorSet_Items.set_key"]
	require.True(t, ok)
	assert.Equal(t, "LostSet", lost.Key)
}

func TestCheckReferences_NilDB(t *testing.T) {
	_, err := CheckReferences(context.Background(), nil)
	assert.Error(t, err)
}
