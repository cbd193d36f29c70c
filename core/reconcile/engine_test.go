package reconcile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gamedata-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubItem is the entity shape both stub sources share.
type stubItem struct {
	Key  string
	Name string
	Tier int
	Icon string
}

// stubAdapter reconciles stubItems held directly in memory.
type stubAdapter struct {
	name    string
	db      map[string]stubItem
	source  map[string]stubItem
	dbErr   error
	srcErr  error
	dbCalls int
}

func (a *stubAdapter) Name() string { return a.name }

func (a *stubAdapter) LoadDBIndex(ctx context.Context, db *gorm.DB) (map[string]DBItem, error) {
	a.dbCalls++
	if a.dbErr != nil {
		return nil, a.dbErr
	}
	index := make(map[string]DBItem, len(a.db))
	for key, item := range a.db {
		index[key] = item
	}
	return index, nil
}

func (a *stubAdapter) LoadSourceIndex(ctx context.Context, stagingRoot string) (map[string]SourceItem, error) {
	if a.srcErr != nil {
		return nil, a.srcErr
	}
	index := make(map[string]SourceItem, len(a.source))
	for key, item := range a.source {
		index[key] = item
	}
	return index, nil
}

func (a *stubAdapter) ResolveName(dbItem DBItem, srcItem SourceItem) string {
	if dbItem != nil {
		return dbItem.(stubItem).Name
	}
	if srcItem != nil {
		return srcItem.(stubItem).Name
	}
	return ""
}

func (a *stubAdapter) MediaPath(dbItem DBItem, srcItem SourceItem) string {
	if dbItem != nil {
		return dbItem.(stubItem).Icon
	}
	if srcItem != nil {
		return srcItem.(stubItem).Icon
	}
	return ""
}

func (a *stubAdapter) CompareFields(dbItem DBItem, srcItem SourceItem) []string {
	db := dbItem.(stubItem)
	src := srcItem.(stubItem)

	var mismatches []string
	if db.Name != src.Name {
		mismatches = append(mismatches, fmt.Sprintf("name: source='%s' db='%s'", src.Name, db.Name))
	}
	if db.Tier != src.Tier {
		mismatches = append(mismatches, fmt.Sprintf("tier: source=%d db=%d", src.Tier, db.Tier))
	}
	return mismatches
}

func mediaClient(objects ...string) *mocks.Client {
	client := new(mocks.Client)
	infos := make([]minio.ObjectInfo, 0, len(objects))
	for _, key := range objects {
		infos = append(infos, minio.ObjectInfo{Key: key})
	}
	client.On("ListObjects", mock.Anything, "assets", mock.Anything).
		Return(mocks.ListObjectsChan(infos...))
	return client
}

func TestReconcileAll(t *testing.T) {
	adapter := &stubAdapter{
		name: "reconcile_all",
		db: map[string]stubItem{
			"Helmet":   {Key: "Helmet", Name: "Iron Helmet", Tier: 2, Icon: "/media/UI/Helmet.png"},
			"Orphan":   {Key: "Orphan", Name: "Orphan", Tier: 1},
			"Diverged": {Key: "Diverged", Name: "Old Name", Tier: 1},
		},
		source: map[string]stubItem{
			"Helmet":   {Key: "Helmet", Name: "Iron Helmet", Tier: 2, Icon: "/media/UI/Helmet.png"},
			"Diverged": {Key: "Diverged", Name: "New Name", Tier: 3},
			"Unloaded": {Key: "Unloaded", Name: "Unloaded", Tier: 1},
		},
	}
	spec := &Spec{
		Adapter:     adapter,
		StagingRoot: "/staging",
		MediaPrefix: "media/",
		MediaRoot:   "/media/",
	}

	results, err := ReconcileAll(context.Background(), spec, nil, mediaClient("media/UI/Helmet.png"), "assets")
	require.NoError(t, err)
	require.Len(t, results, 4)

	// Sorted by key.
	assert.Equal(t, []string{"Diverged", "Helmet", "Orphan", "Unloaded"}, []string{
		results[0].Key, results[1].Key, results[2].Key, results[3].Key,
	})

	diverged := results[0]
	assert.True(t, diverged.DBPresent)
	assert.True(t, diverged.SourcePresent)
	assert.Len(t, diverged.Mismatch, 2)

	helmet := results[1]
	assert.True(t, helmet.DBPresent)
	assert.True(t, helmet.SourcePresent)
	assert.True(t, helmet.MediaPresent)
	assert.Equal(t, "/media/UI/Helmet.png", helmet.MediaPath)
	assert.Empty(t, helmet.Mismatch)

	orphan := results[2]
	assert.True(t, orphan.DBPresent)
	assert.False(t, orphan.SourcePresent)
	assert.False(t, orphan.MediaPresent)

	unloaded := results[3]
	assert.False(t, unloaded.DBPresent)
	assert.True(t, unloaded.SourcePresent)
	assert.Equal(t, "Unloaded", unloaded.Name)
}

func TestReconcileAll_MissingMedia(t *testing.T) {
	adapter := &stubAdapter{
		name: "reconcile_media",
		db: map[string]stubItem{
			"Helmet": {Key: "Helmet", Name: "Iron Helmet", Icon: "/media/UI/Helmet.png"},
		},
		source: map[string]stubItem{
			"Helmet": {Key: "Helmet", Name: "Iron Helmet", Icon: "/media/UI/Helmet.png"},
		},
	}
	spec := &Spec{Adapter: adapter, MediaPrefix: "media/", MediaRoot: "/media/"}

	results, err := ReconcileAll(context.Background(), spec, nil, mediaClient(), "assets")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].MediaPresent)
	assert.Equal(t, "/media/UI/Helmet.png", results[0].MediaPath)
}

func TestReconcileOne(t *testing.T) {
	adapter := &stubAdapter{
		name:   "reconcile_one",
		db:     map[string]stubItem{"Helmet": {Key: "Helmet", Name: "Iron Helmet"}},
		source: map[string]stubItem{},
	}
	spec := &Spec{Adapter: adapter, MediaPrefix: "media/", MediaRoot: "/media/"}
	client := mediaClient()

	result, err := ReconcileOne(context.Background(), spec, nil, client, "assets", "Helmet")
	require.NoError(t, err)
	assert.True(t, result.DBPresent)
	assert.False(t, result.SourcePresent)

	result, err = ReconcileOne(context.Background(), spec, nil, client, "assets", "Missing")
	require.NoError(t, err)
	assert.False(t, result.DBPresent)
	assert.False(t, result.SourcePresent)
}

func TestBuildCache_ErrorHandling(t *testing.T) {
	tests := []struct {
		name      string
		adapter   *stubAdapter
		expectErr string
	}{
		{
			name:      "db load error",
			adapter:   &stubAdapter{name: "err_db", dbErr: fmt.Errorf("db error")},
			expectErr: "db error",
		},
		{
			name:      "source load error",
			adapter:   &stubAdapter{name: "err_src", srcErr: fmt.Errorf("source error")},
			expectErr: "source error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := &Spec{Adapter: tt.adapter, MediaPrefix: "media/"}
			_, err := BuildCache(context.Background(), spec, nil, mediaClient(), "assets")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectErr)
		})
	}
}

func TestGetOrBuildCache_TTL(t *testing.T) {
	adapter := &stubAdapter{
		name:   "cache_ttl",
		db:     map[string]stubItem{"Helmet": {Key: "Helmet"}},
		source: map[string]stubItem{},
	}
	spec := &Spec{Adapter: adapter, CacheTTL: time.Minute, MediaPrefix: "media/"}
	client := mediaClient()
	InvalidateCache(spec)

	_, err := GetOrBuildCache(context.Background(), spec, nil, client, "assets")
	require.NoError(t, err)
	_, err = GetOrBuildCache(context.Background(), spec, nil, client, "assets")
	require.NoError(t, err)
	assert.Equal(t, 1, adapter.dbCalls)

	InvalidateCache(spec)
	_, err = GetOrBuildCache(context.Background(), spec, nil, client, "assets")
	require.NoError(t, err)
	assert.Equal(t, 2, adapter.dbCalls)
}
