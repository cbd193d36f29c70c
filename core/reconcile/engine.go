package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gamedata-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// ReconcileAll performs a full reconciliation across all entities of the
// spec's adapter. It builds indices from all three sources, computes the
// union of keys, and returns a result for each key indicating presence and
// mismatches, sorted by key.
func ReconcileAll(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string) ([]Result, error) {
	cache, err := GetOrBuildCache(ctx, spec, db, client, bucket)
	if err != nil {
		return nil, err
	}
	return resultsFromCache(spec, cache), nil
}

// ReconcileOne performs a targeted reconciliation for a single entity key.
// It reuses the cached indices when caching is enabled.
func ReconcileOne(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string, key string) (*Result, error) {
	cache, err := GetOrBuildCache(ctx, spec, db, client, bucket)
	if err != nil {
		return nil, err
	}

	result := buildResult(spec, key, cache)
	return &result, nil
}

// LoadMediaSet lists all objects under the media prefix and returns the set
// of object keys relative to that prefix. One paginated listing serves every
// membership test; no per-object stat calls are made.
func LoadMediaSet(ctx context.Context, client storage.Client, bucket, prefix string) (map[string]struct{}, error) {
	set := make(map[string]struct{})

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list media objects: %w", obj.Err)
		}
		set[strings.TrimPrefix(obj.Key, prefix)] = struct{}{}
	}

	return set, nil
}

func resultsFromCache(spec *Spec, cache *Cache) []Result {
	union := make(map[string]struct{}, len(cache.DBIndex)+len(cache.SourceIndex))
	for key := range cache.DBIndex {
		union[key] = struct{}{}
	}
	for key := range cache.SourceIndex {
		union[key] = struct{}{}
	}

	results := make([]Result, 0, len(union))
	for key := range union {
		results = append(results, buildResult(spec, key, cache))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Key < results[j].Key
	})
	return results
}

func buildResult(spec *Spec, key string, cache *Cache) Result {
	dbItem, dbPresent := cache.DBIndex[key]
	srcItem, srcPresent := cache.SourceIndex[key]

	result := Result{
		Key:           key,
		DBPresent:     dbPresent,
		SourcePresent: srcPresent,
		Mismatch:      []string{},
	}

	if dbPresent || srcPresent {
		var dbVal DBItem
		var srcVal SourceItem
		if dbPresent {
			dbVal = dbItem
		}
		if srcPresent {
			srcVal = srcItem
		}
		result.Name = spec.Adapter.ResolveName(dbVal, srcVal)
		result.MediaPath = spec.Adapter.MediaPath(dbVal, srcVal)
	}

	if result.MediaPath != "" {
		objectKey := strings.TrimPrefix(result.MediaPath, spec.MediaRoot)
		_, result.MediaPresent = cache.MediaSet[objectKey]
	}

	if dbPresent && srcPresent {
		result.Mismatch = spec.Adapter.CompareFields(dbItem, srcItem)
	}

	return result
}
