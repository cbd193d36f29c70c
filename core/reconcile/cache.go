package reconcile

import (
	"context"
	"sync"
	"time"

	"gamedata-sync/core/storage"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Cache holds pre-built indices for fast targeted reconciliation.
type Cache struct {
	// DBIndex is the indexed map of database items by entity key.
	DBIndex map[string]DBItem

	// SourceIndex is the indexed map of staged document items by entity key.
	SourceIndex map[string]SourceItem

	// MediaSet is the set of object keys present under the media prefix.
	MediaSet map[string]struct{}

	// Built is the timestamp when this cache was built.
	Built time.Time

	// TTL is the time-to-live for this cache.
	TTL time.Duration
}

// IsExpired returns true if this cache has expired based on its TTL.
func (c *Cache) IsExpired() bool {
	if c.TTL == 0 {
		return true
	}
	return time.Since(c.Built) > c.TTL
}

// cacheStore holds all reconcile caches keyed by spec cache key.
type cacheStore struct {
	mu     sync.RWMutex
	caches map[string]*Cache
	sf     singleflight.Group
}

var globalCacheStore = &cacheStore{
	caches: make(map[string]*Cache),
}

// BuildCache builds a new cache for the given spec by loading all three
// indices concurrently. This function does NOT store the cache; use
// GetOrBuildCache for that.
func BuildCache(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string) (*Cache, error) {
	var (
		dbIndex  map[string]DBItem
		srcIndex map[string]SourceItem
		mediaSet map[string]struct{}
		dbErr    error
		srcErr   error
		mediaErr error
		wg       sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		dbIndex, dbErr = spec.Adapter.LoadDBIndex(ctx, db)
	}()
	go func() {
		defer wg.Done()
		srcIndex, srcErr = spec.Adapter.LoadSourceIndex(ctx, spec.StagingRoot)
	}()
	go func() {
		defer wg.Done()
		mediaSet, mediaErr = LoadMediaSet(ctx, client, bucket, spec.MediaPrefix)
	}()
	wg.Wait()

	if dbErr != nil {
		return nil, dbErr
	}
	if srcErr != nil {
		return nil, srcErr
	}
	if mediaErr != nil {
		return nil, mediaErr
	}

	return &Cache{
		DBIndex:     dbIndex,
		SourceIndex: srcIndex,
		MediaSet:    mediaSet,
		Built:       time.Now(),
		TTL:         spec.CacheTTL,
	}, nil
}

// GetOrBuildCache retrieves a cache for the given spec from the store, or
// builds a new one if it doesn't exist or has expired. Uses singleflight to
// prevent cache stampedes.
func GetOrBuildCache(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string) (*Cache, error) {
	cacheKey := spec.CacheKey()

	globalCacheStore.mu.RLock()
	cache, exists := globalCacheStore.caches[cacheKey]
	globalCacheStore.mu.RUnlock()

	if exists && !cache.IsExpired() {
		return cache, nil
	}

	result, err, _ := globalCacheStore.sf.Do(cacheKey, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot.
		globalCacheStore.mu.RLock()
		cache, exists := globalCacheStore.caches[cacheKey]
		globalCacheStore.mu.RUnlock()

		if exists && !cache.IsExpired() {
			return cache, nil
		}

		newCache, err := BuildCache(ctx, spec, db, client, bucket)
		if err != nil {
			return nil, err
		}

		if spec.CacheTTL > 0 {
			globalCacheStore.mu.Lock()
			globalCacheStore.caches[cacheKey] = newCache
			globalCacheStore.mu.Unlock()
		}
		return newCache, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Cache), nil
}

// InvalidateCache removes the cache for the given spec from the store,
// forcing a rebuild on the next use.
func InvalidateCache(spec *Spec) {
	cacheKey := spec.CacheKey()
	globalCacheStore.mu.Lock()
	delete(globalCacheStore.caches, cacheKey)
	globalCacheStore.mu.Unlock()
}
