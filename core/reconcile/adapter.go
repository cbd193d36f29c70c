package reconcile

import (
	"context"

	"gorm.io/gorm"
)

// Adapter defines the interface for entity-specific reconciliation logic.
// Each adapter implements how to load, index, and compare data for one
// entity kind (e.g., items, status effects).
type Adapter interface {
	// Name returns the unique name of this adapter (e.g., "items").
	Name() string

	// LoadDBIndex loads all relevant database rows and returns them indexed
	// by entity key. Implementations should load minimal columns in one
	// batch query.
	LoadDBIndex(ctx context.Context, db *gorm.DB) (map[string]DBItem, error)

	// LoadSourceIndex loads the entity's staged documents under stagingRoot
	// and returns their rows indexed by entity key.
	LoadSourceIndex(ctx context.Context, stagingRoot string) (map[string]SourceItem, error)

	// ResolveName returns the display name for an entity given available
	// DB and/or source items. Either item may be nil.
	ResolveName(dbItem DBItem, srcItem SourceItem) string

	// MediaPath returns the media object path the entity references, or ""
	// when the entity carries no media. Either item may be nil.
	MediaPath(dbItem DBItem, srcItem SourceItem) string

	// CompareFields compares mapped fields between the DB and source items
	// and returns a list of mismatch descriptions. Each string includes the
	// field label and both values (e.g., "tier: source=3 db=2").
	// Both items are guaranteed to be non-nil when this is called.
	CompareFields(dbItem DBItem, srcItem SourceItem) []string
}
