package reconcile

import "time"

// Result represents the reconciliation output for a single entity.
// It contains presence flags for each source and any detected mismatches.
type Result struct {
	// Key is the unique identifier for the entity.
	Key string `json:"key"`

	// Name is the display name of the entity.
	Name string `json:"name"`

	// DBPresent indicates whether the entity exists in the database.
	DBPresent bool `json:"db_present"`

	// SourcePresent indicates whether the entity exists in the staged
	// source documents.
	SourcePresent bool `json:"source_present"`

	// MediaPath is the media object the entity references, empty when the
	// entity carries no media.
	MediaPath string `json:"media_path,omitempty"`

	// MediaPresent indicates whether the referenced media object exists in
	// storage. Always false when MediaPath is empty.
	MediaPresent bool `json:"media_present"`

	// Mismatch contains descriptions of field mismatches between the
	// database and the staged documents, e.g., "tier: source=3 db=2".
	Mismatch []string `json:"mismatch"`
}

// Spec defines the configuration for a reconciliation operation.
// It bundles the adapter, cache settings, and data source parameters.
type Spec struct {
	// Adapter provides entity-specific reconciliation logic.
	Adapter Adapter

	// CacheTTL is the time-to-live for cached indices.
	// If zero, caching is disabled.
	CacheTTL time.Duration

	// StagingRoot is the directory tree of staged source documents.
	StagingRoot string

	// MediaPrefix is the bucket prefix under which media objects live.
	MediaPrefix string

	// MediaRoot is the public URL prefix stored in database media columns.
	// It is stripped from MediaPath before matching against the bucket.
	MediaRoot string
}

// CacheKey returns a unique key for caching based on spec parameters, so
// that different entity kinds and configurations don't share a cache entry.
func (s *Spec) CacheKey() string {
	return s.Adapter.Name() + "|" + s.StagingRoot + "|" + s.MediaPrefix
}

// DBItem represents a database entity with arbitrary fields.
// Adapters define the concrete type.
type DBItem any

// SourceItem represents a staged document entity with arbitrary fields.
// Adapters define the concrete type.
type SourceItem any

// ActionType represents the type of advisory action.
type ActionType string

const (
	// ActionPurgeDB flags a database row with no staged counterpart.
	ActionPurgeDB ActionType = "purge_db"
	// ActionSyncDB flags database fields that diverge from the staged
	// documents; a pipeline run over the entity's document resolves it.
	ActionSyncDB ActionType = "sync_db"
	// ActionFetchMedia flags a referenced media object missing from
	// storage.
	ActionFetchMedia ActionType = "fetch_media"
)

// Action represents one advisory operation. Nothing executes actions; they
// are reported for operator review.
type Action struct {
	// Type specifies the flagged condition.
	Type ActionType `json:"type"`

	// Key is the entity identifier.
	Key string `json:"key"`

	// Reason explains why this action is suggested.
	Reason string `json:"reason"`
}

// Plan contains reconciliation results and advisory actions.
type Plan struct {
	// Results contains per-entity reconciliation data.
	Results []Result `json:"results"`

	// Actions contains the advisory operations.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a reconcile plan.
type Summary struct {
	// TotalItems is the total number of unique entities.
	TotalItems int `json:"total_items"`

	// MissingSource counts database rows absent from the staged documents.
	MissingSource int `json:"missing_source"`

	// MissingDB counts staged entities absent from the database.
	MissingDB int `json:"missing_db"`

	// MissingMedia counts entities whose referenced media object is absent
	// from storage.
	MissingMedia int `json:"missing_media"`

	// Mismatches counts entities with field discrepancies.
	Mismatches int `json:"mismatches"`
}
