package ingest

import (
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gamedata-sync/feature/gamedata/resolve"
)

// Phase orders loaders by their data dependencies. Core loaders write
// independent entities; relational loaders read entities written by the core
// phase, so a phase must fully complete before the next begins.
type Phase int

const (
	// PhaseCore loads independent entities (status effects, items).
	PhaseCore Phase = iota
	// PhaseRelational loads entities derived from other entities (armor sets).
	PhaseRelational
)

// Phases is the dependency-ordered phase list the pipeline iterates.
var Phases = []Phase{PhaseCore, PhaseRelational}

// Loader ingests one staged document type into the relational store.
//
// Load operates on a single document and returns the number of rows it
// processed. Row-level failures are logged and skipped; a non-nil error
// means a store-level failure that should abort the remainder of the phase.
type Loader interface {
	// Name identifies the loader in reports and logs.
	Name() string
	// Phase returns the pipeline phase this loader runs in.
	Phase() Phase
	// Matches reports whether the loader handles the given staging-relative
	// document path. Unmatched documents are ignored by the pipeline.
	Matches(relPath string) bool
	// Load ingests the document at the given absolute path.
	Load(path string) (int, error)
}

// Loaders builds the loader registry for one sync run. Adding a new entity
// type means adding an entry here, not a branch somewhere else.
func Loaders(db *gorm.DB, resolver *resolve.Resolver, logger *zap.Logger) []Loader {
	return []Loader{
		NewStatusEffectLoader(db, resolver, logger),
		NewItemLoader(db, resolver, logger),
		NewArmorSetLoader(db, logger),
	}
}

// upsertByKey is the shared insert-or-replace clause: conflicting keys
// replace the full row, so re-ingesting a key never produces duplicates.
var upsertByKey = clause.OnConflict{UpdateAll: true}
