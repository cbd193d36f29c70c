package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeLoader struct {
	name    string
	phase   Phase
	pattern string
	count   int
	err     error
	loaded  []string
}

func (l *fakeLoader) Name() string  { return l.name }
func (l *fakeLoader) Phase() Phase  { return l.phase }
func (l *fakeLoader) Matches(rel string) bool {
	return rel == l.pattern
}
func (l *fakeLoader) Load(path string) (int, error) {
	l.loaded = append(l.loaded, path)
	return l.count, l.err
}

func TestPipeline_RoutesByPhaseThenPattern(t *testing.T) {
	core := &fakeLoader{name: "items", phase: PhaseCore, pattern: "Table_AllItems.json", count: 2}
	relational := &fakeLoader{name: "armor_sets", phase: PhaseRelational, pattern: "Table_ItemSets.json", count: 1}

	p := NewPipeline("/staging", []Loader{relational, core}, zap.NewNop())
	result := p.Run([]string{"Table_ItemSets.json", "Table_AllItems.json", "Table_Creatures.json"})

	// Core loaders run before relational ones regardless of work list order,
	// and unmatched documents are silently ignored.
	assert.Equal(t, 2, result.RowsProcessed["items"])
	assert.Equal(t, 1, result.RowsProcessed["armor_sets"])
	assert.Empty(t, result.Errors)
	assert.Len(t, core.loaded, 1)
	assert.Len(t, relational.loaded, 1)
}

func TestPipeline_StoreErrorAbortsPhaseOnly(t *testing.T) {
	failing := &fakeLoader{name: "status_effects", phase: PhaseCore, pattern: "a/Table_StatusEffects.json", count: 3, err: errors.New("connection lost")}
	skipped := &fakeLoader{name: "items", phase: PhaseCore, pattern: "b/Table_AllItems.json", count: 5}
	relational := &fakeLoader{name: "armor_sets", phase: PhaseRelational, pattern: "c/Table_ItemSets.json", count: 1}

	p := NewPipeline("/staging", []Loader{failing, skipped, relational}, zap.NewNop())
	result := p.Run([]string{
		"a/Table_StatusEffects.json",
		"b/Table_AllItems.json",
		"c/Table_ItemSets.json",
	})

	// Rows processed before the failure are still reported.
	assert.Equal(t, 3, result.RowsProcessed["status_effects"])
	// The rest of the core phase is aborted...
	assert.Empty(t, skipped.loaded)
	// ...but the relational phase still runs.
	assert.Equal(t, 1, result.RowsProcessed["armor_sets"])
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "connection lost")
}

func TestPipeline_EmptyWorkList(t *testing.T) {
	core := &fakeLoader{name: "items", phase: PhaseCore, pattern: "Table_AllItems.json"}
	p := NewPipeline("/staging", []Loader{core}, zap.NewNop())

	result := p.Run(nil)
	assert.Empty(t, result.Errors)
	assert.Empty(t, core.loaded)
}
