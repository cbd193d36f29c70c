package ingest

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Result aggregates the outcome of one pipeline run.
type Result struct {
	// RowsProcessed counts ingested rows per loader name.
	RowsProcessed map[string]int `json:"rows_processed"`
	// Errors lists store-level failures; each one aborted the remainder of
	// its phase.
	Errors []string `json:"errors"`
}

// Pipeline routes changed documents to entity loaders in dependency order.
type Pipeline struct {
	stagingRoot string
	loaders     []Loader
	logger      *zap.Logger
}

// NewPipeline creates a pipeline over the given loader registry.
func NewPipeline(stagingRoot string, loaders []Loader, logger *zap.Logger) *Pipeline {
	return &Pipeline{stagingRoot: stagingRoot, loaders: loaders, logger: logger}
}

// Run processes the work list once per phase, offering each document to
// every loader of the current phase that matches it. Documents no loader
// recognizes are ignored: unrecognized tables are not errors. A store-level
// failure aborts the remaining documents of its phase, is recorded in the
// result, and the run proceeds to the next phase.
func (p *Pipeline) Run(work []string) *Result {
	result := &Result{
		RowsProcessed: make(map[string]int),
		Errors:        []string{},
	}

	for _, phase := range Phases {
		p.runPhase(phase, work, result)
	}
	return result
}

func (p *Pipeline) runPhase(phase Phase, work []string, result *Result) {
	for _, rel := range work {
		path := filepath.Join(p.stagingRoot, filepath.FromSlash(rel))

		for _, loader := range p.loaders {
			if loader.Phase() != phase || !loader.Matches(rel) {
				continue
			}

			count, err := loader.Load(path)
			result.RowsProcessed[loader.Name()] += count
			if err != nil {
				p.logger.Error("Store failure, aborting phase",
					zap.String("loader", loader.Name()),
					zap.String("document", rel),
					zap.Error(err))
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s: %s: %v", loader.Name(), rel, err))
				return
			}
		}
	}
}
