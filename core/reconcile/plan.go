package reconcile

import (
	"context"
	"fmt"
	"strings"

	"gamedata-sync/core/storage"

	"gorm.io/gorm"
)

// ReconcileWithPlan performs reconciliation and returns a plan with results
// and advisory actions. The plan is never executed by this package; database
// rows are only ever written by the sync pipeline, and nothing deletes media
// or staged documents.
func ReconcileWithPlan(ctx context.Context, spec *Spec, db *gorm.DB, client storage.Client, bucket string) (*Plan, error) {
	cache, err := GetOrBuildCache(ctx, spec, db, client, bucket)
	if err != nil {
		return nil, err
	}

	results := resultsFromCache(spec, cache)
	summary, actions := buildPlan(results)

	return &Plan{
		Results: results,
		Actions: actions,
		Summary: summary,
	}, nil
}

func buildPlan(results []Result) (Summary, []Action) {
	summary := Summary{TotalItems: len(results)}
	actions := []Action{}

	for _, r := range results {
		if r.DBPresent && !r.SourcePresent {
			summary.MissingSource++
			actions = append(actions, Action{
				Type:   ActionPurgeDB,
				Key:    r.Key,
				Reason: "row has no staged counterpart",
			})
		}
		if !r.DBPresent && r.SourcePresent {
			summary.MissingDB++
		}
		if r.MediaPath != "" && !r.MediaPresent {
			summary.MissingMedia++
			actions = append(actions, Action{
				Type:   ActionFetchMedia,
				Key:    r.Key,
				Reason: fmt.Sprintf("media object %s not in storage", r.MediaPath),
			})
		}
		if len(r.Mismatch) > 0 {
			summary.Mismatches++
			actions = append(actions, Action{
				Type:   ActionSyncDB,
				Key:    r.Key,
				Reason: strings.Join(r.Mismatch, "; "),
			})
		}
	}

	return summary, actions
}
