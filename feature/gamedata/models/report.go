package models

import "time"

// SyncReport summarizes one pipeline run.
type SyncReport struct {
	// RunID correlates the report with the run's log lines.
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`
	// DurationMillis is the wall-clock time of the whole run.
	DurationMillis int64 `json:"duration_millis"`
	// Added, Updated and Removed count documents classified by the diff.
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Removed int `json:"removed"`
	// Skipped counts documents whose fingerprint could not be computed.
	Skipped int `json:"skipped"`
	// RowsProcessed counts ingested rows per loader.
	RowsProcessed map[string]int `json:"rows_processed"`
	// Errors lists store-level failures; each aborted the rest of its phase.
	Errors []string `json:"errors"`
}
