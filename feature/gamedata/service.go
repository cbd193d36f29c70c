package gamedata

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"gamedata-sync/core/logger"
	"gamedata-sync/feature/gamedata/ingest"
	"gamedata-sync/feature/gamedata/manifest"
	"gamedata-sync/feature/gamedata/models"
	"gamedata-sync/feature/gamedata/resolve"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service orchestrates the sync pipeline: diffing staged documents against
// the persisted manifest and routing the changed ones through the entity
// loaders.
type Service struct {
	db     *gorm.DB
	cfg    *Config
	logger *zap.Logger

	mu   sync.Mutex
	last *models.SyncReport
}

// NewService creates a new gamedata service.
func NewService(db *gorm.DB, cfg *Config, logger *zap.Logger) *Service {
	return &Service{db: db, cfg: cfg, logger: logger}
}

// RunDiff fingerprints the staging tree against the persisted manifest and
// writes the updated manifest and work lists. No rows are loaded.
func (s *Service) RunDiff(ctx context.Context) (*manifest.DiffResult, error) {
	prior, err := manifest.Load(s.cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	result, err := manifest.NewDiffer(s.cfg.StagingRoot, s.logger).Diff(prior)
	if err != nil {
		return nil, err
	}
	if err := s.persistDiff(result); err != nil {
		return nil, err
	}

	s.logger.Info("Diff complete",
		zap.Int("added", len(result.Added)),
		zap.Int("updated", len(result.Updated)),
		zap.Int("removed", len(result.Removed)),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// RunSync performs a full run: localization index, diff, persistence of the
// manifest and work lists, then both loader phases over the changed
// documents. A localization failure halts the run before anything is
// written.
func (s *Service) RunSync(ctx context.Context) (*models.SyncReport, error) {
	runID := uuid.NewString()
	l := logger.WithRun(s.logger, runID)
	started := time.Now()

	resolver, err := s.newResolver()
	if err != nil {
		return nil, err
	}

	prior, err := manifest.Load(s.cfg.ManifestPath)
	if err != nil {
		return nil, err
	}
	diff, err := manifest.NewDiffer(s.cfg.StagingRoot, l).Diff(prior)
	if err != nil {
		return nil, err
	}
	if err := s.persistDiff(diff); err != nil {
		return nil, err
	}

	l.Info("Diff complete",
		zap.Int("added", len(diff.Added)),
		zap.Int("updated", len(diff.Updated)),
		zap.Int("removed", len(diff.Removed)),
		zap.Int("skipped", diff.Skipped))

	result := s.runPipeline(ctx, l, resolver, diff.WorkList())

	report := &models.SyncReport{
		RunID:          runID,
		StartedAt:      started,
		DurationMillis: time.Since(started).Milliseconds(),
		Added:          len(diff.Added),
		Updated:        len(diff.Updated),
		Removed:        len(diff.Removed),
		Skipped:        diff.Skipped,
		RowsProcessed:  result.RowsProcessed,
		Errors:         result.Errors,
	}
	s.setLast(report)

	l.Info("Sync complete",
		zap.Int64("duration_millis", report.DurationMillis),
		zap.Int("store_errors", len(report.Errors)))
	return report, nil
}

// RunLoad replays the persisted work lists through the loaders without
// re-diffing. Useful after a store failure once the database is healthy
// again.
func (s *Service) RunLoad(ctx context.Context) (*models.SyncReport, error) {
	runID := uuid.NewString()
	l := logger.WithRun(s.logger, runID)
	started := time.Now()

	resolver, err := s.newResolver()
	if err != nil {
		return nil, err
	}

	added, err := manifest.LoadList(s.cfg.AddListPath)
	if err != nil {
		return nil, err
	}
	updated, err := manifest.LoadList(s.cfg.UpdateListPath)
	if err != nil {
		return nil, err
	}

	result := s.runPipeline(ctx, l, resolver, append(added, updated...))

	report := &models.SyncReport{
		RunID:          runID,
		StartedAt:      started,
		DurationMillis: time.Since(started).Milliseconds(),
		Added:          len(added),
		Updated:        len(updated),
		RowsProcessed:  result.RowsProcessed,
		Errors:         result.Errors,
	}
	s.setLast(report)
	return report, nil
}

// LastReport returns the report of the most recent run, or nil if no run
// has completed in this process.
func (s *Service) LastReport() *models.SyncReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Manifest returns the persisted fingerprint manifest.
func (s *Service) Manifest() (manifest.Manifest, error) {
	return manifest.Load(s.cfg.ManifestPath)
}

func (s *Service) newResolver() (*resolve.Resolver, error) {
	path := filepath.Join(s.cfg.StagingRoot, filepath.FromSlash(s.cfg.LocalizationPath))
	return resolve.NewResolver(path, s.cfg.MediaRoot)
}

func (s *Service) persistDiff(result *manifest.DiffResult) error {
	if err := result.Manifest.Save(s.cfg.ManifestPath); err != nil {
		return err
	}
	if err := manifest.SaveList(s.cfg.AddListPath, result.Added); err != nil {
		return err
	}
	if err := manifest.SaveList(s.cfg.UpdateListPath, result.Updated); err != nil {
		return err
	}
	return manifest.SaveList(s.cfg.RemoveListPath, result.Removed)
}

func (s *Service) runPipeline(ctx context.Context, l *zap.Logger, resolver *resolve.Resolver, work []string) *ingest.Result {
	loaders := ingest.Loaders(s.db.WithContext(ctx), resolver, l)
	return ingest.NewPipeline(s.cfg.StagingRoot, loaders, l).Run(work)
}

func (s *Service) setLast(report *models.SyncReport) {
	s.mu.Lock()
	s.last = report
	s.mu.Unlock()
}
