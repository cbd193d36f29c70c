package integrity

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"gamedata-sync/core/reconcile"
	"gamedata-sync/core/storage"
	"gamedata-sync/feature/gamedata"
	"gamedata-sync/feature/gamedata/resolve"
	"gamedata-sync/feature/integrity/checks"
	adapters "gamedata-sync/feature/integrity/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reconcileCacheTTL bounds how stale a cached reconcile index may be.
const reconcileCacheTTL = 5 * time.Minute

// Service handles integrity checks.
type Service struct {
	db         *gorm.DB
	client     storage.Client
	storageCfg *storage.Config
	dataCfg    *gamedata.Config
	logger     *zap.Logger
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, client storage.Client, storageCfg *storage.Config, dataCfg *gamedata.Config, logger *zap.Logger) *Service {
	return &Service{
		db:         db,
		client:     client,
		storageCfg: storageCfg,
		dataCfg:    dataCfg,
		logger:     logger,
	}
}

// CheckSchema verifies the provisioned tables against the expected models.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db.WithContext(ctx))
}

// CheckReferences scans the association tables for dangling keys.
func (s *Service) CheckReferences(ctx context.Context) (*checks.ReferenceReport, error) {
	return checks.CheckReferences(ctx, s.db)
}

// CheckCounts summarizes table populations and icon coverage.
func (s *Service) CheckCounts(ctx context.Context) (*checks.CountsReport, error) {
	return checks.CheckCounts(ctx, s.db)
}

// ReconcilePlan reconciles the given entity kind across database, staged
// documents and media storage, and returns the advisory plan.
func (s *Service) ReconcilePlan(ctx context.Context, kind string) (*reconcile.Plan, error) {
	spec, err := s.specFor(kind)
	if err != nil {
		return nil, err
	}
	return reconcile.ReconcileWithPlan(ctx, spec, s.db, s.client, s.storageCfg.Bucket)
}

// ReconcileEntity reconciles a single entity of the given kind.
func (s *Service) ReconcileEntity(ctx context.Context, kind, key string) (*reconcile.Result, error) {
	spec, err := s.specFor(kind)
	if err != nil {
		return nil, err
	}
	return reconcile.ReconcileOne(ctx, spec, s.db, s.client, s.storageCfg.Bucket, key)
}

func (s *Service) specFor(kind string) (*reconcile.Spec, error) {
	localization := filepath.Join(s.dataCfg.StagingRoot, filepath.FromSlash(s.dataCfg.LocalizationPath))
	resolver, err := resolve.NewResolver(localization, s.dataCfg.MediaRoot)
	if err != nil {
		return nil, err
	}

	var adapter reconcile.Adapter
	switch kind {
	case "items":
		adapter = adapters.NewItemsAdapter(resolver)
	case "statuseffects":
		adapter = adapters.NewStatusEffectsAdapter(resolver)
	default:
		return nil, fmt.Errorf("unknown entity kind: %s", kind)
	}

	return &reconcile.Spec{
		Adapter:     adapter,
		CacheTTL:    reconcileCacheTTL,
		StagingRoot: s.dataCfg.StagingRoot,
		MediaPrefix: s.storageCfg.MediaPrefix,
		MediaRoot:   s.dataCfg.MediaRoot,
	}, nil
}
