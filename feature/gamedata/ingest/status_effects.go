package ingest

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"gamedata-sync/feature/gamedata/models"
	"gamedata-sync/feature/gamedata/resolve"
)

// StatusEffectLoader ingests Table_StatusEffects documents.
type StatusEffectLoader struct {
	db       *gorm.DB
	resolver *resolve.Resolver
	logger   *zap.Logger
}

// NewStatusEffectLoader creates the status effect loader.
func NewStatusEffectLoader(db *gorm.DB, resolver *resolve.Resolver, logger *zap.Logger) *StatusEffectLoader {
	return &StatusEffectLoader{db: db, resolver: resolver, logger: logger}
}

func (l *StatusEffectLoader) Name() string { return "status_effects" }

func (l *StatusEffectLoader) Phase() Phase { return PhaseCore }

func (l *StatusEffectLoader) Matches(relPath string) bool {
	return strings.Contains(relPath, "Table_StatusEffects.json")
}

// Load parses a status effects document and upserts one row per effect key.
// A row that fails to parse is logged and skipped without affecting its
// siblings.
func (l *StatusEffectLoader) Load(path string) (int, error) {
	table, err := models.ReadDataTable(path)
	if err != nil {
		l.logger.Warn("Skipping unreadable status effects document",
			zap.String("path", path),
			zap.Error(err))
		return 0, nil
	}

	count := 0
	for key, raw := range table.Rows {
		if key == "" {
			continue
		}

		var row models.StatusEffectRow
		if err := json.Unmarshal(raw, &row); err != nil {
			l.logger.Warn("Skipping malformed status effect row",
				zap.String("key", key),
				zap.Error(err))
			continue
		}

		effect := BuildStatusEffect(key, &row, l.resolver)

		if err := l.db.Clauses(upsertByKey).Create(&effect).Error; err != nil {
			return count, err
		}
		count++
	}

	l.logger.Info("Processed status effects",
		zap.String("path", path),
		zap.Int("rows", count))
	return count, nil
}

// BuildStatusEffect maps one source row to its normalized record. It is
// shared with the reconcile adapters so that field mapping rules live in one
// place.
func BuildStatusEffect(key string, row *models.StatusEffectRow, resolver *resolve.Resolver) models.StatusEffect {
	return models.StatusEffect{
		Key:      key,
		Name:     resolver.DisplayText(row.DisplayData.Name),
		IconPath: resolver.AssetPath(row.DisplayData.Icon.ObjectPath, true),
	}
}
