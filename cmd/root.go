package cmd

import (
	"fmt"
	"os"

	"gamedata-sync/core/config"
	"gamedata-sync/core/database"
	"gamedata-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gamedata-sync",
	Short: "Game Data Sync Service",
	Long: `Game Data Sync ingests staged game export documents into a normalized
relational store: it fingerprints the staging tree, loads changed documents
through the entity loaders, and derives armor set attributes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console at debug level gives readable timestamps for CLI use.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// setup loads the configuration, builds the logger, and connects to the
// database. Every pipeline subcommand needs all three.
func setup() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database connection required: %w", err)
	}

	return cfg, logg, db, nil
}
