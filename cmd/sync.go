package cmd

import (
	"fmt"

	"gamedata-sync/feature/gamedata"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a full sync of staged documents into the database",
	Long: `Diffs the staging tree against the persisted manifest, writes the
manifest and work lists, and loads every changed document through both
loader passes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, db, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc := gamedata.NewService(db, &cfg.Gamedata, logg)
		report, err := svc.RunSync(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		fmt.Println("\n=== Sync Report ===")
		fmt.Printf("Run ID: %s\n", report.RunID)
		fmt.Printf("Added: %d\n", report.Added)
		fmt.Printf("Updated: %d\n", report.Updated)
		fmt.Printf("Removed: %d\n", report.Removed)
		fmt.Printf("Skipped: %d\n", report.Skipped)
		for loader, rows := range report.RowsProcessed {
			fmt.Printf("Rows (%s): %d\n", loader, rows)
		}
		fmt.Printf("Store Errors: %d\n", len(report.Errors))
		fmt.Printf("Execution Time: %dms\n", report.DurationMillis)

		if len(report.Errors) > 0 {
			logg.Warn("Sync finished with store errors",
				zap.Strings("errors", report.Errors))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)
}
