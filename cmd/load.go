package cmd

import (
	"fmt"

	"gamedata-sync/feature/gamedata"

	"github.com/spf13/cobra"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replay the persisted work lists through the loaders",
	Long: `Loads the documents named in the persisted add and update lists
without re-diffing the staging tree. Useful after a store failure once the
database is healthy again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, db, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc := gamedata.NewService(db, &cfg.Gamedata, logg)
		report, err := svc.RunLoad(cmd.Context())
		if err != nil {
			return fmt.Errorf("load failed: %w", err)
		}

		fmt.Println("\n=== Load Report ===")
		fmt.Printf("Run ID: %s\n", report.RunID)
		fmt.Printf("Documents: %d\n", report.Added+report.Updated)
		for loader, rows := range report.RowsProcessed {
			fmt.Printf("Rows (%s): %d\n", loader, rows)
		}
		fmt.Printf("Store Errors: %d\n", len(report.Errors))
		fmt.Printf("Execution Time: %dms\n", report.DurationMillis)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(loadCmd)
}
