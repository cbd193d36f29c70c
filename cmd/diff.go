package cmd

import (
	"fmt"

	"gamedata-sync/feature/gamedata"

	"github.com/spf13/cobra"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Diff the staging tree against the persisted manifest",
	Long: `Fingerprints every staged document, classifies it against the prior
manifest, and rewrites the manifest and work lists. No rows are loaded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, db, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc := gamedata.NewService(db, &cfg.Gamedata, logg)
		result, err := svc.RunDiff(cmd.Context())
		if err != nil {
			return fmt.Errorf("diff failed: %w", err)
		}

		fmt.Println("\n=== Diff Report ===")
		fmt.Printf("Tracked: %d\n", len(result.Manifest))
		fmt.Printf("Added: %d\n", len(result.Added))
		fmt.Printf("Updated: %d\n", len(result.Updated))
		fmt.Printf("Removed: %d\n", len(result.Removed))
		fmt.Printf("Skipped: %d\n", result.Skipped)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(diffCmd)
}
