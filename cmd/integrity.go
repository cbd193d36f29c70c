package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gamedata-sync/core/storage"
	"gamedata-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the synchronized store",
	Long: `Checks the database schema, scans the association tables for
dangling keys, and reconciles entities across database, staged documents
and media storage. All checks are advisory; nothing is modified.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := setupIntegrity()
		if err != nil {
			return err
		}
		defer logg.Sync()
		ctx := cmd.Context()

		schema, err := svc.CheckSchema(ctx)
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		refs, err := svc.CheckReferences(ctx)
		if err != nil {
			return fmt.Errorf("reference check failed: %w", err)
		}
		counts, err := svc.CheckCounts(ctx)
		if err != nil {
			return fmt.Errorf("counts check failed: %w", err)
		}

		fmt.Println("\n=== Integrity Report ===")
		fmt.Printf("Schema Matched: %v\n", schema.Matched)
		fmt.Printf("Dangling References: %d\n", len(refs.Dangling))
		for _, table := range []string{"Items", "StatusEffects", "ArmorSets"} {
			fmt.Printf("%s: %d rows\n", table, counts.Tables[table])
		}
		fmt.Printf("Effect Edges: %d visible, %d hidden\n",
			counts.VisibleEffectEdges, counts.HiddenEffectEdges)
		fmt.Printf("Icon Coverage: items %.0f%%, effects %.0f%%\n",
			counts.ItemIconCoverage*100, counts.EffectIconCoverage*100)

		for _, kind := range []string{"items", "statuseffects"} {
			plan, err := svc.ReconcilePlan(ctx, kind)
			if err != nil {
				return fmt.Errorf("%s reconcile failed: %w", kind, err)
			}
			fmt.Printf("%s: total=%d missing_db=%d missing_source=%d missing_media=%d mismatches=%d\n",
				kind, plan.Summary.TotalItems, plan.Summary.MissingDB,
				plan.Summary.MissingSource, plan.Summary.MissingMedia,
				plan.Summary.Mismatches)
		}
		return nil
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Verify the database schema against the expected models",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := setupIntegrity()
		if err != nil {
			return err
		}
		defer logg.Sync()

		report, err := svc.CheckSchema(cmd.Context())
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}

		fmt.Printf("Schema Matched: %v\n", report.Matched)
		for table, tbl := range report.Tables {
			if len(tbl.MissingColumns) > 0 {
				fmt.Printf("%s: missing %v\n", table, tbl.MissingColumns)
			}
		}
		for _, e := range report.Errors {
			fmt.Printf("Error: %s\n", e)
		}
		return nil
	},
}

// referencesCmd represents the integrity references command
var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "Scan the association tables for dangling keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := setupIntegrity()
		if err != nil {
			return err
		}
		defer logg.Sync()

		report, err := svc.CheckReferences(cmd.Context())
		if err != nil {
			return fmt.Errorf("reference check failed: %w", err)
		}

		if report.Clean {
			fmt.Println("All association rows have parents")
			return nil
		}
		for _, ref := range report.Dangling {
			fmt.Printf("%s.%s: '%s' has no parent (owner '%s')\n",
				ref.Table, ref.Column, ref.Key, ref.Owner)
		}
		return nil
	},
}

// reconcileCmd represents the integrity reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile <items|statuseffects>",
	Short: "Reconcile one entity kind across all three sources",
	Long: `Compares database rows, staged source documents and media storage
for the given entity kind. Outputs summary metrics by default or a detailed
JSON report with the --json flag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		startTime := time.Now()
		kind := args[0]
		jsonOutput, _ := cmd.Flags().GetBool("json")

		svc, logg, err := setupIntegrity()
		if err != nil {
			return err
		}
		defer logg.Sync()

		logg.Info("Reconciling entities (this might take a while)...",
			zap.String("kind", kind))

		plan, err := svc.ReconcilePlan(cmd.Context(), kind)
		if err != nil {
			return fmt.Errorf("reconcile failed: %w", err)
		}

		if jsonOutput {
			filename := fmt.Sprintf("reconcile_%s_%d.json", kind, time.Now().Unix())
			data, err := json.MarshalIndent(plan, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		fmt.Printf("\n=== %s Reconcile Metrics ===\n", kind)
		fmt.Printf("Total Items: %d\n", plan.Summary.TotalItems)
		fmt.Printf("Missing DB: %d\n", plan.Summary.MissingDB)
		fmt.Printf("Missing Source: %d\n", plan.Summary.MissingSource)
		fmt.Printf("Missing Media: %d\n", plan.Summary.MissingMedia)
		fmt.Printf("Mismatches: %d\n", plan.Summary.Mismatches)
		fmt.Printf("Advisory Actions: %d\n", len(plan.Actions))
		fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())
		return nil
	},
}

// setupIntegrity wires the integrity service with its storage client.
func setupIntegrity() (*integrity.Service, *zap.Logger, error) {
	cfg, logg, db, err := setup()
	if err != nil {
		return nil, nil, err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	svc := integrity.NewService(db, client, &cfg.Storage, &cfg.Gamedata, logg)
	return svc, logg, nil
}

func init() {
	reconcileCmd.Flags().Bool("json", false, "Save detailed JSON report to file")
	integrityCmd.AddCommand(schemaCmd)
	integrityCmd.AddCommand(referencesCmd)
	integrityCmd.AddCommand(reconcileCmd)
	RootCmd.AddCommand(integrityCmd)
}
