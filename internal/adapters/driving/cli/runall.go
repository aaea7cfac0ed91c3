package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skolica-digital/faqctl/internal/core/services"
	"github.com/skolica-digital/faqctl/internal/logger"
)

var runAllDryRun bool

var runAllCmd = &cobra.Command{
	Use:   "run-all",
	Short: "Run migrate, fix-orphans and verify in sequence",
	Long: `Runs the full normalisation pipeline: migration first, then orphan
repair, then verification. A phase error aborts the run; a failed
verification report does not.`,
	RunE: runAll,
}

func init() {
	runAllCmd.Flags().BoolVar(&runAllDryRun, "dry-run", false, "report what would change without writing")
	rootCmd.AddCommand(runAllCmd)
}

func runAll(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, release, err := newContentStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	logger.Section("Phase 1/3: migrate")
	migrator := services.NewMigrationOrchestrator(store, services.DefaultFAQFields, runAllDryRun)
	migration, err := migrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	printMigrationSummary(cmd, migration)

	if runAllDryRun {
		// Repair and verify read the live state, which a dry run never
		// changed. Running them would just report the pre-migration
		// picture.
		cmd.Printf("%s dry run: skipping orphan repair and verification\n", warnMark())
		return nil
	}

	logger.Section("Phase 2/3: fix-orphans")
	repair, err := services.NewOrphanRepairer(store, nil).Run(ctx)
	if err != nil {
		return fmt.Errorf("orphan repair failed: %w", err)
	}
	printRepairSummary(cmd, repair)

	logger.Section("Phase 3/3: verify")
	report, err := services.NewVerifier(store).Run(ctx)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	printVerificationReport(cmd, report)

	return nil
}
