package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skolica-digital/faqctl/internal/core/ports/driving"
	"github.com/skolica-digital/faqctl/internal/core/services"
)

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert inline FAQ items into referenced documents",
	Long: `Scans all page documents for inline FAQ items, creates standalone
FAQ and category documents for them, and rewrites each page field so it
holds references instead of inline content.

Running migrate twice is safe: document ids derive from content, so a
second run converges without creating duplicates.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "report what would change without writing")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, release, err := newContentStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	migrator := services.NewMigrationOrchestrator(store, services.DefaultFAQFields, migrateDryRun)
	summary, err := migrator.Run(ctx)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	printMigrationSummary(cmd, summary)
	return nil
}

func printMigrationSummary(cmd *cobra.Command, s *driving.MigrationSummary) {
	cmd.Println(headingStyle.Render("Migration summary"))
	if s.DryRun {
		cmd.Printf("%s dry run: no documents were written\n", warnMark())
	}
	cmd.Printf("  Categories seeded:   %d\n", s.CategoriesSeeded)
	cmd.Printf("  Categories created:  %d\n", s.CategoriesCreated)
	cmd.Printf("  FAQs created:        %d\n", s.FAQsCreated)
	cmd.Printf("  FAQs updated:        %d\n", s.FAQsUpdated)
	cmd.Printf("  Documents processed: %d\n", s.DocumentsProcessed)
	cmd.Printf("  Documents updated:   %d\n", s.DocumentsUpdated)
	cmd.Printf("  Slots converted:     %d\n", s.SlotsConverted)

	if s.SlotsDropped > 0 {
		cmd.Printf("%s %d malformed item(s) dropped, see log above\n", warnMark(), s.SlotsDropped)
	}
	if s.SlotsFailed > 0 {
		cmd.Printf("%s %d item(s) failed and remain inline, rerun to retry\n", failMark(), s.SlotsFailed)
	} else {
		cmd.Printf("%s all convertible items migrated\n", okMark())
	}
	cmd.Println(mutedStyle.Render(fmt.Sprintf("  Store now holds %d FAQ(s) in %d categor(ies)", s.TotalFAQs, s.TotalCategories)))
}
