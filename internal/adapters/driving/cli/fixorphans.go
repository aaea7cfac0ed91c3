package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skolica-digital/faqctl/internal/core/ports/driving"
	"github.com/skolica-digital/faqctl/internal/core/services"
)

var fixOrphansCmd = &cobra.Command{
	Use:   "fix-orphans",
	Short: "Reassign FAQs whose category no longer resolves",
	Long: `Finds FAQ documents pointing at a missing or deleted category and
reassigns each one based on keywords in its question and answer.
FAQs that match no keyword group fall back to the general category.`,
	RunE: runFixOrphans,
}

func init() {
	rootCmd.AddCommand(fixOrphansCmd)
}

func runFixOrphans(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, release, err := newContentStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	repairer := services.NewOrphanRepairer(store, nil)
	summary, err := repairer.Run(ctx)
	if err != nil {
		return fmt.Errorf("orphan repair failed: %w", err)
	}

	printRepairSummary(cmd, summary)
	return nil
}

func printRepairSummary(cmd *cobra.Command, s *driving.RepairSummary) {
	cmd.Println(headingStyle.Render("Orphan repair summary"))
	cmd.Printf("  Orphans found: %d\n", s.OrphansFound)
	cmd.Printf("  Orphans fixed: %d\n", s.OrphansFixed)

	switch {
	case s.OrphansFound == 0:
		cmd.Printf("%s no orphaned FAQs\n", okMark())
	case s.OrphansRemaining > 0:
		cmd.Printf("%s %d orphan(s) remain, see log above\n", warnMark(), s.OrphansRemaining)
	default:
		cmd.Printf("%s all orphans reassigned\n", okMark())
	}
}
