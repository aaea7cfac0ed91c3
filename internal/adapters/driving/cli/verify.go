package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skolica-digital/faqctl/internal/core/ports/driving"
	"github.com/skolica-digital/faqctl/internal/core/services"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the dataset is fully normalised",
	Long: `Reads the whole dataset and reports inline FAQ items that were never
converted, references pointing at missing FAQ documents, and FAQs with
an unresolved category. Never writes anything.

A failed report is an outcome, not an error: the command exits zero
unless the store itself is unreachable.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	store, release, err := newContentStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	report, err := services.NewVerifier(store).Run(ctx)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	printVerificationReport(cmd, report)
	return nil
}

func printVerificationReport(cmd *cobra.Command, r *driving.VerificationReport) {
	cmd.Println(headingStyle.Render("Verification report"))
	cmd.Printf("  Parents checked:    %d\n", r.ParentsChecked)
	cmd.Printf("  Valid references:   %d\n", r.ValidReferences)
	cmd.Printf("  Invalid references: %d\n", len(r.InvalidReferences))
	cmd.Printf("  Inline remaining:   %d\n", len(r.InlineRemaining))
	cmd.Printf("  Orphaned FAQs:      %d\n", r.OrphanedFAQs)
	cmd.Println(mutedStyle.Render(fmt.Sprintf("  Store holds %d FAQ(s) in %d categor(ies)", r.TotalFAQs, r.TotalCategories)))

	for _, v := range r.InvalidReferences {
		cmd.Printf("%s dangling reference in %s.%s[%d]: %s\n", failMark(), v.DocumentID, v.Field, v.Position, v.Detail)
	}
	for _, v := range r.InlineRemaining {
		cmd.Printf("%s inline item in %s.%s[%d]: %s\n", warnMark(), v.DocumentID, v.Field, v.Position, v.Detail)
	}

	if r.Passed() {
		cmd.Printf("%s dataset is fully normalised\n", okMark())
	} else {
		cmd.Printf("%s dataset is not fully normalised\n", failMark())
	}
}
