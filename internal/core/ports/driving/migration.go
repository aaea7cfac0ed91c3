package driving

import "context"

// Migrator converts inline FAQ slots on parent documents into
// references to standalone FAQ documents.
type Migrator interface {
	// Run executes the full migration and returns its summary.
	// The returned error is fatal (probe failure); per-item and
	// per-document failures are counted in the summary instead.
	Run(ctx context.Context) (*MigrationSummary, error)
}

// Repairer re-homes orphaned FAQs onto existing categories.
type Repairer interface {
	// Run executes the repair pass and returns its summary.
	Run(ctx context.Context) (*RepairSummary, error)
}

// Verifier checks the store against the post-migration invariants.
// It is strictly read-only and safe to run at any time.
type Verifier interface {
	// Run scans the store and returns the verification report.
	Run(ctx context.Context) (*VerificationReport, error)
}

// MigrationSummary is the outcome of one migration run.
type MigrationSummary struct {
	// DryRun indicates no writes were issued.
	DryRun bool

	// CategoriesSeeded is the number of default categories created.
	CategoriesSeeded int

	// CategoriesCreated is the number of categories created on demand
	// for labels encountered in inline items.
	CategoriesCreated int

	// FAQsCreated and FAQsUpdated count normaliser upserts.
	FAQsCreated int
	FAQsUpdated int

	// DocumentsProcessed is the number of parent documents examined.
	DocumentsProcessed int

	// DocumentsUpdated is the number of parent documents patched.
	DocumentsUpdated int

	// SlotsConverted counts inline slots turned into references.
	SlotsConverted int

	// SlotsDropped counts invalid inline slots removed from fields.
	SlotsDropped int

	// SlotsFailed counts valid slots left inline after a store error.
	SlotsFailed int

	// TotalFAQs and TotalCategories are the store-wide counts after
	// the run.
	TotalFAQs       int
	TotalCategories int
}

// RepairSummary is the outcome of one orphan repair run.
type RepairSummary struct {
	// OrphansFound is the number of FAQs without a resolvable category.
	OrphansFound int

	// OrphansFixed is the number of FAQs re-assigned to a category.
	OrphansFixed int

	// OrphansRemaining counts FAQs left orphaned, either because the
	// classifier's target category does not exist or the patch failed.
	OrphansRemaining int
}

// SlotViolation pinpoints one offending list-field entry for manual
// remediation.
type SlotViolation struct {
	// DocumentID is the parent document id.
	DocumentID string

	// Field is the list-field name on the parent.
	Field string

	// Position is the slot's 0-indexed position in the field.
	Position int

	// Detail describes the violation: the dangling target id for an
	// invalid reference, or truncated question text for inline data.
	Detail string
}

// VerificationReport is the outcome of one verification run.
type VerificationReport struct {
	// ParentsChecked is the number of parent documents scanned.
	ParentsChecked int

	// ValidReferences counts slots that reference an existing FAQ.
	ValidReferences int

	// InvalidReferences are reference slots whose target is missing.
	InvalidReferences []SlotViolation

	// InlineRemaining are slots still holding inline data.
	InlineRemaining []SlotViolation

	// TotalFAQs, TotalCategories and OrphanedFAQs are store-wide counts.
	TotalFAQs       int
	TotalCategories int
	OrphanedFAQs    int
}

// Passed reports whether the store satisfies every post-migration
// invariant: no inline data, no dangling references, no orphans.
func (r *VerificationReport) Passed() bool {
	return len(r.InlineRemaining) == 0 &&
		len(r.InvalidReferences) == 0 &&
		r.OrphanedFAQs == 0
}
