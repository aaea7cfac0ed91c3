package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
	"github.com/skolica-digital/faqctl/internal/core/ports/driving"
	"github.com/skolica-digital/faqctl/internal/logger"
)

// Ensure Verifier implements the interface.
var _ driving.Verifier = (*Verifier)(nil)

// Verifier re-scans the store and checks the post-migration
// invariants: no inline data in any list field, every reference target
// exists, no FAQ is orphaned. It performs no writes, so it is safe to
// run at any time, including mid-migration.
type Verifier struct {
	store driven.ContentStore
}

// NewVerifier creates a verifier against the given store.
func NewVerifier(store driven.ContentStore) *Verifier {
	return &Verifier{store: store}
}

// Run produces the verification report. Violations are accumulated
// into the report, never raised as errors; the returned error covers
// only the inability to read the store.
func (v *Verifier) Run(ctx context.Context) (*driving.VerificationReport, error) {
	if err := v.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	logger.Section("Verifying migration")

	faqs, err := v.store.ListFAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	faqIDs := make(map[string]bool, len(faqs))
	for _, faq := range faqs {
		faqIDs[faq.ID] = true
	}

	categories, err := v.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	orphans, err := v.store.ListOrphanFAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orphans: %w", err)
	}

	parents, err := v.store.ListParents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}

	report := &driving.VerificationReport{
		TotalFAQs:       len(faqs),
		TotalCategories: len(categories),
		OrphanedFAQs:    len(orphans),
	}

	for _, parent := range parents {
		report.ParentsChecked++
		v.checkParent(parent, faqIDs, report)
	}

	return report, nil
}

// checkParent partitions every slot of every carried field into valid
// reference, invalid reference, or inline data remaining.
func (v *Verifier) checkParent(
	parent domain.ParentDocument,
	faqIDs map[string]bool,
	report *driving.VerificationReport,
) {
	fields := make([]string, 0, len(parent.Fields))
	for field := range parent.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		for i, slot := range parent.Fields[field] {
			switch slot.Kind {
			case domain.SlotReference:
				if faqIDs[slot.Ref.TargetID] {
					report.ValidReferences++
					continue
				}
				logger.Warn("%s.%s[%d]: reference to missing %s", parent.ID, field, i, slot.Ref.TargetID)
				report.InvalidReferences = append(report.InvalidReferences, driving.SlotViolation{
					DocumentID: parent.ID,
					Field:      field,
					Position:   i,
					Detail:     slot.Ref.TargetID,
				})

			case domain.SlotInline:
				logger.Warn("%s.%s[%d]: inline data remaining", parent.ID, field, i)
				report.InlineRemaining = append(report.InlineRemaining, driving.SlotViolation{
					DocumentID: parent.ID,
					Field:      field,
					Position:   i,
					Detail:     truncate(slot.Inline.Question),
				})
			}
		}
	}
}
