package services

import (
	"context"

	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/logger"
)

// maxLoggedContent bounds the question text quoted in warnings.
const maxLoggedContent = 60

// RewriteOutcome is the result of rewriting one list field.
type RewriteOutcome struct {
	// Slots is the rewritten field, in input order minus dropped slots.
	Slots []domain.Slot

	// Converted counts inline slots turned into references.
	Converted int

	// PassedThrough counts slots that were already references.
	PassedThrough int

	// Dropped counts invalid inline slots removed from the field.
	Dropped int

	// Failed counts valid inline slots left in place after a store
	// error, so a re-run can retry them.
	Failed int
}

// Changed reports whether the rewritten field differs from the input.
func (o RewriteOutcome) Changed() bool {
	return o.Converted > 0 || o.Dropped > 0
}

// ReferenceRewriter walks a parent document's list field, replacing
// inline items with references while passing through existing
// references untouched. It performs no store writes itself; writes
// happen inside the resolver and normaliser.
type ReferenceRewriter struct {
	resolver   *CategoryResolver
	normalizer *FAQNormalizer
}

// NewReferenceRewriter creates a rewriter over the given resolver and
// normaliser.
func NewReferenceRewriter(resolver *CategoryResolver, normalizer *FAQNormalizer) *ReferenceRewriter {
	return &ReferenceRewriter{resolver: resolver, normalizer: normalizer}
}

// Rewrite processes the slots of one field, in original order.
// docID and field are used for log context only.
//
// Invalid inline items (empty question or answer) are dropped from the
// output entirely; the drop is warned with truncated content so the
// entry can be recovered from the CMS history. A store failure on a
// valid item leaves that slot inline and retryable.
func (rw *ReferenceRewriter) Rewrite(
	ctx context.Context,
	docID, field string,
	slots []domain.Slot,
) RewriteOutcome {
	out := RewriteOutcome{Slots: make([]domain.Slot, 0, len(slots))}

	for i, slot := range slots {
		switch slot.Kind {
		case domain.SlotReference:
			// Existing references pass through unvalidated here;
			// dangling targets are the verification pass's job.
			out.Slots = append(out.Slots, slot)
			out.PassedThrough++

		case domain.SlotInline:
			item := *slot.Inline
			if err := item.Validate(); err != nil {
				logger.Warn("%s.%s[%d]: dropping invalid item (question=%q, answer empty=%t)",
					docID, field, i, truncate(item.Question), item.Answer == "")
				out.Dropped++
				continue
			}

			categoryID := rw.resolver.Resolve(ctx, item.CategoryLabel)
			faqID, err := rw.normalizer.Normalize(ctx, item, categoryID, i+1)
			if err != nil {
				logger.Error("%s.%s[%d]: %v, leaving item inline", docID, field, i, err)
				out.Slots = append(out.Slots, slot)
				out.Failed++
				continue
			}

			out.Slots = append(out.Slots, domain.ReferenceSlot(faqID))
			out.Converted++
		}
	}

	return out
}

// truncate shortens text for log output.
func truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxLoggedContent {
		return text
	}
	return string(runes[:maxLoggedContent]) + "…"
}
