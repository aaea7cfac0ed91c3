package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skolica-digital/faqctl/internal/adapters/driven/storage/memory"
	"github.com/skolica-digital/faqctl/internal/core/domain"
)

func newRewriter(store *memory.ContentStore) *ReferenceRewriter {
	return NewReferenceRewriter(
		NewCategoryResolver(store, false),
		NewFAQNormalizer(store, false),
	)
}

func TestReferenceRewriter_ConvertsInlineItems(t *testing.T) {
	store := memory.NewContentStore()
	rewriter := newRewriter(store)
	ctx := context.Background()

	slots := []domain.Slot{
		domain.InlineSlot(domain.InlineFAQItem{Question: "Prvo pitanje", Answer: "A1", CategoryLabel: "Upis"}),
		domain.InlineSlot(domain.InlineFAQItem{Question: "Drugo pitanje", Answer: "A2"}),
	}

	out := rewriter.Rewrite(ctx, "page.home", "faqs", slots)
	assert.Equal(t, 2, out.Converted)
	assert.True(t, out.Changed())
	require.Len(t, out.Slots, 2)

	// Output ordering matches input ordering.
	assert.Equal(t, "faq.prvo-pitanje", out.Slots[0].Ref.TargetID)
	assert.Equal(t, "faq.drugo-pitanje", out.Slots[1].Ref.TargetID)

	// Fallback order is the 1-indexed position.
	second, err := store.GetFAQ(ctx, "faq.drugo-pitanje")
	require.NoError(t, err)
	assert.Equal(t, 2, second.Order)

	// The unlabeled item landed in the default category.
	assert.Equal(t, domain.DefaultCategoryID, second.CategoryID)
}

func TestReferenceRewriter_PassesThroughReferences(t *testing.T) {
	store := memory.NewContentStore()
	rewriter := newRewriter(store)

	// Target is not re-validated at this stage; that is verification's job.
	slots := []domain.Slot{domain.ReferenceSlot("faq.whatever")}
	out := rewriter.Rewrite(context.Background(), "page.home", "faqs", slots)

	assert.Equal(t, 1, out.PassedThrough)
	assert.False(t, out.Changed())
	require.Len(t, out.Slots, 1)
	assert.Equal(t, "faq.whatever", out.Slots[0].Ref.TargetID)
}

func TestReferenceRewriter_DropsInvalidItems(t *testing.T) {
	store := memory.NewContentStore()
	rewriter := newRewriter(store)

	slots := []domain.Slot{
		domain.InlineSlot(domain.InlineFAQItem{Question: "Valid", Answer: "A"}),
		domain.InlineSlot(domain.InlineFAQItem{Question: "No answer"}),
		domain.ReferenceSlot("faq.kept"),
	}

	out := rewriter.Rewrite(context.Background(), "page.home", "faqs", slots)
	assert.Equal(t, 1, out.Converted)
	assert.Equal(t, 1, out.Dropped)
	assert.Equal(t, 1, out.PassedThrough)

	// The invalid slot is gone, not replaced with a broken reference.
	require.Len(t, out.Slots, 2)
	assert.Equal(t, "faq.valid", out.Slots[0].Ref.TargetID)
	assert.Equal(t, "faq.kept", out.Slots[1].Ref.TargetID)
}

func TestReferenceRewriter_StoreFailureLeavesSlotInline(t *testing.T) {
	store := memory.NewContentStore()
	store.FailFAQWrites = map[string]error{"faq.bad": errors.New("write failed")}
	rewriter := newRewriter(store)

	slots := []domain.Slot{
		domain.InlineSlot(domain.InlineFAQItem{Question: "Bad", Answer: "A"}),
		domain.InlineSlot(domain.InlineFAQItem{Question: "Good", Answer: "A"}),
	}

	out := rewriter.Rewrite(context.Background(), "page.home", "faqs", slots)
	assert.Equal(t, 1, out.Failed)
	assert.Equal(t, 1, out.Converted)

	// The failed item stays inline so a re-run can retry it;
	// siblings continue.
	require.Len(t, out.Slots, 2)
	assert.Equal(t, domain.SlotInline, out.Slots[0].Kind)
	assert.Equal(t, domain.SlotReference, out.Slots[1].Kind)
}
