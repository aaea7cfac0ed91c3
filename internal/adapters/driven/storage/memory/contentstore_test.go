package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skolica-digital/faqctl/internal/core/domain"
)

func TestContentStore_CategoryUpsert(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	cat := domain.NewCategory("Upis", 0)
	require.NoError(t, store.CreateCategoryIfNotExists(ctx, cat))

	got, err := store.GetCategory(ctx, "category.upis")
	require.NoError(t, err)
	assert.Equal(t, "Upis", got.Name)

	// Second create is a no-op, existing categories are never mutated.
	changed := cat
	changed.Name = "Changed"
	require.NoError(t, store.CreateCategoryIfNotExists(ctx, changed))

	got, err = store.GetCategory(ctx, "category.upis")
	require.NoError(t, err)
	assert.Equal(t, "Upis", got.Name)
}

func TestContentStore_GetCategory_NotFound(t *testing.T) {
	store := NewContentStore()

	_, err := store.GetCategory(context.Background(), "category.missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentStore_FAQLifecycle(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	faq := domain.FAQ{ID: "faq.q", Question: "Q", Answer: "A", CategoryID: "category.general", Order: 1}
	require.NoError(t, store.CreateFAQ(ctx, faq))
	assert.ErrorIs(t, store.CreateFAQ(ctx, faq), domain.ErrAlreadyExists)

	faq.Answer = "A2"
	require.NoError(t, store.UpdateFAQ(ctx, faq))

	got, err := store.GetFAQ(ctx, "faq.q")
	require.NoError(t, err)
	assert.Equal(t, "A2", got.Answer)

	require.NoError(t, store.SetFAQCategory(ctx, "faq.q", "category.upis"))
	got, err = store.GetFAQ(ctx, "faq.q")
	require.NoError(t, err)
	assert.Equal(t, "category.upis", got.CategoryID)
}

func TestContentStore_ListOrphanFAQs(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	store.SeedCategory(domain.NewCategory("General", 0))
	store.SeedFAQ(domain.FAQ{ID: "faq.ok", Question: "Q1", Answer: "A", CategoryID: "category.general"})
	store.SeedFAQ(domain.FAQ{ID: "faq.orphan", Question: "Q2", Answer: "A", CategoryID: "category.gone"})

	orphans, err := store.ListOrphanFAQs(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, "faq.orphan", orphans[0].ID)
}

func TestContentStore_PatchParentFields(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	store.SeedParent(domain.ParentDocument{
		ID:   "page.home",
		Type: "page",
		Fields: map[string][]domain.Slot{
			"faqs": {domain.InlineSlot(domain.InlineFAQItem{Question: "Q", Answer: "A"})},
		},
	})

	err := store.PatchParentFields(ctx, "page.home", map[string][]domain.Slot{
		"faqs": {domain.ReferenceSlot("faq.q")},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, store.Patches)

	parents, err := store.ListParents(ctx)
	require.NoError(t, err)
	require.Len(t, parents, 1)
	require.Len(t, parents[0].Fields["faqs"], 1)
	assert.Equal(t, domain.SlotReference, parents[0].Fields["faqs"][0].Kind)

	assert.ErrorIs(t,
		store.PatchParentFields(ctx, "page.missing", nil),
		domain.ErrNotFound)
}

func TestContentStore_ListParents_IsolatedCopies(t *testing.T) {
	store := NewContentStore()
	ctx := context.Background()

	store.SeedParent(domain.ParentDocument{
		ID: "page.home",
		Fields: map[string][]domain.Slot{
			"faqs": {domain.InlineSlot(domain.InlineFAQItem{Question: "Q", Answer: "A"})},
		},
	})

	parents, err := store.ListParents(ctx)
	require.NoError(t, err)
	parents[0].Fields["faqs"][0].Inline.Question = "mutated"

	again, err := store.ListParents(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Q", again[0].Fields["faqs"][0].Inline.Question)
}
