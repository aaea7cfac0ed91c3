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

func homePage(slots ...domain.Slot) domain.ParentDocument {
	return domain.ParentDocument{
		ID:    "page.home",
		Type:  "page",
		Title: "Početna",
		Fields: map[string][]domain.Slot{
			"faqs": slots,
		},
	}
}

func TestMigrationOrchestrator_EndToEnd(t *testing.T) {
	store := memory.NewContentStore()
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{
			Question:      "Da li postoji probni čas?",
			Answer:        "Da.",
			CategoryLabel: "Upis",
		}),
	))

	orch := NewMigrationOrchestrator(store, nil, false)
	summary, err := orch.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, summary.CategoriesSeeded)
	assert.Equal(t, 1, summary.DocumentsProcessed)
	assert.Equal(t, 1, summary.DocumentsUpdated)
	assert.Equal(t, 1, summary.SlotsConverted)
	assert.Equal(t, 1, summary.FAQsCreated)
	assert.Equal(t, 1, summary.TotalFAQs)
	assert.Equal(t, 5, summary.TotalCategories)
	// "Upis" is a seeded default, so the resolver created nothing.
	assert.Equal(t, 0, summary.CategoriesCreated)

	ctx := context.Background()
	cat, err := store.GetCategory(ctx, "category.upis")
	require.NoError(t, err)
	assert.Equal(t, "Upis", cat.Name)

	faq, err := store.GetFAQ(ctx, "faq.da-li-postoji-probni-cas")
	require.NoError(t, err)
	assert.Equal(t, "Da.", faq.Answer)
	assert.Equal(t, "category.upis", faq.CategoryID)

	parents, err := store.ListParents(ctx)
	require.NoError(t, err)
	slots := parents[0].Fields["faqs"]
	require.Len(t, slots, 1)
	require.Equal(t, domain.SlotReference, slots[0].Kind)
	assert.Equal(t, "faq.da-li-postoji-probni-cas", slots[0].Ref.TargetID)
}

func TestMigrationOrchestrator_Idempotent(t *testing.T) {
	store := memory.NewContentStore()
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{Question: "Q1", Answer: "A1", CategoryLabel: "Upis"}),
		domain.InlineSlot(domain.InlineFAQItem{Question: "Q2", Answer: "A2"}),
	))

	ctx := context.Background()

	first, err := NewMigrationOrchestrator(store, nil, false).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first.DocumentsUpdated)

	patchesAfterFirst := store.Patches
	faqsAfterFirst, err := store.ListFAQs(ctx)
	require.NoError(t, err)

	second, err := NewMigrationOrchestrator(store, nil, false).Run(ctx)
	require.NoError(t, err)

	// Second run touches nothing.
	assert.Equal(t, 0, second.DocumentsUpdated)
	assert.Equal(t, 0, second.CategoriesSeeded)
	assert.Equal(t, 0, second.FAQsCreated)
	assert.Equal(t, 0, second.FAQsUpdated)
	assert.Equal(t, patchesAfterFirst, store.Patches)

	faqsAfterSecond, err := store.ListFAQs(ctx)
	require.NoError(t, err)
	assert.Equal(t, faqsAfterFirst, faqsAfterSecond)
}

func TestMigrationOrchestrator_MultipleFieldsOnePatch(t *testing.T) {
	store := memory.NewContentStore()
	store.SeedParent(domain.ParentDocument{
		ID:   "page.home",
		Type: "page",
		Fields: map[string][]domain.Slot{
			"faqs": {
				domain.InlineSlot(domain.InlineFAQItem{Question: "Q1", Answer: "A1"}),
			},
			"enrollmentFaqs": {
				domain.InlineSlot(domain.InlineFAQItem{Question: "Q2", Answer: "A2"}),
			},
		},
	})

	summary, err := NewMigrationOrchestrator(store, nil, false).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SlotsConverted)
	assert.Equal(t, 1, summary.DocumentsUpdated)
	// Both staged fields travel in a single patch.
	assert.Equal(t, 1, store.Patches)
}

func TestMigrationOrchestrator_SkipsCleanFields(t *testing.T) {
	store := memory.NewContentStore()
	store.SeedParent(homePage(domain.ReferenceSlot("faq.existing")))

	summary, err := NewMigrationOrchestrator(store, nil, false).Run(context.Background())
	require.NoError(t, err)

	// No inline slots means no rewrite and no no-op write.
	assert.Equal(t, 1, summary.DocumentsProcessed)
	assert.Equal(t, 0, summary.DocumentsUpdated)
	assert.Equal(t, 0, store.Patches)
}

func TestMigrationOrchestrator_PatchFailureContinues(t *testing.T) {
	store := memory.NewContentStore()
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{Question: "Q1", Answer: "A1"}),
	))
	store.SeedParent(domain.ParentDocument{
		ID:   "page.about",
		Type: "page",
		Fields: map[string][]domain.Slot{
			"faqs": {domain.InlineSlot(domain.InlineFAQItem{Question: "Q2", Answer: "A2"})},
		},
	})
	store.FailPatchParent = map[string]error{"page.home": errors.New("conflict")}

	summary, err := NewMigrationOrchestrator(store, nil, false).Run(context.Background())
	require.NoError(t, err)

	// The failing document is logged and skipped, the next one lands.
	assert.Equal(t, 2, summary.DocumentsProcessed)
	assert.Equal(t, 1, summary.DocumentsUpdated)
}

func TestMigrationOrchestrator_ProbeFailureIsFatal(t *testing.T) {
	store := memory.NewContentStore()
	store.PingErr = errors.New("dial tcp: connection refused")

	_, err := NewMigrationOrchestrator(store, nil, false).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestMigrationOrchestrator_DryRunWritesNothing(t *testing.T) {
	store := memory.NewContentStore()
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{Question: "Q1", Answer: "A1", CategoryLabel: "Novo"}),
	))

	summary, err := NewMigrationOrchestrator(store, nil, true).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, summary.DryRun)
	assert.Equal(t, 5, summary.CategoriesSeeded)
	assert.Equal(t, 1, summary.CategoriesCreated)
	assert.Equal(t, 1, summary.FAQsCreated)
	assert.Equal(t, 1, summary.DocumentsUpdated)

	// Nothing actually landed in the store.
	assert.Equal(t, 0, store.Patches)
	assert.Equal(t, 0, summary.TotalFAQs)
	assert.Equal(t, 0, summary.TotalCategories)
}

func TestMigrationOrchestrator_MalformedSlotDropped(t *testing.T) {
	store := memory.NewContentStore()
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{Question: "Valid", Answer: "A"}),
		domain.InlineSlot(domain.InlineFAQItem{Question: "", Answer: "orphan answer"}),
	))

	summary, err := NewMigrationOrchestrator(store, nil, false).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SlotsConverted)
	assert.Equal(t, 1, summary.SlotsDropped)

	parents, err := store.ListParents(context.Background())
	require.NoError(t, err)
	require.Len(t, parents[0].Fields["faqs"], 1)
	assert.Equal(t, domain.SlotReference, parents[0].Fields["faqs"][0].Kind)
}
