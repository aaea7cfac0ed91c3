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

func TestVerifier_CleanStorePasses(t *testing.T) {
	store := seededStore()
	store.SeedFAQ(domain.FAQ{
		ID: "faq.q", Question: "Q", Answer: "A",
		CategoryID: domain.DefaultCategoryID,
	})
	store.SeedParent(homePage(domain.ReferenceSlot("faq.q")))

	report, err := NewVerifier(store).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Passed())
	assert.Equal(t, 1, report.ParentsChecked)
	assert.Equal(t, 1, report.ValidReferences)
	assert.Equal(t, 1, report.TotalFAQs)
	assert.Equal(t, 5, report.TotalCategories)
	assert.Equal(t, 0, report.OrphanedFAQs)
}

func TestVerifier_ReportsInlineRemaining(t *testing.T) {
	store := seededStore()
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{Question: "Left behind", Answer: "A"}),
	))

	report, err := NewVerifier(store).Run(context.Background())
	require.NoError(t, err)

	// Verification reports, never fixes.
	assert.False(t, report.Passed())
	require.Len(t, report.InlineRemaining, 1)
	v := report.InlineRemaining[0]
	assert.Equal(t, "page.home", v.DocumentID)
	assert.Equal(t, "faqs", v.Field)
	assert.Equal(t, 0, v.Position)
	assert.Contains(t, v.Detail, "Left behind")
}

func TestVerifier_ReportsInvalidReferences(t *testing.T) {
	store := seededStore()
	store.SeedParent(homePage(domain.ReferenceSlot("faq.deleted")))

	report, err := NewVerifier(store).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Passed())
	require.Len(t, report.InvalidReferences, 1)
	assert.Equal(t, "faq.deleted", report.InvalidReferences[0].Detail)
}

func TestVerifier_ReportsOrphans(t *testing.T) {
	store := seededStore()
	store.SeedFAQ(domain.FAQ{
		ID: "faq.orphan", Question: "Q", Answer: "A",
		CategoryID: "category.gone",
	})

	report, err := NewVerifier(store).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Passed())
	assert.Equal(t, 1, report.OrphanedFAQs)
}

func TestVerifier_ReadOnly(t *testing.T) {
	store := seededStore()
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{Question: "Q", Answer: "A"}),
	))

	_, err := NewVerifier(store).Run(context.Background())
	require.NoError(t, err)

	// The store is untouched: the inline slot is still there.
	assert.Equal(t, 0, store.Patches)
	parents, err := store.ListParents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SlotInline, parents[0].Fields["faqs"][0].Kind)
}

func TestVerifier_AfterFullPipeline(t *testing.T) {
	store := memory.NewContentStore()
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{
			Question:      "Da li postoji probni čas?",
			Answer:        "Da.",
			CategoryLabel: "Upis",
		}),
	))

	ctx := context.Background()
	_, err := NewMigrationOrchestrator(store, nil, false).Run(ctx)
	require.NoError(t, err)
	_, err = NewOrphanRepairer(store, nil).Run(ctx)
	require.NoError(t, err)

	report, err := NewVerifier(store).Run(ctx)
	require.NoError(t, err)

	assert.True(t, report.Passed())
	assert.Empty(t, report.InlineRemaining)
	assert.Empty(t, report.InvalidReferences)
	assert.Equal(t, 0, report.OrphanedFAQs)
	assert.Equal(t, 1, report.ValidReferences)
}

func TestVerifier_PartialFailureHonesty(t *testing.T) {
	// Simulate a partial run: one item migrated, one store write that
	// failed and left its slot inline.
	store := memory.NewContentStore()
	store.FailFAQWrites = map[string]error{"faq.drugo": errors.New("write failed")}
	store.SeedParent(homePage(
		domain.InlineSlot(domain.InlineFAQItem{Question: "Prvo", Answer: "A"}),
		domain.InlineSlot(domain.InlineFAQItem{Question: "Drugo", Answer: "A"}),
	))

	ctx := context.Background()
	summary, err := NewMigrationOrchestrator(store, nil, false).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SlotsFailed)

	report, err := NewVerifier(store).Run(ctx)
	require.NoError(t, err)

	assert.False(t, report.Passed())
	require.Len(t, report.InlineRemaining, 1)
	assert.Contains(t, report.InlineRemaining[0].Detail, "Drugo")
}

func TestVerifier_ProbeFailureIsFatal(t *testing.T) {
	store := memory.NewContentStore()
	store.PingErr = errors.New("unreachable")

	_, err := NewVerifier(store).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
