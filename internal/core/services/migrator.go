package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
	"github.com/skolica-digital/faqctl/internal/core/ports/driving"
	"github.com/skolica-digital/faqctl/internal/logger"
)

// DefaultFAQFields are the FAQ-bearing list fields checked on every
// parent document. Both fields are checked independently.
var DefaultFAQFields = []string{"faqs", "enrollmentFaqs"}

// Ensure MigrationOrchestrator implements the interface.
var _ driving.Migrator = (*MigrationOrchestrator)(nil)

// MigrationOrchestrator runs the full inline-to-reference migration:
// seed default categories, then rewrite every FAQ-bearing field of
// every parent document, patching a parent at most once per run.
type MigrationOrchestrator struct {
	store  driven.ContentStore
	fields []string
	dryRun bool
}

// NewMigrationOrchestrator creates the orchestrator. fields may be nil
// to check the default FAQ-bearing fields.
func NewMigrationOrchestrator(store driven.ContentStore, fields []string, dryRun bool) *MigrationOrchestrator {
	if len(fields) == 0 {
		fields = DefaultFAQFields
	}
	return &MigrationOrchestrator{store: store, fields: fields, dryRun: dryRun}
}

// Run executes the migration. The returned error is fatal (failed
// startup probe); data-quality and per-document failures are counted
// in the summary and the run still completes.
func (o *MigrationOrchestrator) Run(ctx context.Context) (*driving.MigrationSummary, error) {
	if err := o.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	summary := &driving.MigrationSummary{DryRun: o.dryRun}

	logger.Section("Seeding default categories")
	seeded, err := o.seedDefaults(ctx)
	if err != nil {
		return nil, err
	}
	summary.CategoriesSeeded = seeded

	resolver := NewCategoryResolver(o.store, o.dryRun)
	normalizer := NewFAQNormalizer(o.store, o.dryRun)
	rewriter := NewReferenceRewriter(resolver, normalizer)

	logger.Section("Migrating parent documents")
	parents, err := o.store.ListParents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}

	for _, parent := range parents {
		summary.DocumentsProcessed++

		staged := make(map[string][]domain.Slot)
		for _, field := range o.fields {
			slots, ok := parent.Fields[field]
			if !ok || !parent.HasInline(field) {
				continue
			}

			outcome := rewriter.Rewrite(ctx, parent.ID, field, slots)
			summary.SlotsConverted += outcome.Converted
			summary.SlotsDropped += outcome.Dropped
			summary.SlotsFailed += outcome.Failed

			if outcome.Changed() {
				staged[field] = outcome.Slots
			}
		}

		if len(staged) == 0 {
			logger.Debug("%s: nothing to migrate", parent.ID)
			continue
		}

		// One patch per document, covering every staged field.
		if o.dryRun {
			logger.Info("dry-run: would patch %s (%d fields)", parent.ID, len(staged))
			summary.DocumentsUpdated++
			continue
		}
		if err := o.store.PatchParentFields(ctx, parent.ID, staged); err != nil {
			logger.Error("patch %s: %v, continuing with next document", parent.ID, err)
			continue
		}
		logger.Info("patched %s (%d fields)", parent.ID, len(staged))
		summary.DocumentsUpdated++
	}

	summary.CategoriesCreated = resolver.Created()
	summary.FAQsCreated = normalizer.Created()
	summary.FAQsUpdated = normalizer.Updated()

	o.fillTotals(ctx, summary)
	return summary, nil
}

// seedDefaults creates any missing default category, checking
// existence first so re-runs seed nothing.
func (o *MigrationOrchestrator) seedDefaults(ctx context.Context) (int, error) {
	seeded := 0
	for _, cat := range domain.DefaultCategories() {
		_, err := o.store.GetCategory(ctx, cat.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return seeded, fmt.Errorf("get category %s: %w", cat.ID, err)
		}

		if o.dryRun {
			logger.Info("dry-run: would seed category %s", cat.ID)
			seeded++
			continue
		}
		if err := o.store.CreateCategoryIfNotExists(ctx, cat); err != nil {
			return seeded, fmt.Errorf("seed category %s: %w", cat.ID, err)
		}
		logger.Info("seeded category %s", cat.ID)
		seeded++
	}
	return seeded, nil
}

// fillTotals records the store-wide counts after the run, best effort.
func (o *MigrationOrchestrator) fillTotals(ctx context.Context, summary *driving.MigrationSummary) {
	faqs, err := o.store.ListFAQs(ctx)
	if err != nil {
		logger.Warn("count faqs: %v", err)
	} else {
		summary.TotalFAQs = len(faqs)
	}

	cats, err := o.store.ListCategories(ctx)
	if err != nil {
		logger.Warn("count categories: %v", err)
	} else {
		summary.TotalCategories = len(cats)
	}
}
