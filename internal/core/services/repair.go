package services

import (
	"context"
	"fmt"

	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
	"github.com/skolica-digital/faqctl/internal/core/ports/driving"
	"github.com/skolica-digital/faqctl/internal/logger"
)

// Ensure OrphanRepairer implements the interface.
var _ driving.Repairer = (*OrphanRepairer)(nil)

// OrphanRepairer re-assigns FAQs whose category reference no longer
// resolves. Classification is delegated to an injected strategy; the
// repairer never creates categories — that is solely the resolver's
// job on the main migration path. Orphans whose classified target is
// missing are skipped with a warning.
type OrphanRepairer struct {
	store    driven.ContentStore
	classify domain.Classifier
}

// NewOrphanRepairer creates a repairer. A nil classifier falls back to
// the default keyword classifier.
func NewOrphanRepairer(store driven.ContentStore, classify domain.Classifier) *OrphanRepairer {
	if classify == nil {
		classify = domain.KeywordClassifier
	}
	return &OrphanRepairer{store: store, classify: classify}
}

// Run finds and re-homes orphaned FAQs.
func (r *OrphanRepairer) Run(ctx context.Context) (*driving.RepairSummary, error) {
	if err := r.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	logger.Section("Repairing orphaned FAQs")

	orphans, err := r.store.ListOrphanFAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orphans: %w", err)
	}

	categories, err := r.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	existing := make(map[string]bool, len(categories))
	for _, cat := range categories {
		existing[cat.ID] = true
	}

	summary := &driving.RepairSummary{OrphansFound: len(orphans)}

	for _, faq := range orphans {
		target := r.classify(faq.Question + " " + faq.Answer)

		if !existing[target] {
			logger.Warn("%s: classified category %s does not exist, skipping", faq.ID, target)
			summary.OrphansRemaining++
			continue
		}

		if err := r.store.SetFAQCategory(ctx, faq.ID, target); err != nil {
			logger.Error("%s: set category %s: %v", faq.ID, target, err)
			summary.OrphansRemaining++
			continue
		}

		logger.Info("%s: re-assigned to %s", faq.ID, target)
		summary.OrphansFixed++
	}

	return summary, nil
}
