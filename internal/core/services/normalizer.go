package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
	"github.com/skolica-digital/faqctl/internal/logger"
)

// FAQNormalizer converts one inline FAQ item into a standalone FAQ
// document with a deterministic id, upserting it.
//
// The id derives from the question text, so the same question always
// maps to the same document: re-running with edited source content
// converges on the edited values instead of diverging.
type FAQNormalizer struct {
	store  driven.ContentStore
	dryRun bool

	// staged mimics created documents in dry-run mode so repeated
	// questions behave as they would against a live store.
	staged map[string]bool

	createdCount int
	updatedCount int
}

// NewFAQNormalizer creates a normaliser against the given store.
func NewFAQNormalizer(store driven.ContentStore, dryRun bool) *FAQNormalizer {
	return &FAQNormalizer{
		store:  store,
		dryRun: dryRun,
		staged: make(map[string]bool),
	}
}

// Normalize upserts the standalone FAQ for an inline item and returns
// its id. The caller validates the item first; fallbackOrder is the
// item's 1-indexed position in its source list, used when the item
// carries no explicit order.
//
// Store failures are returned to the caller: the specific item fails,
// sibling items continue.
func (n *FAQNormalizer) Normalize(
	ctx context.Context,
	item domain.InlineFAQItem,
	categoryID string,
	fallbackOrder int,
) (string, error) {
	id := domain.FAQID(item.Question)

	order := item.Order
	if order == 0 {
		order = fallbackOrder
	}

	faq := domain.FAQ{
		ID:         id,
		Question:   item.Question,
		Answer:     item.Answer,
		CategoryID: categoryID,
		Order:      order,
	}

	if n.dryRun && n.staged[id] {
		return id, nil
	}

	existing, err := n.store.GetFAQ(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if n.dryRun {
			logger.Info("dry-run: would create FAQ %s", id)
			n.staged[id] = true
			n.createdCount++
			return id, nil
		}
		if err := n.store.CreateFAQ(ctx, faq); err != nil {
			return "", fmt.Errorf("create faq %s: %w", id, err)
		}
		logger.Debug("created FAQ %s", id)
		n.createdCount++

	case err != nil:
		return "", fmt.Errorf("get faq %s: %w", id, err)

	default:
		if *existing == faq {
			// Already converged, skip the no-op patch.
			return id, nil
		}
		if n.dryRun {
			logger.Info("dry-run: would update FAQ %s", id)
			n.updatedCount++
			return id, nil
		}
		if err := n.store.UpdateFAQ(ctx, faq); err != nil {
			return "", fmt.Errorf("update faq %s: %w", id, err)
		}
		logger.Debug("updated FAQ %s", id)
		n.updatedCount++
	}

	return id, nil
}

// Created returns how many FAQ documents were created this run.
func (n *FAQNormalizer) Created() int { return n.createdCount }

// Updated returns how many FAQ documents were patched this run.
func (n *FAQNormalizer) Updated() int { return n.updatedCount }
