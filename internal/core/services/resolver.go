package services

import (
	"context"
	"errors"

	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
	"github.com/skolica-digital/faqctl/internal/logger"
)

// CategoryResolver ensures a category document exists for a label,
// creating one deterministically if absent.
//
// Resolution never fails: a store error degrades to the default
// category id so downstream processing continues. Every FAQ ends up
// with a category, even if not always the correct one.
type CategoryResolver struct {
	store  driven.ContentStore
	dryRun bool

	// created tracks ids created (or staged, in dry-run) this run,
	// so repeated labels cost one store round-trip, not two.
	created map[string]bool
}

// NewCategoryResolver creates a resolver against the given store.
// In dry-run mode category creation is staged and reported, not written.
func NewCategoryResolver(store driven.ContentStore, dryRun bool) *CategoryResolver {
	return &CategoryResolver{
		store:   store,
		dryRun:  dryRun,
		created: make(map[string]bool),
	}
}

// Resolve returns the category id for a free-text label, creating the
// category document on first use. An empty label resolves to the
// default category.
func (r *CategoryResolver) Resolve(ctx context.Context, label string) string {
	if label == "" {
		label = domain.DefaultCategoryLabel
	}
	id := domain.CategoryID(label)

	if r.created[id] {
		return id
	}

	_, err := r.store.GetCategory(ctx, id)
	if err == nil {
		return id
	}
	if !errors.Is(err, domain.ErrNotFound) {
		logger.Error("category lookup %q: %v, falling back to %s", label, err, domain.DefaultCategoryID)
		return domain.DefaultCategoryID
	}

	cat := domain.NewCategory(label, len(r.created))
	if r.dryRun {
		logger.Info("dry-run: would create category %s (%q)", cat.ID, label)
		r.created[id] = true
		return id
	}

	if err := r.store.CreateCategoryIfNotExists(ctx, cat); err != nil {
		logger.Error("create category %q: %v, falling back to %s", label, err, domain.DefaultCategoryID)
		return domain.DefaultCategoryID
	}

	logger.Info("created category %s (%q)", cat.ID, label)
	r.created[id] = true
	return id
}

// Created returns how many categories this resolver created (or would
// create, in dry-run) during the run.
func (r *CategoryResolver) Created() int {
	return len(r.created)
}
