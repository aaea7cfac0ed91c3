package driven

import (
	"context"

	"github.com/skolica-digital/faqctl/internal/core/domain"
)

// ContentStore is the document store the migration pipeline runs
// against. Writes are idempotent upserts keyed by deterministic ids;
// the store only needs per-document atomicity, no transactions across
// documents.
type ContentStore interface {
	// Ping verifies the store is reachable. Called once at startup;
	// a failure is fatal before any mutation begins.
	Ping(ctx context.Context) error

	// ListParents returns all parent documents of the FAQ-bearing type.
	ListParents(ctx context.Context) ([]domain.ParentDocument, error)

	// PatchParentFields replaces the named list fields on one parent
	// document in a single patch.
	PatchParentFields(ctx context.Context, id string, fields map[string][]domain.Slot) error

	// GetCategory retrieves a category by id.
	// Returns domain.ErrNotFound if it does not exist.
	GetCategory(ctx context.Context, id string) (*domain.Category, error)

	// ListCategories returns all category documents.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	// CreateCategoryIfNotExists upserts a category by its id.
	// A no-op if the id already exists; existing categories are never
	// mutated by this pipeline.
	CreateCategoryIfNotExists(ctx context.Context, cat domain.Category) error

	// GetFAQ retrieves a standalone FAQ by id.
	// Returns domain.ErrNotFound if it does not exist.
	GetFAQ(ctx context.Context, id string) (*domain.FAQ, error)

	// ListFAQs returns all standalone FAQ documents.
	ListFAQs(ctx context.Context) ([]domain.FAQ, error)

	// CreateFAQ creates a new FAQ document.
	CreateFAQ(ctx context.Context, faq domain.FAQ) error

	// UpdateFAQ patches the mutable fields (question, answer, category
	// reference, order) of an existing FAQ.
	UpdateFAQ(ctx context.Context, faq domain.FAQ) error

	// SetFAQCategory patches only the category reference of an FAQ.
	// Used by the repair pass.
	SetFAQCategory(ctx context.Context, id, categoryID string) error

	// ListOrphanFAQs returns FAQs whose category reference does not
	// resolve to an existing category document.
	ListOrphanFAQs(ctx context.Context) ([]domain.FAQ, error)
}
