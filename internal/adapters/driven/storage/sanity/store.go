package sanity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// Store adapts the content-API client to driven.ContentStore.
type Store struct {
	client *Client
	fields []string
}

// NewStore creates a content store over the given client. fields are
// the FAQ-bearing list fields fetched from parent documents.
func NewStore(client *Client, fields []string) *Store {
	return &Store{client: client, fields: fields}
}

// Ping verifies the API is reachable with the configured credentials.
func (s *Store) Ping(ctx context.Context) error {
	var count int
	if err := s.client.Query(ctx, `count(*[_type == $type])`, map[string]any{"type": typeCategory}, &count); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// ListParents fetches all parent documents of the page type.
func (s *Store) ListParents(ctx context.Context) ([]domain.ParentDocument, error) {
	var raw []json.RawMessage
	query := `*[_type == $type && !(_id in path("drafts.**"))]`
	if err := s.client.Query(ctx, query, map[string]any{"type": typePage}, &raw); err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}

	parents := make([]domain.ParentDocument, 0, len(raw))
	for _, doc := range raw {
		env, err := decodeParent(doc, s.fields)
		if err != nil {
			return nil, fmt.Errorf("decode parent: %w", err)
		}

		parent := domain.ParentDocument{
			ID:     env.ID,
			Type:   env.Type,
			Title:  env.Title,
			Fields: make(map[string][]domain.Slot, len(env.Fields)),
		}
		for field, value := range env.Fields {
			var slots []slotDoc
			if err := json.Unmarshal(value, &slots); err != nil {
				return nil, fmt.Errorf("decode %s.%s: %w", env.ID, field, err)
			}
			converted := make([]domain.Slot, 0, len(slots))
			for _, slot := range slots {
				converted = append(converted, slot.toDomain())
			}
			parent.Fields[field] = converted
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

// PatchParentFields replaces the named list fields in a single patch
// mutation.
func (s *Store) PatchParentFields(ctx context.Context, id string, fields map[string][]domain.Slot) error {
	set := make(map[string]any, len(fields))
	for field, slots := range fields {
		set[field] = slotsToWire(slots)
	}

	err := s.client.Mutate(ctx, []mutation{
		{Patch: &patchSpec{ID: id, Set: set}},
	})
	if err != nil {
		return fmt.Errorf("patch parent %s: %w", id, err)
	}
	return nil
}

// GetCategory retrieves one category by id.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var doc *categoryDoc
	if err := s.client.Query(ctx, `*[_id == $id][0]`, map[string]any{"id": id}, &doc); err != nil {
		return nil, fmt.Errorf("get category %s: %w", id, err)
	}
	if doc == nil || doc.ID == "" {
		return nil, domain.ErrNotFound
	}
	cat := doc.toDomain()
	return &cat, nil
}

// ListCategories returns all category documents.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var docs []categoryDoc
	if err := s.client.Query(ctx, `*[_type == $type] | order(order asc)`, map[string]any{"type": typeCategory}, &docs); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	cats := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		cats = append(cats, doc.toDomain())
	}
	return cats, nil
}

// CreateCategoryIfNotExists upserts a category; the API guarantees the
// no-op when the id exists.
func (s *Store) CreateCategoryIfNotExists(ctx context.Context, cat domain.Category) error {
	err := s.client.Mutate(ctx, []mutation{
		{CreateIfNotExists: categoryToWire(cat)},
	})
	if err != nil {
		return fmt.Errorf("create category %s: %w", cat.ID, err)
	}
	return nil
}

// GetFAQ retrieves one FAQ by id.
func (s *Store) GetFAQ(ctx context.Context, id string) (*domain.FAQ, error) {
	var doc *faqDoc
	if err := s.client.Query(ctx, `*[_id == $id][0]`, map[string]any{"id": id}, &doc); err != nil {
		return nil, fmt.Errorf("get faq %s: %w", id, err)
	}
	if doc == nil || doc.ID == "" {
		return nil, domain.ErrNotFound
	}
	faq := doc.toDomain()
	return &faq, nil
}

// ListFAQs returns all standalone FAQ documents.
func (s *Store) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	var docs []faqDoc
	if err := s.client.Query(ctx, `*[_type == $type] | order(order asc)`, map[string]any{"type": typeFAQ}, &docs); err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	faqs := make([]domain.FAQ, 0, len(docs))
	for _, doc := range docs {
		faqs = append(faqs, doc.toDomain())
	}
	return faqs, nil
}

// CreateFAQ creates a new FAQ document.
func (s *Store) CreateFAQ(ctx context.Context, faq domain.FAQ) error {
	err := s.client.Mutate(ctx, []mutation{
		{Create: faqToWire(faq)},
	})
	if err != nil {
		return fmt.Errorf("create faq %s: %w", faq.ID, err)
	}
	return nil
}

// UpdateFAQ patches the mutable fields of an existing FAQ.
func (s *Store) UpdateFAQ(ctx context.Context, faq domain.FAQ) error {
	err := s.client.Mutate(ctx, []mutation{
		{Patch: &patchSpec{ID: faq.ID, Set: map[string]any{
			"question": faq.Question,
			"answer":   faq.Answer,
			"category": newRef(faq.CategoryID),
			"order":    faq.Order,
		}}},
	})
	if err != nil {
		return fmt.Errorf("update faq %s: %w", faq.ID, err)
	}
	return nil
}

// SetFAQCategory patches only the category reference of an FAQ.
func (s *Store) SetFAQCategory(ctx context.Context, id, categoryID string) error {
	err := s.client.Mutate(ctx, []mutation{
		{Patch: &patchSpec{ID: id, Set: map[string]any{
			"category": newRef(categoryID),
		}}},
	})
	if err != nil {
		return fmt.Errorf("set faq category %s: %w", id, err)
	}
	return nil
}

// ListOrphanFAQs returns FAQs whose category reference does not
// resolve. The dereference in the filter does the resolution
// server-side.
func (s *Store) ListOrphanFAQs(ctx context.Context) ([]domain.FAQ, error) {
	var docs []faqDoc
	query := `*[_type == $type && !defined(category->_id)]`
	if err := s.client.Query(ctx, query, map[string]any{"type": typeFAQ}, &docs); err != nil {
		return nil, fmt.Errorf("list orphans: %w", err)
	}
	faqs := make([]domain.FAQ, 0, len(docs))
	for _, doc := range docs {
		faqs = append(faqs, doc.toDomain())
	}
	return faqs, nil
}
