// Package memory provides an in-memory ContentStore.
// It backs unit tests and mirrors the live adapter's semantics,
// including deep-copying documents on the way in and out.
package memory

import (
	"context"
	"sync"

	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentStore.
type ContentStore struct {
	mu         sync.RWMutex
	parents    map[string]domain.ParentDocument
	parentIDs  []string // insertion order, the store's "default query ordering"
	faqs       map[string]domain.FAQ
	faqIDs     []string
	categories map[string]domain.Category
	catIDs     []string

	// PingErr, when set, is returned by Ping to simulate an
	// unreachable store.
	PingErr error

	// FailPatchParent, when set, fails PatchParentFields for that
	// document id. FailFAQWrites fails CreateFAQ/UpdateFAQ for ids in
	// the set. Both simulate per-item store failures in tests.
	FailPatchParent map[string]error
	FailFAQWrites   map[string]error

	// Patches counts parent document patches, for idempotence checks.
	Patches int
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		parents:    make(map[string]domain.ParentDocument),
		faqs:       make(map[string]domain.FAQ),
		categories: make(map[string]domain.Category),
	}
}

// Ping verifies the store is reachable.
func (s *ContentStore) Ping(_ context.Context) error {
	return s.PingErr
}

// SeedParent inserts or replaces a parent document. Test setup helper.
func (s *ContentStore) SeedParent(doc domain.ParentDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parents[doc.ID]; !ok {
		s.parentIDs = append(s.parentIDs, doc.ID)
	}
	s.parents[doc.ID] = copyParent(doc)
}

// SeedFAQ inserts or replaces an FAQ document. Test setup helper.
func (s *ContentStore) SeedFAQ(faq domain.FAQ) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.faqs[faq.ID]; !ok {
		s.faqIDs = append(s.faqIDs, faq.ID)
	}
	s.faqs[faq.ID] = faq
}

// SeedCategory inserts or replaces a category document. Test setup helper.
func (s *ContentStore) SeedCategory(cat domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[cat.ID]; !ok {
		s.catIDs = append(s.catIDs, cat.ID)
	}
	s.categories[cat.ID] = cat
}

// ListParents returns all parent documents in insertion order.
func (s *ContentStore) ListParents(_ context.Context) ([]domain.ParentDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ParentDocument, 0, len(s.parentIDs))
	for _, id := range s.parentIDs {
		result = append(result, copyParent(s.parents[id]))
	}
	return result, nil
}

// PatchParentFields replaces the named list fields on one parent.
func (s *ContentStore) PatchParentFields(_ context.Context, id string, fields map[string][]domain.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.FailPatchParent[id]; ok {
		return err
	}

	doc, ok := s.parents[id]
	if !ok {
		return domain.ErrNotFound
	}
	for field, slots := range fields {
		doc.Fields[field] = copySlots(slots)
	}
	s.parents[id] = doc
	s.Patches++
	return nil
}

// GetCategory retrieves a category by id.
func (s *ContentStore) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cat, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cat, nil
}

// ListCategories returns all categories in insertion order.
func (s *ContentStore) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Category, 0, len(s.catIDs))
	for _, id := range s.catIDs {
		result = append(result, s.categories[id])
	}
	return result, nil
}

// CreateCategoryIfNotExists upserts a category by id; no-op when present.
func (s *ContentStore) CreateCategoryIfNotExists(_ context.Context, cat domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[cat.ID]; ok {
		return nil
	}
	s.categories[cat.ID] = cat
	s.catIDs = append(s.catIDs, cat.ID)
	return nil
}

// GetFAQ retrieves an FAQ by id.
func (s *ContentStore) GetFAQ(_ context.Context, id string) (*domain.FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	faq, ok := s.faqs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &faq, nil
}

// ListFAQs returns all FAQs in insertion order.
func (s *ContentStore) ListFAQs(_ context.Context) ([]domain.FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.FAQ, 0, len(s.faqIDs))
	for _, id := range s.faqIDs {
		result = append(result, s.faqs[id])
	}
	return result, nil
}

// CreateFAQ creates a new FAQ document.
func (s *ContentStore) CreateFAQ(_ context.Context, faq domain.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailFAQWrites[faq.ID]; ok {
		return err
	}
	if _, ok := s.faqs[faq.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.faqs[faq.ID] = faq
	s.faqIDs = append(s.faqIDs, faq.ID)
	return nil
}

// UpdateFAQ patches the mutable fields of an existing FAQ.
func (s *ContentStore) UpdateFAQ(_ context.Context, faq domain.FAQ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.FailFAQWrites[faq.ID]; ok {
		return err
	}
	if _, ok := s.faqs[faq.ID]; !ok {
		return domain.ErrNotFound
	}
	s.faqs[faq.ID] = faq
	return nil
}

// SetFAQCategory patches only the category reference of an FAQ.
func (s *ContentStore) SetFAQCategory(_ context.Context, id, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	faq, ok := s.faqs[id]
	if !ok {
		return domain.ErrNotFound
	}
	faq.CategoryID = categoryID
	s.faqs[id] = faq
	return nil
}

// ListOrphanFAQs returns FAQs whose category does not resolve.
func (s *ContentStore) ListOrphanFAQs(_ context.Context) ([]domain.FAQ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.FAQ
	for _, id := range s.faqIDs {
		faq := s.faqs[id]
		if _, ok := s.categories[faq.CategoryID]; !ok {
			result = append(result, faq)
		}
	}
	return result, nil
}

func copyParent(doc domain.ParentDocument) domain.ParentDocument {
	out := doc
	out.Fields = make(map[string][]domain.Slot, len(doc.Fields))
	for field, slots := range doc.Fields {
		out.Fields[field] = copySlots(slots)
	}
	return out
}

func copySlots(slots []domain.Slot) []domain.Slot {
	out := make([]domain.Slot, len(slots))
	for i, slot := range slots {
		out[i] = slot
		if slot.Inline != nil {
			item := *slot.Inline
			out[i].Inline = &item
		}
		if slot.Ref != nil {
			ref := *slot.Ref
			out[i].Ref = &ref
		}
	}
	return out
}
