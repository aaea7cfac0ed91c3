// Package sqlite implements driven.ContentStore over a local SQLite
// snapshot of the CMS dataset. It lets an operator rehearse a
// migration offline against an exported snapshot before touching the
// live store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/skolica-digital/faqctl/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/skolica-digital/faqctl/internal/core/domain"
	"github.com/skolica-digital/faqctl/internal/core/ports/driven"
)

// Document type discriminators in the snapshot.
const (
	docTypePage     = "page"
	docTypeFAQ      = "faq"
	docTypeCategory = "category"
)

// Ensure Store implements the interface.
var _ driven.ContentStore = (*Store)(nil)

// Store is a SQLite-backed content store.
type Store struct {
	db     *sql.DB
	path   string
	fields []string
}

// NewStore opens (or creates) the snapshot database at path. fields
// are the FAQ-bearing list fields carried on parent documents.
func NewStore(path string, fields []string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot: %w", err)
	}

	s := &Store{db: db, path: path, fields: fields}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies all embedded SQL files in lexical order.
func (s *Store) migrate(fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	var names []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
	}
	return nil
}

// Ping verifies the snapshot database is usable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// slotRec is the stored shape of one list-field element.
type slotRec struct {
	Kind     string `json:"kind"`
	Ref      string `json:"ref,omitempty"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Category string `json:"category,omitempty"`
	Order    int    `json:"order,omitempty"`
}

type parentRec struct {
	Title  string               `json:"title,omitempty"`
	Fields map[string][]slotRec `json:"fields"`
}

type faqRec struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Order    int    `json:"order"`
}

type catRec struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	Order       int    `json:"order"`
	Active      bool   `json:"active"`
}

func slotToRec(slot domain.Slot) slotRec {
	if slot.Kind == domain.SlotReference {
		return slotRec{Kind: string(domain.SlotReference), Ref: slot.Ref.TargetID}
	}
	return slotRec{
		Kind:     string(domain.SlotInline),
		Question: slot.Inline.Question,
		Answer:   slot.Inline.Answer,
		Category: slot.Inline.CategoryLabel,
		Order:    slot.Inline.Order,
	}
}

func recToSlot(rec slotRec) domain.Slot {
	if rec.Kind == string(domain.SlotReference) {
		return domain.ReferenceSlot(rec.Ref)
	}
	return domain.InlineSlot(domain.InlineFAQItem{
		Question:      rec.Question,
		Answer:        rec.Answer,
		CategoryLabel: rec.Category,
		Order:         rec.Order,
	})
}

// getData fetches the JSON payload for one document of a type.
func (s *Store) getData(ctx context.Context, id, docType string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE id = ? AND type = ?`, id, docType,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// putData upserts the JSON payload for one document.
func (s *Store) putData(ctx context.Context, id, docType string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, type, data, updated_at)
		VALUES (?, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		id, docType, string(data))
	return err
}

// SeedParent inserts or replaces a parent document. Used by snapshot
// import tooling and tests.
func (s *Store) SeedParent(ctx context.Context, doc domain.ParentDocument) error {
	rec := parentRec{Title: doc.Title, Fields: make(map[string][]slotRec, len(doc.Fields))}
	for field, slots := range doc.Fields {
		recs := make([]slotRec, 0, len(slots))
		for _, slot := range slots {
			recs = append(recs, slotToRec(slot))
		}
		rec.Fields[field] = recs
	}
	return s.putData(ctx, doc.ID, docTypePage, rec)
}

// ListParents returns all parent documents ordered by id.
func (s *Store) ListParents(ctx context.Context) ([]domain.ParentDocument, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE type = ? ORDER BY id`, docTypePage)
	if err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}
	defer rows.Close()

	var parents []domain.ParentDocument
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var rec parentRec
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode parent %s: %w", id, err)
		}

		parent := domain.ParentDocument{
			ID:     id,
			Type:   docTypePage,
			Title:  rec.Title,
			Fields: make(map[string][]domain.Slot),
		}
		for _, field := range s.fields {
			recs, ok := rec.Fields[field]
			if !ok {
				continue
			}
			slots := make([]domain.Slot, 0, len(recs))
			for _, r := range recs {
				slots = append(slots, recToSlot(r))
			}
			parent.Fields[field] = slots
		}
		parents = append(parents, parent)
	}
	return parents, rows.Err()
}

// PatchParentFields replaces the named list fields on one parent.
func (s *Store) PatchParentFields(ctx context.Context, id string, fields map[string][]domain.Slot) error {
	data, err := s.getData(ctx, id, docTypePage)
	if err != nil {
		return err
	}
	var rec parentRec
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("decode parent %s: %w", id, err)
	}
	if rec.Fields == nil {
		rec.Fields = make(map[string][]slotRec)
	}

	for field, slots := range fields {
		recs := make([]slotRec, 0, len(slots))
		for _, slot := range slots {
			recs = append(recs, slotToRec(slot))
		}
		rec.Fields[field] = recs
	}
	return s.putData(ctx, id, docTypePage, rec)
}

// GetCategory retrieves one category by id.
func (s *Store) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	data, err := s.getData(ctx, id, docTypeCategory)
	if err != nil {
		return nil, err
	}
	var rec catRec
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode category %s: %w", id, err)
	}
	cat := recToCategory(id, rec)
	return &cat, nil
}

// ListCategories returns all categories ordered by id.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE type = ? ORDER BY id`, docTypeCategory)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []domain.Category
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var rec catRec
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode category %s: %w", id, err)
		}
		cats = append(cats, recToCategory(id, rec))
	}
	return cats, rows.Err()
}

// CreateCategoryIfNotExists upserts a category; no-op when present.
func (s *Store) CreateCategoryIfNotExists(ctx context.Context, cat domain.Category) error {
	if _, err := s.getData(ctx, cat.ID, docTypeCategory); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return s.putData(ctx, cat.ID, docTypeCategory, catRec{
		Name:        cat.Name,
		Slug:        cat.Slug,
		Description: cat.Description,
		Icon:        cat.Icon,
		Color:       cat.Color,
		Order:       cat.Order,
		Active:      cat.Active,
	})
}

// GetFAQ retrieves one FAQ by id.
func (s *Store) GetFAQ(ctx context.Context, id string) (*domain.FAQ, error) {
	data, err := s.getData(ctx, id, docTypeFAQ)
	if err != nil {
		return nil, err
	}
	var rec faqRec
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode faq %s: %w", id, err)
	}
	faq := recToFAQ(id, rec)
	return &faq, nil
}

// ListFAQs returns all FAQs ordered by id.
func (s *Store) ListFAQs(ctx context.Context) ([]domain.FAQ, error) {
	return s.listFAQs(ctx, nil)
}

// CreateFAQ creates a new FAQ document.
func (s *Store) CreateFAQ(ctx context.Context, faq domain.FAQ) error {
	if _, err := s.getData(ctx, faq.ID, docTypeFAQ); err == nil {
		return domain.ErrAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return s.putFAQ(ctx, faq)
}

// UpdateFAQ patches the mutable fields of an existing FAQ.
func (s *Store) UpdateFAQ(ctx context.Context, faq domain.FAQ) error {
	if _, err := s.getData(ctx, faq.ID, docTypeFAQ); err != nil {
		return err
	}
	return s.putFAQ(ctx, faq)
}

// SetFAQCategory patches only the category reference of an FAQ.
func (s *Store) SetFAQCategory(ctx context.Context, id, categoryID string) error {
	faq, err := s.GetFAQ(ctx, id)
	if err != nil {
		return err
	}
	faq.CategoryID = categoryID
	return s.putFAQ(ctx, *faq)
}

// ListOrphanFAQs returns FAQs whose category does not resolve.
func (s *Store) ListOrphanFAQs(ctx context.Context) ([]domain.FAQ, error) {
	cats, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]bool, len(cats))
	for _, cat := range cats {
		existing[cat.ID] = true
	}

	return s.listFAQs(ctx, func(faq domain.FAQ) bool {
		return !existing[faq.CategoryID]
	})
}

func (s *Store) putFAQ(ctx context.Context, faq domain.FAQ) error {
	return s.putData(ctx, faq.ID, docTypeFAQ, faqRec{
		Question: faq.Question,
		Answer:   faq.Answer,
		Category: faq.CategoryID,
		Order:    faq.Order,
	})
}

// listFAQs fetches all FAQs, optionally filtered.
func (s *Store) listFAQs(ctx context.Context, keep func(domain.FAQ) bool) ([]domain.FAQ, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, data FROM documents WHERE type = ? ORDER BY id`, docTypeFAQ)
	if err != nil {
		return nil, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()

	var faqs []domain.FAQ
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		var rec faqRec
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("decode faq %s: %w", id, err)
		}
		faq := recToFAQ(id, rec)
		if keep == nil || keep(faq) {
			faqs = append(faqs, faq)
		}
	}
	return faqs, rows.Err()
}

func recToFAQ(id string, rec faqRec) domain.FAQ {
	return domain.FAQ{
		ID:         id,
		Question:   rec.Question,
		Answer:     rec.Answer,
		CategoryID: rec.Category,
		Order:      rec.Order,
	}
}

func recToCategory(id string, rec catRec) domain.Category {
	return domain.Category{
		ID:          id,
		Name:        rec.Name,
		Slug:        rec.Slug,
		Description: rec.Description,
		Icon:        rec.Icon,
		Color:       rec.Color,
		Order:       rec.Order,
		Active:      rec.Active,
	}
}
