package domain

// SlotKind discriminates the two shapes a list-field element can take.
type SlotKind string

const (
	// SlotInline is an FAQ embedded directly in the parent document.
	SlotInline SlotKind = "inline"

	// SlotReference is a pointer to a standalone FAQ document.
	SlotReference SlotKind = "reference"
)

// Slot is one element of a parent document's FAQ list field.
// It is an explicit tagged union: exactly one of Inline or Ref is set,
// according to Kind. Callers switch on Kind rather than sniffing fields.
type Slot struct {
	Kind   SlotKind
	Inline *InlineFAQItem
	Ref    *Reference
}

// InlineSlot wraps an inline item as a Slot.
func InlineSlot(item InlineFAQItem) Slot {
	return Slot{Kind: SlotInline, Inline: &item}
}

// ReferenceSlot wraps a target document id as a Slot.
func ReferenceSlot(targetID string) Slot {
	return Slot{Kind: SlotReference, Ref: &Reference{TargetID: targetID}}
}

// InlineFAQItem is denormalised FAQ content embedded in a parent document.
// This is the pre-migration shape the pipeline eliminates.
type InlineFAQItem struct {
	// Question is the FAQ question text.
	Question string

	// Answer is the FAQ answer text.
	Answer string

	// CategoryLabel is the free-text category name, possibly empty.
	CategoryLabel string

	// Order is the explicit display order; 0 means unset.
	Order int
}

// Validate checks the migration precondition for an inline item.
// Both question and answer must be non-empty.
func (i InlineFAQItem) Validate() error {
	if i.Question == "" || i.Answer == "" {
		return ErrInvalidInput
	}
	return nil
}

// Reference is a typed pointer to another document by id.
// The referencing document does not own the target's lifetime.
type Reference struct {
	// TargetID is the id of the referenced document.
	TargetID string
}

// ParentDocument is a CMS page document holding one or more
// FAQ-bearing list fields, keyed by field name.
type ParentDocument struct {
	// ID is the document id in the store.
	ID string

	// Type is the CMS document type, e.g. "page".
	Type string

	// Title is the human-readable page title.
	Title string

	// Fields maps a list-field name to its ordered slots.
	// Only FAQ-bearing fields are carried here.
	Fields map[string][]Slot
}

// HasInline reports whether the named field contains any inline slots.
func (p ParentDocument) HasInline(field string) bool {
	for _, slot := range p.Fields[field] {
		if slot.Kind == SlotInline {
			return true
		}
	}
	return false
}

// FAQ is a standalone FAQ document. Its id is derived from the question
// text, so the same question always maps to the same document.
type FAQ struct {
	// ID is "faq." + Slugify(question).
	ID string

	// Question is the FAQ question text.
	Question string

	// Answer is the FAQ answer text.
	Answer string

	// CategoryID references a Category document.
	CategoryID string

	// Order is the display order within its source list.
	Order int
}

// Category is a taxonomy document. Its id is derived from the name.
type Category struct {
	// ID is "category." + Slugify(name).
	ID string

	// Name is the display name.
	Name string

	// Slug is the slugified name, kept on the document for routing.
	Slug string

	// Description is a short human-readable description.
	Description string

	// Icon is the icon identifier used by the site.
	Icon string

	// Color is the accent colour token used by the site.
	Color string

	// Order is the display order.
	Order int

	// Active marks the category as visible on the site.
	Active bool
}

// ID prefixes for deterministically derived document ids.
const (
	FAQIDPrefix      = "faq."
	CategoryIDPrefix = "category."
)

// FAQID derives the deterministic FAQ document id for a question.
func FAQID(question string) string {
	return FAQIDPrefix + Slugify(question)
}

// CategoryID derives the deterministic category document id for a name.
func CategoryID(name string) string {
	return CategoryIDPrefix + Slugify(name)
}
