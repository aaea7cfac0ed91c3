package sanity

import (
	"encoding/json"
	"strings"

	"github.com/skolica-digital/faqctl/internal/core/domain"
)

// Document type names in the CMS schema.
const (
	typePage      = "page"
	typeFAQ       = "faq"
	typeCategory  = "faqCategory"
	typeFAQItem   = "faqItem"
	typeReference = "reference"
	typeSlug      = "slug"
)

// mutation is one element of a mutate request. Exactly one member set.
type mutation struct {
	Create            any        `json:"create,omitempty"`
	CreateIfNotExists any        `json:"createIfNotExists,omitempty"`
	Patch             *patchSpec `json:"patch,omitempty"`
}

type patchSpec struct {
	ID  string         `json:"id"`
	Set map[string]any `json:"set"`
}

type refDoc struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

func newRef(id string) *refDoc {
	return &refDoc{Type: typeReference, Ref: id}
}

type slugDoc struct {
	Type    string `json:"_type"`
	Current string `json:"current"`
}

// slotDoc is the wire shape of one list-field element: a reference or
// an inline faqItem, discriminated by _type.
type slotDoc struct {
	Type     string `json:"_type"`
	Key      string `json:"_key,omitempty"`
	Ref      string `json:"_ref,omitempty"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
	Category string `json:"category,omitempty"`
	Order    int    `json:"order,omitempty"`
}

// toDomain maps a wire slot to the domain tagged union. Anything that
// is not a reference is treated as inline content; the migration
// precondition catches incomplete items later.
func (s slotDoc) toDomain() domain.Slot {
	if s.Type == typeReference {
		return domain.ReferenceSlot(s.Ref)
	}
	return domain.InlineSlot(domain.InlineFAQItem{
		Question:      s.Question,
		Answer:        s.Answer,
		CategoryLabel: s.Category,
		Order:         s.Order,
	})
}

// slotsToWire maps domain slots back to wire shape. Array items need a
// _key; deriving it from content keeps patches deterministic across
// runs.
func slotsToWire(slots []domain.Slot) []slotDoc {
	out := make([]slotDoc, 0, len(slots))
	for _, slot := range slots {
		switch slot.Kind {
		case domain.SlotReference:
			out = append(out, slotDoc{
				Type: typeReference,
				Key:  arrayKey(slot.Ref.TargetID),
				Ref:  slot.Ref.TargetID,
			})
		case domain.SlotInline:
			out = append(out, slotDoc{
				Type:     typeFAQItem,
				Key:      arrayKey(domain.FAQIDPrefix + domain.Slugify(slot.Inline.Question)),
				Question: slot.Inline.Question,
				Answer:   slot.Inline.Answer,
				Category: slot.Inline.CategoryLabel,
				Order:    slot.Inline.Order,
			})
		}
	}
	return out
}

func arrayKey(id string) string {
	return strings.ReplaceAll(id, ".", "-")
}

// faqDoc is the wire shape of a standalone FAQ document.
type faqDoc struct {
	ID       string  `json:"_id"`
	Type     string  `json:"_type"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Category *refDoc `json:"category,omitempty"`
	Order    int     `json:"order,omitempty"`
}

func faqToWire(faq domain.FAQ) faqDoc {
	return faqDoc{
		ID:       faq.ID,
		Type:     typeFAQ,
		Question: faq.Question,
		Answer:   faq.Answer,
		Category: newRef(faq.CategoryID),
		Order:    faq.Order,
	}
}

func (d faqDoc) toDomain() domain.FAQ {
	faq := domain.FAQ{
		ID:       d.ID,
		Question: d.Question,
		Answer:   d.Answer,
		Order:    d.Order,
	}
	if d.Category != nil {
		faq.CategoryID = d.Category.Ref
	}
	return faq
}

// categoryDoc is the wire shape of a category document.
type categoryDoc struct {
	ID          string   `json:"_id"`
	Type        string   `json:"_type"`
	Name        string   `json:"name"`
	Slug        *slugDoc `json:"slug,omitempty"`
	Description string   `json:"description,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Color       string   `json:"color,omitempty"`
	Order       int      `json:"order,omitempty"`
	IsActive    bool     `json:"isActive"`
}

func categoryToWire(cat domain.Category) categoryDoc {
	return categoryDoc{
		ID:          cat.ID,
		Type:        typeCategory,
		Name:        cat.Name,
		Slug:        &slugDoc{Type: typeSlug, Current: cat.Slug},
		Description: cat.Description,
		Icon:        cat.Icon,
		Color:       cat.Color,
		Order:       cat.Order,
		IsActive:    cat.Active,
	}
}

func (d categoryDoc) toDomain() domain.Category {
	cat := domain.Category{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Color:       d.Color,
		Order:       d.Order,
		Active:      d.IsActive,
	}
	if d.Slug != nil {
		cat.Slug = d.Slug.Current
	}
	return cat
}

// parentEnvelope holds a raw parent document; FAQ-bearing fields are
// extracted by name since the set is configurable.
type parentEnvelope struct {
	ID     string `json:"_id"`
	Type   string `json:"_type"`
	Title  string `json:"title"`
	Fields map[string]json.RawMessage `json:"-"`
}

// decodeParent splits the known scalar fields from the list fields.
func decodeParent(raw json.RawMessage, fields []string) (parentEnvelope, error) {
	var env parentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(raw, &all); err != nil {
		return env, err
	}

	env.Fields = make(map[string]json.RawMessage, len(fields))
	for _, field := range fields {
		if v, ok := all[field]; ok {
			env.Fields[field] = v
		}
	}
	return env, nil
}
