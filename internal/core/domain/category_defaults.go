package domain

// DefaultCategoryLabel is substituted when an inline item carries no
// category label at all.
const DefaultCategoryLabel = "General"

// DefaultCategoryID is the known-good fallback category. Resolution
// failures degrade to it rather than aborting the run.
const DefaultCategoryID = CategoryIDPrefix + "general"

// resolverOrderBase places resolver-created categories after the
// seeded defaults.
const resolverOrderBase = 10

// DefaultCategories is the fixed set seeded unconditionally before
// processing. Ids derive from the names, so seeding is idempotent.
func DefaultCategories() []Category {
	names := []struct {
		name  string
		desc  string
		icon  string
		color string
	}{
		{"General", "Opšta pitanja o školi i upisu", "help-circle", "slate"},
		{"Upis", "Pitanja o upisu i probnim časovima", "clipboard", "emerald"},
		{"Programi", "Pitanja o programima i nastavi", "book-open", "sky"},
		{"Franšiza", "Pitanja o franšiznom modelu", "briefcase", "amber"},
		{"Tehnička podrška", "Pitanja o platformi i nalozima", "wrench", "rose"},
	}

	cats := make([]Category, 0, len(names))
	for i, n := range names {
		cats = append(cats, Category{
			ID:          CategoryID(n.name),
			Name:        n.name,
			Slug:        Slugify(n.name),
			Description: n.desc,
			Icon:        n.icon,
			Color:       n.color,
			Order:       i + 1,
			Active:      true,
		})
	}
	return cats
}

// NewCategory builds the category document the resolver creates for a
// label it has not seen before. n is the count of categories the
// resolver has already created this run, used to place new categories
// after the seeded defaults.
func NewCategory(label string, n int) Category {
	return Category{
		ID:          CategoryID(label),
		Name:        label,
		Slug:        Slugify(label),
		Description: "Pitanja: " + label,
		Icon:        "help-circle",
		Color:       "slate",
		Order:       resolverOrderBase + n,
		Active:      true,
	}
}
