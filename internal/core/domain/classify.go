package domain

import "strings"

// Classifier maps FAQ text to a category id. The repair pass uses it to
// re-home orphaned FAQs; injecting it keeps the keyword heuristics
// swappable without touching the repair orchestration.
type Classifier func(text string) string

// Keyword groups for the default classifier. The source content is
// Serbian, so both diacritic and ASCII spellings are listed.
var (
	franchiseKeywords = []string{
		"franšiz", "fransiz", "investicij", "biznis", "poslovanje", "ulaganje",
	}
	programKeywords = []string{
		"program", "kurs", "čas", "cas", "nastav", "metod", "uzrast",
	}
	supportKeywords = []string{
		"platform", "aplikacij", "nalog", "tehničk", "tehnick",
		"podršk", "podrsk", "prijav",
	}
)

// KeywordClassifier is the default Classifier: a substring match over
// the lowercased question+answer text, checked in priority order.
// Unmatched text falls back to the general category.
func KeywordClassifier(text string) string {
	text = strings.ToLower(text)

	for _, kw := range franchiseKeywords {
		if strings.Contains(text, kw) {
			return CategoryID("Franšiza")
		}
	}
	for _, kw := range programKeywords {
		if strings.Contains(text, kw) {
			return CategoryID("Programi")
		}
	}
	for _, kw := range supportKeywords {
		if strings.Contains(text, kw) {
			return CategoryID("Tehnička podrška")
		}
	}
	return DefaultCategoryID
}
