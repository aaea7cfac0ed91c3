package domain

import "strings"

// diacritics maps the Serbian Latin diacritics that appear in source
// content to their ASCII counterparts. Everything else non-ASCII is
// stripped rather than transliterated.
var diacritics = map[rune]rune{
	'š': 's', 'Š': 's',
	'đ': 'd', 'Đ': 'd',
	'č': 'c', 'Č': 'c',
	'ć': 'c', 'Ć': 'c',
	'ž': 'z', 'Ž': 'z',
}

// Slugify converts free text into a lowercase, ASCII, hyphen-separated
// identifier segment. It is a pure function and the linchpin of the
// pipeline's idempotence: document ids are derived from it, so the same
// input text must always produce the same slug.
//
// Rules: lowercase; fold known diacritics to ASCII; collapse whitespace
// runs to single hyphens; drop every other character that is not a
// lowercase letter, digit or hyphen; collapse hyphen runs; trim leading
// and trailing hyphens.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		if folded, ok := diacritics[r]; ok {
			r = folded
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '\t' || r == '\n' || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			// Dropped: punctuation, other non-ASCII.
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
