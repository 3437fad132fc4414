// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	pattern         = regexp.MustCompile(`^[a-z0-9-]+$`)
	disallowed      = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespace      = regexp.MustCompile(`\s+`)
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	lower = cases.Lower(language.Russian)
)

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e",
	'ё': "yo", 'ж': "zh", 'з': "z", 'и': "i", 'й': "j", 'к': "k",
	'л': "l", 'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r",
	'с': "s", 'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts",
	'ч': "ch", 'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "",
	'э': "e", 'ю': "yu", 'я': "ya",
}

// Make transliterates Cyrillic to Latin and returns an ASCII slug.
// It can return "" when name has no letters or digits at all.
//
//	Make("Осветительное оборудование") // "osvetitelnoe-oborudovanie"
//	Make("Генератор Atlas Copco QAS-40") // "generator-atlas-copco-qas-40"
func Make(name string) string {
	s := strings.TrimSpace(lower.String(norm.NFC.String(name)))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		// no-break and other Unicode spaces separate words too
		if unicode.IsSpace(r) {
			b.WriteByte(' ')
			continue
		}
		if latin, ok := cyrillic[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}

	s = disallowed.ReplaceAllString(b.String(), "")
	s = whitespace.ReplaceAllString(s, "-")
	s = multipleHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
