package search

import (
	"html/template"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// SnippetRadius is the number of characters kept on each side of the first match.
const SnippetRadius = 140

const ellipsis = "…"

// MakeSnippet returns a highlighted excerpt of text around the earliest
// occurrence of any term, or "" when no term occurs. The excerpt spans up to
// radius characters before and after the match and carries an ellipsis on
// each side where text was cut. A radius <= 0 uses SnippetRadius.
func MakeSnippet(text string, terms []string, radius int) template.HTML {
	if radius <= 0 {
		radius = SnippetRadius
	}
	plain := []rune(norm.NFC.String(text))
	lower := strings.ToLower(string(plain))

	idx := -1
	for _, t := range terms {
		if t == "" {
			continue
		}
		i := strings.Index(lower, t)
		if i == -1 {
			continue
		}
		// ToLower maps rune to rune, so rune offsets agree with plain.
		r := utf8.RuneCountInString(lower[:i])
		if idx == -1 || r < idx {
			idx = r
		}
	}
	if idx == -1 {
		return ""
	}

	start := max(0, idx-radius)
	end := min(len(plain), idx+radius)

	var b strings.Builder
	if start > 0 {
		b.WriteString(ellipsis)
	}
	b.WriteString(string(plain[start:end]))
	if end < len(plain) {
		b.WriteString(ellipsis)
	}

	slice := strings.Join(strings.Fields(b.String()), " ")
	return Emphasize(slice, terms)
}
