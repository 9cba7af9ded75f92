package search

import (
	"html/template"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five HTML-significant characters & < > " '.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Emphasize escapes text for HTML and wraps every case-insensitive occurrence
// of any non-empty term in <mark>. Terms match literally.
//
// All terms are matched in one pass over the unescaped text, longest term
// first, so marks never nest and escaped entities are never matched.
func Emphasize(text string, terms []string) template.HTML {
	text = norm.NFC.String(text)
	re := termPattern(terms)
	if re == nil {
		return template.HTML(EscapeHTML(text))
	}

	var b strings.Builder
	last := 0
	for _, m := range re.FindAllStringIndex(text, -1) {
		b.WriteString(EscapeHTML(text[last:m[0]]))
		b.WriteString("<mark>")
		b.WriteString(EscapeHTML(text[m[0]:m[1]]))
		b.WriteString("</mark>")
		last = m[1]
	}
	b.WriteString(EscapeHTML(text[last:]))
	return template.HTML(b.String())
}

// termPattern compiles a case-insensitive alternation of the terms, longest
// first. It returns nil when there is nothing to match.
func termPattern(terms []string) *regexp.Regexp {
	seen := make(map[string]struct{}, len(terms))
	uniq := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	if len(uniq) == 0 {
		return nil
	}

	sort.SliceStable(uniq, func(i, j int) bool {
		return utf8.RuneCountInString(uniq[i]) > utf8.RuneCountInString(uniq[j])
	})
	quoted := make([]string, len(uniq))
	for i, t := range uniq {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(quoted, "|") + `)`)
}
