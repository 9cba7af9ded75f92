package search

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxResults caps the number of ranked pages returned for a query.
const MaxResults = 50

// ParseQuery trims raw and splits it into lowercase whitespace-separated terms.
func ParseQuery(raw string) Query {
	raw = strings.TrimSpace(raw)
	return Query{Raw: raw, Terms: tokenize(raw)}
}

// Score sums, for every term, the weight of each field containing that term.
// A field counts once per term no matter how often the term repeats in it.
func Score(p Page, terms []string, w Weights) int {
	title := fold(p.Title)
	desc := fold(p.Description)
	content := fold(p.Content)

	score := 0
	for _, t := range terms {
		if t == "" {
			continue
		}
		if strings.Contains(title, t) {
			score += w.Title
		}
		if strings.Contains(desc, t) {
			score += w.Description
		}
		if strings.Contains(content, t) {
			score += w.Content
		}
	}
	return score
}

// Rank scores pages against terms, drops pages scoring zero, and orders the
// rest by descending score. Pages with equal scores keep their index order.
// A limit <= 0 returns every match.
func Rank(pages []Page, terms []string, w Weights, limit int) []ScoredPage {
	out := make([]ScoredPage, 0, len(pages))
	for _, p := range pages {
		s := Score(p, terms, w)
		if s <= 0 {
			continue
		}
		out = append(out, ScoredPage{Page: p, Score: s})
	}

	SortResults(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func tokenize(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	parts := strings.Fields(fold(q))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// fold is the comparison form of text: NFC-normalised, then lowercased.
// strings.ToLower maps rune to rune, so rune offsets survive folding.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
