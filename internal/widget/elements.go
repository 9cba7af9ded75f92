package widget

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors locate the page elements a Widget is bound to.
type Selectors struct {
	Input      string
	Query      string
	Results    string
	Form       string
	LiveRegion string
}

// DefaultSelectors matches the stock search page.
var DefaultSelectors = Selectors{
	Input:      "#extended-search-field-small",
	Query:      "#search-query",
	Results:    "#results",
	Form:       "#search_form",
	LiveRegion: "section[aria-live]",
}

// Elements are the page elements a Widget reads and writes. Any of them may
// be an empty selection; Run is a no-op without QueryDisplay and Results.
type Elements struct {
	Input        *goquery.Selection
	QueryDisplay *goquery.Selection
	Results      *goquery.Selection
	Form         *goquery.Selection
	LiveRegion   *goquery.Selection
}

// Bind looks up the first element matching each selector in doc.
func Bind(doc *goquery.Document, s Selectors) Elements {
	find := func(sel string) *goquery.Selection {
		if strings.TrimSpace(sel) == "" {
			return doc.Selection.Slice(0, 0)
		}
		return doc.Find(sel).First()
	}
	return Elements{
		Input:        find(s.Input),
		QueryDisplay: find(s.Query),
		Results:      find(s.Results),
		Form:         find(s.Form),
		LiveRegion:   find(s.LiveRegion),
	}
}

// ParsePage parses an HTML search page.
func ParsePage(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse page: %w", err)
	}
	return doc, nil
}

// RenderPage serialises doc back to HTML.
func RenderPage(doc *goquery.Document) (string, error) {
	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("cannot render page: %w", err)
	}
	return out, nil
}

func present(s *goquery.Selection) bool {
	return s != nil && s.Length() > 0
}
