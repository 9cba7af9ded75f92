package search

import (
	"reflect"
	"testing"
)

func TestParseQuery_LowercasesAndSplits(t *testing.T) {
	q := ParseQuery("  Product\tLAUNCH   plan \n")
	if q.Raw != "Product\tLAUNCH   plan" {
		t.Fatalf("unexpected raw: %q", q.Raw)
	}
	want := []string{"product", "launch", "plan"}
	if !reflect.DeepEqual(q.Terms, want) {
		t.Fatalf("terms = %v, want %v", q.Terms, want)
	}
}

func TestParseQuery_WhitespaceOnlyIsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		q := ParseQuery(raw)
		if !q.Empty() {
			t.Fatalf("ParseQuery(%q) should be empty, got %v", raw, q.Terms)
		}
		if q.Raw != "" {
			t.Fatalf("ParseQuery(%q) raw = %q", raw, q.Raw)
		}
	}
}

func TestScore_PresenceNotFrequency(t *testing.T) {
	p := Page{URL: "/a", Title: "Foo bar", Content: "foo foo foo"}
	if got := Score(p, []string{"foo"}, DefaultWeights); got != 6 {
		t.Fatalf("score = %d, want 6", got)
	}
}

func TestScore_SumsAcrossTermsAndFields(t *testing.T) {
	p := Page{URL: "/a", Title: "Alpha", Description: "alpha beta", Content: "beta"}
	// alpha: title 5 + desc 2; beta: desc 2 + content 1
	if got := Score(p, []string{"alpha", "beta"}, DefaultWeights); got != 10 {
		t.Fatalf("score = %d, want 10", got)
	}
}

func TestScore_MissingFieldsScoreZero(t *testing.T) {
	if got := Score(Page{URL: "/only-url"}, []string{"url"}, DefaultWeights); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestScore_NormalisesComposition(t *testing.T) {
	p := Page{URL: "/cafe", Title: "Café hours"}
	q := ParseQuery("CAFÉ")
	if got := Score(p, q.Terms, DefaultWeights); got != 5 {
		t.Fatalf("score = %d, want 5", got)
	}
}

func TestRank_TitleMatchOutranksContentMatch(t *testing.T) {
	pages := []Page{
		{URL: "/content", Title: "Roadmap", Content: "we will launch soon"},
		{URL: "/title", Title: "Product Launch Plan"},
	}
	got := Rank(pages, ParseQuery("launch").Terms, DefaultWeights, MaxResults)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].URL != "/title" || got[1].URL != "/content" {
		t.Fatalf("unexpected order: %s, %s", got[0].URL, got[1].URL)
	}
}

func TestRank_DropsZeroAndKeepsIndexOrderOnTies(t *testing.T) {
	pages := []Page{
		{URL: "/1", Content: "go"},
		{URL: "/2", Content: "rust"},
		{URL: "/3", Content: "go"},
		{URL: "/4", Title: "go"},
		{URL: "/5", Content: "go"},
	}
	got := Rank(pages, []string{"go"}, DefaultWeights, 0)
	var urls []string
	for _, r := range got {
		urls = append(urls, r.URL)
	}
	want := []string{"/4", "/1", "/3", "/5"}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("order = %v, want %v", urls, want)
	}
}

func TestRank_CapsAndStaysSorted(t *testing.T) {
	pages := make([]Page, 0, 120)
	for i := 0; i < 120; i++ {
		p := Page{URL: "/p", Content: "term"}
		if i%3 == 0 {
			p.Title = "term"
		}
		if i%7 == 0 {
			p.Description = "term"
		}
		pages = append(pages, p)
	}
	got := Rank(pages, []string{"term"}, DefaultWeights, MaxResults)
	if len(got) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Fatalf("results not sorted at %d: %d > %d", i, got[i].Score, got[i-1].Score)
		}
	}
}
