package search

import "testing"

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<a href="x">Tom & Jerry's</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#39;s&lt;/a&gt;"
	if got != want {
		t.Fatalf("EscapeHTML = %q, want %q", got, want)
	}
}

func TestEmphasize(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		terms []string
		want  string
	}{
		{"no terms", "Hello <b>", nil, "Hello &lt;b&gt;"},
		{"case insensitive", "Launch and LAUNCH", []string{"launch"}, "<mark>Launch</mark> and <mark>LAUNCH</mark>"},
		{"script escaped", "<script>alert(1)</script>", []string{"alert"}, "&lt;script&gt;<mark>alert</mark>(1)&lt;/script&gt;"},
		{"regex metacharacters literal", "a.b axb (c++)", []string{"a.b", "c++"}, "<mark>a.b</mark> axb (<mark>c++</mark>)"},
		{"empty term skipped", "abc", []string{"", "b"}, "a<mark>b</mark>c"},
		{"overlapping terms do not nest", "searchable", []string{"search", "searchable"}, "<mark>searchable</mark>"},
		{"entities never matched", "Q&A", []string{"amp"}, "Q&amp;A"},
		{"marker text never matched", "mark it", []string{"it", "mark"}, "<mark>mark</mark> <mark>it</mark>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Emphasize(tt.text, tt.terms)); got != tt.want {
				t.Fatalf("Emphasize = %q, want %q", got, tt.want)
			}
		})
	}
}
