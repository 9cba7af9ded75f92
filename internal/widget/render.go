package widget

import (
	"bytes"
	"html/template"

	"github.com/kamusis/sitesearch/internal/search"
)

var resultTemplate = template.Must(template.New("results").Parse(`
{{- range . }}
<article class="margin-y-2">
  <h2 class="margin-bottom-05">
    <a href="{{ .URL }}" class="usa-link">{{ .Title }}</a>
  </h2>
  {{- if .Description }}
  <p class="margin-y-0">{{ .Description }}</p>
  {{- end }}
  {{- if .Snippet }}
  <p class="margin-top-05">{{ .Snippet }}</p>
  {{- end }}
  <p class="result-url">{{ .URL }}</p>
</article>
{{- end }}
`))

type resultView struct {
	URL         string
	Title       template.HTML
	Description template.HTML
	Snippet     template.HTML
}

func renderResults(results []search.ScoredPage, terms []string, radius int) (string, error) {
	views := make([]resultView, 0, len(results))
	for _, p := range results {
		v := resultView{URL: p.URL}
		if p.Title != "" {
			v.Title = search.Emphasize(p.Title, terms)
		} else {
			v.Title = search.Emphasize(p.URL, terms)
		}
		if p.Description != "" {
			v.Description = search.Emphasize(p.Description, terms)
		}
		text := p.Content
		if text == "" {
			text = p.Description
		}
		v.Snippet = search.MakeSnippet(text, terms, radius)
		views = append(views, v)
	}

	var buf bytes.Buffer
	if err := resultTemplate.Execute(&buf, views); err != nil {
		return "", err
	}
	return buf.String(), nil
}
