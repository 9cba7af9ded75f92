package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/sitesearch/internal/search"
)

var (
	flagSearchIndex   string
	flagSearchK       int
	flagSearchJSON    bool
	flagSearchDebug   bool
	flagSearchTimeout time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank index pages against a keyword query",
	Args:  cobra.MinimumNArgs(0),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&flagSearchIndex, "index", "", "Index URL or path (default from config)")
	searchCmd.Flags().IntVar(&flagSearchK, "k", 0, "Number of results to show (default from config)")
	searchCmd.Flags().BoolVar(&flagSearchJSON, "json", false, "Print results as JSON")
	searchCmd.Flags().BoolVar(&flagSearchDebug, "debug", false, "Print the cause when the index is unavailable")
	searchCmd.Flags().DurationVar(&flagSearchTimeout, "timeout", 30*time.Second, "Index retrieval timeout")
	rootCmd.AddCommand(searchCmd)
}

// searchHit is the JSON form of one result.
type searchHit struct {
	Rank    int    `json:"rank"`
	Score   int    `json:"score"`
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	q := search.ParseQuery(strings.Join(args, " "))
	if q.Empty() {
		printWarn("", "Type a term and try again.")
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	engine, err := newEngine(cfg, flagSearchIndex)
	if err != nil {
		return err
	}
	if flagSearchK > 0 {
		engine.Limit = flagSearchK
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flagSearchTimeout)
	defer cancel()

	results, err := engine.Search(ctx, q)
	if err != nil {
		if flagSearchDebug {
			printInfo("", err.Error())
		}
		if errors.Is(err, search.ErrUnavailable) {
			return errors.New("search is unavailable right now")
		}
		return err
	}

	hits := toHits(results, q.Terms, cfg.SnippetRadius)
	if flagSearchJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(hits)
	}
	printSearchResults(q.Raw, hits)
	return nil
}

func toHits(results []search.ScoredPage, terms []string, radius int) []searchHit {
	hits := make([]searchHit, 0, len(results))
	for i, r := range results {
		text := r.Content
		if text == "" {
			text = r.Description
		}
		hits = append(hits, searchHit{
			Rank:    i + 1,
			Score:   r.Score,
			URL:     r.URL,
			Title:   r.Title,
			Snippet: plainText(string(search.MakeSnippet(text, terms, radius))),
		})
	}
	return hits
}

var markStripper = strings.NewReplacer("<mark>", "", "</mark>", "")

// plainText undoes Emphasize for terminal output.
func plainText(s string) string {
	return html.UnescapeString(markStripper.Replace(s))
}

func printSearchResults(query string, hits []searchHit) {
	fmt.Fprintf(stdout, "\nsitesearch search %q\n\n", query)
	if len(hits) == 0 {
		fmt.Fprintln(stdout, "No results. Try fewer or different terms.")
		return
	}
	fmt.Fprintf(stdout, "Results (%d found):\n\n", len(hits))

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	for _, h := range hits {
		title := h.Title
		if title == "" {
			title = h.URL
		}
		fmt.Fprintf(w, "  %d.\t[%d]\t%s\n", h.Rank, h.Score, title)
		fmt.Fprintf(w, "  \t\t%s\n", h.URL)
		if h.Snippet != "" {
			fmt.Fprintf(w, "  \t\t%s\n", h.Snippet)
		}
	}
	_ = w.Flush()
}
