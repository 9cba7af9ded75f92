package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/sitesearch/internal/widget"
)

var (
	flagRenderPage    string
	flagRenderURL     string
	flagRenderQuery   string
	flagRenderIndex   string
	flagRenderOut     string
	flagRenderTimeout time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render search results into a search page",
	Long: `Load a search page, run one search, and write the page with the query
echoed into the input, the status line set, and the results filled in.

  sitesearch render --page public/search.html --url "/search.html?q=launch"
  sitesearch render --page - --query launch < search.html > out.html`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&flagRenderPage, "page", "", "Search page HTML file (- for stdin)")
	renderCmd.Flags().StringVar(&flagRenderURL, "url", "", "Page URL carrying the q parameter")
	renderCmd.Flags().StringVar(&flagRenderQuery, "query", "", "Query (instead of --url)")
	renderCmd.Flags().StringVar(&flagRenderIndex, "index", "", "Index URL or path (default from config)")
	renderCmd.Flags().StringVarP(&flagRenderOut, "out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().DurationVar(&flagRenderTimeout, "timeout", 30*time.Second, "Index retrieval timeout")
	_ = renderCmd.MarkFlagRequired("page")
	renderCmd.MarkFlagsMutuallyExclusive("url", "query")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	engine, err := newEngine(cfg, flagRenderIndex)
	if err != nil {
		return err
	}

	in, closeIn, err := openInput(flagRenderPage)
	if err != nil {
		return err
	}
	defer closeIn()
	doc, err := widget.ParsePage(in)
	if err != nil {
		return err
	}

	w := widget.New(widget.Bind(doc, widgetSelectors(cfg)), engine,
		widget.WithLogger(log),
		widget.WithSnippetRadius(cfg.SnippetRadius),
	)
	if cmd.Flags().Changed("query") {
		w.SetQuery(flagRenderQuery)
	} else {
		w.Initialize(flagRenderURL)
	}
	w.GuardForm()

	ctx, cancel := context.WithTimeout(cmd.Context(), flagRenderTimeout)
	defer cancel()
	out := w.Run(ctx)
	log.Debug("render finished",
		zap.String("outcome", out.State.String()),
		zap.Int("results", len(out.Results)),
	)
	if out.State == widget.StateSkipped {
		printWarn("", "page has no status line or results container; left unchanged")
	}

	page, err := widget.RenderPage(doc)
	if err != nil {
		return err
	}
	if flagRenderOut == "" {
		_, err = io.WriteString(stdout, page)
		return err
	}
	if err := os.WriteFile(flagRenderOut, []byte(page), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", flagRenderOut, err)
	}
	printOK("", fmt.Sprintf("%s: %s (%d results)", flagRenderOut, out.State, len(out.Results)))
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("cannot open page %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
