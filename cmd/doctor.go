package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/sitesearch/internal/config"
	"github.com/kamusis/sitesearch/internal/search/index"
	"github.com/kamusis/sitesearch/internal/widget"
)

var (
	flagDoctorPage  string
	flagDoctorIndex string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the config, the index and the search page",
	Long: `Check that the search index can be retrieved and decoded and that the
search page carries the elements the widget binds to. Run this when search
shows "Search is unavailable right now." to see the underlying cause.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&flagDoctorPage, "page", "", "Search page to check (default <serve.root>/<serve.page>)")
	doctorCmd.Flags().StringVar(&flagDoctorIndex, "index", "", "Index URL or path (default from config)")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("sitesearch doctor")

	// ── Check 1: config ───────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ config ]")
	cfg, err := loadConfig()
	if err != nil {
		failD("cannot load config: %v", err)
		return fmt.Errorf("doctor found problems")
	}
	if p, err := config.ConfigPath(); err == nil && flagConfigPath == "" {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			printWarn("", fmt.Sprintf("%s not found — using defaults (run 'sitesearch init')", p))
		} else {
			printOK("", fmt.Sprintf("valid YAML: %s", p))
		}
	}

	// ── Check 2: index ────────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ index ]")
	location := flagDoctorIndex
	if location == "" {
		location = cfg.Index
	}
	src, err := index.Open(location)
	if err != nil {
		failD("%v", err)
	} else {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		pages, err := src.Pages(ctx)
		cancel()
		if err != nil {
			failD("index unavailable: %v", err)
		} else {
			printOK("", fmt.Sprintf("%s — %d page(s)", location, len(pages)))
			var noURL, noTitle int
			for _, p := range pages {
				if p.URL == "" {
					noURL++
				}
				if p.Title == "" {
					noTitle++
				}
			}
			if noURL > 0 {
				printWarn("", fmt.Sprintf("%d page(s) without url", noURL))
			}
			if noTitle > 0 {
				printInfo("", fmt.Sprintf("%d page(s) without title (the URL is shown instead)", noTitle))
			}
		}
	}

	// ── Check 3: search page ──────────────────────────────────────────────────
	fmt.Fprintln(stdout, "\n[ search page ]")
	pagePath := flagDoctorPage
	if pagePath == "" {
		pagePath = filepath.Join(cfg.Serve.Root, filepath.FromSlash(cfg.Serve.Page))
	}
	f, err := os.Open(pagePath)
	if err != nil {
		failD("cannot open %s: %v", pagePath, err)
	} else {
		doc, err := widget.ParsePage(f)
		_ = f.Close()
		if err != nil {
			failD("%v", err)
		} else {
			sel := widgetSelectors(cfg)
			el := widget.Bind(doc, sel)
			check := func(name, selector string, n int, required bool) {
				switch {
				case n > 0:
					printOK(name, selector)
				case required:
					failD("[%s] %s not found", name, selector)
				default:
					printInfo(name, fmt.Sprintf("%s not found (optional)", selector))
				}
			}
			check("input", sel.Input, el.Input.Length(), false)
			check("query", sel.Query, el.QueryDisplay.Length(), true)
			check("results", sel.Results, el.Results.Length(), true)
			check("form", sel.Form, el.Form.Length(), false)
			check("live region", sel.LiveRegion, el.LiveRegion.Length(), false)
		}
	}

	fmt.Fprintln(stdout)
	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	printOK("", "all checks passed")
	return nil
}
