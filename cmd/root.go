package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/sitesearch/internal/config"
	"github.com/kamusis/sitesearch/internal/logger"
	"github.com/kamusis/sitesearch/internal/search"
	"github.com/kamusis/sitesearch/internal/search/index"
	"github.com/kamusis/sitesearch/internal/widget"
)

var flagConfigPath string

var rootCmd = &cobra.Command{
	Use:          "sitesearch",
	Short:        "sitesearch — keyword search over a static site's search index",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `sitesearch ranks the pages of a precomputed search-index.json against a
keyword query and renders the results into the site's search page.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Config file (default ~/.sitesearch/sitesearch.yaml)")
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config selected by --config, or the default one.
func loadConfig() (*config.Config, error) {
	if flagConfigPath != "" {
		p, err := config.ExpandPath(flagConfigPath)
		if err != nil {
			return nil, err
		}
		return config.LoadFile(p)
	}
	return config.Load()
}

// newEngine builds a search engine for location, falling back to the
// configured index when location is empty.
func newEngine(cfg *config.Config, location string) (*search.Engine, error) {
	if location == "" {
		location = cfg.Index
	}
	src, err := index.Open(location)
	if err != nil {
		return nil, err
	}
	return &search.Engine{
		Source:  src,
		Weights: cfg.Weights,
		Limit:   cfg.MaxResults,
	}, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewLogger(cfg.Log.Env, cfg.Log.Level)
}

func widgetSelectors(cfg *config.Config) widget.Selectors {
	return widget.Selectors(cfg.Selectors)
}
