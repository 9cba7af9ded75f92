package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamusis/sitesearch/internal/search/index"
)

var (
	flagFetchIndex   string
	flagFetchOut     string
	flagFetchTimeout time.Duration
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Save a local snapshot of the search index",
	Long: `Download the configured index and install it atomically at the snapshot
path, so later searches can run with --index <snapshot> while offline.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&flagFetchIndex, "index", "", "Index URL or path (default from config)")
	fetchCmd.Flags().StringVarP(&flagFetchOut, "out", "o", "", "Snapshot path (default from config)")
	fetchCmd.Flags().DurationVar(&flagFetchTimeout, "timeout", 30*time.Second, "Download timeout")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}
	location := flagFetchIndex
	if location == "" {
		location = cfg.Index
	}
	out := flagFetchOut
	if out == "" {
		out = cfg.SnapshotPath
	}

	printSection("Fetch")
	ctx, cancel := context.WithTimeout(cmd.Context(), flagFetchTimeout)
	defer cancel()

	raw, err := readIndex(ctx, location)
	if err != nil {
		printErr("", fmt.Sprintf("cannot fetch %s", location))
		return err
	}

	snap, err := index.WriteSnapshot(out, raw, index.DefaultLockTimeout)
	if err != nil {
		return err
	}
	if !snap.Changed {
		printInfo("", fmt.Sprintf("snapshot unchanged: %s (%d pages)", snap.Path, snap.Pages))
		return nil
	}
	printOK("", fmt.Sprintf("snapshot written: %s (%d pages, sha256 %s)", snap.Path, snap.Pages, snap.TextHash[:12]))
	return nil
}

func readIndex(ctx context.Context, location string) ([]byte, error) {
	if index.IsRemote(location) {
		return index.NewFetcher(location, index.WithTimeout(flagFetchTimeout)).Raw(ctx)
	}
	b, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("cannot read index %s: %w", location, err)
	}
	return b, nil
}
