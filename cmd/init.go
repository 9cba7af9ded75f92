package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamusis/sitesearch/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config and dotenv template",
	Long: `Create ~/.sitesearch/ with sitesearch.yaml (when missing) and a .env
template listing the environment overrides.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var flagInitIndex string

func init() {
	initCmd.Flags().StringVar(&flagInitIndex, "index", "", "Index URL or path to record in the new config")
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	dir, err := config.SiteSearchDir()
	if err != nil {
		return err
	}
	cfgPath, err := config.ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	printOK("", fmt.Sprintf("config directory ready: %s", dir))

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		cfg, err := config.DefaultConfig()
		if err != nil {
			return err
		}
		if flagInitIndex != "" {
			cfg.Index = flagInitIndex
		}
		if err := config.Save(cfg); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
	} else if err != nil {
		return fmt.Errorf("cannot stat %s: %w", cfgPath, err)
	} else {
		printInfo("", fmt.Sprintf("config exists, left unchanged: %s", cfgPath))
	}

	if err := config.EnsureDotEnvTemplate(); err != nil {
		return err
	}
	p, _ := config.DotEnvPath()
	printOK("", fmt.Sprintf("dotenv ready: %s", p))
	return nil
}
