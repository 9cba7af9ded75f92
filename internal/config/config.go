package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamusis/sitesearch/internal/search"
	"github.com/kamusis/sitesearch/internal/widget"
)

// Selectors locate the search page elements the widget is bound to.
type Selectors struct {
	Input      string `yaml:"input"`
	Query      string `yaml:"query"`
	Results    string `yaml:"results"`
	Form       string `yaml:"form"`
	LiveRegion string `yaml:"live_region"`
}

// Serve configures `sitesearch serve`.
type Serve struct {
	Addr            string `yaml:"addr"`
	Root            string `yaml:"root"`
	Page            string `yaml:"page"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_sec"`
}

// Log configures structured logging.
type Log struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level,omitempty"`
}

// Config is the in-memory representation of ~/.sitesearch/sitesearch.yaml.
type Config struct {
	// Index is an http(s) URL or a local path of the search index.
	Index         string         `yaml:"index"`
	SnapshotPath  string         `yaml:"snapshot_path,omitempty"`
	MaxResults    int            `yaml:"max_results"`
	SnippetRadius int            `yaml:"snippet_radius"`
	Weights       search.Weights `yaml:"weights"`
	Selectors     Selectors      `yaml:"selectors"`
	Serve         Serve          `yaml:"serve"`
	Log           Log            `yaml:"log"`
}

// SiteSearchDir returns the absolute path to ~/.sitesearch/.
func SiteSearchDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".sitesearch"), nil
}

// ConfigPath returns the absolute path to ~/.sitesearch/sitesearch.yaml.
func ConfigPath() (string, error) {
	dir, err := SiteSearchDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sitesearch.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand ~: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}

// DefaultSelectors matches the markup of the stock search page.
var DefaultSelectors = Selectors(widget.DefaultSelectors)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() (*Config, error) {
	dir, err := SiteSearchDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		Index:         "./public/search-index.json",
		SnapshotPath:  filepath.Join(dir, "cache", "search-index.json"),
		MaxResults:    search.MaxResults,
		SnippetRadius: search.SnippetRadius,
		Weights:       search.DefaultWeights,
		Selectors:     DefaultSelectors,
		Serve: Serve{
			Addr:            ":8080",
			Root:            "./public",
			Page:            "search.html",
			ReadTimeoutSec:  10,
			WriteTimeoutSec: 30,
			ShutdownSec:     10,
		},
		Log: Log{Env: "local"},
	}, nil
}

// Load reads ~/.sitesearch/sitesearch.yaml over the defaults, then applies
// environment overrides. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("cannot read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	if cfg.SnapshotPath, err = ExpandPath(cfg.SnapshotPath); err != nil {
		return nil, err
	}
	if cfg.Serve.Root, err = ExpandPath(cfg.Serve.Root); err != nil {
		return nil, err
	}
	if !isURL(cfg.Index) {
		if cfg.Index, err = ExpandPath(cfg.Index); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Save marshals cfg and writes it to ~/.sitesearch/sitesearch.yaml.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot write config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	overrides := []struct {
		key string
		dst *string
	}{
		{"SITESEARCH_INDEX", &cfg.Index},
		{"SITESEARCH_ADDR", &cfg.Serve.Addr},
		{"SITESEARCH_LOG_LEVEL", &cfg.Log.Level},
		{"SITESEARCH_LOG_ENV", &cfg.Log.Env},
	}
	for _, o := range overrides {
		v, err := GetConfigValue(o.key)
		if err != nil {
			return err
		}
		if v != "" {
			*o.dst = v
		}
	}
	return nil
}

// fillDefaults replaces zero values a partial file left behind.
func (c *Config) fillDefaults() {
	if c.MaxResults == 0 {
		c.MaxResults = search.MaxResults
	}
	if c.SnippetRadius <= 0 {
		c.SnippetRadius = search.SnippetRadius
	}
	if c.Weights == (search.Weights{}) {
		c.Weights = search.DefaultWeights
	}
	s := &c.Selectors
	for _, f := range []struct {
		dst *string
		def string
	}{
		{&s.Input, DefaultSelectors.Input},
		{&s.Query, DefaultSelectors.Query},
		{&s.Results, DefaultSelectors.Results},
		{&s.Form, DefaultSelectors.Form},
		{&s.LiveRegion, DefaultSelectors.LiveRegion},
	} {
		if strings.TrimSpace(*f.dst) == "" {
			*f.dst = f.def
		}
	}
	if c.Serve.Page == "" {
		c.Serve.Page = "search.html"
	}
}

func isURL(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
