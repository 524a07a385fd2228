// Package config loads the configuration of rangebar from YAML or TOML files
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"src.elv.sh/rangebar/pkg/cli/tk"
	"src.elv.sh/rangebar/pkg/env"
	"src.elv.sh/rangebar/pkg/rangedata"
	"src.elv.sh/rangebar/pkg/rangesel"
	"src.elv.sh/rangebar/pkg/ui"
)

// Environment variables that override the URLs of the sources.
const (
	EnvNormalURL = env.RANGEBAR_NORMAL_URL
	EnvFixedURL  = env.RANGEBAR_FIXED_URL
)

// ErrUnknownFormat is returned by Load for files that are neither YAML nor
// TOML.
var ErrUnknownFormat = errors.New("unknown config format")

// Config is the configuration of rangebar.
type Config struct {
	Normal    Source `yaml:"normal" toml:"normal"`
	Fixed     Source `yaml:"fixed" toml:"fixed"`
	CachePath string `yaml:"cache" toml:"cache"`
	Log       string `yaml:"log" toml:"log"`
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	Styles    Styles `yaml:"styles" toml:"styles"`
	Fetch     Fetch  `yaml:"fetch" toml:"fetch"`
}

// Source says where the domain of a range comes from. Inline bounds or values
// take precedence over File, which takes precedence over URL.
type Source struct {
	URL    string    `yaml:"url" toml:"url"`
	File   string    `yaml:"file" toml:"file"`
	Min    *float64  `yaml:"min" toml:"min"`
	Max    *float64  `yaml:"max" toml:"max"`
	Values []float64 `yaml:"values" toml:"values"`
}

// IsZero returns whether nothing is set in the Source.
func (s Source) IsZero() bool {
	return s.URL == "" && s.File == "" && s.Min == nil && s.Max == nil && s.Values == nil
}

// Inline returns the domain given inline for a kind of range, and whether
// there is one. Normal ranges use Min and Max, which must be given together;
// fixed ranges use Values.
func (s Source) Inline(kind rangedata.Kind) (rangesel.Domain, bool, error) {
	switch kind {
	case rangedata.Normal:
		if s.Min == nil && s.Max == nil {
			return rangesel.Domain{}, false, nil
		}
		if s.Min == nil || s.Max == nil {
			return rangesel.Domain{}, true, errors.New("min and max must be given together")
		}
		d, err := rangesel.NewContinuous(*s.Min, *s.Max)
		return d, true, err
	case rangedata.Fixed:
		if s.Values == nil {
			return rangesel.Domain{}, false, nil
		}
		d, err := rangesel.NewDiscrete(s.Values)
		return d, true, err
	}
	return rangesel.Domain{}, false, nil
}

// Data returns the part of the Source read by rangedata.
func (s Source) Data() rangedata.Source {
	return rangedata.Source{URL: s.URL, File: s.File}
}

// Styles are styling strings for the RangeBar, in the syntax of
// ui.ParseStyling, such as "fg-blue bold". Empty strings keep the defaults.
type Styles struct {
	Track    string `yaml:"track" toml:"track"`
	Selected string `yaml:"selected" toml:"selected"`
	Handle   string `yaml:"handle" toml:"handle"`
	Focused  string `yaml:"focused" toml:"focused"`
	Error    string `yaml:"error" toml:"error"`
}

// Fetch configures how remote sources are fetched.
type Fetch struct {
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
	Retries int           `yaml:"retries" toml:"retries"`
}

// Bounds of the normal range when its Source is empty.
const (
	DefaultMin = 0
	DefaultMax = 100
)

// Default returns the built-in configuration: no sources, and fetches with a
// 10s timeout and 3 retries.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Fetch:    Fetch{Timeout: 10 * time.Second, Retries: 3},
	}
}

// Load reads the configuration file at path over the defaults, and then
// applies the environment. The format is chosen by the extension: .yaml or
// .yml for YAML, .toml for TOML. An empty path only applies the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if cfg.Fetch.Retries < 0 {
		return nil, fmt.Errorf("load config %s: negative retries %d", path, cfg.Fetch.Retries)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			logger.Warnf("unknown keys in %s: %v", path, undecoded)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// A URL in the environment replaces the source of the file.
func (cfg *Config) applyEnv() {
	if url := os.Getenv(EnvNormalURL); url != "" {
		cfg.Normal = Source{URL: url}
	}
	if url := os.Getenv(EnvFixedURL); url != "" {
		cfg.Fixed = Source{URL: url}
	}
}

// Parse parses the styling strings over tk.DefaultRangeBarStyles.
func (s Styles) Parse() (tk.RangeBarStyles, error) {
	styles := tk.DefaultRangeBarStyles
	for _, f := range []struct {
		name string
		text string
		p    *ui.Styling
	}{
		{"track", s.Track, &styles.Track},
		{"selected", s.Selected, &styles.Selected},
		{"handle", s.Handle, &styles.Handle},
		{"focused", s.Focused, &styles.Focused},
		{"error", s.Error, &styles.Error},
	} {
		if f.text == "" {
			continue
		}
		styling := ui.ParseStyling(f.text)
		if styling == nil {
			return tk.RangeBarStyles{}, fmt.Errorf("bad %s styling %q", f.name, f.text)
		}
		*f.p = styling
	}
	return styles, nil
}
