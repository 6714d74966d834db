package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/faneaatiku/cosmos-json/internal/analyzer"
	"github.com/faneaatiku/cosmos-json/internal/coin"
	"github.com/faneaatiku/cosmos-json/internal/diff"
	apperrors "github.com/faneaatiku/cosmos-json/internal/errors"
	"github.com/faneaatiku/cosmos-json/internal/models"
)

// Config represents the complete configuration for cosmosjson
type Config struct {
	ParseCoins bool                     `yaml:"parse_coins"`
	SortKeys   bool                     `yaml:"sort_keys"`
	Labels     []models.Label           `yaml:"labels"`
	CoinDenoms []models.CoinDenomConfig `yaml:"coin_denoms"`
	Diff       DiffSettings             `yaml:"diff"`
	Output     OutputConfig             `yaml:"output"`
	Dev        DevConfig                `yaml:"dev"`
}

// DiffSettings controls array matching in the diff command
type DiffSettings struct {
	IdentityKeys       []string `yaml:"identity_keys"`
	DetectMove         bool     `yaml:"detect_move"`
	IncludeValueOnMove bool     `yaml:"include_value_on_move"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Color  bool `yaml:"color"`
	Indent int  `yaml:"indent"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose int  `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	defaults := diff.DefaultConfig()
	return &Config{
		ParseCoins: true,
		SortKeys:   false,
		Labels:     []models.Label{},
		CoinDenoms: []models.CoinDenomConfig{},
		Diff: DiffSettings{
			IdentityKeys:       defaults.IdentityKeys,
			DetectMove:         defaults.DetectMove,
			IncludeValueOnMove: defaults.IncludeValueOnMove,
		},
		Output: OutputConfig{
			Color:  true,
			Indent: 2,
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: 0,
		},
	}
}

// LoadConfig loads configuration from a YAML file over the defaults and
// validates it
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("failed to parse config file %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".cosmosjson.yml", ".cosmosjson.yaml", "cosmosjson.yml", "cosmosjson.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}

	return ""
}

// Validate checks denoms, labels, identity keys and output settings
func (c *Config) Validate() error {
	seenDenoms := make(map[string]struct{}, len(c.CoinDenoms))
	for _, d := range c.CoinDenoms {
		if !coin.IsCoinDenom(d.Denom) {
			return apperrors.NewConfigError(fmt.Sprintf("invalid denom %q", d.Denom), apperrors.ErrInvalidConfig)
		}
		if d.Decimals < 0 {
			return apperrors.NewConfigError(fmt.Sprintf("denom %q has negative decimals %d", d.Denom, d.Decimals), apperrors.ErrInvalidConfig)
		}
		if _, dup := seenDenoms[d.Denom]; dup {
			return apperrors.NewConfigError(fmt.Sprintf("denom %q is configured more than once", d.Denom), apperrors.ErrInvalidConfig)
		}
		seenDenoms[d.Denom] = struct{}{}
	}

	seenLabels := make(map[string]struct{}, len(c.Labels))
	for _, l := range c.Labels {
		if l.Value == "" {
			return apperrors.NewConfigError(fmt.Sprintf("label %q has an empty value", l.Label), apperrors.ErrInvalidConfig)
		}
		if _, dup := seenLabels[l.Value]; dup {
			return apperrors.NewConfigError(fmt.Sprintf("value %q is labelled more than once", l.Value), apperrors.ErrInvalidConfig)
		}
		seenLabels[l.Value] = struct{}{}
	}

	if err := ValidateIdentityKeys(c.Diff.IdentityKeys); err != nil {
		return err
	}

	if c.Output.Indent < 0 {
		return apperrors.NewConfigError(fmt.Sprintf("indent must not be negative, got %d", c.Output.Indent), apperrors.ErrInvalidConfig)
	}
	return nil
}

// Overrides holds values given on the command line. Nil pointers and empty
// slices leave the file value alone.
type Overrides struct {
	ParseCoins         *bool
	SortKeys           *bool
	Labels             []models.Label
	CoinDenoms         []models.CoinDenomConfig
	IdentityKeys       []string
	DetectMove         *bool
	IncludeValueOnMove *bool
	Color              *bool
	Indent             *int
	Debug              bool
	Verbose            int
}

// ValidateIdentityKeys rejects blank identity keys, whether they come from the
// settings file or the command line.
func ValidateIdentityKeys(keys []string) error {
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return apperrors.NewConfigError("identity keys must not be empty", apperrors.ErrInvalidConfig)
		}
	}
	return nil
}

// ApplyOverrides merges CLI values into c. Labels and denoms from the command
// line are placed first so they win over file entries for the same value.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.ParseCoins != nil {
		c.ParseCoins = *o.ParseCoins
	}
	if o.SortKeys != nil {
		c.SortKeys = *o.SortKeys
	}
	if len(o.Labels) > 0 {
		c.Labels = append(append([]models.Label{}, o.Labels...), c.Labels...)
	}
	if len(o.CoinDenoms) > 0 {
		c.CoinDenoms = append(append([]models.CoinDenomConfig{}, o.CoinDenoms...), c.CoinDenoms...)
	}
	if len(o.IdentityKeys) > 0 {
		c.Diff.IdentityKeys = append([]string{}, o.IdentityKeys...)
	}
	if o.DetectMove != nil {
		c.Diff.DetectMove = *o.DetectMove
	}
	if o.IncludeValueOnMove != nil {
		c.Diff.IncludeValueOnMove = *o.IncludeValueOnMove
	}
	if o.Color != nil {
		c.Output.Color = *o.Color
	}
	if o.Indent != nil {
		c.Output.Indent = *o.Indent
	}
	c.Dev.Debug = c.Dev.Debug || o.Debug
	if o.Verbose > c.Dev.Verbose {
		c.Dev.Verbose = o.Verbose
	}
}

// AnalyzerOptions projects the settings onto analyzer input
func (c *Config) AnalyzerOptions() analyzer.Options {
	return analyzer.Options{
		ParseCoins: c.ParseCoins,
		Labels:     c.Labels,
		CoinDenoms: c.CoinDenoms,
	}
}

// DiffConfig projects the settings onto diff input
func (c *Config) DiffConfig() diff.Config {
	return diff.Config{
		IdentityKeys:       append([]string{}, c.Diff.IdentityKeys...),
		DetectMove:         c.Diff.DetectMove,
		IncludeValueOnMove: c.Diff.IncludeValueOnMove,
	}
}

// CoinRegistry builds the denom lookup for the configured denoms
func (c *Config) CoinRegistry() *coin.Registry {
	return coin.NewRegistry(c.CoinDenoms)
}

// ParseLabel parses a VALUE=LABEL flag. The last "=" separates the two so
// values ending in base64 padding keep it.
func ParseLabel(s string) (models.Label, error) {
	i := strings.LastIndex(s, "=")
	if i <= 0 || i == len(s)-1 {
		return models.Label{}, apperrors.NewConfigError(fmt.Sprintf("label %q must look like VALUE=LABEL", s), apperrors.ErrInvalidConfig)
	}
	return models.Label{Value: s[:i], Label: s[i+1:]}, nil
}

// ParseDenom parses a DENOM:DECIMALS[:DISPLAY] flag
func ParseDenom(s string) (models.CoinDenomConfig, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return models.CoinDenomConfig{}, apperrors.NewConfigError(fmt.Sprintf("denom %q must look like DENOM:DECIMALS[:DISPLAY]", s), apperrors.ErrInvalidConfig)
	}
	if !coin.IsCoinDenom(parts[0]) {
		return models.CoinDenomConfig{}, apperrors.NewConfigError(fmt.Sprintf("invalid denom %q", parts[0]), apperrors.ErrInvalidConfig)
	}
	decimals, err := strconv.Atoi(parts[1])
	if err != nil || decimals < 0 {
		return models.CoinDenomConfig{}, apperrors.NewConfigError(fmt.Sprintf("invalid decimals %q for denom %q", parts[1], parts[0]), apperrors.ErrInvalidConfig)
	}

	cfg := models.CoinDenomConfig{Denom: parts[0], Decimals: decimals}
	if len(parts) == 3 {
		cfg.DisplayDenom = parts[2]
	}
	return cfg, nil
}
