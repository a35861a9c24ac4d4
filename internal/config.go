package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ChartColors overrides the doughnut chart palettes
type ChartColors struct {
	Income      []string `yaml:"income,omitempty"`
	Expenditure []string `yaml:"expenditure,omitempty"`
}

type Config struct {
	// DefaultQuarter is selected when no --quarter is given
	DefaultQuarter string `yaml:"default_quarter,omitempty"`

	// Tolerance is the accepted gap between a total and its line items (default 0.01)
	Tolerance *float64 `yaml:"tolerance,omitempty"`

	// Labels maps slot IDs to custom labels
	Labels map[string]string `yaml:"labels,omitempty"`

	// Hide is a list of regex patterns - matching slot IDs are left out of the output
	Hide []string `yaml:"hide,omitempty"`

	// Colors overrides the chart palettes
	Colors ChartColors `yaml:"colors,omitempty"`

	// compiled hide patterns (not serialized)
	hidePatterns []*regexp.Regexp `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.sre-report/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sre-report", "config.yaml")
}

// NewDefaultConfig creates an empty config. Use this when no config file exists.
func NewDefaultConfig() *Config {
	return &Config{}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Tolerance != nil && *cfg.Tolerance < 0 {
		return nil, fmt.Errorf("invalid tolerance %v: must not be negative", *cfg.Tolerance)
	}

	for _, pattern := range cfg.Hide {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid hide pattern %q: %w", pattern, err)
		}
		cfg.hidePatterns = append(cfg.hidePatterns, re)
	}

	for _, c := range append(append([]string(nil), cfg.Colors.Income...), cfg.Colors.Expenditure...) {
		if !hexColor.MatchString(c) {
			return nil, fmt.Errorf("invalid chart color %q: want #rrggbb", c)
		}
	}

	return &cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetTolerance returns the configured tolerance or DefaultTolerance
func (c *Config) GetTolerance() float64 {
	if c == nil || c.Tolerance == nil {
		return DefaultTolerance
	}
	return *c.Tolerance
}

// GetLabel returns the custom label for a slot, or empty string
func (c *Config) GetLabel(id string) string {
	if c == nil || c.Labels == nil {
		return ""
	}
	return c.Labels[id]
}

// ShouldHide returns true if the slot ID matches any hide pattern
func (c *Config) ShouldHide(id string) bool {
	if c == nil {
		return false
	}
	for _, re := range c.hidePatterns {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}

// Apply relabels and drops hidden slots. Bars follow the hide patterns too;
// chart data is left untouched.
func (c *Config) Apply(p Projection) Projection {
	if c == nil {
		return p
	}
	slots := make([]Slot, 0, len(p.Slots))
	for _, s := range p.Slots {
		if c.ShouldHide(s.ID) {
			continue
		}
		if label := c.GetLabel(s.ID); label != "" {
			s.Label = label
		}
		slots = append(slots, s)
	}
	bars := make([]Bar, 0, len(p.Bars))
	for _, b := range p.Bars {
		if !c.ShouldHide(b.ID) {
			bars = append(bars, b)
		}
	}
	p.Slots = slots
	p.Bars = bars
	return p
}

// SelectorOptions returns the selector options implied by the config
func (c *Config) SelectorOptions() []SelectorOption {
	if c == nil || (len(c.Colors.Income) == 0 && len(c.Colors.Expenditure) == 0) {
		return nil
	}
	return []SelectorOption{WithChartColors(c.Colors.Income, c.Colors.Expenditure)}
}
