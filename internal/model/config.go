package model

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults for the analysis thresholds. The limits come from the extraction
// tool being fed: it cannot address paths over 250 characters, chokes on
// filenames over 190, and processes at most 30,000 files per batch.
const (
	DefaultDelimiter           = "\t"
	DefaultPathSep             = `\`
	DefaultFileLimit           = 30000
	DefaultMaxPathLength       = 250
	DefaultMaxParentFileLength = 250
	DefaultMaxFileLength       = 190
)

// Config holds the run parameters for one analysis pass.
type Config struct {
	// Encoding of the input listing. Empty means auto-detect.
	Encoding string `yaml:"encoding"`
	// Delimiter is the field separator in the input listing.
	Delimiter string `yaml:"delimiter"`
	// PathSep is the path separator appearing in Item_Path values.
	PathSep string `yaml:"path_separator"`
	// FileLimit is the extraction tool's per-batch file count limit.
	FileLimit int `yaml:"file_limit"`
	// MaxPathLength is the longest addressable full path.
	MaxPathLength int `yaml:"max_path_length"`
	// MaxParentFileLength limits parent folder + filename together.
	MaxParentFileLength int `yaml:"max_parent_file_length"`
	// MaxFileLength limits the filename alone.
	MaxFileLength int `yaml:"max_file_length"`
	// SearchLocal evaluates the file limit against local-only counts
	// instead of local+subdirectory totals.
	SearchLocal bool `yaml:"search_local"`
}

// DefaultConfig returns a Config populated with the stock thresholds.
func DefaultConfig() Config {
	return Config{
		Delimiter:           DefaultDelimiter,
		PathSep:             DefaultPathSep,
		FileLimit:           DefaultFileLimit,
		MaxPathLength:       DefaultMaxPathLength,
		MaxParentFileLength: DefaultMaxParentFileLength,
		MaxFileLength:       DefaultMaxFileLength,
	}
}

// LoadConfig reads a YAML settings file on top of the defaults.
// Missing or non-positive numeric fields fall back to the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces empty or invalid fields with the defaults.
func (c *Config) Normalize() {
	if c.Delimiter == "" {
		c.Delimiter = DefaultDelimiter
	}
	if c.PathSep == "" {
		c.PathSep = DefaultPathSep
	}
	if c.FileLimit <= 0 {
		c.FileLimit = DefaultFileLimit
	}
	if c.MaxPathLength <= 0 {
		c.MaxPathLength = DefaultMaxPathLength
	}
	if c.MaxParentFileLength <= 0 {
		c.MaxParentFileLength = DefaultMaxParentFileLength
	}
	if c.MaxFileLength <= 0 {
		c.MaxFileLength = DefaultMaxFileLength
	}
}

// IntOr parses s as an integer, falling back to def when s is empty,
// malformed, or non-positive. Threshold flags arrive as strings so a bad
// value degrades to the default instead of aborting the run.
func IntOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
