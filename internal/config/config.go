package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-textformatter/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidKey      = errors.New("invalid metadata key")
	ErrReservedKey     = errors.New("reserved metadata key")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrInvalidWorkers  = errors.New("invalid worker count")
	ErrTooManyMetadata = errors.New("too many metadata entries")
)

// Field length limits for multi-tenant safety.
const (
	MaxPathLength          = 4096
	MaxMetadataKeyLength   = 64
	MaxMetadataValueLength = 2000
	MaxMetadataEntries     = 200
	MaxTimeoutLength       = 20
	MaxWorkers             = 32
)

// ReservedKey is filled with the formatted body and cannot be set as metadata.
const ReservedKey = "body"

var metadataKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Config holds all configuration for document conversion.
type Config struct {
	Input    InputConfig       `yaml:"input"`
	Output   OutputConfig      `yaml:"output"`
	Template TemplateConfig    `yaml:"template"`
	Metadata map[string]string `yaml:"metadata"` // Defaults; document metadata wins
	PDF      PDFConfig         `yaml:"pdf"`
	Workers  int               `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	Default string `yaml:"default"` // Input file or directory when none is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Default string `yaml:"default"` // Output file when none is given
	Dir     string `yaml:"dir"`     // Output directory (empty = next to output default)
}

// TemplateConfig defines page template options.
type TemplateConfig struct {
	Name string `yaml:"name"` // Embedded template name or file path (empty = default)
	Dir  string `yaml:"dir"`  // Directory holding templates/{name}.html overrides
}

// PDFConfig defines optional PDF rendering.
type PDFConfig struct {
	Enabled bool   `yaml:"enabled"`
	Timeout string `yaml:"timeout"` // Go duration, e.g. "30s" (empty = default)
}

// TimeoutDuration parses PDF.Timeout. Returns 0 if unset.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: pdf.timeout %q", ErrInvalidTimeout, p.Timeout)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout must be positive, got %s", ErrInvalidTimeout, p.Timeout)
	}
	return d, nil
}

// Validate checks field lengths, metadata keys and numeric ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.default", c.Input.Default, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.default", c.Output.Default, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.name", c.Template.Name, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("template.dir", c.Template.Dir, MaxPathLength); err != nil {
		return err
	}

	if err := ValidateMetadata(c.Metadata); err != nil {
		return err
	}

	if err := validateFieldLength("pdf.timeout", c.PDF.Timeout, MaxTimeoutLength); err != nil {
		return err
	}
	if _, err := c.PDF.TimeoutDuration(); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidWorkers, MaxWorkers, c.Workers)
	}

	return nil
}

// ValidateMetadata checks metadata keys and values.
// Keys must be placeholder identifiers and must not be the reserved body key.
func ValidateMetadata(metadata map[string]string) error {
	if len(metadata) > MaxMetadataEntries {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyMetadata, len(metadata), MaxMetadataEntries)
	}
	for key, value := range metadata {
		if key == ReservedKey {
			return fmt.Errorf("%w: %q", ErrReservedKey, key)
		}
		if !metadataKeyPattern.MatchString(key) {
			return fmt.Errorf("%w: %q (allowed: letters, digits, '_' and '-')", ErrInvalidKey, key)
		}
		if err := validateFieldLength("metadata key", key, MaxMetadataKeyLength); err != nil {
			return err
		}
		if err := validateFieldLength("metadata."+key, value, MaxMetadataValueLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration matching the CLI defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:    InputConfig{Default: "input.txt"},
		Output:   OutputConfig{Default: "output.html"},
		Template: TemplateConfig{},
		Metadata: map[string]string{},
		PDF:      PDFConfig{Enabled: false},
		Workers:  0,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Metadata == nil {
		cfg.Metadata = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/textformatter/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "textformatter", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
