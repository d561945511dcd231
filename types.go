package textformatter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-textformatter/internal/pipeline"
)

// BodyKey is the reserved placeholder filled with the formatted body.
const BodyKey = pipeline.BodyKey

// Input contains conversion parameters.
type Input struct {
	Text      string            // Source text, optionally starting with a "---" metadata block
	Template  string            // Template content (optional, empty = converter template)
	Metadata  map[string]string // Defaults, overridden by the document's own metadata
	Overrides map[string]string // Values that win over the document's metadata
	SourceDir string            // Base directory for relative resources in PDF output
	PDF       bool              // Also render the merged page to PDF
}

// Validate checks that caller-supplied metadata keys are usable placeholders.
// Keys parsed from the document itself are not checked.
func (in *Input) Validate() error {
	if err := validateMetadataKeys(in.Metadata); err != nil {
		return err
	}
	return validateMetadataKeys(in.Overrides)
}

func validateMetadataKeys(metadata map[string]string) error {
	for key := range metadata {
		if key == BodyKey {
			return fmt.Errorf("%w: %q", ErrReservedKey, key)
		}
		if !pipeline.IsIdentifier(key) {
			return fmt.Errorf("%w: %q", ErrInvalidMetadataKey, key)
		}
	}
	return nil
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML     []byte            // Merged page
	PDF      []byte            // Rendered PDF (nil unless Input.PDF)
	Body     string            // Formatted body before template merge
	Metadata map[string]string // Effective metadata after precedence rules
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	templateInput string // name or file path
	templateDir   string // custom templates directory
	logger        *slog.Logger
	now           func() time.Time // clock for "date: auto"
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("textformatter: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTemplate sets the page template by built-in name ("default", "plain")
// or by file path. Empty keeps the default template.
func WithTemplate(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.templateInput = nameOrPath
	}
}

// WithTemplateDir sets a directory whose templates/{name}.html files
// override the built-in templates of the same name.
func WithTemplateDir(dir string) Option {
	return func(c *Converter) {
		c.cfg.templateDir = dir
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.cfg.logger = l
		}
	}
}

// WithClock sets the clock used to resolve a "date: auto" metadata value.
// A nil clock is ignored.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		if now != nil {
			c.cfg.now = now
		}
	}
}
