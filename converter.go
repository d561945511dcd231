package textformatter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"time"

	"github.com/alnah/go-textformatter/internal/assets"
	"github.com/alnah/go-textformatter/internal/dateutil"
	"github.com/alnah/go-textformatter/internal/fileutil"
	"github.com/alnah/go-textformatter/internal/pipeline"
)

// Converter runs the text formatting pipeline and optional PDF rendering.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// A Converter is not safe for concurrent use; use ConverterPool for parallelism.
type Converter struct {
	cfg          converterConfig
	template     string
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with the default template.
// Use options to customize behavior (e.g., WithTemplate, WithTimeout, WithLogger).
// Returns error if the template cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			now:     time.Now,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	tmpl, err := c.loadTemplate()
	if err != nil {
		return nil, err
	}
	c.template = tmpl

	// The browser starts on the first PDF request.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Template returns the page template used when Input.Template is empty.
func (c *Converter) Template() string {
	return c.template
}

// loadTemplate resolves the configured template name or path to its content.
func (c *Converter) loadTemplate() (string, error) {
	input := c.cfg.templateInput

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, input)
			}
			return "", fmt.Errorf("loading template file %q: %w", input, err)
		}
		if len(content) == 0 {
			return "", fmt.Errorf("%w: %s", ErrEmptyTemplate, input)
		}
		return string(content), nil
	}

	if input == "" {
		input = assets.DefaultTemplateName
	}

	resolver, err := assets.NewTemplateResolver(c.cfg.templateDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	c.cfg.logger.Debug("loading template", "name", input, "custom_dir", resolver.HasCustomLoader())

	content, err := resolver.LoadTemplate(input)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, input)
		}
		return "", fmt.Errorf("loading template %q: %w", input, err)
	}
	if content == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyTemplate, input)
	}
	return content, nil
}

// Convert runs the pipeline and returns the merged HTML, plus the PDF when
// input.PDF is set. The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	log := c.cfg.logger

	text := pipeline.NormalizeLineEndings(input.Text)

	log.Debug("extracting metadata", "bytes", len(text))
	docMetadata, body := pipeline.ExtractMetadata(text)
	metadata := mergeMetadata(input.Metadata, docMetadata, input.Overrides)
	if err := dateutil.ResolveMetadata(metadata, c.cfg.now()); err != nil {
		log.Debug("date left verbatim", "error", err)
	}
	log.Debug("metadata extracted", "document_keys", len(docMetadata), "effective_keys", len(metadata))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("replacing marks", "bytes", len(body))
	formatted := pipeline.FormatBody(body)

	tmpl := input.Template
	if tmpl == "" {
		tmpl = c.template
	}

	htmlContent := pipeline.MergeTemplate(formatted, tmpl, metadata)

	if log.Enabled(ctx, slog.LevelDebug) {
		logDiagnostics(log, tmpl, formatted, metadata)
	}

	res := &ConvertResult{
		HTML:     []byte(htmlContent),
		Body:     formatted,
		Metadata: metadata,
	}

	if !input.PDF {
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The page is rendered from a temp file, so relative resources need absolute URLs.
	pdfHTML := htmlContent
	if input.SourceDir != "" {
		pdfHTML, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	log.Debug("rendering PDF", "timeout", c.cfg.timeout)
	pdfBytes, err := c.pdfConverter.ToPDF(ctx, pdfHTML)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// logDiagnostics reports template and body details at debug level.
// It scans the template and parses the formatted body again, so callers
// check that debug records are enabled first.
func logDiagnostics(log *slog.Logger, tmpl, formatted string, metadata map[string]string) {
	log.Debug("merging template", "placeholders", len(pipeline.Placeholders(tmpl)))
	if missing := pipeline.UnresolvedPlaceholders(tmpl, metadata); len(missing) > 0 {
		log.Debug("unresolved placeholders left verbatim", "keys", missing)
	}
	if stats, err := pipeline.InspectHTML(formatted); err == nil {
		log.Debug("body formatted",
			"paragraphs", stats.Paragraphs,
			"headings", stats.Headings,
			"stanzas", stats.Stanzas)
	}
}

// mergeMetadata combines metadata layers; later layers win.
func mergeMetadata(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		maps.Copy(merged, layer)
	}
	return merged
}
