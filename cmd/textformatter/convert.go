package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"

	textformatter "github.com/alnah/go-textformatter"
	"github.com/alnah/go-textformatter/internal/config"
	"github.com/alnah/go-textformatter/internal/fileutil"
	"github.com/alnah/go-textformatter/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrReadInput     = errors.New("failed to read input file")
	ErrReadMetadata  = errors.New("failed to read metadata file")
	ErrWriteOutput   = errors.New("failed to write output file")
	ErrConverterInit = errors.New("failed to initialize converter")
)

// defaultTemplateFile is picked up from the working directory when no
// template is configured.
const defaultTemplateFile = "template.html"

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	metadata  map[string]string // Defaults: config then metadata file
	overrides map[string]string // --set values
	pdf       bool
	logger    *slog.Logger
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, logger *slog.Logger, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg, env.Config)
	if err != nil {
		return err
	}

	// CLI flags > env vars > config file > defaults
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := cfg.PDF.TimeoutDuration()
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, flags.input, cfg)
	if err != nil {
		return err
	}
	logger.Debug("reading input", "path", inputPath)

	files, err := discoverFiles(inputPath, flags.output, cfg)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .txt, .md or .markdown files in %s", ErrNoInput, inputPath)
	}

	metadata, err := resolveMetadata(cfg.Metadata, flags.metadata.file)
	if err != nil {
		return err
	}
	if err := config.ValidateMetadata(flags.metadata.set); err != nil {
		return fmt.Errorf("--set: %w", err)
	}

	templateInput, err := resolveTemplate(cfg, env)
	if err != nil {
		return err
	}
	logger.Debug("reading template", "template", templateNameForLog(templateInput), "dir", cfg.Template.Dir)

	opts := []textformatter.Option{
		textformatter.WithTemplate(templateInput),
		textformatter.WithTemplateDir(cfg.Template.Dir),
		textformatter.WithLogger(logger),
		textformatter.WithClock(env.Now),
	}
	if timeout > 0 {
		opts = append(opts, textformatter.WithTimeout(timeout))
	}

	poolSize := textformatter.ResolvePoolSize(cfg.Workers)
	logger.Debug("starting conversion", "files", len(files), "pool_size", poolSize, "pdf", cfg.PDF.Enabled)

	pool := env.NewPool(poolSize, opts...)
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Warn("closing converters", "error", cerr)
		}
	}()

	params := &conversionParams{
		metadata:  metadata,
		overrides: flags.metadata.set,
		pdf:       cfg.PDF.Enabled,
		logger:    logger,
	}

	results := convertBatch(ctx, pool, files, params)

	// A single file reports its own error, with its own exit code.
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d of %d conversion(s) failed", failedCount, len(results))
	}

	return nil
}

// loadConfig loads the config named by the flag, then by the environment,
// falling back to a copy of base.
func loadConfig(flagConfig string, envCfg *envConfig, base *config.Config) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	if base == nil {
		return config.DefaultConfig(), nil
	}
	cfg := *base
	cfg.Metadata = maps.Clone(base.Metadata)
	if cfg.Metadata == nil {
		cfg.Metadata = map[string]string{}
	}
	return &cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.template.name != "" {
		cfg.Template.Name = flags.template.name
	}
	if flags.template.dir != "" {
		cfg.Template.Dir = flags.template.dir
	}
	if flags.pdf.enabled {
		cfg.PDF.Enabled = true
	}
	if flags.pdf.timeout != "" {
		cfg.PDF.Timeout = flags.pdf.timeout
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
}

// resolveInputPath picks the input: positional arg, then --input, then config.
func resolveInputPath(args []string, flagInput string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if flagInput != "" {
		return flagInput, nil
	}
	if cfg.Input.Default != "" {
		return cfg.Input.Default, nil
	}
	return "", ErrNoInput
}

// resolveMetadata layers the metadata file over the config defaults.
func resolveMetadata(defaults map[string]string, metadataFile string) (map[string]string, error) {
	metadata := maps.Clone(defaults)
	if metadata == nil {
		metadata = map[string]string{}
	}
	if metadataFile == "" {
		return metadata, nil
	}

	data, err := os.ReadFile(metadataFile) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadMetadata, err)
	}

	fromFile, err := yamlutil.UnmarshalStringMap(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", metadataFile, err)
	}
	if err := config.ValidateMetadata(fromFile); err != nil {
		return nil, fmt.Errorf("%s: %w", metadataFile, err)
	}

	maps.Copy(metadata, fromFile)
	return metadata, nil
}

// resolveTemplate returns the configured template, or template.html from the
// working directory, or "" for the built-in default.
func resolveTemplate(cfg *config.Config, env *Environment) (string, error) {
	if cfg.Template.Name != "" {
		return cfg.Template.Name, nil
	}

	wd, err := env.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}

	candidate := filepath.Join(wd, defaultTemplateFile)
	if fileutil.FileExists(candidate) {
		return candidate, nil
	}
	return "", nil
}

func templateNameForLog(templateInput string) string {
	if templateInput == "" {
		return "built-in default"
	}
	return templateInput
}
