package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-textformatter/internal/config"
)

// envPrefix starts every recognized environment variable.
const envPrefix = "TEXTFORMATTER_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // TEXTFORMATTER_CONFIG: config file name or path
	Template    string        // TEXTFORMATTER_TEMPLATE: template file or name
	TemplateDir string        // TEXTFORMATTER_TEMPLATE_DIR: template overrides directory
	OutputDir   string        // TEXTFORMATTER_OUTPUT_DIR: batch output directory
	Timeout     time.Duration // TEXTFORMATTER_TIMEOUT: PDF generation timeout
	Workers     int           // TEXTFORMATTER_WORKERS: parallel workers
	PDF         bool          // TEXTFORMATTER_PDF: also render PDF
}

// knownEnvVars lists valid TEXTFORMATTER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TEXTFORMATTER_CONFIG":       true,
	"TEXTFORMATTER_TEMPLATE":     true,
	"TEXTFORMATTER_TEMPLATE_DIR": true,
	"TEXTFORMATTER_OUTPUT_DIR":   true,
	"TEXTFORMATTER_TIMEOUT":      true,
	"TEXTFORMATTER_WORKERS":      true,
	"TEXTFORMATTER_PDF":          true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numeric, duration or boolean values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:  os.Getenv("TEXTFORMATTER_CONFIG"),
		Template:    os.Getenv("TEXTFORMATTER_TEMPLATE"),
		TemplateDir: os.Getenv("TEXTFORMATTER_TEMPLATE_DIR"),
		OutputDir:   os.Getenv("TEXTFORMATTER_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("TEXTFORMATTER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("TEXTFORMATTER_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if pdf := os.Getenv("TEXTFORMATTER_PDF"); pdf != "" {
		if b, err := strconv.ParseBool(pdf); err == nil {
			cfg.PDF = b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized TEXTFORMATTER_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Template != "" && cfg.Template.Name == "" {
		cfg.Template.Name = env.Template
	}
	if env.TemplateDir != "" && cfg.Template.Dir == "" {
		cfg.Template.Dir = env.TemplateDir
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Timeout > 0 && cfg.PDF.Timeout == "" {
		cfg.PDF.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.PDF {
		cfg.PDF.Enabled = true
	}
}
