package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	textformatter "github.com/alnah/go-textformatter"
	"github.com/alnah/go-textformatter/internal/assets"
	"github.com/alnah/go-textformatter/internal/config"
	"github.com/alnah/go-textformatter/internal/hints"
	"github.com/alnah/go-textformatter/internal/yamlutil"
)

// Exit codes for textformatter CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, textformatter.ErrBrowserConnect) ||
		errors.Is(err, textformatter.ErrPageCreate) ||
		errors.Is(err, textformatter.ErrPageLoad) ||
		errors.Is(err, textformatter.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidKey) ||
		errors.Is(err, config.ErrReservedKey) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, config.ErrTooManyMetadata) ||
		errors.Is(err, yamlutil.ErrNotStringMap) ||
		errors.Is(err, textformatter.ErrEmptyTemplate) ||
		errors.Is(err, textformatter.ErrTemplateNotFound) ||
		errors.Is(err, textformatter.ErrInvalidAssetPath) ||
		errors.Is(err, textformatter.ErrReservedKey) ||
		errors.Is(err, textformatter.ErrInvalidMetadataKey) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadMetadata) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns actionable hints for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, textformatter.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, textformatter.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(userConfigPaths())
	case errors.Is(err, textformatter.ErrTemplateNotFound),
		errors.Is(err, assets.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(assets.NewEmbeddedLoader().Names())
	case errors.Is(err, config.ErrInvalidKey),
		errors.Is(err, config.ErrReservedKey),
		errors.Is(err, textformatter.ErrInvalidMetadataKey),
		errors.Is(err, textformatter.ErrReservedKey):
		return hints.ForMetadataKey()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// userConfigPaths returns the per-user config location suggested in hints.
func userConfigPaths() []string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(dir, "textformatter", "config.yaml")}
}
