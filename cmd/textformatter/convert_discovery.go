package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-textformatter/internal/config"
	"github.com/alnah/go-textformatter/internal/fileutil"
)

// Sentinel errors for file discovery.
var ErrInvalidWorkerCount = errors.New("invalid worker count")

// htmlExt is the extension of every written page.
const htmlExt = ".html"

// inputExtensions are picked up when the input is a directory.
var inputExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all text files to convert.
// A file input accepts any extension; a directory input is walked recursively.
func discoverFiles(inputPath, flagOutput string, cfg *config.Config) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		outPath := resolveSingleOutput(inputPath, flagOutput, cfg)
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	outputDir := flagOutput
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			// Skip the output tree when it is nested in the input tree.
			if outputDir != "" && path != inputPath && filepath.Clean(path) == filepath.Clean(outputDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if !inputExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveSingleOutput determines the output path for a single input file.
// Priority: --output, then config output.dir, then config output.default.
// An output naming an existing directory receives {base}.html.
func resolveSingleOutput(inputPath, flagOutput string, cfg *config.Config) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), htmlExt)

	switch {
	case flagOutput != "":
		if isDir(flagOutput) {
			return filepath.Join(flagOutput, base)
		}
		return flagOutput
	case cfg.Output.Dir != "":
		return filepath.Join(cfg.Output.Dir, base)
	case cfg.Output.Default != "":
		return cfg.Output.Default
	}
	return filepath.Join(filepath.Dir(inputPath), base)
}

// resolveOutputPath determines the HTML output path for a discovered file,
// mirroring its directory relative to baseInputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), htmlExt)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base)
		}
	}

	return filepath.Join(outputDir, base)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
