package main

// Notes:
// - printUsage/printConvertUsage: we test that required content strings are
//   present in the output. We don't test exact formatting as that's an
//   implementation detail.

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestPrintUsage - Main usage output
// ---------------------------------------------------------------------------

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)
	output := buf.String()

	for _, s := range []string{"Usage: textformatter", "Commands:", "convert", "rules", "templates", "version", "help"} {
		if !strings.Contains(output, s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestPrintConvertUsage - Every flag is documented
// ---------------------------------------------------------------------------

func TestPrintConvertUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printConvertUsage(&buf)
	output := buf.String()

	flags := []string{
		"--input", "--output", "--config", "--workers",
		"--template", "--template-dir",
		"--metadata-file", "--set",
		"--pdf", "--timeout",
		"--quiet", "--verbose",
	}
	for _, f := range flags {
		if !strings.Contains(output, f) {
			t.Errorf("printConvertUsage output should document %s", f)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunHelp - Topic routing
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		topic    string
		contains string
	}{
		{"convert", "Usage: textformatter convert"},
		{"rules", "Usage: textformatter rules"},
		{"templates", "Usage: textformatter templates"},
		{"version", "Usage: textformatter version"},
		{"help", "Usage: textformatter help"},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t.TempDir())
			if code := runHelp([]string{tt.topic}, env.Environment); code != ExitSuccess {
				t.Errorf("runHelp(%q) = %d, want %d", tt.topic, code, ExitSuccess)
			}
			if !strings.Contains(env.stdout.String(), tt.contains) {
				t.Errorf("runHelp(%q) output = %q, want %q", tt.topic, env.stdout.String(), tt.contains)
			}
		})
	}
}
