// Package hints builds the one-line suggestions printed under CLI errors.
// Every hint renders as "\n  hint: <text>" so it can be appended to an
// error message as is.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-textformatter/internal/fileutil"
)

const prefix = "\n  hint: "

// ciVars are set by the CI systems where Chrome usually runs unsandboxed.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

// IsInContainer reports whether the process runs in a Docker container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect explains how to get PDF rendering working, or how to
// skip it. HTML output never needs a browser.
func ForBrowserConnect() string {
	var parts []string
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to a Chrome or Chromium binary")
	}
	parts = append(parts, "run without --pdf to write HTML only")
	return join(parts...)
}

// ForTimeout suggests a longer PDF render timeout.
func ForTimeout() string {
	return join("raise --timeout (or TEXTFORMATTER_TIMEOUT) for long documents")
}

// ForConfigNotFound suggests an explicit config file, or the first searched
// per-user location as a place to create one.
func ForConfigNotFound(searchedPaths []string) string {
	text := "use --config /path/to/file.yaml or TEXTFORMATTER_CONFIG"
	for _, p := range searchedPaths {
		if strings.Contains(p, "textformatter") {
			return join(text, "or create "+p)
		}
	}
	return join(text)
}

// ForOutputDirectory points at the output location.
func ForOutputDirectory() string {
	return join("check that the --output parent directory exists and is writable")
}

// ForTemplateNotFound lists the built-in templates.
func ForTemplateNotFound(available []string) string {
	if len(available) == 0 {
		return join("pass a template file with --template ./page.html")
	}
	return join("built-in: "+strings.Join(available, ", "),
		"or pass a .html path, or add templates/{name}.html under --template-dir")
}

// ForMetadataKey states the placeholder key alphabet.
func ForMetadataKey() string {
	return join(`keys use letters, digits, '_' and '-'; "body" is reserved`)
}

func inCI() bool {
	for _, name := range ciVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

func join(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	return prefix + strings.Join(parts, "; ")
}
