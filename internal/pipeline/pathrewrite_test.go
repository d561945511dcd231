package pipeline

// Notes:
// - Tests RewriteRelativePaths through its public API where possible.
// - Error branches in parseHTML/renderHTML are not covered: x/net/html is
//   lenient and does not fail on the inputs the converter produces.

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func testBaseDir() string {
	if runtime.GOOS == "windows" {
		return `C:\docs`
	}
	return "/docs"
}

// ---------------------------------------------------------------------------
// TestRewriteRelativePaths - Template resources for PDF rendering
// ---------------------------------------------------------------------------

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		baseDir      string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative image",
			html:         `<img src="./images/logo.png">`,
			baseDir:      testBaseDir(),
			wantContains: []string{`src="file://`},
		},
		{
			name:         "relative stylesheet",
			html:         `<link rel="stylesheet" href="style.css">`,
			baseDir:      testBaseDir(),
			wantContains: []string{`href="file://`},
		},
		{
			name:         "relative link",
			html:         `<a href="other.html">next</a>`,
			baseDir:      testBaseDir(),
			wantContains: []string{`href="file://`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/logo.png">`,
			baseDir:      testBaseDir(),
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "https URL unchanged",
			html:         `<img src="https://example.com/logo.png">`,
			baseDir:      testBaseDir(),
			wantContains: []string{`src="https://example.com/logo.png"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#top">top</a>`,
			baseDir:      testBaseDir(),
			wantContains: []string{`href="#top"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:a@b.c">mail</a>`,
			baseDir:      testBaseDir(),
			wantContains: []string{`href="mailto:a@b.c"`},
		},
		{
			name:         "unresolved placeholder unchanged",
			html:         `<img src="$logo$">`,
			baseDir:      testBaseDir(),
			wantContains: []string{`src="$logo$"`},
		},
		{
			name:         "script src not rewritten",
			html:         `<script src="app.js"></script>`,
			baseDir:      testBaseDir(),
			wantContains: []string{`src="app.js"`},
			wantExcludes: []string{"file://"},
		},
		{
			name:         "empty base dir returns input",
			html:         `<img src="logo.png">`,
			baseDir:      "",
			wantContains: []string{`src="logo.png"`},
		},
		{
			name:         "parent traversal blocked",
			html:         `<img src="../../../etc/passwd">`,
			baseDir:      testBaseDir(),
			wantContains: []string{`src="../../../etc/passwd"`},
		},
		{
			name:         "stanza markup preserved",
			html:         `<div class=stanza><p>a</p></div><img src="x.png">`,
			baseDir:      testBaseDir(),
			wantContains: []string{`<div class="stanza"><p>a</p></div>`, `src="file://`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, tt.baseDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RewriteRelativePaths() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_FullDocument(t *testing.T) {
	t.Parallel()

	page := `<!DOCTYPE html>
<html>
<head><title>Test</title><link rel="stylesheet" href="css/site.css"></head>
<body><img src="./logo.png"></body>
</html>`

	got, err := RewriteRelativePaths(page, testBaseDir())
	if err != nil {
		t.Fatalf("RewriteRelativePaths() error = %v", err)
	}

	if !strings.Contains(strings.ToLower(got), "doctype") {
		t.Error("full document should preserve DOCTYPE")
	}
	if strings.Count(got, "file://") != 2 {
		t.Errorf("expected 2 rewritten paths, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestIsRelativePath / TestIsPathUnderDir / TestPathToFileURL
// ---------------------------------------------------------------------------

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"logo.png", true},
		{"./img/logo.png", true},
		{"../logo.png", true},
		{"", false},
		{"#section", false},
		{"http://x", false},
		{"https://x", false},
		{"file:///x", false},
		{"data:image/png;base64,AA", false},
		{"//cdn.example.com/x.js", false},
		{"mailto:a@b.c", false},
		{"$logo$", false},
	}

	for _, tt := range tests {
		if got := isRelativePath(tt.path); got != tt.want {
			t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIsPathUnderDir(t *testing.T) {
	t.Parallel()

	dir := filepath.FromSlash("/docs/project")

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"direct child", "/docs/project/a.png", true},
		{"nested child", "/docs/project/img/a.png", true},
		{"exact match", "/docs/project", true},
		{"parent directory", "/docs/a.png", false},
		{"similar prefix", "/docs/project-other/a.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isPathUnderDir(filepath.FromSlash(tt.path), dir); got != tt.want {
				t.Errorf("isPathUnderDir(%q, %q) = %v, want %v", tt.path, dir, got, tt.want)
			}
		})
	}
}

func TestPathToFileURL(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		path string
		want string
	}{
		{"/docs/logo.png", "file:///docs/logo.png"},
		{"/docs/my file.png", "file:///docs/my%20file.png"},
	}

	for _, tt := range tests {
		if got := pathToFileURL(tt.path); got != tt.want {
			t.Errorf("pathToFileURL(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
