package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// rewrittenAttrs maps element names to the attribute holding a resource path.
// The merged page is rendered from a temporary file, so template references
// such as <link href="style.css"> or <img src="logo.png"> must be absolute.
var rewrittenAttrs = map[string]string{
	"img":  "src",
	"a":    "href",
	"link": "href",
}

// RewriteRelativePaths converts relative resource paths to absolute file:// URLs
// rooted at baseDir. If baseDir is empty, returns the HTML unchanged.
//
// Paths escaping baseDir, URLs, anchors and absolute paths are left alone.
func RewriteRelativePaths(htmlContent, baseDir string) (string, error) {
	if baseDir == "" {
		return htmlContent, nil
	}

	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walkElements(doc, func(n *html.Node) {
		if attr, ok := rewrittenAttrs[n.Data]; ok {
			rewriteAttr(n, attr, absBaseDir)
		}
	})

	return renderHTML(doc, isFragment)
}

// rewriteAttr rewrites a single attribute if it's a relative path.
func rewriteAttr(n *html.Node, attrName, baseDir string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		absPath := filepath.Join(baseDir, attr.Val)
		if !isPathUnderDir(absPath, baseDir) {
			continue
		}

		n.Attr[i].Val = pathToFileURL(absPath)
	}
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" || strings.HasPrefix(path, "#") || filepath.IsAbs(path) {
		return false
	}

	for _, prefix := range []string{"http://", "https://", "file://", "data:", "mailto:", "//"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}

	// Unresolved $placeholder$ values are not paths.
	return !strings.HasPrefix(path, "$")
}

// isPathUnderDir checks if absPath is under dir.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
