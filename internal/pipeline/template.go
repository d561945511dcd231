package pipeline

import (
	"github.com/dlclark/regexp2"
)

// BodyKey is the reserved metadata key holding the formatted body.
const BodyKey = "body"

// placeholderPattern matches $identifier$ tokens.
var placeholderPattern = regexp2.MustCompile(`\$([A-Za-z0-9_-]+)\$`, regexp2.None)

var identifierPattern = regexp2.MustCompile(`^[A-Za-z0-9_-]+\z`, regexp2.None)

// IsIdentifier reports whether key can be referenced as a $key$ placeholder.
func IsIdentifier(key string) bool {
	ok, err := identifierPattern.MatchString(key)
	return err == nil && ok
}

// MergeTemplate resolves the $key$ placeholders of tmpl against metadata,
// with body available under BodyKey. Unknown placeholders are kept verbatim.
// Substituted values are not scanned again, so a value that looks like a
// placeholder is emitted as plain text.
//
// metadata is not modified.
func MergeTemplate(body, tmpl string, metadata map[string]string) string {
	values := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		values[k] = v
	}
	values[BodyKey] = body

	out, err := placeholderPattern.ReplaceFunc(tmpl, func(m regexp2.Match) string {
		if v, ok := values[m.GroupByNumber(1).String()]; ok {
			return v
		}
		return m.String()
	}, -1, -1)
	if err != nil {
		return tmpl
	}
	return out
}

// Placeholders returns the distinct placeholder identifiers of tmpl in the
// order they first appear.
func Placeholders(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)

	m, err := placeholderPattern.FindStringMatch(tmpl)
	for err == nil && m != nil {
		name := m.GroupByNumber(1).String()
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		m, err = placeholderPattern.FindNextMatch(m)
	}
	return names
}

// UnresolvedPlaceholders returns the identifiers of tmpl that neither
// metadata nor BodyKey can resolve.
func UnresolvedPlaceholders(tmpl string, metadata map[string]string) []string {
	var missing []string
	for _, name := range Placeholders(tmpl) {
		if name == BodyKey {
			continue
		}
		if _, ok := metadata[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
