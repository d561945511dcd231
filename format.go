package textformatter

import (
	"github.com/alnah/go-textformatter/internal/pipeline"
)

// ExtractMetadata splits a leading "---" block of "key: value" lines from
// content. It returns the parsed entries (never nil) and the remaining text.
// Without a complete block the map is empty and content is returned unchanged.
func ExtractMetadata(content string) (map[string]string, string) {
	return pipeline.ExtractMetadata(content)
}

// FormatBody converts lightweight marks (**bold**, *italic*, _italic_,
// ~~strike~~, "# heading", "/" stanzas) to HTML and wraps plain lines in
// paragraphs. It never fails: unmatched marks stay literal.
func FormatBody(content string) string {
	return pipeline.FormatBody(content)
}

// MergeTemplate replaces $key$ placeholders in tmpl with metadata values and
// $body$ with body. Unknown placeholders are left as they are.
func MergeTemplate(body, tmpl string, metadata map[string]string) string {
	return pipeline.MergeTemplate(body, tmpl, metadata)
}

// Render runs the three stages on text: metadata extraction, body formatting
// and template merge.
func Render(text, tmpl string) string {
	metadata, body := pipeline.ExtractMetadata(pipeline.NormalizeLineEndings(text))
	return pipeline.MergeTemplate(pipeline.FormatBody(body), tmpl, metadata)
}
