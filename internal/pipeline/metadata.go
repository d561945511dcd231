package pipeline

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Precompiled patterns for the metadata block.
var (
	// Block anchored at the first line: "---", one or more lines, "---".
	metadataBlock = regexp2.MustCompile(`^---[ \t]*\n(.*?)\n---[ \t]*(?=\n|\z)`, regexp2.Singleline)

	// One "key: value" entry per line; value is non-empty and trimmed.
	metadataEntry = regexp2.MustCompile(`^[ \t]*([\w-]+)[ \t]*:[ \t]*(.+?)[ \t]*$`, regexp2.Multiline)

	// Line ending normalization
	crlfOrCR = regexp2.MustCompile(`\r\n?`, regexp2.None)
)

// ExtractMetadata splits a document into its metadata mapping and the
// remaining text. The block is removed with both delimiters; whatever
// follows the closing "---" is kept as is, including its line break.
//
// A document without a block, or with an unterminated one, yields an empty
// mapping and the content unchanged.
func ExtractMetadata(content string) (map[string]string, string) {
	metadata := make(map[string]string)

	m, err := metadataBlock.FindStringMatch(content)
	if err != nil || m == nil {
		return metadata, content
	}

	parseMetadataEntries(m.GroupByNumber(1).String(), metadata)

	// regexp2 reports rune offsets.
	runes := []rune(content)
	remaining := string(runes[:m.Index]) + string(runes[m.Index+m.Length:])
	return metadata, remaining
}

// parseMetadataEntries adds every "key: value" line of block to dst.
// Lines of any other shape are skipped. Later keys overwrite earlier ones.
func parseMetadataEntries(block string, dst map[string]string) {
	m, err := metadataEntry.FindStringMatch(block)
	for err == nil && m != nil {
		key := m.GroupByNumber(1).String()
		value := strings.TrimSpace(m.GroupByNumber(2).String())
		if value != "" {
			dst[key] = value
		}
		m, err = metadataEntry.FindNextMatch(m)
	}
}

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	if !strings.ContainsRune(content, '\r') {
		return content
	}
	out, err := crlfOrCR.Replace(content, "\n", -1, -1)
	if err != nil {
		return content
	}
	return out
}
