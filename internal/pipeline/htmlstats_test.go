package pipeline

import (
	"testing"
)

// ---------------------------------------------------------------------------
// TestInspectHTML - Element counts of formatted output
// ---------------------------------------------------------------------------

func TestInspectHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want HTMLStats
	}{
		{
			name: "empty",
			html: "",
			want: HTMLStats{},
		},
		{
			name: "formatted body fragment",
			html: FormatBody("# Title\nx **b** and *i* ~~s~~ y\nplain\n/\nl1\nl2\n/"),
			want: HTMLStats{Paragraphs: 4, Headings: 1, Stanzas: 1, Bold: 1, Italic: 1, Strike: 1},
		},
		{
			name: "full document",
			html: "<!DOCTYPE html><html><body><h1>T</h1><p>a</p><div class=\"note stanza\"></div></body></html>",
			want: HTMLStats{Paragraphs: 1, Headings: 1, Stanzas: 1},
		},
		{
			name: "div without stanza class",
			html: "<div class=other><p>a</p></div>",
			want: HTMLStats{Paragraphs: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := InspectHTML(tt.html)
			if err != nil {
				t.Fatalf("InspectHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("InspectHTML() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
