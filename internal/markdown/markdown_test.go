package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"heading", "# Dosage basics", []string{"<h1", "Dosage basics</h1>"}},
		{"emphasis", "be *careful* here", []string{"<em>careful</em>"}},
		{"gfm table", "| a | b |\n|---|---|\n| 1 | 2 |", []string{"<table>", "<td>1</td>"}},
		{"gfm strikethrough", "~~old advice~~", []string{"<del>old advice</del>"}},
		{"link", "[site](https://example.com)", []string{`<a href="https://example.com"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.source)
			if err != nil {
				t.Fatalf("ToHTML failed: %v", err)
			}
			for _, fragment := range tt.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("output %q missing %q", got, fragment)
				}
			}
		})
	}
}

func TestToHTMLHeadingIDs(t *testing.T) {
	got, err := ToHTML("## Getting Started")
	if err != nil {
		t.Fatalf("ToHTML failed: %v", err)
	}
	if !strings.Contains(got, `id="getting-started"`) {
		t.Errorf("expected an auto heading id, got %q", got)
	}
}
