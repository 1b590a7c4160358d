package cmd

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "The Fool", 20, []string{"The Fool"}},
		{"wraps", "one two three four", 10, []string{"one two", "three four"}},
		{"keeps paragraphs", "first\n\nsecond", 20, []string{"first", "", "second"}},
		{"narrow width falls back", "a b c", 3, []string{"a b c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Fatalf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
