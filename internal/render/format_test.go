package render

import (
	"testing"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "pad short string",
			input:    "size/S",
			width:    10,
			expected: "size/S    ",
		},
		{
			name:     "no padding needed",
			input:    "hello",
			width:    5,
			expected: "hello",
		},
		{
			name:     "string longer than width",
			input:    "size/XXL",
			width:    5,
			expected: "size/XXL",
		},
		{
			name:     "empty string",
			input:    "",
			width:    5,
			expected: "     ",
		},
		{
			name:     "wide characters",
			input:    "こんにちは",
			width:    15,
			expected: "こんにちは     ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadRight(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("PadRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "short text unchanged",
			input:    "generated files",
			width:    40,
			expected: "generated files",
		},
		{
			name:     "whitespace collapsed",
			input:    "line one\n\n  line   two",
			width:    40,
			expected: "line one line two",
		},
		{
			name:     "long text truncated",
			input:    "because the migration touches generated files",
			width:    14,
			expected: "because the m…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Excerpt(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}
