package utils

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fenced array",
			input: "```json\n[{\"a\":1}]\n```",
			want:  `[{"a":1}]`,
		},
		{
			name:  "prose before and after",
			input: "Here is your JSON:\n[{\"a\":1}]\nHope that helps!",
			want:  `[{"a":1}]`,
		},
		{
			name:  "already clean",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripLeadIn(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sure prefix", "Sure, here you go:\nthe text", "the text"},
		{"here prefix", "Here's the rewritten version:\nthe text", "the text"},
		{"no lead-in", "the text stands alone", "the text stands alone"},
		{"lead-in word mid-text", "this is well written\nmore", "this is well written\nmore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripLeadIn(tt.input); got != tt.want {
				t.Errorf("StripLeadIn(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
