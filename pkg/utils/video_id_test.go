package utils

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extras", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"empty", "", ""},
		{"whitespace around id", "  dQw4w9WgXcQ ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.input); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsLikelyVideoID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"dQw4w9WgXcQ", true},
		{"abc-DEF_123", true},
		{"short", false},
		{"waytoolongtobeanid", false},
		{"has space!!!", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsLikelyVideoID(tt.input); got != tt.want {
			t.Errorf("IsLikelyVideoID(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
