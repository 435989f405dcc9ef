package utils

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls the 11-character video id out of the usual YouTube URL
// shapes (watch?v=, youtu.be/, /embed/). Bare ids pass through unchanged.
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if !strings.Contains(input, "/") && !strings.Contains(input, " ") {
		return input
	}

	u, err := url.Parse(input)
	if err != nil {
		return input
	}

	if v := u.Query().Get("v"); v != "" {
		return v
	}
	if u.Host == "youtu.be" || strings.HasSuffix(u.Host, ".youtu.be") {
		return strings.TrimPrefix(u.Path, "/")
	}
	if idx := strings.Index(u.Path, "/embed/"); idx >= 0 {
		rest := u.Path[idx+len("/embed/"):]
		if cut := strings.IndexByte(rest, '/'); cut >= 0 {
			rest = rest[:cut]
		}
		return rest
	}

	return input
}

// IsLikelyVideoID reports whether s looks like a YouTube video id.
func IsLikelyVideoID(s string) bool {
	if len(s) != 11 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
