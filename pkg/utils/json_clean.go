package utils

import (
	"regexp"
	"strings"
)

var leadInPattern = regexp.MustCompile(`(?i)^(sure|okay|here|let me|alright|well)[^\n]*\n`)

// ExtractJSON strips markdown code fences and surrounding prose so the
// remainder can be fed to json.Unmarshal. Model responses routinely wrap
// JSON in ```json fences even when told not to.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	objStart := strings.IndexAny(text, "[{")
	if objStart > 0 {
		text = text[objStart:]
	}
	if end := strings.LastIndexAny(text, "]}"); end >= 0 && end < len(text)-1 {
		text = text[:end+1]
	}

	return strings.TrimSpace(text)
}

// StripLeadIn removes a chatty first line ("Sure, here's the text...") that
// models sometimes prepend despite instructions.
func StripLeadIn(text string) string {
	return leadInPattern.ReplaceAllString(text, "")
}
