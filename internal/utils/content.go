// Package utils holds small text helpers shared by the prompt and model layers.
package utils

import (
	"strings"

	"google.golang.org/genai"
)

// ExtractContentText joins the visible text parts of content. Thought parts are skipped.
func ExtractContentText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// NormalizePromptText expands persona placeholders and escaped line breaks
// found in hand-edited persona files.
func NormalizePromptText(text, charName, userName string) string {
	text = strings.ReplaceAll(text, "{{char}}", charName)
	text = strings.ReplaceAll(text, "{{user}}", userName)
	text = strings.ReplaceAll(text, "\\r\\n", "\n")
	text = strings.ReplaceAll(text, "\\n", "\n")
	return text
}
