package llm

import "strings"

// CleanJSONBlock removes a markdown code fence or a conversational preamble
// around a JSON answer.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// A short first line without spaces or braces is a language tag.
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			first := text[:idx]
			if len(first) < 20 && !strings.ContainsAny(first, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if text == "" || text[0] == '{' || text[0] == '[' {
		return text
	}
	if idx := strings.IndexAny(text, "{["); idx >= 0 {
		return strings.TrimSpace(text[idx:])
	}
	return text
}

// StripFences removes a surrounding code fence from a free-text answer and
// trims it. Text without a fence is only trimmed.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	inner := text[3 : len(text)-3]
	if idx := strings.IndexByte(inner, '\n'); idx >= 0 && !strings.Contains(inner[:idx], " ") {
		inner = inner[idx+1:]
	}
	return strings.TrimSpace(inner)
}
