package llm

import "strings"

// StripMarkdownFence removes a ```json ... ``` (or bare ```) wrapper that
// models add around JSON despite instructions not to. Content without a
// fence is returned trimmed but otherwise untouched.
func StripMarkdownFence(content string) string {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	// Drop a language tag on the opening fence line.
	if idx := strings.Index(content, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(content[:idx])
		if firstLine == "" || isFenceTag(firstLine) {
			content = content[idx+1:]
		}
	}

	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

func isFenceTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
