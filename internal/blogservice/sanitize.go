package blogservice

import "regexp"

var (
	scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>.*?<\s*/\s*script\s*>`)
	iframeTagPattern = regexp.MustCompile(`(?is)<\s*iframe[^>]*>.*?<\s*/\s*iframe\s*>`)
)

func sanitizeMarkdown(markdown string) string {
	markdown = scriptTagPattern.ReplaceAllString(markdown, "")
	return iframeTagPattern.ReplaceAllString(markdown, "")
}
