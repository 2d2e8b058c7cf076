package extraction

import (
	"regexp"
	"strings"
)

var (
	lineBreaks       = regexp.MustCompile(`\n`)
	repeatWhitespace = regexp.MustCompile(`\s{2,}`)
	pageMarkers      = regexp.MustCompile(`Page \d+ of \d+`)
	inlineReferences = regexp.MustCompile(`\[[^\]]*?\]`)
	bibliographyTail = regexp.MustCompile(`(?i)(References|Bibliography)[\s\S]+`)
)

// Clean normalizes extracted source text for summarization: line breaks are
// flattened, whitespace collapsed, page markers and inline reference tags
// removed, and the bibliography tail dropped.
func Clean(text string) string {
	text = lineBreaks.ReplaceAllString(text, " ")
	text = repeatWhitespace.ReplaceAllString(text, " ")
	text = pageMarkers.ReplaceAllString(text, "")
	text = inlineReferences.ReplaceAllString(text, "")
	text = bibliographyTail.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Truncate bounds cleaned text to at most max runes.
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
