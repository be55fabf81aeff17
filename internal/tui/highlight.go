package tui

import (
	"regexp"
	"strings"
)

// highlightTerm re-styles every occurrence of term inside text. Purely a
// display concern: the engine stores articles untouched and the dashboard
// re-derives the emphasis each frame.
func highlightTerm(text, term string) string {
	if text == "" || strings.TrimSpace(term) == "" {
		return text
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		return highlightStyle.Render(m)
	})
}
