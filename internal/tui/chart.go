package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/the-grim-beeper/newstracker/internal/series"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// renderSparkline draws bucket counts as a row of block runes, one rune per
// bucket, keeping only the most recent buckets that fit the width. All
// terms of a session share the same bucket grid, so sparklines rendered at
// the same width line up column for column.
func renderSparkline(s series.Series, width int, max int) string {
	if width <= 0 || len(s) == 0 {
		return ""
	}
	if len(s) > width {
		s = s[len(s)-width:]
	}
	if max < 1 {
		max = 1
	}

	var b strings.Builder
	for _, p := range s {
		if p.Count <= 0 {
			b.WriteRune(sparkRunes[0])
			continue
		}
		idx := p.Count * (len(sparkRunes) - 1) / max
		if idx < 1 {
			// Nonzero buckets stay visually distinct from empty ones.
			idx = 1
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// renderChart shows one labeled sparkline per term on a shared scale.
func renderChart(terms []string, byTerm map[string]series.Series, width int) string {
	if len(terms) == 0 {
		return dimStyle.Render("no terms tracked")
	}

	labelWidth := 0
	for _, t := range terms {
		if len(t) > labelWidth {
			labelWidth = len(t)
		}
	}
	lineWidth := width - labelWidth - 2
	if lineWidth < 8 {
		lineWidth = 8
	}

	// Shared scale across terms so bars compare.
	max := 1
	for _, t := range terms {
		if m := byTerm[t].Max(); m > max {
			max = m
		}
	}

	var lines []string
	for i, t := range terms {
		style := lipgloss.NewStyle().Foreground(termColor(i))
		label := style.Render(padRight(t, labelWidth))
		lines = append(lines, label+"  "+style.Render(renderSparkline(byTerm[t], lineWidth, max)))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
