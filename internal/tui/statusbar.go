package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(tracking bool, started time.Time, next time.Duration, polling bool, width int, hints string) string {
	var left string
	switch {
	case polling:
		left = " polling..."
	case tracking:
		left = fmt.Sprintf(" tracking since %s · next poll in %ds",
			started.Format("15:04:05"), int(next.Seconds()))
	default:
		left = " stopped"
	}

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right
	return statusBarStyle.Width(width).Render(bar)
}
