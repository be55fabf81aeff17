// Package tui renders the tracking session as a live dashboard. The
// dashboard is also the engine's host: a one-second heartbeat drives the
// countdown and fires a poll whenever the session says one is due.
package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/the-grim-beeper/newstracker/internal/browser"
	"github.com/the-grim-beeper/newstracker/internal/series"
	"github.com/the-grim-beeper/newstracker/internal/store"
	"github.com/the-grim-beeper/newstracker/internal/track"
)

type mode int

const (
	modeSetup mode = iota
	modeDashboard
)

type App struct {
	session *track.Session

	mode       mode
	termInput  textinput.Model
	spinner    spinner.Model
	activeTerm int
	cursor     int

	width  int
	height int

	polling  bool
	warnings []string
	err      error

	totals   map[string]int
	articles map[string][]store.Article
}

func NewApp(session *track.Session) *App {
	ti := textinput.New()
	ti.Placeholder = "terms, comma-separated (up to 3)"
	ti.Prompt = inputPromptStyle.Render("> ")
	ti.CharLimit = 120
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	if terms := session.Terms(); len(terms) > 0 {
		ti.SetValue(strings.Join(terms, ", "))
	}

	return &App{
		session:   session,
		mode:      modeSetup,
		termInput: ti,
		spinner:   sp,
		totals:    make(map[string]int),
		articles:  make(map[string][]store.Article),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, heartbeat())
}

func heartbeat() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return heartbeatMsg(t)
	})
}

func (a *App) startCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := a.session.Start(context.Background())
		return startedMsg{report: report, err: err}
	}
}

func (a *App) pollCmd() tea.Cmd {
	return func() tea.Msg {
		return pollDoneMsg{report: a.session.Tick(context.Background())}
	}
}

func (a *App) snapshotCmd() tea.Cmd {
	return func() tea.Msg {
		snap := snapshot{
			totals:   make(map[string]int),
			articles: make(map[string][]store.Article),
		}
		for _, term := range a.session.Terms() {
			n, err := a.session.TotalMentions(term)
			if err != nil {
				return snapshotMsg{err: err}
			}
			arts, err := a.session.Articles(term)
			if err != nil {
				return snapshotMsg{err: err}
			}
			snap.totals[term] = n
			snap.articles[term] = arts
		}
		return snapshotMsg{snap: snap}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		browser.Open(url)
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case heartbeatMsg:
		var cmds []tea.Cmd
		if a.mode == modeDashboard && a.session.IsTracking() &&
			!a.polling && a.session.UntilNextTick() == 0 {
			a.polling = true
			cmds = append(cmds, a.pollCmd(), a.spinner.Tick)
		}
		cmds = append(cmds, heartbeat())
		return a, tea.Batch(cmds...)

	case startedMsg:
		a.polling = false
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.collectWarnings(msg.report)
		return a, a.snapshotCmd()

	case pollDoneMsg:
		a.polling = false
		a.collectWarnings(msg.report)
		return a, a.snapshotCmd()

	case snapshotMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.totals = msg.snap.totals
		a.articles = msg.snap.articles
		a.clampCursor()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		if a.polling {
			return a, cmd
		}
		return a, nil
	}

	if a.mode == modeSetup {
		var cmd tea.Cmd
		a.termInput, cmd = a.termInput.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	if a.mode == modeSetup {
		switch msg.Type {
		case tea.KeyEnter:
			terms := strings.Split(a.termInput.Value(), ",")
			if err := a.session.ConfigureTerms(terms); err != nil {
				a.err = err
				return a, nil
			}
			a.err = nil
			a.warnings = nil
			a.mode = modeDashboard
			a.activeTerm = 0
			a.cursor = 0
			a.polling = true
			return a, tea.Batch(a.startCmd(), a.spinner.Tick)
		case tea.KeyEsc:
			if a.session.IsTracking() || len(a.session.Terms()) > 0 {
				a.mode = modeDashboard
				return a, nil
			}
			return a, tea.Quit
		}
		var cmd tea.Cmd
		a.termInput, cmd = a.termInput.Update(msg)
		return a, cmd
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "s":
		if a.session.IsTracking() {
			a.session.Stop()
			return a, nil
		}
		a.polling = true
		return a, tea.Batch(a.startCmd(), a.spinner.Tick)
	case "e":
		a.mode = modeSetup
		a.termInput.SetValue(strings.Join(a.session.Terms(), ", "))
		a.termInput.Focus()
		return a, textinput.Blink
	case "tab", "right", "l":
		if n := len(a.session.Terms()); n > 0 {
			a.activeTerm = (a.activeTerm + 1) % n
			a.cursor = 0
		}
		return a, nil
	case "shift+tab", "left", "h":
		if n := len(a.session.Terms()); n > 0 {
			a.activeTerm = (a.activeTerm + n - 1) % n
			a.cursor = 0
		}
		return a, nil
	case "down", "j":
		a.cursor++
		a.clampCursor()
		return a, nil
	case "up", "k":
		a.cursor--
		a.clampCursor()
		return a, nil
	case "enter":
		if art, ok := a.selectedArticle(); ok {
			return a, openBrowserCmd(art.Link)
		}
		return a, nil
	}
	return a, nil
}

func (a *App) collectWarnings(r track.Report) {
	a.warnings = a.warnings[:0]
	for _, term := range a.session.Terms() {
		if err := r.Errors[term]; err != nil {
			a.warnings = append(a.warnings, "fetch failed for "+term)
		}
	}
}

func (a *App) currentTerm() (string, bool) {
	terms := a.session.Terms()
	if len(terms) == 0 {
		return "", false
	}
	if a.activeTerm >= len(terms) {
		a.activeTerm = 0
	}
	return terms[a.activeTerm], true
}

func (a *App) selectedArticle() (store.Article, bool) {
	term, ok := a.currentTerm()
	if !ok {
		return store.Article{}, false
	}
	arts := a.articles[term]
	if a.cursor < 0 || a.cursor >= len(arts) {
		return store.Article{}, false
	}
	return arts[a.cursor], true
}

func (a *App) clampCursor() {
	term, ok := a.currentTerm()
	if !ok {
		a.cursor = 0
		return
	}
	n := len(a.articles[term])
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	if a.mode == modeSetup {
		return a.viewSetup()
	}
	return a.viewDashboard()
}

func (a *App) viewSetup() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("newstracker") + "\n\n")
	b.WriteString(" Track up to 3 terms in Google News.\n\n")
	b.WriteString(" " + a.termInput.View() + "\n\n")
	if a.err != nil {
		b.WriteString(" " + warnStyle.Render(a.err.Error()) + "\n\n")
	}
	b.WriteString(dimStyle.Render(" enter start tracking · esc back · ctrl+c quit"))
	return b.String()
}

func (a *App) viewDashboard() string {
	terms := a.session.Terms()
	innerWidth := a.width - 4

	// Chart pane: every term's series shares one bucket grid.
	byTerm := make(map[string]series.Series, len(terms))
	for _, t := range terms {
		byTerm[t] = a.session.TimeSeries(t)
	}
	chart := paneStyle.Width(a.width - 2).Render(
		paneTitleStyle.Render(" Mentions over time") + "\n" +
			renderChart(terms, byTerm, innerWidth))

	// Totals line.
	var totals []string
	for i, t := range terms {
		style := lipgloss.NewStyle().Foreground(termColor(i)).Bold(true)
		totals = append(totals, style.Render(t)+" "+totalValueStyle.Render(strconv.Itoa(a.totals[t])))
	}
	totalsLine := " " + strings.Join(totals, dimStyle.Render("  ·  "))

	// Article list for the active term.
	list := a.viewArticles(innerWidth)

	var warnLine string
	if len(a.warnings) > 0 {
		warnLine = " " + warnStyle.Render(strings.Join(a.warnings, " · "))
	}
	if a.err != nil {
		warnLine = " " + warnStyle.Render(a.err.Error())
	}

	header := headerStyle.Render("newstracker")
	if a.polling {
		header += " " + a.spinner.View()
	}

	hints := "s start/stop  e edit terms  tab switch term  enter open  q quit"
	status := renderStatusBar(a.session.IsTracking(), a.session.StartTime(),
		a.session.UntilNextTick(), a.polling, a.width, hints)

	sections := []string{header, chart, totalsLine, list}
	if warnLine != "" {
		sections = append(sections, warnLine)
	}
	sections = append(sections, status)
	return strings.Join(sections, "\n")
}

func (a *App) viewArticles(width int) string {
	term, ok := a.currentTerm()
	if !ok {
		return paneStyle.Width(a.width - 2).Render(dimStyle.Render(" no terms"))
	}

	title := paneTitleStyle.Render(" Latest articles: ") +
		lipgloss.NewStyle().Foreground(termColor(a.activeTerm)).Bold(true).Render(term)

	arts := a.articles[term]
	if len(arts) == 0 {
		return paneStyle.Width(a.width - 2).Render(
			title + "\n" + dimStyle.Render(" nothing found yet; articles appear as they are discovered"))
	}

	// Rough room for the list: chart pane, totals, bars and borders are
	// accounted for with a fixed margin.
	maxRows := (a.height - 14) / 2
	if maxRows < 3 {
		maxRows = 3
	}

	start := 0
	if a.cursor >= maxRows {
		start = a.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(arts) {
		end = len(arts)
	}

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, renderListItem(arts[i], i == a.cursor, width))
	}
	return paneStyle.Width(a.width - 2).Render(title + "\n" + strings.Join(rows, "\n"))
}

// Run launches the dashboard and blocks until the user quits.
func Run(session *track.Session) error {
	p := tea.NewProgram(NewApp(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
