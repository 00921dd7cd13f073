package main

import (
	"fmt"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/dustin/go-humanize"

	clickguard "github.com/atthapon-k/naofumi-clickguard"
)

// guardStateMsg arrives whenever any guard changes state, including
// from its rest timer goroutine.
type guardStateMsg struct {
	state clickguard.State
}

type tickMsg time.Time

type outcome int

const (
	outcomeForwarded outcome = iota
	outcomeSuppressed
	outcomeUnarmed
)

type logEntry struct {
	n     int
	label string
	kind  outcome
	at    time.Time
}

type appModel struct {
	width  int
	height int

	keyMap KeyMap
	help   help.Model

	buttons []*button
	focus   int

	saveGuard  *clickguard.Guard
	groupGuard *clickguard.Guard
	checkGuard *clickguard.Guard

	clicks  int
	entries []logEntry

	send func(tea.Msg)
}

func newApp(period, groupPeriod time.Duration) (*appModel, error) {
	a := &appModel{
		keyMap: DefaultKeyMap(),
		help:   help.New(),
	}

	save := newButton("Save")
	submit := newButton("Submit")
	retry := newButton("Retry")
	check := newButton("Validate")
	a.buttons = []*button{save, submit, retry, check}

	for _, b := range a.buttons {
		b.SetOnClick(clickguard.HandlerFunc(func(clickguard.Control) {
			b.forwarded++
		}))
	}

	a.saveGuard = clickguard.NewGuard(period)
	if err := a.saveGuard.Attach(save, a.recordClicked(save), a.recordIgnored(save)); err != nil {
		return nil, fmt.Errorf("guard save: %w", err)
	}

	a.groupGuard = clickguard.NewGuard(groupPeriod)
	for _, b := range []*button{submit, retry} {
		if err := a.groupGuard.Attach(b, a.recordClicked(b), a.recordIgnored(b)); err != nil {
			return nil, fmt.Errorf("guard %s: %w", b.label, err)
		}
	}

	// Every third forwarded click declines to arm the guard, so the
	// next click goes straight through.
	a.checkGuard = clickguard.NewGuard(period)
	err := a.checkGuard.Attach(check,
		clickguard.WithOnClicked(func(clickguard.Control) bool {
			if check.forwarded%3 == 0 {
				a.record(check, outcomeUnarmed)
				return false
			}
			a.record(check, outcomeForwarded)
			return true
		}),
		a.recordIgnored(check),
	)
	if err != nil {
		return nil, fmt.Errorf("guard validate: %w", err)
	}

	for _, g := range a.guards() {
		g.AddObserver("demo-ui", func(s clickguard.State) {
			if a.send != nil {
				a.send(guardStateMsg{state: s})
			}
		})
	}

	return a, nil
}

func (a *appModel) guards() []*clickguard.Guard {
	return []*clickguard.Guard{a.saveGuard, a.groupGuard, a.checkGuard}
}

func (a *appModel) recordClicked(b *button) clickguard.Option {
	return clickguard.WithOnClicked(func(clickguard.Control) bool {
		a.record(b, outcomeForwarded)
		return true
	})
}

func (a *appModel) recordIgnored(b *button) clickguard.Option {
	return clickguard.WithOnIgnored(func(clickguard.Control) {
		b.suppressed++
		b.flash()
		a.record(b, outcomeSuppressed)
	})
}

func (a *appModel) record(b *button, kind outcome) {
	a.entries = append(a.entries, logEntry{
		n:     a.clicks,
		label: b.label,
		kind:  kind,
		at:    time.Now(),
	})
}

// Init implements tea.Model.
func (a *appModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	case tickMsg:
		return a, tickCmd()
	case guardStateMsg:
		// Repaint. Countdowns and borders read guard state directly.
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			if i := a.buttonAt(msg.X, msg.Y); i >= 0 {
				a.focus = i
				a.press(a.buttons[i])
			}
		}
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, a.keyMap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keyMap.Next):
			a.focus = (a.focus + 1) % len(a.buttons)
		case key.Matches(msg, a.keyMap.Prev):
			a.focus = (a.focus + len(a.buttons) - 1) % len(a.buttons)
		case key.Matches(msg, a.keyMap.Click):
			a.press(a.buttons[a.focus])
		case key.Matches(msg, a.keyMap.Rest):
			slog.Debug("Resting all guards")
			for _, g := range a.guards() {
				g.Rest()
			}
		case key.Matches(msg, a.keyMap.Help):
			a.help.ShowAll = !a.help.ShowAll
		}
	}
	return a, nil
}

func (a *appModel) press(b *button) {
	a.clicks++
	b.press()
}

const (
	buttonsTop  = 2
	buttonsLeft = 1
	buttonGap   = 1
)

// buttonAt maps terminal coordinates to a button index, or -1.
func (a *appModel) buttonAt(x, y int) int {
	if y < buttonsTop || y >= buttonsTop+buttonHeight {
		return -1
	}
	for i := range a.buttons {
		left := buttonsLeft + i*(buttonWidth+buttonGap)
		if x >= left && x < left+buttonWidth {
			return i
		}
	}
	return -1
}

// View implements tea.Model.
func (a *appModel) View() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}

	title := lipgloss.NewStyle().
		PaddingLeft(1).
		Bold(true).
		Foreground(charmtone.Charple).
		Render("Click Guard Demo")

	row := make([]string, 0, len(a.buttons)*2)
	for i, b := range a.buttons {
		if i > 0 {
			row = append(row, " ")
		}
		row = append(row, b.view(i == a.focus))
	}
	buttons := lipgloss.NewStyle().
		PaddingLeft(buttonsLeft).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, row...))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		buttons,
		"",
		a.eventLog(),
		lipgloss.NewStyle().PaddingLeft(1).Render(a.help.View(a.keyMap)),
	)
}

func (a *appModel) eventLog() string {
	// Everything above and below the log has a fixed height.
	rows := a.height - buttonsTop - buttonHeight - 2 - 2
	rows = max(rows, 3)

	lines := make([]string, 0, rows)
	start := max(len(a.entries)-rows, 0)
	for _, e := range a.entries[start:] {
		lines = append(lines, a.renderEntry(e))
	}
	if len(lines) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(charmtone.Squid).
			Render("Click a button. Mash it, even."))
	}

	return lipgloss.NewStyle().
		Width(max(a.width-2, 20)).
		Height(rows).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(charmtone.Smoke).
		PaddingLeft(1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a *appModel) renderEntry(e logEntry) string {
	var (
		text  string
		color = charmtone.Guac
	)
	switch e.kind {
	case outcomeForwarded:
		text = "forwarded"
	case outcomeSuppressed:
		text = "swallowed"
		color = charmtone.Cherry
	case outcomeUnarmed:
		text = "forwarded, guard left resting"
		color = charmtone.Butter
	}
	return fmt.Sprintf("%s %s %s %s",
		lipgloss.NewStyle().Foreground(charmtone.Squid).Width(6).Render(humanize.Ordinal(e.n)),
		lipgloss.NewStyle().Width(9).Render(e.label),
		lipgloss.NewStyle().Foreground(color).Width(30).Render(text),
		lipgloss.NewStyle().Foreground(charmtone.Squid).Render(humanize.Time(e.at)),
	)
}
