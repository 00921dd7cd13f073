package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"

	clickguard "github.com/atthapon-k/naofumi-clickguard"
)

const (
	buttonWidth  = 18
	buttonHeight = 5
	flashFor     = 300 * time.Millisecond
)

// button is a focusable demo control. Guards wrap whatever handler is
// registered on it, so pressing it goes through the usual dispatch.
type button struct {
	label   string
	handler clickguard.Handler

	forwarded  int
	suppressed int
	flashUntil time.Time
}

func newButton(label string) *button {
	return &button{label: label}
}

// OnClick implements clickguard.Control.
func (b *button) OnClick() clickguard.Handler {
	return b.handler
}

// SetOnClick implements clickguard.Control.
func (b *button) SetOnClick(h clickguard.Handler) {
	b.handler = h
}

// press dispatches a click through the registered handler chain.
func (b *button) press() {
	if b.handler != nil {
		b.handler.HandleClick(b)
	}
}

// flash marks the button for a brief rejected-click highlight.
func (b *button) flash() {
	b.flashUntil = time.Now().Add(flashFor)
}

func (b *button) view(focused bool) string {
	state := "ready"
	watching := false
	if g, err := clickguard.GuardOf(b); err == nil && g.IsWatching() {
		watching = true
		state = fmt.Sprintf("watching %s", g.Remaining().Round(100*time.Millisecond))
	}

	border := charmtone.Smoke
	switch {
	case time.Now().Before(b.flashUntil):
		border = charmtone.Cherry
	case focused:
		border = charmtone.Malibu
	case watching:
		border = charmtone.Butter
	}

	label := lipgloss.NewStyle().Bold(true).Render(b.label)
	stateStyle := lipgloss.NewStyle().Foreground(charmtone.Squid)
	if watching {
		stateStyle = stateStyle.Foreground(charmtone.Butter)
	}
	counts := fmt.Sprintf("%d ok / %d held", b.forwarded, b.suppressed)

	return lipgloss.NewStyle().
		Width(buttonWidth - 2).
		AlignHorizontal(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(lipgloss.JoinVertical(lipgloss.Center,
			label,
			stateStyle.Render(state),
			lipgloss.NewStyle().Foreground(charmtone.Squid).Render(counts),
		))
}
