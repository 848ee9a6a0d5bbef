package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Canonical short status messages used across the app.
const (
	MsgSearching     = "Searching..."
	MsgNoResults     = "No results"
	MsgCityScopeOn   = "City search enabled"
	MsgCityScopeOff  = "City search disabled"
	MsgNothingToOpen = "Nothing to open"
	ImagePlaceholder = "_(image unavailable)_"
)

const statusDisplayTime = 4 * time.Second

func MsgResultsCount(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

func MsgOpened(what string) string {
	return fmt.Sprintf("Opened %s", what)
}

type statusExpiredMsg struct {
	seq int
}

// setStatus shows text in the status bar. A positive ttl clears it again
// unless a newer status replaced it first.
func (a *App) setStatus(text string, kind StatusKind, ttl time.Duration) tea.Cmd {
	a.statusSeq++
	a.status = text
	a.statusKind = kind

	if ttl <= 0 {
		return nil
	}
	seq := a.statusSeq
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func (a *App) clearStatus(seq int) {
	if seq == a.statusSeq {
		a.status = ""
	}
}
