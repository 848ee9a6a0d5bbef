package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/pders01/seek/internal/config"
)

func TestKeyHandler_ModifierKey(t *testing.T) {
	app, _ := newTestApp(t, &fakeSearcher{})

	assert.NotNil(t, app.keyHandler)
	assert.Equal(t, "ctrl+", app.keyHandler.modifierKey)
	assert.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, app.keyHandler.keys.Submit))
}

func TestKeyHandler_CustomModifier(t *testing.T) {
	cfg := config.TestConfig()
	cfg.Keys.Modifier = "alt"
	app := NewApp(&fakeSearcher{}, cfg)

	assert.Equal(t, "alt+", app.keyHandler.modifierKey)

	altS := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}, Alt: true}
	assert.True(t, key.Matches(altS, app.keyHandler.keys.Submit))
	assert.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, app.keyHandler.keys.Submit))
}

func TestKeyHandler_FocusCycle(t *testing.T) {
	app, _ := newTestApp(t, &fakeSearcher{})

	tests := []struct {
		name   string
		setup  func(*App)
		msg    tea.KeyMsg
		expect Focus
	}{
		{
			name:   "tab from query to limit",
			msg:    tea.KeyMsg{Type: tea.KeyTab},
			expect: FocusLimit,
		},
		{
			name:   "tab from limit to threshold",
			msg:    tea.KeyMsg{Type: tea.KeyTab},
			expect: FocusThreshold,
		},
		{
			name:   "tab wraps to query without results",
			msg:    tea.KeyMsg{Type: tea.KeyTab},
			expect: FocusQuery,
		},
		{
			name:   "shift+tab wraps backwards",
			msg:    tea.KeyMsg{Type: tea.KeyShiftTab},
			expect: FocusThreshold,
		},
		{
			name:   "enter in numeric field moves on",
			msg:    tea.KeyMsg{Type: tea.KeyEnter},
			expect: FocusQuery,
		},
		{
			name:   "down moves to next field",
			msg:    tea.KeyMsg{Type: tea.KeyDown},
			expect: FocusLimit,
		},
		{
			name:   "up moves to previous field",
			msg:    tea.KeyMsg{Type: tea.KeyUp},
			expect: FocusQuery,
		},
		{
			name:   "up in query stays",
			msg:    tea.KeyMsg{Type: tea.KeyUp},
			expect: FocusQuery,
		},
		{
			name:   "results join the cycle once listed",
			setup:  func(a *App) { a.Update(searchResultsMsg{results: testResults}) },
			msg:    tea.KeyMsg{Type: tea.KeyShiftTab},
			expect: FocusResults,
		},
		{
			name:   "slash returns to query",
			msg:    tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}},
			expect: FocusQuery,
		},
	}

	for _, tt := range tests {
		if tt.setup != nil {
			tt.setup(app)
		}
		press(app, tt.msg)
		assert.Equal(t, tt.expect, app.focus, tt.name)
	}
}

func TestKeyHandler_OnlyFocusedInputIsFocused(t *testing.T) {
	app, _ := newTestApp(t, &fakeSearcher{})

	press(app, tea.KeyMsg{Type: tea.KeyTab})

	assert.False(t, app.queryInput.Focused())
	assert.True(t, app.limitInput.Focused())
	assert.False(t, app.thresholdInput.Focused())
}

func TestKeyHandler_EscWithoutResultsStays(t *testing.T) {
	app, _ := newTestApp(t, &fakeSearcher{})

	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FocusQuery, app.focus)
	assert.Equal(t, ViewSearch, app.view)
}

func TestKeyHandler_GetHelpForCurrentView(t *testing.T) {
	app, _ := newTestApp(t, &fakeSearcher{})
	kh := app.keyHandler

	helpKeys := func() []string {
		var out []string
		for _, b := range kh.GetHelpForCurrentView() {
			out = append(out, b.Help().Key)
		}
		return out
	}

	assert.Equal(t, []string{"ctrl+s", "ctrl+t", "tab", "ctrl+c"}, helpKeys())

	app.Update(searchResultsMsg{results: testResults})
	press(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"enter", "ctrl+o", "ctrl+p", "esc", "q"}, helpKeys())

	app.selectResult("Acme")
	assert.Equal(t, []string{"↑↓", "ctrl+o", "ctrl+p", "esc", "q"}, helpKeys())
}
