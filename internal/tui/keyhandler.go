package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/seek/internal/browser"
	"github.com/pders01/seek/internal/config"
	"github.com/pders01/seek/internal/search"
	"github.com/pders01/seek/internal/session"
)

type keyMap struct {
	ForceQuit  key.Binding
	Quit       key.Binding
	Submit     key.Binding
	ToggleCity key.Binding
	OpenLink   key.Binding
	OpenImage  key.Binding
	Back       key.Binding
	Next       key.Binding
	Prev       key.Binding
	Select     key.Binding
	Scroll     key.Binding
}

func newKeyMap(modifierKey string, b config.KeyBindings) keyMap {
	return keyMap{
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Quit:       key.NewBinding(key.WithKeys(b.Quit), key.WithHelp(b.Quit, "quit")),
		Submit:     key.NewBinding(key.WithKeys(modifierKey+b.Submit), key.WithHelp(modifierKey+b.Submit, "search")),
		ToggleCity: key.NewBinding(key.WithKeys(modifierKey+b.ToggleCity), key.WithHelp(modifierKey+b.ToggleCity, "city")),
		OpenLink:   key.NewBinding(key.WithKeys(modifierKey+b.OpenLink), key.WithHelp(modifierKey+b.OpenLink, "open link")),
		OpenImage:  key.NewBinding(key.WithKeys(modifierKey+b.OpenImage), key.WithHelp(modifierKey+b.OpenImage, "open image")),
		Back:       key.NewBinding(key.WithKeys(b.Back), key.WithHelp(b.Back, "back")),
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Scroll:     key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

type KeyHandler struct {
	app         *App
	config      *config.Config
	modifierKey string
	keys        keyMap
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{
		app:         app,
		config:      cfg,
		modifierKey: modifierKey,
		keys:        newKeyMap(modifierKey, cfg.Keys.Bindings),
	}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses a previous opener error.
	kh.app.err = nil

	if key.Matches(msg, kh.keys.ForceQuit) {
		return kh.app, tea.Quit
	}

	if kh.app.view == ViewDetail {
		return kh.handleDetailKeys(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(msg); handled {
		return model, cmd
	}

	if kh.app.focus.isTextInput() {
		return kh.handleTextInputMode(msg)
	}

	return kh.handleResultsKeys(msg)
}

// handleCustomKeys handles the modifier actions available anywhere in the
// search view.
func (kh *KeyHandler) handleCustomKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, kh.keys.Submit):
		return kh.app, kh.app.submit(), true
	case key.Matches(msg, kh.keys.ToggleCity):
		return kh.app, kh.toggleCityScope(), true
	case key.Matches(msg, kh.keys.Next):
		return kh.app, kh.app.cycleFocus(1), true
	case key.Matches(msg, kh.keys.Prev):
		return kh.app, kh.app.cycleFocus(-1), true
	case key.Matches(msg, kh.keys.OpenLink):
		return kh.app, kh.openCurrent(browser.KindLink), true
	case key.Matches(msg, kh.keys.OpenImage):
		return kh.app, kh.openCurrent(browser.KindImage), true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		switch kh.app.focus {
		case FocusQuery, FocusCity:
			return kh.app, kh.app.submit()
		default:
			return kh.app, kh.app.cycleFocus(1)
		}
	case "down":
		return kh.app, kh.app.cycleFocus(1)
	case "up":
		if kh.app.focus == FocusQuery {
			return kh.app, nil
		}
		return kh.app, kh.app.cycleFocus(-1)
	}

	if key.Matches(msg, kh.keys.Back) {
		if len(kh.app.state.Results) > 0 {
			return kh.app, kh.app.setFocus(FocusResults)
		}
		return kh.app, nil
	}

	return kh.delegateToTextInput(msg)
}

// delegateToTextInput passes the key to the focused input and reports the
// new value to the session.
func (kh *KeyHandler) delegateToTextInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a := kh.app

	switch a.focus {
	case FocusQuery:
		a.queryInput, cmd = a.queryInput.Update(msg)
		a.state.Apply(session.QueryChanged{Value: a.queryInput.Value()})
	case FocusCity:
		a.cityInput, cmd = a.cityInput.Update(msg)
		a.state.Apply(session.CityChanged{Value: a.cityInput.Value()})
	case FocusLimit:
		a.limitInput, cmd = a.limitInput.Update(msg)
		if raw := a.limitInput.Value(); raw != a.state.LimitInput {
			a.state.Apply(session.LimitChanged{Raw: raw})
		}
	case FocusThreshold:
		a.thresholdInput, cmd = a.thresholdInput.Update(msg)
		if raw := a.thresholdInput.Value(); raw != a.state.ThresholdInput {
			a.state.Apply(session.ThresholdChanged{Raw: raw})
		}
	}

	return a, cmd
}

func (kh *KeyHandler) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, kh.keys.Select):
		if i, ok := a.resultList.SelectedItem().(resultItem); ok {
			return a, a.selectResult(i.result.Name)
		}
		return a, nil
	case key.Matches(msg, kh.keys.Back), msg.String() == "/":
		return a, a.setFocus(FocusQuery)
	case msg.String() == "up" && a.resultList.Index() == 0:
		return a, a.cycleFocus(-1)
	}

	var cmd tea.Cmd
	a.resultList, cmd = a.resultList.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a := kh.app

	switch {
	case key.Matches(msg, kh.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, kh.keys.Back):
		a.view = ViewSearch
		return a, a.setFocus(FocusResults)
	case key.Matches(msg, kh.keys.OpenLink):
		return a, kh.openCurrent(browser.KindLink)
	case key.Matches(msg, kh.keys.OpenImage):
		return a, kh.openCurrent(browser.KindImage)
	}

	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (kh *KeyHandler) toggleCityScope() tea.Cmd {
	a := kh.app
	a.state.Apply(session.CityScopeToggled{})

	var focusCmd tea.Cmd
	if !a.state.CityScope && a.focus == FocusCity {
		focusCmd = a.setFocus(FocusQuery)
	}

	msg := MsgCityScopeOff
	if a.state.CityScope {
		msg = MsgCityScopeOn
	}
	return tea.Batch(focusCmd, a.setStatus(msg, StatusInfo, statusDisplayTime))
}

// currentResult is the result an open action applies to: the active
// result in the detail view, otherwise the highlighted list entry.
func (kh *KeyHandler) currentResult() (search.Result, bool) {
	a := kh.app
	if a.view == ViewDetail {
		return a.state.Selection.Active()
	}
	if a.focus == FocusResults {
		if i, ok := a.resultList.SelectedItem().(resultItem); ok {
			return i.result, true
		}
	}
	return a.state.Selection.Active()
}

func (kh *KeyHandler) openCurrent(kind browser.Kind) tea.Cmd {
	r, ok := kh.currentResult()
	if !ok {
		return kh.app.setStatus(MsgNothingToOpen, StatusWarn, statusDisplayTime)
	}

	url := r.Link
	if kind == browser.KindImage {
		url = r.Images
	}
	if url == "" {
		return kh.app.setStatus(MsgNothingToOpen, StatusWarn, statusDisplayTime)
	}

	return kh.app.openURL(kind, url)
}

// GetHelpForCurrentView returns the bindings shown in the status bar.
func (kh *KeyHandler) GetHelpForCurrentView() []key.Binding {
	k := kh.keys

	switch kh.app.view {
	case ViewDetail:
		return []key.Binding{k.Scroll, k.OpenLink, k.OpenImage, k.Back, k.Quit}
	default:
		if kh.app.focus == FocusResults {
			return []key.Binding{k.Select, k.OpenLink, k.OpenImage, k.Back, k.Quit}
		}
		return []key.Binding{k.Submit, k.ToggleCity, k.Next, k.ForceQuit}
	}
}

// focusOrder lists the focusable elements of the search view in tab order.
func (a *App) focusOrder() []Focus {
	order := []Focus{FocusQuery}
	if a.state.CityScope {
		order = append(order, FocusCity)
	}
	order = append(order, FocusLimit, FocusThreshold)
	if len(a.state.Results) > 0 {
		order = append(order, FocusResults)
	}
	return order
}

func (a *App) cycleFocus(delta int) tea.Cmd {
	order := a.focusOrder()
	current := 0
	for i, f := range order {
		if f == a.focus {
			current = i
			break
		}
	}
	next := (current + delta + len(order)) % len(order)
	return a.setFocus(order[next])
}

func (a *App) setFocus(f Focus) tea.Cmd {
	a.focus = f
	a.queryInput.Blur()
	a.cityInput.Blur()
	a.limitInput.Blur()
	a.thresholdInput.Blur()

	switch f {
	case FocusQuery:
		return a.queryInput.Focus()
	case FocusCity:
		return a.cityInput.Focus()
	case FocusLimit:
		return a.limitInput.Focus()
	case FocusThreshold:
		return a.thresholdInput.Focus()
	default:
		return nil
	}
}
