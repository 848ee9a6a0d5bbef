package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/seek/internal/browser"
	"github.com/pders01/seek/internal/config"
	"github.com/pders01/seek/internal/search"
	"github.com/pders01/seek/internal/session"
	"github.com/pders01/seek/internal/validation"
)

// Opener starts an external application for a result URL.
type Opener interface {
	Open(kind browser.Kind, url string) error
}

type App struct {
	config          *config.Config
	searcher        search.Searcher
	opener          Opener
	state           *session.State
	keyHandler      *KeyHandler
	queryInput      textinput.Model
	cityInput       textinput.Model
	limitInput      textinput.Model
	thresholdInput  textinput.Model
	resultList      list.Model
	viewport        viewport.Model
	spinner         spinner.Model
	help            help.Model
	view            View
	focus           Focus
	image           imageState
	width           int
	height          int
	err             error
	status          string
	statusKind      StatusKind
	statusSeq       int
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
	// renderMu serializes Render calls on the shared glamour renderer.
	renderMu        *sync.Mutex
}

func NewApp(searcher search.Searcher, cfg *config.Config) *App {
	ApplyTheme(cfg.UI.Colors)

	state := session.New(cfg.Search)

	resultList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	resultList.Title = "› results"
	resultList.SetShowStatusBar(false)
	resultList.SetShowHelp(false)
	resultList.SetFilteringEnabled(false) // server order is kept as-is
	resultList.KeyMap.Quit.SetEnabled(false)
	resultList.KeyMap.ForceQuit.SetEnabled(false)

	qi := textinput.New()
	qi.Placeholder = "Search for companies..."
	qi.CharLimit = 256
	qi.Focus()

	ci := textinput.New()
	ci.Placeholder = "Enter city..."
	ci.CharLimit = 128

	li := textinput.New()
	li.CharLimit = 6
	li.Width = 6
	li.SetValue(state.LimitInput)

	ti := textinput.New()
	ti.CharLimit = 8
	ti.Width = 8
	ti.SetValue(state.ThresholdInput)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)

	app := &App{
		config:         cfg,
		searcher:       searcher,
		opener:         browser.NewLauncher(cfg),
		state:          state,
		queryInput:     qi,
		cityInput:      ci,
		limitInput:     li,
		thresholdInput: ti,
		resultList:     resultList,
		viewport:       viewport.New(0, 0),
		spinner:        sp,
		help:           help.New(),
		view:           ViewSearch,
		focus:          FocusQuery,
		renderMu:       &sync.Mutex{},
	}

	app.keyHandler = NewKeyHandler(app, cfg)

	return app
}

// State exposes the session for inspection.
func (a *App) State() *session.State {
	return a.state
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	maxWidth := a.config.UI.Detail.WordWrapMaxWidth
	minWidth := a.config.UI.Detail.WordWrapMinWidth

	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > maxWidth {
		wordWrapWidth = maxWidth
	}
	if wordWrapWidth < minWidth {
		wordWrapWidth = minWidth
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - 3

		inputWidth := msg.Width - 8
		if inputWidth < 20 {
			inputWidth = msg.Width
		}
		a.queryInput.Width = inputWidth
		a.cityInput.Width = inputWidth
		a.resultList.SetSize(msg.Width, a.listHeight())
		return a, nil

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case tea.MouseMsg:
		if a.view == ViewDetail {
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			return a, cmd
		}
		return a, nil

	case spinner.TickMsg:
		if !a.state.Loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case searchResultsMsg:
		a.state.Apply(session.SearchSucceeded{Results: msg.results})
		a.syncResults()
		a.resultList.ResetSelected()

		// The selection is gone, so a detail pane opened while the search
		// was in flight has nothing left to show.
		var focusCmd tea.Cmd
		if a.view == ViewDetail {
			a.view = ViewSearch
			a.image = imageUnchecked
			a.viewport.SetContent("")
			if len(a.state.Results) > 0 {
				focusCmd = a.setFocus(FocusResults)
			} else {
				focusCmd = a.setFocus(FocusQuery)
			}
		}

		if len(a.state.Results) == 0 {
			return a, tea.Batch(focusCmd, a.setStatus(MsgNoResults, StatusWarn, statusDisplayTime))
		}
		return a, tea.Batch(focusCmd, a.setStatus(MsgResultsCount(len(a.state.Results)), StatusSuccess, statusDisplayTime))

	case searchFailedMsg:
		a.state.Apply(session.SearchFailed{Err: msg.err})
		a.syncResults()
		a.status = ""
		return a, nil

	case detailRenderedMsg:
		if active, ok := a.state.Selection.Active(); ok && active.Name == msg.name {
			a.viewport.SetContent(msg.content)
			if msg.reset {
				a.viewport.GotoTop()
			}
		}
		return a, nil

	case imageProbedMsg:
		active, ok := a.state.Selection.Active()
		if !ok || active.Images != msg.url {
			return a, nil
		}
		if msg.ok {
			a.image = imageAvailable
		} else {
			a.image = imageBroken
		}
		return a, a.renderDetail(active, false)

	case openedMsg:
		return a, a.setStatus(MsgOpened(msg.kind.String()), StatusSuccess, statusDisplayTime)

	case statusExpiredMsg:
		a.clearStatus(msg.seq)
		return a, nil

	case errorMsg:
		a.err = msg.err
		return a, nil
	}

	// Cursor blinks and other input housekeeping.
	if a.view == ViewSearch {
		return a, a.updateFocusedInput(msg)
	}
	return a, nil
}

func (a *App) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.focus {
	case FocusQuery:
		a.queryInput, cmd = a.queryInput.Update(msg)
	case FocusCity:
		a.cityInput, cmd = a.cityInput.Update(msg)
	case FocusLimit:
		a.limitInput, cmd = a.limitInput.Update(msg)
	case FocusThreshold:
		a.thresholdInput, cmd = a.thresholdInput.Update(msg)
	}
	return cmd
}

// listHeight is what remains for the result list below the form.
func (a *App) listHeight() int {
	h := a.height - lipgloss.Height(a.renderForm()) - 3
	if h < 5 {
		h = 5
	}
	return h
}

// syncResults rebuilds the list items from the session, marking the
// active result.
func (a *App) syncResults() {
	maxDesc := a.config.UI.List.MaxDescriptionLength
	items := make([]list.Item, len(a.state.Results))
	for i, r := range a.state.Results {
		items[i] = resultItem{
			result:  r,
			active:  a.state.Selection.IsActive(r),
			maxDesc: maxDesc,
		}
	}
	index := a.resultList.Index()
	a.resultList.SetItems(items)
	if index < len(items) {
		a.resultList.Select(index)
	}

	if len(items) == 0 && a.focus == FocusResults {
		a.setFocus(FocusQuery)
	}
}

func (a *App) View() string {
	var content string

	switch a.view {
	case ViewDetail:
		content = a.viewport.View()
	default:
		form := a.renderForm()
		a.resultList.SetSize(a.width, a.listHeight())

		var body string
		switch {
		case a.state.Err != "":
			body = ErrorMessageStyle.Render("✗ " + a.state.Err)
		case len(a.state.Results) > 0:
			body = a.resultList.View()
		case a.state.Outcome == session.OutcomeSucceeded:
			body = renderMuted(MsgNoResults)
		default:
			body = renderCentered(a.width, a.listHeight(), GetWelcomeMessage(a.keyHandler.modifierKey+a.config.Keys.Bindings.Submit))
		}

		content = lipgloss.NewStyle().
			Width(a.width).
			Height(a.height - 3).
			MaxHeight(a.height - 3).
			Render(lipgloss.JoinVertical(lipgloss.Top, form, "", body))
	}

	separatorWidth := a.width - 2
	if separatorWidth < 0 {
		separatorWidth = 0
	}
	separator := lipgloss.NewStyle().
		Foreground(MutedColor).
		Render("─" + strings.Repeat("─", separatorWidth))

	return lipgloss.JoinVertical(lipgloss.Top, content, separator, a.getCustomStatusBar())
}

func (a *App) renderForm() string {
	inputWidth := a.queryInput.Width

	rows := []string{
		renderHeader("› "+AppName, a.config.API.BaseURL, a.width),
		"",
		renderField("Query", a.queryInput.View(), a.focus == FocusQuery, "", inputWidth),
		renderCheckbox(fmt.Sprintf("Enable city search (%s)", a.keyHandler.modifierKey+a.config.Keys.Bindings.ToggleCity), a.state.CityScope),
	}
	if a.state.CityScope {
		rows = append(rows, renderField("City", a.cityInput.View(), a.focus == FocusCity, "", inputWidth))
	}

	numeric := lipgloss.JoinHorizontal(
		lipgloss.Top,
		renderField("Number of results", a.limitInput.View(), a.focus == FocusLimit, errText(a.state.LimitErr), a.limitInput.Width),
		"   ",
		renderField("Minimum score", a.thresholdInput.View(), a.focus == FocusThreshold, errText(a.state.ThresholdErr), a.thresholdInput.Width),
	)
	rows = append(rows, numeric, a.renderSubmit())

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a *App) renderSubmit() string {
	if a.state.Loading {
		return ButtonDisabled.Render(a.spinner.View() + " " + MsgSearching)
	}
	label := fmt.Sprintf("Search (%s)", a.keyHandler.modifierKey+a.config.Keys.Bindings.Submit)
	if !a.state.CanSubmit() {
		return ButtonDisabled.Render(label)
	}
	return ButtonStyle.Render(label)
}

func errText(err *validation.Error) string {
	if err == nil {
		return ""
	}
	return err.Message
}

func (a *App) getCustomStatusBar() string {
	style := StatusBarStyle.Width(a.width)

	if a.err != nil {
		return style.Render(ErrorMessageStyle.Render(fmt.Sprintf("✗ %v", a.err)))
	}

	if a.status != "" {
		return style.Render(a.statusKind.style().Render(a.status))
	}

	return style.Render(a.help.ShortHelpView(a.keyHandler.GetHelpForCurrentView()))
}

type resultItem struct {
	result  search.Result
	active  bool
	maxDesc int
}

func (i resultItem) Title() string {
	if i.active {
		return ActiveItemStyle.Render("● " + i.result.Name)
	}
	return ItemStyle.Render(i.result.Name)
}

func (i resultItem) Description() string {
	var parts []string
	if i.result.Alt != "" {
		parts = append(parts, i.result.Alt)
	}
	if i.result.City != "" {
		parts = append(parts, i.result.City)
	}
	if desc := strings.TrimSpace(i.result.Description); desc != "" {
		parts = append(parts, truncateEnd(desc, i.maxDesc))
	}
	return lipgloss.NewStyle().
		Foreground(MutedColor).
		Render(strings.Join(parts, " • "))
}

func (i resultItem) FilterValue() string { return i.result.Name }

type searchResultsMsg struct {
	results []search.Result
}

type searchFailedMsg struct {
	err error
}

type detailRenderedMsg struct {
	name    string
	content string
	reset   bool
}

type imageProbedMsg struct {
	url string
	ok  bool
}

type openedMsg struct {
	kind browser.Kind
}
