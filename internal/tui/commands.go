package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pders01/seek/internal/browser"
	"github.com/pders01/seek/internal/debuglog"
	"github.com/pders01/seek/internal/search"
	"github.com/pders01/seek/internal/selection"
	"github.com/pders01/seek/internal/session"
	"github.com/pders01/seek/internal/validation"
)

// submit dispatches a search when the session allows it. Blocked submits
// are silent.
func (a *App) submit() tea.Cmd {
	req, ok := a.state.Apply(session.SubmitRequested{})
	if !ok {
		return nil
	}

	debuglog.WithFields(map[string]interface{}{
		"shape": req.Shape().String(),
		"limit": req.Limit,
	}).Infof("submitting search")

	return tea.Batch(
		a.setStatus(MsgSearching, StatusInfo, 0),
		a.spinner.Tick,
		a.performSearch(req),
	)
}

func (a *App) performSearch(req search.Request) tea.Cmd {
	searcher := a.searcher
	return func() tea.Msg {
		results, err := searcher.Search(context.Background(), req)
		if err != nil {
			return searchFailedMsg{err: err}
		}
		return searchResultsMsg{results: results}
	}
}

// selectResult makes the first listed result called name active and opens
// the detail view.
func (a *App) selectResult(name string) tea.Cmd {
	r, ok := selection.Resolve(a.state.Results, name)
	if !ok {
		return nil
	}

	a.state.Apply(session.ResultSelected{Result: r})
	a.syncResults()
	a.view = ViewDetail
	a.image = imageUnchecked
	a.viewport.SetContent(renderMuted("Loading..."))

	cmds := []tea.Cmd{a.renderDetail(r, true)}
	if probe := a.probeImage(r); probe != nil {
		cmds = append(cmds, probe)
	}
	return tea.Batch(cmds...)
}

// probeImage checks the image before it is shown. It returns nil when
// probing is disabled or the URL is not remote.
func (a *App) probeImage(r search.Result) tea.Cmd {
	prober, ok := a.searcher.(search.ImageProber)
	if !ok || !a.config.API.ProbeImages || !validation.IsRemoteResource(r.Images) {
		return nil
	}

	a.image = imageChecking
	url := r.Images
	return func() tea.Msg {
		err := prober.ProbeImage(context.Background(), url)
		if err != nil {
			debuglog.Debugf("image probe failed for %s: %v", url, err)
		}
		return imageProbedMsg{url: url, ok: err == nil}
	}
}

// imageLine is the image entry of the detail pane. Anything that is not a
// reachable http(s) URL is replaced by the placeholder.
func imageLine(url string, state imageState) string {
	if !validation.IsRemoteResource(url) {
		return ImagePlaceholder
	}
	switch state {
	case imageBroken:
		return ImagePlaceholder
	case imageChecking:
		return fmt.Sprintf("%s _(checking...)_", url)
	default:
		return url
	}
}

func detailMarkdown(r search.Result, image string) string {
	var content strings.Builder
	content.WriteString(fmt.Sprintf("# %s\n\n", r.Name))

	if r.Alt != "" {
		content.WriteString(fmt.Sprintf("*%s*\n\n", r.Alt))
	}
	if r.City != "" {
		content.WriteString(fmt.Sprintf("**City:** %s\n\n", r.City))
	}
	if r.Link != "" {
		content.WriteString(fmt.Sprintf("[Visit website](%s)\n\n", r.Link))
	}
	content.WriteString(fmt.Sprintf("**Image:** %s\n\n", image))

	content.WriteString("---\n\n")
	content.WriteString(r.Description)

	return content.String()
}

// renderDetail renders r as markdown. The renderer is resolved here so the
// command does not touch App state.
func (a *App) renderDetail(r search.Result, reset bool) tea.Cmd {
	markdown := detailMarkdown(r, imageLine(r.Images, a.image))

	renderer, err := a.getRenderer()
	if err != nil {
		content := "Error initializing renderer: " + err.Error() + "\n\n" + markdown
		return func() tea.Msg {
			return detailRenderedMsg{name: r.Name, content: content, reset: reset}
		}
	}

	mu := a.renderMu
	return func() tea.Msg {
		mu.Lock()
		rendered, err := renderer.Render(markdown)
		mu.Unlock()
		if err != nil {
			rendered = markdown
		}
		return detailRenderedMsg{name: r.Name, content: rendered, reset: reset}
	}
}

func (a *App) openURL(kind browser.Kind, url string) tea.Cmd {
	opener := a.opener
	return func() tea.Msg {
		if err := opener.Open(kind, url); err != nil {
			return openFailed(kind, err)
		}
		return openedMsg{kind: kind}
	}
}
