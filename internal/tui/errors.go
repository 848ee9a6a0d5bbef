package tui

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/pders01/seek/internal/browser"
)

// errorMsg carries a failure shown in the status bar until the next key.
type errorMsg struct {
	err error
}

// openFailed describes a failed open action.
func openFailed(kind browser.Kind, err error) errorMsg {
	switch {
	case errors.Is(err, browser.ErrNotRemote):
		return errorMsg{err: fmt.Errorf("cannot open %s: not a web address", kind)}
	case errors.Is(err, exec.ErrNotFound):
		return errorMsg{err: fmt.Errorf("cannot open %s: no opener installed: %w", kind, err)}
	}
	return errorMsg{err: fmt.Errorf("failed to open %s: %w", kind, err)}
}
