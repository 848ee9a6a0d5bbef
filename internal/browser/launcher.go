// Package browser opens result links and images in external applications.
package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/pders01/seek/internal/config"
	"github.com/pders01/seek/internal/debuglog"
	"github.com/pders01/seek/internal/validation"
)

// Kind is the sort of resource being opened.
type Kind int

const (
	KindLink Kind = iota
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// ErrNotRemote is returned for URLs that are not absolute http(s) URLs.
var ErrNotRemote = errors.New("not an http(s) URL")

// Launcher picks an installed application per Kind and starts it detached.
type Launcher struct {
	linkOpener    string
	imageOpener   string
	defaultOpener string
	registry      *Registry
	start         func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewRegistry()
	if err != nil {
		debuglog.Warnf("opener definitions unavailable: %v", err)
		registry = &Registry{openers: make(map[string]OpenerDefinition), goos: runtime.GOOS}
	}
	return newLauncher(cfg.Opener, registry, runtime.GOOS)
}

func newLauncher(cfg config.OpenerConfig, registry *Registry, goos string) *Launcher {
	var candidates config.OpenerCandidates
	switch goos {
	case "linux":
		candidates = cfg.Linux
	case "windows":
		candidates = cfg.Windows
	default:
		candidates = cfg.Darwin
	}

	l := &Launcher{
		defaultOpener: cfg.DefaultOpener,
		registry:      registry,
		start:         startDetached,
		linkOpener:    registry.FindAvailable(candidates.Browser),
		imageOpener:   registry.FindAvailable(candidates.Image),
	}

	if l.linkOpener == "" {
		l.linkOpener = l.defaultOpener
	}
	if l.imageOpener == "" {
		l.imageOpener = l.defaultOpener
	}

	return l
}

// OpenerFor returns the opener name used for kind.
func (l *Launcher) OpenerFor(kind Kind) string {
	if kind == KindImage {
		return l.imageOpener
	}
	return l.linkOpener
}

// Open starts the application for kind with url.
func (l *Launcher) Open(kind Kind, url string) error {
	if !validation.IsRemoteResource(url) {
		return fmt.Errorf("cannot open %s %q: %w", kind, url, ErrNotRemote)
	}

	name := l.OpenerFor(kind)
	if name == "" {
		return fmt.Errorf("no application found to open %s", kind)
	}

	cmd, err := l.registry.Command(name, kind, url)
	if err != nil {
		debuglog.Debugf("opener %s: %v, running it without arguments", name, err)
		cmd = exec.Command(l.registry.Executable(name), url)
	}

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}

	debuglog.Infof("opened %s with %s", kind, name)
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
