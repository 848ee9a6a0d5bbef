package browser

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/seek/internal/debuglog"
)

//go:embed openers.toml
var openersTOML []byte

// OpenerDefinition describes how an external application is invoked.
// Command overrides the executable for openers that are shell builtins or
// aliases of another program.
type OpenerDefinition struct {
	Description string      `toml:"description"`
	Platforms   []string    `toml:"platforms"`
	Command     string      `toml:"command,omitempty"`
	Link        *KindConfig `toml:"link,omitempty"`
	Image       *KindConfig `toml:"image,omitempty"`
}

// KindConfig holds the arguments placed before the URL.
type KindConfig struct {
	Args        []string `toml:"args,omitempty"`
	ArgsDarwin  []string `toml:"args_darwin,omitempty"`
	ArgsLinux   []string `toml:"args_linux,omitempty"`
	ArgsWindows []string `toml:"args_windows,omitempty"`
}

type openersFile struct {
	Openers map[string]OpenerDefinition `toml:"openers"`
}

// Registry resolves opener names to commands.
type Registry struct {
	openers map[string]OpenerDefinition
	goos    string
}

// NewRegistry loads the embedded definitions, then merges the user's
// ~/.config/seek/openers.toml when present.
func NewRegistry() (*Registry, error) {
	r, err := parseRegistry(openersTOML)
	if err != nil {
		return nil, err
	}

	if home, err := os.UserHomeDir(); err == nil {
		r.loadUserFile(filepath.Join(home, ".config", "seek", "openers.toml"))
	}

	return r, nil
}

func parseRegistry(data []byte) (*Registry, error) {
	var file openersFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing openers.toml: %w", err)
	}
	if file.Openers == nil {
		file.Openers = make(map[string]OpenerDefinition)
	}
	return &Registry{openers: file.Openers, goos: runtime.GOOS}, nil
}

func (r *Registry) loadUserFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	user, err := parseRegistry(data)
	if err != nil {
		debuglog.Warnf("ignoring %s: %v", path, err)
		return
	}

	for name, def := range user.openers {
		r.openers[name] = def
	}
}

// Executable returns the program run for the named opener.
func (r *Registry) Executable(name string) string {
	if def, ok := r.openers[name]; ok && def.Command != "" {
		return def.Command
	}
	return name
}

// Command builds the command opening url with the named opener. Openers
// without a definition are run with the URL as their only argument.
func (r *Registry) Command(name string, kind Kind, url string) (*exec.Cmd, error) {
	def, ok := r.openers[name]
	if !ok {
		return exec.Command(name, url), nil
	}

	if !r.supports(def) {
		return nil, fmt.Errorf("%s not supported on %s", name, r.goos)
	}

	var kc *KindConfig
	switch kind {
	case KindLink:
		kc = def.Link
	case KindImage:
		kc = def.Image
	}
	if kc == nil {
		return nil, fmt.Errorf("%s cannot open %s URLs", name, kind)
	}

	args := append(append([]string{}, r.args(kc)...), url)
	return exec.Command(r.Executable(name), args...), nil
}

func (r *Registry) supports(def OpenerDefinition) bool {
	for _, p := range def.Platforms {
		if p == r.goos {
			return true
		}
	}
	return false
}

func (r *Registry) args(kc *KindConfig) []string {
	switch r.goos {
	case "darwin":
		if len(kc.ArgsDarwin) > 0 {
			return kc.ArgsDarwin
		}
	case "linux":
		if len(kc.ArgsLinux) > 0 {
			return kc.ArgsLinux
		}
	case "windows":
		if len(kc.ArgsWindows) > 0 {
			return kc.ArgsWindows
		}
	}
	return kc.Args
}

// Available reports whether the named opener's executable is installed.
func (r *Registry) Available(name string) bool {
	_, err := exec.LookPath(r.Executable(name))
	return err == nil
}

// FindAvailable returns the first installed opener from names.
func (r *Registry) FindAvailable(names []string) string {
	for _, name := range names {
		if r.Available(name) {
			return name
		}
	}
	return ""
}
