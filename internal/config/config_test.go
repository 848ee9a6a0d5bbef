package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetDefaultOpener(t *testing.T) {
	expected := map[string]string{
		"darwin":  "open",
		"linux":   "xdg-open",
		"windows": "start",
	}

	opener := getDefaultOpener()

	if expectedOpener, ok := expected[runtime.GOOS]; ok {
		if opener != expectedOpener {
			t.Errorf("getDefaultOpener() = %s, want %s for %s", opener, expectedOpener, runtime.GOOS)
		}
	} else if opener != "open" {
		t.Errorf("getDefaultOpener() = %s, want 'open' for unknown OS", opener)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.API.BaseURL != "http://localhost:9000" {
		t.Errorf("API.BaseURL = %s, want http://localhost:9000", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("API.Timeout = %v, want 15s", cfg.API.Timeout)
	}
	if cfg.API.UserAgent == "" {
		t.Error("API.UserAgent should not be empty")
	}

	// Form defaults
	if cfg.Search.DefaultLimit != 5 {
		t.Errorf("Search.DefaultLimit = %d, want 5", cfg.Search.DefaultLimit)
	}
	if cfg.Search.DefaultScoreThreshold != 0.7 {
		t.Errorf("Search.DefaultScoreThreshold = %v, want 0.7", cfg.Search.DefaultScoreThreshold)
	}
	if cfg.Search.CityScope {
		t.Error("Search.CityScope should default to off")
	}

	if cfg.Opener.DefaultOpener == "" {
		t.Error("Opener.DefaultOpener should not be empty")
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if cfg.Keys.Bindings.Submit != "s" {
		t.Errorf("Keys.Bindings.Submit = %s, want 's'", cfg.Keys.Bindings.Submit)
	}

	if cfg.Log.Level != "off" {
		t.Errorf("Log.Level = %s, want 'off'", cfg.Log.Level)
	}
}

func TestLoad_DefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if cfg.Search.DefaultLimit != 5 {
		t.Errorf("Search.DefaultLimit = %d, want 5", cfg.Search.DefaultLimit)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("API.Timeout = %v, want 15s", cfg.API.Timeout)
	}
}

func TestLoad_FromFile(t *testing.T) {
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "test-config.toml")
	configContent := `
[api]
base_url = "http://search.internal:9000"
timeout = "3s"

[search]
default_limit = 20

[ui.colors]
primary = "#FF0000"
`

	if writeErr := os.WriteFile(configPath, []byte(configContent), 0o644); writeErr != nil {
		t.Fatal(writeErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://search.internal:9000" {
		t.Errorf("API.BaseURL = %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("API.Timeout = %v, want 3s", cfg.API.Timeout)
	}
	if cfg.Search.DefaultLimit != 20 {
		t.Errorf("Search.DefaultLimit = %d, want 20", cfg.Search.DefaultLimit)
	}
	if cfg.UI.Colors.Primary != "#FF0000" {
		t.Errorf("UI.Colors.Primary = %s, want '#FF0000'", cfg.UI.Colors.Primary)
	}

	// Keys missing from a section keep their defaults.
	if cfg.API.UserAgent != defaultConfig().API.UserAgent {
		t.Errorf("API.UserAgent = %s, want default", cfg.API.UserAgent)
	}
	if cfg.Search.DefaultScoreThreshold != 0.7 {
		t.Errorf("Search.DefaultScoreThreshold = %v, want 0.7", cfg.Search.DefaultScoreThreshold)
	}
	if cfg.UI.Colors.Secondary != "#4ECDC4" {
		t.Errorf("UI.Colors.Secondary = %s, want default", cfg.UI.Colors.Secondary)
	}
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SEEK_API_BASE_URL", "http://env.internal:9100")
	t.Setenv("SEEK_SEARCH_CITY_SCOPE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.BaseURL != "http://env.internal:9100" {
		t.Errorf("API.BaseURL = %s, want env override", cfg.API.BaseURL)
	}
	if !cfg.Search.CityScope {
		t.Error("Search.CityScope should be enabled by env")
	}
}

func TestLoad_RejectsInvalidDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	tests := map[string]string{
		"limit":     "[search]\ndefault_limit = 150\n",
		"threshold": "[search]\ndefault_score_threshold = 1.5\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name+".toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected Load to reject %s", name)
			}
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[api\nbase_url = "), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "reading config") {
		t.Errorf("expected reading config error, got %v", err)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := defaultConfig()
	cfg.API.BaseURL = "http://saved.internal:9000"
	cfg.API.Timeout = 45 * time.Second
	cfg.Search.DefaultLimit = 12
	cfg.Search.DefaultScoreThreshold = 0.35
	cfg.Opener.DefaultOpener = "test-opener"
	cfg.Keys.Modifier = "alt"

	savePath := filepath.Join(tmpDir, "nested", "saved-config.toml")
	if saveErr := Save(cfg, savePath); saveErr != nil {
		t.Fatalf("Save() error = %v", saveErr)
	}

	if _, statErr := os.Stat(savePath); os.IsNotExist(statErr) {
		t.Fatal("Save() did not create config file")
	}

	loaded, err := Load(savePath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("Loaded API.BaseURL = %s, want %s", loaded.API.BaseURL, cfg.API.BaseURL)
	}
	if loaded.API.Timeout != cfg.API.Timeout {
		t.Errorf("Loaded API.Timeout = %v, want %v", loaded.API.Timeout, cfg.API.Timeout)
	}
	if loaded.Search.DefaultLimit != 12 {
		t.Errorf("Loaded Search.DefaultLimit = %d, want 12", loaded.Search.DefaultLimit)
	}
	if loaded.Search.DefaultScoreThreshold != 0.35 {
		t.Errorf("Loaded Search.DefaultScoreThreshold = %v, want 0.35", loaded.Search.DefaultScoreThreshold)
	}
	if loaded.Opener.DefaultOpener != "test-opener" {
		t.Errorf("Loaded Opener.DefaultOpener = %s", loaded.Opener.DefaultOpener)
	}
	if loaded.Keys.Modifier != cfg.Keys.Modifier {
		t.Errorf("Loaded Keys.Modifier = %s, want %s", loaded.Keys.Modifier, cfg.Keys.Modifier)
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "generated.toml")
	if genErr := GenerateDefaultConfig(configPath); genErr != nil {
		t.Fatalf("GenerateDefaultConfig() error = %v", genErr)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.Keys.Modifier != "ctrl" {
		t.Errorf("Generated config has Keys.Modifier = %s, want 'ctrl'", cfg.Keys.Modifier)
	}
	if cfg.API.BaseURL != "http://localhost:9000" {
		t.Errorf("Generated config has API.BaseURL = %s", cfg.API.BaseURL)
	}
}

func TestTestConfig(t *testing.T) {
	cfg := TestConfig()

	if cfg == nil {
		t.Fatal("TestConfig() returned nil")
	}
	if cfg.API.UserAgent != "seek-test/1.0" {
		t.Errorf("TestConfig API.UserAgent = %s, want 'seek-test/1.0'", cfg.API.UserAgent)
	}
	if cfg.API.ProbeImages {
		t.Error("TestConfig should not probe images")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("TestConfig should validate: %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/logs/seek.log"); got != filepath.Join(home, "logs", "seek.log") {
		t.Errorf("expandPath(~/logs/seek.log) = %s", got)
	}
	if got := expandPath(""); got != "" {
		t.Errorf("expandPath(\"\") = %s, want empty", got)
	}
	if got := expandPath("/var/log/seek.log"); got != "/var/log/seek.log" {
		t.Errorf("expandPath kept absolute path as %s", got)
	}
}

func TestValidate_Messages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"limit too high", func(c *Config) { c.Search.DefaultLimit = 150 }, "search.default_limit must satisfy min=1,max=100, got 150"},
		{"limit too low", func(c *Config) { c.Search.DefaultLimit = 0 }, "search.default_limit must satisfy min=1,max=100, got 0"},
		{"threshold", func(c *Config) { c.Search.DefaultScoreThreshold = 1.5 }, "search.default_score_threshold must satisfy gte=0,lte=1, got 1.5"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }, "api.timeout must be at least 0s"},
		{"missing base url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url is required"},
		{"wrap widths", func(c *Config) { c.UI.Detail.WordWrapMaxWidth = 10 }, "ui.detail.word_wrap_max_width must not be smaller than"},
		{"missing binding", func(c *Config) { c.Keys.Bindings.Submit = "" }, "keys.bindings.submit is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := TestConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.want)
			}
		})
	}
}
