package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pders01/seek/internal/validation"
)

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Search SearchConfig `mapstructure:"search"`
	UI     UIConfig     `mapstructure:"ui"`
	Opener OpenerConfig `mapstructure:"opener"`
	Keys   KeyConfig    `mapstructure:"keys"`
	Log    LogConfig    `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL     string        `mapstructure:"base_url" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0s"`
	UserAgent   string        `mapstructure:"user_agent"`
	ProbeImages bool          `mapstructure:"probe_images"`
}

// SearchConfig holds the initial values of the search form.
type SearchConfig struct {
	DefaultLimit          int     `mapstructure:"default_limit"`
	DefaultScoreThreshold float64 `mapstructure:"default_score_threshold"`
	CityScope             bool    `mapstructure:"city_scope"`
}

type UIConfig struct {
	Colors UIColors     `mapstructure:"colors"`
	Detail DetailConfig `mapstructure:"detail"`
	List   ListConfig   `mapstructure:"list"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

type DetailConfig struct {
	WordWrapMaxWidth int `mapstructure:"word_wrap_max_width" validate:"gtefield=WordWrapMinWidth"`
	WordWrapMinWidth int `mapstructure:"word_wrap_min_width" validate:"gte=0"`
}

type ListConfig struct {
	MaxDescriptionLength int `mapstructure:"max_description_length" validate:"gte=0"`
}

type OpenerConfig struct {
	Darwin        OpenerCandidates `mapstructure:"darwin"`
	Linux         OpenerCandidates `mapstructure:"linux"`
	Windows       OpenerCandidates `mapstructure:"windows"`
	DefaultOpener string           `mapstructure:"default_opener"`
}

// OpenerCandidates lists applications tried in order for each kind of URL.
type OpenerCandidates struct {
	Browser []string `mapstructure:"browser"`
	Image   []string `mapstructure:"image"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier" validate:"required"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit       string `mapstructure:"quit" validate:"required"`
	Submit     string `mapstructure:"submit" validate:"required"`
	ToggleCity string `mapstructure:"toggle_city" validate:"required"`
	OpenLink   string `mapstructure:"open_link" validate:"required"`
	OpenImage  string `mapstructure:"open_image" validate:"required"`
	Back       string `mapstructure:"back" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:9000",
			Timeout:     15 * time.Second,
			UserAgent:   "seek/1.0 (https://github.com/pders01/seek)",
			ProbeImages: true,
		},
		Search: SearchConfig{
			DefaultLimit:          5,
			DefaultScoreThreshold: 0.7,
			CityScope:             false,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FF6B6B",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			Detail: DetailConfig{
				WordWrapMaxWidth: 120,
				WordWrapMinWidth: 40,
			},
			List: ListConfig{
				MaxDescriptionLength: 80,
			},
		},
		Opener: OpenerConfig{
			Darwin: OpenerCandidates{
				Browser: []string{"open"},
				Image:   []string{"preview", "open"},
			},
			Linux: OpenerCandidates{
				Browser: []string{"xdg-open", "firefox", "chromium"},
				Image:   []string{"feh", "eog", "xdg-open"},
			},
			Windows: OpenerCandidates{
				Browser: []string{"start"},
				Image:   []string{"start"},
			},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:       "q",
				Submit:     "s",
				ToggleCity: "t",
				OpenLink:   "o",
				OpenImage:  "p",
				Back:       "esc",
			},
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".seek", "seek.log"),
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// settings flattens cfg into dotted viper keys. Registering every leaf key
// keeps defaults for keys a config file leaves out and lets AutomaticEnv
// resolve nested keys.
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"api.base_url":                   cfg.API.BaseURL,
		"api.timeout":                    cfg.API.Timeout.String(),
		"api.user_agent":                 cfg.API.UserAgent,
		"api.probe_images":               cfg.API.ProbeImages,
		"search.default_limit":           cfg.Search.DefaultLimit,
		"search.default_score_threshold": cfg.Search.DefaultScoreThreshold,
		"search.city_scope":              cfg.Search.CityScope,
		"ui.colors.primary":              cfg.UI.Colors.Primary,
		"ui.colors.secondary":            cfg.UI.Colors.Secondary,
		"ui.colors.accent":               cfg.UI.Colors.Accent,
		"ui.colors.background":           cfg.UI.Colors.Background,
		"ui.colors.surface":              cfg.UI.Colors.Surface,
		"ui.colors.text":                 cfg.UI.Colors.Text,
		"ui.colors.muted":                cfg.UI.Colors.Muted,
		"ui.colors.error":                cfg.UI.Colors.Error,
		"ui.colors.success":              cfg.UI.Colors.Success,
		"ui.detail.word_wrap_max_width":  cfg.UI.Detail.WordWrapMaxWidth,
		"ui.detail.word_wrap_min_width":  cfg.UI.Detail.WordWrapMinWidth,
		"ui.list.max_description_length": cfg.UI.List.MaxDescriptionLength,
		"opener.darwin.browser":          cfg.Opener.Darwin.Browser,
		"opener.darwin.image":            cfg.Opener.Darwin.Image,
		"opener.linux.browser":           cfg.Opener.Linux.Browser,
		"opener.linux.image":             cfg.Opener.Linux.Image,
		"opener.windows.browser":         cfg.Opener.Windows.Browser,
		"opener.windows.image":           cfg.Opener.Windows.Image,
		"opener.default_opener":          cfg.Opener.DefaultOpener,
		"keys.modifier":                  cfg.Keys.Modifier,
		"keys.bindings.quit":             cfg.Keys.Bindings.Quit,
		"keys.bindings.submit":           cfg.Keys.Bindings.Submit,
		"keys.bindings.toggle_city":      cfg.Keys.Bindings.ToggleCity,
		"keys.bindings.open_link":        cfg.Keys.Bindings.OpenLink,
		"keys.bindings.open_image":       cfg.Keys.Bindings.OpenImage,
		"keys.bindings.back":             cfg.Keys.Bindings.Back,
		"log.level":                      cfg.Log.Level,
		"log.path":                       cfg.Log.Path,
	}
}

// Settings returns the configuration as dotted keys, the same names used in
// the TOML file and, upper-cased with a SEEK_ prefix, in the environment.
func (c *Config) Settings() map[string]any {
	return settings(c)
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range settings(defaultConfig()) {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "seek")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SEEK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Log.Path = expandPath(config.Log.Path)

	return &config, nil
}

var configValidator = newValidator()

// newValidator reports fields by their config key names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate rejects configurations the search form could never start from.
// The search defaults go through the same range rules as the form fields.
func (c *Config) Validate() error {
	var messages []string

	if err := configValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating config: %w", err)
		}
		for _, fe := range fieldErrs {
			messages = append(messages, describeFieldError(fe))
		}
	}

	if err := validation.CheckLimit(c.Search.DefaultLimit); err != nil {
		messages = append(messages, fmt.Sprintf("search.default_limit must satisfy %s, got %d", validation.LimitRule, c.Search.DefaultLimit))
	}
	if err := validation.CheckScoreThreshold(c.Search.DefaultScoreThreshold); err != nil {
		messages = append(messages, fmt.Sprintf("search.default_score_threshold must satisfy %s, got %v", validation.ScoreThresholdRule, c.Search.DefaultScoreThreshold))
	}

	if len(messages) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", key)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", key, fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", key, fe.Param(), fe.Value())
	case "gtefield":
		return fmt.Sprintf("%s must not be smaller than %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", key, fe.Tag())
	}
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func Save(config *Config, path string) error {
	v := viper.New()

	for key, value := range settings(config) {
		v.Set(key, value)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
