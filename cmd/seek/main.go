package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pders01/seek/internal/config"
	"github.com/pders01/seek/internal/debuglog"
	"github.com/pders01/seek/internal/search"
	"github.com/pders01/seek/internal/tui"
	"github.com/pders01/seek/internal/validation"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	apiURL     string
	logLevel   string
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:          "seek",
	Short:        "Interactive client for a semantic company search service",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		loadDotEnv()
	},
	RunE: runSearch,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("seek %s\n", Version)
		fmt.Println("Search client")
		fmt.Println("github.com/pders01/seek")
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configGenCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the default configuration to ~/.config/seek/config.toml",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := validation.NewSecurePathHandler().ConfigPath("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid config path: %v\n", err)
			os.Exit(1)
		}
		if err := config.GenerateDefaultConfig(path); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generated default configuration at: %s\n", path)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := prepareConfig(configPath, apiURL, logLevel)
		if err != nil {
			return err
		}
		return printConfig(os.Stdout, cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the search service (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Skip startup banner")

	configCmd.AddCommand(configGenCmd, configShowCmd)
	rootCmd.AddCommand(versionCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := prepareConfig(configPath, apiURL, logLevel)
	if err != nil {
		return err
	}

	if err := setupLogging(cfg); err != nil {
		return err
	}
	defer debuglog.Close()

	if !quiet {
		tui.ShowBanner(os.Stdout, Version)
	}

	debuglog.WithFields(map[string]interface{}{
		"base_url": cfg.API.BaseURL,
		"version":  Version,
	}).Infof("starting")

	app := tui.NewApp(search.NewClient(cfg), cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

// prepareConfig loads the configuration and applies command line
// overrides. The service URL is validated and normalized.
func prepareConfig(path, baseURL, level string) (*config.Config, error) {
	if path != "" {
		validated, err := validation.NewPermissivePathHandler().ConfigPath(path)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		path = validated
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	normalized, err := validation.NewAPIURLValidator().ValidateAndNormalize(cfg.API.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", cfg.API.BaseURL, err)
	}
	cfg.API.BaseURL = normalized

	if level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

func setupLogging(cfg *config.Config) error {
	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if level == debuglog.LevelOff {
		return debuglog.Setup(level, "")
	}

	path, err := validation.NewPermissivePathHandler().LogPath(cfg.Log.Path)
	if err != nil {
		return fmt.Errorf("invalid log path: %w", err)
	}
	return debuglog.Setup(level, path)
}

// loadDotEnv exports SEEK_ variables from a .env file in the working
// directory. Variables already set in the environment win.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}
}

func printConfig(w io.Writer, cfg *config.Config) error {
	out, err := yaml.Marshal(cfg.Settings())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = w.Write(out)
	return err
}
