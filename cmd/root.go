// Package cmd wires the CLI entry points.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/registrar/internal/app"
	"github.com/zjrosen/registrar/internal/config"
	"github.com/zjrosen/registrar/internal/infrastructure/flatfile"
	"github.com/zjrosen/registrar/internal/log"
	"github.com/zjrosen/registrar/internal/registry"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "registrar",
	Short:   "A terminal ui for course registration",
	Long:    `A terminal user interface for browsing a course catalog, enrolling with prerequisite checks, and administering courses, users, and fee payments.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/registrar/config.yaml)")
	rootCmd.Flags().StringP("data-dir", "d", "",
		"directory holding the flat data files")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic reload when data files change")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging to a file")

	// Bind flags to viper
	_ = viper.BindPFlag("data_dir", rootCmd.Flags().Lookup("data-dir"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("data_dir", defaults.DataDir)
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("auto_refresh_debounce", defaults.AutoRefreshDebounce)
	viper.SetDefault("catalog_cache_ttl", defaults.CatalogCacheTTL)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("theme.highlight", defaults.Theme.Highlight)
	viper.SetDefault("theme.subtle", defaults.Theme.Subtle)
	viper.SetDefault("theme.error", defaults.Theme.Error)
	viper.SetDefault("theme.success", defaults.Theme.Success)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .registrar/config.yaml (current directory)
		// 2. ~/.config/registrar/config.yaml (user config)
		if _, err := os.Stat(".registrar/config.yaml"); err == nil {
			viper.SetConfigFile(".registrar/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "registrar"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .registrar/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".registrar/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// openService builds a service over the configured data directory and
// seeds it when the data files are empty.
func openService(cfg config.Config) (*registry.Service, error) {
	files, err := flatfile.New(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening data directory: %w", err)
	}
	svc, err := registry.New(files)
	if err != nil {
		return nil, fmt.Errorf("loading registration data: %w", err)
	}

	seed := registry.DefaultSeed()
	if cfg.SeedFile != "" {
		seed, err = registry.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
	}
	if err := svc.Seed(seed); err != nil {
		return nil, fmt.Errorf("seeding registration data: %w", err)
	}
	return svc, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	// Initialize logging if debug mode enabled (via flag or env var)
	if os.Getenv("REGISTRAR_DEBUG") != "" || debugFlag {
		logPath := os.Getenv("REGISTRAR_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.InitWithTeaLog(logPath, "registrar")
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "registrar starting", "debug", true, "logPath", logPath)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Handle --no-auto-refresh flag (negated logic)
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	svc, err := openService(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	model := app.New(svc, cfg)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	// Clean up watcher and subscription resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
