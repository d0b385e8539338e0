package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/sylvanlibrary/cardsearch/sylvan"
	"github.com/sylvanlibrary/cardsearch/sylvan/logger"
)

var (
	configPath string
	logLevel   string
	jsonPath   string
)

var rootCmd = &cobra.Command{
	Use:           "sylvan",
	Short:         "Search a Magic: The Gathering card catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.toml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().StringVar(&jsonPath, "file", "", "local AllSets JSON file, overrides catalog.json_path")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads --config when given and applies command line overrides.
// Without a config file the in-memory backend reads --file.
func loadConfig() (*sylvan.Config, error) {
	cfg := sylvan.DefaultConfig()
	if configPath != "" {
		loaded, err := sylvan.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if jsonPath != "" {
		cfg.Catalog.JSONPath = jsonPath
		cfg.Catalog.SpacesKey = ""
	}
	if logLevel != "" {
		if err := cfg.Log.Level.UnmarshalText([]byte(logLevel)); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	logger.Setup(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withApp builds the app for a single command run and logs how long the
// command took.
func withApp(ctx context.Context, name string, fn func(*sylvan.App) error) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := sylvan.New(ctx, cfg)
	if err != nil {
		logger.LogError("Failed to start", err, slog.String("backend", cfg.Catalog.Backend))
		return err
	}
	defer app.Close()

	err = fn(app)
	logger.LogCommand(name, time.Since(start), err)
	return err
}
