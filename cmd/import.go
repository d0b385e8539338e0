package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/sylvanlibrary/cardsearch/sylvan"
	"github.com/sylvanlibrary/cardsearch/sylvan/config"
	"github.com/sylvanlibrary/cardsearch/sylvan/logger"
)

var importSpacesKey string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load an AllSets dataset into the configured postgres or mongo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if importSpacesKey != "" {
			cfg.Catalog.SpacesKey = importSpacesKey
		}
		if cfg.Catalog.JSONPath == "" && cfg.Catalog.SpacesKey == "" {
			return fmt.Errorf("import needs --file or --spaces-key")
		}

		if err := sylvan.InitializeSchema(ctx, cfg); err != nil {
			logger.LogError("Failed to initialize schema", err)
			return err
		}

		app, err := sylvan.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()

		written, err := app.Import(ctx)
		logger.LogCommand("import", time.Since(start), err)
		if err != nil {
			return err
		}

		slog.Info("Import completed",
			slog.String("type", "sys"),
			slog.String("backend", cfg.Catalog.Backend),
			slog.Int("written", written),
			slog.Int("batch_size", config.MaxBatchSize))
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d card(s) into %s\n", written, cfg.Catalog.Backend)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSpacesKey, "spaces-key", "", "object key of the dataset in the configured Spaces bucket")
	rootCmd.AddCommand(importCmd)
}
