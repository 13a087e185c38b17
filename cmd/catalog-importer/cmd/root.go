// Package cmd implements the commands of the catalog-importer binary.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/ebay-catalog-importer/internal/config"
	"github.com/donaldgifford/ebay-catalog-importer/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "catalog-importer",
	Short: "Import eBay seller listings into storefront catalogs",
	Long: "A multi-tenant service that looks up a storefront's eBay seller listings, " +
		"charges each request against the tenant's plan quota, and imports listings " +
		"as draft products through an asynchronous, resumable worker pool.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Root returns the root command, for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads the config file and builds the logger it describes.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}
