// Package main provides the CLI entry point for pricelist.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kikipneus/pricelist-go/internal/logging"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/config"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/pricing"
)

var (
	configPath string
	pretty     bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pricelist",
		Short: "Import manufacturer tire price lists and compute sell prices",
		Long: `pricelist reads manufacturer tire price lists from Excel workbooks,
normalizes them into tire records and prices them through the margin table.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/pricelist.toml", "Application config file")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(newImportCmd(), newResolveCmd(), newCheckCmd(), newInspectCmd())
	return rootCmd
}

// setup loads the configuration and builds the logger.
func setup() (*config.AppConfig, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadMarginTable(cfg *config.AppConfig) (*pricing.MarginTable, error) {
	table, err := config.BuildMarginTable(cfg.Data.MarginsFile, cfg.Pricing.MaxPrice)
	if err != nil {
		return nil, fmt.Errorf("margin table: %w", err)
	}
	return table, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
