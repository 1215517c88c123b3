package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/config"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the catalog layouts and the margin table",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}

	specs, err := config.LoadCatalogs(cfg.Data.CatalogsFile)
	if err != nil {
		return err
	}
	table, err := loadMarginTable(cfg)
	if err != nil {
		return err
	}

	sizes := table.Sizes()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d catalogs OK (%s)\n", len(specs), cfg.Data.CatalogsFile)
	if len(sizes) == 0 {
		return fmt.Errorf("margin table %s has no rules", cfg.Data.MarginsFile)
	}
	fmt.Fprintf(out, "%d margin rules OK, sizes %d-%d, sentinel %s (%s)\n",
		len(table.Rules()), sizes[0], sizes[len(sizes)-1], table.MaxPrice(), cfg.Data.MarginsFile)
	return nil
}
