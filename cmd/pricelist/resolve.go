package main

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/pricing"
)

var discount int

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <diameter> <price>",
		Short: "Compute garage and client prices for a diameter and net cost",
		Args:  cobra.ExactArgs(2),
		RunE:  runResolve,
	}
	cmd.Flags().IntVar(&discount, "discount", 0, "Treat price as a list price and apply this discount percentage first")
	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	diameter, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid diameter %q: %w", args[0], err)
	}
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", args[1], err)
	}
	if discount < 0 || discount > 100 {
		return fmt.Errorf("invalid discount %d: must be between 0 and 100", discount)
	}

	cfg, _, err := setup()
	if err != nil {
		return err
	}
	table, err := loadMarginTable(cfg)
	if err != nil {
		return err
	}

	netCost := pricing.NetCost(price, discount)
	quote, err := table.QuotePrice(diameter, netCost)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rule:   %s\n", quote.Rule)
	fmt.Fprintf(out, "net:    %s\n", netCost.StringFixed(pricing.MinorUnitPlaces))
	fmt.Fprintf(out, "garage: %s\n", quote.Garage.StringFixed(pricing.MinorUnitPlaces))
	fmt.Fprintf(out, "client: %s\n", quote.Client.StringFixed(pricing.MinorUnitPlaces))
	return nil
}
