package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kikipneus/pricelist-go/pkg/pricelist"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/output"
)

var (
	outputPath  string
	sheetIndex  int
	rowLimit    int
	priceColumn string
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <workbook.xlsx>",
		Short: "Dump one sheet of a workbook to help write a catalog layout",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&sheetIndex, "sheet", 0, "Zero-based sheet index")
	cmd.Flags().IntVar(&rowLimit, "limit", 40, "Maximum rows to dump (0 for all)")
	cmd.Flags().StringVar(&priceColumn, "price-column", "", "Base price column used to suggest a start line")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	payload, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read workbook: %w", err)
	}

	data, err := pricelist.Inspect(payload, filepath.Base(inputPath), pricelist.InspectOptions{
		SheetIndex:  sheetIndex,
		Limit:       rowLimit,
		PriceColumn: priceColumn,
	})
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	jsonData, err := output.ToJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return writeOutput(outputPath, jsonData)
}
