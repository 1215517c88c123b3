package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
)

// WriteSummary prints one line per catalog followed by the batch totals.
func WriteSummary(w io.Writer, report *models.BatchReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATALOG\tROWS\tIMPORTED\tSKIPPED\tUNRESOLVED\tFAILURES\tSTATUS")
	for _, c := range report.Catalogs {
		status := "ok"
		if c.Failed() {
			status = c.Error
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
			c.Catalog, c.RowsRead, c.Imported, c.Skipped, c.Unresolved, len(c.Failures), status)
	}

	imported, skipped, unresolved := report.Totals()
	fmt.Fprintf(tw, "TOTAL\t\t%d\t%d\t%d\t%d\t", imported, skipped, unresolved, len(report.Failures()))
	if report.DryRun {
		fmt.Fprint(tw, "dry run")
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}
