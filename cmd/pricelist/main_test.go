package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kikipneus/pricelist-go/pkg/pricelist/models"
	"github.com/kikipneus/pricelist-go/pkg/pricelist/store"
)

const testCatalogs = `
[[catalog]]
name = "Pirelli"
file = "pirelli.xlsx"
brand_column = "x"
base_price_column = "D"
reference_column = "A"
ean_column = "F"
dimension_column = "C"
start_line_number = 2
discount_percentage = 55
size_format = "combined"
`

// setupWorkspace writes a config, a one-catalog layout file and its
// workbook into a temp dir, using the reference margin table.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	margins, err := filepath.Abs("../../configs/margins.toml")
	require.NoError(t, err)

	cfg := `
[data]
workbook_dir = "workbooks"
catalogs_file = "catalogs.toml"
margins_file = "` + filepath.ToSlash(margins) + `"

[store]
path = "pricelist.db"

[logging]
level = "error"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pricelist.toml"), []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalogs.toml"), []byte(testCatalogs), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "workbooks"), 0o755))

	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Code", "Description", "Size", "Price", "", "EAN"},
		{"P1", "Cinturato P7", "205/55R16", 210, "", "8019227000001"},
		{"P2", "P Zero", "225/45ZR17", 300, "", "8019227000002"},
		{"P3", "Scorpion", "XL", 150, "", "8019227000003"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(filepath.Join(dir, "workbooks", "pirelli.xlsx")))

	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportCommand(t *testing.T) {
	dir := setupWorkspace(t)
	reportFile := filepath.Join(dir, "report.json")
	metricsOut := filepath.Join(dir, "metrics.prom")

	out, err := execute(t, "import", "--config", filepath.Join(dir, "pricelist.toml"),
		"--report", reportFile, "--metrics-file", metricsOut)
	require.NoError(t, err, out)
	assert.Regexp(t, `Pirelli\s+3\s+2\s+0\s+0\s+1\s+ok`, out)

	data, err := os.ReadFile(reportFile)
	require.NoError(t, err)
	var report models.BatchReport
	require.NoError(t, json.Unmarshal(data, &report))
	require.Len(t, report.Catalogs, 1)
	assert.Equal(t, models.FailureMalformedDimension, report.Catalogs[0].Failures[0].Kind)

	metrics, err := os.ReadFile(metricsOut)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `pricelist_tires_imported_total{catalog="Pirelli"} 2`)

	st, err := store.Open(filepath.Join(dir, "pricelist.db"))
	require.NoError(t, err)
	defer st.Close()

	tires, err := st.Tires(t.Context(), "Pirelli")
	require.NoError(t, err)
	require.Len(t, tires, 2)
	assert.Equal(t, "108.68", tires[0].GaragePrice.Decimal.StringFixed(2))
	assert.Equal(t, "151.20", tires[0].ClientPrice.Decimal.StringFixed(2))
}

func TestImportCommandDryRunAndSelection(t *testing.T) {
	dir := setupWorkspace(t)
	cfgPath := filepath.Join(dir, "pricelist.toml")

	_, err := execute(t, "import", "--config", cfgPath, "--dry-run", "Pirelli")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "pricelist.db"))

	_, err = execute(t, "import", "--config", cfgPath, "--dry-run", "Michelin")
	assert.ErrorContains(t, err, `unknown catalog "Michelin"`)
}

func TestImportCommandReportsFailedCatalog(t *testing.T) {
	dir := setupWorkspace(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "workbooks", "pirelli.xlsx")))

	out, err := execute(t, "import", "--config", filepath.Join(dir, "pricelist.toml"), "--dry-run")
	assert.ErrorContains(t, err, "1 catalog(s) failed")
	assert.Contains(t, out, "load")
}

func TestResolveCommand(t *testing.T) {
	dir := setupWorkspace(t)
	cfgPath := filepath.Join(dir, "pricelist.toml")

	out, err := execute(t, "resolve", "--config", cfgPath, "16", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "rule:   size 16 [75, 90) garage 15% client 55%")
	assert.Contains(t, out, "garage: 92.00")
	assert.Contains(t, out, "client: 124.00")

	out, err = execute(t, "resolve", "--config", cfgPath, "--discount", "55", "16", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "net:    90.00")
	assert.Contains(t, out, "garage: 103.50")
	assert.Contains(t, out, "client: 144.00")

	_, err = execute(t, "resolve", "--config", cfgPath, "99", "80")
	assert.ErrorContains(t, err, "no bucket for size 99")

	_, err = execute(t, "resolve", "--config", cfgPath, "16", "cheap")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := execute(t, "check", "--config", filepath.Join(dir, "pricelist.toml"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 catalogs OK")
	assert.Contains(t, out, "287 margin rules OK, sizes 10-25")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalogs.toml"), []byte("[[catalog]]\nname = \"Broken\"\n"), 0o644))
	_, err = execute(t, "check", "--config", filepath.Join(dir, "pricelist.toml"))
	assert.Error(t, err)
}

func TestInspectCommand(t *testing.T) {
	dir := setupWorkspace(t)
	dump := filepath.Join(dir, "sheet.json")

	_, err := execute(t, "inspect", filepath.Join(dir, "workbooks", "pirelli.xlsx"), "--price-column", "D", "-o", dump)
	require.NoError(t, err)

	data, err := os.ReadFile(dump)
	require.NoError(t, err)
	var wb models.WorkbookData
	require.NoError(t, json.Unmarshal(data, &wb))
	assert.Equal(t, "pirelli.xlsx", wb.BookName)
	assert.Equal(t, 2, wb.Sheet.SuggestedStartLine)
	assert.Len(t, wb.Sheet.Rows, 4)
}
