package reporters

import (
	"os"
	"path"
	"testing"

	"github.com/reaandrew/rewritestats/core"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
)

func TestXlsxReporterWritesSummaryAndFunctionsSheets(t *testing.T) {
	dir, err := os.MkdirTemp("", "prefix")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	repository := &mockFunctionRepository{records: []core.FunctionRecord{
		{Log: core.LogPointwise, Name: "foo", Errors: 0},
		{Log: core.LogPointwise, Name: "bar", Errors: 2},
		{Log: core.LogUnmodified, Name: "foo", Errors: 1},
		{Log: core.LogUnmodified, Name: "bar", Errors: 0},
	}}

	reporter := XlsxReporter{OutputDir: dir}
	err = reporter.Report(scenarioSummary(), repository)
	assert.Nil(t, err)

	workbook, err := excelize.OpenFile(path.Join(dir, XlsxReportFilename))
	assert.Nil(t, err)
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Functions")

	metric, err := workbook.GetCellValue("Summary", "A2")
	assert.Nil(t, err)
	assert.Equal(t, "pointwise", metric)

	rows, err := workbook.GetRows("Functions")
	assert.Nil(t, err)
	// header plus one row per record
	assert.Len(t, rows, 5)
	assert.Equal(t, []string{"Log", "Function", "Errors"}, rows[0])
}
