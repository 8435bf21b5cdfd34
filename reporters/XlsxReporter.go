package reporters

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/reaandrew/rewritestats/core"
	"github.com/reaandrew/rewritestats/utils"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const XlsxReportFilename = "pointwise_metrics.xlsx"

// XlsxReporter writes a workbook with a Summary sheet, a Functions sheet and
// one sheet per configured SQL summary query.
type XlsxReporter struct {
	Queries   core.SqlQueries
	OutputDir string
	DBPath    string
}

func (x XlsxReporter) Report(summary *core.Summary, repository core.FunctionRepository) error {
	fmt.Println("Generating XLSX report")

	outputDir := x.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	excelFile := excelize.NewFile()
	defaultSheet := excelFile.GetSheetName(0)

	if err := x.writeSummarySheet(excelFile, summary); err != nil {
		return fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if err := x.writeFunctionsSheet(excelFile, repository); err != nil {
		return fmt.Errorf("failed to write functions sheet: %w", err)
	}
	if err := x.writeQuerySheets(excelFile); err != nil {
		return fmt.Errorf("failed to write query sheets: %w", err)
	}

	if err := excelFile.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("failed to delete default sheet %q: %w", defaultSheet, err)
	}

	outputFilePath := filepath.Join(outputDir, XlsxReportFilename)
	if err := excelFile.SaveAs(outputFilePath); err != nil {
		return fmt.Errorf("failed to save XLSX file: %w", err)
	}

	fmt.Printf("XLSX report generated successfully: %s\n", outputFilePath)
	return nil
}

func (x XlsxReporter) writeSummarySheet(excelFile *excelize.File, summary *core.Summary) error {
	sheet := "Summary"
	if _, err := excelFile.NewSheet(sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Metric", "Count", "Total", "Percent"},
		{"pointwise", summary.PointwisePassed, summary.TotalFunctions, summary.PointwisePct},
		{"unmodified", summary.UnmodifiedPassed, summary.TotalFunctions, summary.UnmodifiedPct},
		{"improved", len(summary.Improved), summary.UnmodifiedFailed(), summary.ImprovedPct},
		{"broke", len(summary.Broke), summary.UnmodifiedPassed, summary.BrokePct},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := excelFile.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (x XlsxReporter) writeFunctionsSheet(excelFile *excelize.File, repository core.FunctionRepository) error {
	sheet := "Functions"
	if _, err := excelFile.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Log", "Function", "Errors"}
	if err := excelFile.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	rowIndex := 2
	iterator := repository.NewIterator()
	for iterator.HasNext() {
		record, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve next record: %w", err)
		}

		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		row := []interface{}{record.Log, record.Name, record.Errors}
		if err := excelFile.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
		rowIndex++
	}
	return nil
}

func (x XlsxReporter) writeQuerySheets(excelFile *excelize.File) error {
	if len(x.Queries.Queries) == 0 || x.DBPath == "" {
		return nil
	}

	db, err := sql.Open("sqlite3", x.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer db.Close()

	for _, query := range x.Queries.Queries {
		results, err := utils.ExecuteSQLQuery(db, query.Query)
		if err != nil {
			log.Printf("Skipping query for '%s': %v", query.Name, err)
			continue
		}
		if err := x.writeQuerySheet(excelFile, query.Name, results); err != nil {
			return err
		}
	}
	return nil
}

func (x XlsxReporter) writeQuerySheet(excelFile *excelize.File, sheet string, results []map[string]interface{}) error {
	if _, err := excelFile.NewSheet(sheet); err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	var columns []string
	for col := range results[0] {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	header := make([]interface{}, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := excelFile.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, result := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			row[j] = result[col]
		}
		if err := excelFile.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
