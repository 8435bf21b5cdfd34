package reporters

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/reaandrew/rewritestats/core"
	"github.com/reaandrew/rewritestats/utils"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultJsonReport        = "pointwise_metrics.json"
	DefaultJsonDetailReport  = "pointwise_functions.json"
	DefaultJsonSummaryReport = "pointwise_query_summary.json"
)

// JsonReporter writes the run summary, a per-function detail file, and
// optionally the results of SQL summary queries run against the function
// database.
type JsonReporter struct {
	Queries   core.SqlQueries
	OutputDir string
	DBPath    string
}

func (j *JsonReporter) setDefaultOutputDir() {
	if j.OutputDir == "" {
		j.OutputDir = "."
	}
}

func (j JsonReporter) Report(summary *core.Summary, repository core.FunctionRepository) error {
	j.setDefaultOutputDir()

	if err := j.writeSummary(summary); err != nil {
		return fmt.Errorf("failed to write JSON summary: %w", err)
	}

	if err := j.writeDetail(repository); err != nil {
		return fmt.Errorf("failed to write JSON function detail: %w", err)
	}

	if len(j.Queries.Queries) == 0 {
		log.Debug("No SQL queries defined; skipping query summary report")
		return nil
	}
	if err := j.writeQuerySummary(); err != nil {
		return fmt.Errorf("failed to write JSON query summary: %w", err)
	}

	return nil
}

func (j JsonReporter) writeSummary(summary *core.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	outputFilePath := filepath.Join(j.OutputDir, DefaultJsonReport)
	if err := os.WriteFile(outputFilePath, data, 0644); err != nil {
		return err
	}

	fmt.Printf("JSON summary generated successfully: %s\n", outputFilePath)
	return nil
}

// writeDetail streams one JSON object per line for each function record.
func (j JsonReporter) writeDetail(repository core.FunctionRepository) error {
	outputFilePath := filepath.Join(j.OutputDir, DefaultJsonDetailReport)

	outputFile, err := os.Create(outputFilePath)
	if err != nil {
		return fmt.Errorf("failed to create detail output file: %w", err)
	}
	defer outputFile.Close()

	iterator := repository.NewIterator()
	for iterator.HasNext() {
		record, err := iterator.Next()
		if err != nil {
			return fmt.Errorf("failed to retrieve next record: %w", err)
		}

		jsonBytes, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record to JSON: %w", err)
		}

		if _, err := outputFile.Write(jsonBytes); err != nil {
			return fmt.Errorf("failed to write to detail output file: %w", err)
		}
		if _, err := outputFile.WriteString("\n"); err != nil {
			return fmt.Errorf("failed to write newline to detail output file: %w", err)
		}
	}

	fmt.Printf("JSON function detail generated successfully: %s\n", outputFilePath)
	return nil
}

func (j JsonReporter) writeQuerySummary() error {
	db, err := sql.Open("sqlite3", j.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer db.Close()

	summaryData := make(map[string]interface{})
	for _, query := range j.Queries.Queries {
		results, err := utils.ExecuteSQLQuery(db, query.Query)
		if err != nil {
			log.Printf("Skipping query for '%s': %v", query.Name, err)
			continue
		}
		summaryData[query.Name] = results
	}

	summaryBytes, err := json.MarshalIndent(summaryData, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal query summary data: %w", err)
	}

	outputFilePath := filepath.Join(j.OutputDir, DefaultJsonSummaryReport)
	if err := os.WriteFile(outputFilePath, summaryBytes, 0644); err != nil {
		return err
	}

	fmt.Printf("JSON query summary generated successfully: %s\n", outputFilePath)
	return nil
}
