package reporters

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/reaandrew/rewritestats/core"
	"github.com/stretchr/testify/assert"
)

type mockFunctionRepository struct {
	records []core.FunctionRecord
}

func (m *mockFunctionRepository) Store(records []core.FunctionRecord) error {
	m.records = append(m.records, records...)
	return nil
}

func (m *mockFunctionRepository) NewIterator() core.FunctionIterator {
	return &mockFunctionIterator{records: m.records}
}

func (m *mockFunctionRepository) Close() error {
	return nil
}

type mockFunctionIterator struct {
	records  []core.FunctionRecord
	position int
}

func (it *mockFunctionIterator) HasNext() bool {
	return it.position < len(it.records)
}

func (it *mockFunctionIterator) Next() (core.FunctionRecord, error) {
	if it.position >= len(it.records) {
		return core.FunctionRecord{}, fmt.Errorf("no more records available")
	}
	record := it.records[it.position]
	it.position++
	return record, nil
}

func (it *mockFunctionIterator) Reset() error {
	it.position = 0
	return nil
}

func scenarioSummary() *core.Summary {
	return &core.Summary{
		RunID:            "test-run",
		GeneratedAt:      time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		TotalFunctions:   2,
		PointwisePassed:  1,
		UnmodifiedPassed: 1,
		Improved:         []string{"foo"},
		Broke:            []string{"bar"},
		PointwisePct:     50.0,
		UnmodifiedPct:    50.0,
		ImprovedPct:      100.0,
		BrokePct:         100.0,
	}
}

func TestTextReporterPrintsFourSummaryLines(t *testing.T) {
	var buf bytes.Buffer
	reporter := TextReporter{Writer: &buf}

	err := reporter.Report(scenarioSummary(), &mockFunctionRepository{})
	assert.Nil(t, err)

	expected := "pointwise:      1/2 functions passed (50.0%)\n" +
		"unmodified:     1/2 functions passed (50.0%)\n" +
		"improved:       1/1 functions (100.0%)\n" +
		"broke:          1/1 functions (100.0%)\n"
	assert.Equal(t, expected, buf.String())
}

func TestTextReporterPadsWideCounts(t *testing.T) {
	var buf bytes.Buffer
	reporter := TextReporter{Writer: &buf}

	summary := &core.Summary{
		TotalFunctions:   120000,
		PointwisePassed:  98765,
		UnmodifiedPassed: 120000,
		PointwisePct:     82.3,
		UnmodifiedPct:    100.0,
	}
	err := reporter.Report(summary, &mockFunctionRepository{})
	assert.Nil(t, err)

	assert.Contains(t, buf.String(), "pointwise:  98765/120000 functions passed (82.3%)\n")
}

func TestCreateReporterKnownFormats(t *testing.T) {
	for _, format := range []string{"text", "json", "xlsx"} {
		reporter, err := CreateReporter(format, ".", core.SqlQueries{}, "")
		assert.Nil(t, err)
		assert.NotNil(t, reporter)
	}
}

func TestCreateReporterUnknownFormatFails(t *testing.T) {
	_, err := CreateReporter("pdf", ".", core.SqlQueries{}, "")
	assert.NotNil(t, err)
}
