package metrics

import (
	"errors"
	"testing"

	"github.com/reaandrew/rewritestats/core"
	"github.com/stretchr/testify/assert"
)

func TestCalcPctZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, CalcPct(0, 0))
	assert.Equal(t, 0.0, CalcPct(7, 0))
}

func TestCalcPct(t *testing.T) {
	assert.Equal(t, 75.0, CalcPct(3, 4))
	assert.Equal(t, 100.0, CalcPct(2, 2))
	assert.Equal(t, 0.0, CalcPct(0, 5))
}

func TestAggregateComputesPassRates(t *testing.T) {
	pointwise := core.FuncErrorReport{"foo": 0, "bar": 2}
	unmodified := core.FuncErrorReport{"foo": 1, "bar": 0}

	summary, err := Aggregate(pointwise, unmodified, Options{})
	assert.Nil(t, err)

	assert.Equal(t, 2, summary.TotalFunctions)
	assert.Equal(t, 1, summary.PointwisePassed)
	assert.Equal(t, 1, summary.UnmodifiedPassed)
	assert.Equal(t, 50.0, summary.PointwisePct)
	assert.Equal(t, 50.0, summary.UnmodifiedPct)

	// foo only passes after rewriting; bar only passed unmodified.
	assert.Equal(t, []string{"foo"}, summary.Improved)
	assert.Equal(t, []string{"bar"}, summary.Broke)
	assert.Equal(t, 1, summary.UnmodifiedFailed())
	assert.Equal(t, 100.0, summary.ImprovedPct)
	assert.Equal(t, 100.0, summary.BrokePct)

	assert.NotEmpty(t, summary.RunID)
	assert.False(t, summary.GeneratedAt.IsZero())
}

func TestAggregateImprovedAndBrokeAreDisjoint(t *testing.T) {
	pointwise := core.FuncErrorReport{"a": 0, "b": 0, "c": 1, "d": 5}
	unmodified := core.FuncErrorReport{"a": 0, "b": 3, "c": 0, "d": 2}

	summary, err := Aggregate(pointwise, unmodified, Options{})
	assert.Nil(t, err)

	for _, improved := range summary.Improved {
		assert.NotContains(t, summary.Broke, improved)
	}
	assert.Equal(t, []string{"b"}, summary.Improved)
	assert.Equal(t, []string{"c"}, summary.Broke)
}

func TestAggregateEmptyReports(t *testing.T) {
	summary, err := Aggregate(core.FuncErrorReport{}, core.FuncErrorReport{}, Options{})
	assert.Nil(t, err)

	assert.Equal(t, 0, summary.TotalFunctions)
	assert.Equal(t, 0.0, summary.PointwisePct)
	assert.Equal(t, 0.0, summary.ImprovedPct)
	assert.Equal(t, 0.0, summary.BrokePct)
}

func TestAggregateSizeMismatchFails(t *testing.T) {
	pointwise := core.FuncErrorReport{"foo": 0, "bar": 1}
	unmodified := core.FuncErrorReport{"foo": 0}

	_, err := Aggregate(pointwise, unmodified, Options{})
	assert.NotNil(t, err)

	var mismatch *core.ReportSizeMismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.PointwiseTotal)
	assert.Equal(t, 1, mismatch.UnmodifiedTotal)
}

func TestAggregateStrictRejectsDifferentIdentifiers(t *testing.T) {
	pointwise := core.FuncErrorReport{"foo": 0}
	unmodified := core.FuncErrorReport{"bar": 0}

	_, err := Aggregate(pointwise, unmodified, Options{Strict: true})
	assert.NotNil(t, err)

	var mismatch *core.IdentifierMismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"foo"}, mismatch.OnlyPointwise)
	assert.Equal(t, []string{"bar"}, mismatch.OnlyUnmodified)
}

func TestAggregateNonStrictAllowsDifferentIdentifiers(t *testing.T) {
	pointwise := core.FuncErrorReport{"foo": 0}
	unmodified := core.FuncErrorReport{"bar": 0}

	summary, err := Aggregate(pointwise, unmodified, Options{})
	assert.Nil(t, err)
	assert.Equal(t, []string{"foo"}, summary.Improved)
}

func TestRecordsFlattensBothReports(t *testing.T) {
	pointwise := core.FuncErrorReport{"b": 1, "a": 0}
	unmodified := core.FuncErrorReport{"a": 2, "b": 0}

	records := Records(pointwise, unmodified)
	assert.Equal(t, []core.FunctionRecord{
		{Log: core.LogPointwise, Name: "a", Errors: 0},
		{Log: core.LogPointwise, Name: "b", Errors: 1},
		{Log: core.LogUnmodified, Name: "a", Errors: 2},
		{Log: core.LogUnmodified, Name: "b", Errors: 0},
	}, records)
}
