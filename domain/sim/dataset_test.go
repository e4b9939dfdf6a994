package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dredge/domain/core"
)

func buildDataset(t *testing.T) *Dataset {
	t.Helper()
	ds := NewDataset(4)
	require.NoError(t, ds.AddColumn(ColResponse, []float64{1, -2, 3, -4}))
	require.NoError(t, ds.AddColumn(ColPredictor, []float64{10, 20, 30, 40}))
	require.NoError(t, ds.AddColumn(CovariateKey(1), []float64{0.1, 0.2, 0.3, 0.4}))
	return ds
}

func TestDataset_AddColumn(t *testing.T) {
	ds := NewDataset(3)

	require.NoError(t, ds.AddColumn(ColResponse, []float64{1, 2, 3}))
	assert.Error(t, ds.AddColumn(ColPredictor, []float64{1, 2}), "wrong length")
	assert.Error(t, ds.AddColumn(ColResponse, []float64{4, 5, 6}), "duplicate key")

	assert.Equal(t, []core.VariableKey{ColResponse}, ds.Keys())
}

func TestDataset_Covariates(t *testing.T) {
	ds := buildDataset(t)

	assert.Equal(t, []core.VariableKey{"z1"}, ds.Covariates())
	assert.Equal(t, core.VariableKey("z3"), CovariateKey(3))
}

func TestDataset_SelectRows(t *testing.T) {
	ds := buildDataset(t)

	subset := ds.SelectRows([]int{2, 0})
	assert.Equal(t, 2, subset.RowCount())

	y, ok := subset.Column(ColResponse)
	require.True(t, ok)
	assert.Equal(t, []float64{3, 1}, y)

	z, ok := subset.Column(CovariateKey(1))
	require.True(t, ok)
	assert.Equal(t, []float64{0.3, 0.1}, z)

	// the source is untouched
	original, _ := ds.Column(ColResponse)
	assert.Equal(t, []float64{1, -2, 3, -4}, original)
	assert.Equal(t, 4, ds.RowCount())
}

func TestDataset_WithResponse(t *testing.T) {
	ds := buildDataset(t)

	derived, err := ds.WithResponse([]float64{9, 8, 7, 6})
	require.NoError(t, err)

	y, _ := derived.Column(ColResponse)
	assert.Equal(t, []float64{9, 8, 7, 6}, y)

	x, _ := derived.Column(ColPredictor)
	assert.Equal(t, []float64{10, 20, 30, 40}, x)
	assert.Equal(t, ds.Keys(), derived.Keys())

	originalY, _ := ds.Column(ColResponse)
	assert.Equal(t, []float64{1, -2, 3, -4}, originalY)

	_, err = ds.WithResponse([]float64{1, 2})
	assert.Error(t, err)
}

func TestResponseTransforms(t *testing.T) {
	transforms := ResponseTransforms()
	require.Len(t, transforms, 4)

	names := make([]string, len(transforms))
	for i, tr := range transforms {
		names[i] = tr.Name
	}
	assert.Equal(t, []string{"log_abs", "sqrt_abs", "square", "exp_decay"}, names)

	byName := make(map[string]ResponseTransform, len(transforms))
	for _, tr := range transforms {
		byName[tr.Name] = tr
	}

	assert.InDelta(t, math.Log(3.5), byName["log_abs"].Apply(-2.5), 1e-12)
	assert.InDelta(t, math.Sqrt(2.5), byName["sqrt_abs"].Apply(-2.5), 1e-12)
	assert.InDelta(t, 6.25, byName["square"].Apply(-2.5), 1e-12)
	assert.InDelta(t, math.Exp(-2.5), byName["exp_decay"].Apply(-2.5), 1e-12)

	// every transform stays finite on negative inputs
	for _, tr := range transforms {
		for _, y := range []float64{-3, -0.5, 0, 0.5, 3} {
			got := tr.Apply(y)
			assert.False(t, math.IsNaN(got) || math.IsInf(got, 0),
				"%s(%v) must be finite", tr.Name, y)
		}
	}
}

func TestTransformColumn(t *testing.T) {
	values := []float64{-2, 0, 2}
	squared := TransformColumn(values, ResponseTransforms()[2])

	assert.Equal(t, []float64{4, 0, 4}, squared)
	assert.Equal(t, []float64{-2, 0, 2}, values)
}

func TestTrialOutcome_TriggeredBy(t *testing.T) {
	outcome := TrialOutcome{
		Index:   1,
		Flagged: true,
		Probes: []ProbeResult{
			{Probe: "covariates_0", PValue: 0.2, HasPValue: true, Decision: NotSignificant},
			{Probe: "subset_upper", PValue: 0.01, HasPValue: true, Decision: Significant},
			{Probe: "transform_square", Decision: NotSignificant},
		},
	}

	assert.Equal(t, []string{"subset_upper"}, outcome.TriggeredBy())
}

func TestRunResult_Aggregates(t *testing.T) {
	result := &RunResult{
		Outcomes: []TrialOutcome{
			{Index: 1, Flagged: true, Probes: []ProbeResult{{Probe: "baseline", Decision: Significant}}},
			{Index: 2, Flagged: false},
			{Index: 3, Flagged: true, Probes: []ProbeResult{{Probe: "baseline", Decision: Significant}}},
		},
	}

	assert.Equal(t, []bool{true, false, true}, result.Flags())
	assert.Equal(t, 2, result.FlaggedCount())
	assert.InDelta(t, 2.0/3.0, result.Fraction(), 1e-12)
	assert.Equal(t, map[string]int{"baseline": 2}, result.TriggerCounts())

	empty := &RunResult{}
	assert.Zero(t, empty.Fraction())
}
