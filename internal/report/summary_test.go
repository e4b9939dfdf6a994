package report

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dredge/domain/core"
	"dredge/domain/sim"
)

func sampleResult() *sim.RunResult {
	return &sim.RunResult{
		RunID: core.RunID(core.NewID()),
		Config: sim.RunConfig{
			Trials: 4, Observations: 100, Covariates: 2, Alpha: 0.05, Seed: 12345,
		},
		Outcomes: []sim.TrialOutcome{
			{Index: 1, Flagged: true, Probes: []sim.ProbeResult{
				{Probe: "covariates_0", PValue: 0.01, HasPValue: true, Decision: sim.Significant},
				{Probe: "subset_upper", PValue: 0.30, HasPValue: true, Decision: sim.NotSignificant},
			}},
			{Index: 2, Flagged: false, Probes: []sim.ProbeResult{
				{Probe: "covariates_0", PValue: 0.40, HasPValue: true, Decision: sim.NotSignificant},
			}},
			{Index: 3, Flagged: true, Probes: []sim.ProbeResult{
				{Probe: "covariates_0", PValue: 0.02, HasPValue: true, Decision: sim.Significant},
				{Probe: "transform_square", PValue: 0.03, HasPValue: true, Decision: sim.Significant},
			}},
			{Index: 4, Flagged: false},
		},
		StartedAt: time.Now(),
		Duration:  time.Second,
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResult())

	assert.Equal(t, 4, s.TrialCount)
	assert.Equal(t, 2, s.FlaggedCount)
	assert.Equal(t, 2, s.NotFlaggedCount())
	assert.InDelta(t, 0.5, s.Fraction, 1e-12)

	assert.Equal(t, 2, s.TriggerCounts["covariates_0"])
	assert.Equal(t, 1, s.TriggerCounts["transform_square"])
	assert.InDelta(t, 0.75, s.MeanTriggers, 1e-12, "3 significant probes over 4 trials")
	assert.InDelta(t, 2.0, s.MaxTriggers, 1e-12)
}

func TestRenderText(t *testing.T) {
	s := Summarize(sampleResult())
	text := s.RenderText()

	assert.Contains(t, text, "flagged")
	assert.Contains(t, text, "50.0%")
	assert.Contains(t, text, "covariates_0")
	assert.Contains(t, text, "seed=12345")
}

func TestRenderMarkdownAndHTML(t *testing.T) {
	s := Summarize(sampleResult())

	md := s.RenderMarkdown()
	assert.Contains(t, md, "| at least one significant probe | 2 | 50.0% |")
	assert.Contains(t, md, "transform_square")

	page := string(s.RenderHTML())
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "covariates_0")
}

func TestWriteWorkbook(t *testing.T) {
	s := Summarize(sampleResult())
	path := filepath.Join(t.TempDir(), "run.xlsx")

	require.NoError(t, WriteWorkbook(s, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	flagged, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2", flagged)

	clean, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", clean)
}

func TestRenderText_EmptyRun(t *testing.T) {
	s := Summary{Config: sim.RunConfig{Alpha: 0.05}}
	text := s.RenderText()
	assert.True(t, strings.Contains(text, "0 trials") || strings.Contains(text, " 0 "))
}
