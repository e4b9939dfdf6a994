package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"dredge/domain/core"
	"dredge/domain/sim"
)

// Summary is everything the reporting layer needs from a completed run: the
// two counts the visualization wants, the fraction, and the per-probe
// diagnostics. The per-trial datasets are long gone by the time this exists.
type Summary struct {
	RunID         core.RunID     `json:"run_id"`
	Config        sim.RunConfig  `json:"config"`
	TrialCount    int            `json:"trial_count"`
	FlaggedCount  int            `json:"flagged_count"`
	Fraction      float64        `json:"fraction"`
	TriggerCounts map[string]int `json:"trigger_counts"`
	MeanTriggers  float64        `json:"mean_triggers"`
	MaxTriggers   float64        `json:"max_triggers"`
	Duration      time.Duration  `json:"duration"`
}

// Summarize reduces a run result to its reportable aggregate.
func Summarize(result *sim.RunResult) Summary {
	triggersPerTrial := make([]float64, len(result.Outcomes))
	for i, outcome := range result.Outcomes {
		triggersPerTrial[i] = float64(len(outcome.TriggeredBy()))
	}
	mean, _ := stats.Mean(triggersPerTrial)
	max, _ := stats.Max(triggersPerTrial)

	return Summary{
		RunID:         result.RunID,
		Config:        result.Config,
		TrialCount:    len(result.Outcomes),
		FlaggedCount:  result.FlaggedCount(),
		Fraction:      result.Fraction(),
		TriggerCounts: result.TriggerCounts(),
		MeanTriggers:  mean,
		MaxTriggers:   max,
		Duration:      result.Duration,
	}
}

// NotFlaggedCount is the second of the two numbers the bar comparison needs.
func (s Summary) NotFlaggedCount() int {
	return s.TrialCount - s.FlaggedCount
}

// RenderText renders the two-category bar comparison with percentages plus a
// probe-trigger table, suitable for a terminal.
func (s Summary) RenderText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s: %d trials, n=%d, k=%d covariates, alpha=%.2f, seed=%d\n",
		s.RunID, s.TrialCount, s.Config.Observations, s.Config.Covariates, s.Config.Alpha, s.Config.Seed)
	fmt.Fprintf(&b, "\n")

	flaggedPct := 100 * s.Fraction
	cleanPct := 100 - flaggedPct
	b.WriteString(renderBar("flagged    ", s.FlaggedCount, s.TrialCount, flaggedPct))
	b.WriteString(renderBar("not flagged", s.NotFlaggedCount(), s.TrialCount, cleanPct))

	if len(s.TriggerCounts) > 0 {
		fmt.Fprintf(&b, "\nProbe triggers (trials flagged per probe):\n")
		for _, name := range s.sortedProbes() {
			fmt.Fprintf(&b, "  %-22s %5d\n", name, s.TriggerCounts[name])
		}
		fmt.Fprintf(&b, "  mean significant probes per trial: %.2f (max %.0f)\n",
			s.MeanTriggers, s.MaxTriggers)
	}
	return b.String()
}

const barWidth = 40

func renderBar(label string, count, total int, pct float64) string {
	filled := 0
	if total > 0 {
		filled = count * barWidth / total
	}
	return fmt.Sprintf("  %s %s%s %5d (%5.1f%%)\n",
		label,
		strings.Repeat("#", filled),
		strings.Repeat(".", barWidth-filled),
		count, pct)
}

func (s Summary) sortedProbes() []string {
	names := make([]string, 0, len(s.TriggerCounts))
	for name := range s.TriggerCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
