package sim

import (
	"time"

	"dredge/domain/core"
)

// Canonical column keys for generated null datasets.
const (
	ColResponse  core.VariableKey = "y"
	ColPredictor core.VariableKey = "x"
)

// Decision is the two-variant outcome of a single model evaluation.
type Decision string

const (
	Significant    Decision = "significant"
	NotSignificant Decision = "not_significant"
)

// RegressionSpec is a structured regression request: no formula strings.
// The battery's fixed probe list is enumerable from values of this type.
type RegressionSpec struct {
	Response  core.VariableKey   `json:"response"`
	Predictor core.VariableKey   `json:"predictor"`
	Controls  []core.VariableKey `json:"controls,omitempty"`
}

// ProbeResult records one battery probe: which analysis ran, the p-value it
// produced (HasPValue is false when the fit failed closed), and the decision.
type ProbeResult struct {
	Probe     string   `json:"probe"`
	PValue    float64  `json:"p_value,omitempty"`
	HasPValue bool     `json:"has_p_value"`
	Decision  Decision `json:"decision"`
}

// TrialOutcome is the result of one trial: the flag that survives into the
// aggregate, plus the per-probe trace for diagnostics.
type TrialOutcome struct {
	Index   int           `json:"index"`
	Flagged bool          `json:"flagged"`
	Probes  []ProbeResult `json:"probes,omitempty"`
}

// TriggeredBy lists the probes that crossed the threshold in this trial.
func (t TrialOutcome) TriggeredBy() []string {
	var names []string
	for _, p := range t.Probes {
		if p.Decision == Significant {
			names = append(names, p.Probe)
		}
	}
	return names
}

// RunConfig echoes the parameters a run was executed with, for reproducibility.
type RunConfig struct {
	Trials       int     `json:"trials"`
	Observations int     `json:"observations"`
	Covariates   int     `json:"covariates"`
	Alpha        float64 `json:"alpha"`
	Seed         int64   `json:"seed"`
}

// RunResult holds every per-trial outcome of a completed simulation run,
// in trial order. This is the runner's explicit return value; no cross-trial
// state lives anywhere else.
type RunResult struct {
	RunID     core.RunID     `json:"run_id"`
	Config    RunConfig      `json:"config"`
	Outcomes  []TrialOutcome `json:"outcomes"`
	StartedAt time.Time      `json:"started_at"`
	Duration  time.Duration  `json:"duration"`
}

// Flags returns the bare per-trial boolean sequence, in trial order.
func (r *RunResult) Flags() []bool {
	flags := make([]bool, len(r.Outcomes))
	for i, o := range r.Outcomes {
		flags[i] = o.Flagged
	}
	return flags
}

// FlaggedCount returns how many trials produced at least one significant probe.
func (r *RunResult) FlaggedCount() int {
	count := 0
	for _, o := range r.Outcomes {
		if o.Flagged {
			count++
		}
	}
	return count
}

// Fraction returns the proportion of flagged trials.
func (r *RunResult) Fraction() float64 {
	if len(r.Outcomes) == 0 {
		return 0
	}
	return float64(r.FlaggedCount()) / float64(len(r.Outcomes))
}

// TriggerCounts tallies, per probe name, how many trials it flagged.
func (r *RunResult) TriggerCounts() map[string]int {
	counts := make(map[string]int)
	for _, o := range r.Outcomes {
		for _, p := range o.Probes {
			if p.Decision == Significant {
				counts[p.Probe]++
			}
		}
	}
	return counts
}
