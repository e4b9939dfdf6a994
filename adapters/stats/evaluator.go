package stats

import (
	"dredge/adapters/stats/ols"
	"dredge/domain/sim"
	"dredge/internal"
)

// Evaluator decides significance for one structured regression request.
// This is the single auditable boundary where fit errors become a
// NotSignificant decision: a broken test must never count as a false
// positive, so every degenerate fit fails closed here.
type Evaluator struct {
	alpha  float64
	logger *internal.Logger
}

// NewEvaluator creates an evaluator with the given significance threshold.
func NewEvaluator(alpha float64) *Evaluator {
	return &Evaluator{alpha: alpha, logger: internal.DefaultLogger}
}

// Alpha returns the configured significance threshold.
func (e *Evaluator) Alpha() float64 {
	return e.alpha
}

// Evaluate fits response ~ predictor + controls (intercept included) and
// returns the decision for the predictor coefficient's two-tailed p-value.
// The probe name is left for the caller to assign.
func (e *Evaluator) Evaluate(ds *sim.Dataset, spec sim.RegressionSpec) sim.ProbeResult {
	response, ok := ds.Column(spec.Response)
	if !ok {
		e.logger.Debug("evaluate: missing response column %s, failing closed", spec.Response)
		return sim.ProbeResult{Decision: sim.NotSignificant}
	}
	predictor, ok := ds.Column(spec.Predictor)
	if !ok {
		e.logger.Debug("evaluate: missing predictor column %s, failing closed", spec.Predictor)
		return sim.ProbeResult{Decision: sim.NotSignificant}
	}

	regressors := make([][]float64, 0, len(spec.Controls)+1)
	regressors = append(regressors, predictor)
	for _, key := range spec.Controls {
		control, ok := ds.Column(key)
		if !ok {
			e.logger.Debug("evaluate: missing control column %s, failing closed", key)
			return sim.ProbeResult{Decision: sim.NotSignificant}
		}
		regressors = append(regressors, control)
	}

	fit, err := ols.Fit(response, regressors)
	if err != nil {
		e.logger.Trace("evaluate: fit failed (%v), failing closed", err)
		return sim.ProbeResult{Decision: sim.NotSignificant}
	}

	p := fit.PValues[1] // intercept is 0, predictor is 1
	decision := sim.NotSignificant
	if p < e.alpha {
		decision = sim.Significant
	}
	return sim.ProbeResult{PValue: p, HasPValue: true, Decision: decision}
}
