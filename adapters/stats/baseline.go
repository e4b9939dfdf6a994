package stats

import (
	"math/rand"

	"dredge/domain/sim"
	"dredge/ports"
)

// BaselineBattery runs only the unadorned y ~ x regression, one honest test
// per trial. Its long-run flag rate converges to the significance threshold,
// which is the yardstick the full battery's inflated rate is compared
// against.
type BaselineBattery struct {
	evaluator ports.EvaluatorPort
}

// NewBaselineBattery creates the single-probe baseline.
func NewBaselineBattery(evaluator ports.EvaluatorPort) *BaselineBattery {
	return &BaselineBattery{evaluator: evaluator}
}

// ProbeCount is always 1 for the baseline.
func (b *BaselineBattery) ProbeCount(int) int { return 1 }

// Run evaluates y ~ x on the full dataset. The stream is unused; it is part
// of the signature so the baseline consumes the same interface as the full
// battery.
func (b *BaselineBattery) Run(ds *sim.Dataset, _ *rand.Rand) sim.TrialOutcome {
	result := b.evaluator.Evaluate(ds, sim.RegressionSpec{
		Response:  sim.ColResponse,
		Predictor: sim.ColPredictor,
	})
	result.Probe = "baseline"
	return sim.TrialOutcome{
		Flagged: result.Decision == sim.Significant,
		Probes:  []sim.ProbeResult{result},
	}
}
