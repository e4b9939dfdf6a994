package ports

import (
	"math/rand"

	"dredge/domain/sim"
)

// EvaluatorPort fits one regression and decides significance for the
// predictor coefficient. Fit failures are downgraded to NotSignificant here;
// callers never see them (fail closed).
type EvaluatorPort interface {
	Evaluate(ds *sim.Dataset, spec sim.RegressionSpec) sim.ProbeResult
}

// BatteryPort runs the fixed sequence of alternative analyses against one
// trial's dataset and reports whether any probe crossed the threshold.
// The stream is consumed only by the random-subset probe.
type BatteryPort interface {
	Run(ds *sim.Dataset, rng *rand.Rand) sim.TrialOutcome
	// ProbeCount reports how many probes the battery will run for a dataset
	// with the given number of nuisance covariates.
	ProbeCount(covariates int) int
}
