package stats

import (
	"fmt"
	"math/rand"

	"github.com/montanaflynn/stats"

	"dredge/domain/sim"
	"dredge/ports"
)

// Battery runs the fixed sequence of alternative analyses against one trial's
// null dataset: covariate stacking, subgroup slicing, and response
// transformation. The trial is flagged iff any probe is significant. No
// multiplicity correction is applied anywhere, which is the phenomenon this
// simulator exists to demonstrate.
//
// Every probe reuses the same generated dataset, so probes are correlated
// rather than independent tests. That correlation structure is load-bearing:
// it is what the inflation measurement is about.
type Battery struct {
	evaluator ports.EvaluatorPort
}

// NewBattery creates a battery around the given evaluator.
func NewBattery(evaluator ports.EvaluatorPort) *Battery {
	return &Battery{evaluator: evaluator}
}

// ProbeCount reports how many probes run for a dataset with k covariates:
// k+1 stacking probes, 3 subset probes, 4 transform probes.
func (b *Battery) ProbeCount(covariates int) int {
	return (covariates + 1) + 3 + 4
}

// Run executes the battery in its fixed order and returns the trial outcome
// with the full per-probe trace. The stream is consumed only by the random
// subset probe, one fresh draw per trial.
func (b *Battery) Run(ds *sim.Dataset, rng *rand.Rand) sim.TrialOutcome {
	covariates := ds.Covariates()
	probes := make([]sim.ProbeResult, 0, b.ProbeCount(len(covariates)))

	// Covariate stacking: y ~ x, then y ~ x + z1, ... up through all of them.
	for size := 0; size <= len(covariates); size++ {
		spec := sim.RegressionSpec{
			Response:  sim.ColResponse,
			Predictor: sim.ColPredictor,
			Controls:  covariates[:size],
		}
		result := b.evaluator.Evaluate(ds, spec)
		result.Probe = fmt.Sprintf("covariates_%d", size)
		probes = append(probes, result)
	}

	// Subgroup slicing: upper half, lower half, random half. Small or empty
	// subsets are expected; the evaluator fails closed on them.
	baseSpec := sim.RegressionSpec{Response: sim.ColResponse, Predictor: sim.ColPredictor}
	upper, lower := b.medianSplit(ds)
	probes = append(probes, b.runSubset("subset_upper", upper, baseSpec))
	probes = append(probes, b.runSubset("subset_lower", lower, baseSpec))
	probes = append(probes, b.runSubset("subset_random", b.randomHalf(ds, rng), baseSpec))

	// Response transformation: four derived responses against x, full dataset.
	y, hasResponse := ds.Column(sim.ColResponse)
	for _, transform := range sim.ResponseTransforms() {
		name := "transform_" + transform.Name
		if !hasResponse {
			probes = append(probes, sim.ProbeResult{Probe: name, Decision: sim.NotSignificant})
			continue
		}
		derived, err := ds.WithResponse(sim.TransformColumn(y, transform))
		if err != nil {
			probes = append(probes, sim.ProbeResult{Probe: name, Decision: sim.NotSignificant})
			continue
		}
		result := b.evaluator.Evaluate(derived, baseSpec)
		result.Probe = name
		probes = append(probes, result)
	}

	outcome := sim.TrialOutcome{Probes: probes}
	for _, p := range probes {
		if p.Decision == sim.Significant {
			outcome.Flagged = true
			break
		}
	}
	return outcome
}

func (b *Battery) runSubset(name string, subset *sim.Dataset, spec sim.RegressionSpec) sim.ProbeResult {
	if subset == nil {
		return sim.ProbeResult{Probe: name, Decision: sim.NotSignificant}
	}
	result := b.evaluator.Evaluate(subset, spec)
	result.Probe = name
	return result
}

// medianSplit partitions rows by the dataset's median response: strictly
// above the median vs at or below it.
func (b *Battery) medianSplit(ds *sim.Dataset) (upper, lower *sim.Dataset) {
	y, ok := ds.Column(sim.ColResponse)
	if !ok {
		return nil, nil
	}
	median, err := stats.Median(y)
	if err != nil {
		return nil, nil
	}

	var upperRows, lowerRows []int
	for i, v := range y {
		if v > median {
			upperRows = append(upperRows, i)
		} else {
			lowerRows = append(lowerRows, i)
		}
	}
	return ds.SelectRows(upperRows), ds.SelectRows(lowerRows)
}

// randomHalf samples half the rows without replacement using the trial's
// own stream, so the draw is reproducible per trial.
func (b *Battery) randomHalf(ds *sim.Dataset, rng *rand.Rand) *sim.Dataset {
	n := ds.RowCount()
	rows := rng.Perm(n)[:n/2]
	return ds.SelectRows(rows)
}
