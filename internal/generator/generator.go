package generator

import (
	"math/rand"

	"dredge/domain/sim"
	"dredge/internal/errors"
)

// NullGenerator produces datasets with a known-zero true effect: the
// response, the predictor, and every nuisance covariate are independent
// standard normal draws. Anything a downstream analysis "finds" in this data
// is a false positive by construction.
type NullGenerator struct{}

// New creates a null data generator.
func New() *NullGenerator {
	return &NullGenerator{}
}

// Generate draws one dataset of the given shape from the supplied stream.
// Draw order is fixed (y first, then x, then z1..zk, each column in row
// order) so a seeded stream always yields the same dataset.
func (g *NullGenerator) Generate(rng *rand.Rand, observations, covariates int) (*sim.Dataset, error) {
	if observations < 1 {
		return nil, errors.GeneratorError("observations per trial must be at least 1", nil)
	}
	if covariates < 0 {
		return nil, errors.GeneratorError("covariate count cannot be negative", nil)
	}

	ds := sim.NewDataset(observations)
	if err := ds.AddColumn(sim.ColResponse, drawColumn(rng, observations)); err != nil {
		return nil, errors.GeneratorError("adding response column", err)
	}
	if err := ds.AddColumn(sim.ColPredictor, drawColumn(rng, observations)); err != nil {
		return nil, errors.GeneratorError("adding predictor column", err)
	}
	for i := 1; i <= covariates; i++ {
		if err := ds.AddColumn(sim.CovariateKey(i), drawColumn(rng, observations)); err != nil {
			return nil, errors.GeneratorError("adding covariate column", err)
		}
	}
	return ds, nil
}

func drawColumn(rng *rand.Rand, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = rng.NormFloat64()
	}
	return values
}
