package ports

import (
	"math/rand"

	"dredge/domain/sim"
)

// GeneratorPort produces one synthetic null dataset per trial: a response,
// a predictor, and k nuisance covariates, all mutually independent standard
// normal draws from the supplied stream. Any observed association downstream
// is sampling noise by construction.
type GeneratorPort interface {
	Generate(rng *rand.Rand, observations, covariates int) (*sim.Dataset, error)
}
