package ports

import "math/rand"

// RNGPort provides seeded random number generation for deterministic runs.
// Each trial owns a disjoint substream derived from the base seed and the
// trial index, so sequential and parallel execution produce identical runs.
type RNGPort interface {
	// TrialStream creates the deterministic stream for a trial index.
	TrialStream(trial int) *rand.Rand

	// Seed returns the base seed the provider was built with.
	Seed() int64
}
