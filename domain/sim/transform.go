package sim

import "math"

// ResponseTransform derives a new response column from the original one.
type ResponseTransform struct {
	Name  string
	Apply func(y float64) float64
}

// ResponseTransforms returns the fixed set of response transformations the
// battery probes, in evaluation order: magnitude-preserving log, magnitude
// root, square, and decaying exponential.
func ResponseTransforms() []ResponseTransform {
	return []ResponseTransform{
		{Name: "log_abs", Apply: func(y float64) float64 { return math.Log(math.Abs(y) + 1) }},
		{Name: "sqrt_abs", Apply: func(y float64) float64 { return math.Sqrt(math.Abs(y)) }},
		{Name: "square", Apply: func(y float64) float64 { return y * y }},
		{Name: "exp_decay", Apply: func(y float64) float64 { return math.Exp(-math.Abs(y)) }},
	}
}

// TransformColumn applies a transform element-wise, returning a fresh slice.
func TransformColumn(values []float64, transform ResponseTransform) []float64 {
	derived := make([]float64, len(values))
	for i, y := range values {
		derived[i] = transform.Apply(y)
	}
	return derived
}
