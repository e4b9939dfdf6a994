package ols

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"dredge/domain/core"
)

// FitResult holds the outcome of one ordinary least-squares fit. Coefficient
// order is intercept first, then the regressors in the order supplied to Fit.
type FitResult struct {
	Coefficients []float64
	StdErrors    []float64
	TStats       []float64
	PValues      []float64
	ResidualDF   int
	SampleSize   int
}

// Fit regresses response on the given regressor columns with an intercept and
// returns two-tailed p-values for every coefficient under the Student's t
// null. It returns an error, never a panic, for every degenerate input:
// too few rows, mismatched columns, a singular design, or non-finite output.
// Callers decide what a failed fit means; the evaluator fails closed.
func Fit(response []float64, regressors [][]float64) (*FitResult, error) {
	n := len(response)
	p := len(regressors) + 1 // intercept

	if n == 0 {
		return nil, core.NewFitError(core.ErrInsufficientData, "empty response")
	}
	if n <= p {
		return nil, core.NewFitError(core.ErrInsufficientData,
			fmt.Sprintf("%d rows for %d parameters", n, p))
	}
	for i, col := range regressors {
		if len(col) != n {
			return nil, core.NewFitError(core.ErrInsufficientData,
				fmt.Sprintf("regressor %d has %d rows, want %d", i, len(col), n))
		}
	}

	design := mat.NewDense(n, p, nil)
	for row := 0; row < n; row++ {
		design.Set(row, 0, 1)
		for j, col := range regressors {
			design.Set(row, j+1, col[row])
		}
	}
	yVec := mat.NewVecDense(n, append([]float64(nil), response...))

	var qr mat.QR
	qr.Factorize(design)

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, yVec); err != nil {
		return nil, core.NewFitError(core.ErrSingularDesign, err.Error())
	}

	// Residual sum of squares and the error variance estimate.
	var fitted mat.VecDense
	fitted.MulVec(design, &beta)
	rss := 0.0
	for i := 0; i < n; i++ {
		r := response[i] - fitted.AtVec(i)
		rss += r * r
	}
	df := n - p
	sigma2 := rss / float64(df)

	var xtx mat.Dense
	xtx.Mul(design.T(), design)
	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, core.NewFitError(core.ErrSingularDesign, err.Error())
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	result := &FitResult{
		Coefficients: make([]float64, p),
		StdErrors:    make([]float64, p),
		TStats:       make([]float64, p),
		PValues:      make([]float64, p),
		ResidualDF:   df,
		SampleSize:   n,
	}
	for j := 0; j < p; j++ {
		coef := beta.AtVec(j)
		se := math.Sqrt(sigma2 * inv.At(j, j))
		if !isFinite(coef) || !isFinite(se) || se == 0 {
			return nil, core.NewFitError(core.ErrNonFiniteFit,
				fmt.Sprintf("coefficient %d: beta=%v se=%v", j, coef, se))
		}
		t := coef / se
		result.Coefficients[j] = coef
		result.StdErrors[j] = se
		result.TStats[j] = t
		result.PValues[j] = 2 * tDist.CDF(-math.Abs(t))
	}
	return result, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
