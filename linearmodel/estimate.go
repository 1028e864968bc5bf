package linearmodel

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Estimate computes the closed form OLS solution of y on x, beta = (X'X)^-1 X'y, along with residual
// and inference statistics. The residual degrees of freedom are the number of observations minus
// the number of columns in x.
func Estimate(x mat.Matrix, y []float64) (*Results, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	m, n := x.Dims()
	return estimate(x, y, m-n)
}

// EstimateWithDOF is Estimate with an explicit residual degrees of freedom used to scale the
// residual variance. Coefficients and residuals do not depend on dof.
func EstimateWithDOF(x mat.Matrix, y []float64, dof int) (*Results, error) {
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	return estimate(x, y, dof)
}

// eps is the float64 machine epsilon
const eps = 0x1p-52

func estimate(x mat.Matrix, y []float64, dof int) (*Results, error) {
	if y == nil {
		return nil, ErrNoTargetArray
	}
	m, n := x.Dims()
	if m != len(y) {
		return nil, fmt.Errorf("design matrix has %d rows and target has %d values, %w", m, len(y), ErrDimensionMismatch)
	}
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("design matrix is %dx%d, %w", m, n, ErrDimensionMismatch)
	}
	if dof <= 0 {
		return nil, fmt.Errorf("got %d degrees of freedom with %d observations and %d regressors, %w", dof, m, n, ErrInvalidDOF)
	}

	// variance-covariance factor, G = (X'X)^-1
	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var g mat.Dense
	if err := g.Inverse(&xtx); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("condition number %g, %w", float64(cond), ErrSingularMatrix)
		}
		return nil, fmt.Errorf("unable to invert gram matrix, %w", err)
	}

	yVec := mat.NewVecDense(m, append([]float64(nil), y...))

	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)

	beta := mat.NewVecDense(n, nil)
	beta.MulVec(&g, &xty)

	var fitted mat.VecDense
	fitted.MulVec(x, beta)

	resid := mat.NewVecDense(m, nil)
	resid.SubVec(yVec, &fitted)

	// residuals at the level of rounding error are an exact fit
	ssr := mat.Dot(resid, resid)
	if ssr <= float64(m)*eps*mat.Dot(yVec, yVec) {
		ssr = 0
	}
	scale := ssr / float64(dof)

	// kron(G, scale) with a scalar scale is just G scaled
	cov := mat.NewDense(n, n, nil)
	cov.Scale(scale, &g)

	bse := make([]float64, n)
	tvalues := make([]float64, n)
	for i := 0; i < n; i++ {
		bse[i] = math.Sqrt(math.Max(cov.At(i, i), 0.0))
		if bse[i] == 0 {
			tvalues[i] = math.NaN()
			continue
		}
		tvalues[i] = beta.AtVec(i) / bse[i]
	}

	return &Results{
		coef:      beta.RawVector().Data,
		resid:     resid.RawVector().Data,
		nobs:      m,
		dof:       dof,
		ssr:       ssr,
		scale:     scale,
		covParams: cov,
		bse:       bse,
		tvalues:   tvalues,
	}, nil
}
