// Package autoregressive fits AR(p) models by conditional least squares on a lagged design matrix
package autoregressive

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-meanrevert/linearmodel"
	mat_ "github.com/aouyang1/go-meanrevert/mat"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidLag               = errors.New("max lag must be at least 1")
	ErrInsufficientObservations = errors.New("not enough observations for the requested lag")
	ErrNotFitted                = errors.New("model has not been fit")
	ErrInvalidSteps             = errors.New("forecast steps must be positive")
	ErrNoOptions                = errors.New("no options set")
)

// Fit regresses series[maxLag:] on maxLag lagged copies of the series, with a leading constant column
// when includeTrend is set. The residual degrees of freedom are the number of regression rows minus
// the lag order and trend terms.
func Fit(series []float64, maxLag int, includeTrend bool) (*linearmodel.Results, error) {
	x, y, err := Design(series, maxLag, includeTrend)
	if err != nil {
		return nil, err
	}

	kTrend := 0
	if includeTrend {
		kTrend = 1
	}
	nobs := len(y)
	dof := nobs - maxLag - kTrend

	res, err := linearmodel.EstimateWithDOF(x, y, dof)
	if err != nil {
		return nil, fmt.Errorf("unable to fit AR(%d), %w", maxLag, err)
	}
	return res, nil
}

// Design builds the lagged regressor matrix and aligned target for an AR(maxLag) regression. Column
// order is the optional constant followed by lag 1 through lag maxLag.
func Design(series []float64, maxLag int, includeTrend bool) (*mat.Dense, []float64, error) {
	if maxLag < 1 {
		return nil, nil, fmt.Errorf("got lag of %d, %w", maxLag, ErrInvalidLag)
	}
	if maxLag >= len(series) {
		return nil, nil, fmt.Errorf("lag of %d with %d observations, %w", maxLag, len(series), ErrInsufficientObservations)
	}

	x, err := mat_.LagMatrix(series, maxLag)
	if err != nil {
		return nil, nil, err
	}
	if includeTrend {
		x = mat_.AddConstant(x, true)
	}

	y := make([]float64, len(series)-maxLag)
	copy(y, series[maxLag:])
	return x, y, nil
}
