package meanrevert

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-meanrevert/autoregressive"
	"github.com/aouyang1/go-meanrevert/linearmodel"
)

var ErrNotMeanReverting = errors.New("lag coefficient is outside (0, 1), series is not mean reverting")

// ouMinObservations is the shortest series an AR(1) with a constant can be fit on
var ouMinObservations = (&autoregressive.Options{MaxLag: 1, Trend: true}).MinObservations()

// OUEstimate is the Ornstein-Uhlenbeck parameterization implied by an AR(1) fit with a constant
type OUEstimate struct {
	Mu       float64 `json:"mu"`
	Theta    float64 `json:"theta"`
	Sigma    float64 `json:"sigma"`
	HalfLife float64 `json:"half_life"`

	Results *linearmodel.Results `json:"regression_results"`
}

// EstimateOU recovers OU parameters from a path sampled every dt. The Euler discretization
// y_t = theta*mu*dt + (1 - theta*dt)*y_{t-1} + sigma*sqrt(dt)*e_t is an AR(1) with a constant, so
// theta = (1 - b)/dt, mu = c/(1 - b) and sigma^2 = scale/dt.
func EstimateOU(series []float64, dt float64) (*OUEstimate, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("got dt of %.3f, %w", dt, ErrInvalidDt)
	}

	res, err := autoregressive.Fit(series, 1, true)
	if err != nil {
		return nil, err
	}

	coef := res.Coef()
	c, b := coef[0], coef[1]
	if b <= 0 || b >= 1 {
		return nil, fmt.Errorf("got %.4f, %w", b, ErrNotMeanReverting)
	}

	theta := (1.0 - b) / dt
	return &OUEstimate{
		Mu:       c / (1.0 - b),
		Theta:    theta,
		Sigma:    math.Sqrt(res.Scale() / dt),
		HalfLife: math.Ln2 / theta,
		Results:  res,
	}, nil
}
