// Package stationarity implements the augmented Dickey-Fuller unit root regression on top of the
// closed form OLS estimator.
//
// The test regresses the first difference of a series on its lagged level, maxLag lagged differences
// and optional deterministic terms:
//
//	dy_t = gamma*y_{t-1} + sum_i delta_i*dy_{t-i} [+ c] [+ b*t] + e_t
//
// The statistic is the t-value of gamma. Under the null hypothesis the series has a unit root, so a
// statistic below the critical value rejects non-stationarity.
package stationarity

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-meanrevert/linearmodel"
	mat_ "github.com/aouyang1/go-meanrevert/mat"
	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrUnknownRegression        = errors.New("unknown regression type")
	ErrInvalidLag               = errors.New("max lag cannot be negative")
	ErrInsufficientObservations = errors.New("not enough observations for the requested lag")
)

// Regression selects the deterministic terms included in the test regression
type Regression string

const (
	RegressionNone          Regression = "nc"
	RegressionConstant      Regression = "c"
	RegressionConstantTrend Regression = "ct"
)

// ADFOptions configures the Dickey-Fuller regression
type ADFOptions struct {
	MaxLag     int        `json:"max_lag" yaml:"max_lag"`
	Regression Regression `json:"regression" yaml:"regression"`
}

// NewDefaultADFOptions returns a single lag test with no deterministic terms
func NewDefaultADFOptions() *ADFOptions {
	return &ADFOptions{
		MaxLag:     1,
		Regression: RegressionNone,
	}
}

// MinObservations is the shortest series whose test regression has positive residual degrees of
// freedom. Differencing and lagging drop MaxLag+1 rows and the regression has MaxLag+1 columns plus
// the deterministic terms.
func (o *ADFOptions) MinObservations() int {
	return 2*o.MaxLag + 3 + deterministicTerms(o.Regression)
}

func deterministicTerms(r Regression) int {
	switch r {
	case RegressionConstant:
		return 1
	case RegressionConstantTrend:
		return 2
	default:
		return 0
	}
}

// Validate fills in defaults when nil and checks the lag and regression type
func (o *ADFOptions) Validate() (*ADFOptions, error) {
	if o == nil {
		o = NewDefaultADFOptions()
	}
	if o.MaxLag < 0 {
		return nil, fmt.Errorf("got lag of %d, %w", o.MaxLag, ErrInvalidLag)
	}
	if _, exists := criticalValues[o.Regression]; !exists {
		return nil, fmt.Errorf("%q, %w", o.Regression, ErrUnknownRegression)
	}
	return o, nil
}

// ADFResult holds the test statistic and the regression it came from
type ADFResult struct {
	Statistic      float64              `json:"statistic"`
	UsedLag        int                  `json:"used_lag"`
	NObs           int                  `json:"nobs"`
	Regression     Regression           `json:"regression"`
	CriticalValues map[string]float64   `json:"critical_values"`
	IsStationary   bool                 `json:"is_stationary"`
	Results        *linearmodel.Results `json:"regression_results"`
}

// MarshalJSON writes an undefined statistic, from a regression with no residual variance, as null
func (r *ADFResult) MarshalJSON() ([]byte, error) {
	var stat *float64
	if !math.IsNaN(r.Statistic) && !math.IsInf(r.Statistic, 0) {
		stat = &r.Statistic
	}
	return json.Marshal(
		struct {
			Statistic      *float64             `json:"statistic"`
			UsedLag        int                  `json:"used_lag"`
			NObs           int                  `json:"nobs"`
			Regression     Regression           `json:"regression"`
			CriticalValues map[string]float64   `json:"critical_values"`
			IsStationary   bool                 `json:"is_stationary"`
			Results        *linearmodel.Results `json:"regression_results"`
		}{
			Statistic:      stat,
			UsedLag:        r.UsedLag,
			NObs:           r.NObs,
			Regression:     r.Regression,
			CriticalValues: r.CriticalValues,
			IsStationary:   r.IsStationary,
			Results:        r.Results,
		},
	)
}

// ADF runs the augmented Dickey-Fuller regression on series
func ADF(series []float64, opt *ADFOptions) (*ADFResult, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	x, y, err := Design(series, opt.MaxLag, opt.Regression)
	if err != nil {
		return nil, err
	}

	res, err := linearmodel.Estimate(x, y)
	if err != nil {
		return nil, fmt.Errorf("unable to estimate dickey-fuller regression, %w", err)
	}

	crit, err := CriticalValues(opt.Regression)
	if err != nil {
		return nil, err
	}
	stat := res.TValues()[0]

	return &ADFResult{
		Statistic:      stat,
		UsedLag:        opt.MaxLag,
		NObs:           res.NObs(),
		Regression:     opt.Regression,
		CriticalValues: crit,
		IsStationary:   stat < crit["5%"],
		Results:        res,
	}, nil
}

// Design builds the Dickey-Fuller regressors. Columns are the lagged level, lagged differences 1
// through maxLag, then the constant and linear trend when requested.
func Design(series []float64, maxLag int, regression Regression) (*mat.Dense, []float64, error) {
	if maxLag < 0 {
		return nil, nil, fmt.Errorf("got lag of %d, %w", maxLag, ErrInvalidLag)
	}
	if _, exists := criticalValues[regression]; !exists {
		return nil, nil, fmt.Errorf("%q, %w", regression, ErrUnknownRegression)
	}
	if len(series) < maxLag+2 {
		return nil, nil, fmt.Errorf("lag of %d with %d observations, %w", maxLag, len(series), ErrInsufficientObservations)
	}

	dy, err := mat_.Diff(series)
	if err != nil {
		return nil, nil, err
	}

	// dy[j] = y[j+1] - y[j], rows start at j = maxLag so every lagged difference exists
	nobs := len(dy) - maxLag
	x := mat.NewDense(nobs, maxLag+1, nil)
	y := make([]float64, nobs)
	for i := 0; i < nobs; i++ {
		j := i + maxLag
		y[i] = dy[j]
		x.Set(i, 0, series[j])
		for lag := 1; lag <= maxLag; lag++ {
			x.Set(i, lag, dy[j-lag])
		}
	}

	out := x
	switch regression {
	case RegressionConstant:
		out = mat_.AddConstant(x, false)
	case RegressionConstantTrend:
		trend := make([]float64, nobs)
		for i := range trend {
			trend[i] = float64(i + 1)
		}
		out, err = mat_.AddColumn(mat_.AddConstant(x, false), trend)
		if err != nil {
			return nil, nil, err
		}
	}
	return out, y, nil
}
