package autoregressive

import (
	"fmt"
	"strconv"

	"github.com/aouyang1/go-meanrevert/linearmodel"
)

// Options configures an AR model fit
type Options struct {
	// MaxLag is the autoregressive order p
	MaxLag int `json:"max_lag" yaml:"max_lag"`

	// Trend adds a constant term ahead of the lag coefficients
	Trend bool `json:"trend" yaml:"trend"`
}

// NewDefaultOptions returns an AR(1) with a constant
func NewDefaultOptions() *Options {
	return &Options{
		MaxLag: 1,
		Trend:  true,
	}
}

// Validate fills in defaults when nil and checks the lag order
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.MaxLag < 1 {
		return nil, fmt.Errorf("got lag of %d, %w", o.MaxLag, ErrInvalidLag)
	}
	return o, nil
}

// MinObservations is the shortest series that leaves positive residual degrees of freedom
func (o *Options) MinObservations() int {
	trend := 0
	if o.Trend {
		trend = 1
	}
	return 2*o.MaxLag + trend + 1
}

// Model is an AR(p) model fit by conditional least squares
type Model struct {
	opt *Options

	series []float64
	res    *linearmodel.Results
}

// New initializes an AR model ready for fitting
func New(opt *Options) (*Model, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Model{opt: opt}, nil
}

// Fit estimates the model parameters on series
func (m *Model) Fit(series []float64) error {
	if m.opt == nil {
		return ErrNoOptions
	}
	res, err := Fit(series, m.opt.MaxLag, m.opt.Trend)
	if err != nil {
		return err
	}
	m.series = make([]float64, len(series))
	copy(m.series, series)
	m.res = res
	return nil
}

// Results returns the underlying regression results, or nil if not fit
func (m *Model) Results() *linearmodel.Results {
	return m.res
}

// Params returns the fitted coefficients, constant first when enabled
func (m *Model) Params() []float64 {
	if m.res == nil {
		return nil
	}
	return m.res.Coef()
}

// Labels names each parameter in Params order
func (m *Model) Labels() []string {
	if m.opt == nil {
		return nil
	}
	labels := make([]string, 0, m.opt.MaxLag+1)
	if m.opt.Trend {
		labels = append(labels, "const")
	}
	for lag := 1; lag <= m.opt.MaxLag; lag++ {
		labels = append(labels, "L"+strconv.Itoa(lag))
	}
	return labels
}

// Residuals returns the in-sample residuals, aligned with series[MaxLag:]
func (m *Model) Residuals() []float64 {
	if m.res == nil {
		return nil
	}
	return m.res.Resid()
}

// FittedValues returns the one step ahead in-sample predictions aligned with series[MaxLag:]
func (m *Model) FittedValues() []float64 {
	if m.res == nil {
		return nil
	}
	resid := m.res.Resid()
	fitted := make([]float64, len(resid))
	for i, r := range resid {
		fitted[i] = m.series[i+m.opt.MaxLag] - r
	}
	return fitted
}

// Forecast recursively predicts steps values past the end of the fit series, feeding each
// prediction back in as a lag.
func (m *Model) Forecast(steps int) ([]float64, error) {
	if m.res == nil {
		return nil, ErrNotFitted
	}
	if steps < 1 {
		return nil, fmt.Errorf("got %d, %w", steps, ErrInvalidSteps)
	}

	params := m.res.Coef()
	var c float64
	if m.opt.Trend {
		c = params[0]
		params = params[1:]
	}

	p := m.opt.MaxLag
	history := make([]float64, p, p+steps)
	copy(history, m.series[len(m.series)-p:])

	out := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		n := len(history)
		next := c
		for lag := 1; lag <= p; lag++ {
			next += params[lag-1] * history[n-lag]
		}
		history = append(history, next)
		out = append(out, next)
	}
	return out, nil
}
