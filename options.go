package meanrevert

import (
	"errors"
	"fmt"
	"os"

	"github.com/aouyang1/go-meanrevert/autoregressive"
	"github.com/aouyang1/go-meanrevert/stationarity"
	"github.com/aouyang1/go-meanrevert/timedataset"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoProcesses        = errors.New("no processes configured")
	ErrDuplicateProcess   = errors.New("process name is used more than once")
	ErrInvalidCompareHead = errors.New("compare head is too short for the AR and Dickey-Fuller regressions")
	ErrInvalidSteps       = errors.New("number of steps must be positive")
	ErrInvalidDt          = errors.New("time step must be positive")
)

// Options configures a full simulation and analysis run
type Options struct {
	// Seed drives every random draw in the simulation
	Seed uint64 `json:"seed" yaml:"seed"`

	// Steps is the number of Euler steps, each path has Steps+1 points
	Steps int     `json:"steps" yaml:"steps"`
	Dt    float64 `json:"dt" yaml:"dt"`

	Processes []timedataset.OUOptions `json:"processes" yaml:"processes"`

	// CompareHead is the number of leading points of each path used for the AR and ADF cross
	// checks
	CompareHead int `json:"compare_head" yaml:"compare_head"`

	AROptions  *autoregressive.Options  `json:"ar" yaml:"ar"`
	ADFOptions *stationarity.ADFOptions `json:"adf" yaml:"adf"`

	// ForecastSteps is the number of out of sample AR predictions past the compared head
	ForecastSteps int `json:"forecast_steps" yaml:"forecast_steps"`
}

// NewDefaultOptions returns three processes reverting to 10 at increasing speeds from -50, 50 and
// 0, compared with an AR(3) without a constant and a single lag Dickey-Fuller regression on the
// first 10 points.
func NewDefaultOptions() *Options {
	return &Options{
		Seed:  2000,
		Steps: 1000,
		Dt:    1.0,
		Processes: []timedataset.OUOptions{
			{Name: "Y_t1", Mu: 10, Theta: 0.003, Sigma: 0.3, Y0: -50},
			{Name: "Y_t2", Mu: 10, Theta: 0.01, Sigma: 0.3, Y0: 50},
			{Name: "Y_t3", Mu: 10, Theta: 0.1, Sigma: 0.3, Y0: 0},
		},
		CompareHead: 10,
		AROptions: &autoregressive.Options{
			MaxLag: 3,
			Trend:  false,
		},
		ADFOptions:    stationarity.NewDefaultADFOptions(),
		ForecastSteps: 5,
	}
}

// Validate fills in defaults when nil and checks the run configuration
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	if o.Steps < 1 {
		return nil, fmt.Errorf("got %d steps, %w", o.Steps, ErrInvalidSteps)
	}
	if o.Dt <= 0 {
		return nil, fmt.Errorf("got dt of %.3f, %w", o.Dt, ErrInvalidDt)
	}
	if len(o.Processes) == 0 {
		return nil, ErrNoProcesses
	}

	names := make(map[string]struct{}, len(o.Processes))
	for _, p := range o.Processes {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := names[p.Name]; exists {
			return nil, fmt.Errorf("%s, %w", p.Name, ErrDuplicateProcess)
		}
		names[p.Name] = struct{}{}
	}

	arOpt, err := o.AROptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid ar options, %w", err)
	}
	o.AROptions = arOpt

	adfOpt, err := o.ADFOptions.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid adf options, %w", err)
	}
	o.ADFOptions = adfOpt

	// the head feeds both the AR fit and a Dickey-Fuller regression
	minHead := max(o.AROptions.MinObservations(), o.ADFOptions.MinObservations())
	if o.CompareHead < minHead || o.CompareHead > o.Steps+1 {
		return nil, fmt.Errorf(
			"head of %d needs between %d and %d points, %w",
			o.CompareHead, minHead, o.Steps+1, ErrInvalidCompareHead,
		)
	}

	// the full path feeds a Dickey-Fuller regression and an AR(1) with a constant
	minPath := max(o.ADFOptions.MinObservations(), ouMinObservations)
	if o.Steps+1 < minPath {
		return nil, fmt.Errorf("got %d steps, need at least %d, %w", o.Steps, minPath-1, ErrInvalidSteps)
	}
	if o.ForecastSteps < 0 {
		o.ForecastSteps = 0
	}
	return o, nil
}

// LoadOptions reads yaml options from path on top of the defaults
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOptions(data)
}

// ParseOptions decodes yaml options on top of the defaults
func ParseOptions(data []byte) (*Options, error) {
	opt := NewDefaultOptions()
	if err := yaml.Unmarshal(data, opt); err != nil {
		return nil, fmt.Errorf("unable to parse options, %w", err)
	}
	return opt, nil
}
