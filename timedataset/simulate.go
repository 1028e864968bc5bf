package timedataset

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var (
	ErrNoRandSource   = errors.New("no random source")
	ErrNoProcesses    = errors.New("no processes to simulate")
	ErrInvalidSteps   = errors.New("number of steps must be positive")
	ErrInvalidDt      = errors.New("time step must be positive")
	ErrNegativeTheta  = errors.New("mean reversion rate cannot be negative")
	ErrNegativeSigma  = errors.New("volatility cannot be negative")
	ErrMissingOULabel = errors.New("process name cannot be empty")
)

// OUOptions parameterizes an Ornstein-Uhlenbeck process, dY = theta*(mu - Y)dt + sigma*dW
type OUOptions struct {
	Name  string  `json:"name" yaml:"name"`
	Mu    float64 `json:"mu" yaml:"mu"`
	Theta float64 `json:"theta" yaml:"theta"`
	Sigma float64 `json:"sigma" yaml:"sigma"`
	Y0    float64 `json:"y0" yaml:"y0"`
}

// Validate checks the process parameters
func (o OUOptions) Validate() error {
	if o.Name == "" {
		return ErrMissingOULabel
	}
	if o.Theta < 0 || math.IsNaN(o.Theta) {
		return fmt.Errorf("%s got theta %.3f, %w", o.Name, o.Theta, ErrNegativeTheta)
	}
	if o.Sigma < 0 || math.IsNaN(o.Sigma) {
		return fmt.Errorf("%s got sigma %.3f, %w", o.Name, o.Sigma, ErrNegativeSigma)
	}
	return nil
}

// SimulateOU runs an Euler-Maruyama discretization of every process for the given number of steps.
// All processes advance together and draw one standard normal each per step in order, so adding or
// reordering processes changes the noise each one sees. Each returned dataset has steps+1 points
// starting at the process Y0.
func SimulateOU(rng *rand.Rand, steps int, dt float64, procs ...OUOptions) ([]*TimeDataset, error) {
	if rng == nil {
		return nil, ErrNoRandSource
	}
	if len(procs) == 0 {
		return nil, ErrNoProcesses
	}
	if steps < 1 {
		return nil, fmt.Errorf("got %d steps, %w", steps, ErrInvalidSteps)
	}
	if dt <= 0 || math.IsNaN(dt) {
		return nil, fmt.Errorf("got dt of %.3f, %w", dt, ErrInvalidDt)
	}
	for _, p := range procs {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	paths := make([][]float64, len(procs))
	for j, p := range procs {
		paths[j] = make([]float64, steps+1)
		paths[j][0] = p.Y0
	}

	sqrtDt := math.Sqrt(dt)
	for i := 1; i <= steps; i++ {
		for j, p := range procs {
			prev := paths[j][i-1]
			paths[j][i] = prev + p.Theta*(p.Mu-prev)*dt + p.Sigma*sqrtDt*rng.NormFloat64()
		}
	}

	t := GenerateT(steps+1, dt)
	out := make([]*TimeDataset, 0, len(procs))
	for j, p := range procs {
		td, err := NewUnivariateDataset(p.Name, t, paths[j])
		if err != nil {
			return nil, fmt.Errorf("unable to build dataset for %s, %w", p.Name, err)
		}
		out = append(out, td)
	}
	return out, nil
}

// NewRand returns a deterministic random source for seed
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
