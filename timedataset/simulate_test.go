package timedataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestSimulateOUDeterministic(t *testing.T) {
	// without noise the discretized path decays geometrically towards mu
	proc := OUOptions{Name: "no_noise", Mu: 10, Theta: 0.1, Sigma: 0, Y0: -50}
	dt := 0.5

	res, err := SimulateOU(NewRand(1), 20, dt, proc)
	require.Nil(t, err)
	require.Len(t, res, 1)

	path := res[0]
	assert.Equal(t, "no_noise", path.Name)
	require.Len(t, path.Y, 21)
	assert.Equal(t, GenerateT(21, dt), path.T)

	decay := 1.0 - proc.Theta*dt
	for i, y := range path.Y {
		expected := proc.Mu + (proc.Y0-proc.Mu)*math.Pow(decay, float64(i))
		assert.InDelta(t, expected, y, 1e-9, "step %d", i)
	}
}

func TestSimulateOUReproducible(t *testing.T) {
	procs := []OUOptions{
		{Name: "Y_t1", Mu: 10, Theta: 0.003, Sigma: 0.3, Y0: -50},
		{Name: "Y_t2", Mu: 10, Theta: 0.01, Sigma: 0.3, Y0: 50},
		{Name: "Y_t3", Mu: 10, Theta: 0.1, Sigma: 0.3, Y0: 0},
	}

	first, err := SimulateOU(NewRand(2000), 100, 1.0, procs...)
	require.Nil(t, err)
	second, err := SimulateOU(NewRand(2000), 100, 1.0, procs...)
	require.Nil(t, err)
	assert.Equal(t, first, second)

	other, err := SimulateOU(NewRand(2001), 100, 1.0, procs...)
	require.Nil(t, err)
	assert.NotEqual(t, first[0].Y, other[0].Y)

	for i, p := range procs {
		assert.Equal(t, p.Name, first[i].Name)
		assert.Equal(t, p.Y0, first[i].Y[0])
	}

	// noise is drawn in process order each step so a lone process sees a different stream
	alone, err := SimulateOU(NewRand(2000), 100, 1.0, procs[1])
	require.Nil(t, err)
	assert.NotEqual(t, first[1].Y, alone[0].Y)
}

func TestSimulateOUMeanReverts(t *testing.T) {
	proc := OUOptions{Name: "fast", Mu: 10, Theta: 0.5, Sigma: 0.3, Y0: 0}

	res, err := SimulateOU(NewRand(7), 5000, 1.0, proc)
	require.Nil(t, err)

	tail := res[0].Y[100:]
	assert.InDelta(t, proc.Mu, stat.Mean(tail, nil), 0.1)

	// stationary variance of the discretized process is sigma^2 / (1 - (1 - theta)^2)
	expectedVar := proc.Sigma * proc.Sigma / (1 - math.Pow(1-proc.Theta, 2))
	assert.InDelta(t, expectedVar, stat.Variance(tail, nil), 0.02)
}

func TestSimulateOUErrors(t *testing.T) {
	valid := OUOptions{Name: "valid", Mu: 1, Theta: 0.1, Sigma: 0.1}

	testData := map[string]struct {
		nilRand bool
		steps   int
		dt      float64
		procs   []OUOptions
		err     error
	}{
		"no rand":        {nilRand: true, steps: 10, dt: 1, procs: []OUOptions{valid}, err: ErrNoRandSource},
		"no processes":   {steps: 10, dt: 1, err: ErrNoProcesses},
		"zero steps":     {steps: 0, dt: 1, procs: []OUOptions{valid}, err: ErrInvalidSteps},
		"zero dt":        {steps: 10, dt: 0, procs: []OUOptions{valid}, err: ErrInvalidDt},
		"negative theta": {steps: 10, dt: 1, procs: []OUOptions{{Name: "a", Theta: -1}}, err: ErrNegativeTheta},
		"negative sigma": {steps: 10, dt: 1, procs: []OUOptions{{Name: "a", Sigma: -1}}, err: ErrNegativeSigma},
		"missing name":   {steps: 10, dt: 1, procs: []OUOptions{{Theta: 1}}, err: ErrMissingOULabel},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			rng := NewRand(1)
			if td.nilRand {
				rng = nil
			}
			res, err := SimulateOU(rng, td.steps, td.dt, td.procs...)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, td.err)
		})
	}
}
