package meanrevert

import (
	"testing"

	"github.com/aouyang1/go-meanrevert/autoregressive"
	"github.com/aouyang1/go-meanrevert/stationarity"
	"github.com/aouyang1/go-meanrevert/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDefault(t *testing.T) {
	report, err := Run(nil)
	require.Nil(t, err)

	require.Len(t, report.Paths, 3)
	require.Len(t, report.Processes, 3)

	for i, name := range []string{"Y_t1", "Y_t2", "Y_t3"} {
		path := report.Paths[i]
		pr := report.Processes[i]

		assert.Equal(t, name, path.Name)
		assert.Equal(t, name, pr.Name)
		assert.Len(t, path.Y, 1001)
		assert.Equal(t, report.Options.Processes[i], pr.Params)
		assert.Equal(t, path.Y[0], pr.Summary.First)

		// AR(3) without a constant on the first 10 points
		require.NotNil(t, pr.AR)
		assert.Equal(t, []string{"L1", "L2", "L3"}, pr.AR.Labels)
		assert.Equal(t, 7, pr.AR.Results.NObs())
		assert.Equal(t, 4, pr.AR.Results.DOF())
		assert.Equal(t, path.Y[3:10], pr.AR.Actual)
		assert.Len(t, pr.AR.Fitted, 7)
		assert.Len(t, pr.AR.Forecast, 5)
		assert.Len(t, pr.AR.VIF, 3)

		// single lag Dickey-Fuller on the same head
		require.NotNil(t, pr.ADFHead)
		assert.Equal(t, 8, pr.ADFHead.NObs)
		assert.Equal(t, stationarity.RegressionNone, pr.ADFHead.Regression)
		require.NotNil(t, pr.ADF)
		assert.Equal(t, 999, pr.ADF.NObs)
	}
}

func TestRunMatchesDirectFit(t *testing.T) {
	report, err := Run(nil)
	require.Nil(t, err)

	for i, path := range report.Paths {
		expected, err := autoregressive.Fit(path.Y[:10], 3, false)
		require.Nil(t, err)
		assert.Equal(t, expected, report.Processes[i].AR.Results, path.Name)
	}
}

func TestRunReproducible(t *testing.T) {
	opt := NewDefaultOptions()
	opt.Steps = 200

	first, err := Run(opt)
	require.Nil(t, err)
	second, err := Run(opt)
	require.Nil(t, err)
	assert.Equal(t, first.Paths, second.Paths)

	opt.Seed++
	third, err := Run(opt)
	require.Nil(t, err)
	assert.NotEqual(t, first.Paths[0].Y, third.Paths[0].Y)
}

func TestRunShortestValidConfig(t *testing.T) {
	opt := NewDefaultOptions()
	opt.Steps = 3
	opt.CompareHead = 4
	opt.AROptions = &autoregressive.Options{MaxLag: 1, Trend: true}
	opt.ADFOptions = &stationarity.ADFOptions{MaxLag: 0, Regression: stationarity.RegressionNone}
	opt.ForecastSteps = 1

	report, err := Run(opt)
	require.Nil(t, err)
	for _, pr := range report.Processes {
		assert.Equal(t, 1, pr.AR.Results.DOF())
		assert.Equal(t, 2, pr.ADFHead.Results.DOF())
	}
}

func TestAnalyzeRecoversOU(t *testing.T) {
	opt := &Options{
		Seed:  11,
		Steps: 5000,
		Dt:    1.0,
		Processes: []timedataset.OUOptions{
			{Name: "fast", Mu: 10, Theta: 0.1, Sigma: 0.3, Y0: 10},
		},
		CompareHead: 50,
		AROptions:   &autoregressive.Options{MaxLag: 2, Trend: true},
		ADFOptions: &stationarity.ADFOptions{
			MaxLag:     1,
			Regression: stationarity.RegressionConstant,
		},
	}

	report, err := Run(opt)
	require.Nil(t, err)
	require.Len(t, report.Processes, 1)

	pr := report.Processes[0]
	require.NotNil(t, pr.OU)
	assert.InDelta(t, 0.1, pr.OU.Theta, 0.03, "theta")
	assert.InDelta(t, 10.0, pr.OU.Mu, 0.25, "mu")
	assert.InDelta(t, 0.3, pr.OU.Sigma, 0.02, "sigma")
	assert.InDelta(t, 6.93, pr.OU.HalfLife, 2.5, "half-life")

	assert.True(t, pr.ADF.IsStationary)
	assert.Less(t, pr.ADF.Statistic, pr.ADF.CriticalValues["1%"])

	assert.Equal(t, []string{"const", "L1", "L2"}, pr.AR.Labels)
	assert.Empty(t, pr.AR.Forecast)
	assert.InDelta(t, 10.0, pr.Summary.Mean, 0.25)
}

func TestAnalyzeErrors(t *testing.T) {
	opt := NewDefaultOptions()

	path, err := timedataset.NewUnivariateDataset("short", []float64{0, 1}, []float64{1, 2})
	require.Nil(t, err)

	_, err = Analyze(path, opt)
	assert.ErrorIs(t, err, stationarity.ErrInsufficientObservations)

	bad := NewDefaultOptions()
	bad.Steps = 0
	_, err = Analyze(path, bad)
	assert.ErrorIs(t, err, ErrInvalidSteps)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 5.0, s.Mean)
	assert.InDelta(t, 2.138089935, s.Std, 1e-9)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.Equal(t, 2.0, s.First)
	assert.Equal(t, 9.0, s.Last)

	assert.Equal(t, Summary{Mean: 3, Min: 3, Max: 3, First: 3, Last: 3}, Summarize([]float64{3}))
	assert.Equal(t, Summary{}, Summarize(nil))
}
