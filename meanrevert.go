// Package meanrevert simulates Ornstein-Uhlenbeck processes and analyses each path with closed form
// least squares: a Dickey-Fuller unit root regression, an AR(p) fit on the leading points, and an
// AR(1) based recovery of the process parameters.
package meanrevert

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aouyang1/go-meanrevert/autoregressive"
	"github.com/aouyang1/go-meanrevert/stationarity"
	"github.com/aouyang1/go-meanrevert/stats"
	"github.com/aouyang1/go-meanrevert/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Run simulates every configured process and analyses each resulting path. A nil opt runs the
// default configuration.
func Run(opt *Options) (*Report, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	paths, err := timedataset.SimulateOU(timedataset.NewRand(opt.Seed), opt.Steps, opt.Dt, opt.Processes...)
	if err != nil {
		return nil, fmt.Errorf("unable to simulate processes, %w", err)
	}
	slog.Info("simulated processes", "count", len(paths), "steps", opt.Steps, "seed", opt.Seed)

	report := &Report{
		Options:   opt,
		Paths:     paths,
		Processes: make([]*ProcessReport, 0, len(paths)),
	}
	for i, path := range paths {
		pr, err := Analyze(path, opt)
		if err != nil {
			return nil, fmt.Errorf("unable to analyze %s, %w", path.Name, err)
		}
		pr.Params = opt.Processes[i]
		report.Processes = append(report.Processes, pr)
	}
	return report, nil
}

// Analyze runs the stationarity test, AR cross check and OU recovery on a single path. Diagnostics
// that do not apply to the path, such as an OU fit on an explosive series, are logged and left
// empty.
func Analyze(path *timedataset.TimeDataset, opt *Options) (*ProcessReport, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}

	pr := &ProcessReport{
		Name:    path.Name,
		Summary: Summarize(path.Y),
	}

	head := path.Head(opt.CompareHead)

	pr.ADFHead, err = stationarity.ADF(head.Y, opt.ADFOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to run dickey-fuller on head, %w", err)
	}
	pr.ADF, err = stationarity.ADF(path.Y, opt.ADFOptions)
	if err != nil {
		return nil, fmt.Errorf("unable to run dickey-fuller on path, %w", err)
	}

	pr.AR, err = fitAR(head.Y, opt)
	if err != nil {
		return nil, err
	}

	pr.OU, err = EstimateOU(path.Y, opt.Dt)
	if errors.Is(err, ErrNotMeanReverting) {
		slog.Warn("skipping ou parameter recovery", "name", path.Name, "error", err.Error())
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to estimate ou parameters, %w", err)
	}

	return pr, nil
}

func fitAR(series []float64, opt *Options) (*ARReport, error) {
	model, err := autoregressive.New(opt.AROptions)
	if err != nil {
		return nil, err
	}
	if err := model.Fit(series); err != nil {
		return nil, fmt.Errorf("unable to fit ar model, %w", err)
	}

	ar := &ARReport{
		Labels:  model.Labels(),
		Actual:  append([]float64(nil), series[opt.AROptions.MaxLag:]...),
		Fitted:  model.FittedValues(),
		Results: model.Results(),
	}

	if opt.ForecastSteps > 0 {
		ar.Forecast, err = model.Forecast(opt.ForecastSteps)
		if err != nil {
			return nil, err
		}
	}

	if opt.AROptions.MaxLag > 1 {
		x, _, err := autoregressive.Design(series, opt.AROptions.MaxLag, false)
		if err != nil {
			return nil, err
		}
		ar.VIF, err = stats.VarianceInflationFactor(stats.LagFeatures(x))
		if err != nil {
			slog.Warn("unable to compute lag variance inflation factors", "error", err.Error())
		}
	}
	return ar, nil
}

// Summarize computes descriptive statistics of a path
func Summarize(y []float64) Summary {
	if len(y) == 0 {
		return Summary{}
	}
	mean, std := stat.Mean(y, nil), 0.0
	if len(y) > 1 {
		std = stat.StdDev(y, nil)
	}
	return Summary{
		Mean:  mean,
		Std:   std,
		Min:   floats.Min(y),
		Max:   floats.Max(y),
		First: y[0],
		Last:  y[len(y)-1],
	}
}
