// Package timedataset holds evenly stepped univariate series and the stochastic process simulators
// used to generate them
package timedataset

import (
	"errors"
	"fmt"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMontonic        = errors.New("time feature is not monotonic")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
)

// TimeDataset represents a named series storing a slice of time points and values.
// Both must be of the same length.
type TimeDataset struct {
	Name string    `json:"name"`
	T    []float64 `json:"time"`
	Y    []float64 `json:"values"`
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and value slice.
func NewUnivariateDataset(name string, t, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(t); i++ {
		if t[i] <= t[i-1] {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMontonic)
		}
	}

	tSeries := make([]float64, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)
	td := &TimeDataset{
		Name: name,
		T:    tSeries,
		Y:    ySeries,
	}

	return td, nil
}

func (td *TimeDataset) Copy() *TimeDataset {
	return td.Head(len(td.T))
}

// Head returns a copy of the first n points, or the whole dataset if it is shorter than n
func (td *TimeDataset) Head(n int) *TimeDataset {
	n = max(min(n, len(td.T)), 0)

	tSeries := make([]float64, n)
	ySeries := make([]float64, n)
	copy(tSeries, td.T[:n])
	copy(ySeries, td.Y[:n])
	return &TimeDataset{
		Name: td.Name,
		T:    tSeries,
		Y:    ySeries,
	}
}

// GenerateT returns n evenly spaced time points starting at 0
func GenerateT(n int, interval float64) []float64 {
	t := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, interval*float64(i))
	}
	return t
}
