// Package stats provides regression diagnostics built on the linearmodel estimator
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aouyang1/go-meanrevert/linearmodel"
	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrMinimumFeatures    = errors.New("need at least 2 features to compute VIF")
	ErrFeatureLenMismatch = errors.New("some feature length is not consistent")
	ErrFeatureLen         = errors.New("need more points than features to compute VIF")
)

// VIF maps a feature name to its variance inflation factor
type VIF map[string]float64

// MarshalJSON writes infinite factors, from perfectly collinear features, as null
func (v VIF) MarshalJSON() ([]byte, error) {
	out := make(map[string]*float64, len(v))
	for label, f := range v {
		if math.IsInf(f, 0) || math.IsNaN(f) {
			out[label] = nil
			continue
		}
		out[label] = &f
	}
	return json.Marshal(out)
}

// VarianceInflationFactor regresses each feature on a constant and every other feature and reports
// 1 / (1 - R^2). Perfectly explained features map to +Inf.
func VarianceInflationFactor(features map[string][]float64) (VIF, error) {
	if len(features) < 2 {
		return nil, ErrMinimumFeatures
	}
	n := len(features)
	var m int
	for _, feature := range features {
		if m == 0 {
			m = len(feature)
		}
		if m != len(feature) {
			return nil, ErrFeatureLenMismatch
		}
	}
	if m <= n {
		return nil, fmt.Errorf("%d points with %d features, %w", m, n, ErrFeatureLen)
	}

	labels := make([]string, 0, n)
	for label := range features {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	ones := make([]float64, m)
	floats.AddConst(1.0, ones)

	vif := make(VIF, n)
	x := mat.NewDense(m, n, nil)
	x.SetCol(0, ones)
	for _, label := range labels {
		target := features[label]
		c := 1
		for _, otherLabel := range labels {
			if otherLabel == label {
				continue
			}
			x.SetCol(c, features[otherLabel])
			c++
		}

		res, err := linearmodel.Estimate(x, target)
		if errors.Is(err, linearmodel.ErrSingularMatrix) {
			vif[label] = math.Inf(1)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("unable to regress %s on remaining features, %w", label, err)
		}

		predicted := make([]float64, m)
		floats.SubTo(predicted, target, res.Resid())

		r2 := stat.RSquaredFrom(predicted, target, nil)
		if r2 >= 1.0 {
			vif[label] = math.Inf(1)
			continue
		}
		vif[label] = 1.0 / (1.0 - r2)
	}
	return vif, nil
}

// LagFeatures names each column of a lag design matrix L1, L2, ... for use with
// VarianceInflationFactor
func LagFeatures(x mat.Matrix) map[string][]float64 {
	_, n := x.Dims()
	features := make(map[string][]float64, n)
	for j := 0; j < n; j++ {
		features[fmt.Sprintf("L%d", j+1)] = mat.Col(nil, j, x)
	}
	return features
}
