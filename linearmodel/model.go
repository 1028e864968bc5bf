// Package linearmodel implements closed form ordinary least squares along with the full set of
// inference statistics (residuals, scale, parameter covariance, standard errors and t-values)
package linearmodel

import (
	"gonum.org/v1/gonum/mat"
)

// Model is a fit/predict regression model over gonum matrices
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}

var _ Model = (*OLSRegression)(nil)
