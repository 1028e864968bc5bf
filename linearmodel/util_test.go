package linearmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// fitAndCheck fits an exactly solvable problem and checks the parameters, the in-sample
// predictions and the score
func fitAndCheck(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	t.Helper()

	require.Nil(t, model.Fit(x, y))

	assert.InDelta(t, intercept, model.Intercept(), tol, "intercept")
	assert.InDeltaSlice(t, coef, model.Coef(), tol, "coefficients")

	pred, err := model.Predict(x)
	require.Nil(t, err)
	assert.InDeltaSlice(t, mat.Col(nil, 0, y), pred, tol, "predictions")

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol, "score")
}
