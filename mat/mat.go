// Package mat holds small helpers for building gonum design matrices from raw series
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch   = errors.New("column size mismatch")
	ErrInvalidLag    = errors.New("lag must be at least 1")
	ErrSeriesTooLong = errors.New("lag leaves no complete rows in series")
	ErrEmptySeries   = errors.New("series has no observations")
)

// NewDenseFromArray flattens a row-major 2D slice into a dense matrix. All rows must have the same
// number of columns.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if n < 0 {
		n = 0
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// LagMatrix stacks maxLag lagged copies of series, dropping the leading rows that would reach before
// the start of the series. Row i lines up with series[i+maxLag] and column j holds lag j+1.
func LagMatrix(series []float64, maxLag int) (*mat.Dense, error) {
	if maxLag < 1 {
		return nil, fmt.Errorf("got lag of %d, %w", maxLag, ErrInvalidLag)
	}
	n := len(series)
	if maxLag >= n {
		return nil, fmt.Errorf("lag of %d with %d observations, %w", maxLag, n, ErrSeriesTooLong)
	}

	m := n - maxLag
	x := mat.NewDense(m, maxLag, nil)
	for j := 0; j < maxLag; j++ {
		x.SetCol(j, series[maxLag-j-1:n-j-1])
	}
	return x, nil
}

// AddConstant returns a copy of x with a column of ones either prepended or appended
func AddConstant(x mat.Matrix, prepend bool) *mat.Dense {
	m, n := x.Dims()

	ones := make([]float64, m)
	floats.AddConst(1.0, ones)

	out := mat.NewDense(m, n+1, nil)
	offset := 0
	constCol := n
	if prepend {
		offset = 1
		constCol = 0
	}
	out.SetCol(constCol, ones)
	for j := 0; j < n; j++ {
		out.SetCol(j+offset, mat.Col(nil, j, x))
	}
	return out
}

// AddColumn returns a copy of x with col appended as the last column. The column length must match
// the number of rows in x.
func AddColumn(x mat.Matrix, col []float64) (*mat.Dense, error) {
	m, n := x.Dims()
	if len(col) != m {
		return nil, fmt.Errorf("column has %d values and matrix has %d rows, %w", len(col), m, ErrColMismatch)
	}

	out := mat.NewDense(m, n+1, nil)
	for j := 0; j < n; j++ {
		out.SetCol(j, mat.Col(nil, j, x))
	}
	out.SetCol(n, col)
	return out, nil
}

// Diff returns the first differences of series, one element shorter than the input
func Diff(series []float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}
	d := make([]float64, len(series)-1)
	floats.SubTo(d, series[1:], series[:len(series)-1])
	return d, nil
}
