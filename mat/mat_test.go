package mat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewDenseFromArray(t *testing.T) {
	testData := map[string]struct {
		err error
		x   [][]float64
		m   int
		n   int
	}{
		"nil input": {
			mat.ErrZeroLength,
			nil,
			0, 0,
		},
		"empty input": {
			mat.ErrZeroLength,
			[][]float64{},
			0, 0,
		},
		"single element": {
			nil,
			[][]float64{{1}},
			1, 1,
		},
		"one row multiple cols": {
			nil,
			[][]float64{{1, 2, 3}},
			1, 3,
		},
		"multiple rows and cols": {
			nil,
			[][]float64{{1, 2, 3}, {4, 5, 6}},
			2, 3,
		},
		"inconsistent cols": {
			ErrColMismatch,
			[][]float64{{1, 2, 3}, {4, 5}},
			0, 0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				if td.err != nil && r != nil {
					err, ok := r.(error)
					require.True(t, ok, "panic is not an error")
					assert.ErrorAs(t, err, &td.err)
				}
			}()
			mx, err := NewDenseFromArray(td.x)
			if td.err != nil {
				require.ErrorAs(t, err, &td.err)
				return
			}
			require.Nil(t, err)

			m, n := mx.Dims()
			assert.Equal(t, td.m, m, "m")
			assert.Equal(t, td.n, n, "n")

			for ri, row := range td.x {
				assert.Equal(t, row, mat.Row(nil, ri, mx), "array")
			}
		})
	}
}

func TestLagMatrix(t *testing.T) {
	series := []float64{1, 2, 3, 4, 5, 6}

	testData := map[string]struct {
		maxLag   int
		expected [][]float64
		err      error
	}{
		"lag one": {
			maxLag:   1,
			expected: [][]float64{{1}, {2}, {3}, {4}, {5}},
		},
		"lag three": {
			maxLag: 3,
			expected: [][]float64{
				{3, 2, 1},
				{4, 3, 2},
				{5, 4, 3},
			},
		},
		"largest lag": {
			maxLag:   5,
			expected: [][]float64{{5, 4, 3, 2, 1}},
		},
		"zero lag": {
			maxLag: 0,
			err:    ErrInvalidLag,
		},
		"lag equal to length": {
			maxLag: 6,
			err:    ErrSeriesTooLong,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := LagMatrix(series, td.maxLag)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)

			m, n := x.Dims()
			require.Equal(t, len(td.expected), m, "rows")
			require.Equal(t, td.maxLag, n, "cols")
			for i, row := range td.expected {
				assert.Equal(t, row, mat.Row(nil, i, x), "row %d", i)
			}
		})
	}
}

func TestAddConstant(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{2, 3, 4, 5})

	prepended := AddConstant(x, true)
	assert.Equal(t, []float64{1, 2, 3}, mat.Row(nil, 0, prepended))
	assert.Equal(t, []float64{1, 4, 5}, mat.Row(nil, 1, prepended))

	appended := AddConstant(x, false)
	assert.Equal(t, []float64{2, 3, 1}, mat.Row(nil, 0, appended))
	assert.Equal(t, []float64{4, 5, 1}, mat.Row(nil, 1, appended))

	// source is untouched
	assert.Equal(t, []float64{2, 3}, mat.Row(nil, 0, x))
}

func TestAddColumn(t *testing.T) {
	x := mat.NewDense(2, 1, []float64{2, 4})

	out, err := AddColumn(x, []float64{7, 8})
	require.Nil(t, err)
	assert.Equal(t, []float64{2, 7}, mat.Row(nil, 0, out))
	assert.Equal(t, []float64{4, 8}, mat.Row(nil, 1, out))

	_, err = AddColumn(x, []float64{1})
	assert.ErrorIs(t, err, ErrColMismatch)
}

func TestDiff(t *testing.T) {
	d, err := Diff([]float64{1, 4, 2, 2})
	require.Nil(t, err)
	assert.Equal(t, []float64{3, -2, 0}, d)

	d, err = Diff([]float64{5})
	require.Nil(t, err)
	assert.Empty(t, d)

	_, err = Diff(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}
