package linearmodel

import (
	"errors"
	"fmt"

	mat_ "github.com/aouyang1/go-meanrevert/mat"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var ErrNegativeDOF = errors.New("degrees of freedom override cannot be negative")

// OLSOptions represents input options to run the OLS Regression
type OLSOptions struct {
	// FitIntercept adds a constant 1.0 feature as the first column if set to true
	FitIntercept bool `json:"fit_intercept" yaml:"fit_intercept"`

	// DOF overrides the residual degrees of freedom when positive. Zero derives it from the number of
	// observations minus the number of regressors.
	DOF int `json:"dof" yaml:"dof"`
}

// Validate runs basic validation on OLS options
func (o *OLSOptions) Validate() (*OLSOptions, error) {
	if o == nil {
		o = NewDefaultOLSOptions()
	}
	if o.DOF < 0 {
		return nil, fmt.Errorf("got %d, %w", o.DOF, ErrNegativeDOF)
	}

	return o, nil
}

// NewDefaultOLSOptions returns a default set of OLS Regression options
func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// OLSRegression computes ordinary least squares through the closed form normal equations
type OLSRegression struct {
	opt       *OLSOptions
	res       *Results
	coef      []float64
	intercept float64
}

// NewOLSRegression initializes an ordinary least squares model ready for fitting
func NewOLSRegression(opt *OLSOptions) (*OLSRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &OLSRegression{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data. y is expected to be a single column matrix.
func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if o.opt == nil {
		return ErrNoOptions
	}
	if x == nil {
		return ErrNoDesignMatrix
	}
	if y == nil {
		return ErrNoTargetArray
	}
	m, _ := x.Dims()

	ym, yn := y.Dims()
	if ym != m || yn != 1 {
		return fmt.Errorf("training data has %d rows and target is %dx%d, %w", m, ym, yn, ErrDimensionMismatch)
	}

	if o.opt.FitIntercept {
		x = mat_.AddConstant(x, true)
	}

	var (
		res *Results
		err error
	)
	target := mat.Col(nil, 0, y)
	if o.opt.DOF > 0 {
		res, err = EstimateWithDOF(x, target, o.opt.DOF)
	} else {
		res, err = Estimate(x, target)
	}
	if err != nil {
		return err
	}
	o.res = res

	c := res.Coef()
	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.coef = c[1:]
	} else {
		o.intercept = 0.0
		o.coef = c
	}

	return nil
}

// Predict using the OLS model
func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if o.opt == nil {
		return nil, ErrNoOptions
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}
	if o.res == nil {
		return nil, ErrNotFitted
	}

	coef := o.coef
	if o.opt.FitIntercept {
		coef = append([]float64{o.intercept}, o.coef...)
		x = mat_.AddConstant(x, true)
	}
	n := len(coef)

	m, xn := x.Dims()
	if xn != n {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, n, ErrFeatureLenMismatch)
	}

	res := mat.NewVecDense(m, nil)
	res.MulVec(x, mat.NewVecDense(n, coef))
	return res.RawVector().Data, nil
}

// Score computes the coefficient of determination of the prediction
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if o.opt == nil {
		return 0.0, ErrNoOptions
	}
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetArray
	}

	m, _ := x.Dims()

	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrDimensionMismatch)
	}

	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)

	return stat.RSquaredFrom(res, ySlice, nil), nil
}

// Intercept returns the computed intercept if FitIntercept is set to true. Defaults to 0.0 if not set.
func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

// Coef returns a slice of the trained coefficients in the same order of the training feature Matrix by column.
func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// Results returns the full estimation results of the last fit, including the intercept column as
// the first coefficient when FitIntercept is set. Returns nil before Fit.
func (o *OLSRegression) Results() *Results {
	return o.res
}
