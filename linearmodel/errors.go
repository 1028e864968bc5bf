package linearmodel

import (
	"errors"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNoDesignMatrix     = errors.New("no design matrix")
	ErrNoTargetArray      = errors.New("no target array")
	ErrNotFitted          = errors.New("model has not been fit")
	ErrDimensionMismatch  = errors.New("design matrix rows do not match target length")
	ErrFeatureLenMismatch = errors.New("number of features does not match number of model coefficients")
	ErrSingularMatrix     = errors.New("regressor gram matrix is singular")
	ErrInvalidDOF         = errors.New("degrees of freedom must be positive")
	ErrLabelLenMismatch   = errors.New("number of labels does not match number of coefficients")
)
