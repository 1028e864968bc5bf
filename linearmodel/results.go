package linearmodel

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/mat"
)

// Results is the outcome of a single OLS estimation. It is never modified after creation and every
// accessor hands back a copy.
type Results struct {
	coef      []float64
	resid     []float64
	nobs      int
	dof       int
	ssr       float64
	scale     float64
	covParams *mat.Dense
	bse       []float64
	tvalues   []float64
}

// Coef returns the estimated coefficients in design matrix column order
func (r *Results) Coef() []float64 {
	return copySlice(r.coef)
}

// Resid returns y - X*beta
func (r *Results) Resid() []float64 {
	return copySlice(r.resid)
}

// NObs is the number of observations used in the fit
func (r *Results) NObs() int {
	return r.nobs
}

// DOF is the residual degrees of freedom used to scale the residual variance
func (r *Results) DOF() int {
	return r.dof
}

// SSR is the sum of squared residuals
func (r *Results) SSR() float64 {
	return r.ssr
}

// Scale is the unbiased estimate of the noise variance, SSR / DOF
func (r *Results) Scale() float64 {
	return r.scale
}

// CovParams returns the parameter covariance matrix
func (r *Results) CovParams() *mat.Dense {
	return mat.DenseCopyOf(r.covParams)
}

// BSE returns the standard error of each coefficient
func (r *Results) BSE() []float64 {
	return copySlice(r.bse)
}

// TValues returns coefficient / standard error. Entries are NaN where the standard error is zero.
func (r *Results) TValues() []float64 {
	return copySlice(r.tvalues)
}

// MarshalJSON encodes the results, writing undefined t-values as null
func (r *Results) MarshalJSON() ([]byte, error) {
	k, _ := r.covParams.Dims()
	cov := make([][]float64, k)
	for i := 0; i < k; i++ {
		cov[i] = mat.Row(nil, i, r.covParams)
	}
	return json.Marshal(
		struct {
			Coef      []float64   `json:"coef"`
			Resid     []float64   `json:"resid"`
			NObs      int         `json:"nobs"`
			DOF       int         `json:"dof"`
			SSR       float64     `json:"ssr"`
			Scale     float64     `json:"scale"`
			CovParams [][]float64 `json:"cov_params"`
			BSE       []float64   `json:"bse"`
			TValues   []*float64  `json:"tvalues"`
		}{
			Coef:      r.coef,
			Resid:     r.resid,
			NObs:      r.nobs,
			DOF:       r.dof,
			SSR:       r.ssr,
			Scale:     r.scale,
			CovParams: cov,
			BSE:       r.bse,
			TValues:   nullable(r.tvalues),
		},
	)
}

// TablePrint writes a coefficient table. Labels name each coefficient and default to x0, x1, ...
// when nil.
func (r *Results) TablePrint(w io.Writer, labels []string) error {
	if labels == nil {
		labels = make([]string, len(r.coef))
		for i := range labels {
			labels[i] = "x" + strconv.Itoa(i)
		}
	}
	if len(labels) != len(r.coef) {
		return fmt.Errorf("got %d labels for %d coefficients, %w", len(labels), len(r.coef), ErrLabelLenMismatch)
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"", "coef", "std err", "t"})
	for i, label := range labels {
		table.Append([]string{
			label,
			formatFloat(r.coef[i]),
			formatFloat(r.bse[i]),
			formatFloat(r.tvalues[i]),
		})
	}
	table.SetFooter([]string{
		"nobs " + strconv.Itoa(r.nobs),
		"dof " + strconv.Itoa(r.dof),
		"ssr " + formatFloat(r.ssr),
		"scale " + formatFloat(r.scale),
	})
	table.Render()
	return nil
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func nullable(vals []float64) []*float64 {
	out := make([]*float64, len(vals))
	for i := range vals {
		if math.IsNaN(vals[i]) || math.IsInf(vals[i], 0) {
			continue
		}
		v := vals[i]
		out[i] = &v
	}
	return out
}

func copySlice(src []float64) []float64 {
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}
