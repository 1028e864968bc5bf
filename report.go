package meanrevert

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/aouyang1/go-meanrevert/linearmodel"
	"github.com/aouyang1/go-meanrevert/stationarity"
	"github.com/aouyang1/go-meanrevert/stats"
	"github.com/aouyang1/go-meanrevert/timedataset"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
)

// Summary holds descriptive statistics of a simulated path
type Summary struct {
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	First float64 `json:"first"`
	Last  float64 `json:"last"`
}

// ARReport is the AR(p) cross check on the leading points of a path
type ARReport struct {
	Labels   []string             `json:"labels"`
	Actual   []float64            `json:"actual"`
	Fitted   []float64            `json:"fitted"`
	Forecast []float64            `json:"forecast,omitempty"`
	Results  *linearmodel.Results `json:"regression_results"`
	VIF      stats.VIF            `json:"vif,omitempty"`
}

// ProcessReport collects every analysis of a single simulated path
type ProcessReport struct {
	Name    string                  `json:"name"`
	Params  timedataset.OUOptions   `json:"params"`
	Summary Summary                 `json:"summary"`
	ADFHead *stationarity.ADFResult `json:"adf_head"`
	ADF     *stationarity.ADFResult `json:"adf"`
	AR      *ARReport               `json:"ar"`
	OU      *OUEstimate             `json:"ou,omitempty"`
}

// Report is the outcome of a Run
type Report struct {
	Options   *Options                   `json:"options"`
	Paths     []*timedataset.TimeDataset `json:"paths"`
	Processes []*ProcessReport           `json:"processes"`
}

// WriteJSON writes the indented report to w
func (r *Report) WriteJSON(w io.Writer) error {
	bytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode report, %w", err)
	}
	if _, err := w.Write(bytes); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// TablePrint writes a summary table of every process followed by the AR coefficient table of each
func (r *Report) TablePrint(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{
		"process", "theta", "theta est", "mu", "mu est", "sigma", "sigma est", "half-life",
		"adf head", "adf path", "stationary",
	})
	for _, pr := range r.Processes {
		row := []string{
			pr.Name,
			formatFloat(pr.Params.Theta),
			"-",
			formatFloat(pr.Params.Mu),
			"-",
			formatFloat(pr.Params.Sigma),
			"-",
			"-",
			formatADF(pr.ADFHead),
			formatADF(pr.ADF),
			strconv.FormatBool(pr.ADF != nil && pr.ADF.IsStationary),
		}
		if pr.OU != nil {
			row[2] = formatFloat(pr.OU.Theta)
			row[4] = formatFloat(pr.OU.Mu)
			row[6] = formatFloat(pr.OU.Sigma)
			row[7] = formatFloat(pr.OU.HalfLife)
		}
		table.Append(row)
	}
	table.Render()

	for _, pr := range r.Processes {
		if pr.AR == nil || pr.AR.Results == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s AR(%d) on first %d points:\n",
			pr.Name, r.Options.AROptions.MaxLag, r.Options.CompareHead); err != nil {
			return err
		}
		if err := pr.AR.Results.TablePrint(w, pr.AR.Labels); err != nil {
			return err
		}
		if len(pr.AR.VIF) > 0 {
			if _, err := fmt.Fprintf(w, "lag VIF: %s\n", formatVIF(pr.AR.VIF)); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatADF(res *stationarity.ADFResult) string {
	if res == nil {
		return "-"
	}
	return formatFloat(res.Statistic)
}

func formatVIF(vif stats.VIF) string {
	labels := make([]string, 0, len(vif))
	for label := range vif {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var out string
	for i, label := range labels {
		if i > 0 {
			out += ", "
		}
		out += label + "=" + formatFloat(vif[label])
	}
	return out
}
