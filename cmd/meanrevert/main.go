package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aouyang1/go-meanrevert"
	"github.com/aouyang1/go-meanrevert/autoregressive"
	"github.com/aouyang1/go-meanrevert/stationarity"
	"github.com/goccy/go-json"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var ErrEmptySeries = errors.New("no values in series")

var (
	configFile  string
	seed        uint64
	steps       int
	jsonFile    string
	plotFile    string
	asciiChart  bool
	profileDir  string
	quiet       bool
	series      string
	maxLag      int
	trend       bool
	regression  string
	forecastLen int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "meanrevert",
		Short:        "simulate and analyse mean reverting processes",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if quiet {
				level = slog.LevelWarn
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log warnings and errors")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate the configured processes and print the analysis",
		Args:  cobra.NoArgs,
		RunE:  runAnalysis,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Uint64Var(&seed, "seed", 0, "random seed, overrides the config")
	runCmd.Flags().IntVar(&steps, "steps", 0, "number of simulation steps, overrides the config")
	runCmd.Flags().StringVar(&jsonFile, "json", "", "write the report as json to this path, - for stdout")
	runCmd.Flags().StringVar(&plotFile, "plot", "", "write an html plot of the paths to this path")
	runCmd.Flags().BoolVar(&asciiChart, "ascii", false, "draw the simulated paths in the terminal")
	runCmd.Flags().StringVar(&profileDir, "profile", "", "write a cpu profile to this directory")

	arCmd := &cobra.Command{
		Use:   "ar",
		Short: "fit an AR(p) model to a comma separated series",
		Args:  cobra.NoArgs,
		RunE:  runAR,
	}
	arCmd.Flags().StringVar(&series, "series", "", "comma separated values")
	arCmd.Flags().IntVar(&maxLag, "lag", 1, "autoregressive order")
	arCmd.Flags().BoolVar(&trend, "trend", true, "include a constant")
	arCmd.Flags().IntVar(&forecastLen, "forecast", 0, "number of steps to forecast")
	arCmd.MarkFlagRequired("series")

	adfCmd := &cobra.Command{
		Use:   "adf",
		Short: "run an augmented Dickey-Fuller test on a comma separated series",
		Args:  cobra.NoArgs,
		RunE:  runADF,
	}
	adfCmd.Flags().StringVar(&series, "series", "", "comma separated values")
	adfCmd.Flags().IntVar(&maxLag, "lag", 1, "number of lagged differences")
	adfCmd.Flags().StringVar(&regression, "regression", string(stationarity.RegressionNone), "deterministic terms: nc, c or ct")
	adfCmd.MarkFlagRequired("series")

	rootCmd.AddCommand(runCmd, arCmd, adfCmd)
	return rootCmd
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	if profileDir != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(profileDir), profile.Quiet).Stop()
	}

	opt := meanrevert.NewDefaultOptions()
	if configFile != "" {
		var err error
		opt, err = meanrevert.LoadOptions(configFile)
		if err != nil {
			return err
		}
		slog.Info("loaded config", "path", configFile)
	}
	if cmd.Flags().Changed("seed") {
		opt.Seed = seed
	}
	if cmd.Flags().Changed("steps") {
		opt.Steps = steps
	}

	report, err := meanrevert.Run(opt)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonFile == "-" {
		return report.WriteJSON(out)
	}

	if err := report.TablePrint(out); err != nil {
		return err
	}

	if asciiChart {
		fmt.Fprintln(out)
		fmt.Fprintln(out, meanrevert.ASCIIPaths(report.Paths, 15, 100))
	}

	if jsonFile != "" {
		if err := writeFile(jsonFile, report.WriteJSON); err != nil {
			return fmt.Errorf("unable to write report, %w", err)
		}
		slog.Info("wrote report", "path", jsonFile)
	}
	if plotFile != "" {
		if err := writeFile(plotFile, func(w io.Writer) error {
			return meanrevert.PlotReport(w, report)
		}); err != nil {
			return fmt.Errorf("unable to write plot, %w", err)
		}
		slog.Info("wrote plot", "path", plotFile)
	}
	return nil
}

func runAR(cmd *cobra.Command, args []string) error {
	y, err := parseSeries(series)
	if err != nil {
		return err
	}

	model, err := autoregressive.New(&autoregressive.Options{MaxLag: maxLag, Trend: trend})
	if err != nil {
		return err
	}
	if err := model.Fit(y); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := model.Results().TablePrint(out, model.Labels()); err != nil {
		return err
	}

	if forecastLen > 0 {
		forecast, err := model.Forecast(forecastLen)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "forecast: %s\n", formatSeries(forecast))
	}
	return nil
}

func runADF(cmd *cobra.Command, args []string) error {
	y, err := parseSeries(series)
	if err != nil {
		return err
	}

	res, err := stationarity.ADF(y, &stationarity.ADFOptions{
		MaxLag:     maxLag,
		Regression: stationarity.Regression(regression),
	})
	if err != nil {
		return err
	}

	bytes, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(bytes))
	return nil
}

// parseSeries reads comma separated floats, ignoring surrounding whitespace and empty fields
func parseSeries(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	y := make([]float64, 0, len(fields))
	for i, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("unable to parse value %d of series, %w", i, err)
		}
		y = append(y, v)
	}
	if len(y) == 0 {
		return nil, ErrEmptySeries
	}
	return y, nil
}

func formatSeries(y []float64) string {
	vals := make([]string, 0, len(y))
	for _, v := range y {
		vals = append(vals, strconv.FormatFloat(v, 'f', 4, 64))
	}
	return strings.Join(vals, ", ")
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
