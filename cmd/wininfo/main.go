// Command wininfo prints properties of the spectral window of time series:
// the power spectrum of a pure sinusoid at --f0 sampled exactly like the data.
//
// Usage:
//
//	wininfo [flags] INPUT ...
//
// The window is evaluated on [f0-half-width, f0+half-width). Without --step
// the grid uses --oversample times the natural resolution of each series.
//
// Examples:
//
//	wininfo data.txt
//	wininfo --f0 3000 --half-width 20 -t d campaign1.txt campaign2.txt
//	wininfo -w --plot window.png data.txt
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/series"
	"github.com/cwbudde/algo-periodogram/dsp/specwindow"
	"github.com/cwbudde/algo-periodogram/internal/cli"
	"github.com/cwbudde/algo-periodogram/internal/config"
	"github.com/cwbudde/algo-periodogram/stats/spectrum"
)

func main() {
	cmd := cli.New("wininfo", "[flags] INPUT ...", -1,
		config.AddInputFlags,
		config.AddEngineFlags,
		config.AddSamplingFlags,
		config.AddWindowFlags,
		config.AddPlotFlags,
	)
	cmd.Main(func(ctx context.Context) error {
		if len(cmd.Args) == 0 {
			return fmt.Errorf("%w: want at least one INPUT", cli.ErrUsage)
		}
		return run(ctx, cmd, cmd.Args)
	})
}

type row struct {
	name  string
	n     int
	sum   float64
	stats spectrum.Stats
}

func run(ctx context.Context, cmd *cli.Command, inputs []string) error {
	wc := cmd.Config.Window
	rows := make([]row, 0, len(inputs))

	for _, input := range inputs {
		ts, err := cmd.ReadSeries(input)
		if err != nil {
			return err
		}
		g, err := windowGrid(cmd, ts)
		if err != nil {
			return err
		}

		cmd.Log.Info().Str("file", input).Float64("f0", wc.F0).Int("frequencies", g.Len()).Msg("calculating window function")
		w, err := specwindow.ComputeSeries(ctx, ts, g, wc.F0, cmd.Options(ts)...)
		if err != nil {
			return err
		}

		st := spectrum.FromSpectrum(w)
		rows = append(rows, row{name: filepath.Base(input), n: ts.Len(), sum: st.Sum, stats: st})

		if len(inputs) == 1 {
			if err := cmd.Plot(w, fmt.Sprintf("window of %s at %s", filepath.Base(input), fmtFreq(wc.F0))); err != nil {
				return err
			}
		}
	}

	printAnalysis(rows, wc.F0)
	return nil
}

// windowGrid centres the grid on f0, using the configured step or the
// oversampled resolution of ts.
func windowGrid(cmd *cli.Command, ts series.TimeSeries) (grid.Grid, error) {
	wc, sc := cmd.Config.Window, cmd.Config.Sampling
	step := sc.Step
	if step <= 0 {
		t, err := series.Normalize(ts.Time, cmd.Config.Input.Unit)
		if err != nil {
			return grid.Grid{}, err
		}
		if len(t) < 2 || t[len(t)-1] <= t[0] || sc.Oversample <= 0 {
			return grid.Grid{}, &grid.InvalidRangeError{Low: wc.F0 - wc.HalfWidth, High: wc.F0 + wc.HalfWidth}
		}
		step = 1 / (sc.Oversample * (t[len(t)-1] - t[0]))
	}
	return specwindow.Centered(wc.F0, wc.HalfWidth, step)
}

func fmtFreq(f float64) string { return fmt.Sprintf("%.2f µHz", f) }

func printAnalysis(rows []row, f0 float64) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Series\tPoints\tf0 [µHz]\tSum\tPeak\tPeak at [µHz]\tFWHM [µHz]\tMain lobe [µHz]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "------\t------\t--------\t---\t----\t-------------\t----------\t---------------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.4f\t%.6f\t%.3f\t%.4f\t%.3f .. %.3f\n",
			r.name,
			r.n,
			f0,
			r.sum,
			r.stats.Max,
			r.stats.PeakFrequency,
			r.stats.HalfPowerWidth,
			r.stats.MainLobeLow,
			r.stats.MainLobeHigh,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
