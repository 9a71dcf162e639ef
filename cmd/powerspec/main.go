// Command powerspec computes the least-squares power spectrum of an unevenly
// sampled time series.
//
// Usage:
//
//	powerspec [flags] INPUT OUTPUT
//
// INPUT holds two columns (time, flux), or three with -w (time, flux,
// weight). OUTPUT receives "frequency power" rows with frequencies in µHz.
// Files ending in .gz, .zst or .sz are compressed transparently.
//
// Examples:
//
//	powerspec --auto data.txt spectrum.txt
//	powerspec --low 1500 --high 4000 --oversample 2 data.txt spectrum.txt
//	powerspec -w -t d --auto --plot spectrum.png --reference modes.dat data.txt spectrum.txt
package main

import (
	"context"
	"path/filepath"

	"github.com/cwbudde/algo-periodogram/internal/cli"
	"github.com/cwbudde/algo-periodogram/internal/config"
	"github.com/cwbudde/algo-periodogram/internal/tsio"
	"github.com/cwbudde/algo-periodogram/stats/spectrum"
)

func main() {
	cmd := cli.New("powerspec", "[flags] INPUT OUTPUT", 2,
		config.AddInputFlags,
		config.AddEngineFlags,
		config.AddSamplingFlags,
		config.AddCacheFlags,
		config.AddPlotFlags,
	)
	cmd.Main(func(ctx context.Context) error {
		return run(ctx, cmd, cmd.Args[0], cmd.Args[1])
	})
}

func run(ctx context.Context, cmd *cli.Command, input, output string) error {
	ts, err := cmd.ReadSeries(input)
	if err != nil {
		return err
	}
	if _, err := cmd.Describe(ts); err != nil {
		return err
	}
	g, err := cmd.Grid(ts)
	if err != nil {
		return err
	}

	spec, err := cmd.Spectrum(ctx, ts, g)
	if err != nil {
		return err
	}

	st := spectrum.FromSpectrum(spec)
	cmd.Log.Info().
		Float64("peak", st.PeakFrequency).
		Float64("power", st.Max).
		Float64("peak_to_median", st.PeakToMedian).
		Msg("strongest frequency")

	cmd.Log.Info().Str("file", output).Msg("saving power spectrum")
	if err := tsio.WriteSpectrumFile(output, spec); err != nil {
		return err
	}
	return cmd.Plot(spec, filepath.Base(input))
}
