// Command fclean removes the strongest frequencies from a time series one at
// a time (iterative prewhitening).
//
// Usage:
//
//	fclean [flags] -n N INPUT OUTPUT
//
// OUTPUT receives the cleaned series in the time unit of INPUT; the removed
// frequencies are logged to OUTPUT.cleanlog.
//
// Examples:
//
//	fclean -n 10 --auto data.txt cleaned.txt
//	fclean -n 3 -w --low 1500 --high 4000 --refine data.txt cleaned.txt
package main

import (
	"context"
	"errors"

	"github.com/cwbudde/algo-periodogram/dsp/clean"
	"github.com/cwbudde/algo-periodogram/internal/cli"
	"github.com/cwbudde/algo-periodogram/internal/config"
	"github.com/cwbudde/algo-periodogram/internal/tsio"
)

const logSuffix = ".cleanlog"

func main() {
	cmd := cli.New("fclean", "[flags] -n N INPUT OUTPUT", 2,
		config.AddInputFlags,
		config.AddEngineFlags,
		config.AddSamplingFlags,
		config.AddCleanFlags,
	)
	cmd.Main(func(ctx context.Context) error {
		return run(ctx, cmd, cmd.Args[0], cmd.Args[1])
	})
}

func run(ctx context.Context, cmd *cli.Command, input, output string) (err error) {
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

	cleaner, err := clean.New(g, cmd.Config.Clean.Count,
		clean.WithRefinement(cmd.Config.Clean.Refine),
		clean.WithPeriodogramOptions(cmd.Options(ts)...),
	)
	if err != nil {
		return err
	}

	cmd.Log.Info().
		Int("count", cleaner.Count()).
		Bool("weights", ts.Weighted()).
		Bool("preprocess", cmd.Config.Input.Preprocess).
		Msg("cleaning frequencies")
	res, err := cleaner.Run(ctx, ts)
	if err != nil {
		return err
	}
	for _, c := range res.Components {
		cmd.Log.Info().
			Int("number", c.Number).
			Float64("frequency", c.Frequency).
			Float64("power", c.Power).
			Msg("removed")
	}

	logName := output + logSuffix
	w, err := tsio.Create(logName)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, w.Close()) }()
	if err := tsio.WriteCleanLog(w, tsio.CleanLog{
		Input:      input,
		Low:        g.Low(),
		High:       g.High(),
		Components: res.Components,
	}); err != nil {
		return err
	}

	cmd.Log.Info().Str("file", output).Str("log", logName).Msg("saving cleaned series")
	return tsio.WriteSeriesFile(output, res.Series())
}
