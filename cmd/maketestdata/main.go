// Command maketestdata synthesizes time series from a list of oscillation
// modes, one file per campaign length.
//
// Usage:
//
//	maketestdata [flags] --modes FILE
//
// The mode list is either the "l n frequency amplitude phase" catalogue or a
// YAML document (.yaml/.yml). Each campaign is written to
// DIR/ts_<days>days.txt with times in seconds.
//
// Examples:
//
//	maketestdata --modes oscillations.dat
//	maketestdata --modes modes.yaml --days 7 --noise 0.5 --keep 0.8
package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-periodogram/dsp/signal"
	"github.com/cwbudde/algo-periodogram/internal/cli"
	"github.com/cwbudde/algo-periodogram/internal/tsio"
)

type options struct {
	modes   string
	days    []int
	dir     string
	cadence float64
	noise   float64
	keep    float64
	seed    int64
}

func main() {
	var o options
	cmd := cli.New("maketestdata", "[flags] --modes FILE", 0, func(fs *pflag.FlagSet) {
		fs.StringVar(&o.modes, "modes", "", "mode list (catalogue or YAML)")
		fs.IntSliceVar(&o.days, "days", []int{1, 7, 14, 30}, "campaign lengths in days")
		fs.StringVar(&o.dir, "dir", ".", "output directory")
		fs.Float64Var(&o.cadence, "cadence", 60, "sampling interval in seconds")
		fs.Float64Var(&o.noise, "noise", 0, "amplitude of uniform white noise")
		fs.Float64Var(&o.keep, "keep", 1, "fraction of samples kept (below 1 adds random gaps)")
		fs.Int64Var(&o.seed, "seed", 1, "random seed for noise and gaps")
	})
	cmd.Main(func(ctx context.Context) error {
		if o.modes == "" {
			return fmt.Errorf("%w: --modes is required", cli.ErrUsage)
		}
		return run(ctx, cmd, o)
	})
}

func run(ctx context.Context, cmd *cli.Command, o options) error {
	modes, err := tsio.LoadModes(o.modes)
	if err != nil {
		return err
	}
	cmd.Log.Info().Int("modes", len(modes)).Str("file", o.modes).Msg("loaded modes")

	gen := signal.NewGenerator(signal.WithCadence(o.cadence), signal.WithSeed(o.seed))
	for _, days := range o.days {
		if err := ctx.Err(); err != nil {
			return err
		}

		ts, err := gen.Series(gen.DaysDuration(float64(days)), modes)
		if err != nil {
			return err
		}
		if o.noise > 0 {
			if ts, err = gen.AddNoise(ts, o.noise); err != nil {
				return err
			}
		}
		if o.keep < 1 {
			if ts, err = gen.Gapped(ts, o.keep); err != nil {
				return err
			}
		}

		path := filepath.Join(o.dir, "ts_"+strconv.Itoa(days)+"days.txt")
		if err := tsio.WriteSeriesFile(path, ts); err != nil {
			return err
		}
		cmd.Log.Info().
			Int("days", days).
			Str("points", humanize.Comma(int64(ts.Len()))).
			Str("file", path).
			Msg("saved time series")
	}
	return nil
}
