// Command makeweights derives statistical weights from a scatter series and
// attaches them to a data series as a third column.
//
// Usage:
//
//	makeweights [flags] DATA SCATTER OUTPUT
//
// Each weight is the inverse of the moving population variance of the
// scatter over the trailing --window samples. DATA and SCATTER must share
// their time points; the first --drop samples are left out of OUTPUT.
package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-periodogram/internal/cli"
	"github.com/cwbudde/algo-periodogram/internal/tsio"
	"github.com/cwbudde/algo-periodogram/measure/weights"
)

func main() {
	def := weights.DefaultConfig()
	var wc weights.Config
	cmd := cli.New("makeweights", "[flags] DATA SCATTER OUTPUT", 3, func(fs *pflag.FlagSet) {
		fs.IntVar(&wc.Window, "window", def.Window, "moving variance window in samples")
		fs.IntVar(&wc.MinCount, "min-count", def.MinCount, "minimum samples for a variance")
		fs.IntVar(&wc.Drop, "drop", def.Drop, "leading samples left out of the output")
	})
	cmd.Main(func(ctx context.Context) error {
		return run(cmd, wc, cmd.Args[0], cmd.Args[1], cmd.Args[2])
	})
}

func run(cmd *cli.Command, wc weights.Config, dataPath, scatterPath, output string) error {
	calc, err := weights.NewCalculator(wc)
	if err != nil {
		return err
	}

	cmd.Log.Info().Str("file", dataPath).Msg("reading data")
	data, err := tsio.ReadSeriesFile(dataPath, false)
	if err != nil {
		return err
	}
	cmd.Log.Info().Str("file", scatterPath).Msg("reading scatter")
	scatter, err := tsio.ReadSeriesFile(scatterPath, false)
	if err != nil {
		return err
	}

	cfg := calc.Config()
	cmd.Log.Info().Int("window", cfg.Window).Int("drop", cfg.Drop).Msg("calculating weights")
	out, err := calc.Apply(data, scatter)
	if err != nil {
		return err
	}

	cmd.Log.Info().Str("file", output).Int("points", out.Len()).Msg("saving weighted series")
	return tsio.WriteSeriesFile(output, out)
}
