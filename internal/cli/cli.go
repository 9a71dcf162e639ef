// Package cli holds the plumbing shared by the periodogram commands: flag
// parsing into a [config.Config], logging, reading input, building the
// frequency grid and computing spectra through the optional cache.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-periodogram/dsp/grid"
	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
	"github.com/cwbudde/algo-periodogram/dsp/series"
	"github.com/cwbudde/algo-periodogram/internal/cache"
	"github.com/cwbudde/algo-periodogram/internal/config"
	"github.com/cwbudde/algo-periodogram/internal/logging"
	"github.com/cwbudde/algo-periodogram/internal/plot"
	"github.com/cwbudde/algo-periodogram/internal/tsio"
	"github.com/cwbudde/algo-periodogram/stats/sampling"
)

// ErrUsage reports wrong positional arguments.
var ErrUsage = errors.New("wrong number of arguments")

// Command is one invocation of a tool.
type Command struct {
	Name   string
	Flags  *pflag.FlagSet
	Config *config.Config
	Log    zerolog.Logger
	Args   []string

	usage string
	nargs int
}

// New creates a command expecting nargs positional arguments. The common
// flags are always registered; register adds command-specific groups.
func New(name, usage string, nargs int, register ...func(*pflag.FlagSet)) *Command {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	config.AddCommonFlags(fs)
	for _, r := range register {
		r(fs)
	}

	c := &Command{Name: name, Flags: fs, usage: usage, nargs: nargs, Log: zerolog.Nop()}
	fs.Usage = func() { c.PrintUsage(os.Stderr) }
	return c
}

// PrintUsage writes the usage line and flag defaults to w.
func (c *Command) PrintUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage: %s %s\n\nFlags:\n", c.Name, c.usage)
	_, _ = fmt.Fprint(w, c.Flags.FlagUsages())
}

// Parse parses args, loads the configuration and installs the logger.
func (c *Command) Parse(args []string) error {
	if err := c.Flags.Parse(args); err != nil {
		return err
	}
	if c.nargs >= 0 && c.Flags.NArg() != c.nargs {
		return fmt.Errorf("%w: want %d, got %d", ErrUsage, c.nargs, c.Flags.NArg())
	}
	c.Args = c.Flags.Args()

	cfg, err := config.Load(c.Flags)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Log = logging.Setup(c.Name, cfg.Log.Quiet, cfg.Log.Verbose)
	return nil
}

// Main runs fn under a signal-aware context and exits non-zero on failure.
func (c *Command) Main(fn func(ctx context.Context) error) {
	if err := c.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		c.PrintUsage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if err := fn(ctx); err != nil {
		c.Log.Error().Err(err).Msg("failed")
		stop()
		os.Exit(1)
	}
	c.Log.Info().Str("elapsed", time.Since(start).Round(time.Millisecond).String()).Msg("done")
}

// ReadSeries reads a time series, with weights when configured.
func (c *Command) ReadSeries(path string) (series.TimeSeries, error) {
	c.Log.Info().Str("file", path).Bool("weights", c.Config.Input.Weighted).Msg("reading input")
	ts, err := tsio.ReadSeriesFile(path, c.Config.Input.Weighted)
	if err != nil {
		return series.TimeSeries{}, err
	}
	c.Log.Info().Str("points", humanize.Comma(int64(ts.Len()))).Msg("length of time series")
	return ts, nil
}

// Describe logs the sampling summary of ts.
func (c *Command) Describe(ts series.TimeSeries) (sampling.Stats, error) {
	st, err := sampling.Calculate(ts, c.Config.Input.Unit)
	if err != nil {
		return sampling.Stats{}, err
	}
	c.Log.Info().
		Str("nyquist", plot.HumanFrequency(st.Nyquist)).
		Str("resolution", plot.HumanFrequency(st.Resolution)).
		Msg("frequency limits")
	c.Log.Debug().
		Float64("cadence", st.Cadence).
		Int("gaps", st.Gaps).
		Float64("duty", st.DutyCycle).
		Float64("rms", st.RMS).
		Msg("sampling")
	return st, nil
}

// Grid builds the configured frequency grid for ts.
func (c *Command) Grid(ts series.TimeSeries) (grid.Grid, error) {
	t, err := series.Normalize(ts.Time, c.Config.Input.Unit)
	if err != nil {
		return grid.Grid{}, err
	}
	g, err := c.Config.Sampling.Grid(t)
	if err != nil {
		return grid.Grid{}, err
	}
	c.Log.Info().
		Float64("low", g.Low()).
		Float64("high", g.High()).
		Float64("step", g.Step()).
		Str("frequencies", humanize.Comma(int64(g.Len()))).
		Msg("sampling (µHz)")
	return g, nil
}

// Options returns the engine options for ts.
func (c *Command) Options(ts series.TimeSeries) []periodogram.Option {
	return c.Config.PeriodogramOptions(ts.Weight)
}

// Spectrum computes the power spectrum of ts on g, through the cache when a
// cache directory is configured.
func (c *Command) Spectrum(ctx context.Context, ts series.TimeSeries, g grid.Grid) (*periodogram.Spectrum, error) {
	opts := c.Options(ts)
	if c.Config.Cache.Dir == "" {
		c.Log.Info().Msg("calculating power spectrum")
		return periodogram.ComputeSeries(ctx, ts, g, opts...)
	}

	store, err := cache.Open(cache.Config{Path: c.Config.Cache.Dir, TTL: c.Config.Cache.TTL})
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			c.Log.Warn().Err(cerr).Msg("closing cache")
		}
	}()

	spec, hit, err := store.Compute(ctx, ts, g, opts...)
	if err != nil {
		return nil, err
	}
	c.Log.Info().Bool("cached", hit).Str("dir", c.Config.Cache.Dir).Msg("power spectrum ready")
	return spec, nil
}

// Plot renders spec to the configured PNG, marking the reference modes when
// a reference list is configured. It does nothing without a plot path.
func (c *Command) Plot(spec *periodogram.Spectrum, title string) error {
	pc := c.Config.Plot
	if pc.Path == "" {
		return nil
	}

	opts := plot.DefaultOptions()
	opts.Title = title
	opts.LogPower = pc.LogPower
	if pc.Width > 0 {
		opts.Width = pc.Width
	}
	if pc.Height > 0 {
		opts.Height = pc.Height
	}
	if pc.Reference != "" {
		modes, err := tsio.LoadModes(pc.Reference)
		if err != nil {
			return err
		}
		for _, m := range modes {
			opts.Markers = append(opts.Markers, m.Frequency)
		}
		c.Log.Debug().Int("modes", len(modes)).Str("file", pc.Reference).Msg("reference frequencies")
	}

	p, err := plot.New()
	if err != nil {
		return err
	}
	if err := p.SavePNG(pc.Path, spec, opts); err != nil {
		return err
	}
	c.Log.Info().Str("file", pc.Path).Msg("saved plot")
	return nil
}
