package config

import (
	"github.com/spf13/pflag"
)

// AddCommonFlags registers flags used by every command.
func AddCommonFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfig, "", "YAML configuration file")
	fs.BoolP(KeyQuiet, "q", false, "only log warnings and errors")
	fs.BoolP(KeyVerbose, "v", false, "log debug output")
}

// AddInputFlags registers flags describing the input time series.
func AddInputFlags(fs *pflag.FlagSet) {
	fs.StringP(KeyUnit, "t", "s", "time unit of the input: s, d or ms")
	fs.Bool(KeyNoPrep, false, "do not subtract the mean of the series")
	fs.BoolP(KeyWeights, "w", false, "read statistical weights from a third column")
}

// AddEngineFlags registers periodogram engine flags.
func AddEngineFlags(fs *pflag.FlagSet) {
	fs.String(KeySingular, "abort", "singular fit handling: abort, skip or nan")
	fs.Float64(KeyTolerance, 0, "relative singularity tolerance (0 keeps the default)")
	fs.Int(KeyWorkers, 0, "number of workers (0 uses all CPUs)")
}

// AddSamplingFlags registers frequency grid flags.
func AddSamplingFlags(fs *pflag.FlagSet) {
	fs.Float64(KeyLow, 0, "lowest frequency in µHz")
	fs.Float64(KeyHigh, 0, "upper frequency bound in µHz")
	fs.Float64(KeyStep, 0, "frequency step in µHz (0 derives it from --oversample)")
	fs.Bool(KeyAuto, false, "sample from 5 µHz to the Nyquist frequency")
	fs.Float64(KeyOversample, 4, "oversampling factor relative to 1/baseline")
}

// AddCacheFlags registers spectrum cache flags.
func AddCacheFlags(fs *pflag.FlagSet) {
	fs.String(KeyCacheDir, "", "directory of the spectrum cache (empty disables it)")
	fs.Duration(KeyCacheTTL, 0, "lifetime of cached spectra (0 keeps the default)")
}

// AddPlotFlags registers PNG plot flags.
func AddPlotFlags(fs *pflag.FlagSet) {
	fs.String(KeyPlot, "", "write a PNG plot of the spectrum")
	fs.String(KeyReference, "", "mode list whose frequencies are marked on the plot")
	fs.Int(KeyPlotWidth, 1200, "plot width in pixels")
	fs.Int(KeyPlotHeight, 500, "plot height in pixels")
	fs.Bool(KeyLogPower, false, "logarithmic power axis")
}

// AddCleanFlags registers CLEAN flags.
func AddCleanFlags(fs *pflag.FlagSet) {
	fs.IntP(KeyCount, "n", 1, "number of frequencies to remove")
	fs.Bool(KeyRefine, false, "refine each peak with a golden-section search")
}

// AddWindowFlags registers spectral window flags.
func AddWindowFlags(fs *pflag.FlagSet) {
	fs.Float64(KeyF0, 1000, "window centre frequency in µHz")
	fs.Float64(KeyHalfWidth, 50, "half width of the window range in µHz")
}
