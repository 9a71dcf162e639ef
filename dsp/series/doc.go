// Package series holds the time-series value consumed by the periodogram
// engine together with the conditioning steps applied before a fit: unit
// normalization of the timestamps and mean removal of the measurements.
//
// Frequencies in this module are expressed in microhertz, so timestamps are
// normalized to megaseconds. The product frequency*time is then a pure number
// of cycles and ω·t = 2π·f·t needs no further scaling.
//
// Every function returns new slices; inputs are never modified.
package series
