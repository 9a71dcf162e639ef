// Package tsio reads and writes the plain-text files the command-line tools
// exchange: time series (time, flux and optional weight columns), power
// spectra, CLEAN logs and oscillation mode catalogues. Files may be
// compressed; the scheme is chosen from the extension.
package tsio
