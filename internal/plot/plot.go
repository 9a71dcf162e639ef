// Package plot renders a power spectrum to a PNG image with labelled axes and
// optional reference markers, e.g. the input mode frequencies of synthetic
// data.
package plot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/cwbudde/algo-periodogram/dsp/periodogram"
)

const (
	dpi      float64 = 72
	fontSize float64 = 12

	marginLeft   = 70
	marginRight  = 20
	marginTop    = 30
	marginBottom = 40

	xTicks = 5
	yTicks = 4
)

var (
	errEmpty = errors.New("plot: spectrum is empty")
	errSize  = errors.New("plot: image too small")

	// Colors used by the renderer.
	Background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Foreground = color.RGBA{R: 0x1f, G: 0x4e, B: 0x99, A: 0xff}
	Axis       = color.RGBA{A: 0xff}
	Marker     = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Options control the rendering.
type Options struct {
	Width, Height int
	Title         string
	// LogPower draws log10(power); non-positive powers are clipped.
	LogPower bool
	// Markers are reference frequencies (grid unit) drawn as vertical lines.
	Markers []float64
}

// DefaultOptions returns a 1200×500 linear plot.
func DefaultOptions() Options {
	return Options{Width: 1200, Height: 500}
}

// Plotter draws spectra. A Plotter is not safe for concurrent use.
type Plotter struct {
	context *freetype.Context
}

// New creates a Plotter using the Go regular font.
func New() (*Plotter, error) {
	parsed, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("plot: parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsed)
	ctx.SetFontSize(fontSize)
	ctx.SetHinting(font.HintingFull)
	return &Plotter{context: ctx}, nil
}

// frame maps data coordinates to pixels inside the plot area.
type frame struct {
	x0, x1, y0, y1 int // plot area in pixels, y0 is the top
	fLow, fHigh    float64
	pLow, pHigh    float64
}

func (fr frame) x(f float64) int {
	if fr.fHigh == fr.fLow {
		return fr.x0
	}
	return fr.x0 + int(math.Round((f-fr.fLow)/(fr.fHigh-fr.fLow)*float64(fr.x1-fr.x0)))
}

func (fr frame) y(p float64) int {
	if fr.pHigh == fr.pLow {
		return fr.y1
	}
	return fr.y1 - int(math.Round((p-fr.pLow)/(fr.pHigh-fr.pLow)*float64(fr.y1-fr.y0)))
}

// Render draws spec into a new image.
func (p *Plotter) Render(spec *periodogram.Spectrum, opts Options) (*image.RGBA, error) {
	if spec == nil || spec.Len() == 0 {
		return nil, errEmpty
	}
	if opts.Width < marginLeft+marginRight+10 || opts.Height < marginTop+marginBottom+10 {
		return nil, errSize
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	values := p.values(spec, opts.LogPower)
	fr := newFrame(spec, values, opts)

	p.drawBars(img, fr, spec, values)
	for _, m := range opts.Markers {
		if m >= fr.fLow && m <= fr.fHigh {
			vline(img, fr.x(m), fr.y0, fr.y1, Marker, 2)
		}
	}
	drawAxes(img, fr)

	p.context.SetClip(img.Bounds())
	p.context.SetDst(img)
	p.context.SetSrc(image.NewUniform(Axis))
	if err := p.drawLabels(fr, spec, opts); err != nil {
		return nil, err
	}
	return img, nil
}

// WritePNG renders spec and encodes it as PNG.
func (p *Plotter) WritePNG(w io.Writer, spec *periodogram.Spectrum, opts Options) error {
	img, err := p.Render(spec, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG renders spec into the file at path.
func (p *Plotter) SavePNG(path string, spec *periodogram.Spectrum, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return p.WritePNG(f, spec, opts)
}

func (p *Plotter) values(spec *periodogram.Spectrum, logPower bool) []float64 {
	v := spec.Powers()
	if !logPower {
		return v
	}

	floor := math.Inf(1)
	for _, x := range v {
		if x > 0 && x < floor {
			floor = x
		}
	}
	for i, x := range v {
		switch {
		case x > 0:
			v[i] = math.Log10(x)
		case math.IsNaN(x):
		default:
			v[i] = math.Log10(floor)
		}
	}
	return v
}

func newFrame(spec *periodogram.Spectrum, values []float64, opts Options) frame {
	fr := frame{
		x0:    marginLeft,
		x1:    opts.Width - marginRight,
		y0:    marginTop,
		y1:    opts.Height - marginBottom,
		fLow:  spec.Frequency(0),
		fHigh: spec.Frequency(spec.Len() - 1),
		pLow:  math.Inf(1),
		pHigh: math.Inf(-1),
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		fr.pLow = min(fr.pLow, v)
		fr.pHigh = max(fr.pHigh, v)
	}
	if math.IsInf(fr.pLow, 1) {
		fr.pLow, fr.pHigh = 0, 1
	}
	if !opts.LogPower {
		fr.pLow = min(fr.pLow, 0)
	}
	return fr
}

// drawBars draws, for every pixel column, a bar up to the largest value that
// maps onto it.
func (p *Plotter) drawBars(img *image.RGBA, fr frame, spec *periodogram.Spectrum, values []float64) {
	width := fr.x1 - fr.x0 + 1
	top := make([]float64, width)
	for i := range top {
		top[i] = math.NaN()
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		col := fr.x(spec.Frequency(i)) - fr.x0
		if math.IsNaN(top[col]) || v > top[col] {
			top[col] = v
		}
	}
	for col, v := range top {
		if math.IsNaN(v) {
			continue
		}
		vline(img, fr.x0+col, fr.y(v), fr.y1, Foreground, 1)
	}
}

func drawAxes(img *image.RGBA, fr frame) {
	for x := fr.x0; x <= fr.x1; x++ {
		img.Set(x, fr.y1, Axis)
	}
	vline(img, fr.x0, fr.y0, fr.y1, Axis, 1)

	for i := 0; i <= xTicks; i++ {
		x := fr.x0 + i*(fr.x1-fr.x0)/xTicks
		vline(img, x, fr.y1, fr.y1+5, Axis, 1)
	}
	for i := 0; i <= yTicks; i++ {
		y := fr.y1 - i*(fr.y1-fr.y0)/yTicks
		for x := fr.x0 - 5; x <= fr.x0; x++ {
			img.Set(x, y, Axis)
		}
	}
}

func (p *Plotter) drawLabels(fr frame, spec *periodogram.Spectrum, opts Options) error {
	for i := 0; i <= xTicks; i++ {
		f := fr.fLow + float64(i)*(fr.fHigh-fr.fLow)/xTicks
		x := fr.x0 + i*(fr.x1-fr.x0)/xTicks
		if _, err := p.context.DrawString(HumanFrequency(f), freetype.Pt(x-25, fr.y1+20)); err != nil {
			return fmt.Errorf("plot: x labels: %w", err)
		}
	}

	for i := 0; i <= yTicks; i++ {
		v := fr.pLow + float64(i)*(fr.pHigh-fr.pLow)/yTicks
		label := humanize.SIWithDigits(v, 2, "")
		if opts.LogPower {
			label = fmt.Sprintf("1e%.1f", v)
		}
		y := fr.y1 - i*(fr.y1-fr.y0)/yTicks
		if _, err := p.context.DrawString(label, freetype.Pt(5, y+4)); err != nil {
			return fmt.Errorf("plot: y labels: %w", err)
		}
	}

	info := fmt.Sprintf("%s points", humanize.Comma(int64(spec.Len())))
	if peak, ok := spec.Peak(); ok {
		info += fmt.Sprintf(", peak %s, power %.4g", HumanFrequency(peak.Frequency), peak.Power)
	}
	if opts.Title != "" {
		info = opts.Title + "  |  " + info
	}

	if _, err := p.context.DrawString(info, freetype.Pt(fr.x0, fr.y0-10)); err != nil {
		return fmt.Errorf("plot: title: %w", err)
	}
	return nil
}

// HumanFrequency formats a frequency given in µHz with an SI prefix, e.g.
// 2000 µHz as "2.00 mHz".
func HumanFrequency(microhertz float64) string {
	v, prefix := humanize.ComputeSI(microhertz * 1e-6)
	return fmt.Sprintf("%0.2f %sHz", v, prefix)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color, width int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for dx := range width {
		for y := y0; y <= y1; y++ {
			img.Set(x+dx, y, c)
		}
	}
}
