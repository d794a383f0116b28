package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

const (
	defaultPanelSize = 6 * vg.Inch
	defaultColors    = 256
	legendSteps      = 6
)

// Light and dark ends of the sequential blue scale.
var (
	blueLight = color.RGBA{R: 0xf7, G: 0xfb, B: 0xff, A: 0xff}
	blueDark  = color.RGBA{R: 0x08, G: 0x30, B: 0x6b, A: 0xff}
)

// HeatmapBackend draws each panel as a colored grid with value overlays,
// panels side by side, into a PNG, PDF or SVG canvas.
type HeatmapBackend struct {
	Format    string
	PanelSize vg.Length
	Colors    int
}

type canvasWriter interface {
	vg.CanvasSizer
	io.WriterTo
}

func newCanvas(name string, w, h vg.Length) (canvasWriter, error) {
	switch name {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.New(w, h)}, nil
	case "pdf":
		return vgpdf.New(w, h), nil
	case "svg":
		return vgsvg.New(w, h), nil
	default:
		return nil, fmt.Errorf("heatmap: unsupported image format %q", name)
	}
}

// Draw renders all panels of l into one image and writes it to w.
func (h HeatmapBackend) Draw(w io.Writer, l *Layout) error {
	size := h.PanelSize
	if size <= 0 {
		size = defaultPanelSize
	}
	steps := h.Colors
	if steps < 2 {
		steps = defaultColors
	}

	c, err := newCanvas(h.Format, size*vg.Length(len(l.Panels)), size)
	if err != nil {
		return err
	}
	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(l.Panels),
		PadX:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}

	pal := gradient(steps)
	for k, pl := range l.Panels {
		if err := drawPanel(tiles.At(dc, k, 0), pl, pal); err != nil {
			return fmt.Errorf("heatmap: panel %q: %w", pl.Title, err)
		}
	}

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("heatmap: write %s: %w", h.Format, err)
	}
	return nil
}

func drawPanel(dc draw.Canvas, pl PanelLayout, pal palette) error {
	n := pl.Classes

	p := plot.New()
	p.Title.Text = pl.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = pl.XLabel
	p.Y.Label.Text = pl.YLabel
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	hm := plotter.NewHeatMap(grid{pl}, pal)
	hm.Min, hm.Max = pl.Min, pl.Max
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}
	p.Add(hm)

	overlay, err := cellLabels(pl)
	if err != nil {
		return err
	}
	p.Add(overlay)

	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i := 0; i < n; i++ {
		xTicks[i] = plot.Tick{Value: float64(i), Label: pl.Ticks[i]}
		// Row 0 is drawn at the top, like an image.
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: pl.Ticks[i]}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Min, p.X.Max = -0.5, float64(n)-0.5
	p.Y.Min, p.Y.Max = -0.5, float64(n)-0.5
	p.X.Padding = 0
	p.Y.Padding = 0

	legend := scaleLegend(pal, hm.Min, hm.Max)
	legend.Top = true
	r := legend.Rectangle(dc)
	legendWidth := r.Max.X - r.Min.X
	legend.YOffs = -p.Title.TextStyle.FontExtents().Height
	legend.Draw(dc)

	dc = draw.Crop(dc, 0, -legendWidth-vg.Millimeter, 0, 0)
	p.Draw(dc)
	return nil
}

// cellLabels overlays each cell's text, light on dark cells and dark on light.
func cellLabels(pl PanelLayout) (*plotter.Labels, error) {
	n := pl.Classes
	xys := make(plotter.XYs, 0, n*n)
	texts := make([]string, 0, n*n)
	shades := make([]Shade, 0, n*n)
	for i, row := range pl.Cells {
		for j, cell := range row {
			xys = append(xys, plotter.XY{X: float64(j), Y: float64(n - 1 - i)})
			texts = append(texts, cell.Text)
			shades = append(shades, cell.Shade)
		}
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for k := range labels.TextStyle {
		labels.TextStyle[k].XAlign = text.XCenter
		labels.TextStyle[k].YAlign = text.YCenter
		labels.TextStyle[k].Color = color.Black
		if shades[k] == Light {
			labels.TextStyle[k].Color = color.White
		}
	}
	return labels, nil
}

// scaleLegend builds a colorbar-like legend with "%.1f" labels, highest
// value on top.
func scaleLegend(pal palette, lo, hi float64) plot.Legend {
	l := plot.NewLegend()
	thumbs := plotter.PaletteThumbnailers(pal.sample(legendSteps))
	last := len(thumbs) - 1
	for i := last; i >= 0; i-- {
		val := lo + (hi-lo)*float64(i)/float64(last)
		l.Add(fmt.Sprintf("%.1f", val), thumbs[i])
	}
	return l
}

// grid adapts a PanelLayout to plotter.GridXYZ with row 0 at the top.
type grid struct {
	pl PanelLayout
}

func (g grid) Dims() (c, r int)   { return g.pl.Classes, g.pl.Classes }
func (g grid) Z(c, r int) float64 { return g.pl.Cells[g.pl.Classes-1-r][c].Value }
func (g grid) X(c int) float64    { return float64(c) }
func (g grid) Y(r int) float64    { return float64(r) }

// palette is a sequential color scale implementing palette.Palette.
type palette []color.Color

func (p palette) Colors() []color.Color { return p }

// sample picks n evenly spaced colors from p.
func (p palette) sample(n int) palette {
	if n >= len(p) {
		return p
	}
	out := make(palette, n)
	for i := range out {
		out[i] = p[i*(len(p)-1)/(n-1)]
	}
	return out
}

// gradient interpolates n colors from blueLight to blueDark.
func gradient(n int) palette {
	p := make(palette, n)
	for i := range p {
		t := float64(i) / float64(n-1)
		p[i] = color.RGBA{
			R: lerp(blueLight.R, blueDark.R, t),
			G: lerp(blueLight.G, blueDark.G, t),
			B: lerp(blueLight.B, blueDark.B, t),
			A: 0xff,
		}
	}
	return p
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
