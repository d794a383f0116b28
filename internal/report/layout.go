// Package report lays out normalized confusion matrices as side-by-side
// panels and draws them through a swappable Backend.
//
// Layout computation is pure: NewLayout turns panels into grid values, cell
// text, overlay shades and ticks. Only Backend.Draw touches the outside world.
package report

import (
	"fmt"

	"cmreport/internal/confusion"
	"cmreport/internal/display"
	"cmreport/internal/format"
)

// ErrInvalidInput reports mismatched or missing panel inputs. It wraps
// confusion.ErrInvalidInput so either sentinel matches with errors.Is.
var ErrInvalidInput = fmt.Errorf("report: %w", confusion.ErrInvalidInput)

// Axis labels shared by every backend.
const (
	TrueAxisLabel      = "True label"
	PredictedAxisLabel = "Predicted label"
)

// Panel pairs a title with the matrix drawn under it.
type Panel struct {
	Title  string
	Matrix *confusion.Normalized
}

// Panels zips titles and matrices into panels, in order.
func Panels(titles []string, mats []*confusion.Normalized) ([]Panel, error) {
	if len(titles) != len(mats) {
		return nil, fmt.Errorf("%w: %d titles for %d matrices", ErrInvalidInput, len(titles), len(mats))
	}
	panels := make([]Panel, len(titles))
	for i := range titles {
		panels[i] = Panel{Title: titles[i], Matrix: mats[i]}
	}
	return panels, nil
}

// Shade is the overlay text tone for a cell.
type Shade int

const (
	Dark  Shade = iota // dark text on a light cell
	Light              // light text on a dark cell
)

func (s Shade) String() string {
	if s == Light {
		return "light"
	}
	return "dark"
}

// Cell is one grid square of a panel.
type Cell struct {
	Row, Col int
	Value    float64
	Text     string
	Shade    Shade
}

// PanelLayout is everything a backend needs to draw one matrix.
type PanelLayout struct {
	Title     string
	Classes   int
	Cells     [][]Cell // Cells[row][col]; row is the true class
	Min, Max  float64
	Threshold float64
	Ticks     []string
	XLabel    string
	YLabel    string
}

// Layout is the rendering context for one report: one PanelLayout per panel,
// left to right.
type Layout struct {
	Panels []PanelLayout
}

// NewLayout computes cell text, overlay shades and ticks for every panel.
// The shade threshold is the midpoint of each matrix's own min and max: cells
// strictly above it get light text.
func NewLayout(panels []Panel) (*Layout, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("%w: no panels to render", ErrInvalidInput)
	}
	l := &Layout{Panels: make([]PanelLayout, len(panels))}
	for k, p := range panels {
		if p.Matrix == nil {
			return nil, fmt.Errorf("%w: panel %d (%q) has no matrix", ErrInvalidInput, k, p.Title)
		}
		l.Panels[k] = panelLayout(p)
	}
	return l, nil
}

func panelLayout(p Panel) PanelLayout {
	n := p.Matrix.Classes()
	lo, hi := p.Matrix.Min(), p.Matrix.Max()
	thresh := (hi + lo) / 2

	cells := make([][]Cell, n)
	for i := 0; i < n; i++ {
		cells[i] = make([]Cell, n)
		for j := 0; j < n; j++ {
			v := p.Matrix.At(i, j)
			shade := Dark
			if v > thresh {
				shade = Light
			}
			cells[i][j] = Cell{Row: i, Col: j, Value: v, Text: format.FmtProportion(v), Shade: shade}
		}
	}

	return PanelLayout{
		Title:     p.Title,
		Classes:   n,
		Cells:     cells,
		Min:       lo,
		Max:       hi,
		Threshold: thresh,
		Ticks:     display.ClassTicks(n),
		XLabel:    PredictedAxisLabel,
		YLabel:    TrueAxisLabel,
	}
}
