package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/plot/vg"

	"cmreport/internal/format"
	"cmreport/internal/logging"
)

// Backend draws a computed Layout to w.
type Backend interface {
	Draw(w io.Writer, l *Layout) error
}

// Render lays out panels and hands the layout to b. The returned Layout is
// the rendering context the backend drew from.
func Render(b Backend, w io.Writer, panels []Panel) (*Layout, error) {
	l, err := NewLayout(panels)
	if err != nil {
		return nil, err
	}
	if err := b.Draw(w, l); err != nil {
		return nil, fmt.Errorf("draw report: %w", err)
	}
	logging.New("report").Debug("rendered report", "panels", len(l.Panels), "backend", fmt.Sprintf("%T", b))
	return l, nil
}

// Recorder captures layouts instead of drawing them. Useful for dry runs
// and for asserting on layout data in tests.
type Recorder struct {
	Layouts []*Layout
}

// Draw records l and writes nothing.
func (r *Recorder) Draw(_ io.Writer, l *Layout) error {
	r.Layouts = append(r.Layouts, l)
	return nil
}

// Options tunes the backends built by BackendFor.
type Options struct {
	PanelSize vg.Length // side of one heatmap panel; 0 = 6in
	Colors    int       // palette steps; 0 = 256
}

var imageFormats = map[string]bool{"png": true, "pdf": true, "svg": true}

var textFormats = map[string]format.Mode{"ascii": format.ASCII, "markdown": format.Markdown}

// Formats lists every format name BackendFor accepts, sorted.
func Formats() []string {
	names := []string{"csv"}
	for f := range imageFormats {
		names = append(names, f)
	}
	for f := range textFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// IsImage reports whether the format produces binary image output.
func IsImage(name string) bool { return imageFormats[strings.ToLower(name)] }

// BackendFor returns the backend for a format name.
func BackendFor(name string, opts Options) (Backend, error) {
	name = strings.ToLower(name)
	if imageFormats[name] {
		return HeatmapBackend{Format: name, PanelSize: opts.PanelSize, Colors: opts.Colors}, nil
	}
	if mode, ok := textFormats[name]; ok {
		return TableBackend{Mode: mode}, nil
	}
	if name == "csv" {
		return CSVBackend{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(Formats(), ", "))
}
