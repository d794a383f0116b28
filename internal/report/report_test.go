package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"cmreport/internal/confusion"
	"cmreport/internal/format"
)

func mustNormalized(t *testing.T, yTrue, yPred confusion.Labels, n int) *confusion.Normalized {
	t.Helper()
	m, err := confusion.Build(yTrue, yPred, n)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return confusion.Normalize(m)
}

func scenarioPanels(t *testing.T) []Panel {
	t.Helper()
	a := mustNormalized(t, confusion.Labels{0, 0, 1, 1, 2, 2}, confusion.Labels{0, 1, 1, 1, 2, 0}, 3)
	b := mustNormalized(t, confusion.Labels{0, 1, 2}, confusion.Labels{0, 1, 2}, 3)
	panels, err := Panels([]string{"BOSSVSClassifier", "KNNClassifier"}, []*confusion.Normalized{a, b})
	if err != nil {
		t.Fatalf("Panels: %v", err)
	}
	return panels
}

func TestNewLayout_ThresholdAndShades(t *testing.T) {
	l, err := NewLayout(scenarioPanels(t))
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if len(l.Panels) != 2 {
		t.Fatalf("got %d panels, want 2", len(l.Panels))
	}

	pl := l.Panels[0]
	if pl.Title != "BOSSVSClassifier" || pl.Classes != 3 {
		t.Errorf("panel header = %q/%d", pl.Title, pl.Classes)
	}
	if pl.Min != 0 || pl.Max != 1 || pl.Threshold != 0.5 {
		t.Errorf("min/max/threshold = %v/%v/%v, want 0/1/0.5", pl.Min, pl.Max, pl.Threshold)
	}
	if diff := cmp.Diff([]string{"0", "1", "2"}, pl.Ticks); diff != "" {
		t.Errorf("ticks (-want +got):\n%s", diff)
	}
	if pl.XLabel != PredictedAxisLabel || pl.YLabel != TrueAxisLabel {
		t.Errorf("axis labels = %q/%q", pl.XLabel, pl.YLabel)
	}

	var texts [][]string
	var shades [][]Shade
	for _, row := range pl.Cells {
		var tr []string
		var sr []Shade
		for _, c := range row {
			tr = append(tr, c.Text)
			sr = append(sr, c.Shade)
		}
		texts = append(texts, tr)
		shades = append(shades, sr)
	}
	wantTexts := [][]string{{"0.50", "0.50", "0.00"}, {"0.00", "1.00", "0.00"}, {"0.50", "0.00", "0.50"}}
	if diff := cmp.Diff(wantTexts, texts); diff != "" {
		t.Errorf("cell text (-want +got):\n%s", diff)
	}
	// 0.5 sits exactly on the threshold and keeps dark text.
	wantShades := [][]Shade{{Dark, Dark, Dark}, {Dark, Light, Dark}, {Dark, Dark, Dark}}
	if diff := cmp.Diff(wantShades, shades); diff != "" {
		t.Errorf("shades (-want +got):\n%s", diff)
	}
}

func TestNewLayout_UniformMatrixIsAllDark(t *testing.T) {
	single := mustNormalized(t, confusion.Labels{0, 0}, confusion.Labels{0, 0}, 1)
	l, err := NewLayout([]Panel{{Title: "one", Matrix: single}})
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	c := l.Panels[0].Cells[0][0]
	if c.Text != "1.00" || c.Shade != Dark {
		t.Errorf("cell = %+v", c)
	}
}

func TestNewLayout_Errors(t *testing.T) {
	if _, err := NewLayout(nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty: err = %v", err)
	}
	_, err := NewLayout([]Panel{{Title: "missing"}})
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, confusion.ErrInvalidInput) {
		t.Errorf("nil matrix: err = %v", err)
	}
}

func TestPanels_LengthMismatch(t *testing.T) {
	m := mustNormalized(t, confusion.Labels{0}, confusion.Labels{0}, 1)
	_, err := Panels([]string{"a", "b"}, []*confusion.Normalized{m})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRender_RecorderCapturesLayout(t *testing.T) {
	rec := &Recorder{}
	var buf bytes.Buffer
	l, err := Render(rec, &buf, scenarioPanels(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(rec.Layouts) != 1 || rec.Layouts[0] != l {
		t.Errorf("recorder did not capture the returned layout")
	}
	if buf.Len() != 0 {
		t.Errorf("recorder wrote %d bytes", buf.Len())
	}
}

func TestTableBackend_ASCII(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Render(TableBackend{Mode: format.ASCII}, &buf, scenarioPanels(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"BOSSVSClassifier", "KNNClassifier", "true \\ pred", "0.50", "1.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "**") {
		t.Errorf("ASCII output should not carry markdown emphasis:\n%s", out)
	}
}

func TestTableBackend_MarkdownEmphasizesDarkCells(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Render(TableBackend{Mode: format.Markdown}, &buf, scenarioPanels(t)[:1]); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "### BOSSVSClassifier") {
		t.Errorf("expected heading:\n%s", out)
	}
	if got := strings.Count(out, "**1.00**"); got != 1 {
		t.Errorf("expected one emphasized cell, got %d:\n%s", got, out)
	}
	if strings.Contains(out, "**0.50**") {
		t.Errorf("threshold cells must not be emphasized:\n%s", out)
	}
}

func TestCSVBackend(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Render(CSVBackend{}, &buf, scenarioPanels(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 1+2*9 {
		t.Fatalf("got %d records, want %d", len(records), 1+2*9)
	}
	if diff := cmp.Diff([]string{"panel", "true", "predicted", "value"}, records[0]); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"BOSSVSClassifier", "1", "1", "1"}, records[5]); diff != "" {
		t.Errorf("cell (1,1) (-want +got):\n%s", diff)
	}
}

func TestHeatmapBackend_Formats(t *testing.T) {
	tests := []struct {
		format string
		magic  string
	}{
		{"png", "\x89PNG"},
		{"pdf", "%PDF"},
		{"svg", "<svg"},
	}
	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			b, err := BackendFor(tc.format, Options{PanelSize: 300, Colors: 16})
			if err != nil {
				t.Fatalf("BackendFor: %v", err)
			}
			var buf bytes.Buffer
			if _, err := Render(b, &buf, scenarioPanels(t)); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(buf.String(), tc.magic) {
				t.Errorf("output does not look like %s (%d bytes)", tc.format, buf.Len())
			}
		})
	}
}

func TestBackendFor(t *testing.T) {
	for _, name := range Formats() {
		if _, err := BackendFor(name, Options{}); err != nil {
			t.Errorf("BackendFor(%q): %v", name, err)
		}
	}
	if _, err := BackendFor("gif", Options{}); err == nil {
		t.Error("expected error for unknown format")
	}
	if !IsImage("PNG") || IsImage("csv") {
		t.Error("IsImage misclassified formats")
	}
	want := []string{"ascii", "csv", "markdown", "pdf", "png", "svg"}
	if diff := cmp.Diff(want, Formats()); diff != "" {
		t.Errorf("Formats (-want +got):\n%s", diff)
	}
}

func TestGradient(t *testing.T) {
	p := gradient(5)
	if len(p) != 5 {
		t.Fatalf("len = %d", len(p))
	}
	if p[0] != blueLight || p[4] != blueDark {
		t.Errorf("ends = %v, %v", p[0], p[4])
	}
	if s := p.sample(3); len(s) != 3 || s[0] != p[0] || s[2] != p[4] {
		t.Errorf("sample = %v", s)
	}
}
