package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"cmreport/internal/display"
	"cmreport/internal/logging"
	"cmreport/internal/report"
)

// outputFlags is the shared --output/--format/--panel-size flag set.
type outputFlags struct {
	path      string
	format    string
	panelSize float64
}

func (o *outputFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.path, "output", "o", "", "Output path; '-' or empty writes text formats to stdout (images default to confusion.<format>)")
	f.StringVar(&o.format, "format", "png", "Output format ("+strings.Join(report.Formats(), ", ")+")")
	f.Float64Var(&o.panelSize, "panel-size", 6, "Heatmap panel side in inches")
}

// resolvePath picks the destination: stdout for text formats without a path,
// confusion.<format> for images without a path.
func resolvePath(path, format string) string {
	if path != "" {
		return path
	}
	if report.IsImage(format) {
		return "confusion." + strings.ToLower(format)
	}
	return "-"
}

// writeReport renders panels through the backend for o.format.
func writeReport(cmd *cobra.Command, o outputFlags, panels []report.Panel) error {
	if o.panelSize <= 0 {
		return fmt.Errorf("--panel-size must be > 0, got %v", o.panelSize)
	}
	backend, err := report.BackendFor(o.format, report.Options{PanelSize: vg.Length(o.panelSize) * vg.Inch})
	if err != nil {
		return err
	}

	path := resolvePath(o.path, o.format)
	if path == "-" {
		if report.IsImage(o.format) {
			return fmt.Errorf("%s output needs a file path (-o)", display.Format(o.format))
		}
		_, err := report.Render(backend, cmd.OutOrStdout(), panels)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := report.Render(backend, f, panels); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	logging.New("cli").Info("report written", "path", path, "format", display.Format(o.format), "panels", len(panels))
	fmt.Fprintf(cmd.OutOrStdout(), "Report: %s\n", path)
	return nil
}
