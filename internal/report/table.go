package report

import (
	"fmt"
	"io"

	"cmreport/internal/format"
)

// TableBackend writes one text table per panel. In Markdown mode cells that
// would carry light overlay text on a heatmap are emphasized.
type TableBackend struct {
	Mode format.Mode
}

// Draw writes the tables for every panel to w, separated by blank lines.
func (t TableBackend) Draw(w io.Writer, l *Layout) error {
	for k, pl := range l.Panels {
		if k > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, t.panelTable(pl).String()+"\n"); err != nil {
			return fmt.Errorf("table: write panel %q: %w", pl.Title, err)
		}
	}
	return nil
}

func (t TableBackend) panelTable(pl PanelLayout) format.TableBuilder {
	tb := format.NewTable(t.Mode)
	tb.Title(pl.Title)

	header := make([]string, 0, pl.Classes+1)
	header = append(header, "true \\ pred")
	header = append(header, pl.Ticks...)
	tb.Header(header...)

	cols := make([]format.ColumnConfig, 0, pl.Classes)
	for j := 0; j < pl.Classes; j++ {
		cols = append(cols, format.ColumnConfig{Number: j + 2, Align: format.AlignRight})
	}
	tb.Columns(cols...)

	rows := make([][]any, 0, len(pl.Cells))
	for i, row := range pl.Cells {
		vals := make([]any, 0, len(row)+1)
		vals = append(vals, pl.Ticks[i])
		for _, cell := range row {
			s := cell.Text
			if cell.Shade == Light {
				s = format.Emphasize(tb.Mode(), s)
			}
			vals = append(vals, s)
		}
		rows = append(rows, vals)
	}
	tb.Rows(rows)
	return tb
}
