package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// CSVBackend exports every cell as a long-format record:
// panel,true,predicted,value.
type CSVBackend struct{}

// Draw writes the header and one record per cell, panels in order.
func (CSVBackend) Draw(w io.Writer, l *Layout) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"panel", "true", "predicted", "value"}); err != nil {
		return err
	}
	for _, pl := range l.Panels {
		for i, row := range pl.Cells {
			for j, cell := range row {
				record := []string{
					pl.Title,
					pl.Ticks[i],
					pl.Ticks[j],
					strconv.FormatFloat(cell.Value, 'f', -1, 64),
				}
				if err := writer.Write(record); err != nil {
					return err
				}
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
