package export

import (
	"encoding/csv"
	"io"

	"github.com/luki/templog/internal/store"
)

// WriteCSV writes a header row followed by one row per log.
func WriteCSV(w io.Writer, logs []store.TemperatureLog) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, l := range logs {
		if err := cw.Write(Row(l)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
