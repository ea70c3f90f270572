// Package export writes the temperature log to tabular files: XLSX for
// spreadsheets, CSV, and a printable PDF report.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/luki/templog/internal/store"
)

// Format is an export file type.
type Format string

const (
	XLSX Format = "xlsx"
	CSV  Format = "csv"
	PDF  Format = "pdf"
)

// BaseName is the file name, without extension, of every export.
const BaseName = "temperature_logs"

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case XLSX, CSV, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Columns is the stable column order of every tabular export.
var Columns = []string{"id", "locationName", "temperature", "timestamp", "checkedBy", "notes", "status"}

// Report is everything an export may render.
type Report struct {
	Logs        []store.TemperatureLog // newest first
	ByLocation  store.Counts
	ByStatus    store.Counts
	GeneratedAt time.Time
}

// Row returns the cell values of one log in Columns order.
func Row(l store.TemperatureLog) []string {
	return []string{
		l.ID.String(),
		l.LocationName,
		strconv.FormatFloat(l.Temperature, 'f', -1, 64),
		l.Timestamp.UTC().Format(timeLayout),
		l.CheckedBy,
		l.Notes,
		string(l.Status),
	}
}

// Write renders the report in the given format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case XLSX:
		return WriteXLSX(w, r)
	case CSV:
		return WriteCSV(w, r.Logs)
	case PDF:
		return WritePDF(w, r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ToFile writes the report into dir as temperature_logs.<format>, replacing
// any previous export, and returns the file path.
func ToFile(dir string, format Format, r Report) (string, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create export dir: %w", err)
	}

	path := filepath.Join(dir, BaseName+"."+string(format))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := Write(f, format, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
