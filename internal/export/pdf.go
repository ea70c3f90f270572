package export

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/luki/templog/internal/store"
)

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Location", 50, "L"},
	{"Temp (F)", 22, "R"},
	{"Time (UTC)", 42, "C"},
	{"Checked By", 40, "L"},
	{"Status", 22, "C"},
	{"Notes", 101, "L"},
}

// WritePDF renders a printable landscape report: a summary block followed
// by the full log table.
func WritePDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Temperature Logs", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, "Temperature Logs - Food Safety Monitoring")
	pdf.Ln(9)

	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Generated: %s    Logs: %d", generated.UTC().Format(time.RFC3339), len(r.Logs)))
	pdf.Ln(8)

	summary := func(title string, counts store.Counts) {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, title)
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 9)
		for _, b := range counts {
			pdf.CellFormat(60, 5, tr(b.Label), "", 0, "L", false, 0, "")
			pdf.CellFormat(20, 5, fmt.Sprintf("%d", b.Count), "", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}
	summary("Location Distribution", r.ByLocation)
	summary("Temperature Status", r.ByStatus)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 230, 241)
	for _, c := range pdfColumns {
		pdf.CellFormat(c.width, 6, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, l := range r.Logs {
		cells := []string{
			l.LocationName,
			fmt.Sprintf("%.1f", l.Temperature),
			reportTime(l.Timestamp),
			l.CheckedBy,
			l.Status.Label(),
			truncateRunes(l.Notes, 60),
		}
		for i, c := range pdfColumns {
			pdf.CellFormat(c.width, 6, tr(cells[i]), "1", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// reportTime formats a log time in UTC, the zone every export uses.
func reportTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
