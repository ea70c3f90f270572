// Package monitor implements the temperature logging TUI using BubbleTea:
// the record form, distribution charts, per-location trends and the
// newest-first log list.
package monitor

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/templog/internal/app"
	"github.com/luki/templog/internal/chart"
	"github.com/luki/templog/internal/form"
	"github.com/luki/templog/internal/history"
	"github.com/luki/templog/internal/status"
)

// wideLayout is the terminal width from which the three panels are placed
// side by side instead of stacked.
const wideLayout = 150

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model. All state it mutates lives in the App
// controller and the Form; the model only adds view state.
type Model struct {
	app        *app.App
	form       *form.Form
	err        error
	notice     string
	width      int
	height     int
	logsScroll int
	confirming bool // ctrl+c pressed once with unexported logs
}

// New creates the initial model for the given controller.
func New(a *app.App) Model {
	return Model{
		app:  a,
		form: form.New(a.Locations()),
	}
}

// Run starts the TUI and blocks until the user quits.
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.confirming || m.app.LogCount() == 0 {
				return m, tea.Quit
			}
			m.confirming = true
			m.err = nil
			m.notice = fmt.Sprintf("%d logs are kept in memory only. Press ctrl+c again to quit, ctrl+e to export.", m.app.LogCount())
			return m, nil
		}
		m.confirming = false

		switch msg.Type {
		case tea.KeyEsc:
			m.err = nil
			m.notice = ""
		case tea.KeyTab, tea.KeyDown:
			m.form.NextField()
		case tea.KeyShiftTab, tea.KeyUp:
			m.form.PrevField()
		case tea.KeyLeft:
			if m.form.Focus == form.FieldLocation {
				m.form.CycleLocation(-1)
			}
		case tea.KeyRight:
			if m.form.Focus == form.FieldLocation {
				m.form.CycleLocation(1)
			}
		case tea.KeyBackspace:
			m.form.Backspace()
		case tea.KeySpace:
			m.form.Insert(" ")
		case tea.KeyRunes:
			m.form.Insert(string(msg.Runes))
		case tea.KeyEnter:
			m.submit()
		case tea.KeyCtrlE:
			m.export()
		case tea.KeyPgDown:
			if m.logsScroll < m.app.LogCount()-1 {
				m.logsScroll++
			}
		case tea.KeyPgUp:
			if m.logsScroll > 0 {
				m.logsScroll--
			}
		case tea.KeyHome:
			m.logsScroll = 0
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m *Model) submit() {
	entry, err := m.app.Submit(m.form.Submission())
	if err != nil {
		m.err = err
		m.notice = ""
		return
	}
	m.form.Reset()
	m.err = nil
	m.logsScroll = 0
	m.notice = fmt.Sprintf("Logged %s at %s: %s",
		chart.FormatTemp(entry.Temperature), entry.LocationName, entry.Status.Label())
}

func (m *Model) export() {
	path, err := m.app.Export(m.app.DefaultExportFormat())
	if err != nil {
		m.err = err
		m.notice = ""
		return
	}
	m.err = nil
	m.notice = fmt.Sprintf("Exported %d logs to %s", m.app.LogCount(), path)
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorHeading  = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFocus    = lipgloss.Color("214")
	colorFooterBg = lipgloss.Color("235")
	colorOk       = lipgloss.Color("78")
	colorCrit     = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string
	sections = append(sections, m.renderTitleBar(contentWidth))

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	} else if m.notice != "" {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(colorOk).
			Width(contentWidth).
			Padding(0, 1).
			Render(" "+m.notice))
	}

	if contentWidth >= wideLayout {
		colW := contentWidth / 3
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderFormPanel(colW),
			m.renderAnalyticsPanel(colW),
			m.renderLogsPanel(contentWidth-2*colW),
		))
	} else {
		sections = append(sections,
			m.renderFormPanel(contentWidth),
			m.renderAnalyticsPanel(contentWidth),
			m.renderLogsPanel(contentWidth),
		)
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	visibleLines := m.height
	if visibleLines < 5 {
		visibleLines = 5
	}
	if len(lines) > visibleLines {
		// keep the footer visible and cut the panels instead
		footer := lines[len(lines)-1]
		lines = append(lines[:visibleLines-1], footer)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("TEMPERATURE LOGGER")
	sub := lipgloss.NewStyle().
		Foreground(colorDim).
		Render("  Food Safety Monitoring System")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	sep := dimS.Render(" │ ")
	right := strings.Join([]string{
		dimS.Render(fmt.Sprintf("%d Logs", m.app.LogCount())),
		dimS.Render(fmt.Sprintf("%d Locations", len(m.form.Locations))),
		dimS.Render("export: " + string(m.app.DefaultExportFormat())),
	}, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(sub) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + sub + filler + right)
}

func panel(title string, width int, rows []string) string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorHeading).
		Render(title)
	body := lipgloss.JoinVertical(lipgloss.Left, append([]string{heading, ""}, rows...)...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width - 2).
		Render(body)
}

func (m Model) renderFormPanel(width int) string {
	labelW := 18
	valueW := width - labelW - 8
	if valueW < 10 {
		valueW = 10
	}

	labelS := lipgloss.NewStyle().Foreground(colorLabel).Width(labelW)
	focusLabelS := lipgloss.NewStyle().Foreground(colorFocus).Bold(true).Width(labelW)
	dimS := lipgloss.NewStyle().Foreground(colorDim)

	var rows []string
	for _, field := range []form.Field{form.FieldLocation, form.FieldTemperature, form.FieldCheckedBy, form.FieldNotes} {
		focused := m.form.Focus == field
		ls := labelS
		if focused {
			ls = focusLabelS
		}

		value := m.form.Value(field)
		var rendered string
		if field == form.FieldLocation {
			rendered = "‹ " + value + " ›"
		} else {
			rendered = tail(value, valueW-1)
			if focused {
				rendered += "▏"
			} else if value == "" {
				rendered = dimS.Render(placeholder(field))
			}
		}

		valS := lipgloss.NewStyle().Foreground(colorLabel)
		if focused {
			valS = valS.Foreground(colorFocus)
		}
		rows = append(rows, ls.Render(field.String())+valS.Render(rendered))

		if field == form.FieldLocation {
			if loc, ok := m.form.SelectedLocation(); ok {
				rows = append(rows, dimS.Render("Acceptable range: "+loc.RangeText()))
			}
		}
	}

	rows = append(rows, "", lipgloss.NewStyle().
		Foreground(colorTitleFg).
		Bold(true).
		Render("[enter] Add Temperature Log"))

	return panel("+ Record Temperature", width, rows)
}

func placeholder(f form.Field) string {
	switch f {
	case form.FieldTemperature:
		return "Enter temperature..."
	case form.FieldCheckedBy:
		return "Enter your name..."
	case form.FieldNotes:
		return "Add any additional notes..."
	}
	return ""
}

func (m Model) renderAnalyticsPanel(width int) string {
	inner := width - 6
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	headS := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	if m.app.LogCount() == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(inner).
			Align(lipgloss.Center).
			Padding(1, 0).
			Render("No data available for analysis")
		return panel("Temperature Analytics", width, []string{empty})
	}

	var rows []string
	rows = append(rows, headS.Render("Location Distribution"))
	rows = append(rows, chart.RenderDistribution(m.app.LocationCounts(),
		func(i int, _ string) lipgloss.Color { return chart.SeriesColor(i) }, inner)...)

	rows = append(rows, "", headS.Render("Temperature Status"))
	rows = append(rows, chart.RenderDistribution(m.app.StatusCounts(),
		func(_ int, label string) lipgloss.Color { return chart.StatusLabelColor(label) }, inner)...)

	rows = append(rows, "", headS.Render("Recent Trend"))
	nameW := 0
	for _, loc := range m.form.Locations {
		if w := lipgloss.Width(loc.Name); w > nameW {
			nameW = w
		}
	}
	sparkW := inner - nameW - 12
	if sparkW < 8 {
		sparkW = 8
	}
	nameS := lipgloss.NewStyle().Foreground(colorLabel).Width(nameW)
	for _, loc := range m.form.Locations {
		trend := m.app.Trend(loc.Name)
		if trend == nil {
			rows = append(rows, nameS.Render(loc.Name)+" "+chart.RenderSparklinePoints(nil, sparkW, 0, 0))
			continue
		}
		lo, hi := trendRange(trend, loc.MinTemp, loc.MaxTemp)
		row := nameS.Render(loc.Name) + " " +
			chart.RenderSparklinePoints(trend.LastNPoints(sparkW), sparkW, lo, hi)
		if last, ok := trend.Last(); ok {
			row += " " + chart.RenderTempValue(last.Temp, last.Status)
		}
		rows = append(rows, row)
		rows = append(rows, strings.Repeat(" ", nameW+1)+
			dimS.Render(fmt.Sprintf("avg %.1f  lo %.1f  pk %.1f", trend.Avg(), trend.Min, trend.Peak)))
	}

	return panel("Temperature Analytics", width, rows)
}

// trendRange pads the safe range by the warning buffer and stretches it to
// cover every recorded reading.
func trendRange(b *history.Buffer, minTemp, maxTemp float64) (float64, float64) {
	lo := math.Min(minTemp-status.Buffer*2, b.Min)
	hi := math.Max(maxTemp+status.Buffer*2, b.Peak)
	return lo, hi
}

func (m Model) renderLogsPanel(width int) string {
	inner := width - 6
	logs := m.app.Logs()

	if len(logs) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(inner).
			Align(lipgloss.Center).
			Padding(1, 0).
			Render("No temperature logs recorded yet.")
		return panel("Recent Temperature Logs", width, []string{empty})
	}

	start := m.logsScroll
	if start >= len(logs) {
		start = len(logs) - 1
	}

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	nameS := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	notesS := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))

	var rows []string
	if start > 0 {
		rows = append(rows, dimS.Render(fmt.Sprintf("↑ %d newer", start)))
	}
	for _, l := range logs[start:] {
		left := nameS.Render(l.LocationName) + "  " + chart.RenderStatusBadge(l.Status)
		right := chart.RenderTempValue(l.Temperature, l.Status)
		rows = append(rows, spread(left, right, inner))

		rows = append(rows, spread(
			dimS.Render("Checked by "+l.CheckedBy),
			dimS.Render(l.Timestamp.Format("2006-01-02 15:04:05 MST")),
			inner))

		if l.Notes != "" {
			rows = append(rows, notesS.Render(" "+truncate(l.Notes, inner-2)+" "))
		}
		rows = append(rows, dimS.Render(strings.Repeat("─", inner)))
	}

	return panel("Recent Temperature Logs", width, rows)
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)

	legend := chart.RenderStatusBadge(status.Safe) + "  " +
		chart.RenderStatusBadge(status.Warning) + "  " +
		chart.RenderStatusBadge(status.Danger) +
		dimS.Render(fmt.Sprintf("  (±%.0f°F buffer)", status.Buffer))

	keys := dimS.Render("tab") + keyS.Render(":field") +
		dimS.Render("  ←/→") + keyS.Render(":location") +
		dimS.Render("  enter") + keyS.Render(":add") +
		dimS.Render("  ctrl+e") + keyS.Render(":export") +
		dimS.Render("  pgup/pgdn") + keyS.Render(":scroll") +
		dimS.Render("  esc") + keyS.Render(":dismiss") +
		dimS.Render("  ctrl+c") + keyS.Render(":quit")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + filler + keys)
}

func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 3 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

// tail keeps the end of s so the text being typed stays visible.
func tail(s string, w int) string {
	r := []rune(s)
	if w <= 0 || len(r) <= w {
		return s
	}
	return "…" + string(r[len(r)-w+1:])
}
