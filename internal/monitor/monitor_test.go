package monitor

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/luki/templog/internal/app"
	"github.com/luki/templog/internal/form"
	"github.com/luki/templog/internal/history"
	"github.com/luki/templog/internal/location"
	"github.com/luki/templog/internal/status"
	"github.com/luki/templog/internal/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	reg, err := location.NewRegistry(location.Defaults())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	logs, err := store.New(2)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	a := app.New(reg, logs, history.NewStore(20), zap.NewNop(), app.Options{
		ExportDir: t.TempDir(),
		Now:       func() time.Time { return time.Date(2026, 2, 21, 9, 0, 0, 0, time.Local) },
	})

	var m tea.Model = New(a)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 200})
	return m.(Model)
}

func send(m Model, msgs ...tea.Msg) Model {
	var tm tea.Model = m
	for _, msg := range msgs {
		tm, _ = tm.Update(msg)
	}
	return tm.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	right = tea.KeyMsg{Type: tea.KeyRight}
)

func TestSubmitThroughKeys(t *testing.T) {
	m := newTestModel(t)

	if !strings.Contains(m.View(), "No temperature logs recorded yet.") {
		t.Error("empty log message missing")
	}
	if !strings.Contains(m.View(), "No data available for analysis") {
		t.Error("empty analytics message missing")
	}

	// location (freezer) -> temperature -> checked by -> notes
	m = send(m, tab, runes("-12"), tab, runes("Ana"), tab, runes("door"), tea.KeyMsg{Type: tea.KeySpace}, runes("ajar"), enter)

	logs := m.app.Logs()
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d (err=%v)", len(logs), m.err)
	}
	if logs[0].Status != status.Danger || logs[0].Notes != "door ajar" || logs[0].CheckedBy != "Ana" {
		t.Errorf("log = %+v", logs[0])
	}

	if m.form.Temperature != "" || m.form.CheckedBy != "" || m.form.Notes != "" {
		t.Errorf("form not cleared: %+v", m.form)
	}
	if m.form.Selected != 0 {
		t.Errorf("selected location changed to %d", m.form.Selected)
	}

	view := m.View()
	stamp := time.Date(2026, 2, 21, 9, 0, 0, 0, time.Local).Format("2006-01-02 15:04:05 MST")
	if !strings.Contains(view, stamp) {
		t.Errorf("view missing zoned timestamp %q", stamp)
	}
	for _, want := range []string{"Walk-in Freezer", "Danger", "-12.0°F", "Checked by Ana", "door ajar", "1 Logs"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestChangeLocationAndValidation(t *testing.T) {
	m := newTestModel(t)

	m = send(m, right, right, tab, runes("166"), enter)
	if m.err == nil {
		t.Fatal("expected validation error for missing checked by")
	}
	if m.app.LogCount() != 0 {
		t.Error("invalid submission created a log")
	}
	if !strings.Contains(m.View(), form.ErrCheckedByRequired.Error()) {
		t.Error("error not shown")
	}

	m = send(m, tab, runes("Jo"), enter)
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	logs := m.app.Logs()
	if len(logs) != 1 || logs[0].LocationName != "Hot Food Station" || logs[0].Status != status.Warning {
		t.Errorf("logs = %+v", logs)
	}
	if !strings.Contains(m.View(), "135°F to 165°F") {
		t.Error("range hint for selected location missing")
	}
}

func TestExportKey(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tab, runes("-5"), tab, runes("Ana"), enter, tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.err != nil {
		t.Fatalf("export error: %v", m.err)
	}
	if !strings.Contains(m.notice, "temperature_logs.xlsx") {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestQuitWithoutLogs(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}

func TestQuitConfirmsWhenLogsExist(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tab, runes("-5"), tab, runes("Ana"), enter)

	var tm tea.Model = m
	tm, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Fatal("first ctrl+c should ask for confirmation, not quit")
	}
	if !strings.Contains(tm.(Model).notice, "ctrl+c again") {
		t.Errorf("notice = %q", tm.(Model).notice)
	}

	// any other key cancels the pending quit
	tm, _ = tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	tm, cmd = tm.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd != nil {
		t.Fatal("ctrl+c after cancel should ask again")
	}

	_, cmd = tm.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("second ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("second ctrl+c did not quit")
	}
}

func TestEscDismissesWithoutQuitting(t *testing.T) {
	m := newTestModel(t)
	m = send(m, enter)
	if m.err == nil {
		t.Fatal("expected validation error")
	}

	var tm tea.Model = m
	tm, cmd := tm.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("esc should not quit")
	}
	if tm.(Model).err != nil {
		t.Errorf("esc should clear the error, got %v", tm.(Model).err)
	}
}

func TestWideLayoutRenders(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 200, Height: 60}, tab, runes("36"), tab, runes("Lee"), enter)
	view := m.View()
	if !strings.Contains(view, "Location Distribution") || !strings.Contains(view, "Temperature Status") {
		t.Error("analytics headings missing")
	}
	if lines := strings.Count(view, "\n") + 1; lines > 60 {
		t.Errorf("view has %d lines, taller than the terminal", lines)
	}
}
