package app

import (
	"errors"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/luki/templog/internal/export"
	"github.com/luki/templog/internal/form"
	"github.com/luki/templog/internal/history"
	"github.com/luki/templog/internal/location"
	"github.com/luki/templog/internal/status"
	"github.com/luki/templog/internal/store"
)

func setupTestApp(t *testing.T) *App {
	t.Helper()
	reg, err := location.NewRegistry(location.Defaults())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	logs, err := store.New(1)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	clock := time.Date(2026, 2, 21, 8, 0, 0, 0, time.UTC)
	return New(reg, logs, history.NewStore(50), zap.NewNop(), Options{
		ExportDir: t.TempDir(),
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	})
}

func submit(t *testing.T, a *App, locID, temp string) store.TemperatureLog {
	t.Helper()
	lg, err := a.Submit(form.Submission{LocationID: locID, Temperature: temp, CheckedBy: "Ana"})
	if err != nil {
		t.Fatalf("Submit(%s, %s): %v", locID, temp, err)
	}
	return lg
}

func TestWalkInFreezerScenario(t *testing.T) {
	a := setupTestApp(t)

	steps := []struct {
		temp string
		want status.Status
	}{
		{"-12", status.Danger},
		{"-11", status.Warning},
		{"-5", status.Safe},
	}
	for _, s := range steps {
		lg := submit(t, a, "1", s.temp)
		if lg.Status != s.want {
			t.Errorf("temp %s: status = %q, want %q", s.temp, lg.Status, s.want)
		}
		if lg.LocationName != "Walk-in Freezer" {
			t.Errorf("location name = %q", lg.LocationName)
		}
	}

	logs := a.Logs()
	wantOrder := []struct {
		temp float64
		st   status.Status
	}{{-5, status.Safe}, {-11, status.Warning}, {-12, status.Danger}}
	if len(logs) != len(wantOrder) {
		t.Fatalf("len(Logs) = %d", len(logs))
	}
	for i, w := range wantOrder {
		if logs[i].Temperature != w.temp || logs[i].Status != w.st {
			t.Errorf("Logs()[%d] = %v %q, want %v %q", i, logs[i].Temperature, logs[i].Status, w.temp, w.st)
		}
	}
}

func TestHotFoodStationScenario(t *testing.T) {
	a := setupTestApp(t)

	for temp, want := range map[string]status.Status{"166": status.Warning, "168": status.Danger, "150": status.Safe} {
		if lg := submit(t, a, "3", temp); lg.Status != want {
			t.Errorf("temp %s: status = %q, want %q", temp, lg.Status, want)
		}
	}

	trend := a.Trend("Hot Food Station")
	if trend == nil || len(trend.Points) != 3 {
		t.Fatalf("trend not recorded: %+v", trend)
	}
	if trend.Min != 150 || trend.Peak != 168 {
		t.Errorf("trend min/peak = %v/%v", trend.Min, trend.Peak)
	}
}

func TestSubmitRejections(t *testing.T) {
	a := setupTestApp(t)

	tests := []struct {
		name string
		sub  form.Submission
		want error
	}{
		{"unknown location", form.Submission{LocationID: "42", Temperature: "1", CheckedBy: "Ana"}, location.ErrUnknownLocation},
		{"bad temperature", form.Submission{LocationID: "1", Temperature: "abc", CheckedBy: "Ana"}, form.ErrTemperatureInvalid},
		{"missing temperature", form.Submission{LocationID: "1", CheckedBy: "Ana"}, form.ErrTemperatureRequired},
		{"missing checked by", form.Submission{LocationID: "1", Temperature: "1"}, form.ErrCheckedByRequired},
	}
	for _, tt := range tests {
		if _, err := a.Submit(tt.sub); !errors.Is(err, tt.want) {
			t.Errorf("%s: error = %v, want %v", tt.name, err, tt.want)
		}
	}
	if a.LogCount() != 0 {
		t.Errorf("rejected submissions created %d logs", a.LogCount())
	}
}

func TestStatusMatchesClassifier(t *testing.T) {
	a := setupTestApp(t)
	temps := []string{"30", "31", "32.5", "33", "40", "41", "42", "42.1", "50"}
	for _, temp := range temps {
		submit(t, a, "2", temp)
	}
	loc, _ := location.NewRegistry(location.Defaults())
	fridge, _ := loc.Find("2")
	for _, lg := range a.Logs() {
		if lg.Status != status.Classify(lg.Temperature, fridge.MinTemp, fridge.MaxTemp) {
			t.Errorf("%v: stored %q differs from classifier", lg.Temperature, lg.Status)
		}
	}
}

func TestCountsAndExport(t *testing.T) {
	a := setupTestApp(t)

	if a.LocationCounts().Total() != 0 || len(a.StatusCounts()) != 3 {
		t.Error("empty views should have zero buckets for every category")
	}

	submit(t, a, "1", "-12")
	submit(t, a, "2", "36")
	submit(t, a, "2", "45")

	byLoc := a.LocationCounts()
	byStatus := a.StatusCounts()
	if byLoc.Total() != 3 || byStatus.Total() != 3 {
		t.Errorf("totals = %d/%d, want 3", byLoc.Total(), byStatus.Total())
	}
	if byLoc.Map()["Main Refrigerator"] != 2 || byLoc.Map()["Hot Food Station"] != 0 {
		t.Errorf("location counts = %v", byLoc.Map())
	}
	if byStatus.Map()["Danger"] != 2 {
		t.Errorf("status counts = %v", byStatus.Map())
	}

	path, err := a.Export(a.DefaultExportFormat())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("export file %s missing: %v", path, err)
	}

	if _, err := a.Export("ods"); !errors.Is(err, export.ErrUnknownFormat) {
		t.Errorf("Export(ods) error = %v", err)
	}
}
