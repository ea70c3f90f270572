// Package app is the controller that owns the application state: the
// location registry, the log store and the per-location trends. The UI
// holds a reference to it and routes every user action through it.
package app

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/luki/templog/internal/export"
	"github.com/luki/templog/internal/form"
	"github.com/luki/templog/internal/history"
	"github.com/luki/templog/internal/location"
	"github.com/luki/templog/internal/store"
)

// Options configures a new App.
type Options struct {
	ExportDir    string
	ExportFormat export.Format
	Now          func() time.Time
}

// App is the single owner of mutable application state.
type App struct {
	registry *location.Registry
	logs     *store.Store
	history  *history.Store
	logger   *zap.Logger
	opts     Options
}

// New wires the controller.
func New(reg *location.Registry, logs *store.Store, hist *history.Store, logger *zap.Logger, opts Options) *App {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = export.XLSX
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		registry: reg,
		logs:     logs,
		history:  hist,
		logger:   logger,
		opts:     opts,
	}
}

// Submit validates the form content, classifies the reading against the
// selected location and appends it to the log. Nothing is stored when an
// error is returned.
func (a *App) Submit(sub form.Submission) (store.TemperatureLog, error) {
	reading, err := sub.Parse()
	if err != nil {
		a.logger.Info("submission rejected",
			zap.String("location_id", sub.LocationID),
			zap.Error(err),
		)
		return store.TemperatureLog{}, err
	}

	loc, err := a.registry.Find(reading.LocationID)
	if err != nil {
		a.logger.Error("submission for unknown location",
			zap.String("location_id", reading.LocationID),
			zap.Error(err),
		)
		return store.TemperatureLog{}, err
	}

	entry := a.logs.Append(store.TemperatureLog{
		LocationName: loc.Name,
		Temperature:  reading.Temperature,
		Timestamp:    a.opts.Now(),
		CheckedBy:    reading.CheckedBy,
		Notes:        reading.Notes,
		Status:       loc.Classify(reading.Temperature),
	})
	a.history.Record(entry.LocationName, entry.Temperature, entry.Timestamp, entry.Status)

	a.logger.Info("temperature recorded",
		zap.String("id", entry.ID.String()),
		zap.String("location", entry.LocationName),
		zap.Float64("temperature", entry.Temperature),
		zap.String("status", string(entry.Status)),
		zap.String("checked_by", entry.CheckedBy),
	)
	return entry, nil
}

// Logs returns every log, newest first.
func (a *App) Logs() []store.TemperatureLog {
	return a.logs.All()
}

// LogCount returns the number of stored logs.
func (a *App) LogCount() int {
	return a.logs.Len()
}

// Locations returns the registry's locations in seed order.
func (a *App) Locations() []location.Location {
	return a.registry.All()
}

// LocationCounts is the logs-per-location view.
func (a *App) LocationCounts() store.Counts {
	return store.CountByLocation(a.logs.All(), a.registry.All())
}

// StatusCounts is the logs-per-status view.
func (a *App) StatusCounts() store.Counts {
	return store.CountByStatus(a.logs.All())
}

// Trend returns the recent readings of a location, or nil.
func (a *App) Trend(name string) *history.Buffer {
	return a.history.Get(name)
}

// Report snapshots the full log and both views for export.
func (a *App) Report() export.Report {
	logs := a.logs.All()
	return export.Report{
		Logs:        logs,
		ByLocation:  store.CountByLocation(logs, a.registry.All()),
		ByStatus:    store.CountByStatus(logs),
		GeneratedAt: a.opts.Now(),
	}
}

// DefaultExportFormat is the format used by the export key.
func (a *App) DefaultExportFormat() export.Format {
	return a.opts.ExportFormat
}

// Export writes every log to the export directory in the given format and
// returns the written path.
func (a *App) Export(format export.Format) (string, error) {
	r := a.Report()
	path, err := export.ToFile(a.opts.ExportDir, format, r)
	if err != nil {
		a.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		return "", fmt.Errorf("export: %w", err)
	}
	a.logger.Info("logs exported",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", len(r.Logs)),
	)
	return path, nil
}
