package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/luki/templog/internal/app"
	"github.com/luki/templog/internal/config"
	"github.com/luki/templog/internal/form"
	"github.com/luki/templog/internal/history"
	"github.com/luki/templog/internal/location"
	applogger "github.com/luki/templog/internal/logger"
	"github.com/luki/templog/internal/monitor"
	"github.com/luki/templog/internal/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: templog [-config file] [command]

Commands:
  (none)                      start the temperature logging UI
  locations                   list monitored locations and their ranges
  classify <location-id> <°F> print the status of a reading
`)
}

func main() {
	configPath := flag.String("config", "", "path to config file (default ./templog.yaml)")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	reg, err := location.NewRegistry(cfg.LocationList())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "locations":
			printLocations(reg)
		case "classify":
			runClassify(reg, args[1:])
		default:
			usage()
			os.Exit(2)
		}
		return
	}

	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logs, err := store.New(cfg.ID.Node)
	if err != nil {
		logger.Fatal("init log store", zap.Error(err))
	}

	a := app.New(reg, logs, history.NewStore(cfg.History.Size), logger, app.Options{
		ExportDir:    cfg.Export.Dir,
		ExportFormat: cfg.ExportFormat(),
	})

	logger.Info("templog started",
		zap.Int("locations", reg.Len()),
		zap.String("export_dir", cfg.Export.Dir),
		zap.String("export_format", cfg.Export.Format),
	)

	if err := monitor.Run(a); err != nil {
		logger.Error("ui exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("templog stopped", zap.Int("logs", a.LogCount()))
}

func printLocations(reg *location.Registry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tRANGE")
	for _, l := range reg.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ID, l.Name, l.Type, l.RangeText())
	}
	w.Flush()
}

func runClassify(reg *location.Registry, args []string) {
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}

	line, err := classifyReading(reg, args[0], args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(line)
}

// classifyReading formats the status of one reading for the classify
// subcommand.
func classifyReading(reg *location.Registry, id, raw string) (string, error) {
	loc, err := reg.Find(id)
	if err != nil {
		return "", err
	}
	temp, err := form.ParseTemperature(raw)
	if err != nil {
		return "", fmt.Errorf("temperature %q: %w", raw, err)
	}
	return fmt.Sprintf("%s %.1f°F (%s): %s", loc.Name, temp, loc.RangeText(), loc.Classify(temp)), nil
}
