// Package config loads application settings from defaults, an optional
// YAML file and TEMPLOG_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/luki/templog/internal/export"
	"github.com/luki/templog/internal/location"
)

// Config is the global application configuration.
type Config struct {
	Log       LogConfig        `mapstructure:"log"`
	Export    ExportConfig     `mapstructure:"export"`
	History   HistoryConfig    `mapstructure:"history"`
	ID        IDConfig         `mapstructure:"id"`
	Locations []LocationConfig `mapstructure:"locations"`
}

// LogConfig configures the zap logger. The TUI owns the terminal, so logs
// go to File; an empty File disables logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ExportConfig configures the export action.
type ExportConfig struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format"`
}

// HistoryConfig sizes the per-location trend buffers.
type HistoryConfig struct {
	Size int `mapstructure:"size"`
}

// IDConfig selects the snowflake node used for log IDs.
type IDConfig struct {
	Node int64 `mapstructure:"node"`
}

// LocationConfig is one monitored location as written in the config file.
type LocationConfig struct {
	ID      string  `mapstructure:"id"`
	Name    string  `mapstructure:"name"`
	MinTemp float64 `mapstructure:"min_temp"`
	MaxTemp float64 `mapstructure:"max_temp"`
	Type    string  `mapstructure:"type"`
}

// Load reads configuration. path may be empty, in which case templog.yaml
// is looked up in the working directory and ~/.config/templog.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", filepath.Join(os.TempDir(), "templog.log"))
	v.SetDefault("export.dir", ".")
	v.SetDefault("export.format", string(export.XLSX))
	v.SetDefault("history.size", 120)
	v.SetDefault("id.node", 1)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("templog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "templog"))
		}
	}

	v.SetEnvPrefix("TEMPLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enum values and ranges.
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("config: export.format: %w", err)
	}
	if c.History.Size < 1 {
		return fmt.Errorf("config: history.size must be positive, got %d", c.History.Size)
	}
	if c.ID.Node < 0 || c.ID.Node > 1023 {
		return fmt.Errorf("config: id.node must be between 0 and 1023, got %d", c.ID.Node)
	}
	if _, err := location.NewRegistry(c.LocationList()); err != nil {
		return fmt.Errorf("config: locations: %w", err)
	}
	return nil
}

// LocationList returns the configured locations, or the seeded defaults
// when none are configured.
func (c *Config) LocationList() []location.Location {
	if len(c.Locations) == 0 {
		return location.Defaults()
	}
	out := make([]location.Location, len(c.Locations))
	for i, l := range c.Locations {
		out[i] = location.Location{
			ID:      l.ID,
			Name:    l.Name,
			MinTemp: l.MinTemp,
			MaxTemp: l.MaxTemp,
			Type:    location.Type(l.Type),
		}
	}
	return out
}

// ExportFormat returns the parsed default export format.
func (c *Config) ExportFormat() export.Format {
	f, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return export.XLSX
	}
	return f
}
