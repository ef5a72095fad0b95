// Package internal provides the App struct that wires the board's supporting
// services together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/valter-silva-au/taskboard/internal/cli"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// App holds all service dependencies for taskboard.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.BoardConfig

	// Observability
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
}

// NewApp loads configuration from basePath, opens the event log and wires
// the CLI package-level variables. An invalid config file is an error; an
// event log that cannot be opened only disables observability.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Observability ---
	if cfg.EventLog.Enabled {
		app.EventLog, err = observability.NewJSONLEventLog(app.eventLogPath())
		if err != nil {
			app.EventLog = nil
		}
	}
	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog)
	}

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc

	return app, nil
}

func (a *App) eventLogPath() string {
	path := a.Config.EventLog.Path
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.BasePath, path)
}

// Close releases resources held by the App, such as the event log file handle.
// It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory holding .taskboard.yaml and the
// event log. It checks TASKBOARD_HOME, then walks up from the current
// directory looking for a config file, and falls back to the current
// directory.
func ResolveBasePath() string {
	if home := os.Getenv("TASKBOARD_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	cwd := dir
	for {
		for _, ext := range []string{".yaml", ".yml"} {
			if _, err := os.Stat(filepath.Join(dir, core.ConfigFileName+ext)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}
