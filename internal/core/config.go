package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// ConfigFileName is the base name of the board configuration file. Viper
// resolves the extension, so .taskboard.yaml and .taskboard.yml both work.
const ConfigFileName = ".taskboard"

// validPrefixPattern matches uppercase alphanumeric prefixes between 1 and 10 characters.
var validPrefixPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)

// ansiColorPattern matches a 256-colour index or a #rrggbb hex colour.
var ansiColorPattern = regexp.MustCompile(`^([0-9]{1,3}|#[0-9a-fA-F]{6})$`)

// ConfigurationManager loads and validates the board configuration.
type ConfigurationManager interface {
	LoadConfig() (*models.BoardConfig, error)
	ValidateConfig(cfg *models.BoardConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML configuration file.
type viperConfigManager struct {
	// basePath is the directory where .taskboard.yaml resides.
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads the
// configuration file from basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultConfig returns a BoardConfig populated with sensible defaults.
func DefaultConfig() *models.BoardConfig {
	return &models.BoardConfig{
		TaskID: models.TaskIDConfig{
			Style:    models.IDStyleUUID,
			Prefix:   "TASK",
			PadWidth: 5,
		},
		Input: models.InputConfig{
			Placeholder: "Add a new task",
			CharLimit:   256,
		},
		UI: models.UIConfig{
			AltScreen:   true,
			AccentColor: "62",
		},
		EventLog: models.EventLogConfig{
			Enabled: true,
			Path:    ".taskboard_events.jsonl",
		},
	}
}

// LoadConfig reads .taskboard.yaml from the base path. If the file does not
// exist, defaults are returned.
func (cm *viperConfigManager) LoadConfig() (*models.BoardConfig, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("task_id.style", string(cfg.TaskID.Style))
	v.SetDefault("task_id.prefix", cfg.TaskID.Prefix)
	v.SetDefault("input.placeholder", cfg.Input.Placeholder)
	v.SetDefault("ui.alt_screen", cfg.UI.AltScreen)
	v.SetDefault("ui.accent_color", cfg.UI.AccentColor)
	v.SetDefault("event_log.enabled", cfg.EventLog.Enabled)
	v.SetDefault("event_log.path", cfg.EventLog.Path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s config: %w", ConfigFileName, err)
	}

	cfg.TaskID.Style = models.IDStyle(strings.ToLower(v.GetString("task_id.style")))
	cfg.TaskID.Prefix = v.GetString("task_id.prefix")
	cfg.Input.Placeholder = v.GetString("input.placeholder")
	cfg.UI.AltScreen = v.GetBool("ui.alt_screen")
	cfg.UI.AccentColor = v.GetString("ui.accent_color")
	cfg.EventLog.Enabled = v.GetBool("event_log.enabled")
	cfg.EventLog.Path = v.GetString("event_log.path")

	// IsSet distinguishes "not set" from an explicit 0.
	if v.IsSet("task_id.pad_width") {
		cfg.TaskID.PadWidth = v.GetInt("task_id.pad_width")
	}
	if v.IsSet("input.char_limit") {
		cfg.Input.CharLimit = v.GetInt("input.char_limit")
	}

	return cfg, nil
}

// ValidateConfig checks the configuration for invalid values and returns a
// single error listing every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.BoardConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	switch cfg.TaskID.Style {
	case models.IDStyleUUID:
	case models.IDStyleSequence:
		if !validPrefixPattern.MatchString(cfg.TaskID.Prefix) {
			errs = append(errs, fmt.Sprintf(
				"task_id.prefix %q is invalid, must match [A-Z0-9]{1,10}",
				cfg.TaskID.Prefix,
			))
		}
	default:
		errs = append(errs, fmt.Sprintf(
			"task_id.style %q is invalid, must be one of: uuid, sequence",
			cfg.TaskID.Style,
		))
	}

	if cfg.TaskID.PadWidth < 0 || cfg.TaskID.PadWidth > 10 {
		errs = append(errs, fmt.Sprintf(
			"task_id.pad_width %d is invalid, must be between 0 and 10",
			cfg.TaskID.PadWidth,
		))
	}

	if cfg.Input.CharLimit < 0 {
		errs = append(errs, fmt.Sprintf("input.char_limit must be non-negative, got %d", cfg.Input.CharLimit))
	}

	if cfg.UI.AccentColor != "" && !ansiColorPattern.MatchString(cfg.UI.AccentColor) {
		errs = append(errs, fmt.Sprintf(
			"ui.accent_color %q is invalid, use a 0-255 colour index or #rrggbb",
			cfg.UI.AccentColor,
		))
	}

	if cfg.EventLog.Enabled && strings.TrimSpace(cfg.EventLog.Path) == "" {
		errs = append(errs, "event_log.path must not be empty when the event log is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
