package models

// IDStyle selects how new task IDs are generated.
type IDStyle string

const (
	IDStyleUUID     IDStyle = "uuid"
	IDStyleSequence IDStyle = "sequence"
)

// TaskIDConfig controls task ID generation.
type TaskIDConfig struct {
	Style    IDStyle `yaml:"style" mapstructure:"style"`
	Prefix   string  `yaml:"prefix" mapstructure:"prefix"`
	PadWidth int     `yaml:"pad_width" mapstructure:"pad_width"`
}

// InputConfig holds settings for the new-task and edit text inputs.
type InputConfig struct {
	Placeholder string `yaml:"placeholder" mapstructure:"placeholder"`
	CharLimit   int    `yaml:"char_limit" mapstructure:"char_limit"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	AltScreen   bool   `yaml:"alt_screen" mapstructure:"alt_screen"`
	AccentColor string `yaml:"accent_color" mapstructure:"accent_color"`
}

// EventLogConfig controls the JSONL event log.
type EventLogConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// BoardConfig holds all settings read from .taskboard.yaml via Viper.
type BoardConfig struct {
	TaskID   TaskIDConfig   `yaml:"task_id" mapstructure:"task_id"`
	Input    InputConfig    `yaml:"input" mapstructure:"input"`
	UI       UIConfig       `yaml:"ui" mapstructure:"ui"`
	EventLog EventLogConfig `yaml:"event_log" mapstructure:"event_log"`
}
