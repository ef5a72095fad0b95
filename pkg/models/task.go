package models

// Task is a single entry on the board. ID is assigned once at creation and
// never changes; Title is stored exactly as typed, surrounding whitespace included.
type Task struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
}

// Action names a per-row control shown next to a task.
type Action string

const (
	ActionEdit   Action = "Edit"
	ActionSave   Action = "Save"
	ActionDelete Action = "Delete"
)
