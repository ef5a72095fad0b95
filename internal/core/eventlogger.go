package core

// EventLogger is the subset of the observability event log that the board
// needs. Defining it here avoids importing the observability package.
type EventLogger interface {
	LogEvent(eventType string, data map[string]any) error
}

// Board event types.
const (
	EventTaskAdded         = "task.added"
	EventTaskRemoved       = "task.removed"
	EventTaskEditStarted   = "task.edit_started"
	EventTaskEditCommitted = "task.edit_committed"
	EventTaskEditCancelled = "task.edit_cancelled"
)
