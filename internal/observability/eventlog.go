package observability

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event levels.
const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Session lifecycle event types. Board operation types live in core.
const (
	EventSessionStarted = "session.started"
	EventSessionEnded   = "session.ended"
)

// Event represents a single observable event in the system.
type Event struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Type    string         `json:"type"` // e.g. "task.added", "session.started"
	Session string         `json:"session,omitempty"`
	Message string         `json:"msg"`
	Data    map[string]any `json:"data,omitempty"`
}

// EventFilter specifies criteria for reading events. Zero values match
// everything.
type EventFilter struct {
	Since   *time.Time
	Until   *time.Time
	Type    string
	Level   string
	Session string
}

// EventLog defines the interface for writing and reading events.
type EventLog interface {
	Write(event Event) error
	Read(filter EventFilter) ([]Event, error)
	Close() error
}

// jsonlEventLog implements EventLog using an append-only JSONL file.
type jsonlEventLog struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// NewJSONLEventLog opens (or creates) the JSONL file at path for appending.
func NewJSONLEventLog(path string) (EventLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening event log: %w", err)
	}
	return &jsonlEventLog{
		path: path,
		file: f,
	}, nil
}

// Write appends the event as one JSON line. A zero Time or Level is filled
// in with now (UTC) and INFO.
func (l *jsonlEventLog) Write(event Event) error {
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}
	if event.Level == "" {
		event.Level = LevelInfo
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.file.Write(data); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

// Read scans the log file line by line and returns the events matching
// filter, in file order. Malformed lines are skipped.
func (l *jsonlEventLog) Read(filter EventFilter) ([]Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening event log for reading: %w", err)
	}
	defer func() { _ = f.Close() }()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}

		if filter.matches(event) {
			events = append(events, event)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning event log: %w", err)
	}

	return events, nil
}

// Close closes the underlying log file.
func (l *jsonlEventLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("closing event log: %w", err)
	}
	return nil
}

func (f EventFilter) matches(event Event) bool {
	if f.Since != nil && event.Time.Before(*f.Since) {
		return false
	}
	if f.Until != nil && event.Time.After(*f.Until) {
		return false
	}
	if f.Type != "" && event.Type != f.Type {
		return false
	}
	if f.Level != "" && event.Level != f.Level {
		return false
	}
	if f.Session != "" && event.Session != f.Session {
		return false
	}
	return true
}

// SessionLogger stamps every event it writes with a fixed session ID. It
// satisfies the board's EventLogger interface.
type SessionLogger struct {
	log     EventLog
	session string
}

// NewSessionLogger wraps log so that all events carry session.
func NewSessionLogger(log EventLog, session string) *SessionLogger {
	return &SessionLogger{log: log, session: session}
}

// Session returns the session ID.
func (s *SessionLogger) Session() string {
	return s.session
}

// LogEvent writes an INFO event of the given type.
func (s *SessionLogger) LogEvent(eventType string, data map[string]any) error {
	return s.log.Write(Event{
		Time:    time.Now().UTC(),
		Level:   LevelInfo,
		Type:    eventType,
		Session: s.session,
		Message: eventType,
		Data:    data,
	})
}
