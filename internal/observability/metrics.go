package observability

import (
	"fmt"
	"time"
)

// Metrics holds counts derived from the event log.
type Metrics struct {
	Sessions        int        `json:"sessions"`
	TasksAdded      int        `json:"tasks_added"`
	TasksRemoved    int        `json:"tasks_removed"`
	EditsStarted    int        `json:"edits_started"`
	EditsCommitted  int        `json:"edits_committed"`
	EditsCancelled  int        `json:"edits_cancelled"`
	EmptyCommits    int        `json:"empty_commits"`
	OrphanedCommits int        `json:"orphaned_commits"`
	EventCount      int        `json:"event_count"`
	OldestEvent     *time.Time `json:"oldest_event,omitempty"`
	NewestEvent     *time.Time `json:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate reads all events since the given time and aggregates them.
// Sessions counts distinct session.started events.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{EventCount: len(events)}

	for _, event := range events {
		t := event.Time
		if m.OldestEvent == nil || t.Before(*m.OldestEvent) {
			m.OldestEvent = &t
		}
		if m.NewestEvent == nil || t.After(*m.NewestEvent) {
			m.NewestEvent = &t
		}

		switch event.Type {
		case EventSessionStarted:
			m.Sessions++
		case "task.added":
			m.TasksAdded++
		case "task.removed":
			m.TasksRemoved++
		case "task.edit_started":
			m.EditsStarted++
		case "task.edit_committed":
			m.EditsCommitted++
			if n, ok := event.Data["title_len"].(float64); ok && n == 0 {
				m.EmptyCommits++
			}
			if found, ok := event.Data["found"].(bool); ok && !found {
				m.OrphanedCommits++
			}
		case "task.edit_cancelled":
			m.EditsCancelled++
		}
	}

	return m, nil
}
