package observability

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestMetrics_CountsBoardEvents(t *testing.T) {
	log, _ := newTestLog(t)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{Time: base, Type: EventSessionStarted},
		{Time: base.Add(1 * time.Minute), Type: "task.added", Data: map[string]any{"task_id": "T-1", "title_len": 8}},
		{Time: base.Add(2 * time.Minute), Type: "task.added", Data: map[string]any{"task_id": "T-2", "title_len": 3}},
		{Time: base.Add(3 * time.Minute), Type: "task.edit_started", Data: map[string]any{"task_id": "T-1"}},
		{Time: base.Add(4 * time.Minute), Type: "task.edit_committed", Data: map[string]any{"task_id": "T-1", "found": true, "title_len": 0}},
		{Time: base.Add(5 * time.Minute), Type: "task.edit_started", Data: map[string]any{"task_id": "T-2"}},
		{Time: base.Add(6 * time.Minute), Type: "task.edit_cancelled", Data: map[string]any{"task_id": "T-2"}},
		{Time: base.Add(7 * time.Minute), Type: "task.edit_committed", Data: map[string]any{"task_id": "T-9", "found": false, "title_len": 4}},
		{Time: base.Add(8 * time.Minute), Type: "task.removed", Data: map[string]any{"task_id": "T-2"}},
		{Time: base.Add(9 * time.Minute), Type: EventSessionEnded},
	}
	for _, e := range events {
		if err := log.Write(e); err != nil {
			t.Fatalf("writing event: %v", err)
		}
	}

	m, err := NewMetricsCalculator(log).Calculate(base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}

	checks := []struct {
		name      string
		got, want int
	}{
		{"EventCount", m.EventCount, 10},
		{"Sessions", m.Sessions, 1},
		{"TasksAdded", m.TasksAdded, 2},
		{"TasksRemoved", m.TasksRemoved, 1},
		{"EditsStarted", m.EditsStarted, 2},
		{"EditsCommitted", m.EditsCommitted, 2},
		{"EditsCancelled", m.EditsCancelled, 1},
		{"EmptyCommits", m.EmptyCommits, 1},
		{"OrphanedCommits", m.OrphanedCommits, 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}

	if m.OldestEvent == nil || !m.OldestEvent.Equal(base) {
		t.Errorf("OldestEvent = %v, want %v", m.OldestEvent, base)
	}
	if m.NewestEvent == nil || !m.NewestEvent.Equal(base.Add(9*time.Minute)) {
		t.Errorf("NewestEvent = %v, want %v", m.NewestEvent, base.Add(9*time.Minute))
	}
}

func TestMetrics_EmptyLog(t *testing.T) {
	log, _ := newTestLog(t)

	m, err := NewMetricsCalculator(log).Calculate(time.Time{})
	if err != nil {
		t.Fatalf("calculating metrics: %v", err)
	}
	if m.EventCount != 0 || m.OldestEvent != nil || m.NewestEvent != nil {
		t.Errorf("expected empty metrics, got %+v", m)
	}
}

// Property: TasksAdded equals the number of task.added events inside the
// window, whatever order they were written in.
func TestProperty_MetricsTasksAddedMatchesWindow(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		logPath := filepath.Join(t.TempDir(), "events.jsonl")
		el, err := NewJSONLEventLog(logPath)
		if err != nil {
			t.Fatalf("creating event log: %v", err)
		}
		defer el.Close()

		base := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
		cutoff := rapid.IntRange(0, 168).Draw(rt, "cutoffHours")
		n := rapid.IntRange(0, 30).Draw(rt, "numEvents")

		inWindow := 0
		for i := 0; i < n; i++ {
			offset := rapid.IntRange(0, 168).Draw(rt, fmt.Sprintf("offset_%d", i))
			if offset >= cutoff {
				inWindow++
			}
			event := Event{
				Time: base.Add(time.Duration(offset) * time.Hour),
				Type: "task.added",
				Data: map[string]any{"task_id": fmt.Sprintf("T-%d", i)},
			}
			if err := el.Write(event); err != nil {
				t.Fatalf("writing event: %v", err)
			}
		}

		m, err := NewMetricsCalculator(el).Calculate(base.Add(time.Duration(cutoff) * time.Hour))
		if err != nil {
			t.Fatalf("calculating metrics: %v", err)
		}
		if m.TasksAdded != inWindow {
			rt.Errorf("TasksAdded = %d, want %d", m.TasksAdded, inWindow)
		}
		if m.EventCount != inWindow {
			rt.Errorf("EventCount = %d, want %d", m.EventCount, inWindow)
		}
	})
}
