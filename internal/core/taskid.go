package core

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// TaskIDGenerator produces task IDs that are unique for the lifetime of a
// board. Generated IDs are never reused, even after the task is removed.
type TaskIDGenerator interface {
	GenerateTaskID() string
}

// sequenceTaskIDGenerator hands out PREFIX-00001, PREFIX-00002, ... from an
// in-memory counter. The counter lives and dies with the process.
type sequenceTaskIDGenerator struct {
	prefix   string
	padWidth int
	counter  int
}

// NewSequenceGenerator creates a TaskIDGenerator that formats a monotonically
// increasing counter. padWidth controls the zero-padding width of the numeric
// portion. Use 0 for no padding (e.g., TASK-1).
func NewSequenceGenerator(prefix string, padWidth int) TaskIDGenerator {
	return &sequenceTaskIDGenerator{prefix: prefix, padWidth: padWidth}
}

func (g *sequenceTaskIDGenerator) GenerateTaskID() string {
	g.counter++
	if g.padWidth > 0 {
		return fmt.Sprintf("%s-%0*d", g.prefix, g.padWidth, g.counter)
	}
	return fmt.Sprintf("%s-%d", g.prefix, g.counter)
}

type uuidTaskIDGenerator struct{}

// NewUUIDGenerator creates a TaskIDGenerator backed by random (v4) UUIDs.
func NewUUIDGenerator() TaskIDGenerator {
	return uuidTaskIDGenerator{}
}

func (uuidTaskIDGenerator) GenerateTaskID() string {
	return uuid.NewString()
}

// NewTaskIDGenerator picks a generator for the configured ID style.
// Unknown styles fall back to UUIDs.
func NewTaskIDGenerator(cfg models.TaskIDConfig) TaskIDGenerator {
	if cfg.Style == models.IDStyleSequence {
		prefix := cfg.Prefix
		if prefix == "" {
			prefix = "TASK"
		}
		return NewSequenceGenerator(prefix, cfg.PadWidth)
	}
	return NewUUIDGenerator()
}
