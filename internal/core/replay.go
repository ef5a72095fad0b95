package core

import (
	"fmt"
	"os"

	"github.com/valter-silva-au/taskboard/pkg/models"
	"gopkg.in/yaml.v3"
)

// Replay step operations.
const (
	OpDraft  = "draft"
	OpAdd    = "add"
	OpEdit   = "edit"
	OpType   = "type"
	OpSave   = "save"
	OpCancel = "cancel"
	OpDelete = "delete"
)

var validOps = map[string]bool{
	OpDraft:  true,
	OpAdd:    true,
	OpEdit:   true,
	OpType:   true,
	OpSave:   true,
	OpCancel: true,
	OpDelete: true,
}

// ReplayStep is one user action in a replay script. Task is a 1-based
// position in the list at the time the step runs.
type ReplayStep struct {
	Op   string  `yaml:"op"`
	Text *string `yaml:"text,omitempty"`
	Task int     `yaml:"task,omitempty"`
}

// ReplayScript is a sequence of actions applied to a fresh board, as if a
// user had performed them one by one in the TUI.
type ReplayScript struct {
	Steps []ReplayStep `yaml:"steps"`
}

// ParseReplayScript decodes and validates a YAML replay script.
func ParseReplayScript(data []byte) (*ReplayScript, error) {
	var script ReplayScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parsing replay script: %w", err)
	}

	for i, step := range script.Steps {
		if !validOps[step.Op] {
			return nil, fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
		if step.Task < 0 {
			return nil, fmt.Errorf("step %d: task position must be positive, got %d", i+1, step.Task)
		}
		switch step.Op {
		case OpDraft, OpType:
			if step.Text == nil {
				return nil, fmt.Errorf("step %d: %s requires text", i+1, step.Op)
			}
		case OpEdit, OpDelete:
			if step.Task == 0 {
				return nil, fmt.Errorf("step %d: %s requires a task position", i+1, step.Op)
			}
		}
	}

	return &script, nil
}

// LoadReplayScript reads and parses a replay script from disk.
func LoadReplayScript(path string) (*ReplayScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading replay script: %w", err)
	}
	return ParseReplayScript(data)
}

// Apply runs every step against b in order. It stops at the first step
// that refers to a task position that does not exist.
func (s *ReplayScript) Apply(b *Board) error {
	for i, step := range s.Steps {
		if err := applyStep(b, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

func applyStep(b *Board, step ReplayStep) error {
	switch step.Op {
	case OpDraft:
		b.SetDraft(*step.Text)
	case OpAdd:
		// add with text types it into the input first; bare add submits the
		// current draft.
		if step.Text != nil {
			b.SetDraft(*step.Text)
		}
		b.Add(b.Draft())
	case OpEdit:
		task, err := taskAt(b, step.Task)
		if err != nil {
			return err
		}
		b.BeginEdit(task.ID, task.Title)
	case OpType:
		b.SetEditBuffer(*step.Text)
	case OpSave:
		id := b.EditingID()
		if step.Task != 0 {
			task, err := taskAt(b, step.Task)
			if err != nil {
				return err
			}
			id = task.ID
		}
		b.CommitEdit(id)
	case OpCancel:
		b.CancelEdit()
	case OpDelete:
		task, err := taskAt(b, step.Task)
		if err != nil {
			return err
		}
		b.Remove(task.ID)
	}
	return nil
}

func taskAt(b *Board, pos int) (models.Task, error) {
	tasks := b.Tasks()
	if pos < 1 || pos > len(tasks) {
		return models.Task{}, fmt.Errorf("no task at position %d (board has %d)", pos, len(tasks))
	}
	return tasks[pos-1], nil
}
