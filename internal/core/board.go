// Package core contains the task board state machine together with its
// supporting services: task ID generation, configuration loading, and
// replay scripts.
package core

import (
	"slices"
	"strings"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

// Board owns the task list and the pending input state of a single UI
// session. All mutation goes through its methods; none of them fail.
//
// A Board is not safe for concurrent use. The TUI drives it from Bubble
// Tea's Update loop, which already serialises events.
type Board struct {
	tasks      []models.Task
	draft      string
	editingID  string
	editBuffer string

	idGen  TaskIDGenerator
	events EventLogger
}

// Row is the view model of one task as it should be rendered.
type Row struct {
	Task    models.Task
	Editing bool
	// Text is the stored title, or the edit buffer while editing.
	Text    string
	Actions []models.Action
}

// NewBoard creates an empty board. idGen defaults to UUIDs when nil;
// events may be nil.
func NewBoard(idGen TaskIDGenerator, events EventLogger) *Board {
	if idGen == nil {
		idGen = NewUUIDGenerator()
	}
	return &Board{idGen: idGen, events: events}
}

// SetDraft replaces the new-task input buffer.
func (b *Board) SetDraft(text string) {
	b.draft = text
}

// Draft returns the new-task input buffer.
func (b *Board) Draft() string {
	return b.draft
}

// Add appends a task titled text and clears the draft. Text that is blank
// after trimming is ignored and the draft is left as is. The title is
// stored untrimmed.
func (b *Board) Add(text string) (models.Task, bool) {
	if strings.TrimSpace(text) == "" {
		return models.Task{}, false
	}

	task := models.Task{
		ID:    b.idGen.GenerateTaskID(),
		Title: text,
	}
	b.tasks = append(b.tasks, task)
	b.draft = ""

	b.logEvent(EventTaskAdded, map[string]any{
		"task_id":   task.ID,
		"title_len": len(task.Title),
	})
	return task, true
}

// Remove deletes the task with the given ID, preserving the order of the
// rest. Removing the task under edit also ends the edit. Unknown IDs are
// ignored.
func (b *Board) Remove(id string) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}

	b.tasks = slices.Delete(b.tasks, idx, idx+1)
	if b.editingID == id {
		b.clearEdit()
	}

	b.logEvent(EventTaskRemoved, map[string]any{"task_id": id})
	return true
}

// BeginEdit makes id the single task under edit and seeds the edit buffer
// with currentTitle, discarding any unsaved buffer. Callers pass the ID of
// an existing task; it is not checked here.
func (b *Board) BeginEdit(id, currentTitle string) {
	b.editingID = id
	b.editBuffer = currentTitle

	b.logEvent(EventTaskEditStarted, map[string]any{"task_id": id})
}

// SetEditBuffer replaces the staged title of the task under edit.
func (b *Board) SetEditBuffer(text string) {
	b.editBuffer = text
}

// EditBuffer returns the staged title.
func (b *Board) EditBuffer() string {
	return b.editBuffer
}

// CommitEdit writes the edit buffer into the title of the task with the
// given ID. Empty titles are accepted. The editing state is cleared even
// when no task matches.
func (b *Board) CommitEdit(id string) bool {
	idx := b.indexOf(id)
	found := idx >= 0
	if found {
		b.tasks[idx].Title = b.editBuffer
	}

	b.logEvent(EventTaskEditCommitted, map[string]any{
		"task_id":   id,
		"found":     found,
		"title_len": len(b.editBuffer),
	})
	b.clearEdit()
	return found
}

// CancelEdit ends the current edit without touching any stored title.
func (b *Board) CancelEdit() {
	id := b.EditingID()
	b.clearEdit()
	if id != "" {
		b.logEvent(EventTaskEditCancelled, map[string]any{"task_id": id})
	}
}

// EditingID returns the ID of the task under edit, or "" when none. An ID
// left over from a task that no longer exists counts as none.
func (b *Board) EditingID() string {
	if b.editingID == "" || b.indexOf(b.editingID) < 0 {
		return ""
	}
	return b.editingID
}

// Tasks returns a copy of the task list in creation order.
func (b *Board) Tasks() []models.Task {
	out := make([]models.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Task returns the task with the given ID.
func (b *Board) Task(id string) (models.Task, bool) {
	idx := b.indexOf(id)
	if idx < 0 {
		return models.Task{}, false
	}
	return b.tasks[idx], true
}

// Len returns the number of tasks.
func (b *Board) Len() int {
	return len(b.tasks)
}

// Rows renders the board state into one Row per task, in order.
func (b *Board) Rows() []Row {
	editing := b.EditingID()
	rows := make([]Row, 0, len(b.tasks))
	for _, t := range b.tasks {
		row := Row{Task: t, Text: t.Title}
		if t.ID == editing {
			row.Editing = true
			row.Text = b.editBuffer
			row.Actions = []models.Action{models.ActionSave, models.ActionDelete}
		} else {
			row.Actions = []models.Action{models.ActionEdit, models.ActionDelete}
		}
		rows = append(rows, row)
	}
	return rows
}

func (b *Board) indexOf(id string) int {
	for i, t := range b.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) clearEdit() {
	b.editingID = ""
	b.editBuffer = ""
}

func (b *Board) logEvent(eventType string, data map[string]any) {
	if b.events != nil {
		_ = b.events.LogEvent(eventType, data)
	}
}
