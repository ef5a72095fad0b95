package core

import (
	"testing"

	"github.com/valter-silva-au/taskboard/pkg/models"
)

// recordingLogger captures events written by the board.
type recordingLogger struct {
	types []string
	data  []map[string]any
}

func (r *recordingLogger) LogEvent(eventType string, data map[string]any) error {
	r.types = append(r.types, eventType)
	r.data = append(r.data, data)
	return nil
}

func newTestBoard() *Board {
	return NewBoard(NewSequenceGenerator("TASK", 5), nil)
}

func TestBoard_BuyMilkScenario(t *testing.T) {
	b := newTestBoard()

	task, ok := b.Add("Buy milk")
	if !ok {
		t.Fatal("expected Add to accept non-blank text")
	}
	x := task.ID
	assertTasks(t, b, []models.Task{{ID: x, Title: "Buy milk"}})

	if _, ok := b.Add("  "); ok {
		t.Error("expected Add to ignore blank text")
	}
	assertTasks(t, b, []models.Task{{ID: x, Title: "Buy milk"}})

	b.BeginEdit(x, "Buy milk")
	b.SetEditBuffer("Buy oat milk")
	b.CommitEdit(x)
	assertTasks(t, b, []models.Task{{ID: x, Title: "Buy oat milk"}})

	b.Remove(x)
	assertTasks(t, b, []models.Task{})
}

func TestBoard_Add(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantAdd bool
	}{
		{"plain", "Write report", true},
		{"untrimmed kept as is", "  padded  ", true},
		{"empty", "", false},
		{"spaces", "   ", false},
		{"tabs and newlines", "\t\n ", false},
		{"single char", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBoard()
			b.SetDraft(tt.text)

			task, ok := b.Add(tt.text)
			if ok != tt.wantAdd {
				t.Fatalf("Add(%q) ok = %v, want %v", tt.text, ok, tt.wantAdd)
			}
			if !tt.wantAdd {
				if b.Len() != 0 {
					t.Errorf("Len() = %d, want 0", b.Len())
				}
				if b.Draft() != tt.text {
					t.Errorf("Draft() = %q, want draft left untouched as %q", b.Draft(), tt.text)
				}
				return
			}
			if task.Title != tt.text {
				t.Errorf("Title = %q, want %q", task.Title, tt.text)
			}
			if b.Draft() != "" {
				t.Errorf("Draft() = %q, want cleared", b.Draft())
			}
		})
	}
}

func TestBoard_AddAppendsInCreationOrder(t *testing.T) {
	b := newTestBoard()
	b.Add("first")
	b.Add("second")
	b.Add("third")

	tasks := b.Tasks()
	want := []string{"TASK-00001", "TASK-00002", "TASK-00003"}
	for i, id := range want {
		if tasks[i].ID != id {
			t.Errorf("tasks[%d].ID = %q, want %q", i, tasks[i].ID, id)
		}
	}
}

func TestBoard_RemoveUnknownIsNoop(t *testing.T) {
	b := newTestBoard()
	b.Add("a")
	b.Add("b")
	before := b.Tasks()

	if b.Remove("TASK-99999") {
		t.Error("expected Remove of unknown id to report false")
	}
	assertTasks(t, b, before)
}

func TestBoard_RemovePreservesOrder(t *testing.T) {
	b := newTestBoard()
	a, _ := b.Add("a")
	mid, _ := b.Add("b")
	c, _ := b.Add("c")

	if !b.Remove(mid.ID) {
		t.Fatal("expected Remove to report true")
	}
	assertTasks(t, b, []models.Task{a, c})
}

func TestBoard_IDsNotReusedAfterRemove(t *testing.T) {
	b := newTestBoard()
	first, _ := b.Add("a")
	b.Remove(first.ID)
	second, _ := b.Add("b")

	if second.ID == first.ID {
		t.Errorf("id %q reused after removal", first.ID)
	}
}

func TestBoard_RemoveEditingTargetClearsEdit(t *testing.T) {
	b := newTestBoard()
	task, _ := b.Add("draft plan")
	b.BeginEdit(task.ID, task.Title)
	b.SetEditBuffer("final plan")

	b.Remove(task.ID)

	if got := b.EditingID(); got != "" {
		t.Errorf("EditingID() = %q, want none", got)
	}
	if got := b.EditBuffer(); got != "" {
		t.Errorf("EditBuffer() = %q, want cleared", got)
	}
}

func TestBoard_RemoveOtherTaskKeepsEdit(t *testing.T) {
	b := newTestBoard()
	keep, _ := b.Add("keep")
	other, _ := b.Add("other")
	b.BeginEdit(keep.ID, keep.Title)
	b.SetEditBuffer("kept")

	b.Remove(other.ID)

	if got := b.EditingID(); got != keep.ID {
		t.Errorf("EditingID() = %q, want %q", got, keep.ID)
	}
	if got := b.EditBuffer(); got != "kept" {
		t.Errorf("EditBuffer() = %q, want %q", got, "kept")
	}
}

func TestBoard_BeginEditReplacesPriorBuffer(t *testing.T) {
	b := newTestBoard()
	first, _ := b.Add("one")
	second, _ := b.Add("two")

	b.BeginEdit(first.ID, first.Title)
	b.SetEditBuffer("unsaved")
	b.BeginEdit(second.ID, second.Title)

	if got := b.EditingID(); got != second.ID {
		t.Errorf("EditingID() = %q, want %q", got, second.ID)
	}
	if got := b.EditBuffer(); got != "two" {
		t.Errorf("EditBuffer() = %q, want %q", got, "two")
	}
	if got, _ := b.Task(first.ID); got.Title != "one" {
		t.Errorf("first title = %q, want unchanged %q", got.Title, "one")
	}
}

func TestBoard_EditBufferDoesNotTouchTitle(t *testing.T) {
	b := newTestBoard()
	task, _ := b.Add("original")
	b.BeginEdit(task.ID, task.Title)
	b.SetEditBuffer("changed")

	if got, _ := b.Task(task.ID); got.Title != "original" {
		t.Errorf("Title = %q before commit, want %q", got.Title, "original")
	}
}

func TestBoard_CommitEditAllowsEmptyTitle(t *testing.T) {
	b := newTestBoard()
	task, _ := b.Add("something")
	b.BeginEdit(task.ID, task.Title)
	b.SetEditBuffer("")

	if !b.CommitEdit(task.ID) {
		t.Fatal("expected CommitEdit to find the task")
	}
	if got, _ := b.Task(task.ID); got.Title != "" {
		t.Errorf("Title = %q, want empty", got.Title)
	}
}

func TestBoard_CommitEditMissingIDStillClears(t *testing.T) {
	b := newTestBoard()
	task, _ := b.Add("something")
	b.BeginEdit(task.ID, task.Title)
	b.SetEditBuffer("new")

	if b.CommitEdit("TASK-99999") {
		t.Error("expected CommitEdit of unknown id to report false")
	}
	if b.EditingID() != "" || b.EditBuffer() != "" {
		t.Errorf("editing state not cleared: id=%q buffer=%q", b.EditingID(), b.EditBuffer())
	}
	if got, _ := b.Task(task.ID); got.Title != "something" {
		t.Errorf("Title = %q, want unchanged", got.Title)
	}
}

func TestBoard_CancelEdit(t *testing.T) {
	b := newTestBoard()
	task, _ := b.Add("keep me")
	b.BeginEdit(task.ID, task.Title)
	b.SetEditBuffer("discard me")

	b.CancelEdit()

	if b.EditingID() != "" {
		t.Errorf("EditingID() = %q, want none", b.EditingID())
	}
	if got, _ := b.Task(task.ID); got.Title != "keep me" {
		t.Errorf("Title = %q, want %q", got.Title, "keep me")
	}
}

func TestBoard_BeginEditUnknownIDReadsAsNone(t *testing.T) {
	b := newTestBoard()
	b.Add("a")
	b.BeginEdit("TASK-99999", "ghost")

	if got := b.EditingID(); got != "" {
		t.Errorf("EditingID() = %q, want none for a task that does not exist", got)
	}
	for _, row := range b.Rows() {
		if row.Editing {
			t.Errorf("row %q rendered as editing", row.Task.ID)
		}
	}
}

func TestBoard_Rows(t *testing.T) {
	b := newTestBoard()
	first, _ := b.Add("first")
	second, _ := b.Add("second")
	b.BeginEdit(second.ID, second.Title)
	b.SetEditBuffer("second, revised")

	rows := b.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	if rows[0].Task.ID != first.ID || rows[0].Editing || rows[0].Text != "first" {
		t.Errorf("rows[0] = %+v, want viewing %q", rows[0], "first")
	}
	assertActions(t, rows[0].Actions, models.ActionEdit, models.ActionDelete)

	if !rows[1].Editing || rows[1].Text != "second, revised" {
		t.Errorf("rows[1] = %+v, want editing with buffer text", rows[1])
	}
	if rows[1].Task.Title != "second" {
		t.Errorf("rows[1].Task.Title = %q, want stored title %q", rows[1].Task.Title, "second")
	}
	assertActions(t, rows[1].Actions, models.ActionSave, models.ActionDelete)
}

func TestBoard_TasksReturnsCopy(t *testing.T) {
	b := newTestBoard()
	b.Add("original")

	tasks := b.Tasks()
	tasks[0].Title = "mutated"

	if got := b.Tasks()[0].Title; got != "original" {
		t.Errorf("board title = %q after mutating copy, want %q", got, "original")
	}
}

func TestBoard_LogsEvents(t *testing.T) {
	rec := &recordingLogger{}
	b := NewBoard(NewSequenceGenerator("T", 0), rec)

	task, _ := b.Add("hello")
	b.Add(" ")
	b.BeginEdit(task.ID, task.Title)
	b.CommitEdit(task.ID)
	b.BeginEdit(task.ID, task.Title)
	b.CancelEdit()
	b.Remove(task.ID)
	b.Remove(task.ID)

	want := []string{
		EventTaskAdded,
		EventTaskEditStarted,
		EventTaskEditCommitted,
		EventTaskEditStarted,
		EventTaskEditCancelled,
		EventTaskRemoved,
	}
	if len(rec.types) != len(want) {
		t.Fatalf("logged %v, want %v", rec.types, want)
	}
	for i := range want {
		if rec.types[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q", i, rec.types[i], want[i])
		}
	}

	for _, d := range rec.data {
		if _, ok := d["title"]; ok {
			t.Errorf("event data %v carries a title", d)
		}
	}
	if got := rec.data[0]["title_len"]; got != 5 {
		t.Errorf("title_len = %v, want 5", got)
	}
}

func TestNewBoard_DefaultsToUUIDs(t *testing.T) {
	b := NewBoard(nil, nil)
	task, _ := b.Add("x")
	if len(task.ID) != 36 {
		t.Errorf("ID = %q, want a UUID", task.ID)
	}
}

func assertTasks(t *testing.T, b *Board, want []models.Task) {
	t.Helper()
	got := b.Tasks()
	if len(got) != len(want) {
		t.Fatalf("tasks = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tasks[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func assertActions(t *testing.T, got []models.Action, want ...models.Action) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("actions[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
