package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// focusArea says which part of the board receives keys when no task is
// being edited.
type focusArea int

const (
	focusInput focusArea = iota
	focusList
)

type boardKeyMap struct {
	Add        key.Binding
	Up         key.Binding
	Down       key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Save       key.Binding
	Cancel     key.Binding
	EditDelete key.Binding
	Switch     key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Add:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add task")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "x", "delete"), key.WithHelp("d", "delete")),
		Save:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		EditDelete: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Switch:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// contextHelp adapts a fixed list of bindings to help.KeyMap.
type contextHelp []key.Binding

func (h contextHelp) ShortHelp() []key.Binding  { return h }
func (h contextHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

type boardStyles struct {
	title      lipgloss.Style
	input      lipgloss.Style
	inputFocus lipgloss.Style
	row        lipgloss.Style
	rowActive  lipgloss.Style
	cursor     lipgloss.Style
	actionKey  lipgloss.Style
	action     lipgloss.Style
	empty      lipgloss.Style
}

func newBoardStyles(accent string) boardStyles {
	if accent == "" {
		accent = "62"
	}
	accentColor := lipgloss.Color(accent)
	return boardStyles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(accentColor).
			Padding(0, 1),
		input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		inputFocus: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1),
		row:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		rowActive: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Bold(true),
		cursor:    lipgloss.NewStyle().Foreground(accentColor).Bold(true),
		actionKey: lipgloss.NewStyle().Foreground(accentColor),
		action:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}

type boardModel struct {
	board  *core.Board
	input  textinput.Model
	editor textinput.Model
	focus  focusArea
	cursor int

	keys   boardKeyMap
	help   help.Model
	styles boardStyles

	width  int
	height int
}

func newBoardModel(board *core.Board, cfg *models.BoardConfig) boardModel {
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	input := textinput.New()
	input.Placeholder = cfg.Input.Placeholder
	input.CharLimit = cfg.Input.CharLimit
	input.Prompt = "+ "
	input.Focus()

	editor := textinput.New()
	editor.CharLimit = cfg.Input.CharLimit
	editor.Prompt = ""

	return boardModel{
		board:  board,
		input:  input,
		editor: editor,
		focus:  focusInput,
		keys:   defaultBoardKeyMap(),
		help:   help.New(),
		styles: newBoardStyles(cfg.UI.AccentColor),
	}
}

func (m boardModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m boardModel) editing() bool {
	return m.board.EditingID() != ""
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if w := msg.Width - 8; w > 10 {
			m.input.Width = w
			m.editor.Width = w / 2
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch {
		case m.editing():
			return m.updateEditing(msg)
		case m.focus == focusInput:
			return m.updateInput(msg)
		default:
			return m.updateList(msg)
		}
	}

	// Cursor blink and other internal messages go to whichever input is live.
	var cmd tea.Cmd
	if m.editing() {
		m.editor, cmd = m.editor.Update(msg)
	} else if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m boardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		if _, ok := m.board.Add(m.board.Draft()); ok {
			m.cursor = m.board.Len() - 1
		}
		m.input.SetValue(m.board.Draft())
		return m, nil

	case key.Matches(msg, m.keys.Switch):
		if m.board.Len() == 0 {
			return m, nil
		}
		m.focus = focusList
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.board.SetDraft(m.input.Value())
	return m, cmd
}

func (m boardModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.board.Tasks()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Switch):
		m.focus = focusInput
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[m.cursor]
		m.board.BeginEdit(task.ID, task.Title)
		m.editor.SetValue(m.board.EditBuffer())
		m.editor.CursorEnd()
		cmd := m.editor.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if len(tasks) == 0 {
			return m, nil
		}
		m.board.Remove(tasks[m.cursor].ID)
		return m.afterRemove()
	}

	return m, nil
}

func (m boardModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.board.CommitEdit(m.board.EditingID())
		m.stopEditing()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.board.CancelEdit()
		m.stopEditing()
		return m, nil

	case key.Matches(msg, m.keys.EditDelete):
		m.board.Remove(m.board.EditingID())
		m.stopEditing()
		return m.afterRemove()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.board.SetEditBuffer(m.editor.Value())
	return m, cmd
}

func (m *boardModel) stopEditing() {
	m.editor.Blur()
	m.editor.Reset()
}

// afterRemove keeps the cursor on a valid row and hands focus back to the
// input once the list is empty.
func (m boardModel) afterRemove() (tea.Model, tea.Cmd) {
	n := m.board.Len()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if n == 0 {
		m.cursor = 0
		m.focus = focusInput
		cmd := m.input.Focus()
		return m, cmd
	}
	return m, nil
}

func (m boardModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.title.Render(" Task Manager "))
	b.WriteString("\n\n")

	inputStyle := m.styles.input
	if m.focus == focusInput && !m.editing() {
		inputStyle = m.styles.inputFocus
	}
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n\n")

	b.WriteString(m.renderRows())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.contextHelp()))

	return b.String()
}

func (m boardModel) renderRows() string {
	rows := m.board.Rows()
	if len(rows) == 0 {
		return m.styles.empty.Render("  No tasks yet.") + "\n"
	}

	var b strings.Builder
	for i, row := range rows {
		selected := m.focus == focusList && i == m.cursor

		marker := "  "
		if selected || row.Editing {
			marker = m.styles.cursor.Render("› ")
		}

		var text string
		switch {
		case row.Editing:
			text = m.editor.View()
		case selected:
			text = m.styles.rowActive.Render(row.Text)
		default:
			text = m.styles.row.Render(row.Text)
		}

		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, text, m.renderActions(row)))
	}
	return b.String()
}

func (m boardModel) renderActions(row core.Row) string {
	parts := make([]string, 0, len(row.Actions))
	for _, a := range row.Actions {
		parts = append(parts, m.styles.actionKey.Render(m.actionKey(a, row.Editing))+" "+m.styles.action.Render(string(a)))
	}
	return strings.Join(parts, "  ")
}

func (m boardModel) actionKey(a models.Action, editing bool) string {
	switch a {
	case models.ActionEdit:
		return m.keys.Edit.Help().Key
	case models.ActionSave:
		return m.keys.Save.Help().Key
	case models.ActionDelete:
		if editing {
			return m.keys.EditDelete.Help().Key
		}
		return m.keys.Delete.Help().Key
	default:
		return ""
	}
}

func (m boardModel) contextHelp() contextHelp {
	switch {
	case m.editing():
		return contextHelp{m.keys.Save, m.keys.Cancel, m.keys.EditDelete, m.keys.ForceQuit}
	case m.focus == focusInput:
		return contextHelp{m.keys.Add, m.keys.Switch, m.keys.ForceQuit}
	default:
		return contextHelp{m.keys.Up, m.keys.Down, m.keys.Edit, m.keys.Delete, m.keys.Switch, m.keys.Quit}
	}
}

// runBoard opens the interactive board for one session.
func runBoard(cmd *cobra.Command, args []string) error {
	cfg := Config
	if cfg == nil {
		cfg = core.DefaultConfig()
	}

	var events *observability.SessionLogger
	var boardEvents core.EventLogger
	if EventLog != nil {
		events = observability.NewSessionLogger(EventLog, uuid.NewString())
		boardEvents = events
		_ = events.LogEvent(observability.EventSessionStarted, nil)
	}

	board := core.NewBoard(core.NewTaskIDGenerator(cfg.TaskID), boardEvents)

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(newBoardModel(board, cfg), opts...)
	_, err := p.Run()

	if events != nil {
		_ = events.LogEvent(observability.EventSessionEnded, map[string]any{"tasks": board.Len()})
	}
	if err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}
