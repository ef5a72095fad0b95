package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

var replayJSON bool

// replayResult is the board state printed after a replay.
type replayResult struct {
	Tasks      []models.Task `json:"tasks"`
	EditingID  string        `json:"editing_id,omitempty"`
	EditBuffer string        `json:"edit_buffer,omitempty"`
	Draft      string        `json:"draft,omitempty"`
}

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Apply a scripted sequence of board actions and print the result",
	Long: `Replay a YAML script of board actions against a fresh, empty board and
print the resulting task list. Nothing is written back; the board is
discarded when the command exits.

Example script:

  steps:
    - op: add
      text: Buy milk
    - op: edit
      task: 1
    - op: type
      text: Buy oat milk
    - op: save
    - op: delete
      task: 1

Ops: draft, add, edit, type, save, cancel, delete. Task positions are 1-based.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := core.LoadReplayScript(args[0])
		if err != nil {
			return err
		}

		cfg := Config
		if cfg == nil {
			cfg = core.DefaultConfig()
		}
		board := core.NewBoard(core.NewTaskIDGenerator(cfg.TaskID), nil)
		if err := script.Apply(board); err != nil {
			return fmt.Errorf("replaying %s: %w", args[0], err)
		}

		return printReplayResult(cmd.OutOrStdout(), board, replayJSON)
	},
}

func printReplayResult(w io.Writer, board *core.Board, asJSON bool) error {
	result := replayResult{
		Tasks:     board.Tasks(),
		EditingID: board.EditingID(),
		Draft:     board.Draft(),
	}
	if result.EditingID != "" {
		result.EditBuffer = board.EditBuffer()
	}

	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("formatting result as JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(result.Tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
	} else {
		fmt.Fprintf(w, "  %-4s %-38s %s\n", "#", "ID", "TITLE")
		fmt.Fprintf(w, "  %-4s %-38s %s\n", "---", "--", "-----")
		for i, t := range result.Tasks {
			fmt.Fprintf(w, "  %-4d %-38s %q\n", i+1, t.ID, t.Title)
		}
	}

	if result.EditingID != "" {
		fmt.Fprintf(w, "\nEditing %s: %q (unsaved)\n", result.EditingID, result.EditBuffer)
	}
	if result.Draft != "" {
		fmt.Fprintf(w, "\nDraft: %q\n", result.Draft)
	}
	return nil
}

func init() {
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Output the resulting board as JSON")
	rootCmd.AddCommand(replayCmd)
}
