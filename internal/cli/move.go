package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pablasso/kanban/internal/board"
	"github.com/spf13/cobra"
)

func newMoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Reorder a task within the todo column",
		Long: `Move the task at position <from> to position <to> in the todo column.
Positions start at 1, as shown by 'kanban list'. A <to> past the end moves
the task to the end.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			to, err := parsePosition(args[1])
			if err != nil {
				return err
			}
			return runMove(cmd, opts, from, to)
		},
	}
}

func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: must be a number starting at 1", s)
	}
	return n, nil
}

func runMove(cmd *cobra.Command, opts *globalOptions, from, to int) error {
	a, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks := a.Store.Tasks(board.ColumnTodo)
	_, err = a.Store.ApplyDrag(cmd.Context(), board.DragResult{
		Source:      board.Location{Column: board.ColumnTodo, Index: from - 1},
		Destination: &board.Location{Column: board.ColumnTodo, Index: to - 1},
	})
	if err != nil {
		if errors.Is(err, board.ErrIndexOutOfRange) {
			return fmt.Errorf("no task at position %d (todo has %d)", from, len(tasks))
		}
		return err
	}

	moved := tasks[from-1]
	final, _ := a.Store.Board().Find(moved.ID)
	fmt.Fprintf(cmd.OutOrStdout(), "Moved %q to position %d\n", moved.Content, final.Index+1)
	return nil
}
