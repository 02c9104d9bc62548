package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/pablasso/kanban/internal/board"
	"github.com/spf13/cobra"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the saved todo column",
		Long:  `Print the todo column as saved. Running and Completed are not saved between sessions.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON array")
	return cmd
}

func runList(cmd *cobra.Command, opts *globalOptions, asJSON bool) error {
	a, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks := a.Store.Tasks(board.ColumnTodo)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tID\tCONTENT")
	for i, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, t.ID, t.Content)
	}
	return w.Flush()
}
