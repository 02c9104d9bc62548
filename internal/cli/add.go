package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the todo column",
		Long:  `Append a task to the end of the todo column. Arguments are joined with spaces.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, opts, strings.Join(args, " "))
		},
	}
}

func runAdd(cmd *cobra.Command, opts *globalOptions, content string) error {
	a, err := opts.open(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	task, ok, err := a.Store.Add(cmd.Context(), content)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(out, "Nothing to add.")
		return nil
	}
	fmt.Fprintf(out, "Added %s: %s\n", task.ID, task.Content)
	return nil
}
