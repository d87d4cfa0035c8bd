package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/task"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all tasks",
		Long: `Delete all tasks.

Clearing an empty list changes nothing and prints "No tasks found".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, runClear)
		},
	}

	return cmd
}

func runClear(ctx context.Context, s *session) error {
	list, err := current(ctx, s)
	if err != nil {
		return err
	}

	_, err = s.tasks.ClearAll(ctx, list)
	if task.IsNoOp(err) {
		return s.out.Result(ClearResult{}, "No tasks found\n")
	}

	res := ClearResult{Cleared: len(list)}
	return finishMutation(s.out, res, "Cleared "+plural(len(list), "task")+"\n"+pendingLine(0), err)
}
