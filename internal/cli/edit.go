package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/task"
)

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <number> <task...>",
		Short: "Replace the text of a task",
		Long: `Replace the text of task <number> (as shown by list).

Example:
  tasks edit 2 buy oat milk`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				index, err := parseTaskNumber(s.out, args[0])
				if err != nil {
					return err
				}
				return runEdit(ctx, s, index, taskText(args[1:]))
			})
		},
	}

	return cmd
}

func runEdit(ctx context.Context, s *session, index int, text string) error {
	list, err := current(ctx, s)
	if err != nil {
		return err
	}

	out, err := s.tasks.ReplaceAt(ctx, list, index, text)
	if task.IsIndexOutOfRange(err) {
		return indexError(s.out, index, err)
	}

	res := MutationResult{
		Action:  "edit",
		Number:  index + 1,
		Task:    text,
		Changed: true,
		Tasks:   s.tasks.GetAll(out),
		Pending: s.tasks.Count(out),
	}
	return finishMutation(s.out, res, fmt.Sprintf("Updated %d: %s\n", index+1, text)+pendingLine(res.Pending), err)
}
