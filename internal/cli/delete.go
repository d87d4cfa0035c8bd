package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tasklist/internal/task"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <number>",
		Aliases:       []string{"rm"},
		Short:         "Delete a task",
		Long:          `Delete task <number> (as shown by list). Later tasks move up by one.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				index, err := parseTaskNumber(s.out, args[0])
				if err != nil {
					return err
				}
				return runDelete(ctx, s, index)
			})
		},
	}

	return cmd
}

func runDelete(ctx context.Context, s *session, index int) error {
	list, err := current(ctx, s)
	if err != nil {
		return err
	}

	out, err := s.tasks.RemoveAt(ctx, list, index)
	if task.IsIndexOutOfRange(err) {
		return indexError(s.out, index, err)
	}

	removed := list[index]
	res := MutationResult{
		Action:  "delete",
		Number:  index + 1,
		Task:    removed,
		Changed: true,
		Tasks:   s.tasks.GetAll(out),
		Pending: s.tasks.Count(out),
	}
	return finishMutation(s.out, res, fmt.Sprintf("Deleted %d: %s\n", index+1, removed)+pendingLine(res.Pending), err)
}
