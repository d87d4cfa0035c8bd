package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <task...>",
		Short: "Add a task to the end of the list",
		Long: `Add a task to the end of the list. Arguments are joined with spaces.

Blank input is ignored.

Example:
  tasks add buy milk
  tasks add "call the dentist"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, func(ctx context.Context, s *session) error {
				return runAdd(ctx, s, taskText(args))
			})
		},
	}

	return cmd
}

func runAdd(ctx context.Context, s *session, text string) error {
	list, err := current(ctx, s)
	if err != nil {
		return err
	}

	out, err := s.tasks.Add(ctx, list, text)
	if len(out) == len(list) {
		return s.out.Result(MutationResult{
			Action:  "add",
			Changed: false,
			Tasks:   s.tasks.GetAll(out),
			Pending: s.tasks.Count(out),
		}, "Nothing to add\n")
	}

	n := s.tasks.Count(out)
	res := MutationResult{
		Action:  "add",
		Number:  n,
		Task:    text,
		Changed: true,
		Tasks:   s.tasks.GetAll(out),
		Pending: n,
	}
	return finishMutation(s.out, res, fmt.Sprintf("Added %d: %s\n", n, text)+pendingLine(n), err)
}
