package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show pending tasks",
		Long: `Show pending tasks in order, numbered from 1, followed by the pending count.

If the saved list cannot be read it is shown as empty and a warning is logged.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, runList)
		},
	}

	return cmd
}

func runList(ctx context.Context, s *session) error {
	list := s.tasks.Initialize(ctx)
	tasks := s.tasks.GetAll(list)

	return s.out.Result(ListResult{
		Tasks:   tasks,
		Pending: s.tasks.Count(list),
	}, renderList(tasks))
}
