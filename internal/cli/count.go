package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "count",
		Short:         "Show the number of pending tasks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, runCount)
		},
	}

	return cmd
}

func runCount(ctx context.Context, s *session) error {
	n := s.tasks.Count(s.tasks.Initialize(ctx))
	return s.out.Result(CountResult{Pending: n}, pendingLine(n))
}
