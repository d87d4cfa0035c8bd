package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// InfoResult is the JSON payload for info.
type InfoResult struct {
	Database   string `json:"database"`
	KeyFile    string `json:"key_file"`
	StorageKey string `json:"storage_key"`
	Revision   int64  `json:"revision"` // number of saves of the task slot
	Slots      int    `json:"slots"`
	Pending    int    `json:"pending"`
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info",
		Short:         "Show where tasks are stored",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(rootOpts, cmd, runInfo)
		},
	}

	return cmd
}

func runInfo(ctx context.Context, s *session) error {
	list := s.tasks.Initialize(ctx)

	rev, err := s.db.Revision(ctx, s.tasks.Key())
	if err != nil {
		return s.out.fail(ExitFailure, ErrCodeStorageRead, err.Error(), nil)
	}
	keys, err := s.db.Keys(ctx)
	if err != nil {
		return s.out.fail(ExitFailure, ErrCodeStorageRead, err.Error(), nil)
	}

	res := InfoResult{
		Database:   s.cfg.Database,
		KeyFile:    s.cfg.KeyFile,
		StorageKey: s.tasks.Key(),
		Revision:   rev,
		Slots:      len(keys),
		Pending:    s.tasks.Count(list),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Database:    %s\n", res.Database)
	fmt.Fprintf(&b, "Key file:    %s\n", res.KeyFile)
	fmt.Fprintf(&b, "Storage key: %s\n", res.StorageKey)
	fmt.Fprintf(&b, "Revision:    %d\n", res.Revision)
	fmt.Fprintf(&b, "Slots:       %d\n", res.Slots)
	b.WriteString(printer.Sprintf("Pending:     %d\n", res.Pending))
	return s.out.Result(res, b.String())
}
