package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/esmdiag/internal/wire"
)

// FilesCmd returns the files command
func FilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files [run-id]",
		Short: "Show the file list recorded by a run (default: the latest)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := ""
			if len(args) == 1 {
				runID = args[0]
			}
			_, err := wire.DiagnosticAdapter().Files(context.Background(), runID)
			return err
		},
	}
}
