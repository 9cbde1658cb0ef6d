package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/esmdiag/internal/adapters/cli"
	"github.com/example/esmdiag/internal/ports/primary"
	"github.com/example/esmdiag/internal/wire"
)

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	var (
		namelistPath string
		diagnostic   string
		variable     string
		workers      int
		fileListOut  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Register a diagnostic's references and resolve its model files",
		Long: `Run the reference registration and model-file resolution steps of a diagnostic.

The diagnostic's references are registered (an existing record is kept),
the climatology files for the target variable are resolved, and the
resolved paths are appended to the run's file list.

Examples:
  esmdiag run --namelist namelist_hyint.yaml
  esmdiag run -n namelist.yaml --diagnostic hyint --variable pr --workers 8
  esmdiag run -n namelist.yaml --filelist-out filelist.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			project, cfg, err := loadProject(namelistPath, diagnostic)
			if err != nil {
				return err
			}

			resp, err := wire.DiagnosticAdapter().Run(ctx, primary.RunDiagnosticRequest{
				Project:  project,
				Variable: variable,
				Workers:  cfg.WorkerCount(workers),
			})
			if err != nil {
				return fmt.Errorf("diagnostic run failed: %w", err)
			}

			if fileListOut != "" {
				f, err := os.OpenFile(fileListOut, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
				if err != nil {
					return fmt.Errorf("failed to open file list: %w", err)
				}
				defer f.Close()
				if err := cliadapter.WriteFileList(f, resp.Paths); err != nil {
					return fmt.Errorf("failed to write file list: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&namelistPath, "namelist", "n", "", "Namelist file (YAML, TOML, HCL or JSON)")
	cmd.Flags().StringVarP(&diagnostic, "diagnostic", "d", "", "Diagnostic to run (default: the namelist's first)")
	cmd.Flags().StringVar(&variable, "variable", "", "Target variable (default: the diagnostic's first)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent existence checks")
	cmd.Flags().StringVar(&fileListOut, "filelist-out", "", "Also append resolved paths to this text file")

	return cmd
}
