package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/esmdiag/internal/ports/primary"
	"github.com/example/esmdiag/internal/wire"
)

// ResolveCmd returns the resolve command
func ResolveCmd() *cobra.Command {
	var (
		namelistPath string
		diagnostic   string
		workers      int
		explain      bool
	)

	cmd := &cobra.Command{
		Use:   "resolve [variable]",
		Short: "Print the existing model files for a variable",
		Long: `Resolve the climatology files for a variable without registering
references or recording a file list.

Examples:
  esmdiag resolve pr -n namelist_hyint.yaml
  esmdiag resolve pr -n namelist_hyint.yaml --explain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			project, cfg, err := loadProject(namelistPath, "")
			if err != nil {
				return err
			}
			if diagnostic != "" {
				if project, err = project.Restrict(diagnostic); err != nil {
					return err
				}
			}

			req := primary.ResolveRequest{
				Project:  project,
				Variable: args[0],
				Workers:  cfg.WorkerCount(workers),
			}

			adapter := wire.ResolverAdapter()
			if explain {
				_, err = adapter.Explain(ctx, req)
			} else {
				_, err = adapter.Resolve(ctx, req)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&namelistPath, "namelist", "n", "", "Namelist file (YAML, TOML, HCL or JSON)")
	cmd.Flags().StringVarP(&diagnostic, "diagnostic", "d", "", "Resolve only this diagnostic's variables")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent existence checks")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show every candidate path and why it was or was not resolved")

	return cmd
}

// FamiliesCmd returns the families command
func FamiliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List model families with a path strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.ResolverAdapter().Families(context.Background())
			return nil
		},
	}
}
