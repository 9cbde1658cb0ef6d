package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/example/esmdiag/internal/cli"
	"github.com/example/esmdiag/internal/config"
	"github.com/example/esmdiag/internal/db"
	"github.com/example/esmdiag/internal/version"
)

func main() {
	// Environment overrides (ESMDIAG_DB, ESMDIAG_NAMELIST) may live in .env
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "esmdiag",
		Short:   "esmdiag - reference registration and model-file resolution for climate diagnostics",
		Version: version.String(),
		Long: `esmdiag records the references (authors, citations, observations, projects)
of climate model diagnostics and resolves the climatology files a diagnostic
reads, from a namelist describing models and diagnostics.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv(db.EnvDBPath) == "" {
				if cwd, err := os.Getwd(); err == nil {
					if cfg, err := config.LoadConfig(cwd); err == nil && cfg.DBPath != "" {
						db.SetPath(cfg.DBPath)
					}
				}
			}
			return cli.SetupLogger(0)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			cli.SyncLogger()
			db.Close()
		},
	}
	cli.BindGlobalFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.ResolveCmd())
	rootCmd.AddCommand(cli.FamiliesCmd())
	rootCmd.AddCommand(cli.FilesCmd())
	rootCmd.AddCommand(cli.RefsCmd())

	// Developer tools
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
