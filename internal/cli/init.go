package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/esmdiag/internal/config"
	"github.com/example/esmdiag/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var (
		namelistPath string
		workers      int
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the esmdiag database and project config",
		Long: `Initialize the esmdiag database (~/.esmdiag/esmdiag.db unless $ESMDIAG_DB is set)
and write .esmdiag/config.json in the current directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing esmdiag database at %s\n", dbPath)

			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			cfg, err := config.LoadConfigOrDefault(cwd)
			if err != nil {
				return err
			}
			if namelistPath != "" {
				cfg.DefaultNamelist = namelistPath
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			if err := config.SaveConfig(cwd, cfg); err != nil {
				return err
			}

			fmt.Println("✓ Config written to .esmdiag/config.json")
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  esmdiag doctor")
			fmt.Println("  esmdiag run --namelist namelist_hyint.yaml")

			return nil
		},
	}

	cmd.Flags().StringVarP(&namelistPath, "namelist", "n", "", "Default namelist for this directory")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Default number of concurrent existence checks")

	return cmd
}
