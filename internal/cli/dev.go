package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/esmdiag/internal/db"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for working with a scratch esmdiag database.

These commands require ESMDIAG_DB to point at a dev database, so they
never touch ~/.esmdiag/esmdiag.db by accident.`,
	}

	cmd.AddCommand(devResetCmd())
	return cmd
}

func devResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset dev database with fresh fixtures",
		Long: `Delete the dev database and recreate it with fixture data.

This command:
1. Deletes the existing dev database file
2. Creates a fresh database with the current schema
3. Seeds the hyint references and a sample file list

Safety: This command requires ESMDIAG_DB to be set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Safety check: require ESMDIAG_DB to be set
			dbPath := os.Getenv(db.EnvDBPath)
			if dbPath == "" {
				return fmt.Errorf("%s not set\n\nThis safety check prevents accidental reset of your main database", db.EnvDBPath)
			}

			// Confirmation unless --force
			if !force {
				fmt.Printf("This will delete and recreate: %s\n", dbPath)
				fmt.Print("Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			// Close any existing DB connection
			db.Close()

			// Delete existing database
			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete database: %w", err)
			}
			fmt.Printf("✓ Deleted %s\n", dbPath)

			// Create fresh database with schema
			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}
			fmt.Println("✓ Created fresh database with schema")

			// Seed fixtures
			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Seeded fixture data")

			fmt.Println("\nDev database reset complete!")
			fmt.Println("\nSeeded entities:")
			fmt.Println("  - 1 reference record (hyint.r)")
			fmt.Println("  - 2 file list entries")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
