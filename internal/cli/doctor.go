package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/esmdiag/internal/config"
	"github.com/example/esmdiag/internal/db"
	"github.com/example/esmdiag/internal/namelist"
	"github.com/example/esmdiag/internal/projects"
	"github.com/example/esmdiag/internal/version"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var (
		quiet        bool
		namelistPath string
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the esmdiag environment",
		Long: `Environment health check for esmdiag.

Validates:
- Project config (.esmdiag/config.json)
- Database location and schema version
- Namelist parses and validates
- Climatology directory exists
- Every model line has a path strategy

Examples:
  esmdiag doctor                       # Run full health check
  esmdiag doctor -n namelist.yaml      # Check a specific namelist
  esmdiag doctor --quiet               # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{}
			hasErrors := false

			cwd, _ := os.Getwd()
			cfgResult, cfg := checkConfig(cwd)
			results = append(results, cfgResult)
			results = append(results, checkDatabase())

			nlResult, project := checkNamelist(cfg, namelistPath)
			results = append(results, nlResult)
			if project != nil {
				results = append(results, checkClimoDir(project))
				results = append(results, checkFamilies(project, projects.DefaultRegistry()))
			}

			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println(version.String())
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				// Print details for non-passing checks
				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")
	cmd.Flags().StringVarP(&namelistPath, "namelist", "n", "", "Namelist to check")

	return cmd
}

// checkConfig reports whether the directory carries a project config.
func checkConfig(dir string) (CheckResult, *config.Config) {
	cfg, err := config.LoadConfig(dir)
	if err == nil {
		return CheckResult{Name: "Config", Status: "✓"}, cfg
	}

	if _, statErr := os.Stat(filepath.Join(dir, ".esmdiag", "config.json")); os.IsNotExist(statErr) {
		return CheckResult{
			Name:    "Config",
			Status:  "⚠",
			Details: "  No .esmdiag/config.json in this directory\n  Run: esmdiag init",
		}, &config.Config{}
	}

	return CheckResult{Name: "Config", Status: "✗", Details: "  " + err.Error()}, &config.Config{}
}

// checkDatabase opens the database and compares its schema version.
func checkDatabase() CheckResult {
	path, err := db.GetDBPath()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Database",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s not created yet\n  Run: esmdiag init", path),
		}
	}

	database, err := db.GetDB()
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	return checkSchemaVersion(database)
}

func checkSchemaVersion(database *sql.DB) CheckResult {
	current, err := db.CurrentVersion(database)
	if err != nil {
		return CheckResult{Name: "Database", Status: "✗", Details: "  " + err.Error()}
	}
	if latest := db.LatestVersion(); current != latest {
		return CheckResult{
			Name:    "Database",
			Status:  "✗",
			Details: fmt.Sprintf("  Schema version %d, expected %d", current, latest),
		}
	}
	return CheckResult{Name: "Database", Status: "✓"}
}

// checkNamelist loads the namelist the run command would use.
func checkNamelist(cfg *config.Config, flag string) (CheckResult, *namelist.ProjectContext) {
	path, err := cfg.NamelistPath(flag)
	if err != nil {
		return CheckResult{Name: "Namelist", Status: "⚠", Details: "  " + err.Error()}, nil
	}

	project, err := namelist.Load(path)
	if err != nil {
		return CheckResult{Name: "Namelist", Status: "✗", Details: "  " + err.Error()}, nil
	}
	return CheckResult{Name: "Namelist", Status: "✓"}, project
}

func checkClimoDir(project *namelist.ProjectContext) CheckResult {
	info, err := os.Stat(project.ClimoDir)
	if err != nil || !info.IsDir() {
		return CheckResult{
			Name:    "Climo dir",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s is not a directory; no files will resolve", project.ClimoDir),
		}
	}
	return CheckResult{Name: "Climo dir", Status: "✓"}
}

func checkFamilies(project *namelist.ProjectContext, registry *projects.Registry) CheckResult {
	var unknown []string
	for _, model := range project.Models {
		if _, err := registry.Lookup(model); err != nil {
			unknown = append(unknown, "  "+err.Error())
		}
	}
	if len(unknown) > 0 {
		return CheckResult{Name: "Model families", Status: "✗", Details: strings.Join(unknown, "\n")}
	}
	return CheckResult{Name: "Model families", Status: "✓"}
}
