package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/esmdiag/internal/adapters/cli"
	"github.com/example/esmdiag/internal/core/reference"
	"github.com/example/esmdiag/internal/ports/primary"
	"github.com/example/esmdiag/internal/wire"
)

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "Manage diagnostic references (authors, citations, projects)",
	Long:  "Register, list, show, lint, export and delete the references recorded per diagnostic script",
}

var refsRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register references for a diagnostic script",
	Long: `Register references for a diagnostic script.

With --profile the script name and tags come from a known diagnostic;
explicit tag flags replace the profile's lists.

Examples:
  esmdiag refs register --profile hyint
  esmdiag refs register --script my_diag.py --author A_doe_jo --diag-ref D_doe20 --overwrite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		req := primary.RegisterReferencesRequest{}
		if name, _ := cmd.Flags().GetString("profile"); name != "" {
			p, ok := reference.LookupProfile(name)
			if !ok {
				return fmt.Errorf("unknown diagnostic profile %q", name)
			}
			req = primary.RegisterReferencesRequest{
				DiagScript:   p.Script,
				Authors:      p.Authors,
				Contributors: p.Contributors,
				DiagRefs:     p.DiagRefs,
				ObsRefs:      p.ObsRefs,
				ProjRefs:     p.ProjRefs,
			}
		}

		if cmd.Flags().Changed("script") {
			req.DiagScript, _ = cmd.Flags().GetString("script")
		}
		if cmd.Flags().Changed("author") {
			req.Authors, _ = cmd.Flags().GetStringSlice("author")
		}
		if cmd.Flags().Changed("contributor") {
			req.Contributors, _ = cmd.Flags().GetStringSlice("contributor")
		}
		if cmd.Flags().Changed("diag-ref") {
			req.DiagRefs, _ = cmd.Flags().GetStringSlice("diag-ref")
		}
		if cmd.Flags().Changed("obs-ref") {
			req.ObsRefs, _ = cmd.Flags().GetStringSlice("obs-ref")
		}
		if cmd.Flags().Changed("proj-ref") {
			req.ProjRefs, _ = cmd.Flags().GetStringSlice("proj-ref")
		}
		req.Verbosity, _ = cmd.Flags().GetInt("verbosity")
		req.Overwrite, _ = cmd.Flags().GetBool("overwrite")

		if _, err := wire.ReferenceAdapter().Register(ctx, req); err != nil {
			return fmt.Errorf("failed to register references: %w", err)
		}
		return nil
	},
}

var refsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered diagnostic scripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.ReferenceAdapter().List(context.Background())
		return err
	},
}

var refsShowCmd = &cobra.Command{
	Use:   "show [script]",
	Short: "Show the references of a diagnostic script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.ReferenceAdapter().Show(context.Background(), args[0])
		return err
	},
}

var refsDeleteCmd = &cobra.Command{
	Use:   "delete [script]",
	Short: "Delete the references of a diagnostic script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.ReferenceAdapter().Delete(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to delete references: %w", err)
		}
		return nil
	},
}

var refsLintCmd = &cobra.Command{
	Use:   "lint [script]",
	Short: "Check that every tag sits in the list its prefix names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := wire.ReferenceAdapter().Lint(context.Background(), args[0])
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%d misfiled tag(s)", count)
		}
		return nil
	},
}

var refsExportCmd = &cobra.Command{
	Use:   "export [script...]",
	Short: "Write acknowledgements for registered scripts (default: all)",
	Long: `Write an acknowledgements text for the given scripts, or every registered
script. A YAML tag catalog ("tag: text" pairs) replaces tags with their text.

Examples:
  esmdiag refs export
  esmdiag refs export hyint.r --catalog references-tags.yml --out refs-acknows.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var catalog cliadapter.TagCatalog
		if path, _ := cmd.Flags().GetString("catalog"); path != "" {
			c, err := cliadapter.LoadTagCatalog(path)
			if err != nil {
				return err
			}
			catalog = c
		}

		var out io.Writer = os.Stdout
		if path, _ := cmd.Flags().GetString("out"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer f.Close()
			out = f
		}

		return wire.ReferenceAdapterWithOutput(out).Export(ctx, args, catalog)
	},
}

func init() {
	// refs register flags
	refsRegisterCmd.Flags().String("profile", "", "Take script name and tags from a known diagnostic")
	refsRegisterCmd.Flags().StringP("script", "s", "", "Diagnostic script name")
	refsRegisterCmd.Flags().StringSlice("author", nil, "Author tags (A_...)")
	refsRegisterCmd.Flags().StringSlice("contributor", nil, "Contributor tags (A_...)")
	refsRegisterCmd.Flags().StringSlice("diag-ref", nil, "Diagnostic reference tags (D_...)")
	refsRegisterCmd.Flags().StringSlice("obs-ref", nil, "Observation reference tags (E_...)")
	refsRegisterCmd.Flags().StringSlice("proj-ref", nil, "Project tags (P_...)")
	refsRegisterCmd.Flags().Int("verbosity", 0, "Verbosity recorded with the references")
	refsRegisterCmd.Flags().Bool("overwrite", false, "Replace an existing record")

	// refs export flags
	refsExportCmd.Flags().String("catalog", "", "YAML tag catalog")
	refsExportCmd.Flags().StringP("out", "o", "", "Write to file instead of stdout")

	// Register subcommands
	refsCmd.AddCommand(refsRegisterCmd)
	refsCmd.AddCommand(refsListCmd)
	refsCmd.AddCommand(refsShowCmd)
	refsCmd.AddCommand(refsDeleteCmd)
	refsCmd.AddCommand(refsLintCmd)
	refsCmd.AddCommand(refsExportCmd)
}

// RefsCmd returns the refs command
func RefsCmd() *cobra.Command {
	return refsCmd
}
