// Package cli contains thin adapters that translate CLI operations into
// primary port calls and render their results.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/example/esmdiag/internal/ports/primary"
)

// TagCatalog maps reference tags to the text printed in acknowledgements.
type TagCatalog map[string]string

// LoadTagCatalog reads a YAML catalog of "tag: text" pairs.
func LoadTagCatalog(path string) (TagCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tag catalog: %w", err)
	}

	catalog := TagCatalog{}
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse tag catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Describe returns the catalog text for tag, or the tag itself.
func (c TagCatalog) Describe(tag string) string {
	if text, ok := c[tag]; ok && text != "" {
		return text
	}
	return tag
}

// ReferenceAdapter is a thin adapter that translates CLI operations to ReferenceService calls.
type ReferenceAdapter struct {
	service primary.ReferenceService
	out     io.Writer
}

// NewReferenceAdapter creates a new ReferenceAdapter with the given service.
func NewReferenceAdapter(service primary.ReferenceService, out io.Writer) *ReferenceAdapter {
	return &ReferenceAdapter{
		service: service,
		out:     out,
	}
}

// Register records references and reports what happened to the record.
func (a *ReferenceAdapter) Register(ctx context.Context, req primary.RegisterReferencesRequest) (*primary.RegistrationResult, error) {
	result, err := a.service.RegisterReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	switch {
	case result.Created:
		fmt.Fprintf(a.out, "✓ Registered references %s for %s\n", result.ReferenceID, result.DiagScript)
	case result.Replaced:
		fmt.Fprintf(a.out, "✓ Replaced references %s for %s\n", result.ReferenceID, result.DiagScript)
	case result.Skipped:
		fmt.Fprintf(a.out, "References for %s already registered as %s %s\n",
			result.DiagScript, result.ReferenceID, color.New(color.FgYellow).Sprint("(use --overwrite to replace)"))
	}
	return result, nil
}

// List lists every registered diagnostic script.
func (a *ReferenceAdapter) List(ctx context.Context) ([]*primary.References, error) {
	refs, err := a.service.ListReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	if len(refs) == 0 {
		fmt.Fprintln(a.out, "No references registered.")
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Run a diagnostic to register its references:")
		fmt.Fprintln(a.out, "  esmdiag run --namelist namelist_hyint.yaml")
		return refs, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tSCRIPT\tAUTHORS\tREFS\tUPDATED")
	fmt.Fprintln(w, "--\t------\t-------\t----\t-------")

	for _, r := range refs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID,
			r.DiagScript,
			len(r.Authors),
			len(r.DiagRefs)+len(r.ObsRefs)+len(r.ProjRefs),
			r.UpdatedAt,
		)
	}

	w.Flush()
	return refs, nil
}

// Show displays the stored record for a diagnostic script.
func (a *ReferenceAdapter) Show(ctx context.Context, diagScript string) (*primary.References, error) {
	refs, err := a.service.GetReferences(ctx, diagScript)
	if err != nil {
		return nil, fmt.Errorf("failed to get references: %w", err)
	}

	fmt.Fprintf(a.out, "\nReferences: %s\n", refs.ID)
	fmt.Fprintf(a.out, "Script:       %s\n", refs.DiagScript)
	fmt.Fprintf(a.out, "Authors:      %s\n", joinOrDash(refs.Authors))
	fmt.Fprintf(a.out, "Contributors: %s\n", joinOrDash(refs.Contributors))
	fmt.Fprintf(a.out, "Diagnostic:   %s\n", joinOrDash(refs.DiagRefs))
	fmt.Fprintf(a.out, "Observations: %s\n", joinOrDash(refs.ObsRefs))
	fmt.Fprintf(a.out, "Projects:     %s\n", joinOrDash(refs.ProjRefs))
	fmt.Fprintf(a.out, "Verbosity:    %d\n", refs.Verbosity)
	fmt.Fprintf(a.out, "Updated:      %s\n", refs.UpdatedAt)
	fmt.Fprintln(a.out)

	return refs, nil
}

// Delete removes the record for a diagnostic script.
func (a *ReferenceAdapter) Delete(ctx context.Context, diagScript string) error {
	if err := a.service.DeleteReferences(ctx, diagScript); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Deleted references for %s\n", diagScript)
	return nil
}

// Lint reports misfiled tags and returns how many were found.
func (a *ReferenceAdapter) Lint(ctx context.Context, diagScript string) (int, error) {
	problems, err := a.service.LintReferences(ctx, diagScript)
	if err != nil {
		return 0, err
	}

	if len(problems) == 0 {
		fmt.Fprintf(a.out, "✓ References for %s look good\n", diagScript)
		return 0, nil
	}

	warn := color.New(color.FgRed).Sprint("✗")
	for _, p := range problems {
		fmt.Fprintf(a.out, "%s %s\n", warn, p)
	}
	return len(problems), nil
}

// Export writes an acknowledgements text for the given scripts, or for every
// registered script when none are given.
func (a *ReferenceAdapter) Export(ctx context.Context, diagScripts []string, catalog TagCatalog) error {
	var refs []*primary.References
	if len(diagScripts) == 0 {
		all, err := a.service.ListReferences(ctx)
		if err != nil {
			return fmt.Errorf("failed to list references: %w", err)
		}
		refs = all
	} else {
		for _, script := range diagScripts {
			r, err := a.service.GetReferences(ctx, script)
			if err != nil {
				return fmt.Errorf("failed to get references: %w", err)
			}
			refs = append(refs, r)
		}
	}

	for i, r := range refs {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprintf(a.out, "=== %s ===\n", r.DiagScript)
		writeSection(a.out, "Authors", r.Authors, catalog)
		writeSection(a.out, "Contributors", r.Contributors, catalog)
		writeSection(a.out, "Diagnostic references", r.DiagRefs, catalog)
		writeSection(a.out, "Observations", r.ObsRefs, catalog)
		writeSection(a.out, "Projects", r.ProjRefs, catalog)
	}
	return nil
}

func writeSection(out io.Writer, title string, tags []string, catalog TagCatalog) {
	if len(tags) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	for _, tag := range tags {
		fmt.Fprintf(out, "  - %s\n", catalog.Describe(tag))
	}
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
