package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/esmdiag/internal/ports/primary"
)

// DiagnosticAdapter translates run and file list commands to
// DiagnosticService calls.
type DiagnosticAdapter struct {
	diagnostics primary.DiagnosticService
	out         io.Writer
}

// NewDiagnosticAdapter creates a new DiagnosticAdapter with the given service.
func NewDiagnosticAdapter(diagnostics primary.DiagnosticService, out io.Writer) *DiagnosticAdapter {
	return &DiagnosticAdapter{
		diagnostics: diagnostics,
		out:         out,
	}
}

// Run executes a diagnostic run and prints a summary.
func (a *DiagnosticAdapter) Run(ctx context.Context, req primary.RunDiagnosticRequest) (*primary.RunDiagnosticResponse, error) {
	resp, err := a.diagnostics.RunDiagnostic(ctx, req)
	if err != nil {
		return nil, err
	}

	profile := resp.Profile
	if profile == "" {
		profile = "-"
	} else if resp.LegacyMatch {
		profile += color.New(color.FgYellow).Sprint(" (matched by config file name)")
	}

	fmt.Fprintf(a.out, "✓ Run %s\n", resp.RunID)
	fmt.Fprintf(a.out, "  Profile:    %s\n", profile)
	if reg := resp.Registration; reg != nil {
		fmt.Fprintf(a.out, "  References: %s (%s)\n", reg.ReferenceID, registrationOutcome(reg))
	}
	fmt.Fprintf(a.out, "  Variable:   %s\n", resp.Variable)
	fmt.Fprintf(a.out, "  Files:      %d\n", len(resp.Paths))
	for _, p := range resp.Paths {
		fmt.Fprintf(a.out, "    %s\n", p)
	}

	return resp, nil
}

// Files prints a run's file list; an empty runID means the latest run.
func (a *DiagnosticAdapter) Files(ctx context.Context, runID string) ([]*primary.FileListEntry, error) {
	entries, err := a.diagnostics.ListFiles(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No files recorded.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "Run: %s\n", entries[0].RunID)
	fmt.Fprintln(w, "SEQ\tVARIABLE\tPATH")
	fmt.Fprintln(w, "---\t--------\t----")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Seq, e.Variable, e.Path)
	}
	w.Flush()

	return entries, nil
}

// WriteFileList writes paths one per line, the format downstream stages read.
func WriteFileList(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

func registrationOutcome(reg *primary.RegistrationResult) string {
	switch {
	case reg.Created:
		return "created"
	case reg.Replaced:
		return "replaced"
	default:
		return "already registered"
	}
}
