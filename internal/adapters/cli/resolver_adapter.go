package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/esmdiag/internal/ports/primary"
)

// ResolverAdapter translates resolve and families commands to
// ResolverService calls. It needs no database.
type ResolverAdapter struct {
	resolver primary.ResolverService
	out      io.Writer
}

// NewResolverAdapter creates a new ResolverAdapter with the given service.
func NewResolverAdapter(resolver primary.ResolverService, out io.Writer) *ResolverAdapter {
	return &ResolverAdapter{
		resolver: resolver,
		out:      out,
	}
}

// Resolve prints the resolved paths one per line.
func (a *ResolverAdapter) Resolve(ctx context.Context, req primary.ResolveRequest) ([]string, error) {
	paths, err := a.resolver.ResolveModelFiles(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		fmt.Fprintln(a.out, p)
	}
	return paths, nil
}

// Explain prints every candidate with its match and existence status.
func (a *ResolverAdapter) Explain(ctx context.Context, req primary.ResolveRequest) ([]*primary.Candidate, error) {
	cands, err := a.resolver.ExplainResolution(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(cands) == 0 {
		fmt.Fprintln(a.out, "No candidates: the namelist declares no diagnostics or no models.")
		return cands, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DIAGNOSTIC\tVARIABLE\tMATCH\tEXISTS\tPATH")
	fmt.Fprintln(w, "----------\t--------\t-----\t------\t----")
	for _, c := range cands {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.Diagnostic,
			c.Variable,
			yesNo(c.Matches),
			existsMark(c),
			c.Path,
		)
	}
	w.Flush()

	return cands, nil
}

// Families prints the model families with a registered path strategy.
func (a *ResolverAdapter) Families(ctx context.Context) []string {
	families := a.resolver.ListFamilies(ctx)
	for _, f := range families {
		fmt.Fprintln(a.out, f)
	}
	return families
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func existsMark(c *primary.Candidate) string {
	if !c.Matches {
		return "-"
	}
	return yesNo(c.Exists)
}
