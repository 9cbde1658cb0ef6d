package primary

import (
	"context"

	"github.com/example/esmdiag/internal/namelist"
)

// ResolverService defines the primary port for model-file resolution.
type ResolverService interface {
	// ResolveModelFiles returns the existing climatology files for a variable,
	// in diagnostic, declared-variable, model order. Duplicates are kept.
	ResolveModelFiles(ctx context.Context, req ResolveRequest) ([]string, error)

	// ExplainResolution returns every candidate with its match and existence status.
	ExplainResolution(ctx context.Context, req ResolveRequest) ([]*Candidate, error)

	// ListFamilies returns the model families a path strategy exists for.
	ListFamilies(ctx context.Context) []string
}

// ResolveRequest contains parameters for a resolution.
type ResolveRequest struct {
	Project  *namelist.ProjectContext
	Variable string
	Workers  int // >1 checks existence concurrently; output order is unchanged
}

// Candidate is a constructed path and why it was or was not resolved.
type Candidate struct {
	Diagnostic string
	Variable   string
	Model      string
	Path       string
	Matches    bool
	Exists     bool
}
