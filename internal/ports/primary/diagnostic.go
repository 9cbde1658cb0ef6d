package primary

import (
	"context"

	"github.com/example/esmdiag/internal/namelist"
)

// DiagnosticService defines the primary port for running a diagnostic's
// registration and file resolution as one flow.
type DiagnosticService interface {
	// RunDiagnostic registers references, resolves model files and appends
	// them to the file list.
	RunDiagnostic(ctx context.Context, req RunDiagnosticRequest) (*RunDiagnosticResponse, error)

	// ListFiles returns the file list of a run; an empty runID means the latest run.
	ListFiles(ctx context.Context, runID string) ([]*FileListEntry, error)
}

// RunDiagnosticRequest contains parameters for a diagnostic run.
type RunDiagnosticRequest struct {
	Project  *namelist.ProjectContext
	Variable string // defaults to the first current variable
	Workers  int
}

// RunDiagnosticResponse contains the result of a diagnostic run.
type RunDiagnosticResponse struct {
	RunID        string
	Profile      string // empty when no diagnostic profile applied
	LegacyMatch  bool   // profile was chosen from the configuration file name
	Registration *RegistrationResult
	Variable     string
	Paths        []string
}

// FileListEntry is one resolved file handed to downstream stages.
type FileListEntry struct {
	RunID     string
	Seq       int
	Variable  string
	Path      string
	CreatedAt string
}
