package primary

import "context"

// ReferenceService defines the primary port for the diagnostic reference registry.
type ReferenceService interface {
	// RegisterReferences records a diagnostic's references, keyed by script name.
	RegisterReferences(ctx context.Context, req RegisterReferencesRequest) (*RegistrationResult, error)

	// GetReferences retrieves the references registered for a diagnostic script.
	GetReferences(ctx context.Context, diagScript string) (*References, error)

	// ListReferences retrieves every registered diagnostic script.
	ListReferences(ctx context.Context) ([]*References, error)

	// DeleteReferences removes the record for a diagnostic script.
	DeleteReferences(ctx context.Context, diagScript string) error

	// LintReferences reports tags filed under the wrong list.
	LintReferences(ctx context.Context, diagScript string) ([]string, error)
}

// RegisterReferencesRequest contains parameters for registering references.
type RegisterReferencesRequest struct {
	DiagScript   string
	Authors      []string
	Contributors []string
	DiagRefs     []string
	ObsRefs      []string
	ProjRefs     []string
	Verbosity    int
	Overwrite    bool
}

// RegistrationResult contains the outcome of a registration.
type RegistrationResult struct {
	ReferenceID string
	DiagScript  string
	Created     bool
	Replaced    bool
	Skipped     bool // record existed and overwrite was not requested
}

// References represents a reference record at the port boundary.
type References struct {
	ID           string
	DiagScript   string
	Authors      []string
	Contributors []string
	DiagRefs     []string
	ObsRefs      []string
	ProjRefs     []string
	Verbosity    int
	Overwrite    bool
	CreatedAt    string
	UpdatedAt    string
}
