// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// ReferenceRepository defines the secondary port for reference persistence.
type ReferenceRepository interface {
	// Create persists a new reference record.
	Create(ctx context.Context, record *ReferenceRecord) error

	// Replace overwrites the record with the same diagnostic script.
	Replace(ctx context.Context, record *ReferenceRecord) error

	// GetByScript retrieves the record for a diagnostic script (nil if none).
	GetByScript(ctx context.Context, diagScript string) (*ReferenceRecord, error)

	// List retrieves all records ordered by diagnostic script.
	List(ctx context.Context) ([]*ReferenceRecord, error)

	// Delete removes the record for a diagnostic script.
	Delete(ctx context.Context, diagScript string) error

	// GetNextID returns the next available reference ID.
	GetNextID(ctx context.Context) (string, error)
}

// ReferenceRecord represents a diagnostic's references as stored in persistence.
type ReferenceRecord struct {
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

// FileListRepository defines the secondary port for the append-only file list
// read by downstream stages.
type FileListRepository interface {
	// Append adds paths, in order, to a run's file list. The run itself is
	// recorded even when paths is empty.
	Append(ctx context.Context, runID, variable string, paths []string) error

	// ListByRun retrieves a run's entries in append order.
	ListByRun(ctx context.Context, runID string) ([]*FileListRecord, error)

	// LatestRunID returns the most recently started run ("" if none).
	LatestRunID(ctx context.Context) (string, error)
}

// FileListRecord represents one file list entry as stored in persistence.
type FileListRecord struct {
	RunID     string
	Seq       int
	Variable  string
	Path      string
	CreatedAt string
}
