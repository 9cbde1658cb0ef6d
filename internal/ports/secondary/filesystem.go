package secondary

import "context"

// FileChecker defines the secondary port for existence checks.
type FileChecker interface {
	// IsFile reports whether path is an existing regular file. A missing
	// path is (false, nil); any other failure to check is an error.
	IsFile(ctx context.Context, path string) (bool, error)
}
