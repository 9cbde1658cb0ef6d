// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/example/esmdiag/internal/ports/secondary"
)

// ErrCheckFailed is matched by every CheckError.
var ErrCheckFailed = errors.New("existence check failed")

// CheckError reports a stat failure other than "does not exist", such as a
// permission or I/O error.
type CheckError struct {
	Path string
	Err  error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("cannot check %s: %v", e.Path, e.Err)
}

func (e *CheckError) Unwrap() error { return e.Err }

func (e *CheckError) Is(target error) bool { return target == ErrCheckFailed }

// FileChecker implements secondary.FileChecker with os.Stat.
type FileChecker struct{}

// NewFileChecker creates a new filesystem checker.
func NewFileChecker() *FileChecker {
	return &FileChecker{}
}

// IsFile reports whether path is an existing regular file (symlinks are
// followed). Directories report false.
func (c *FileChecker) IsFile(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	if err != nil {
		// A file standing in for a directory component is just as absent.
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, &CheckError{Path: path, Err: err}
	}
	return info.Mode().IsRegular(), nil
}

// Ensure FileChecker implements the interface
var _ secondary.FileChecker = (*FileChecker)(nil)
