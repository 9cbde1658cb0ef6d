package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/esmdiag/internal/ports/primary"
)

// mockDiagnosticService implements primary.DiagnosticService for testing
type mockDiagnosticService struct {
	runFn       func(ctx context.Context, req primary.RunDiagnosticRequest) (*primary.RunDiagnosticResponse, error)
	listFilesFn func(ctx context.Context, runID string) ([]*primary.FileListEntry, error)
}

func (m *mockDiagnosticService) RunDiagnostic(ctx context.Context, req primary.RunDiagnosticRequest) (*primary.RunDiagnosticResponse, error) {
	if m.runFn != nil {
		return m.runFn(ctx, req)
	}
	return &primary.RunDiagnosticResponse{RunID: "run-1"}, nil
}

func (m *mockDiagnosticService) ListFiles(ctx context.Context, runID string) ([]*primary.FileListEntry, error) {
	if m.listFilesFn != nil {
		return m.listFilesFn(ctx, runID)
	}
	return []*primary.FileListEntry{}, nil
}

func TestDiagnosticAdapter_Run(t *testing.T) {
	mock := &mockDiagnosticService{
		runFn: func(ctx context.Context, req primary.RunDiagnosticRequest) (*primary.RunDiagnosticResponse, error) {
			return &primary.RunDiagnosticResponse{
				RunID:        "run-1",
				Profile:      "hyint",
				LegacyMatch:  true,
				Registration: &primary.RegistrationResult{ReferenceID: "REF-001", Skipped: true},
				Variable:     "pr",
				Paths:        []string{"/climo/a.nc", "/climo/b.nc"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewDiagnosticAdapter(mock, &buf)

	if _, err := adapter.Run(context.Background(), primary.RunDiagnosticRequest{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := buf.String()
	for _, want := range []string{"✓ Run run-1", "hyint", "matched by config file name", "REF-001 (already registered)", "Files:      2", "/climo/b.nc"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got %q", want, output)
		}
	}
}

func TestDiagnosticAdapter_Run_Error(t *testing.T) {
	mock := &mockDiagnosticService{
		runFn: func(ctx context.Context, req primary.RunDiagnosticRequest) (*primary.RunDiagnosticResponse, error) {
			return nil, errors.New("unknown model family")
		},
	}
	var buf bytes.Buffer
	adapter := NewDiagnosticAdapter(mock, &buf)

	if _, err := adapter.Run(context.Background(), primary.RunDiagnosticRequest{}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on error, got %q", buf.String())
	}
}

func TestDiagnosticAdapter_Files(t *testing.T) {
	mock := &mockDiagnosticService{
		listFilesFn: func(ctx context.Context, runID string) ([]*primary.FileListEntry, error) {
			if runID != "" {
				t.Errorf("expected latest run lookup, got %q", runID)
			}
			return []*primary.FileListEntry{
				{RunID: "run-1", Seq: 0, Variable: "pr", Path: "/climo/a.nc"},
			}, nil
		},
	}
	var buf bytes.Buffer
	adapter := NewDiagnosticAdapter(mock, &buf)

	if _, err := adapter.Files(context.Background(), ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "Run: run-1") || !strings.Contains(buf.String(), "/climo/a.nc") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestDiagnosticAdapter_Files_Empty(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewDiagnosticAdapter(&mockDiagnosticService{}, &buf)

	if _, err := adapter.Files(context.Background(), ""); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "No files recorded.") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestWriteFileList(t *testing.T) {
	var buf bytes.Buffer

	if err := WriteFileList(&buf, []string{"/a.nc", "/b.nc"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if buf.String() != "/a.nc\n/b.nc\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
