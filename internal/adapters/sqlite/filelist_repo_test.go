package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/esmdiag/internal/adapters/sqlite"
)

func TestFileListRepository_AppendKeepsOrderAndDuplicates(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFileListRepository(db)
	ctx := context.Background()

	paths := []string{"/climo/a.nc", "/climo/b.nc", "/climo/a.nc"}
	if err := repo.Append(ctx, "run-1", "pr", paths); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := repo.Append(ctx, "run-1", "pr", []string{"/climo/c.nc"}); err != nil {
		t.Fatalf("second Append failed: %v", err)
	}

	entries, err := repo.ListByRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("ListByRun failed: %v", err)
	}

	want := []string{"/climo/a.nc", "/climo/b.nc", "/climo/a.nc", "/climo/c.nc"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Path != want[i] {
			t.Errorf("entry %d: expected %s, got %s", i, want[i], e.Path)
		}
		if e.Seq != i {
			t.Errorf("entry %d: expected seq %d, got %d", i, i, e.Seq)
		}
		if e.Variable != "pr" {
			t.Errorf("entry %d: expected variable pr, got %s", i, e.Variable)
		}
	}
}

func TestFileListRepository_AppendEmptyRecordsRun(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFileListRepository(db)
	ctx := context.Background()

	if err := repo.Append(ctx, "run-1", "pr", []string{"/climo/a.nc"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := repo.Append(ctx, "run-2", "pr", nil); err != nil {
		t.Fatalf("empty Append failed: %v", err)
	}

	runID, err := repo.LatestRunID(ctx)
	if err != nil {
		t.Fatalf("LatestRunID failed: %v", err)
	}
	if runID != "run-2" {
		t.Errorf("expected the empty run-2 to be latest, got %q", runID)
	}

	entries, err := repo.ListByRun(ctx, "run-2")
	if err != nil {
		t.Fatalf("ListByRun failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries for run-2, got %d", len(entries))
	}
}

func TestFileListRepository_LatestRunID_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFileListRepository(db)

	runID, err := repo.LatestRunID(context.Background())
	if err != nil {
		t.Fatalf("LatestRunID failed: %v", err)
	}
	if runID != "" {
		t.Errorf("expected no runs, got %s", runID)
	}
}

func TestFileListRepository_LatestRunID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewFileListRepository(db)
	ctx := context.Background()

	if err := repo.Append(ctx, "run-1", "pr", []string{"/climo/a.nc"}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append(ctx, "run-2", "tas", []string{"/climo/b.nc"}); err != nil {
		t.Fatal(err)
	}

	runID, err := repo.LatestRunID(ctx)
	if err != nil {
		t.Fatalf("LatestRunID failed: %v", err)
	}
	if runID != "run-2" {
		t.Errorf("expected run-2, got %s", runID)
	}

	entries, err := repo.ListByRun(ctx, "run-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Path != "/climo/a.nc" {
		t.Errorf("unexpected run-1 entries %+v", entries)
	}
}
