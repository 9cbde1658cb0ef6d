package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRunID(t *testing.T) {
	ctx := context.Background()
	if got := RunIDFromContext(ctx); got != "" {
		t.Errorf("expected empty run ID, got %q", got)
	}

	ctx = WithRunID(ctx, "run-1")
	if got := RunIDFromContext(ctx); got != "run-1" {
		t.Errorf("expected run-1, got %q", got)
	}
}

func TestEnsureRunID(t *testing.T) {
	ctx, id := EnsureRunID(context.Background())
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a UUID, got %q: %v", id, err)
	}
	if RunIDFromContext(ctx) != id {
		t.Error("expected run ID stored in context")
	}

	same, again := EnsureRunID(ctx)
	if again != id || same != ctx {
		t.Error("expected existing run ID to be kept")
	}
}
