// Package reference contains the pure business logic for registering a
// diagnostic's bibliographic references.
// Guards are pure functions that evaluate preconditions without side effects.
package reference

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RegisterContext provides context for registration guards.
type RegisterContext struct {
	DiagScript string
}

// CanRegister evaluates whether references can be registered.
// Rules:
// - Diagnostic script name must not be empty
// - Diagnostic script name must not contain whitespace
func CanRegister(ctx RegisterContext) GuardResult {
	name := strings.TrimSpace(ctx.DiagScript)
	if name == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "diagnostic script name cannot be empty",
		}
	}

	if strings.ContainsAny(name, " \t\n") {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("diagnostic script name %q must not contain whitespace", name),
		}
	}

	return GuardResult{Allowed: true}
}

// WriteAction is what a registration does to the registry.
type WriteAction int

const (
	ActionCreate WriteAction = iota
	ActionReplace
	ActionSkip
)

func (a WriteAction) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionReplace:
		return "replace"
	case ActionSkip:
		return "skip"
	}
	return "unknown"
}

// WriteContext describes the registry state for one diagnostic script.
type WriteContext struct {
	Exists    bool
	Overwrite bool
}

// PlanWrite decides how a registration lands. An existing record is kept
// unless overwrite is requested.
func PlanWrite(ctx WriteContext) WriteAction {
	switch {
	case !ctx.Exists:
		return ActionCreate
	case ctx.Overwrite:
		return ActionReplace
	default:
		return ActionSkip
	}
}

// Normalize trims tags and drops blank ones. A nil list becomes empty.
func Normalize(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
