// Package resolver contains the pure traversal that joins declared variables
// against model lines. It builds candidate paths; it never touches the disk.
package resolver

import (
	"fmt"
	"strings"

	"github.com/example/esmdiag/internal/namelist"
	"github.com/example/esmdiag/internal/projects"
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

// StrategyLookup finds the path strategy for a model line.
type StrategyLookup interface {
	Lookup(model namelist.ModelDescriptor) (projects.Strategy, error)
}

// Candidate is one (diagnostic binding, model) combination.
type Candidate struct {
	Diagnostic string
	Index      int
	Variable   string
	Model      namelist.ModelDescriptor
	Path       string
	Matches    bool // Variable equals the requested variable
}

// CanResolve evaluates whether a resolution request is well formed.
// Rules:
// - Variable must not be empty
// - Project must be present
func CanResolve(project *namelist.ProjectContext, variable string) GuardResult {
	if project == nil {
		return GuardResult{Allowed: false, Reason: "no project context loaded"}
	}
	if strings.TrimSpace(variable) == "" {
		return GuardResult{Allowed: false, Reason: "variable to resolve cannot be empty"}
	}
	return GuardResult{Allowed: true}
}

// Plan walks diagnostics, then declared variables, then models, in
// declaration order, and builds every candidate path. Paths are built for
// non-matching bindings too, so an unknown model family fails the plan even
// when it would never match the requested variable.
func Plan(project *namelist.ProjectContext, variable string, lookup StrategyLookup) ([]Candidate, error) {
	var candidates []Candidate

	for _, diag := range project.Diagnostics {
		variables := diag.Variables()
		fields := diag.FieldTypes()
		mips := diag.MIPs()
		exps := diag.Experiments()

		for idx := range variables {
			for _, model := range project.Models {
				strategy, err := lookup.Lookup(model)
				if err != nil {
					return nil, fmt.Errorf("diagnostic %s: %w", diag.Name, err)
				}

				path, err := strategy.FullPath(project, model, fields[idx], variables[idx], mips[idx], exps[idx])
				if err != nil {
					return nil, fmt.Errorf("diagnostic %s variable %s: %w", diag.Name, variables[idx], err)
				}

				candidates = append(candidates, Candidate{
					Diagnostic: diag.Name,
					Index:      idx,
					Variable:   variables[idx],
					Model:      model,
					Path:       path,
					Matches:    variables[idx] == variable,
				})
			}
		}
	}

	return candidates, nil
}

// Matching filters candidates down to those for the requested variable,
// keeping order.
func Matching(candidates []Candidate) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if c.Matches {
			out = append(out, c)
		}
	}
	return out
}
