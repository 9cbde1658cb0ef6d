package secondary

import (
	"github.com/example/esmdiag/internal/namelist"
	"github.com/example/esmdiag/internal/projects"
)

// StrategyRegistry defines the secondary port for per-family path strategies.
type StrategyRegistry interface {
	// Lookup returns the strategy for the model's family, or a
	// *projects.UnknownFamilyError.
	Lookup(model namelist.ModelDescriptor) (projects.Strategy, error)

	// Families returns the registered family names.
	Families() []string
}
