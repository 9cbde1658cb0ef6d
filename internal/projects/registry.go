// Package projects maps a model family (the first entry of a model line)
// to the strategy that knows where that family's climatology files live.
package projects

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/example/esmdiag/internal/namelist"
)

// ErrUnknownFamily is wrapped by UnknownFamilyError.
var ErrUnknownFamily = errors.New("unknown model family")

// UnknownFamilyError is returned when no strategy is registered for a family.
type UnknownFamilyError struct {
	Family     string
	Descriptor namelist.ModelDescriptor
}

func (e *UnknownFamilyError) Error() string {
	return fmt.Sprintf("no path strategy registered for model family %q (model line %q)", e.Family, string(e.Descriptor))
}

func (e *UnknownFamilyError) Unwrap() error { return ErrUnknownFamily }

// DescriptorError reports a model line that does not fit its family's layout.
type DescriptorError struct {
	Family     string
	Descriptor namelist.ModelDescriptor
	Want       int
	Got        int
}

func (e *DescriptorError) Error() string {
	return fmt.Sprintf("model line %q has %d entries, %s needs at least %d", string(e.Descriptor), e.Got, e.Family, e.Want)
}

// Strategy builds the full path of a climatology file for one model family.
type Strategy interface {
	Family() string
	FullPath(project *namelist.ProjectContext, model namelist.ModelDescriptor, field, variable, mip, exp string) (string, error)
}

// Registry stores strategies keyed by family name.
type Registry struct {
	strategies map[string]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// DefaultRegistry returns a registry holding every built-in family.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, s := range builtins() {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a strategy. Registering the same family twice is an error.
func (r *Registry) Register(s Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	family := s.Family()
	if family == "" {
		return errors.New("strategy family must not be empty")
	}
	if _, exists := r.strategies[family]; exists {
		return fmt.Errorf("strategy for model family %q already registered", family)
	}
	r.strategies[family] = s
	return nil
}

// Lookup returns the strategy for the model's family.
func (r *Registry) Lookup(model namelist.ModelDescriptor) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	family := model.Family()
	s, ok := r.strategies[family]
	if !ok {
		return nil, &UnknownFamilyError{Family: family, Descriptor: model}
	}
	return s, nil
}

// Families returns the registered family names, sorted.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	families := make([]string, 0, len(r.strategies))
	for f := range r.strategies {
		families = append(families, f)
	}
	sort.Strings(families)
	return families
}
