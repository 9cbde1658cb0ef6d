package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/esmdiag/internal/core/resolver"
	"github.com/example/esmdiag/internal/logging"
	"github.com/example/esmdiag/internal/ports/primary"
	"github.com/example/esmdiag/internal/ports/secondary"
)

// ResolverServiceImpl implements the ResolverService interface.
type ResolverServiceImpl struct {
	strategies secondary.StrategyRegistry
	checker    secondary.FileChecker
	logger     *zap.Logger
}

// NewResolverService creates a new ResolverService with injected dependencies.
func NewResolverService(strategies secondary.StrategyRegistry, checker secondary.FileChecker, logger *zap.Logger) *ResolverServiceImpl {
	return &ResolverServiceImpl{
		strategies: strategies,
		checker:    checker,
		logger:     logging.OrNop(logger),
	}
}

// ResolveModelFiles returns the existing files for req.Variable in
// diagnostic, declared-variable, model order. Duplicates are kept.
func (s *ResolverServiceImpl) ResolveModelFiles(ctx context.Context, req primary.ResolveRequest) ([]string, error) {
	matching, exists, err := s.check(ctx, req)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(matching))
	for i, c := range matching {
		if exists[i] {
			paths = append(paths, c.Path)
		}
	}

	s.logger.Debug("model files resolved",
		zap.String("variable", req.Variable),
		zap.Int("candidates", len(matching)),
		zap.Int("resolved", len(paths)))

	return paths, nil
}

// ExplainResolution returns every candidate with its match and existence
// status. Only matching candidates are checked on disk.
func (s *ResolverServiceImpl) ExplainResolution(ctx context.Context, req primary.ResolveRequest) ([]*primary.Candidate, error) {
	if err := resolver.CanResolve(req.Project, req.Variable).Error(); err != nil {
		return nil, err
	}

	candidates, err := resolver.Plan(req.Project, req.Variable, s.strategies)
	if err != nil {
		return nil, err
	}

	matching := resolver.Matching(candidates)
	exists, err := s.checkAll(ctx, matching, req.Workers)
	if err != nil {
		return nil, err
	}
	found := make(map[int]bool)
	m := 0
	for i, c := range candidates {
		if c.Matches {
			found[i] = exists[m]
			m++
		}
	}

	out := make([]*primary.Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = &primary.Candidate{
			Diagnostic: c.Diagnostic,
			Variable:   c.Variable,
			Model:      string(c.Model),
			Path:       c.Path,
			Matches:    c.Matches,
			Exists:     found[i],
		}
	}
	return out, nil
}

// ListFamilies returns the model families a path strategy exists for.
func (s *ResolverServiceImpl) ListFamilies(ctx context.Context) []string {
	return s.strategies.Families()
}

func (s *ResolverServiceImpl) check(ctx context.Context, req primary.ResolveRequest) ([]resolver.Candidate, []bool, error) {
	if err := resolver.CanResolve(req.Project, req.Variable).Error(); err != nil {
		return nil, nil, err
	}

	candidates, err := resolver.Plan(req.Project, req.Variable, s.strategies)
	if err != nil {
		return nil, nil, err
	}

	matching := resolver.Matching(candidates)
	exists, err := s.checkAll(ctx, matching, req.Workers)
	if err != nil {
		return nil, nil, err
	}
	return matching, exists, nil
}

// checkAll checks every candidate, concurrently when workers > 1. Results
// land in per-index slots so order never depends on scheduling.
func (s *ResolverServiceImpl) checkAll(ctx context.Context, candidates []resolver.Candidate, workers int) ([]bool, error) {
	exists := make([]bool, len(candidates))

	if workers <= 1 {
		for i, c := range candidates {
			ok, err := s.checker.IsFile(ctx, c.Path)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", string(c.Model), err)
			}
			s.logger.Debug("candidate checked", zap.String("path", c.Path), zap.Bool("exists", ok))
			exists[i] = ok
		}
		return exists, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			ok, err := s.checker.IsFile(gctx, c.Path)
			if err != nil {
				return fmt.Errorf("model %q: %w", string(c.Model), err)
			}
			exists[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return exists, nil
}

// Ensure ResolverServiceImpl implements the interface.
var _ primary.ResolverService = (*ResolverServiceImpl)(nil)
