package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/esmdiag/internal/core/reference"
	"github.com/example/esmdiag/internal/logging"
	"github.com/example/esmdiag/internal/ports/primary"
	"github.com/example/esmdiag/internal/ports/secondary"
)

// ReferenceServiceImpl implements the ReferenceService interface.
type ReferenceServiceImpl struct {
	referenceRepo secondary.ReferenceRepository
	logger        *zap.Logger
}

// NewReferenceService creates a new ReferenceService with injected dependencies.
func NewReferenceService(referenceRepo secondary.ReferenceRepository, logger *zap.Logger) *ReferenceServiceImpl {
	return &ReferenceServiceImpl{
		referenceRepo: referenceRepo,
		logger:        logging.OrNop(logger),
	}
}

// RegisterReferences records a diagnostic's references. An existing record
// is only replaced when req.Overwrite is set.
func (s *ReferenceServiceImpl) RegisterReferences(ctx context.Context, req primary.RegisterReferencesRequest) (*primary.RegistrationResult, error) {
	if err := reference.CanRegister(reference.RegisterContext{DiagScript: req.DiagScript}).Error(); err != nil {
		return nil, err
	}

	existing, err := s.referenceRepo.GetByScript(ctx, req.DiagScript)
	if err != nil {
		return nil, fmt.Errorf("failed to look up references: %w", err)
	}

	action := reference.PlanWrite(reference.WriteContext{
		Exists:    existing != nil,
		Overwrite: req.Overwrite,
	})

	record := &secondary.ReferenceRecord{
		DiagScript:   req.DiagScript,
		Authors:      reference.Normalize(req.Authors),
		Contributors: reference.Normalize(req.Contributors),
		DiagRefs:     reference.Normalize(req.DiagRefs),
		ObsRefs:      reference.Normalize(req.ObsRefs),
		ProjRefs:     reference.Normalize(req.ProjRefs),
		Verbosity:    req.Verbosity,
		Overwrite:    req.Overwrite,
	}

	result := &primary.RegistrationResult{DiagScript: req.DiagScript}

	switch action {
	case reference.ActionSkip:
		result.ReferenceID = existing.ID
		result.Skipped = true
	case reference.ActionReplace:
		if err := s.referenceRepo.Replace(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to replace references: %w", err)
		}
		result.ReferenceID = record.ID
		result.Replaced = true
	case reference.ActionCreate:
		nextID, err := s.referenceRepo.GetNextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate reference ID: %w", err)
		}
		record.ID = nextID
		if err := s.referenceRepo.Create(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to create references: %w", err)
		}
		result.ReferenceID = nextID
		result.Created = true
	}

	s.logger.Info("references registered",
		zap.String("script", req.DiagScript),
		zap.String("id", result.ReferenceID),
		zap.Stringer("action", action))

	return result, nil
}

// GetReferences retrieves the references registered for a diagnostic script.
func (s *ReferenceServiceImpl) GetReferences(ctx context.Context, diagScript string) (*primary.References, error) {
	record, err := s.referenceRepo.GetByScript(ctx, diagScript)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("references for %s not found", diagScript)
	}
	return s.recordToReferences(record), nil
}

// ListReferences retrieves every registered diagnostic script.
func (s *ReferenceServiceImpl) ListReferences(ctx context.Context) ([]*primary.References, error) {
	records, err := s.referenceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}

	refs := make([]*primary.References, len(records))
	for i, r := range records {
		refs[i] = s.recordToReferences(r)
	}
	return refs, nil
}

// DeleteReferences removes the record for a diagnostic script.
func (s *ReferenceServiceImpl) DeleteReferences(ctx context.Context, diagScript string) error {
	return s.referenceRepo.Delete(ctx, diagScript)
}

// LintReferences reports tags filed under the wrong list.
func (s *ReferenceServiceImpl) LintReferences(ctx context.Context, diagScript string) ([]string, error) {
	refs, err := s.GetReferences(ctx, diagScript)
	if err != nil {
		return nil, err
	}

	return reference.LintTags(map[reference.Kind][]string{
		reference.KindAuthor:      refs.Authors,
		reference.KindContributor: refs.Contributors,
		reference.KindDiagnostic:  refs.DiagRefs,
		reference.KindObservation: refs.ObsRefs,
		reference.KindProject:     refs.ProjRefs,
	}), nil
}

// Helper methods

func (s *ReferenceServiceImpl) recordToReferences(r *secondary.ReferenceRecord) *primary.References {
	return &primary.References{
		ID:           r.ID,
		DiagScript:   r.DiagScript,
		Authors:      r.Authors,
		Contributors: r.Contributors,
		DiagRefs:     r.DiagRefs,
		ObsRefs:      r.ObsRefs,
		ProjRefs:     r.ProjRefs,
		Verbosity:    r.Verbosity,
		Overwrite:    r.Overwrite,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Ensure ReferenceServiceImpl implements the interface.
var _ primary.ReferenceService = (*ReferenceServiceImpl)(nil)
