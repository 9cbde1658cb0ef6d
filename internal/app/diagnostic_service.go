package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/esmdiag/internal/core/reference"
	"github.com/example/esmdiag/internal/ctxutil"
	"github.com/example/esmdiag/internal/logging"
	"github.com/example/esmdiag/internal/namelist"
	"github.com/example/esmdiag/internal/ports/primary"
	"github.com/example/esmdiag/internal/ports/secondary"
)

// DiagnosticServiceImpl implements the DiagnosticService interface.
type DiagnosticServiceImpl struct {
	referenceService primary.ReferenceService
	resolverService  primary.ResolverService
	fileListRepo     secondary.FileListRepository
	logger           *zap.Logger
}

// NewDiagnosticService creates a new DiagnosticService with injected dependencies.
func NewDiagnosticService(
	referenceService primary.ReferenceService,
	resolverService primary.ResolverService,
	fileListRepo secondary.FileListRepository,
	logger *zap.Logger,
) *DiagnosticServiceImpl {
	return &DiagnosticServiceImpl{
		referenceService: referenceService,
		resolverService:  resolverService,
		fileListRepo:     fileListRepo,
		logger:           logging.OrNop(logger),
	}
}

// RunDiagnostic registers the diagnostic's references, resolves the model
// files for the target variable and appends them to the run's file list.
func (s *DiagnosticServiceImpl) RunDiagnostic(ctx context.Context, req primary.RunDiagnosticRequest) (*primary.RunDiagnosticResponse, error) {
	project := req.Project
	if project == nil {
		return nil, fmt.Errorf("project context is required")
	}

	ctx, runID := ctxutil.EnsureRunID(ctx)
	resp := &primary.RunDiagnosticResponse{RunID: runID}

	sel := reference.SelectProfile(project.DiagnosticName, project.ConfigFile)
	if sel.Legacy {
		s.logger.Warn("diagnostic profile selected from configuration file name",
			zap.String("config", project.ConfigFile),
			zap.String("profile", sel.Profile.Name))
	}
	if sel.Shadowed != "" {
		s.logger.Debug("explicit diagnostic name overrides configuration file profile",
			zap.String("diagnostic", project.DiagnosticName),
			zap.String("config", project.ConfigFile),
			zap.String("shadowed", sel.Shadowed))
	}
	if sel.Matched {
		resp.Profile = sel.Profile.Name
		resp.LegacyMatch = sel.Legacy
	}

	registration, err := s.register(ctx, project, sel)
	if err != nil {
		return nil, err
	}
	resp.Registration = registration

	variable := req.Variable
	if variable == "" {
		if len(project.CurrentVars) == 0 {
			return nil, &namelist.ConfigurationError{
				File:   project.ConfigFile,
				Field:  "current variables",
				Reason: "no target variable given and none is current",
			}
		}
		variable = project.CurrentVars[0]
	}
	resp.Variable = variable

	paths, err := s.resolverService.ResolveModelFiles(ctx, primary.ResolveRequest{
		Project:  project,
		Variable: variable,
		Workers:  req.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve model files: %w", err)
	}
	resp.Paths = paths

	if err := s.fileListRepo.Append(ctx, runID, variable, paths); err != nil {
		return nil, fmt.Errorf("failed to record file list: %w", err)
	}

	for _, path := range paths {
		s.logger.Info("MODEL --> "+path, zap.String("run", runID))
	}

	return resp, nil
}

// ListFiles returns the file list of a run; an empty runID means the latest run.
func (s *DiagnosticServiceImpl) ListFiles(ctx context.Context, runID string) ([]*primary.FileListEntry, error) {
	if runID == "" {
		latest, err := s.fileListRepo.LatestRunID(ctx)
		if err != nil {
			return nil, err
		}
		if latest == "" {
			return []*primary.FileListEntry{}, nil
		}
		runID = latest
	}

	records, err := s.fileListRepo.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	entries := make([]*primary.FileListEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.FileListEntry{
			RunID:     r.RunID,
			Seq:       r.Seq,
			Variable:  r.Variable,
			Path:      r.Path,
			CreatedAt: r.CreatedAt,
		}
	}
	return entries, nil
}

// register records the run's references. A profile fixes the script name
// and tag lists; without one the context's script is registered with empty
// lists, and nothing is registered when the context names no script.
func (s *DiagnosticServiceImpl) register(ctx context.Context, project *namelist.ProjectContext, sel reference.Selection) (*primary.RegistrationResult, error) {
	req := primary.RegisterReferencesRequest{
		DiagScript: project.DiagScriptName,
		Verbosity:  project.Verbosity,
		Overwrite:  false,
	}

	if sel.Matched {
		p := sel.Profile
		req.DiagScript = p.Script
		req.Authors = p.Authors
		req.Contributors = p.Contributors
		req.DiagRefs = p.DiagRefs
		req.ObsRefs = p.ObsRefs
		req.ProjRefs = p.ProjRefs
	}

	if req.DiagScript == "" {
		s.logger.Warn("no diagnostic profile or script name, skipping reference registration",
			zap.String("config", project.ConfigFile))
		return nil, nil
	}

	result, err := s.referenceService.RegisterReferences(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to register references: %w", err)
	}
	return result, nil
}

// Ensure DiagnosticServiceImpl implements the interface.
var _ primary.DiagnosticService = (*DiagnosticServiceImpl)(nil)
