package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/example/esmdiag/internal/ctxutil"
	"github.com/example/esmdiag/internal/namelist"
	"github.com/example/esmdiag/internal/ports/primary"
	"github.com/example/esmdiag/internal/projects"
)

type diagnosticFixture struct {
	service  *DiagnosticServiceImpl
	refs     *mockReferenceRepository
	fileList *mockFileListRepository
	logs     *observer.ObservedLogs
}

func newTestDiagnosticService(existing ...string) *diagnosticFixture {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	refs := newMockReferenceRepository()
	fileList := newMockFileListRepository()
	service := NewDiagnosticService(
		NewReferenceService(refs, logger),
		NewResolverService(projects.DefaultRegistry(), newMockFileChecker(existing...), logger),
		fileList,
		logger,
	)
	return &diagnosticFixture{service: service, refs: refs, fileList: fileList, logs: logs}
}

func TestRunDiagnostic_Hyint(t *testing.T) {
	cmip := cmipPath("T2Ds", "pr", "day", "historical")
	obs := obsPath("T2Ds", "pr")
	f := newTestDiagnosticService(cmip, obs)

	resp, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{
		Project: hyintProject(),
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Profile != "hyint" || resp.LegacyMatch {
		t.Errorf("expected explicit hyint profile, got %q (legacy=%v)", resp.Profile, resp.LegacyMatch)
	}
	if resp.Variable != "pr" {
		t.Errorf("expected variable 'pr', got '%s'", resp.Variable)
	}
	if resp.Registration == nil || !resp.Registration.Created {
		t.Fatalf("expected references to be created, got %+v", resp.Registration)
	}

	stored := f.refs.records["hyint.r"]
	if stored == nil {
		t.Fatal("expected hyint.r to be registered")
	}
	if len(stored.DiagRefs) != 2 || stored.DiagRefs[0] != "D_giorgi14jgr" || stored.DiagRefs[1] != "D_giorgi11jc" {
		t.Errorf("unexpected diagnostic refs %v", stored.DiagRefs)
	}
	if stored.Verbosity != 1 {
		t.Errorf("expected verbosity 1, got %d", stored.Verbosity)
	}
	if stored.Overwrite {
		t.Error("expected overwrite to be false")
	}

	if len(resp.Paths) != 2 || resp.Paths[0] != cmip || resp.Paths[1] != obs {
		t.Errorf("unexpected paths %v", resp.Paths)
	}

	entries := f.fileList.runs[resp.RunID]
	if len(entries) != 2 || entries[0].Path != cmip || entries[1].Path != obs {
		t.Errorf("expected file list to hold resolved paths in order, got %v", entries)
	}

	modelLines := f.logs.FilterMessageSnippet("MODEL --> ").All()
	if len(modelLines) != 2 {
		t.Fatalf("expected 2 MODEL log lines, got %d", len(modelLines))
	}
	if modelLines[0].Message != "MODEL --> "+cmip {
		t.Errorf("unexpected log line %q", modelLines[0].Message)
	}
}

func TestRunDiagnostic_LegacyConfigNameMatch(t *testing.T) {
	f := newTestDiagnosticService()
	project := hyintProject()
	project.DiagnosticName = ""
	project.DiagScriptName = "something_else.r"
	project.ConfigFile = "nml/namelist_hyint_cmip5.xml"

	resp, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{Project: project})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.LegacyMatch || resp.Profile != "hyint" {
		t.Errorf("expected legacy hyint match, got %q (legacy=%v)", resp.Profile, resp.LegacyMatch)
	}
	if _, ok := f.refs.records["hyint.r"]; !ok {
		t.Error("expected script name to be forced to hyint.r")
	}
	if f.logs.FilterLevelExact(zapcore.WarnLevel).Len() == 0 {
		t.Error("expected a warning for the legacy match")
	}
}

func TestRunDiagnostic_ExplicitNameDisablesSubstringMatch(t *testing.T) {
	f := newTestDiagnosticService()
	project := hyintProject()
	project.DiagnosticName = "precip_clim"
	project.DiagScriptName = "precip_clim.ncl"
	project.ConfigFile = "namelist_hyint.yaml"

	resp, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{Project: project})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Profile != "" {
		t.Errorf("expected no profile, got %q", resp.Profile)
	}
	stored := f.refs.records["precip_clim.ncl"]
	if stored == nil {
		t.Fatal("expected the context's script to be registered")
	}
	if len(stored.DiagRefs) != 0 || len(stored.Authors) != 0 {
		t.Errorf("expected empty reference lists, got %+v", stored)
	}

	overridden := f.logs.FilterLevelExact(zapcore.DebugLevel).FilterField(zap.String("shadowed", "hyint"))
	if overridden.Len() != 1 {
		t.Errorf("expected one debug entry naming the overridden hyint profile, got %d", overridden.Len())
	}
}

func TestRunDiagnostic_NoProfileNoScript(t *testing.T) {
	f := newTestDiagnosticService()
	project := hyintProject()
	project.DiagnosticName = ""
	project.DiagScriptName = ""
	project.ConfigFile = "namelist_other.yaml"

	resp, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{Project: project})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Registration != nil {
		t.Errorf("expected no registration, got %+v", resp.Registration)
	}
	if len(f.refs.records) != 0 {
		t.Error("expected nothing to be registered")
	}
}

func TestRunDiagnostic_VariableSelection(t *testing.T) {
	f := newTestDiagnosticService()
	project := hyintProject()
	project.CurrentVars = []string{"tas", "pr"}

	resp, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{Project: project})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Variable != "tas" {
		t.Errorf("expected first current variable 'tas', got '%s'", resp.Variable)
	}

	resp, err = f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{Project: project, Variable: "pr"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Variable != "pr" {
		t.Errorf("expected requested variable 'pr', got '%s'", resp.Variable)
	}
}

func TestRunDiagnostic_NoVariable(t *testing.T) {
	f := newTestDiagnosticService()
	project := hyintProject()
	project.CurrentVars = nil

	_, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{Project: project})

	var cfgErr *namelist.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestRunDiagnostic_RepeatedRunsSkipRegistration(t *testing.T) {
	cmip := cmipPath("T2Ds", "pr", "day", "historical")
	f := newTestDiagnosticService(cmip)
	ctx := context.Background()

	first, err := f.service.RunDiagnostic(ctx, primary.RunDiagnosticRequest{Project: hyintProject()})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := f.service.RunDiagnostic(ctx, primary.RunDiagnosticRequest{Project: hyintProject()})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !second.Registration.Skipped {
		t.Error("expected second registration to be skipped")
	}
	if second.Registration.ReferenceID != first.Registration.ReferenceID {
		t.Errorf("expected same reference ID, got %s and %s", first.Registration.ReferenceID, second.Registration.ReferenceID)
	}
	if first.RunID == second.RunID {
		t.Error("expected distinct run IDs")
	}

	latest, err := f.service.ListFiles(ctx, "")
	if err != nil {
		t.Fatalf("list files: %v", err)
	}
	if len(latest) != 1 || latest[0].RunID != second.RunID {
		t.Errorf("expected latest run's entries, got %v", latest)
	}
}

func TestRunDiagnostic_RunWithNoFilesBecomesLatest(t *testing.T) {
	f := newTestDiagnosticService(cmipPath("T2Ds", "pr", "day", "historical"))
	ctx := context.Background()

	first, err := f.service.RunDiagnostic(ctx, primary.RunDiagnosticRequest{Project: hyintProject()})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if len(first.Paths) != 1 {
		t.Fatalf("expected first run to resolve one file, got %v", first.Paths)
	}

	second, err := f.service.RunDiagnostic(ctx, primary.RunDiagnosticRequest{Project: hyintProject(), Variable: "tas"})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if len(second.Paths) != 0 {
		t.Fatalf("expected second run to resolve nothing, got %v", second.Paths)
	}

	latest, err := f.service.ListFiles(ctx, "")
	if err != nil {
		t.Fatalf("list files: %v", err)
	}
	if latest == nil || len(latest) != 0 {
		t.Errorf("expected an empty list for the latest run, got %v", latest)
	}
}

func TestRunDiagnostic_UsesContextRunID(t *testing.T) {
	f := newTestDiagnosticService(cmipPath("T2Ds", "pr", "day", "historical"))
	ctx := ctxutil.WithRunID(context.Background(), "run-fixed")

	resp, err := f.service.RunDiagnostic(ctx, primary.RunDiagnosticRequest{Project: hyintProject()})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.RunID != "run-fixed" {
		t.Errorf("expected run ID from context, got %q", resp.RunID)
	}
	if len(f.fileList.runs["run-fixed"]) != 1 {
		t.Error("expected entries under the context's run ID")
	}
}

func TestRunDiagnostic_UnknownFamily(t *testing.T) {
	f := newTestDiagnosticService()
	project := hyintProject()
	project.Models = append(project.Models, "EMAC x")

	_, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{Project: project})

	if !errors.Is(err, projects.ErrUnknownFamily) {
		t.Fatalf("expected ErrUnknownFamily, got %v", err)
	}
	if len(f.fileList.runs) != 0 {
		t.Error("expected nothing appended to the file list")
	}
}

func TestRunDiagnostic_FileListError(t *testing.T) {
	f := newTestDiagnosticService(cmipPath("T2Ds", "pr", "day", "historical"))
	f.fileList.appendErr = errors.New("database is locked")

	_, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{Project: hyintProject()})

	if err == nil || !strings.Contains(err.Error(), "database is locked") {
		t.Fatalf("expected file list error, got %v", err)
	}
}

func TestRunDiagnostic_NilProject(t *testing.T) {
	f := newTestDiagnosticService()

	if _, err := f.service.RunDiagnostic(context.Background(), primary.RunDiagnosticRequest{}); err == nil {
		t.Fatal("expected error for missing project, got nil")
	}
}

func TestListFiles_NoRuns(t *testing.T) {
	f := newTestDiagnosticService()

	entries, err := f.service.ListFiles(context.Background(), "")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty slice, got %v", entries)
	}
}
