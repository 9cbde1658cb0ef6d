package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/example/esmdiag/internal/namelist"
	"github.com/example/esmdiag/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement their interfaces
var (
	_ secondary.ReferenceRepository = (*mockReferenceRepository)(nil)
	_ secondary.FileListRepository  = (*mockFileListRepository)(nil)
	_ secondary.FileChecker         = (*mockFileChecker)(nil)
)

// mockReferenceRepository implements secondary.ReferenceRepository for testing.
type mockReferenceRepository struct {
	records    map[string]*secondary.ReferenceRecord // diag script -> record
	nextID     int
	createErr  error
	replaceErr error
	getErr     error
	listErr    error
	creates    int
	replaces   int
}

func newMockReferenceRepository() *mockReferenceRepository {
	return &mockReferenceRepository{
		records: make(map[string]*secondary.ReferenceRecord),
		nextID:  1,
	}
}

func (m *mockReferenceRepository) Create(ctx context.Context, record *secondary.ReferenceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	m.records[record.DiagScript] = record
	return nil
}

func (m *mockReferenceRepository) Replace(ctx context.Context, record *secondary.ReferenceRecord) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	existing, ok := m.records[record.DiagScript]
	if !ok {
		return errors.New("references not found")
	}
	m.replaces++
	record.ID = existing.ID
	m.records[record.DiagScript] = record
	return nil
}

func (m *mockReferenceRepository) GetByScript(ctx context.Context, diagScript string) (*secondary.ReferenceRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.records[diagScript], nil
}

func (m *mockReferenceRepository) List(ctx context.Context) ([]*secondary.ReferenceRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]*secondary.ReferenceRecord, 0, len(m.records))
	for _, r := range m.records {
		result = append(result, r)
	}
	return result, nil
}

func (m *mockReferenceRepository) Delete(ctx context.Context, diagScript string) error {
	if _, ok := m.records[diagScript]; !ok {
		return errors.New("references not found")
	}
	delete(m.records, diagScript)
	return nil
}

func (m *mockReferenceRepository) GetNextID(ctx context.Context) (string, error) {
	id := m.nextID
	m.nextID++
	return fmt.Sprintf("REF-%03d", id), nil
}

// mockFileListRepository implements secondary.FileListRepository for testing.
type mockFileListRepository struct {
	runs      map[string][]*secondary.FileListRecord
	order     []string
	appendErr error
}

func newMockFileListRepository() *mockFileListRepository {
	return &mockFileListRepository{runs: make(map[string][]*secondary.FileListRecord)}
}

func (m *mockFileListRepository) Append(ctx context.Context, runID, variable string, paths []string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	if _, ok := m.runs[runID]; !ok {
		m.order = append(m.order, runID)
		m.runs[runID] = nil
	}
	for _, p := range paths {
		m.runs[runID] = append(m.runs[runID], &secondary.FileListRecord{
			RunID:    runID,
			Seq:      len(m.runs[runID]),
			Variable: variable,
			Path:     p,
		})
	}
	return nil
}

func (m *mockFileListRepository) ListByRun(ctx context.Context, runID string) ([]*secondary.FileListRecord, error) {
	return m.runs[runID], nil
}

func (m *mockFileListRepository) LatestRunID(ctx context.Context) (string, error) {
	if len(m.order) == 0 {
		return "", nil
	}
	return m.order[len(m.order)-1], nil
}

// mockFileChecker implements secondary.FileChecker for testing. It is safe
// for concurrent use.
type mockFileChecker struct {
	mu       sync.Mutex
	existing map[string]bool
	failing  map[string]error
	checked  []string
}

func newMockFileChecker(existing ...string) *mockFileChecker {
	m := &mockFileChecker{
		existing: make(map[string]bool),
		failing:  make(map[string]error),
	}
	for _, p := range existing {
		m.existing[p] = true
	}
	return m
}

func (m *mockFileChecker) IsFile(ctx context.Context, path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checked = append(m.checked, path)
	if err, ok := m.failing[path]; ok {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return m.existing[path], nil
}

func (m *mockFileChecker) checkedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.checked...)
}

// ============================================================================
// Fixtures
// ============================================================================

const testClimo = "/climo"

var (
	cmipModel = namelist.ModelDescriptor("CMIP5 EC-EARTH day historical r8i1p1 1980 2005 /data/cmip5")
	obsModel  = namelist.ModelDescriptor("OBS ERA-Interim reanaly 1 1980 2005 /data/obs")
)

// hyintProject mirrors testdata/namelist_hyint.yaml with an absolute climo dir.
func hyintProject() *namelist.ProjectContext {
	return &namelist.ProjectContext{
		ConfigFile:     "namelist_hyint.yaml",
		DiagnosticName: "hyint",
		DiagScriptName: "hyint.r",
		Verbosity:      1,
		ClimoDir:       testClimo,
		CurrentVars:    []string{"pr"},
		Diagnostics: []namelist.DiagnosticSpec{
			{
				Name:   "hyint",
				Script: "hyint.r",
				Bindings: []namelist.VariableBinding{
					{Name: "pr", FieldType: "T2Ds", MIP: "day", Experiment: "historical"},
				},
			},
		},
		Models: []namelist.ModelDescriptor{cmipModel, obsModel},
	}
}

func cmipPath(field, variable, mip, exp string) string {
	return filepath.Join(testClimo, "CMIP5",
		"CMIP5_EC-EARTH_"+mip+"_"+exp+"_r8i1p1_"+field+"_"+variable+"_1980-2005.nc")
}

func obsPath(field, variable string) string {
	return filepath.Join(testClimo, "OBS",
		"OBS_ERA-Interim_reanaly_1_"+field+"_"+variable+"_1980-2005.nc")
}
