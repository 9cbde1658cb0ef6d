// Package wire provides dependency injection for the esmdiag application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/esmdiag/internal/adapters/cli"
	"github.com/example/esmdiag/internal/adapters/filesystem"
	"github.com/example/esmdiag/internal/adapters/sqlite"
	"github.com/example/esmdiag/internal/app"
	"github.com/example/esmdiag/internal/db"
	"github.com/example/esmdiag/internal/ports/primary"
	"github.com/example/esmdiag/internal/projects"
)

var (
	logger            = zap.NewNop()
	referenceService  primary.ReferenceService
	resolverService   primary.ResolverService
	diagnosticService primary.DiagnosticService
	once              sync.Once
	resolverOnce      sync.Once
)

// SetLogger sets the logger handed to services. It must be called before
// the first service is requested.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// ReferenceService returns the singleton ReferenceService instance.
func ReferenceService() primary.ReferenceService {
	once.Do(initServices)
	return referenceService
}

// ResolverService returns the singleton ResolverService instance.
// Resolution only stats the filesystem, so the database is left closed.
func ResolverService() primary.ResolverService {
	resolverOnce.Do(initResolver)
	return resolverService
}

// DiagnosticService returns the singleton DiagnosticService instance.
func DiagnosticService() primary.DiagnosticService {
	once.Do(initServices)
	return diagnosticService
}

func initResolver() {
	resolverService = app.NewResolverService(projects.DefaultRegistry(), filesystem.NewFileChecker(), logger.Named("resolver"))
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	referenceRepo := sqlite.NewReferenceRepository(database)
	fileListRepo := sqlite.NewFileListRepository(database)

	// Create services (primary ports implementation)
	referenceService = app.NewReferenceService(referenceRepo, logger.Named("references"))
	diagnosticService = app.NewDiagnosticService(referenceService, ResolverService(), fileListRepo, logger.Named("diagnostic"))
}

// ReferenceAdapter returns a new ReferenceAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func ReferenceAdapter() *cliadapter.ReferenceAdapter {
	return ReferenceAdapterWithOutput(os.Stdout)
}

// ReferenceAdapterWithOutput returns a new ReferenceAdapter writing to the given output.
func ReferenceAdapterWithOutput(out io.Writer) *cliadapter.ReferenceAdapter {
	once.Do(initServices)
	return cliadapter.NewReferenceAdapter(referenceService, out)
}

// DiagnosticAdapter returns a new DiagnosticAdapter writing to stdout.
func DiagnosticAdapter() *cliadapter.DiagnosticAdapter {
	return DiagnosticAdapterWithOutput(os.Stdout)
}

// DiagnosticAdapterWithOutput returns a new DiagnosticAdapter writing to the given output.
func DiagnosticAdapterWithOutput(out io.Writer) *cliadapter.DiagnosticAdapter {
	once.Do(initServices)
	return cliadapter.NewDiagnosticAdapter(diagnosticService, out)
}

// ResolverAdapter returns a new ResolverAdapter writing to stdout.
func ResolverAdapter() *cliadapter.ResolverAdapter {
	return ResolverAdapterWithOutput(os.Stdout)
}

// ResolverAdapterWithOutput returns a new ResolverAdapter writing to the given output.
func ResolverAdapterWithOutput(out io.Writer) *cliadapter.ResolverAdapter {
	return cliadapter.NewResolverAdapter(ResolverService(), out)
}
