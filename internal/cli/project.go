package cli

import (
	"fmt"
	"os"

	"github.com/example/esmdiag/internal/config"
	"github.com/example/esmdiag/internal/namelist"
)

// loadProject reads the working directory's config and the namelist it
// points at, focused on diagnostic when one is named.
func loadProject(namelistFlag, diagnostic string) (*namelist.ProjectContext, *config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.LoadConfigOrDefault(cwd)
	if err != nil {
		return nil, nil, err
	}

	path, err := cfg.NamelistPath(namelistFlag)
	if err != nil {
		return nil, nil, err
	}

	project, err := namelist.Load(path)
	if err != nil {
		return nil, nil, err
	}

	if diagnostic != "" {
		project, err = project.Select(diagnostic)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := SetupLogger(project.Verbosity); err != nil {
		return nil, nil, err
	}

	return project, cfg, nil
}
