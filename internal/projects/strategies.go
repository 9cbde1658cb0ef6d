package projects

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/esmdiag/internal/namelist"
)

func builtins() []Strategy {
	return []Strategy{
		cmip{family: "CMIP5"},
		cmip{family: "CMIP5_ETHZ"},
		observational{family: "OBS"},
		observational{family: "obs4mips"},
		observational{family: "ana4mips"},
	}
}

// cmip lays out model lines as
//
//	project name mip exp ensemble start end [dir]
//
// and names files <project>_<name>_<mip>_<exp>_<ens>_<field>_<var>_<start>-<end>.nc.
// A diagnostic's mip and exp take precedence over the model line's.
type cmip struct {
	family string
}

func (c cmip) Family() string { return c.family }

func (c cmip) FullPath(project *namelist.ProjectContext, model namelist.ModelDescriptor, field, variable, mip, exp string) (string, error) {
	e, err := entries(c.family, model, 7)
	if err != nil {
		return "", err
	}

	mip = override(mip, e[2])
	exp = override(exp, e[3])

	name := fmt.Sprintf("%s_%s_%s_%s_%s_%s_%s_%s-%s.nc", e[0], e[1], mip, exp, e[4], field, variable, e[5], e[6])
	return filepath.Join(project.ClimoDir, e[0], name), nil
}

// observational covers OBS, obs4mips and ana4mips:
//
//	project name a b start end [dir]
//
// where (a, b) is (case, ensemble), (level, version) or (level, type).
// Files are named <project>_<name>_<a>_<b>_<field>_<var>_<start>-<end>.nc.
type observational struct {
	family string
}

func (o observational) Family() string { return o.family }

func (o observational) FullPath(project *namelist.ProjectContext, model namelist.ModelDescriptor, field, variable, _, _ string) (string, error) {
	e, err := entries(o.family, model, 6)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s_%s_%s_%s_%s_%s-%s.nc", e[0], e[1], e[2], e[3], field, variable, e[4], e[5])
	return filepath.Join(project.ClimoDir, e[0], name), nil
}

func entries(family string, model namelist.ModelDescriptor, want int) ([]string, error) {
	e := model.Entries()
	if len(e) < want {
		return nil, &DescriptorError{Family: family, Descriptor: model, Want: want, Got: len(e)}
	}
	return e, nil
}

// override returns the diagnostic's value unless it is empty or an
// unexpanded ${...} placeholder.
func override(diagnostic, model string) string {
	if diagnostic == "" || strings.HasPrefix(diagnostic, "${") {
		return model
	}
	return diagnostic
}
