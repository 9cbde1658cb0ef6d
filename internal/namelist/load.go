package namelist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape shared by the YAML, TOML and JSON formats.
type document struct {
	Global      globalSection    `yaml:"global" toml:"global" json:"global"`
	Models      []string         `yaml:"models" toml:"models" json:"models"`
	Diagnostics []DiagnosticSpec `yaml:"diagnostics" toml:"diagnostics" json:"diagnostics"`
}

type globalSection struct {
	Verbosity int    `yaml:"verbosity" toml:"verbosity" json:"verbosity"`
	ClimoDir  string `yaml:"climo_dir" toml:"climo_dir" json:"climo_dir"`
	OutputDir string `yaml:"output_dir" toml:"output_dir" json:"output_dir"`
}

// HCL needs its own tags: diagnostics and variables are labelled blocks.
type hclDocument struct {
	Global      *hclGlobal      `hcl:"global,block"`
	Models      []string        `hcl:"models,optional"`
	Diagnostics []hclDiagnostic `hcl:"diagnostic,block"`
}

type hclGlobal struct {
	Verbosity int    `hcl:"verbosity,optional"`
	ClimoDir  string `hcl:"climo_dir,optional"`
	OutputDir string `hcl:"output_dir,optional"`
}

type hclDiagnostic struct {
	Name      string        `hcl:"name,label"`
	Script    string        `hcl:"script,optional"`
	Variables []hclVariable `hcl:"variable,block"`
}

type hclVariable struct {
	Name       string `hcl:"name,label"`
	FieldType  string `hcl:"field"`
	MIP        string `hcl:"mip,optional"`
	Experiment string `hcl:"exp,optional"`
}

func (h *hclDocument) toDocument() document {
	var doc document
	if h.Global != nil {
		doc.Global = globalSection{
			Verbosity: h.Global.Verbosity,
			ClimoDir:  h.Global.ClimoDir,
			OutputDir: h.Global.OutputDir,
		}
	}
	doc.Models = h.Models
	for _, d := range h.Diagnostics {
		spec := DiagnosticSpec{Name: d.Name, Script: d.Script}
		for _, v := range d.Variables {
			spec.Bindings = append(spec.Bindings, VariableBinding{
				Name:       v.Name,
				FieldType:  v.FieldType,
				MIP:        v.MIP,
				Experiment: v.Experiment,
			})
		}
		doc.Diagnostics = append(doc.Diagnostics, spec)
	}
	return doc
}

// Load reads a namelist, choosing the decoder from the file extension
// (.yaml/.yml, .toml, .hcl, .json). The path becomes the context's
// configuration-file identifier.
func Load(path string) (*ProjectContext, error) {
	doc, err := decode(path)
	if err != nil {
		return nil, err
	}

	if err := validate(path, doc); err != nil {
		return nil, err
	}

	ctx := &ProjectContext{
		ConfigFile:  path,
		Verbosity:   doc.Global.Verbosity,
		ClimoDir:    resolveDir(path, doc.Global.ClimoDir),
		OutputDir:   resolveDir(path, doc.Global.OutputDir),
		Diagnostics: doc.Diagnostics,
	}
	for _, m := range doc.Models {
		ctx.Models = append(ctx.Models, ModelDescriptor(m))
	}

	// Without an explicit selection the first diagnostic is current.
	if len(doc.Diagnostics) > 0 {
		first := doc.Diagnostics[0]
		ctx.DiagScriptName = first.Script
		ctx.CurrentVars = first.Variables()
	}

	return ctx, nil
}

func decode(path string) (document, error) {
	var doc document

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return doc, fmt.Errorf("failed to read namelist: %w", err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("failed to parse namelist %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, &doc); err != nil {
			return doc, fmt.Errorf("failed to parse namelist %s: %w", path, err)
		}
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return doc, fmt.Errorf("failed to read namelist: %w", err)
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, fmt.Errorf("failed to parse namelist %s: %w", path, err)
		}
	case ".hcl":
		file, diags := hclparse.NewParser().ParseHCLFile(path)
		if diags.HasErrors() {
			return doc, fmt.Errorf("failed to parse namelist %s: %w", path, diags)
		}
		var h hclDocument
		if diags := gohcl.DecodeBody(file.Body, nil, &h); diags.HasErrors() {
			return doc, fmt.Errorf("failed to decode namelist %s: %w", path, diags)
		}
		doc = h.toDocument()
	default:
		return doc, &ConfigurationError{File: path, Field: "format", Reason: fmt.Sprintf("unsupported extension %q", ext)}
	}

	return doc, nil
}

func validate(path string, doc document) error {
	for i, d := range doc.Diagnostics {
		if strings.TrimSpace(d.Name) == "" {
			return &ConfigurationError{File: path, Field: fmt.Sprintf("diagnostics[%d].name", i), Reason: "must not be empty"}
		}
		if len(d.Bindings) == 0 {
			return &ConfigurationError{File: path, Field: fmt.Sprintf("diagnostics[%d].variables", i), Reason: "diagnostic " + d.Name + " declares no variables"}
		}
		for j, b := range d.Bindings {
			if strings.TrimSpace(b.Name) == "" {
				return &ConfigurationError{File: path, Field: fmt.Sprintf("diagnostics[%d].variables[%d].name", i, j), Reason: "must not be empty"}
			}
			if strings.TrimSpace(b.FieldType) == "" {
				return &ConfigurationError{File: path, Field: fmt.Sprintf("diagnostics[%d].variables[%d].field", i, j), Reason: "must not be empty"}
			}
		}
	}

	for i, m := range doc.Models {
		if strings.TrimSpace(m) == "" {
			return &ConfigurationError{File: path, Field: fmt.Sprintf("models[%d]", i), Reason: "model line is blank"}
		}
	}

	return nil
}

// resolveDir makes a relative directory relative to the namelist's location.
func resolveDir(namelistPath, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(namelistPath), dir)
}
