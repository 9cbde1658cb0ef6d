// Package namelist holds the project context a diagnostic runs against:
// the declared diagnostics, the model lines and the global settings loaded
// from a namelist file.
package namelist

import (
	"strings"
)

// VariableBinding is one declared variable of a diagnostic.
type VariableBinding struct {
	Name       string `yaml:"name" toml:"name" json:"name"`
	FieldType  string `yaml:"field" toml:"field" json:"field"`
	MIP        string `yaml:"mip,omitempty" toml:"mip,omitempty" json:"mip,omitempty"`
	Experiment string `yaml:"exp,omitempty" toml:"exp,omitempty" json:"exp,omitempty"`
}

// DiagnosticSpec identifies a diagnostic and its declared variables.
type DiagnosticSpec struct {
	Name     string            `yaml:"name" toml:"name" json:"name"`
	Script   string            `yaml:"script,omitempty" toml:"script,omitempty" json:"script,omitempty"`
	Bindings []VariableBinding `yaml:"variables" toml:"variables" json:"variables"`
}

// Variables returns the declared variable names in declaration order.
func (d DiagnosticSpec) Variables() []string {
	out := make([]string, len(d.Bindings))
	for i, b := range d.Bindings {
		out[i] = b.Name
	}
	return out
}

// FieldTypes returns the field types, indexed like Variables.
func (d DiagnosticSpec) FieldTypes() []string {
	out := make([]string, len(d.Bindings))
	for i, b := range d.Bindings {
		out[i] = b.FieldType
	}
	return out
}

// MIPs returns the mip-table attributes, indexed like Variables.
func (d DiagnosticSpec) MIPs() []string {
	out := make([]string, len(d.Bindings))
	for i, b := range d.Bindings {
		out[i] = b.MIP
	}
	return out
}

// Experiments returns the experiment attributes, indexed like Variables.
func (d DiagnosticSpec) Experiments() []string {
	out := make([]string, len(d.Bindings))
	for i, b := range d.Bindings {
		out[i] = b.Experiment
	}
	return out
}

// ModelDescriptor is a raw model line such as
// "CMIP5 EC-EARTH Amon historical r8i1p1 1980 2005 /data/cmip5".
type ModelDescriptor string

// Entries splits the descriptor into its whitespace separated fields.
func (m ModelDescriptor) Entries() []string {
	return strings.Fields(string(m))
}

// Family returns the model family key (the first entry), or "" for a blank line.
func (m ModelDescriptor) Family() string {
	entries := m.Entries()
	if len(entries) == 0 {
		return ""
	}
	return entries[0]
}

// ProjectContext is the read-only view of a loaded namelist.
type ProjectContext struct {
	ConfigFile     string
	DiagnosticName string
	DiagScriptName string
	Verbosity      int
	ClimoDir       string
	OutputDir      string
	CurrentVars    []string
	Diagnostics    []DiagnosticSpec
	Models         []ModelDescriptor
}

// Diagnostic returns the diagnostic with the given name.
func (p *ProjectContext) Diagnostic(name string) (DiagnosticSpec, bool) {
	for _, d := range p.Diagnostics {
		if d.Name == name {
			return d, true
		}
	}
	return DiagnosticSpec{}, false
}

// Select returns a copy of the context focused on one diagnostic: its
// variables become the current variables and its script the diagnostic script.
func (p *ProjectContext) Select(name string) (*ProjectContext, error) {
	diag, ok := p.Diagnostic(name)
	if !ok {
		return nil, &ConfigurationError{Field: "diagnostic", Reason: "no diagnostic named " + name}
	}

	selected := *p
	selected.DiagnosticName = diag.Name
	selected.DiagScriptName = diag.Script
	selected.CurrentVars = diag.Variables()
	return &selected, nil
}

// Restrict is Select that also drops every other diagnostic, so resolution
// only walks the named one.
func (p *ProjectContext) Restrict(name string) (*ProjectContext, error) {
	selected, err := p.Select(name)
	if err != nil {
		return nil, err
	}
	diag, _ := p.Diagnostic(name)
	selected.Diagnostics = []DiagnosticSpec{diag}
	return selected, nil
}
