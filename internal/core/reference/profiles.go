package reference

import (
	"sort"
	"strings"
)

// Profile is the fixed reference metadata of a known diagnostic.
type Profile struct {
	Name         string
	Script       string
	Authors      []string
	Contributors []string
	DiagRefs     []string
	ObsRefs      []string
	ProjRefs     []string
}

var profiles = map[string]Profile{
	"hyint": {
		Name:         "hyint",
		Script:       "hyint.r",
		Authors:      []string{"A_arno_en", "A_hard_jo"},
		Contributors: []string{""},
		DiagRefs:     []string{"D_giorgi14jgr", "D_giorgi11jc"},
		ObsRefs:      []string{"E_erainterim"},
		ProjRefs:     []string{"P_c3s34a"},
	},
}

// Selection is the outcome of SelectProfile.
type Selection struct {
	Profile Profile
	Matched bool
	// Legacy is set when the match came from the configuration-file
	// substring rule rather than an explicit diagnostic name.
	Legacy bool
	// Shadowed names the profile the configuration file would have
	// selected had no explicit diagnostic name been given.
	Shadowed string
}

// SelectProfile picks the profile for a run. An explicit diagnostic name is
// matched exactly. Without one, a profile applies when the configuration
// file identifier contains its name, which is how older namelists select it.
func SelectProfile(diagnosticName, configFile string) Selection {
	legacy, hasLegacy := matchConfigFile(configFile)

	if diagnosticName != "" {
		p, ok := profiles[diagnosticName]
		sel := Selection{Profile: p, Matched: ok}
		if hasLegacy && legacy != diagnosticName {
			sel.Shadowed = legacy
		}
		return sel
	}

	if hasLegacy {
		return Selection{Profile: profiles[legacy], Matched: true, Legacy: true}
	}
	return Selection{}
}

func matchConfigFile(configFile string) (string, bool) {
	for _, name := range profileNames() {
		if strings.Contains(configFile, name) {
			return name, true
		}
	}
	return "", false
}

// LookupProfile returns the profile registered under name.
func LookupProfile(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Profiles returns every known profile ordered by name.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, name := range profileNames() {
		out = append(out, profiles[name])
	}
	return out
}

func profileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
