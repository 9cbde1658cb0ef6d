package reference

import "fmt"

// Kind is the list a tag belongs to.
type Kind string

const (
	KindAuthor      Kind = "author"
	KindContributor Kind = "contributor"
	KindDiagnostic  Kind = "diagnostic"
	KindObservation Kind = "observation"
	KindProject     Kind = "project"
)

// Kinds lists every tag kind in registry order.
var Kinds = []Kind{KindAuthor, KindContributor, KindDiagnostic, KindObservation, KindProject}

// expected tag prefixes per kind; contributors share the author namespace
var prefixes = map[Kind]string{
	KindAuthor:      "A_",
	KindContributor: "A_",
	KindDiagnostic:  "D_",
	KindObservation: "E_",
	KindProject:     "P_",
}

// LintTags reports tags whose prefix does not match the list they are in.
func LintTags(tags map[Kind][]string) []string {
	var issues []string
	for _, kind := range Kinds {
		want := prefixes[kind]
		for _, tag := range tags[kind] {
			if len(tag) < len(want) || tag[:len(want)] != want {
				issues = append(issues, fmt.Sprintf("%s tag %q should start with %s", kind, tag, want))
			}
		}
	}
	return issues
}

// GenerateReferenceID generates a reference record ID from the current max number.
// The format is REF-XXX where XXX is a zero-padded 3-digit number.
func GenerateReferenceID(currentMax int) string {
	return fmt.Sprintf("REF-%03d", currentMax+1)
}

// ParseReferenceNumber extracts the numeric portion from a reference ID.
// Returns -1 if the ID format is invalid.
func ParseReferenceNumber(id string) int {
	var num int
	_, err := fmt.Sscanf(id, "REF-%d", &num)
	if err != nil {
		return -1
	}
	return num
}
