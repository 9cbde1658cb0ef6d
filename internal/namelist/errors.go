package namelist

import "fmt"

// ConfigurationError reports a malformed or missing namelist field.
type ConfigurationError struct {
	File   string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("invalid namelist field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: invalid namelist field %s: %s", e.File, e.Field, e.Reason)
}
