package suggest

import "fmt"

// ConfigError reports a construction-time configuration problem; the
// engine instance that raised it is never usable.
type ConfigError struct {
	Field string
	Cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid engine configuration (%s): %v", e.Field, e.Cause)
}

// NewConfigError wraps cause as a ConfigError for the named field.
func NewConfigError(field string, cause error) *ConfigError {
	return &ConfigError{Field: field, Cause: cause}
}

// DuplicateToolError reports that add_tools rejected a spec whose name
// already exists in the catalog. The engine's state is unaffected.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("tool %q already exists in catalog", e.Name)
}

// UnknownToolError reports that remove_tool was given a name not present
// in the catalog.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("tool %q is not in catalog", e.Name)
}
