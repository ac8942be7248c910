package typeset

import (
	"errors"
	"fmt"
)

// Fatal error categories. Callers match them with errors.Is; the
// wrapped message carries the offending detail.
var (
	// ErrInvalidStyle marks a style that references resources the
	// collaborators cannot resolve, such as an unregistered font family.
	ErrInvalidStyle = errors.New("invalid style")

	// ErrMalformedTable marks a table whose structure is unusable, such
	// as zero columns or a row with the wrong cell count.
	ErrMalformedTable = errors.New("malformed table")

	// ErrCollaborator marks a failure reported by an external
	// collaborator such as the font-metrics provider or the page writer.
	ErrCollaborator = errors.New("collaborator failure")
)

// InvalidStyleError wraps cause as a fatal invalid-style error.
func InvalidStyleError(cause error) error {
	return fmt.Errorf("%w: %v", ErrInvalidStyle, cause)
}

// MalformedTableError builds a fatal malformed-table error.
func MalformedTableError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedTable, fmt.Sprintf(format, args...))
}

// CollaboratorError wraps a failure from the named external
// collaborator.
func CollaboratorError(name string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrCollaborator, name, cause)
}
