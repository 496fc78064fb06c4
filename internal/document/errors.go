// internal/document/errors.go
package document

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownComponent marks a body that embeds a component outside the known set.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrMalformed marks component markup that cannot be compiled.
	ErrMalformed = errors.New("malformed component markup")
)

// SerializationError reports a post body that could not be compiled.
// Component is empty when the failure is not tied to a single component.
type SerializationError struct {
	Slug      string
	File      string
	Component string
	Err       error
}

func (e *SerializationError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("serialize %s (%s): <%s>: %v", e.Slug, e.File, e.Component, e.Err)
	}
	return fmt.Sprintf("serialize %s (%s): %v", e.Slug, e.File, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
