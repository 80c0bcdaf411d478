package handler

import (
	"errors"
	"fmt"
)

// MalformedInputError reports input that cannot be parsed under a format.
type MalformedInputError struct {
	// Format is the format the input was parsed as.
	Format Format

	// Source names where the input came from ("actual" or "stored").
	// Empty when the handler is used directly.
	Source string

	// Err is the underlying parse error.
	Err error
}

func (e *MalformedInputError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("malformed %s input (%s): %v", e.Format, e.Source, e.Err)
	}
	return fmt.Sprintf("malformed %s input: %v", e.Format, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// IsMalformedInput returns true if err is or wraps a MalformedInputError.
func IsMalformedInput(err error) bool {
	var me *MalformedInputError
	return errors.As(err, &me)
}
