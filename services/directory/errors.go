package directory

import (
	"errors"
	"fmt"
)

// ErrContactNotFound signals that a name has no entry in the directory.
var ErrContactNotFound = errors.New("contact not found in directory")

// DirectoryError wraps a failure of the underlying contact store.
type DirectoryError struct {
	Op  string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("directory %s: %v", e.Op, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// DuplicateContactError signals a unique-constraint violation on upsert,
// typically the email already belonging to another name. It is informational,
// not a hard failure.
type DuplicateContactError struct {
	Name  string
	Email string
}

func (e *DuplicateContactError) Error() string {
	return fmt.Sprintf("contact %s <%s> conflicts with an existing entry", e.Name, e.Email)
}
