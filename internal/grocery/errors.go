package grocery

import (
	"errors"
	"fmt"
)

var (
	// ErrTitleRequired is matched by a ValidationError for a blank title.
	ErrTitleRequired = errors.New("title required")

	// ErrUnauthenticated means no usable credential was available, or the
	// service rejected the one that was sent.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrSaveInProgress is returned when Save is called while another save of
	// the same list has not finished.
	ErrSaveInProgress = errors.New("save already in progress")

	// ErrAlreadySaved is returned when Save is called on a list that already
	// has a server id.
	ErrAlreadySaved = errors.New("grocery list already saved")
)

// ValidationError is a user-correctable input problem. It never reaches the
// network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrTitleRequired) match a title ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrTitleRequired && e.Field == "title"
}

// PersistenceError wraps a failure of the persistence call. The list is left
// as it was so the save can be retried.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
