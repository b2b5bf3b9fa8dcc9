// Package command holds one type per user intent. Each command carries
// arguments that were validated by the parser and runs against the model
// through Execute.
package command

import (
	"errors"

	"classmate/pkg/interfaces"
	"classmate/pkg/types"
)

// Command is one parsed user intent.
// Execute re-checks referential arguments (indexes, session names) against
// the model as it is now, since the model may have changed since parsing.
type Command interface {
	Execute(m interfaces.Model) (Result, error)
}

// Result is what a successful command reports back to the user.
type Result struct {
	Feedback string
	// Exit asks the surrounding shell to stop reading input.
	Exit bool
}

// Error is the CommandError every model failure is wrapped in. Kind is
// derived from the wrapped error.
type Error struct {
	Kind    types.Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap converts err into a *Error. nil stays nil and an existing *Error is
// returned unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce
	}
	return &Error{Kind: types.KindOf(err), Message: err.Error(), Err: err}
}
