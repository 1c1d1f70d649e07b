package generator

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks a plan that reached emission in an invalid shape.
// It signals a defect upstream of the generator, never a user data problem.
var ErrPrecondition = errors.New("generation precondition violated")

// PreconditionError describes which part of a plan was invalid.
type PreconditionError struct {
	Type   string
	Member string
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("%s: %s: %s", ErrPrecondition, e.Type, e.Reason)
	}
	return fmt.Sprintf("%s: %s.%s: %s", ErrPrecondition, e.Type, e.Member, e.Reason)
}

// Unwrap lets errors.Is match ErrPrecondition.
func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}
