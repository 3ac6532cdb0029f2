package doppelkopf

import (
	"errors"
	"fmt"
)

// ForbiddenError means the caller lacks the right to perform the action on
// this entity (wrong owner, wrong dealer, wrong turn)
type ForbiddenError struct {
	reason string
}

func (e ForbiddenError) Error() string {
	return e.reason
}

// InvalidError means the action is not applicable in the current state
// (wrong phase, rule violated, missing prerequisite)
type InvalidError struct {
	reason string
}

func (e InvalidError) Error() string {
	return e.reason
}

// GameFailedError means an internal invariant was violated. It indicates a
// bug and is never recovered locally.
type GameFailedError struct {
	reason string
}

func (e GameFailedError) Error() string {
	return e.reason
}

// Forbiddenf returns a new ForbiddenError
func Forbiddenf(format string, a ...interface{}) error {
	return ForbiddenError{reason: fmt.Sprintf(format, a...)}
}

// Invalidf returns a new InvalidError
func Invalidf(format string, a ...interface{}) error {
	return InvalidError{reason: fmt.Sprintf(format, a...)}
}

// GameFailedf returns a new GameFailedError
func GameFailedf(format string, a ...interface{}) error {
	return GameFailedError{reason: fmt.Sprintf(format, a...)}
}

// IsForbidden returns true if the error is a ForbiddenError
func IsForbidden(err error) bool {
	var fe ForbiddenError
	return errors.As(err, &fe)
}

// IsInvalid returns true if the error is an InvalidError
func IsInvalid(err error) bool {
	var ie InvalidError
	return errors.As(err, &ie)
}

// IsGameFailed returns true if the error is a GameFailedError
func IsGameFailed(err error) bool {
	var ge GameFailedError
	return errors.As(err, &ge)
}
