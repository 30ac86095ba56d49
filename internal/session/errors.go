package session

import (
	"errors"
	"fmt"
)

// ErrProtocol matches every error raised for an operation that is illegal
// in the machine's current state. Drivers that see it are out of sync with
// the machine.
var ErrProtocol = errors.New("session protocol error")

// InvalidConfigError is returned by Start for an unusable config. The
// machine stays NOT_STARTED.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid session config: %s", e.Reason)
}

// NoActiveQuestionError is returned when an answer is submitted while no
// question is being served.
type NoActiveQuestionError struct {
	Status Status
}

func (e *NoActiveQuestionError) Error() string {
	return fmt.Sprintf("no active question (status %s)", e.Status)
}

func (e *NoActiveQuestionError) Is(target error) bool { return target == ErrProtocol }

// InvalidTransitionError is returned when Op is not allowed from From.
type InvalidTransitionError struct {
	Op   string
	From Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from %s", e.Op, e.From)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrProtocol }

// UnknownOptionError is returned when an answer names an option the current
// question does not offer.
type UnknownOptionError struct {
	QuestionID string
	OptionID   string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("question %s has no option %q", e.QuestionID, e.OptionID)
}

func (e *UnknownOptionError) Is(target error) bool { return target == ErrProtocol }
