package core

import (
	"errors"
	"fmt"
)

// UserError marks errors caused by what the user typed. They are reported
// on the console and the command ends without a process-level failure.
type UserError interface {
	error
	userError()
}

// ArgumentCountError reports the wrong number of positional arguments.
// An empty Command means an extra argument was given to a command that
// takes none.
type ArgumentCountError struct {
	Command string
	Got     int
}

func (e *ArgumentCountError) Error() string {
	if e.Command == "" {
		return "only one argument can be accepted"
	}
	return fmt.Sprintf("invalid number of arguments passed for %s command", e.Command)
}

// ArgumentTypeError reports a task number that is not an integer.
type ArgumentTypeError struct {
	Command string
	Value   string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("please provide a valid number for %s command", e.Command)
}

// ArgumentRangeError reports a task number outside 1..Len.
type ArgumentRangeError struct {
	Command string
	N       int
	Len     int
}

func (e *ArgumentRangeError) Error() string {
	return fmt.Sprintf("invalid number passed for %s command.", e.Command)
}

// UnknownCommandError reports a command token outside the recognized set.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "invalid command passed"
}

// InputError reports unusable input other than positional arguments: an
// empty title, a closed input stream, a malformed flag.
type InputError struct {
	Reason string
	Err    error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func (*ArgumentCountError) userError()  {}
func (*ArgumentTypeError) userError()   {}
func (*ArgumentRangeError) userError()  {}
func (*UnknownCommandError) userError() {}
func (*InputError) userError()          {}

// IsUserError reports whether err, or any error it wraps, is a UserError.
func IsUserError(err error) bool {
	var ue UserError
	return errors.As(err, &ue)
}

// NeedsUsage reports whether the usage text should follow err: true for
// unknown commands and for extra arguments to commands that take none.
func NeedsUsage(err error) bool {
	var unknown *UnknownCommandError
	if errors.As(err, &unknown) {
		return true
	}
	var count *ArgumentCountError
	return errors.As(err, &count) && count.Command == ""
}
