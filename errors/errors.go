// Package errors provides const-able string errors and thin wrappers over the standard errors package.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSeparator separates the message of an Error from the cause it wraps.
const ErrSeparator = " -- "

// Error is a string based error type allowing packages to declare sentinel errors as constants.
type Error string

func (s Error) Error() string {
	return string(s)
}

// Is reports whether target is this Error or an Error wrapped by it.
func (s Error) Is(target error) bool {
	if target == nil {
		return false
	}
	return s.Error() == target.Error() || strings.HasPrefix(target.Error(), s.Error()+ErrSeparator)
}

// Wrap returns an error with this Error as its message and err as its cause.
func (s Error) Wrap(err error) error {
	return wrappedError{cause: err, msg: string(s)}
}

// Wrapf is shorthand for s.Wrap(fmt.Errorf(format, args...)).
func (s Error) Wrapf(format string, args ...any) error {
	return s.Wrap(fmt.Errorf(format, args...))
}

type wrappedError struct {
	cause error
	msg   string
}

func (w wrappedError) Error() string {
	if w.cause != nil {
		return fmt.Sprintf("%s%s%v", w.msg, ErrSeparator, w.cause)
	}
	return w.msg
}

func (w wrappedError) Is(target error) bool {
	return Error(w.msg).Is(target)
}

func (w wrappedError) Unwrap() error {
	return w.cause
}

// Is checks if err is equivalent to target.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns a new error with the specified message.
func New(message string) error {
	return errors.New(message)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

type joinedErrors interface {
	Unwrap() []error
}

// UnwrapErrors returns the errors joined into err, or err itself.
func UnwrapErrors(err error) []error {
	if err == nil {
		return nil
	}

	if je, ok := err.(joinedErrors); ok {
		return je.Unwrap()
	}
	return []error{err}
}
