// Package zqe provides a mechanism to create or wrap errors with a Kind
// that classifies them.  Callers test for a class of failure with IsKind
// (or the Is helpers) rather than by matching error strings.
package zqe

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
)

// A Kind represents a class of error.
type Kind int

const (
	Other Kind = iota
	Invalid
	NotFound
	Exists
	// IllegalType is an argument type that a type constructor does not
	// accept, e.g., a signed index type for a dictionary.
	IllegalType
	// ArgumentCount is a type expression with the wrong number of
	// arguments.
	ArgumentCount
	// Logical is a broken internal invariant.  It is a contract
	// violation by the caller or a bug, never a condition to retry.
	Logical
)

func (k Kind) String() string {
	switch k {
	case Other:
		return "other error"
	case Invalid:
		return "invalid operation"
	case NotFound:
		return "item does not exist"
	case Exists:
		return "item already exists"
	case IllegalType:
		return "illegal type of argument"
	case ArgumentCount:
		return "number of arguments doesn't match"
	case Logical:
		return "logical error"
	}
	return "unknown error kind"
}

type Error struct {
	Kind Kind
	Err  error
}

func pad(b *bytes.Buffer, s string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(s)
}

func (e *Error) Error() string {
	b := &bytes.Buffer{}
	if e.Kind != Other {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}
	if e.Err != nil {
		pad(b, ": ")
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return "no error"
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns just the Err.Error() string, if present, or the Kind
// string description.
func (e *Error) Message() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Kind != Other {
		return e.Kind.String()
	}
	return "no error"
}

// Function E generates an error from any mix of:
// - a Kind
// - an existing error
// - a string and optional formatting verbs, like fmt.Errorf (including support
//	for the `%w` verb).
//
// The string & format verbs must be last in the arguments, if present.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("no args to errors.E")
	}
	e := &Error{}
	for i, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case error:
			e.Err = arg
		case string:
			e.Err = fmt.Errorf(arg, args[i+1:]...)
			return e
		default:
			_, file, line, _ := runtime.Caller(1)
			return fmt.Errorf("unknown type %T value %v in errors.E call at %v:%v", arg, arg, file, line)
		}
	}
	return e
}

// KindOf returns the Kind of the outermost *Error in err's chain or Other
// if there is none.
func KindOf(err error) Kind {
	var zerr *Error
	if errors.As(err, &zerr) {
		return zerr.Kind
	}
	return Other
}

// IsKind reports whether any *Error in err's chain has Kind k.
func IsKind(err error, k Kind) bool {
	for err != nil {
		var zerr *Error
		if !errors.As(err, &zerr) {
			return false
		}
		if zerr.Kind == k {
			return true
		}
		err = zerr.Err
	}
	return false
}

func ErrInvalid(args ...interface{}) error {
	return E(append([]interface{}{Invalid}, args...)...)
}

func IsInvalid(err error) bool {
	return IsKind(err, Invalid)
}

func ErrNotFound(args ...interface{}) error {
	if len(args) == 0 {
		return &Error{Kind: NotFound}
	}
	return E(append([]interface{}{NotFound}, args...)...)
}

func IsNotFound(err error) bool {
	return IsKind(err, NotFound)
}

func ErrExists(args ...interface{}) error {
	if len(args) == 0 {
		return &Error{Kind: Exists}
	}
	return E(append([]interface{}{Exists}, args...)...)
}

func IsExists(err error) bool {
	return IsKind(err, Exists)
}

func ErrLogical(args ...interface{}) error {
	return E(append([]interface{}{Logical}, args...)...)
}

func IsLogical(err error) bool {
	return IsKind(err, Logical)
}
