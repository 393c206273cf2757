package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindValidation
	KindConflict
	KindNotFound
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func Unauthorized(msg string) *Error    { return New(KindUnauthorized, msg) }
func Validation(msg string) *Error      { return New(KindValidation, msg) }
func Conflict(msg string) *Error        { return New(KindConflict, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal server error", Err: err}
}

// KindOf reports the kind of err, defaulting to KindInternal for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
