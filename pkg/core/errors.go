package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies recoverable failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindParse
	KindMalformedFilename
	KindEmptyDirectory
	KindNoDataLoaded
	KindUnknownColumn
	KindNoMatch
	KindNoGroupsSelected
	KindNotSupportedOnDerivedView
	KindIO
	KindInvalidRange
	KindInvalidQuery
	KindKeyNotFound
)

var kindNames = map[ErrorKind]string{
	KindUnknown:                   "error",
	KindParse:                     "parse error",
	KindMalformedFilename:         "malformed filename",
	KindEmptyDirectory:            "empty directory",
	KindNoDataLoaded:              "no data loaded",
	KindUnknownColumn:             "unknown column",
	KindNoMatch:                   "no match",
	KindNoGroupsSelected:          "no groups selected",
	KindNotSupportedOnDerivedView: "not supported on derived view",
	KindIO:                        "i/o error",
	KindInvalidRange:              "invalid range",
	KindInvalidQuery:              "invalid query",
	KindKeyNotFound:               "key not found",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// Error is a typed, human-readable failure of a core operation.
type Error struct {
	Kind    ErrorKind
	Op      string // Operation that failed (e.g. "load", "sort")
	Message string
	Err     error // Underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so the Err* sentinels below work
// with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrParse                     = &Error{Kind: KindParse}
	ErrMalformedFilename         = &Error{Kind: KindMalformedFilename}
	ErrEmptyDirectory            = &Error{Kind: KindEmptyDirectory}
	ErrNoDataLoaded              = &Error{Kind: KindNoDataLoaded}
	ErrUnknownColumn             = &Error{Kind: KindUnknownColumn}
	ErrNoMatch                   = &Error{Kind: KindNoMatch}
	ErrNoGroupsSelected          = &Error{Kind: KindNoGroupsSelected}
	ErrNotSupportedOnDerivedView = &Error{Kind: KindNotSupportedOnDerivedView}
	ErrIO                        = &Error{Kind: KindIO}
	ErrInvalidRange              = &Error{Kind: KindInvalidRange}
	ErrInvalidQuery              = &Error{Kind: KindInvalidQuery}
	ErrKeyNotFound               = &Error{Kind: KindKeyNotFound}
)

// Errorf creates an *Error with a formatted message.
func Errorf(kind ErrorKind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error around an underlying cause.
func Wrap(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
