package usecase

import "errors"

// Error kinds. Handlers map these to HTTP status codes with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error pairs a kind sentinel with the message shown to the caller.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Unwrap() error { return e.kind }

func NewInvalidInput(msg string) error { return &Error{kind: ErrInvalidInput, msg: msg} }
func NewNotFound(msg string) error     { return &Error{kind: ErrNotFound, msg: msg} }
func NewConflict(msg string) error     { return &Error{kind: ErrConflict, msg: msg} }
