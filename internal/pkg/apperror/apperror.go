package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can map it to a status code
// without inspecting messages.
type Kind string

const (
	KindNotFound            Kind = "NOT_FOUND"
	KindValidation          Kind = "VALIDATION"
	KindConfiguration       Kind = "CONFIGURATION"
	KindUpstreamTimeout     Kind = "UPSTREAM_TIMEOUT"
	KindUpstreamUnavailable Kind = "UPSTREAM_UNAVAILABLE"
	KindUpstreamProtocol    Kind = "UPSTREAM_PROTOCOL"
	KindStorage             Kind = "STORAGE"
	KindInternal            Kind = "INTERNAL"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind and Message so sentinels compare equal to copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrNoteNotFound     = &Error{Kind: KindNotFound, Message: "Note not found"}
	ErrNoNotesFound     = &Error{Kind: KindNotFound, Message: "No notes found"}
	ErrNoFieldsToUpdate = &Error{Kind: KindValidation, Message: "No fields to update"}
	ErrMissingAPIKey    = &Error{Kind: KindConfiguration, Message: "NVIDIA API key not configured"}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func Storage(err error) *Error {
	return Wrap(KindStorage, "database error", err)
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the user-facing message of the first *Error in err's chain.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
