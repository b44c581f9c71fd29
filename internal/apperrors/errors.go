// Package apperrors defines the domain error taxonomy. Persistence and
// transport layers classify their failures into one of these kinds exactly
// once; nothing above the repository boundary inspects vendor error codes.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindValidation: malformed or missing input, request not processed.
	KindValidation Kind = "validation"
	// KindNotFound: referenced entity absent. Distinct from forbidden.
	KindNotFound Kind = "not_found"
	// KindForbidden: authenticated but insufficient role or area access.
	KindForbidden Kind = "forbidden"
	// KindInactive: status gate failure. Routed differently than forbidden
	// so clients can send the user to a remediation page.
	KindInactive Kind = "inactive"
	// KindConflict: uniqueness violation mapped from a constraint error.
	KindConflict Kind = "conflict"
	// KindUnexpected: anything else. Logged with full detail server-side,
	// surfaced as a generic message.
	KindUnexpected Kind = "unexpected"
)

type Error struct {
	Kind    Kind
	Message string
	// Fields carries per-field messages for validation errors.
	Fields map[string]string
	// Err is the wrapped cause; never serialized to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Forbidden(reason string) *Error {
	return &Error{Kind: KindForbidden, Message: reason}
}

func Inactive() *Error {
	return &Error{Kind: KindInactive, Message: "your account is not active"}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func ValidationMsg(field, message string) *Error {
	return Validation(map[string]string{field: message})
}

func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "an unexpected error occurred", Err: err}
}

// KindOf classifies any error. Unknown errors report KindUnexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

func IsConflict(err error) bool { return IsKind(err, KindConflict) }

func IsForbidden(err error) bool { return IsKind(err, KindForbidden) }
