package honeyerr

import (
	"fmt"
	"net/http"
)

// Kind classifies an Error into one of the eight taxonomy buckets used
// across the session, policy, transport, and discovery planes.
type Kind int

const (
	// KindValidation marks a request that failed input validation.
	KindValidation Kind = iota
	// KindAuthentication marks a failed identity proof.
	KindAuthentication
	// KindAuthorization marks an identity that is known but not permitted.
	KindAuthorization
	// KindNotFound marks a missing resource.
	KindNotFound
	// KindConflict marks a request that collides with existing state.
	KindConflict
	// KindState marks an operation that is invalid for the current state.
	KindState
	// KindInternal marks an unexpected internal failure.
	KindInternal
	// KindDependency marks an unavailable downstream dependency.
	KindDependency
)

// String renders the Kind's lower-case name.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindState:
		return "state"
	case KindInternal:
		return "internal"
	case KindDependency:
		return "dependency"
	default:
		return "unknown"
	}
}

// Code returns the stable ERR_* wire code for the Kind.
func (k Kind) Code() string {
	switch k {
	case KindValidation:
		return "ERR_VALIDATION"
	case KindAuthentication:
		return "ERR_AUTH"
	case KindAuthorization:
		return "ERR_AUTHZ"
	case KindNotFound:
		return "ERR_NOT_FOUND"
	case KindConflict:
		return "ERR_CONFLICT"
	case KindState:
		return "ERR_STATE"
	case KindInternal:
		return "ERR_INTERNAL"
	case KindDependency:
		return "ERR_DEPENDENCY"
	default:
		return "ERR_UNKNOWN"
	}
}

// HTTPStatus maps the Kind to the status code a control-plane handler
// should answer with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindState:
		return http.StatusUnprocessableEntity
	case KindInternal:
		return http.StatusInternalServerError
	case KindDependency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is the unified error type returned from every HoneyLink package.
// It carries a Kind, a human message, an optional trace id, and an
// optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	TraceID string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Code returns the stable ERR_* wire code for the error's Kind.
func (e *Error) Code() string {
	return e.Kind.Code()
}

// HTTPStatus returns the status code a control-plane handler should
// answer with for this error.
func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// WithTraceID attaches a trace id and returns the same Error for chaining.
func (e *Error) WithTraceID(traceID string) *Error {
	e.TraceID = traceID
	return e
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validationf builds a KindValidation error.
func Validationf(format string, args ...any) *Error { return newf(KindValidation, format, args...) }

// Authenticationf builds a KindAuthentication error.
func Authenticationf(format string, args ...any) *Error {
	return newf(KindAuthentication, format, args...)
}

// Authorizationf builds a KindAuthorization error.
func Authorizationf(format string, args ...any) *Error {
	return newf(KindAuthorization, format, args...)
}

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) *Error { return newf(KindNotFound, format, args...) }

// Conflictf builds a KindConflict error.
func Conflictf(format string, args ...any) *Error { return newf(KindConflict, format, args...) }

// Statef builds a KindState error.
func Statef(format string, args ...any) *Error { return newf(KindState, format, args...) }

// Internalf builds a KindInternal error.
func Internalf(format string, args ...any) *Error { return newf(KindInternal, format, args...) }

// Dependencyf builds a KindDependency error.
func Dependencyf(format string, args ...any) *Error { return newf(KindDependency, format, args...) }

// Wrap builds an error of the given Kind around an existing cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	e := newf(kind, format, args...)
	e.Cause = cause
	return e
}
