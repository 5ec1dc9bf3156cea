package wireproto

import "github.com/honeylink/honeylink-core/pkg/honeyerr"

// Status is a response status code, mirroring the honeyerr taxonomy so a
// wire-level status can be round-tripped into a typed error on the peer
// that receives it.
type Status uint8

const (
	// StatusSuccess indicates the operation completed successfully.
	StatusSuccess Status = 0

	// StatusValidation mirrors honeyerr.KindValidation.
	StatusValidation Status = 1

	// StatusAuthentication mirrors honeyerr.KindAuthentication.
	StatusAuthentication Status = 2

	// StatusAuthorization mirrors honeyerr.KindAuthorization.
	StatusAuthorization Status = 3

	// StatusNotFound mirrors honeyerr.KindNotFound.
	StatusNotFound Status = 4

	// StatusConflict mirrors honeyerr.KindConflict.
	StatusConflict Status = 5

	// StatusState mirrors honeyerr.KindState.
	StatusState Status = 6

	// StatusInternal mirrors honeyerr.KindInternal.
	StatusInternal Status = 7

	// StatusDependency mirrors honeyerr.KindDependency.
	StatusDependency Status = 8
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusValidation:
		return "VALIDATION"
	case StatusAuthentication:
		return "AUTHENTICATION"
	case StatusAuthorization:
		return "AUTHORIZATION"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusConflict:
		return "CONFLICT"
	case StatusState:
		return "STATE"
	case StatusInternal:
		return "INTERNAL"
	case StatusDependency:
		return "DEPENDENCY"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool { return s == StatusSuccess }

// IsError returns true if the status indicates an error.
func (s Status) IsError() bool { return s != StatusSuccess }

// FromErrorKind converts a honeyerr.Kind into its wire Status.
func FromErrorKind(k honeyerr.Kind) Status {
	switch k {
	case honeyerr.KindValidation:
		return StatusValidation
	case honeyerr.KindAuthentication:
		return StatusAuthentication
	case honeyerr.KindAuthorization:
		return StatusAuthorization
	case honeyerr.KindNotFound:
		return StatusNotFound
	case honeyerr.KindConflict:
		return StatusConflict
	case honeyerr.KindState:
		return StatusState
	case honeyerr.KindInternal:
		return StatusInternal
	case honeyerr.KindDependency:
		return StatusDependency
	default:
		return StatusInternal
	}
}
