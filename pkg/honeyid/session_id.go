package honeyid

import (
	"fmt"

	"github.com/google/uuid"
)

// SessionId is a 128-bit time-ordered monotonic identifier (UUIDv7).
// Two session ids created on the same host where the second call happens
// strictly after the first always compare strictly greater under Compare.
type SessionId uuid.UUID

// NewSessionId mints a new time-ordered session identifier.
func NewSessionId() (SessionId, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return SessionId{}, fmt.Errorf("honeyid: generate session id: %w", err)
	}
	return SessionId(id), nil
}

// String renders the canonical UUID form.
func (s SessionId) String() string {
	return uuid.UUID(s).String()
}

// Compare returns -1, 0, or 1 comparing two session ids by their
// underlying time-ordered bytes.
func (s SessionId) Compare(other SessionId) int {
	a, b := uuid.UUID(s), uuid.UUID(other)
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// StreamId is a 128-bit time-ordered identifier scoped to a session.
type StreamId uuid.UUID

// NewStreamId mints a new time-ordered stream identifier.
func NewStreamId() (StreamId, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return StreamId{}, fmt.Errorf("honeyid: generate stream id: %w", err)
	}
	return StreamId(id), nil
}

// String renders the canonical UUID form.
func (s StreamId) String() string {
	return uuid.UUID(s).String()
}

// Compare returns -1, 0, or 1 comparing two stream ids by their
// underlying time-ordered bytes.
func (s StreamId) Compare(other StreamId) int {
	a, b := uuid.UUID(s), uuid.UUID(other)
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
