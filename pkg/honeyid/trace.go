package honeyid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTraceContext indicates a traceparent string did not match the
// canonical four-field W3C form.
var ErrInvalidTraceContext = errors.New("honeyid: invalid trace context")

// TraceContext is the parsed form of a W3C traceparent header:
// version-trace_id-parent_id-trace_flags.
type TraceContext struct {
	Version    string
	TraceID    string
	ParentID   string
	TraceFlags string
}

// ParseTraceContext parses the canonical four-field traceparent string.
func ParseTraceContext(s string) (TraceContext, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return TraceContext{}, ErrInvalidTraceContext
	}
	tc := TraceContext{Version: parts[0], TraceID: parts[1], ParentID: parts[2], TraceFlags: parts[3]}
	if len(tc.Version) != 2 || len(tc.TraceID) != 32 || len(tc.ParentID) != 16 || len(tc.TraceFlags) != 2 {
		return TraceContext{}, ErrInvalidTraceContext
	}
	return tc, nil
}

// String formats the trace context back into its canonical four-field form.
func (tc TraceContext) String() string {
	return fmt.Sprintf("%s-%s-%s-%s", tc.Version, tc.TraceID, tc.ParentID, tc.TraceFlags)
}
