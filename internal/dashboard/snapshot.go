package dashboard

import (
	"bytes"
	"encoding/json"
)

// Unset is how a payload that has not loaded is displayed.
const Unset = "null"

// State is the view state of a dashboard.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "loading"
	}
}

// Snapshot is an immutable copy of a view's state.
type Snapshot struct {
	State   State
	Payload json.RawMessage
	Err     error
}

// Pretty returns the payload indented with two spaces, preserving key order,
// or Unset when nothing has loaded.
func (s Snapshot) Pretty() string {
	if s.State != StateLoaded || len(s.Payload) == 0 {
		return Unset
	}
	return Indent(s.Payload)
}

// Indent formats a JSON document with two-space indentation. Input that is
// not valid JSON is returned unchanged.
func Indent(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
