package dashboard

import (
	"errors"
	"fmt"
)

// ErrInvalidJSON is wrapped by decode failures.
var ErrInvalidJSON = errors.New("response body is not valid JSON")

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	// KindNetwork covers transport failures, including cancellation and timeouts.
	KindNetwork ErrorKind = iota + 1
	// KindStatus is a response outside the 2xx range.
	KindStatus
	// KindDecode is a 2xx response whose body is not JSON.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError is the error returned by Client.Fetch.
type FetchError struct {
	Kind ErrorKind
	// StatusCode is set for KindStatus and KindDecode.
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Err == nil {
			return fmt.Sprintf("dashboard fetch: unexpected status %d", e.StatusCode)
		}
		// Err carries the status text and the start of the response body.
		return fmt.Sprintf("dashboard fetch: unexpected status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("dashboard fetch: %s error: %v", e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind carried by err, or 0 if err is not a FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
