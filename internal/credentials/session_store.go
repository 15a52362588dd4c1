package credentials

import (
	"context"
	"fmt"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// SessionStore reads values from the browser's cookie session. It is bound to
// a single request and relies on the session middleware having run.
type SessionStore struct {
	c    echo.Context
	name string
}

// NewSessionStore creates a SessionStore for the named session of this request.
func NewSessionStore(c echo.Context, name string) *SessionStore {
	return &SessionStore{c: c, name: name}
}

// Get implements Store. Values that are not strings are treated as missing.
func (s *SessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	sess, err := session.Get(s.name, s.c)
	if err != nil {
		return "", false, fmt.Errorf("%w: session %q: %v", ErrUnreadableStore, s.name, err)
	}
	raw, ok := sess.Values[key]
	if !ok {
		return "", false, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", false, nil
	}
	return v, true, nil
}
