package credentials

import (
	"context"
	"fmt"
)

// Provider supplies the bearer token for a single dashboard fetch.
type Provider interface {
	// Token returns the current token. An absent token is "" with a nil error.
	Token(ctx context.Context) (string, error)
}

// StoreProvider reads the token from a Store.
type StoreProvider struct {
	Store Store
	Key   string
}

// FromStore returns a Provider reading TokenKey from store.
func FromStore(store Store) *StoreProvider {
	return &StoreProvider{Store: store, Key: TokenKey}
}

// Token implements Provider.
func (p *StoreProvider) Token(ctx context.Context) (string, error) {
	key := p.Key
	if key == "" {
		key = TokenKey
	}
	v, _, err := p.Store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("reading %q from credential store: %w", key, err)
	}
	return v, nil
}

// Static is a Provider that always returns the same token.
type Static string

// Token implements Provider.
func (s Static) Token(context.Context) (string, error) {
	return string(s), nil
}
