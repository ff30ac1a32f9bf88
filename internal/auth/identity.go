package auth

import (
	"context"
	"errors"
)

// ErrNotSignedIn is returned whenever an operation needs an identity and
// none is available. The message is shown to the user verbatim.
var ErrNotSignedIn = errors.New("Please sign in to use the chat.")

// Identity is the signed-in caller: the bearer token to forward to the
// hosted functions and the user id that scopes every row.
type Identity struct {
	Token  string
	UserID string
}

// Provider resolves the current identity for a call. Implementations fail
// with ErrNotSignedIn when no valid session exists.
type Provider interface {
	Identity(ctx context.Context) (Identity, error)
}

type contextKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// ContextProvider reads the identity placed on the context by the auth
// middleware.
type ContextProvider struct{}

func (ContextProvider) Identity(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, ErrNotSignedIn
	}
	return id, nil
}

// StaticProvider always returns the same identity. Used by tests and by
// tools that hold a single long-lived session token.
type StaticProvider struct {
	ID Identity
}

func (s StaticProvider) Identity(ctx context.Context) (Identity, error) {
	if s.ID.UserID == "" {
		return Identity{}, ErrNotSignedIn
	}
	return s.ID, nil
}
