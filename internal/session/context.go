package session

import (
	"context"
)

// userKey is a context key type for storing the authenticated session payload.
type userKey struct{}

// WithUser stores the authenticated session payload in the context.
// This is typically called by the session middleware after a successful load.
func WithUser(ctx context.Context, payload *Payload) context.Context {
	return context.WithValue(ctx, userKey{}, payload)
}

// GetUser retrieves the authenticated session payload from the context.
// Returns (payload, true) if present, or (nil, false) if no session was set.
func GetUser(ctx context.Context) (*Payload, bool) {
	payload, ok := ctx.Value(userKey{}).(*Payload)
	return payload, ok
}
