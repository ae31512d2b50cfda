// Package http provides HTTP middleware and utilities for administrator authentication.
package http

import (
	"context"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
)

// actorKey is a context key type for storing authenticated actors.
type actorKey struct{}

// WithActor stores an authenticated actor in the context.
func WithActor(ctx context.Context, actor *authDomain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor retrieves the authenticated actor from the context.
// Returns (nil, false) if no actor was set.
func GetActor(ctx context.Context) (*authDomain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(*authDomain.Actor)
	return actor, ok && actor != nil
}
