package utils

import (
	"context"
)

type contextKey string

// ContextRoleKey carries the caller's role when an upstream auth layer
// has populated the request context.
const ContextRoleKey contextKey = "role"

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(ContextRoleKey).(string)
	return role, ok
}
