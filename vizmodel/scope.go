package vizmodel

import (
	"context"
)

// DefaultScope is the scope key used when the process configuration does not
// override it.
const DefaultScope = "viz_state"

type contextKey int

const (
	keyScope contextKey = iota
)

// WithScope returns a new context carrying the scope key under which datasets
// are stored and retrieved.
func WithScope(ctx context.Context, scope string) context.Context {
	return context.WithValue(ctx, keyScope, scope)
}

// GetScope retrieves the scope from the context, or an empty string if the
// context carries none.
func GetScope(ctx context.Context) string {
	if v, ok := ctx.Value(keyScope).(string); ok {
		return v
	}
	return ""
}

// ScopeOrDefault resolves the effective scope: the context value when present,
// then the supplied default, then DefaultScope.
func ScopeOrDefault(ctx context.Context, def string) string {
	if s := GetScope(ctx); s != "" {
		return s
	}
	if def != "" {
		return def
	}
	return DefaultScope
}
