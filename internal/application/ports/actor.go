package ports

import "context"

// SystemActor usuario por defecto cuando la operación no viene de una petición autenticada.
const SystemActor = "SYSTEM"

type actorKey struct{}

// WithActor adjunta el usuario que ejecuta la operación al contexto.
func WithActor(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, userID)
}

// Actor devuelve el usuario del contexto o SystemActor.
func Actor(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok && v != "" {
		return v
	}
	return SystemActor
}
