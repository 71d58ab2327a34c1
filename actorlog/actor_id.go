package actorlog

import "context"

type actorIDKey struct{}

// WithActorID attaches an actor ID string to ctx for loggers/traces that
// need to correlate log lines with a specific actor.
func WithActorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorIDKey{}, id)
}

// GetActorID retrieves the actor ID previously attached with
// WithActorID, or "" if none is present.
func GetActorID(ctx context.Context) string {
	if id, ok := ctx.Value(actorIDKey{}).(string); ok {
		return id
	}
	return ""
}
