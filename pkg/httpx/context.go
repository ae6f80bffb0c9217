package httpx

import "context"

type ctxKey string

const ctxKeyActorID ctxKey = "actor_id"

// ActorID returns the authenticated user id from the request context, or
// "" when the request carried no verified identity.
func ActorID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyActorID).(string); ok {
		return v
	}
	return ""
}

func withActorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyActorID, id)
}
