package auth

import "context"

type contextKey int

const userIDKey contextKey = iota

// WithUserID returns a context carrying the signed in user's id.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

// UserIDFromContext returns the user id put in the context by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(userIDKey).(string)
	return uid, ok && uid != ""
}
