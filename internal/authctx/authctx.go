// Package authctx carries the authenticated user id through request
// contexts.
package authctx

import "context"

type contextKey struct{}

var userIDKey contextKey

func SetUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
