package model

import "context"

type ctxKey int

var userKey ctxKey

// NewContextWithUser returns a new [context.Context] carrying user.
func NewContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the user stored in ctx by the authentication
// middleware, if any. Public routes do not have one.
func GetUserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userKey).(*User)
	return user, ok
}
