package auth

import (
	"context"
	"errors"
)

// UserContext represents the caller a request acts for
type UserContext struct {
	UserID string
	Source string
}

type contextKey string

const UserContextKey contextKey = "user"

// GetUserFromContext extracts user from context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(UserContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("user not found in context")
	}
	return user, nil
}

// SetUserInContext adds user to context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserIDFromContext returns the caller ID, or "" when none was resolved
func UserIDFromContext(ctx context.Context) string {
	user, err := GetUserFromContext(ctx)
	if err != nil {
		return ""
	}
	return user.UserID
}
