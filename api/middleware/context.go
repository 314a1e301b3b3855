package middleware

import "context"

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxUserName  contextKey = "user_name"
	ctxUserEmail contextKey = "user_email"
	ctxSessionID contextKey = "cart_session_id"
)

// Identity is the authenticated shopper attached to a request.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

func UserIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxUserID)
}

// IdentityFromContext returns the shopper identity, if the request carried a valid token.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id := UserIDFromContext(ctx)
	if id == "" {
		return Identity{}, false
	}
	return Identity{
		UserID: id,
		Name:   stringValue(ctx, ctxUserName),
		Email:  stringValue(ctx, ctxUserEmail),
	}, true
}

// WithIdentity injects the shopper identity into the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, identity.UserID)
	ctx = context.WithValue(ctx, ctxUserName, identity.Name)
	return context.WithValue(ctx, ctxUserEmail, identity.Email)
}

func SessionIDFromContext(ctx context.Context) string {
	return stringValue(ctx, ctxSessionID)
}

// WithSessionID injects the cart session identifier for downstream handlers.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
