package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookie = "bakery_session"

type ctxKey int

const (
	sessionKey ctxKey = iota
	confirmKey
)

func withSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

func withConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmKey, confirmed)
}

// ContextConfirmer answers confirmation prompts from a flag the HTTP layer
// stores in the request context, so "are you sure?" becomes ?confirm=true.
type ContextConfirmer struct{}

func (ContextConfirmer) Confirm(ctx context.Context, prompt string) bool {
	confirmed, _ := ctx.Value(confirmKey).(bool)
	return confirmed
}

// sessionMiddleware resolves the browsing session from the cookie, minting a
// new session cookie when there is none.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			// MaxAge 0 keeps it a browser-session cookie
			c.SetCookie(SessionCookie, sessionID, 0, "/", "", false, true)
		}
		c.Request = c.Request.WithContext(withSessionID(c.Request.Context(), sessionID))
		c.Next()
	}
}
