package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/deadline-tracker/internal/domain"
	apperrors "github.com/spec-kit/deadline-tracker/pkg/util"
)

const (
	sessionKey = "auth_session"
	tokenKey   = "auth_token"
)

// SessionMiddleware resolves the caller's session from a cookie or bearer token.
type SessionMiddleware struct {
	tokens     *TokenManager
	sessions   SessionStore
	cookieName string
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, sessions SessionStore, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{tokens: tokens, sessions: sessions, cookieName: cookieName}
}

// Handle enforces authentication for protected routes.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	token := TokenFromRequest(c, m.cookieName)
	if token == "" {
		return apperrors.NewUnauthorized("login required")
	}

	sessionID, err := m.tokens.ParseToken(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid session")
	}

	session, err := m.sessions.Get(c.UserContext(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return apperrors.NewUnauthorized("session expired")
		}
		return apperrors.MapError(err)
	}

	c.Locals(sessionKey, session)
	c.Locals(tokenKey, token)
	return c.Next()
}

// TokenFromRequest prefers the Authorization header over the session cookie.
func TokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies(cookieName)
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}

// TokenFromContext returns the token the session was resolved from.
func TokenFromContext(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenKey).(string)
	return token
}
