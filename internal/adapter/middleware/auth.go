package middleware

import (
	"errors"
	"net/http"
	"strings"

	"contract-manager-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// actorKey is where the resolved capability object lives on the echo context.
const actorKey = "actor"

// Authenticate resolves the caller once per request into a user.Actor and
// stores it on the context. Handlers and the engine work from that
// capability only; no later role lookups happen. Token issuance is outside
// this service, requests carry the caller's public id directly.
func Authenticate(users user.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := strings.TrimSpace(c.Request().Header.Get("X-User-Id"))
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing X-User-Id"})
			}
			if !reHex32.MatchString(uid) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid X-User-Id"})
			}

			u, err := users.GetByUserUID(c.Request().Context(), uid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown user"})
				}
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "user store unavailable"})
			}
			if !u.IsActive {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "user is inactive"})
			}

			c.Set(actorKey, user.Actor{
				ID:        u.ID,
				UserUID:   u.UserUID,
				Role:      u.Role,
				IP:        c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			})
			return next(c)
		}
	}
}

// ActorFrom returns the capability stored by Authenticate.
func ActorFrom(c echo.Context) (user.Actor, bool) {
	a, ok := c.Get(actorKey).(user.Actor)
	return a, ok
}

// RequireManager gates admin/manager-only routes.
func RequireManager() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			a, ok := ActorFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}
			if !a.Role.CanManageApprovals() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}
