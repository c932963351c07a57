package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"

	ContextUserID = "userID"
	ContextRole   = "userRole"
)

// Auth verifies the bearer token and stashes the authenticated user id
// and role on the echo context. Token minting (login/registration) is not
// this service's job; it only consumes tokens issued elsewhere.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			userID, _ := claims["user_id"].(string)
			role, _ := claims["role"].(string)
			if userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing user_id")
			}

			c.Set(ContextUserID, userID)
			c.Set(ContextRole, role)
			return next(c)
		}
	}
}

// RequireRole gates a route group to the given roles. Assumes Auth ran
// earlier in the chain.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no role on request")
			}
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "role not permitted")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextUserID).(string)
	return id
}
