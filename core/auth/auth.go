package auth

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shopfront.GO/config"
	entity "shopfront.GO/model/entity"
)

// Context keys set by the middleware for downstream handlers.
const (
	CtxUserID = "auth_user_id"
	CtxRole   = "auth_role"
)

// Middleware returns the auth middleware based on AUTH_TYPE env var.
// The default mode validates bearer JWTs issued by this service; "key"
// keeps a static API key for machine clients.
func Middleware() echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch os.Getenv("AUTH_TYPE") {
	case "key":
		return keyAuth(skipper)
	default:
		return tokenAuth(skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return key == apiKey, nil
		},
		Skipper: skipper,
	})
}

func tokenAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	staticKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(token string, c echo.Context) (bool, error) {
			if staticKey != "" && token == staticKey {
				c.Set(CtxRole, entity.RoleAdmin)
				return true, nil
			}
			claims, err := ParseAccess(token)
			if err != nil {
				return false, nil
			}
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			return true, nil
		},
		Skipper: skipper,
	})
}

// RequireAdmin guards the back-office group. Runs after the bearer
// middleware, so the role is already in context.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get(CtxRole).(string); role != entity.RoleAdmin {
				return echo.NewHTTPError(403, "admin role required")
			}
			return next(c)
		}
	}
}

// UserID returns the authenticated user id, or "" for public requests.
func UserID(c echo.Context) string {
	id, _ := c.Get(CtxUserID).(string)
	return id
}
