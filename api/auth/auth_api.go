package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopfront.GO/api"
	coreAuth "shopfront.GO/core/auth"
)

func init() {
	api.RegisterModule(RegisterAuthRoutes)
}

func RegisterAuthRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/auth")

	// POST /api/auth/refresh – swap a refresh token for a new access token.
	// Public path: the client calls this exactly once after a 401 and retries.
	g.POST("/refresh", func(c echo.Context) error {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.RefreshToken == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token is required"})
		}
		access, err := coreAuth.RefreshAccess(body.RefreshToken)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
		}
		return c.JSON(http.StatusOK, echo.Map{"access_token": access})
	})
}
