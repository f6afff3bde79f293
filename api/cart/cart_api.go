package cart

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopfront.GO/api"
	"shopfront.GO/core/auth"
	entity "shopfront.GO/model/entity"
	cartRepo "shopfront.GO/model/repository/cart"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

// RegisterCartRoutes wires the per-user cart and favorites endpoints. All of
// them require a bearer token; the user id comes from the claims, never from
// the payload.
func RegisterCartRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/cart")
	repo := cartRepo.NewCartRepository(db)

	g.GET("/get_cart", func(c echo.Context) error {
		userID := auth.UserID(c)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		items, err := repo.Items(userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if items == nil {
			items = []entity.CartItem{}
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	})

	// The storefront pushes the whole cart after every local change.
	g.POST("/save_cart", func(c echo.Context) error {
		userID := auth.UserID(c)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		var body struct {
			Items []entity.CartItem `json:"items"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := repo.Replace(userID, body.Items); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"saved": len(body.Items)})
	})

	g.GET("/get_favorites", func(c echo.Context) error {
		userID := auth.UserID(c)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		favs, err := repo.Favorites(userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if favs == nil {
			favs = []string{}
		}
		return c.JSON(http.StatusOK, echo.Map{"favorites": favs})
	})

	g.POST("/save_favorites", func(c echo.Context) error {
		userID := auth.UserID(c)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		var body struct {
			Favorites []string `json:"favorites"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := repo.ReplaceFavorites(userID, body.Favorites); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"saved": len(body.Favorites)})
	})
}
