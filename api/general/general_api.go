package general

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopfront.GO/api"
	"shopfront.GO/core/auth"
	"shopfront.GO/core/logger"
	entity "shopfront.GO/model/entity"
	orderRepo "shopfront.GO/model/repository/order"
	reviewRepo "shopfront.GO/model/repository/review"
	settingRepo "shopfront.GO/model/repository/setting"
	userRepo "shopfront.GO/model/repository/user"
	orderService "shopfront.GO/service/order"
)

func init() {
	api.RegisterModule(RegisterGeneralRoutes)
}

var validate = validator.New()

func RegisterGeneralRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/general")

	g.GET("/health", func(c echo.Context) error {
		sqldb, err := db.DB()
		if err == nil {
			err = sqldb.Ping()
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// POST /api/general/save_user – upsert identity, hand out a token pair.
	// Telegram users send their numeric id; anonymous visitors get a UUID.
	g.POST("/save_user", func(c echo.Context) error {
		var body struct {
			UserID    string  `json:"user_id"`
			FirstName string  `json:"first_name"`
			LastName  string  `json:"last_name"`
			Username  string  `json:"username"`
			PhotoURL  *string `json:"photo_url"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.UserID == "" {
			body.UserID = uuid.NewString()
		}
		u := &entity.User{
			UserID:    body.UserID,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Username:  body.Username,
			PhotoURL:  body.PhotoURL,
			Role:      entity.RoleVisitor,
		}
		repo := userRepo.NewUserRepository(db)
		if err := repo.Upsert(u); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		// Upsert never writes the role column, so re-read it for the token.
		stored, err := repo.FindByID(body.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		access, refresh, err := auth.IssueTokens(stored.UserID, stored.Role)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"user_id":       stored.UserID,
			"role":          stored.Role,
			"access_token":  access,
			"refresh_token": refresh,
		})
	})

	g.GET("/get_user_profile", func(c echo.Context) error {
		userID := auth.UserID(c)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		u, err := userRepo.NewUserRepository(db).FindByID(userID)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"user": u})
	})

	// GET /api/general/get_parameters – public settings for the storefront.
	g.GET("/get_parameters", func(c echo.Context) error {
		repo := settingRepo.NewSettingRepository(db)
		rows, err := repo.Public()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		params := make(map[string]string, len(rows))
		for _, row := range rows {
			params[row.Key] = row.Value
		}
		opts, err := repo.DeliveryOptions()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"parameters":       params,
			"delivery_options": opts,
		})
	})

	g.GET("/list_reviews", func(c echo.Context) error {
		rows, err := reviewRepo.NewReviewRepository(db).List()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if rows == nil {
			rows = []entity.Review{}
		}
		return c.JSON(http.StatusOK, echo.Map{"reviews": rows})
	})

	// POST /api/general/create_request – ask to source a missing product.
	g.POST("/create_request", func(c echo.Context) error {
		var body struct {
			Name    string `json:"name"`
			Contact string `json:"contact" validate:"required"`
			Text    string `json:"text" validate:"required"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := validate.Struct(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		req := &entity.SearchRequest{
			UserID:  auth.UserID(c),
			Name:    body.Name,
			Contact: body.Contact,
			Text:    body.Text,
		}
		if err := reviewRepo.NewReviewRepository(db).CreateRequest(req); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"id": req.ID})
	})

	// POST /api/general/create_order – checkout (auth required).
	g.POST("/create_order", func(c echo.Context) error {
		userID := auth.UserID(c)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		var in orderService.PlaceInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := validate.Struct(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		o, err := orderService.Place(db, userID, &in)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		logger.L().WithField("order_id", o.OrderID).WithField("user_id", userID).Info("order placed")
		return c.JSON(http.StatusCreated, echo.Map{"order": o})
	})

	// GET /api/general/get_orders – the caller's own order history.
	g.GET("/get_orders", func(c echo.Context) error {
		userID := auth.UserID(c)
		if userID == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		rows, err := orderRepo.NewOrderRepository(db).ListByUser(userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if rows == nil {
			rows = []entity.Order{}
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": rows})
	})
}
