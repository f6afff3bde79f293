package admin

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopfront.GO/api"
	"shopfront.GO/core/auth"
	"shopfront.GO/core/cache"
	"shopfront.GO/core/logger"
	entity "shopfront.GO/model/entity"
	journalRepo "shopfront.GO/model/repository/journal"
	orderRepo "shopfront.GO/model/repository/order"
	reviewRepo "shopfront.GO/model/repository/review"
	settingRepo "shopfront.GO/model/repository/setting"
	userRepo "shopfront.GO/model/repository/user"
	imageService "shopfront.GO/service/images"
	productService "shopfront.GO/service/product"
)

func init() {
	api.RegisterModule(RegisterAdminRoutes)
}

// RegisterAdminRoutes wires the back-office. Everything here sits behind
// RequireAdmin on top of the bearer middleware.
func RegisterAdminRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/admin", auth.RequireAdmin())

	registerSettingRoutes(g, db)
	registerImportRoutes(g, db)
	registerJournalRoutes(g, db)
	registerUserRoutes(g, db)
	registerContentRoutes(g, db)
	registerOrderRoutes(g, db)
}

func registerSettingRoutes(g *echo.Group, db *gorm.DB) {
	repo := settingRepo.NewSettingRepository(db)

	g.GET("/settings", func(c echo.Context) error {
		rows, err := repo.All()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"settings": rows})
	})

	g.POST("/settings", func(c echo.Context) error {
		var body struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Key == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "key is required"})
		}
		if err := repo.Set(body.Key, body.Value); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"key": body.Key})
	})

	g.DELETE("/settings/:key", func(c echo.Context) error {
		if err := repo.Delete(c.Param("key")); err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "setting not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})

	g.GET("/sheet_urls", func(c echo.Context) error {
		urls, err := repo.SheetURLs()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"sheet_urls": urls})
	})

	g.POST("/sheet_urls", func(c echo.Context) error {
		var body struct {
			Category string `json:"category"`
			URL      string `json:"url"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Category == "" || body.URL == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category and url are required"})
		}
		if err := repo.SetSheetURL(body.Category, body.URL); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"category": body.Category})
	})
}

func registerImportRoutes(g *echo.Group, db *gorm.DB) {
	// POST /api/admin/import_sheet – pull the configured sheet for a
	// category. dry_run=true previews without writing.
	g.POST("/import_sheet", func(c echo.Context) error {
		start := time.Now()
		var body struct {
			Category string `json:"category"`
			DryRun   bool   `json:"dry_run"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Category == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category is required"})
		}
		urls, err := settingRepo.NewSettingRepository(db).SheetURLs()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		url, ok := urls[body.Category]
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no sheet URL configured for " + body.Category})
		}
		res, err := productService.ImportFromSheet(c.Request().Context(), db, url, productService.ImportOptions{
			Category: body.Category,
			DryRun:   body.DryRun,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if !body.DryRun {
			refreshCatalog(c, db)
		}
		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, res)
	})

	// POST /api/admin/import_file – multipart CSV upload, same pipeline.
	g.POST("/import_file", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "file form field is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		defer f.Close()

		dryRun := c.FormValue("dry_run") == "true"
		res, err := productService.ImportVariants(db, f, productService.ImportOptions{
			Category: c.FormValue("category"),
			DryRun:   dryRun,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if !dryRun {
			refreshCatalog(c, db)
		}
		return c.JSON(http.StatusOK, res)
	})

	// POST /api/admin/upload_images – ZIP of {color_sku}_{n} images.
	// dry_run=true only matches names against known color SKUs.
	g.POST("/upload_images", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "file form field is required"})
		}
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		defer f.Close()
		raw, err := io.ReadAll(f)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not a valid ZIP archive"})
		}

		dryRun := c.FormValue("dry_run") == "true"
		res, err := imageService.ProcessZip(db, zr, c.FormValue("category"), dryRun)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if !dryRun {
			refreshCatalog(c, db)
		}
		return c.JSON(http.StatusOK, res)
	})
}

func registerJournalRoutes(g *echo.Group, db *gorm.DB) {
	repo := journalRepo.NewJournalRepository(db)

	g.GET("/get_logs", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		rows, total, err := repo.Logs(limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"total": total, "logs": rows})
	})

	g.GET("/get_daily_visits", func(c echo.Context) error {
		date := c.QueryParam("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		hours, err := repo.DailyVisits(date)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"date": date, "hours": hours})
	})
}

func registerUserRoutes(g *echo.Group, db *gorm.DB) {
	repo := userRepo.NewUserRepository(db)

	g.GET("/list_users", func(c echo.Context) error {
		rows, err := repo.List()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"users": rows})
	})

	g.POST("/set_user_role", func(c echo.Context) error {
		var body struct {
			UserID string `json:"user_id"`
			Role   string `json:"role"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		switch body.Role {
		case entity.RoleVisitor, entity.RoleClient, entity.RoleAdmin:
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role " + body.Role})
		}
		if err := repo.SetRole(body.UserID, body.Role); err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"user_id": body.UserID, "role": body.Role})
	})
}

func registerContentRoutes(g *echo.Group, db *gorm.DB) {
	repo := reviewRepo.NewReviewRepository(db)

	g.POST("/create_review", func(c echo.Context) error {
		var body entity.Review
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Author == "" || body.Text == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "author and text are required"})
		}
		if body.Rating < 1 || body.Rating > 5 {
			body.Rating = 5
		}
		body.ID = 0
		if err := repo.Create(&body); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"id": body.ID})
	})

	g.DELETE("/reviews/:id", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid review id"})
		}
		if err := repo.Delete(uint(id)); err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})

	g.GET("/list_requests", func(c echo.Context) error {
		rows, err := repo.Requests()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"requests": rows})
	})

	g.DELETE("/requests/:id", func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request id"})
		}
		if err := repo.DeleteRequest(uint(id)); err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "request not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	})
}

func registerOrderRoutes(g *echo.Group, db *gorm.DB) {
	repo := orderRepo.NewOrderRepository(db)

	g.GET("/list_orders", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		rows, total, err := repo.List(limit, offset)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"total": total, "orders": rows})
	})

	g.POST("/set_order_status", func(c echo.Context) error {
		var body struct {
			OrderID string `json:"order_id"`
			Status  string `json:"status"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		switch body.Status {
		case entity.OrderStatusNew, entity.OrderStatusConfirmed, entity.OrderStatusShipped,
			entity.OrderStatusDone, entity.OrderStatusCancelled:
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status " + body.Status})
		}
		if err := repo.UpdateStatus(body.OrderID, body.Status); err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"order_id": body.OrderID, "status": body.Status})
	})
}

// refreshCatalog rebuilds the in-memory index and drops cached product
// responses after a write to the variant table or the media dir.
func refreshCatalog(c echo.Context, db *gorm.DB) {
	if err := productService.CatalogStore(db).Reload(c.Request().Context()); err != nil {
		logger.L().WithError(err).Error("catalog reload after import")
	}
	cache.GetInstance().DeleteByTag(cache.TagProducts)
}
