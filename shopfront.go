//go:build !cli
// +build !cli

package main

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"shopfront.GO/api"
	_ "shopfront.GO/api/admin"
	_ "shopfront.GO/api/auth"
	_ "shopfront.GO/api/cart"
	_ "shopfront.GO/api/general"
	graphqlApi "shopfront.GO/api/graphql"
	_ "shopfront.GO/api/product"
	"shopfront.GO/config"
	"shopfront.GO/core/auth"
	"shopfront.GO/core/logger"
	journalRepo "shopfront.GO/model/repository/journal"
	productService "shopfront.GO/service/product"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	log := logger.L()

	// Redis is optional; a failed ping just disables it.
	config.InitRedis()
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err != nil {
			config.RedisClient = nil
			log.Warn("Redis configured but not reachable, disabled")
		} else {
			log.Info("Redis connection successful")
		}
	}

	db, err := config.NewDB()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to DB")
	}
	sqldb, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get DB instance")
	}
	if err := sqldb.Ping(); err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("Database connection successful")
	logger.AttachJournal(db)

	// Build the catalog index before serving; an empty table is fine.
	store := productService.CatalogStore(db)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := store.Reload(ctx); err != nil {
		log.WithError(err).Warn("initial catalog load failed, serving empty index")
	} else {
		log.WithField("groups", store.Index().Len()).Info("catalog index ready")
	}
	cancel()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})
	e.Use(visitRecorder(db))

	// Uploaded product images, served as /images/{color_sku}_{n}.webp
	e.Static("/images", config.AppConfig.MediaDir)

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware())
	api.ApplyModules(apiGroup, db)

	graphqlApi.RegisterGraphQLRoutes(e, db)
	api.ApplyRoutes(e, db)

	banner := []string{"standard", "slant", "small", "shadow", "thick", "doom"}
	figure.NewFigure("Shopfront", banner[rand.Intn(len(banner))], true).Print()

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("server starting")
	e.Logger.Fatal(e.Start(":" + port))
}

// visitRecorder writes one raw visit row per catalog listing hit. Failures
// never block the request.
func visitRecorder(db *gorm.DB) echo.MiddlewareFunc {
	repo := journalRepo.NewJournalRepository(db)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == "GET" && strings.HasPrefix(c.Path(), "/api/product/") {
				if err := repo.RecordVisit(auth.UserID(c), c.Path()); err != nil {
					logger.L().WithError(err).Debug("visit record failed")
				}
			}
			return next(c)
		}
	}
}
