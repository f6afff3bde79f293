package product

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopfront.GO/api"
	"shopfront.GO/catalog"
	"shopfront.GO/core/cache"
	settingRepo "shopfront.GO/model/repository/setting"
	productService "shopfront.GO/service/product"
	searchService "shopfront.GO/service/search"
)

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

const listCacheTTL = 60 // seconds

func RegisterProductRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/product")

	// GET /api/product/list_products – faceted catalog listing (public)
	g.GET("/list_products", func(c echo.Context) error {
		start := time.Now()

		q := queryFromParams(c)
		cacheKey := "list_products:" + c.QueryString()
		if cached, ok := cache.GetInstance().Get(cacheKey); ok {
			return c.JSON(http.StatusOK, cached)
		}

		store := productService.CatalogStore(db)
		groups := store.Index().Search(q)
		opts, err := settingRepo.NewSettingRepository(db).DeliveryOptions()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		items := make([]echo.Map, 0, len(groups))
		for _, grp := range groups {
			items = append(items, serializeGroup(grp, opts))
		}
		resp := echo.Map{"count": len(items), "products": items}
		cache.GetInstance().Set(cacheKey, resp, listCacheTTL, []string{cache.TagProducts})

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, resp)
	})

	// GET /api/product/get_product – one parent SKU with all its variants (public)
	g.GET("/get_product", func(c echo.Context) error {
		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku query param is required"})
		}
		rows, err := productService.FindBySKU(db, sku)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if len(rows) == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		opts, err := settingRepo.NewSettingRepository(db).DeliveryOptions()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"variants": productService.SerializeAll(rows, opts),
		})
	})

	// GET /api/product/facets – filter values for the storefront sidebar (public)
	g.GET("/facets", func(c echo.Context) error {
		idx := productService.CatalogStore(db).Index()
		return c.JSON(http.StatusOK, echo.Map{
			"brands":        idx.Brands(),
			"colors":        idx.Colors(),
			"sizes":         idx.Sizes(),
			"subcategories": idx.Subcategories(c.QueryParam("gender")),
		})
	})

	// GET /api/product/search – full-text search, needs Elasticsearch (auth)
	g.GET("/search", func(c echo.Context) error {
		q := strings.TrimSpace(c.QueryParam("q"))
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q query param is required"})
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		rows, err := searchService.GetSearchService().Search(c.Request().Context(), db, q, limit)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		}
		opts, err := settingRepo.NewSettingRepository(db).DeliveryOptions()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"count":    len(rows),
			"products": productService.SerializeAll(rows, opts),
		})
	})
}

// queryFromParams maps the storefront's filter params onto a catalog query.
// Multi-select filters arrive comma-separated.
func queryFromParams(c echo.Context) catalog.Query {
	q := catalog.Query{
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		Gender:      c.QueryParam("gender"),
		Brands:      splitParam(c.QueryParam("brands")),
		Colors:      splitParam(c.QueryParam("colors")),
		Sizes:       splitParam(c.QueryParam("sizes")),
		SortBy:      c.QueryParam("sort_by"),
		SortOrder:   c.QueryParam("sort_order"),
	}
	if raw := c.QueryParam("price_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q.PriceMin = &v
		}
	}
	if raw := c.QueryParam("price_max"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			q.PriceMax = &v
		}
	}
	return q
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// serializeGroup renders one color group as the storefront card: the
// cheapest variant represents the group, with the sibling sizes listed.
func serializeGroup(g *catalog.Group, opts []settingRepo.DeliveryOption) echo.Map {
	rep := g.MinPriceVariant
	sizes := make([]string, 0, len(g.Variants))
	seen := make(map[string]struct{}, len(g.Variants))
	for i := range g.Variants {
		s := g.Variants[i].SizeLabel
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		sizes = append(sizes, s)
	}
	catalog.SortSizeLabels(sizes)
	images := productService.ImageURLs(g.ColorSKU, rep.CountImages)
	image := ""
	if len(images) > 0 {
		image = images[0]
	}
	return echo.Map{
		"color_sku":        g.ColorSKU,
		"variant":          rep,
		"sizes":            sizes,
		"min_price":        g.MinPrice,
		"total_sales":      g.TotalSales,
		"image":            image,
		"images":           images,
		"delivery_options": opts,
	}
}
