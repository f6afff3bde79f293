package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"shopfront.GO/catalog"
	"shopfront.GO/config"
	entity "shopfront.GO/model/entity"
	productService "shopfront.GO/service/product"
)

func TestMain(m *testing.M) {
	config.LoadAppConfig()
	os.Exit(m.Run())
}

// The catalog store is a process-wide singleton, so every test in this
// package shares one seeded DB and one echo instance.
var (
	harnessOnce sync.Once
	harnessErr  error
	testEcho    *echo.Echo
)

func seedVariant(db *gorm.DB, variantSKU, sku, colorSKU, category, subcategory, gender, brand, color, size string, price float64, sales int) error {
	return db.Create(&entity.ProductVariant{
		VariantSKU:  variantSKU,
		SKU:         sku,
		ColorSKU:    colorSKU,
		Category:    category,
		Subcategory: subcategory,
		Gender:      gender,
		Brand:       brand,
		Color:       color,
		SizeLabel:   size,
		Price:       price,
		CountSales:  sales,
		Name:        brand + " " + subcategory,
	}).Error
}

func harness(t *testing.T) *echo.Echo {
	t.Helper()
	harnessOnce.Do(func() {
		tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("product_api_%d.db", time.Now().UnixNano()))
		db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{})
		if err != nil {
			harnessErr = err
			return
		}
		if err := db.AutoMigrate(&entity.ProductVariant{}, &entity.AdminSetting{}); err != nil {
			harnessErr = err
			return
		}

		seeds := []error{
			seedVariant(db, "V-1", "P-1", "P-1-RED", "Одежда", "Футболки", "M", "Nike", "Красный", "S", 5990, 10),
			seedVariant(db, "V-2", "P-1", "P-1-RED", "Одежда", "Футболки", "M", "Nike", "Красный", "M", 5490, 2),
			seedVariant(db, "V-3", "P-1", "P-1-BLUE", "Одежда", "Футболки", "M", "Nike", "Синий", "M", 7000, 1),
			seedVariant(db, "V-4", "P-2", "P-2-GRN", "Одежда", "Худи", "F", "Stone Island", "Зеленый", "M", 9990, 20),
			seedVariant(db, "V-5", "P-3", "P-3-WHT", "Обувь", "Кеды", "U", "Converse", "Белый", "42", 12990, 5),
		}
		for _, err := range seeds {
			if err != nil {
				harnessErr = err
				return
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := productService.CatalogStore(db).Reload(ctx); err != nil {
			harnessErr = err
			return
		}

		e := echo.New()
		RegisterProductRoutes(e.Group("/api"), db)
		testEcho = e
	})
	if harnessErr != nil {
		t.Fatalf("harness: %v", harnessErr)
	}
	return testEcho
}

func getJSON(t *testing.T, e *echo.Echo, url string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s: %v (body %s)", url, err, rec.Body.String())
		}
	}
	return rec.Code, body
}

func productColorSKUs(t *testing.T, body map[string]interface{}) []string {
	t.Helper()
	raw, ok := body["products"].([]interface{})
	if !ok {
		t.Fatalf("no products array in %v", body)
	}
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.(map[string]interface{})["color_sku"].(string))
	}
	return out
}

func TestListProducts_All(t *testing.T) {
	e := harness(t)
	code, body := getJSON(t, e, "/api/product/list_products")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if body["count"].(float64) != 4 {
		t.Errorf("count = %v, want 4 color groups", body["count"])
	}
}

func TestListProducts_CategoryAndGender(t *testing.T) {
	e := harness(t)
	code, body := getJSON(t, e, "/api/product/list_products?category=Одежда&gender=M")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	got := productColorSKUs(t, body)
	if len(got) != 2 {
		t.Fatalf("groups = %v, want the two men's clothing groups", got)
	}
	for _, sku := range got {
		if sku == "P-2-GRN" {
			t.Error("women's group leaked into gender=M")
		}
	}
}

func TestListProducts_GenderIncludesUnisex(t *testing.T) {
	e := harness(t)
	_, body := getJSON(t, e, "/api/product/list_products?gender=M")
	got := productColorSKUs(t, body)
	found := false
	for _, sku := range got {
		if sku == "P-3-WHT" {
			found = true
		}
	}
	if !found {
		t.Errorf("unisex group missing from gender=M result: %v", got)
	}
}

func TestListProducts_SortByPriceAsc(t *testing.T) {
	e := harness(t)
	_, body := getJSON(t, e, "/api/product/list_products?category=Одежда&sort_by=price&sort_order=asc")
	got := productColorSKUs(t, body)
	want := []string{"P-1-RED", "P-1-BLUE", "P-2-GRN"}
	if len(got) != len(want) {
		t.Fatalf("groups = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("groups = %v, want %v", got, want)
		}
	}
	// group min price comes from the cheapest size
	first := body["products"].([]interface{})[0].(map[string]interface{})
	if first["min_price"].(float64) != 5490 {
		t.Errorf("min_price = %v, want 5490", first["min_price"])
	}
}

func TestListProducts_PriceRangeAnyVariantMatch(t *testing.T) {
	e := harness(t)
	_, body := getJSON(t, e, "/api/product/list_products?price_max=5500")
	got := productColorSKUs(t, body)
	if len(got) != 1 || got[0] != "P-1-RED" {
		t.Errorf("groups = %v, want just P-1-RED (one size at 5490)", got)
	}
}

func TestListProducts_MultiSelectBrands(t *testing.T) {
	e := harness(t)
	_, body := getJSON(t, e, "/api/product/list_products?brands=Converse,Stone%20Island")
	got := productColorSKUs(t, body)
	if len(got) != 2 {
		t.Errorf("groups = %v, want Converse and Stone Island groups", got)
	}
}

func TestListProducts_SecondCallServedFromCache(t *testing.T) {
	e := harness(t)
	url := "/api/product/list_products?category=Обувь"

	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("first call should compute and report duration")
	}

	req = httptest.NewRequest(http.MethodGet, url, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cached status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Duration-ms") != "" {
		t.Error("cached call should short-circuit before the duration header")
	}
}

func TestGetProduct(t *testing.T) {
	e := harness(t)

	code, body := getJSON(t, e, "/api/product/get_product?sku=P-1")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	variants := body["variants"].([]interface{})
	if len(variants) != 3 {
		t.Errorf("variants = %d, want all three P-1 rows", len(variants))
	}

	if code, _ := getJSON(t, e, "/api/product/get_product"); code != http.StatusBadRequest {
		t.Errorf("missing sku: status = %d, want 400", code)
	}
	if code, _ := getJSON(t, e, "/api/product/get_product?sku=NOPE"); code != http.StatusNotFound {
		t.Errorf("unknown sku: status = %d, want 404", code)
	}
}

func TestFacets(t *testing.T) {
	e := harness(t)
	code, body := getJSON(t, e, "/api/product/facets?gender=M")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}

	brands := body["brands"].([]interface{})
	if len(brands) != 3 {
		t.Errorf("brands = %v, want 3 distinct", brands)
	}

	// letter sizes order before numeric ones
	sizes := body["sizes"].([]interface{})
	if len(sizes) < 2 {
		t.Fatalf("sizes = %v", sizes)
	}
	if sizes[len(sizes)-1].(string) != "42" {
		t.Errorf("sizes = %v, want numeric size last", sizes)
	}

	subs := body["subcategories"].(map[string]interface{})
	clothing, ok := subs["Одежда"].([]interface{})
	if !ok {
		t.Fatalf("subcategories = %v", subs)
	}
	// gender=M excludes the women's hoodie subcategory
	for _, s := range clothing {
		if s.(string) == "Худи" {
			t.Errorf("women-only subcategory leaked into gender=M facets: %v", clothing)
		}
	}
}

func TestSerializeGroup_SizesAreDistinct(t *testing.T) {
	// two colorways of the same parent can repeat a size within the group
	variants := []catalog.Variant{
		{VariantSKU: "V-10", ColorSKU: "P-9-GRY", SizeLabel: "M", Price: 4990},
		{VariantSKU: "V-11", ColorSKU: "P-9-GRY", SizeLabel: "M", Price: 5290},
		{VariantSKU: "V-12", ColorSKU: "P-9-GRY", SizeLabel: "S", Price: 5290},
		{VariantSKU: "V-13", ColorSKU: "P-9-GRY", SizeLabel: "", Price: 5290},
	}
	g := &catalog.Group{
		ColorSKU:        "P-9-GRY",
		Variants:        variants,
		MinPrice:        4990,
		MinPriceVariant: &variants[0],
	}

	out := serializeGroup(g, nil)
	sizes := out["sizes"].([]string)
	want := []string{"S", "M"}
	if len(sizes) != len(want) {
		t.Fatalf("sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("sizes = %v, want %v", sizes, want)
		}
	}
}

func TestSearch_UnavailableWithoutElasticsearch(t *testing.T) {
	e := harness(t)
	code, _ := getJSON(t, e, "/api/product/search?q=nike")
	if code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when search backend is not configured", code)
	}
	if code, _ := getJSON(t, e, "/api/product/search"); code != http.StatusBadRequest {
		t.Errorf("missing q: status = %d, want 400", code)
	}
}
