package product

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"

	entity "shopfront.GO/model/entity"
	productRepo "shopfront.GO/model/repository/product"
)

// Valid categories as they appear in the source sheets.
var validCategories = []string{"Одежда", "Обувь", "Аксессуары"}

// ImportOptions configures a variant import run.
type ImportOptions struct {
	// Category restricts the run to one category sheet; rows with another
	// category are rejected with a warning.
	Category  string
	BatchSize int
	// DryRun validates and counts without writing (the admin preview).
	DryRun bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows   int           `json:"total_rows"`
	Imported    int           `json:"imported"`
	Skipped     int           `json:"skipped"`
	Warnings    []string      `json:"warnings"`
	ProcessTime time.Duration `json:"-"`
	DBTime      time.Duration `json:"-"`
	TotalTime   time.Duration `json:"-"`
}

// rowInput is one CSV row before normalization. Numbers stay strings here;
// sheet exports use comma decimals and embedded spaces, so parsing is a
// separate step after decode.
type rowInput struct {
	VariantSKU  string `mapstructure:"variant_sku" validate:"required"`
	SKU         string `mapstructure:"sku" validate:"required"`
	ColorSKU    string `mapstructure:"color_sku" validate:"required"`
	Category    string `mapstructure:"category" validate:"required"`
	Subcategory string `mapstructure:"subcategory"`
	Gender      string `mapstructure:"gender" validate:"required,oneof=M F U"`
	Brand       string `mapstructure:"brand"`
	Color       string `mapstructure:"color"`
	SizeLabel   string `mapstructure:"size_label"`
	Price       string `mapstructure:"price" validate:"required"`
	CountSales  string `mapstructure:"count_sales"`
	CountImages string `mapstructure:"count_images"`
	Name        string `mapstructure:"name"`
}

var rowValidator = validator.New()

// ImportVariants reads CSV data from r and upserts product variants.
// Malformed rows are skipped with a warning, never aborting the run; the
// sheet is operator-maintained and partial imports are expected.
func ImportVariants(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	result := &ImportResult{}
	known := map[string]bool{
		"variant_sku": true, "sku": true, "color_sku": true, "category": true,
		"subcategory": true, "gender": true, "brand": true, "color": true,
		"size_label": true, "price": true, "count_sales": true,
		"count_images": true, "name": true,
	}
	for _, h := range headers {
		if !known[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	startProcess := time.Now()
	seen := make(map[string]bool, len(rows))
	var pending []entity.ProductVariant
	for n, row := range rows {
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				rec[h] = strings.TrimSpace(row[i])
			}
		}

		var in rowInput
		if err := mapstructure.Decode(rec, &in); err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", n+2, err))
			continue
		}
		ent, err := buildVariant(&in, opts.Category)
		if err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d (%s): %v", n+2, in.VariantSKU, err))
			continue
		}
		if seen[ent.VariantSKU] {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: duplicate variant_sku %s", n+2, ent.VariantSKU))
			continue
		}
		seen[ent.VariantSKU] = true
		pending = append(pending, *ent)
	}
	result.ProcessTime = time.Since(startProcess)

	if !opts.DryRun && len(pending) > 0 {
		startDB := time.Now()
		repo := productRepo.NewProductRepository(db)
		if _, err := repo.UpsertBatch(pending, opts.BatchSize); err != nil {
			return nil, fmt.Errorf("upsert variants: %w", err)
		}
		result.DBTime = time.Since(startDB)
	}
	result.Imported = len(pending)
	result.TotalTime = time.Since(startTotal)
	return result, nil
}

// buildVariant validates and normalizes one decoded row.
func buildVariant(in *rowInput, wantCategory string) (*entity.ProductVariant, error) {
	if err := rowValidator.Struct(in); err != nil {
		return nil, err
	}
	categoryOK := false
	for _, c := range validCategories {
		if in.Category == c {
			categoryOK = true
			break
		}
	}
	if !categoryOK {
		return nil, fmt.Errorf("unknown category %q", in.Category)
	}
	if wantCategory != "" && in.Category != wantCategory {
		return nil, fmt.Errorf("category %q does not match sheet %q", in.Category, wantCategory)
	}
	price, ok := ParseFloat(in.Price)
	if !ok || price <= 0 {
		return nil, fmt.Errorf("bad price %q", in.Price)
	}
	countSales, _ := ParseInt(in.CountSales)
	countImages, _ := ParseInt(in.CountImages)

	return &entity.ProductVariant{
		VariantSKU:  in.VariantSKU,
		SKU:         in.SKU,
		ColorSKU:    in.ColorSKU,
		Category:    in.Category,
		Subcategory: NormalizeStr(in.Subcategory),
		Gender:      in.Gender,
		Brand:       strings.TrimSpace(in.Brand),
		Color:       NormalizeStr(in.Color),
		SizeLabel:   in.SizeLabel,
		Price:       price,
		CountSales:  countSales,
		CountImages: countImages,
		Name:        in.Name,
	}, nil
}
