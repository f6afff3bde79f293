package product

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "shopfront.GO/model/entity"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListAll returns every variant ordered by insertion. The catalog index is
// rebuilt from this list, so ordering here defines group insertion order.
func (r *ProductRepository) ListAll() ([]entity.ProductVariant, error) {
	var out []entity.ProductVariant
	if err := r.db.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCategory returns variants of one category, ordered by insertion.
func (r *ProductRepository) ListByCategory(category string) ([]entity.ProductVariant, error) {
	var out []entity.ProductVariant
	if err := r.db.Where("category = ?", category).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByVariantSKU returns a single variant or gorm.ErrRecordNotFound.
func (r *ProductRepository) FindByVariantSKU(variantSKU string) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	if err := r.db.Where("variant_sku = ?", variantSKU).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// FindBySKU returns all variants of a parent SKU (the detail page needs the
// sibling sizes and colors).
func (r *ProductRepository) FindBySKU(sku string) ([]entity.ProductVariant, error) {
	var out []entity.ProductVariant
	if err := r.db.Where("sku = ?", sku).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByVariantSKUs returns the rows matching the given variant SKUs. The
// result keeps the input ordering so ranked search hits stay ranked.
func (r *ProductRepository) FindByVariantSKUs(variantSKUs []string) ([]entity.ProductVariant, error) {
	if len(variantSKUs) == 0 {
		return nil, nil
	}
	var rows []entity.ProductVariant
	if err := r.db.Where("variant_sku IN ?", variantSKUs).Find(&rows).Error; err != nil {
		return nil, err
	}
	bySKU := make(map[string]entity.ProductVariant, len(rows))
	for _, row := range rows {
		bySKU[row.VariantSKU] = row
	}
	out := make([]entity.ProductVariant, 0, len(rows))
	for _, sku := range variantSKUs {
		if row, ok := bySKU[sku]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// UpsertBatch writes imported variants, updating existing rows by
// variant_sku. Returns how many rows were sent.
func (r *ProductRepository) UpsertBatch(rows []entity.ProductVariant, batchSize int) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "variant_sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"sku", "color_sku", "category", "subcategory", "gender",
			"brand", "color", "size_label", "price", "count_sales",
			"count_images", "name", "updated_at",
		}),
	}).CreateInBatches(rows, batchSize).Error
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// KnownColorSKUs returns the distinct color_sku values for a category.
// Image ZIP previews match file names against this set.
func (r *ProductRepository) KnownColorSKUs(category string) (map[string]struct{}, error) {
	var skus []string
	q := r.db.Model(&entity.ProductVariant{}).Distinct("color_sku")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Pluck("color_sku", &skus).Error; err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(skus))
	for _, s := range skus {
		out[s] = struct{}{}
	}
	return out, nil
}

// SetCountImages records how many images were stored for a color group.
func (r *ProductRepository) SetCountImages(colorSKU string, count int) error {
	return r.db.Model(&entity.ProductVariant{}).
		Where("color_sku = ?", colorSKU).
		Update("count_images", count).Error
}
