package product

import (
	"context"

	"gorm.io/gorm"

	"shopfront.GO/catalog"
	entity "shopfront.GO/model/entity"
	productRepo "shopfront.GO/model/repository/product"
)

// FindBySKU returns a parent SKU's rows for the detail page.
func FindBySKU(db *gorm.DB, sku string) ([]entity.ProductVariant, error) {
	return productRepo.NewProductRepository(db).FindBySKU(sku)
}

// NewCatalogLoader returns the catalog store's loader: the full variant
// table converted into engine records. Insertion order in the table defines
// group order in the index.
func NewCatalogLoader(db *gorm.DB) catalog.Loader {
	repo := productRepo.NewProductRepository(db)
	return func(ctx context.Context) ([]catalog.Variant, error) {
		rows, err := repo.ListAll()
		if err != nil {
			return nil, err
		}
		out := make([]catalog.Variant, len(rows))
		for i := range rows {
			out[i] = ToVariant(&rows[i])
		}
		return out, nil
	}
}
