package entity

import "time"

// ProductVariant is one purchasable SKU row. All three source categories
// (clothing, shoes, accessories) share this table; Category tells them apart.
type ProductVariant struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	VariantSKU  string    `gorm:"column:variant_sku;type:varchar(64);uniqueIndex;not null"`
	SKU         string    `gorm:"column:sku;type:varchar(64);index;not null"`
	ColorSKU    string    `gorm:"column:color_sku;type:varchar(64);index;not null"`
	Category    string    `gorm:"column:category;type:varchar(32);index;not null"`
	Subcategory string    `gorm:"column:subcategory;type:varchar(64)"`
	Gender      string    `gorm:"column:gender;type:varchar(1);default:U"`
	Brand       string    `gorm:"column:brand;type:varchar(128)"`
	Color       string    `gorm:"column:color;type:varchar(64)"`
	SizeLabel   string    `gorm:"column:size_label;type:varchar(32)"`
	Price       float64   `gorm:"column:price;not null"`
	CountSales  int       `gorm:"column:count_sales;not null;default:0"`
	CountImages int       `gorm:"column:count_images;not null;default:0"`
	Name        string    `gorm:"column:name;type:varchar(255)"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductVariant) TableName() string {
	return "product_variant"
}
