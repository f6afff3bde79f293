package product

import (
	"fmt"
	"time"

	"shopfront.GO/catalog"
	"shopfront.GO/config"
	entity "shopfront.GO/model/entity"
	settingRepo "shopfront.GO/model/repository/setting"
)

// createdAtFormat is the fixed-width timestamp written into every serialized
// variant. Catalog date sorting compares these strings lexicographically, so
// width and precision must never vary between rows.
const createdAtFormat = "2006-01-02T15:04:05.000000Z"

// FormatCreatedAt renders a DB timestamp in the catalog's fixed format.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(createdAtFormat)
}

// Serialized is one variant as served to the storefront.
type Serialized struct {
	catalog.Variant
	Image           string                       `json:"image,omitempty"`
	Images          []string                     `json:"images"`
	DeliveryOptions []settingRepo.DeliveryOption `json:"delivery_options"`
}

// ImageURLs builds the public URLs for a color group's images, numbered
// {color_sku}_1.webp through {color_sku}_{count}.webp.
func ImageURLs(colorSKU string, count int) []string {
	base := config.AppConfig.BackendURL
	out := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, fmt.Sprintf("%s/images/%s_%d.webp", base, colorSKU, i))
	}
	return out
}

// ToVariant converts a DB row into the catalog engine's input record.
func ToVariant(e *entity.ProductVariant) catalog.Variant {
	return catalog.Variant{
		VariantSKU:  e.VariantSKU,
		SKU:         e.SKU,
		ColorSKU:    e.ColorSKU,
		Category:    e.Category,
		Subcategory: e.Subcategory,
		Gender:      e.Gender,
		Brand:       e.Brand,
		Color:       e.Color,
		SizeLabel:   e.SizeLabel,
		Price:       e.Price,
		CreatedAt:   FormatCreatedAt(e.CreatedAt),
		CountSales:  e.CountSales,
		Name:        e.Name,
		CountImages: e.CountImages,
	}
}

// Serialize renders one DB row with images and the shared delivery options.
func Serialize(e *entity.ProductVariant, opts []settingRepo.DeliveryOption) Serialized {
	images := ImageURLs(e.ColorSKU, e.CountImages)
	first := ""
	if len(images) > 0 {
		first = images[0]
	}
	if opts == nil {
		opts = []settingRepo.DeliveryOption{}
	}
	return Serialized{
		Variant:         ToVariant(e),
		Image:           first,
		Images:          images,
		DeliveryOptions: opts,
	}
}

// SerializeAll renders a full row list.
func SerializeAll(rows []entity.ProductVariant, opts []settingRepo.DeliveryOption) []Serialized {
	out := make([]Serialized, len(rows))
	for i := range rows {
		out[i] = Serialize(&rows[i], opts)
	}
	return out
}
