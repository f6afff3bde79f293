package catalog

// Field identifies one of the variant attributes the inverted index covers.
// Using a fixed enum instead of attribute-name strings keeps lookups
// exhaustive at compile time.
type Field int

const (
	FieldCategory Field = iota
	FieldSubcategory
	FieldGender
	FieldBrand
	FieldColor
	FieldSize

	numFields
)

func (f Field) String() string {
	switch f {
	case FieldCategory:
		return "category"
	case FieldSubcategory:
		return "subcategory"
	case FieldGender:
		return "gender"
	case FieldBrand:
		return "brand"
	case FieldColor:
		return "color"
	case FieldSize:
		return "size"
	default:
		return "unknown"
	}
}

// Gender values as stored on variants. GenderUnisex matches both explicit
// gender filters.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderUnisex = "U"
)

// Variant is a single purchasable SKU: one size/color/category combination
// of a product. The JSON shape matches the product list API response.
// CreatedAt is kept as the raw string from the backend; it must be a
// fixed-width ISO 8601 timestamp because date ordering is lexicographic.
type Variant struct {
	VariantSKU  string  `json:"variant_sku"`
	SKU         string  `json:"sku"`
	ColorSKU    string  `json:"color_sku"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Gender      string  `json:"gender"`
	Brand       string  `json:"brand"`
	Color       string  `json:"color"`
	SizeLabel   string  `json:"size_label"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"created_at"`
	CountSales  int     `json:"count_sales,omitempty"`

	// Payload fields carried through for serving; never indexed.
	Name        string `json:"name,omitempty"`
	CountImages int    `json:"count_images,omitempty"`
}

// fieldValue returns the raw value a variant exhibits for an indexed field.
// Missing values come through as "" and index under the empty-string bucket.
func (v *Variant) fieldValue(f Field) string {
	switch f {
	case FieldCategory:
		return v.Category
	case FieldSubcategory:
		return v.Subcategory
	case FieldGender:
		return v.Gender
	case FieldBrand:
		return v.Brand
	case FieldColor:
		return v.Color
	case FieldSize:
		return v.SizeLabel
	default:
		return ""
	}
}
