package models

// Variant mirrors the Variant GraphQL type. Field resolvers match by name,
// so the struct fields track the schema exactly.
type Variant struct {
	VariantSku  string
	Sku         string
	ColorSku    string
	Category    string
	Subcategory string
	Gender      string
	Brand       string
	Color       string
	SizeLabel   string
	Price       float64
	CreatedAt   string
	CountSales  int32
	Name        string
	Image       string
	Images      []string
}

// ProductGroup is one storefront card: a color group represented by its
// cheapest variant.
type ProductGroup struct {
	ColorSku   string
	MinPrice   float64
	TotalSales int32
	Sizes      []string
	Image      string
	Images     []string
	Variant    *Variant
}

type Facets struct {
	Brands        []string
	Colors        []string
	Sizes         []string
	Subcategories []*SubcategoryGroup
}

type SubcategoryGroup struct {
	Category string
	Values   []string
}
