package graphql

import (
	"strings"
	"sync"
)

const schemaBase = `
schema {
	query: Query
}

type Query {
	# Faceted catalog listing. Multi-value filters OR within themselves and
	# AND against each other; unisex items match either gender.
	products(
		category: String
		subcategory: String
		gender: String
		brands: [String!]
		colors: [String!]
		sizes: [String!]
		priceMin: Float
		priceMax: Float
		sortBy: String
		sortOrder: String
	): [ProductGroup!]!

	# Filter values for the storefront sidebar.
	facets(gender: String): Facets!

	# Every variant of one parent SKU.
	product(sku: String!): [Variant!]!

	# Extension hook: JSON in, JSON out.
	extension(name: String!, args: String): String
}

type ProductGroup {
	colorSku: String!
	minPrice: Float!
	totalSales: Int!
	sizes: [String!]!
	image: String!
	images: [String!]!
	variant: Variant!
}

type Variant {
	variantSku: String!
	sku: String!
	colorSku: String!
	category: String!
	subcategory: String!
	gender: String!
	brand: String!
	color: String!
	sizeLabel: String!
	price: Float!
	createdAt: String!
	countSales: Int!
	name: String!
	image: String!
	images: [String!]!
}

type Facets {
	brands: [String!]!
	colors: [String!]!
	sizes: [String!]!
	subcategories: [SubcategoryGroup!]!
}

type SubcategoryGroup {
	category: String!
	values: [String!]!
}
`

var (
	schemaExtensions []string
	schemaMu         sync.Mutex
)

// RegisterSchemaExtension appends schema to the Query. Call from init() in custom packages.
func RegisterSchemaExtension(schema string) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemaExtensions = append(schemaExtensions, strings.TrimSpace(schema))
}

// Schema returns base schema + registered extensions.
func Schema() string {
	schemaMu.Lock()
	ext := schemaExtensions
	schemaMu.Unlock()
	if len(ext) == 0 {
		return schemaBase
	}
	return schemaBase + "\n\n" + strings.Join(ext, "\n\n")
}
