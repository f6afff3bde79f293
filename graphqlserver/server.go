package graphqlserver

import (
	"context"
	"encoding/json"
	"sort"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"shopfront.GO/catalog"
	"shopfront.GO/graphql"
	gqlmodels "shopfront.GO/graphql/models"
	"shopfront.GO/graphql/registry"
	productService "shopfront.GO/service/product"
)

// RootResolver is the root for graphql-go. The catalog index behind it is
// shared with the REST layer, so both surfaces always answer from the same
// snapshot.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB}
}

// QueryResolver implements Query fields.
type QueryResolver struct {
	db *gorm.DB
}

// ProductsArgs matches the products query arguments.
type ProductsArgs struct {
	Category    *string
	Subcategory *string
	Gender      *string
	Brands      *[]string
	Colors      *[]string
	Sizes       *[]string
	PriceMin    *float64
	PriceMax    *float64
	SortBy      *string
	SortOrder   *string
}

func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) ([]*gqlmodels.ProductGroup, error) {
	q := catalog.Query{
		Category:    deref(args.Category),
		Subcategory: deref(args.Subcategory),
		Gender:      deref(args.Gender),
		SortBy:      deref(args.SortBy),
		SortOrder:   deref(args.SortOrder),
		PriceMin:    args.PriceMin,
		PriceMax:    args.PriceMax,
	}
	if args.Brands != nil {
		q.Brands = *args.Brands
	}
	if args.Colors != nil {
		q.Colors = *args.Colors
	}
	if args.Sizes != nil {
		q.Sizes = *args.Sizes
	}

	groups := productService.CatalogStore(r.db).Index().Search(q)
	out := make([]*gqlmodels.ProductGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, toProductGroup(g))
	}
	return out, nil
}

// FacetsArgs matches the facets query arguments.
type FacetsArgs struct {
	Gender *string
}

func (r *QueryResolver) Facets(ctx context.Context, args FacetsArgs) (*gqlmodels.Facets, error) {
	idx := productService.CatalogStore(r.db).Index()

	byCategory := idx.Subcategories(deref(args.Gender))
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	subs := make([]*gqlmodels.SubcategoryGroup, 0, len(categories))
	for _, cat := range categories {
		subs = append(subs, &gqlmodels.SubcategoryGroup{Category: cat, Values: byCategory[cat]})
	}

	return &gqlmodels.Facets{
		Brands:        idx.Brands(),
		Colors:        idx.Colors(),
		Sizes:         idx.Sizes(),
		Subcategories: subs,
	}, nil
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	Sku string
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) ([]*gqlmodels.Variant, error) {
	rows, err := productService.FindBySKU(r.db, args.Sku)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Variant, 0, len(rows))
	for i := range rows {
		v := productService.ToVariant(&rows[i])
		out = append(out, toGQLVariant(&v))
	}
	return out, nil
}

// ExtensionArgs for extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func toGQLVariant(v *catalog.Variant) *gqlmodels.Variant {
	images := productService.ImageURLs(v.ColorSKU, v.CountImages)
	image := ""
	if len(images) > 0 {
		image = images[0]
	}
	return &gqlmodels.Variant{
		VariantSku:  v.VariantSKU,
		Sku:         v.SKU,
		ColorSku:    v.ColorSKU,
		Category:    v.Category,
		Subcategory: v.Subcategory,
		Gender:      v.Gender,
		Brand:       v.Brand,
		Color:       v.Color,
		SizeLabel:   v.SizeLabel,
		Price:       v.Price,
		CreatedAt:   v.CreatedAt,
		CountSales:  int32(v.CountSales),
		Name:        v.Name,
		Image:       image,
		Images:      images,
	}
}

func toProductGroup(g *catalog.Group) *gqlmodels.ProductGroup {
	rep := toGQLVariant(g.MinPriceVariant)
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
	return &gqlmodels.ProductGroup{
		ColorSku:   g.ColorSKU,
		MinPrice:   g.MinPrice,
		TotalSales: int32(g.TotalSales),
		Sizes:      sizes,
		Image:      rep.Image,
		Images:     rep.Images,
		Variant:    rep,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
