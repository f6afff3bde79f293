package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skus(groups []*Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.ColorSKU
	}
	return out
}

func TestSearch_NoFiltersReturnsAll(t *testing.T) {
	idx := Build([]Variant{v("a1", "c1"), v("b1", "c2"), v("d1", "c3")})
	got := idx.Search(Query{SortBy: SortDate, SortOrder: OrderAsc})
	assert.Len(t, got, 3)
}

func TestSearch_GenderIncludesUnisex(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Gender = GenderMale }),
		v("b1", "c2", func(x *Variant) { x.Gender = GenderFemale }),
		v("d1", "c3", func(x *Variant) { x.Gender = GenderUnisex }),
	})

	male := idx.Search(Query{Gender: GenderMale, SortOrder: OrderAsc})
	assert.ElementsMatch(t, []string{"c1", "c3"}, skus(male))

	female := idx.Search(Query{Gender: GenderFemale, SortOrder: OrderAsc})
	assert.ElementsMatch(t, []string{"c2", "c3"}, skus(female))

	// No gender selected means no restriction.
	all := idx.Search(Query{})
	assert.Len(t, all, 3)
}

func TestSearch_MultiSelectORAcrossFiltersAND(t *testing.T) {
	// G1{brand:A,color:red}, G2{brand:B,color:blue}, G3{brand:C,color:red}.
	idx := Build([]Variant{
		v("a1", "g1", func(x *Variant) { x.Brand = "A"; x.Color = "red" }),
		v("b1", "g2", func(x *Variant) { x.Brand = "B"; x.Color = "blue" }),
		v("d1", "g3", func(x *Variant) { x.Brand = "C"; x.Color = "red" }),
	})
	got := idx.Search(Query{Brands: []string{"A", "B"}, Colors: []string{"red"}})
	require.Len(t, got, 1)
	assert.Equal(t, "g1", got[0].ColorSKU)
}

func TestSearch_PriceRangeAnyMatch(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Price = 10 }),
		v("a2", "c1", func(x *Variant) { x.Price = 50 }),
		v("b1", "c2", func(x *Variant) { x.Price = 20 }),
	})

	min := 40.0
	got := idx.Search(Query{PriceMin: &min})
	// c1 survives: one variant (50) clears the bound even though 10 does not.
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ColorSKU)

	max := 15.0
	got = idx.Search(Query{PriceMax: &max})
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ColorSKU)
}

func TestSearch_CategoryAndSubcategory(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Category = "Обувь"; x.Subcategory = "Кроссовки" }),
		v("b1", "c2", func(x *Variant) { x.Category = "Обувь"; x.Subcategory = "Ботинки" }),
		v("d1", "c3"),
	})
	got := idx.Search(Query{Category: "Обувь", Subcategory: "Кроссовки"})
	require.Len(t, got, 1)
	assert.Equal(t, "c1", got[0].ColorSKU)
}

func TestSearch_StaleFilterValueYieldsEmptySet(t *testing.T) {
	idx := Build([]Variant{v("a1", "c1")})
	got := idx.Search(Query{Brands: []string{"no-such-brand"}})
	assert.Empty(t, got)
}

func TestSearch_SortByPrice(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Price = 30 }),
		v("b1", "c2", func(x *Variant) { x.Price = 10 }),
		v("d1", "c3", func(x *Variant) { x.Price = 20 }),
	})
	asc := idx.Search(Query{SortBy: SortPrice, SortOrder: OrderAsc})
	assert.Equal(t, []string{"c2", "c3", "c1"}, skus(asc))

	desc := idx.Search(Query{SortBy: SortPrice, SortOrder: OrderDesc})
	assert.Equal(t, []string{"c1", "c3", "c2"}, skus(desc))
}

func TestSearch_SortStableOnEqualKeys(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Price = 20 }),
		v("b1", "c2", func(x *Variant) { x.Price = 20 }),
		v("d1", "c3", func(x *Variant) { x.Price = 20 }),
	})
	got := idx.Search(Query{SortBy: SortPrice, SortOrder: OrderAsc})
	// Equal keys keep insertion order.
	assert.Equal(t, []string{"c1", "c2", "c3"}, skus(got))

	got = idx.Search(Query{SortBy: SortPrice, SortOrder: OrderDesc})
	assert.Equal(t, []string{"c1", "c2", "c3"}, skus(got))
}

func TestSearch_SortBySalesBreaksTiesOnPrice(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.CountSales = 5; x.Price = 40 }),
		v("b1", "c2", func(x *Variant) { x.CountSales = 5; x.Price = 10 }),
		v("d1", "c3", func(x *Variant) { x.CountSales = 9; x.Price = 99 }),
	})
	got := idx.Search(Query{SortBy: SortSales, SortOrder: OrderAsc})
	assert.Equal(t, []string{"c2", "c1", "c3"}, skus(got))
}

func TestSearch_DefaultSortIsDateDesc(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.CreatedAt = "2026-01-01T00:00:00.000000Z" }),
		v("b1", "c2", func(x *Variant) { x.CreatedAt = "2026-03-01T00:00:00.000000Z" }),
		v("d1", "c3", func(x *Variant) { x.CreatedAt = "2026-02-01T00:00:00.000000Z" }),
	})
	got := idx.Search(Query{})
	assert.Equal(t, []string{"c2", "c3", "c1"}, skus(got))
}

func TestSearch_GenderInclusionLaw(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Gender = GenderMale }),
		v("b1", "c2", func(x *Variant) { x.Gender = GenderMale }),
		v("d1", "c3", func(x *Variant) { x.Gender = GenderFemale }),
		v("e1", "c4", func(x *Variant) { x.Gender = GenderUnisex }),
	})

	filtered := skus(idx.Search(Query{Gender: GenderMale}))

	var want []string
	for _, g := range idx.Bucket(FieldGender, GenderMale) {
		want = append(want, g.ColorSKU)
	}
	for _, g := range idx.Bucket(FieldGender, GenderUnisex) {
		want = append(want, g.ColorSKU)
	}
	assert.ElementsMatch(t, want, filtered)
}

func TestSearch_ResultIsFreshSlice(t *testing.T) {
	idx := Build([]Variant{v("a1", "c1"), v("b1", "c2")})
	first := idx.Search(Query{SortBy: SortPrice, SortOrder: OrderAsc})
	first[0], first[1] = first[1], first[0]

	again := idx.Search(Query{SortBy: SortPrice, SortOrder: OrderAsc})
	assert.Equal(t, []string{"c1", "c2"}, skus(again))
	assert.Equal(t, []string{"c1", "c2"}, skus(idx.Groups()))
}
