package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortSizeLabels_LiteralCase(t *testing.T) {
	labels := []string{"42", "M", "XXL", "38", "S"}
	SortSizeLabels(labels)
	assert.Equal(t, []string{"S", "M", "XXL", "38", "42"}, labels)
}

func TestSortSizeLabels_Tiers(t *testing.T) {
	labels := []string{"40.5", "ONESIZE", "XS", "чулки 3", "XXXXL", "36", "XL"}
	SortSizeLabels(labels)
	// Known letters by canonical rank, then other letter labels, then
	// numerics ascending, then free text.
	assert.Equal(t, []string{"XS", "XL", "XXXXL", "ONESIZE", "36", "40.5", "чулки 3"}, labels)
}

func TestSortSizeLabels_DecimalNumeric(t *testing.T) {
	labels := []string{"38", "37.5", "38.5", "37"}
	SortSizeLabels(labels)
	assert.Equal(t, []string{"37", "37.5", "38", "38.5"}, labels)
}

func TestSortSizeLabels_Deterministic(t *testing.T) {
	a := []string{"M", "S", "40", "XQ", "ZZ", "M"}
	b := []string{"M", "M", "ZZ", "XQ", "40", "S"}
	SortSizeLabels(a)
	SortSizeLabels(b)
	assert.Equal(t, a, b)
}

func TestClassifySize(t *testing.T) {
	assert.Equal(t, sizeKnownLetter, classifySize("XS").class)
	assert.Equal(t, 3, classifySize("XS").rank)
	assert.Equal(t, sizeOtherLetter, classifySize("ONESIZE").class)
	assert.Equal(t, sizeNumeric, classifySize("38.5").class)
	assert.Equal(t, sizeOther, classifySize("38-40").class)
	assert.Equal(t, sizeOther, classifySize("").class)
}

func TestBrands_CollationIgnoresCase(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Brand = "zara" }),
		v("b1", "c2", func(x *Variant) { x.Brand = "Adidas" }),
		v("d1", "c3", func(x *Variant) { x.Brand = "Найк" }),
		v("e1", "c4", func(x *Variant) { x.Brand = "апрель" }),
	})
	got := idx.Brands()
	// Latin collates before Cyrillic under the Russian locale; case is
	// ignored within each script.
	assert.Equal(t, []string{"Adidas", "zara", "апрель", "Найк"}, got)
}

func TestColors_Distinct(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Color = "Белый" }),
		v("a2", "c1", func(x *Variant) { x.Color = "Белый" }),
		v("b1", "c2", func(x *Variant) { x.Color = "Чёрный" }),
	})
	assert.Equal(t, []string{"Белый", "Чёрный"}, idx.Colors())
}

func TestSubcategories_GenderAware(t *testing.T) {
	idx := Build([]Variant{
		v("a1", "c1", func(x *Variant) { x.Subcategory = "Платья"; x.Gender = GenderFemale }),
		v("b1", "c2", func(x *Variant) { x.Subcategory = "Футболки"; x.Gender = GenderUnisex }),
		v("d1", "c3", func(x *Variant) { x.Subcategory = "Шорты"; x.Gender = GenderMale }),
	})

	all := idx.Subcategories("")
	assert.ElementsMatch(t, []string{"Платья", "Футболки", "Шорты"}, all["Одежда"])

	female := idx.Subcategories(GenderFemale)
	assert.ElementsMatch(t, []string{"Платья", "Футболки"}, female["Одежда"])
}
