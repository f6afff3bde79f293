package catalog

import (
	"regexp"
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns the collator used for facet lists. Loose comparison
// ignores case and accent distinctions, matching the storefront's
// Cyrillic-aware base-sensitivity ordering. Collators are not safe for
// concurrent use, so each caller builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.Russian, collate.Loose)
}

// Brands returns the distinct brand values present in the index, sorted with
// locale-aware collation. An empty-string entry means variants without a
// brand exist; it is kept as its own facet bucket.
func (i *Index) Brands() []string {
	return i.sortedKeys(FieldBrand)
}

// Colors returns the distinct color values, sorted like Brands.
func (i *Index) Colors() []string {
	return i.sortedKeys(FieldColor)
}

func (i *Index) sortedKeys(f Field) []string {
	keys := make([]string, 0, len(i.byField[f]))
	for k := range i.byField[f] {
		keys = append(keys, k)
	}
	col := newCollator()
	sort.SliceStable(keys, func(x, y int) bool {
		if c := col.CompareString(keys[x], keys[y]); c != 0 {
			return c < 0
		}
		return keys[x] < keys[y]
	})
	return keys
}

// Subcategories returns the distinct subcategory values per category. When a
// gender is given only variants matching it (or unisex ones) contribute.
func (i *Index) Subcategories(gender string) map[string][]string {
	seen := make(map[string]map[string]struct{})
	for _, g := range i.groups {
		for idx := range g.Variants {
			v := &g.Variants[idx]
			if gender != "" && v.Gender != gender && v.Gender != GenderUnisex {
				continue
			}
			m, ok := seen[v.Category]
			if !ok {
				m = make(map[string]struct{})
				seen[v.Category] = m
			}
			m[v.Subcategory] = struct{}{}
		}
	}
	col := newCollator()
	out := make(map[string][]string, len(seen))
	for cat, set := range seen {
		list := make([]string, 0, len(set))
		for sc := range set {
			list = append(list, sc)
		}
		sort.SliceStable(list, func(x, y int) bool {
			if c := col.CompareString(list[x], list[y]); c != 0 {
				return c < 0
			}
			return list[x] < list[y]
		})
		out[cat] = list
	}
	return out
}

// Sizes returns the distinct size labels in display order: known letter sizes
// by canonical position, other pure-letter labels alphabetically, numeric
// labels ascending, everything else last in collation order.
func (i *Index) Sizes() []string {
	keys := make([]string, 0, len(i.byField[FieldSize]))
	for k := range i.byField[FieldSize] {
		keys = append(keys, k)
	}
	SortSizeLabels(keys)
	return keys
}

// sizeClass tags which comparison tier a size label belongs to. The tiers
// are ordered: known letter sizes, other letter labels, numeric labels,
// free text.
type sizeClass int

const (
	sizeKnownLetter sizeClass = iota
	sizeOtherLetter
	sizeNumeric
	sizeOther
)

// letterSizeOrder is the canonical letter-size sequence. Position in the
// slice is the sort rank.
var letterSizeOrder = []string{"XXXXS", "XXXS", "XXS", "XS", "S", "M", "L", "XL", "XXL", "XXXL", "XXXXL"}

var (
	letterSizeRe  = regexp.MustCompile(`^[A-Za-z]+$`)
	numericSizeRe = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

type sizeKey struct {
	class sizeClass
	rank  int
	num   float64
}

// classifySize resolves the exact comparison branch a label takes. An
// explicit tagged key avoids the ambiguity of interleaved parse attempts.
func classifySize(label string) sizeKey {
	if letterSizeRe.MatchString(label) {
		for i, known := range letterSizeOrder {
			if label == known {
				return sizeKey{class: sizeKnownLetter, rank: i}
			}
		}
		return sizeKey{class: sizeOtherLetter}
	}
	if numericSizeRe.MatchString(label) {
		n, err := strconv.ParseFloat(label, 64)
		if err == nil {
			return sizeKey{class: sizeNumeric, num: n}
		}
	}
	return sizeKey{class: sizeOther}
}

// SortSizeLabels orders size labels in place using the three-tier total
// order. Ties fall back to a raw string comparison so repeated renders never
// reorder equal-rank labels.
func SortSizeLabels(labels []string) {
	col := newCollator()
	sort.SliceStable(labels, func(x, y int) bool {
		return compareSizeLabels(labels[x], labels[y], col) < 0
	})
}

func compareSizeLabels(a, b string, col *collate.Collator) int {
	ka, kb := classifySize(a), classifySize(b)
	if ka.class != kb.class {
		return int(ka.class) - int(kb.class)
	}
	switch ka.class {
	case sizeKnownLetter:
		if c := ka.rank - kb.rank; c != 0 {
			return c
		}
	case sizeNumeric:
		if c := compareFloat(ka.num, kb.num); c != 0 {
			return c
		}
	default:
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
	}
	return compareString(a, b)
}
