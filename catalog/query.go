package catalog

import "sort"

// Sort keys accepted by Query.SortBy. Anything else falls back to SortDate.
const (
	SortDate  = "date"
	SortPrice = "price"
	SortSales = "sales"
)

// Sort directions accepted by Query.SortOrder.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Query is one composed catalog question: facet filters plus a sort. Empty
// or nil fields impose no restriction. Multi-select filters use OR semantics
// within the slice and AND semantics against the other filters.
type Query struct {
	Category    string
	Subcategory string
	Gender      string // M or F; unisex variants always pass
	Brands      []string
	Colors      []string
	Sizes       []string
	PriceMin    *float64
	PriceMax    *float64
	SortBy      string
	SortOrder   string
}

// Search returns the groups satisfying every active filter, ordered by the
// query's sort. The result is a fresh slice; the index is never mutated. The
// working set is recomputed from the index buckets on every call, filter
// state can move in both directions so nothing is cached between calls.
func (i *Index) Search(q Query) []*Group {
	result := i.allGroups()

	if q.Category != "" {
		result = result.intersect(i.bucket(FieldCategory, q.Category))
	}
	if q.Subcategory != "" {
		result = result.intersect(i.bucket(FieldSubcategory, q.Subcategory))
	}
	if q.Gender == GenderMale || q.Gender == GenderFemale {
		// A group tagged unisex matches either explicit gender.
		sel := make(groupSet).union(i.bucket(FieldGender, q.Gender))
		sel = sel.union(i.bucket(FieldGender, GenderUnisex))
		result = result.intersect(sel)
	}
	result = i.applyMulti(result, FieldBrand, q.Brands)
	result = i.applyMulti(result, FieldColor, q.Colors)
	result = i.applyMulti(result, FieldSize, q.Sizes)

	// Price bounds scan member variants directly: a group survives when any
	// single variant fits the bound, not when all of them do.
	if q.PriceMin != nil {
		result = filterSet(result, func(g *Group) bool {
			for i := range g.Variants {
				if g.Variants[i].Price >= *q.PriceMin {
					return true
				}
			}
			return false
		})
	}
	if q.PriceMax != nil {
		result = filterSet(result, func(g *Group) bool {
			for i := range g.Variants {
				if g.Variants[i].Price <= *q.PriceMax {
					return true
				}
			}
			return false
		})
	}

	// Collect in insertion order so the stable sort has a deterministic
	// base ordering across repeated calls.
	out := make([]*Group, 0, len(result))
	for _, g := range i.groups {
		if _, ok := result[g]; ok {
			out = append(out, g)
		}
	}
	sortGroups(out, q.SortBy, q.SortOrder)
	return out
}

func (i *Index) applyMulti(result groupSet, f Field, values []string) groupSet {
	if len(values) == 0 {
		return result
	}
	sel := make(groupSet)
	for _, v := range values {
		sel = sel.union(i.bucket(f, v))
	}
	return result.intersect(sel)
}

func filterSet(s groupSet, keep func(*Group) bool) groupSet {
	out := make(groupSet)
	for g := range s {
		if keep(g) {
			out[g] = struct{}{}
		}
	}
	return out
}

// sortGroups orders groups in place. Direction is a single multiplier on the
// comparator, identical for every sort key. Sales ties break on MinPrice.
// The date comparison is lexicographic on the raw created_at strings, which
// requires the fixed-format precondition documented on Variant.CreatedAt.
func sortGroups(groups []*Group, sortBy, sortOrder string) {
	mod := -1
	if sortOrder == OrderAsc {
		mod = 1
	}
	var less func(a, b *Group) bool
	switch sortBy {
	case SortPrice:
		less = func(a, b *Group) bool {
			return mod*compareFloat(a.MinPrice, b.MinPrice) < 0
		}
	case SortSales:
		less = func(a, b *Group) bool {
			if c := compareInt(a.TotalSales, b.TotalSales); c != 0 {
				return mod*c < 0
			}
			return mod*compareFloat(a.MinPrice, b.MinPrice) < 0
		}
	default:
		less = func(a, b *Group) bool {
			return mod*compareString(a.MinDate, b.MinDate) < 0
		}
	}
	sort.SliceStable(groups, func(x, y int) bool { return less(groups[x], groups[y]) })
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
