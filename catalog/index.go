package catalog

// Group aggregates every variant sharing a color_sku: the same product in
// the same color across sizes. Variants keep source order. Derived stats are
// computed once per build; a rebuild always replaces groups wholesale.
type Group struct {
	ColorSKU string
	Variants []Variant

	MinPrice        float64
	MinPriceVariant *Variant
	MinDate         string
	MinDateVariant  *Variant
	TotalSales      int
}

type groupSet map[*Group]struct{}

func (s groupSet) intersect(other groupSet) groupSet {
	out := make(groupSet)
	for g := range s {
		if _, ok := other[g]; ok {
			out[g] = struct{}{}
		}
	}
	return out
}

func (s groupSet) union(other groupSet) groupSet {
	for g := range other {
		s[g] = struct{}{}
	}
	return s
}

// Index is an immutable snapshot of the grouped catalog: the ordered group
// list plus one value-to-groups inverted index per field. Build replaces the
// whole snapshot; there is no incremental update path.
type Index struct {
	groups  []*Group
	byField [numFields]map[string]groupSet
}

// Build groups variants by color_sku and constructs the per-field inverted
// indexes in one pass. Group order and variant order within a group follow
// first appearance in the input. Safe to call with an empty slice.
func Build(variants []Variant) *Index {
	idx := &Index{}
	for f := range idx.byField {
		idx.byField[f] = make(map[string]groupSet)
	}

	byColor := make(map[string]*Group)
	for _, v := range variants {
		g, ok := byColor[v.ColorSKU]
		if !ok {
			g = &Group{ColorSKU: v.ColorSKU}
			byColor[v.ColorSKU] = g
			idx.groups = append(idx.groups, g)
		}
		g.Variants = append(g.Variants, v)
	}

	// Stats and index registration run after grouping so variant slices are
	// final and member pointers stay valid.
	for _, g := range idx.groups {
		g.computeStats()
		for f := Field(0); f < numFields; f++ {
			seen := make(map[string]struct{}, len(g.Variants))
			for i := range g.Variants {
				val := g.Variants[i].fieldValue(f)
				if _, dup := seen[val]; dup {
					continue
				}
				seen[val] = struct{}{}
				bucket, ok := idx.byField[f][val]
				if !ok {
					bucket = make(groupSet)
					idx.byField[f][val] = bucket
				}
				bucket[g] = struct{}{}
			}
		}
	}
	return idx
}

// computeStats derives MinPrice, MinDate and TotalSales. Ties on price and
// date go to the first-encountered variant.
func (g *Group) computeStats() {
	if len(g.Variants) == 0 {
		return
	}
	minP := &g.Variants[0]
	minD := &g.Variants[0]
	total := 0
	for i := range g.Variants {
		v := &g.Variants[i]
		if v.Price < minP.Price {
			minP = v
		}
		if v.CreatedAt < minD.CreatedAt {
			minD = v
		}
		total += v.CountSales
	}
	g.MinPriceVariant = minP
	g.MinPrice = minP.Price
	g.MinDateVariant = minD
	g.MinDate = minD.CreatedAt
	g.TotalSales = total
}

// Groups returns all color groups in insertion order.
func (i *Index) Groups() []*Group {
	out := make([]*Group, len(i.groups))
	copy(out, i.groups)
	return out
}

// Len reports the number of color groups.
func (i *Index) Len() int {
	return len(i.groups)
}

// Bucket returns the groups indexed under a field value, in insertion order.
func (i *Index) Bucket(f Field, value string) []*Group {
	set := i.byField[f][value]
	out := make([]*Group, 0, len(set))
	for _, g := range i.groups {
		if _, ok := set[g]; ok {
			out = append(out, g)
		}
	}
	return out
}

func (i *Index) bucket(f Field, value string) groupSet {
	return i.byField[f][value]
}

func (i *Index) allGroups() groupSet {
	out := make(groupSet, len(i.groups))
	for _, g := range i.groups {
		out[g] = struct{}{}
	}
	return out
}
