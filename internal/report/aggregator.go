package report

import (
	"sort"
	"strconv"

	"github.com/garyjia/stocklist/internal/models"
)

// GroupKey selects the grouping field for a tally.
type GroupKey int

const (
	GroupByType GroupKey = iota
	GroupByPattern
)

// TallyTable holds the summed quantities for one group value. Colors are
// sorted lexicographically, sizes by sortSizes.
type TallyTable struct {
	Group  string
	Colors []string
	Sizes  []string
	cells  map[string]map[string]int
}

// Quantity returns the summed quantity for a (color, size) cell. A
// combination absent from the input reports 0, not an omission.
func (t *TallyTable) Quantity(color, size string) int {
	return t.cells[color][size]
}

// RowTotal sums one color's quantities across all sizes, including sizes
// that may later be dropped from display.
func (t *TallyTable) RowTotal(color string) int {
	total := 0
	for _, size := range t.Sizes {
		total += t.cells[color][size]
	}
	return total
}

// GrandTotal sums every cell of the tally.
func (t *TallyTable) GrandTotal() int {
	total := 0
	for _, color := range t.Colors {
		total += t.RowTotal(color)
	}
	return total
}

// Aggregate groups records by the chosen key and sums quantities per
// (color, size) cell. Pure function over its inputs; the returned tables
// are sorted by group name.
func Aggregate(records []models.Record, key GroupKey) []TallyTable {
	byGroup := make(map[string][]models.Record)
	for _, rec := range records {
		group := rec.Type
		if key == GroupByPattern {
			group = rec.Pattern
		}
		byGroup[group] = append(byGroup[group], rec)
	}

	groups := make([]string, 0, len(byGroup))
	for group := range byGroup {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	tables := make([]TallyTable, 0, len(groups))
	for _, group := range groups {
		tables = append(tables, tally(group, byGroup[group]))
	}
	return tables
}

func tally(group string, records []models.Record) TallyTable {
	colorSet := make(map[string]bool)
	sizeSet := make(map[string]bool)
	cells := make(map[string]map[string]int)
	for _, rec := range records {
		colorSet[rec.Color] = true
		sizeSet[rec.Size] = true
		if cells[rec.Color] == nil {
			cells[rec.Color] = make(map[string]int)
		}
		cells[rec.Color][rec.Size] += rec.Quantity
	}

	colors := setToSlice(colorSet)
	sort.Strings(colors)

	return TallyTable{
		Group:  group,
		Colors: colors,
		Sizes:  sortSizes(setToSlice(sizeSet)),
		cells:  cells,
	}
}

func setToSlice(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

// sortSizes orders sizes numerically when every size parses as a number,
// lexicographically otherwise. The policy is decided once for the whole
// list, never per element.
func sortSizes(sizes []string) []string {
	sorted := append([]string(nil), sizes...)

	numeric := true
	values := make(map[string]float64, len(sorted))
	for _, s := range sorted {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			numeric = false
			break
		}
		values[s] = v
	}

	if numeric {
		sort.SliceStable(sorted, func(i, j int) bool {
			return values[sorted[i]] < values[sorted[j]]
		})
	} else {
		sort.Strings(sorted)
	}
	return sorted
}
