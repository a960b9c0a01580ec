package menu

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

type RowKind int

const (
	RowCategory RowKind = iota
	RowDish
)

// Row is one line of a rendered menu: either a category header or a dish.
// Rows point into the menu they were built from.
type Row struct {
	Kind     RowKind
	Category *Category
	Dish     *Dish

	// Matched holds the byte offsets in Title() of the runes that matched
	// the last filter query.
	Matched []int
}

// Title is the text a row is displayed and matched by.
func (r Row) Title() string {
	if r.Kind == RowDish && r.Dish != nil {
		return r.Dish.Name
	}
	if r.Category != nil {
		return r.Category.Name
	}
	return ""
}

// Rows flattens the menu: each category header followed by its dishes.
func (m *Menu) Rows() []Row {
	rows := make([]Row, 0, len(m.Categories)+m.DishCount())
	for ci := range m.Categories {
		c := &m.Categories[ci]
		rows = append(rows, Row{Kind: RowCategory, Category: c})
		for di := range c.Dishes {
			rows = append(rows, Row{Kind: RowDish, Category: c, Dish: &c.Dishes[di]})
		}
	}
	return rows
}

type dishSource struct {
	rows []Row
	idx  []int
}

func (s dishSource) String(i int) string { return s.rows[s.idx[i]].Title() }

func (s dishSource) Len() int { return len(s.idx) }

// Filter keeps the dish rows whose name fuzzy-matches query, in menu order.
// A category header is kept when at least one of its dishes matched. An
// empty query returns rows unchanged.
func Filter(rows []Row, query string) []Row {
	if query == "" {
		return rows
	}

	src := dishSource{rows: rows}
	for i, r := range rows {
		if r.Kind == RowDish {
			src.idx = append(src.idx, i)
		}
	}

	matched := make(map[int][]int)
	for _, m := range fuzzy.FindFrom(query, src) {
		matched[src.idx[m.Index]] = m.MatchedIndexes
	}
	if len(matched) == 0 {
		return nil
	}

	keep := make([]int, 0, len(matched))
	for i := range matched {
		keep = append(keep, i)
	}
	slices.Sort(keep)

	out := make([]Row, 0, len(keep)*2)
	var lastCategory *Category
	for _, i := range keep {
		r := rows[i]
		if r.Category != nil && r.Category != lastCategory {
			out = append(out, Row{Kind: RowCategory, Category: r.Category})
			lastCategory = r.Category
		}
		r.Matched = matched[i]
		out = append(out, r)
	}
	return out
}
