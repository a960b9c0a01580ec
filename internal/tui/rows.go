package tui

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/menuboard/menuboard/internal/menu"
)

// menuRow is what the list holds. Its ID changes with the filter matches so
// highlighted and plain renderings of the same dish are cached apart.
type menuRow struct {
	menu.Row
	currency string
}

func (r menuRow) ID() string {
	var b strings.Builder
	if r.Kind == menu.RowDish {
		b.WriteString("d:")
		b.WriteString(r.Dish.ID)
	} else {
		b.WriteString("c:")
		b.WriteString(r.Category.ID)
	}
	for _, i := range r.Matched {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// String is the text copied to the clipboard for the row.
func (r menuRow) String() string {
	if r.Kind != menu.RowDish {
		return r.Title()
	}
	return r.Dish.Name + " " + menu.FormatPrice(r.Dish.Price, r.currency)
}

func toMenuRows(rows []menu.Row, currency string) []menuRow {
	out := make([]menuRow, len(rows))
	for i, r := range rows {
		out[i] = menuRow{Row: r, currency: currency}
	}
	return out
}

func renderMenuRow(r menuRow, _ int, selected bool, width int) string {
	if r.Kind != menu.RowDish {
		return renderCategory(r.Category)
	}

	d := r.Dish
	cursor := "  "
	nameStyle := dishStyle
	if selected {
		cursor = selectedStyle.Render("> ")
		nameStyle = selectedStyle
	}
	price := priceStyle.Render(menu.FormatPrice(d.Price, r.currency))
	if d.SoldOut {
		nameStyle = soldOutStyle
		price = soldOutStyle.Render("sold out")
	}

	name := highlight(d.Name, r.Matched, nameStyle)
	gap := width - lipgloss.Width(cursor) - lipgloss.Width(name) - lipgloss.Width(price)
	line := cursor + name + strings.Repeat(" ", max(gap, 1)) + price

	if details := dishDetails(d, r.currency); details != "" {
		line += "\n    " + detailStyle.Render(details)
	}
	return line
}

func renderCategory(c *menu.Category) string {
	title := categoryStyle.Render(strings.ToUpper(c.Name))
	if c.Description == "" {
		return title
	}
	return title + "\n" + detailStyle.Render(c.Description)
}

func dishDetails(d *menu.Dish, currency string) string {
	parts := make([]string, 0, len(d.Supplements)+1)
	if d.Description != "" {
		parts = append(parts, d.Description)
	}
	for _, s := range d.Supplements {
		parts = append(parts, "+ "+s.Name+" "+menu.FormatPrice(s.Price, currency))
	}
	return strings.Join(parts, " · ")
}

// highlight renders s with base, using matchStyle for the runes starting at
// the given byte offsets.
func highlight(s string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(s)
	}
	hits := make(map[int]bool, len(matched))
	for _, i := range matched {
		hits[i] = true
	}

	var b strings.Builder
	runStart, runMatched := 0, hits[0]
	flush := func(end int) {
		if end <= runStart {
			return
		}
		style := base
		if runMatched {
			style = matchStyle
		}
		b.WriteString(style.Render(s[runStart:end]))
	}
	for i := range s {
		if hits[i] != runMatched {
			flush(i)
			runStart, runMatched = i, hits[i]
		}
	}
	flush(len(s))
	return b.String()
}
