package menu

import (
	"fmt"
	"strings"
)

// Markdown writes the menu as a markdown document: one heading per
// category, one list item per dish. Names and descriptions are escaped so
// they always render as plain text.
func (m *Menu) Markdown() string {
	var b strings.Builder
	name := m.Name
	if name == "" {
		name = "Menu"
	}
	fmt.Fprintf(&b, "# %s\n", escapeMarkdown(name))

	for _, c := range m.Categories {
		fmt.Fprintf(&b, "\n## %s\n\n", escapeMarkdown(c.Name))
		if c.Description != "" {
			fmt.Fprintf(&b, "_%s_\n\n", escapeMarkdown(c.Description))
		}
		for _, d := range c.Dishes {
			dish := escapeMarkdown(d.Name)
			if d.SoldOut {
				fmt.Fprintf(&b, "- ~~%s~~ sold out\n", dish)
			} else {
				fmt.Fprintf(&b, "- %s **%s**\n", dish, FormatPrice(d.Price, m.Currency))
			}
			if d.Description != "" {
				fmt.Fprintf(&b, "  %s\n", escapeMarkdown(d.Description))
			}
			for _, s := range d.Supplements {
				fmt.Fprintf(&b, "  - + %s %s\n", escapeMarkdown(s.Name), FormatPrice(s.Price, m.Currency))
			}
		}
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
)

// escapeMarkdown makes s literal inline text on a single line, including
// leading list bullets and ordered list numbers.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(strings.Join(strings.Fields(s), " "))
	if s == "" {
		return s
	}
	switch s[0] {
	case '-', '+':
		return `\` + s
	}
	if i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }); i > 0 && (s[i] == '.' || s[i] == ')') {
		return s[:i] + `\` + s[i:]
	}
	return s
}
