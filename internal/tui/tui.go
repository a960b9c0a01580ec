// Package tui is the terminal menu board: a header, the windowed list of menu
// rows and a status line.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/menuboard/menuboard/internal/menu"
	"github.com/menuboard/menuboard/internal/tui/exp/list"
)

// MenuReloadedMsg carries a menu read again from disk after it changed.
type MenuReloadedMsg struct {
	Menu *menu.Menu
	Err  error
}

type copiedMsg struct {
	text string
	err  error
}

var clipboardWrite = clipboard.WriteAll

type Options struct {
	// Source is shown in the header, usually the menu file path.
	Source     string
	ItemHeight int
	Overscan   int
	Scrollbar  bool
	Wrap       bool
}

type appModel struct {
	width, height int

	opts     Options
	menu     *menu.Menu
	rows     []menu.Row
	matches  int
	loadedAt time.Time

	list      list.List[menuRow]
	filter    textinput.Model
	filtering bool
	keyMap    KeyMap
	help      help.Model

	status    string
	statusErr bool
}

// New builds the board for m.
func New(m *menu.Menu, opts Options) (tea.Model, error) {
	return newAppModel(m, opts)
}

func newAppModel(m *menu.Menu, opts Options) (*appModel, error) {
	if m == nil {
		m = &menu.Menu{}
	}
	opts.ItemHeight = max(opts.ItemHeight, 1)
	keyMap := DefaultKeyMap()

	listOpts := []list.ListOption{
		list.WithItemHeight(opts.ItemHeight),
		list.WithOverscan(opts.Overscan),
		list.WithKeyMap(keyMap.List),
		list.WithEnableMouse(),
	}
	if opts.Scrollbar {
		listOpts = append(listOpts, list.WithScrollbar())
	}
	if opts.Wrap {
		listOpts = append(listOpts, list.WithWrapNavigation())
	}
	rows := m.Rows()
	l, err := list.New(toMenuRows(rows, m.Currency), renderMenuRow, listOpts...)
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search dishes"

	return &appModel{
		opts:     opts,
		menu:     m,
		rows:     rows,
		loadedAt: time.Now(),
		list:     l,
		filter:   ti,
		keyMap:   keyMap,
		help:     help.New(),
	}, nil
}

func (a *appModel) Init() tea.Cmd {
	return a.list.Init()
}

func (a *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.resize()
	case MenuReloadedMsg:
		return a, a.reload(msg)
	case copiedMsg:
		if msg.err != nil {
			a.setStatus("copy failed: "+msg.err.Error(), true)
		} else {
			a.setStatus("copied "+msg.text, false)
		}
		return a, nil
	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	case tea.MouseClickMsg:
		msg.Y -= a.listTop()
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	case tea.KeyPressMsg:
		if a.filtering {
			return a, a.updateFilter(msg)
		}
		switch {
		case key.Matches(msg, a.keyMap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keyMap.Filter):
			a.filtering = true
			return a, tea.Batch(a.filter.Focus(), a.resize())
		case key.Matches(msg, a.keyMap.ClearFilter):
			return a, a.clearFilter()
		case key.Matches(msg, a.keyMap.Copy):
			return a, a.copySelected()
		}
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *appModel) updateFilter(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return tea.Quit
	case key.Matches(msg, a.keyMap.ClearFilter):
		return a.clearFilter()
	case key.Matches(msg, a.keyMap.AcceptFilter):
		a.filtering = false
		a.filter.Blur()
		return a.resize()
	case msg.String() == "up", msg.String() == "down":
		var cmd tea.Cmd
		a.list, cmd = a.list.Update(msg)
		return cmd
	}

	prev := a.filter.Value()
	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	if a.filter.Value() != prev {
		return tea.Batch(cmd, a.applyFilter(true))
	}
	return cmd
}

func (a *appModel) clearFilter() tea.Cmd {
	wasFiltered := a.filter.Value() != ""
	a.filtering = false
	a.filter.Blur()
	a.filter.SetValue("")
	if !wasFiltered {
		return a.resize()
	}
	return tea.Batch(a.applyFilter(true), a.resize())
}

// applyFilter replaces the list items with the rows matching the current
// query.
func (a *appModel) applyFilter(toTop bool) tea.Cmd {
	rows := menu.Filter(a.rows, a.filter.Value())
	a.matches = 0
	for _, r := range rows {
		if r.Kind == menu.RowDish {
			a.matches++
		}
	}
	cmds := []tea.Cmd{a.list.SetItems(toMenuRows(rows, a.menu.Currency))}
	if toTop {
		cmds = append(cmds, a.list.GoToTop())
	}
	return tea.Batch(cmds...)
}

func (a *appModel) reload(msg MenuReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		slog.Error("Failed to reload menu", "source", a.opts.Source, "error", msg.Err)
		a.setStatus("reload failed: "+msg.Err.Error(), true)
		return nil
	}
	a.menu = msg.Menu
	a.rows = msg.Menu.Rows()
	a.loadedAt = time.Now()
	// Same IDs may now carry different names or prices.
	a.list.ClearCache()
	a.setStatus("menu reloaded", false)
	slog.Info("Menu reloaded", "source", a.opts.Source, "dishes", msg.Menu.DishCount())
	return a.applyFilter(false)
}

func (a *appModel) copySelected() tea.Cmd {
	row, ok := a.list.SelectedItem()
	if !ok {
		return nil
	}
	text := row.String()
	return func() tea.Msg {
		return copiedMsg{text: text, err: clipboardWrite(text)}
	}
}

func (a *appModel) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func (a *appModel) resize() tea.Cmd {
	a.filter.SetWidth(max(a.width-4, 1))
	return a.list.SetSize(a.width, a.listHeight())
}

// listHeight is what is left once the header, the status line, the help
// line and, when shown, the filter line are placed.
func (a *appModel) listHeight() int {
	chrome := 3
	if a.showFilterLine() {
		chrome++
	}
	return max(a.height-chrome, 0)
}

// listTop is the first screen line of the list.
func (a *appModel) listTop() int {
	if a.showFilterLine() {
		return 2
	}
	return 1
}

func (a *appModel) showFilterLine() bool {
	return a.filtering || a.filter.Value() != ""
}

func (a *appModel) View() tea.View {
	v := tea.NewView(a.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (a *appModel) render() string {
	if a.width <= 0 || a.height <= 0 {
		return ""
	}
	parts := []string{a.header()}
	if a.showFilterLine() {
		parts = append(parts, a.filter.View())
	}
	parts = append(parts, a.list.View(), a.statusLine(), a.helpLine())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *appModel) header() string {
	name := a.menu.Name
	if name == "" {
		name = "Menu"
	}
	counts := fmt.Sprintf("%s categories · %s dishes",
		humanize.Comma(int64(len(a.menu.Categories))),
		humanize.Comma(int64(a.menu.DishCount())))
	if a.filter.Value() != "" {
		counts = fmt.Sprintf("%s of %s dishes match",
			humanize.Comma(int64(a.matches)),
			humanize.Comma(int64(a.menu.DishCount())))
	}
	line := headerStyle.Render(name) + "  " + countStyle.Render(counts)
	if a.opts.Source != "" {
		line += "  " + ruleStyle.Render(a.opts.Source)
	}
	return ansi.Truncate(line, a.width, "…")
}

func (a *appModel) statusLine() string {
	var arrows strings.Builder
	if a.list.IsAtTop() {
		arrows.WriteString(" ")
	} else {
		arrows.WriteString(arrowStyle.Render("▲"))
	}
	if a.list.IsAtBottom() {
		arrows.WriteString(" ")
	} else {
		arrows.WriteString(arrowStyle.Render("▼"))
	}

	position := "no matches"
	if n := a.list.Len(); n > 0 {
		position = fmt.Sprintf("%s/%s", humanize.Comma(int64(a.list.SelectedIndex()+1)), humanize.Comma(int64(n)))
	}
	line := arrows.String() + " " + statusStyle.Render(position)

	if a.status != "" {
		style := statusStyle
		if a.statusErr {
			style = errorStyle
		}
		line += "  " + style.Render(a.status)
	} else {
		line += "  " + statusStyle.Render("updated "+humanize.Time(a.loadedAt))
	}
	return ansi.Truncate(line, a.width, "…")
}

func (a *appModel) helpLine() string {
	return ansi.Truncate(a.help.View(a.keyMap), a.width, "…")
}
