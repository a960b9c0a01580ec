package list

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/menuboard/menuboard/internal/window"
	"github.com/zeebo/xxh3"
)

// Identifiable items keep their cached rendering when the list is given a
// new set of items that still holds them at the same index.
type Identifiable interface {
	ID() string
}

// RenderFunc renders one item. The result is cut or padded to the list width
// and to the item height, so it does not have to be exact.
type RenderFunc[T any] func(item T, index int, selected bool, width int) string

// SelectionChangedMsg is emitted when the selected item changes.
type SelectionChangedMsg struct {
	Index int
}

type List[T any] interface {
	Init() tea.Cmd
	Update(tea.Msg) (List[T], tea.Cmd)
	View() string

	SetSize(width, height int) tea.Cmd
	GetSize() (int, int)
	Focus() tea.Cmd
	Blur() tea.Cmd
	IsFocused() bool

	MoveUp(int) tea.Cmd
	MoveDown(int) tea.Cmd
	GoToTop() tea.Cmd
	GoToBottom() tea.Cmd
	SelectItemAbove() tea.Cmd
	SelectItemBelow() tea.Cmd
	SetSelected(int) tea.Cmd
	SelectedIndex() int
	SelectedItem() (T, bool)
	SetItems([]T) tea.Cmd
	Len() int
	ClearCache()

	IsAtTop() bool
	IsAtBottom() bool
	Window() *window.List[T]
}

const (
	ItemNotFound              = -1
	ViewportDefaultScrollSize = 2

	maxCachedRows = 1024
)

type confOptions struct {
	width, height int
	itemHeight    int
	overscan      int
	// if you are at the last item and go down it will wrap to the top
	wrap        bool
	keyMap      KeyMap
	focused     bool
	enableMouse bool
	scrollbar   bool
}

type list[T any] struct {
	*confOptions

	win      *window.List[T]
	render   RenderFunc[T]
	selected int

	// rendered rows of the visible window, keyed by item identity
	cache map[uint64][]string
}

type ListOption func(*confOptions)

// WithSize sets the size of the list.
func WithSize(width, height int) ListOption {
	return func(l *confOptions) {
		l.width = width
		l.height = height
	}
}

// WithItemHeight sets the number of lines every item occupies.
func WithItemHeight(lines int) ListOption {
	return func(l *confOptions) {
		l.itemHeight = lines
	}
}

// WithOverscan sets how many items are rendered past each edge of the
// viewport.
func WithOverscan(n int) ListOption {
	return func(l *confOptions) {
		l.overscan = n
	}
}

func WithKeyMap(keyMap KeyMap) ListOption {
	return func(l *confOptions) {
		l.keyMap = keyMap
	}
}

func WithWrapNavigation() ListOption {
	return func(l *confOptions) {
		l.wrap = true
	}
}

func WithFocus(focus bool) ListOption {
	return func(l *confOptions) {
		l.focused = focus
	}
}

func WithEnableMouse() ListOption {
	return func(l *confOptions) {
		l.enableMouse = true
	}
}

// WithScrollbar reserves the last column for a scrollbar.
func WithScrollbar() ListOption {
	return func(l *confOptions) {
		l.scrollbar = true
	}
}

// New builds a list over items. It fails when the options describe an
// impossible geometry, such as a zero item height.
func New[T any](items []T, render RenderFunc[T], opts ...ListOption) (List[T], error) {
	conf := &confOptions{
		itemHeight: 1,
		keyMap:     DefaultKeyMap(),
		focused:    true,
	}
	for _, opt := range opts {
		opt(conf)
	}

	// The terminal cannot show half lines, so the host clamps over-scroll
	// itself rather than leaving blank space below the last item.
	win, err := window.FromSlice(items, float64(conf.itemHeight), float64(max(conf.height, 0)), conf.overscan, window.WithClampedScroll())
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	l := &list[T]{
		confOptions: conf,
		win:         win,
		render:      render,
		selected:    ItemNotFound,
		cache:       make(map[uint64][]string),
	}
	if len(items) > 0 {
		l.selected = 0
	}
	return l, nil
}

// Init implements List.
func (l *list[T]) Init() tea.Cmd {
	return nil
}

// Update implements List.
func (l *list[T]) Update(msg tea.Msg) (List[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseWheelMsg:
		if l.enableMouse {
			return l, l.handleMouseWheel(msg)
		}
		return l, nil
	case tea.MouseClickMsg:
		if l.enableMouse && msg.Button == tea.MouseLeft {
			return l, l.handleMouseClick(msg.Y)
		}
		return l, nil
	case tea.KeyPressMsg:
		if !l.focused {
			return l, nil
		}
		switch {
		case key.Matches(msg, l.keyMap.Down):
			return l, l.SelectItemBelow()
		case key.Matches(msg, l.keyMap.Up):
			return l, l.SelectItemAbove()
		case key.Matches(msg, l.keyMap.HalfPageDown):
			return l, l.MoveDown(l.height / 2)
		case key.Matches(msg, l.keyMap.HalfPageUp):
			return l, l.MoveUp(l.height / 2)
		case key.Matches(msg, l.keyMap.PageDown):
			return l, l.MoveDown(l.height)
		case key.Matches(msg, l.keyMap.PageUp):
			return l, l.MoveUp(l.height)
		case key.Matches(msg, l.keyMap.End):
			return l, l.GoToBottom()
		case key.Matches(msg, l.keyMap.Home):
			return l, l.GoToTop()
		}
	}
	return l, nil
}

func (l *list[T]) handleMouseWheel(msg tea.MouseWheelMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseWheelDown:
		return l.MoveDown(ViewportDefaultScrollSize)
	case tea.MouseWheelUp:
		return l.MoveUp(ViewportDefaultScrollSize)
	}
	return nil
}

// handleMouseClick selects the item under line y, counted from the top of
// the list.
func (l *list[T]) handleMouseClick(y int) tea.Cmd {
	i, ok := l.win.IndexAt(float64(y))
	if !ok {
		return nil
	}
	return l.SetSelected(i)
}

// View implements List. Only the entries of the current window are
// rendered; every other item is never touched.
func (l *list[T]) View() string {
	if l.height <= 0 || l.width <= 0 {
		return ""
	}
	width := l.contentWidth()
	lines := make([]string, l.height)
	offset := int(math.Floor(l.win.Offset()))

	for e := range l.win.VisibleEntries() {
		top := int(e.OffsetY) - offset
		if top >= l.height || top+l.itemHeight <= 0 {
			continue
		}
		for i, line := range l.renderRow(e, width) {
			if y := top + i; y >= 0 && y < l.height {
				lines[y] = line
			}
		}
	}

	blank := strings.Repeat(" ", width)
	for i := range lines {
		if lines[i] == "" {
			lines[i] = blank
		}
	}

	if l.scrollbar {
		bar := l.scrollbarColumn()
		for i := range lines {
			lines[i] += bar[i]
		}
	}
	return strings.Join(lines, "\n")
}

func (l *list[T]) contentWidth() int {
	if l.scrollbar {
		return max(l.width-1, 0)
	}
	return l.width
}

func (l *list[T]) renderRow(e window.Entry[T], width int) []string {
	selected := e.Index == l.selected
	key := l.cacheKey(e, selected, width)
	if rendered, ok := l.cache[key]; ok {
		return rendered
	}
	if len(l.cache) >= maxCachedRows {
		clear(l.cache)
	}
	rendered := fitLines(l.render(e.Item, e.Index, selected, width), width, l.itemHeight)
	l.cache[key] = rendered
	return rendered
}

// cacheKey identifies a rendering by index, selection and width. Identifiable
// items add their ID, so a different item landing on a cached index renders
// again, and two items sharing an ID never share a rendering.
func (l *list[T]) cacheKey(e window.Entry[T], selected bool, width int) uint64 {
	key := strconv.Itoa(e.Index) + "\x00" + strconv.FormatBool(selected) + "\x00" + strconv.Itoa(width)
	if i, ok := any(e.Item).(Identifiable); ok {
		key += "\x00" + i.ID()
	}
	return xxh3.HashString(key)
}

// fitLines cuts or pads s to exactly height lines of exactly width cells.
func fitLines(s string, width, height int) []string {
	src := strings.Split(s, "\n")
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(src) {
			line = ansi.Truncate(src[i], width, "…")
		}
		if w := ansi.StringWidth(line); w < width {
			line += strings.Repeat(" ", width-w)
		}
		out[i] = line
	}
	return out
}

var (
	scrollTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3943"))
	scrollThumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B50FF"))
)

func (l *list[T]) scrollbarColumn() []string {
	bar := make([]string, l.height)
	extent := int(math.Ceil(l.win.TotalExtent()))
	if extent <= l.height {
		for i := range bar {
			bar[i] = " "
		}
		return bar
	}

	thumb := min(max(1, l.height*l.height/extent), l.height)
	pos := int(math.Round(l.win.Progress() * float64(l.height-thumb)))
	for i := range bar {
		if i >= pos && i < pos+thumb {
			bar[i] = scrollThumbStyle.Render("┃")
		} else {
			bar[i] = scrollTrackStyle.Render("│")
		}
	}
	return bar
}

// SetSize implements List.
func (l *list[T]) SetSize(width, height int) tea.Cmd {
	if width != l.width {
		clear(l.cache)
	}
	l.width = width
	l.height = max(height, 0)
	if err := l.win.SetViewportHeight(float64(l.height)); err != nil {
		return nil
	}
	if l.selected >= 0 {
		l.win.ScrollIntoView(l.selected)
	}
	return nil
}

// GetSize implements List.
func (l *list[T]) GetSize() (int, int) {
	return l.width, l.height
}

// Focus implements List.
func (l *list[T]) Focus() tea.Cmd {
	l.focused = true
	clear(l.cache)
	return nil
}

// Blur implements List.
func (l *list[T]) Blur() tea.Cmd {
	l.focused = false
	clear(l.cache)
	return nil
}

// IsFocused implements List.
func (l *list[T]) IsFocused() bool {
	return l.focused
}

// MoveDown implements List. It scrolls by n lines and keeps the selection on
// a visible item.
func (l *list[T]) MoveDown(n int) tea.Cmd {
	l.win.ScrollBy(float64(n))
	return l.changeSelectionWhenScrolling()
}

// MoveUp implements List.
func (l *list[T]) MoveUp(n int) tea.Cmd {
	l.win.ScrollBy(-float64(n))
	return l.changeSelectionWhenScrolling()
}

func (l *list[T]) changeSelectionWhenScrolling() tea.Cmd {
	if l.selected < 0 {
		return nil
	}
	visible := l.win.VisibleRange()
	switch {
	case visible.Empty(), visible.Contains(l.selected):
		return nil
	case l.selected < visible.Start:
		return l.setSelected(visible.Start)
	default:
		return l.setSelected(visible.End)
	}
}

// GoToTop implements List.
func (l *list[T]) GoToTop() tea.Cmd {
	l.win.ScrollToTop()
	if l.win.Len() == 0 {
		return nil
	}
	return l.setSelected(0)
}

// GoToBottom implements List.
func (l *list[T]) GoToBottom() tea.Cmd {
	l.win.ScrollToBottom()
	if l.win.Len() == 0 {
		return nil
	}
	return l.setSelected(l.win.Len() - 1)
}

// SelectItemAbove implements List.
func (l *list[T]) SelectItemAbove() tea.Cmd {
	if l.selected < 0 {
		return nil
	}
	next := l.selected - 1
	if next < 0 {
		if !l.wrap {
			return nil
		}
		next = l.win.Len() - 1
	}
	cmd := l.setSelected(next)
	l.win.ScrollIntoView(next)
	return cmd
}

// SelectItemBelow implements List.
func (l *list[T]) SelectItemBelow() tea.Cmd {
	if l.selected < 0 {
		return nil
	}
	next := l.selected + 1
	if next >= l.win.Len() {
		if !l.wrap {
			return nil
		}
		next = 0
	}
	cmd := l.setSelected(next)
	l.win.ScrollIntoView(next)
	return cmd
}

// SetSelected implements List. Out of range indices select nothing.
func (l *list[T]) SetSelected(index int) tea.Cmd {
	if index < 0 || index >= l.win.Len() {
		return l.setSelected(ItemNotFound)
	}
	cmd := l.setSelected(index)
	l.win.ScrollIntoView(index)
	return cmd
}

func (l *list[T]) setSelected(index int) tea.Cmd {
	if index == l.selected {
		return nil
	}
	l.selected = index
	return func() tea.Msg {
		return SelectionChangedMsg{Index: index}
	}
}

// SelectedIndex implements List.
func (l *list[T]) SelectedIndex() int {
	return l.selected
}

// SelectedItem implements List.
func (l *list[T]) SelectedItem() (T, bool) {
	return l.win.Item(l.selected)
}

// SetItems implements List. The scroll position is kept where the new items
// allow it and the selection is clamped to the new length.
func (l *list[T]) SetItems(items []T) tea.Cmd {
	if len(items) == 0 || !isIdentifiable(items[0]) {
		clear(l.cache)
	}
	if err := l.win.SetSource(window.Slice[T](items)); err != nil {
		return nil
	}
	switch {
	case len(items) == 0:
		return l.setSelected(ItemNotFound)
	case l.selected < 0:
		return l.setSelected(0)
	case l.selected >= len(items):
		return l.setSelected(len(items) - 1)
	}
	return nil
}

func isIdentifiable(item any) bool {
	_, ok := item.(Identifiable)
	return ok
}

// Len implements List.
func (l *list[T]) Len() int {
	return l.win.Len()
}

// ClearCache drops every rendered row, e.g. after the items changed in
// place.
func (l *list[T]) ClearCache() {
	clear(l.cache)
}

// IsAtTop implements List.
func (l *list[T]) IsAtTop() bool {
	return l.win.IsAtTop()
}

// IsAtBottom implements List.
func (l *list[T]) IsAtBottom() bool {
	return l.win.IsAtBottom()
}

// Window implements List.
func (l *list[T]) Window() *window.List[T] {
	return l.win
}
