package list

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/menuboard/menuboard/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item-%02d", i)
	}
	return items
}

func renderString(item string, _ int, selected bool, _ int) string {
	if selected {
		return "> " + item
	}
	return "  " + item
}

func newTestList(t *testing.T, n int, opts ...ListOption) *list[string] {
	t.Helper()
	opts = append([]ListOption{WithSize(10, 5)}, opts...)
	l, err := New(makeItems(n), renderString, opts...)
	require.NoError(t, err)
	return l.(*list[string])
}

func viewLines[T any](l List[T]) []string {
	lines := strings.Split(ansi.Strip(l.View()), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

func execCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("selects the first item", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20)
		assert.Equal(t, 0, l.SelectedIndex())
		item, ok := l.SelectedItem()
		require.True(t, ok)
		assert.Equal(t, "item-00", item)
		assert.True(t, l.IsAtTop())
		assert.False(t, l.IsAtBottom())
	})

	t.Run("empty list selects nothing", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 0)
		assert.Equal(t, ItemNotFound, l.SelectedIndex())
		_, ok := l.SelectedItem()
		assert.False(t, ok)
		assert.Nil(t, l.GoToBottom())
		assert.Equal(t, []string{"", "", "", "", ""}, viewLines(l))
	})

	t.Run("zero item height is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := New(makeItems(3), renderString, WithItemHeight(0))
		require.ErrorIs(t, err, window.ErrInvalidConfiguration)
	})

	t.Run("negative overscan is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := New(makeItems(3), renderString, WithOverscan(-1))
		require.ErrorIs(t, err, window.ErrInvalidConfiguration)
	})
}

func TestView(t *testing.T) {
	t.Parallel()

	t.Run("renders the first page", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20)
		assert.Equal(t, []string{
			"> item-00",
			"  item-01",
			"  item-02",
			"  item-03",
			"  item-04",
		}, viewLines(l))
	})

	t.Run("every line has the list width", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20)
		for _, line := range strings.Split(l.View(), "\n") {
			assert.Equal(t, 10, ansi.StringWidth(line))
		}
	})

	t.Run("long rows are truncated", func(t *testing.T) {
		t.Parallel()
		l, err := New([]string{"a very long menu entry"}, renderString, WithSize(10, 2))
		require.NoError(t, err)
		lines := strings.Split(l.View(), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, 10, ansi.StringWidth(lines[0]))
		assert.True(t, strings.HasSuffix(lines[0], "…"))
	})

	t.Run("zero size renders nothing", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20, WithSize(0, 0))
		assert.Empty(t, l.View())
	})

	t.Run("multi line items are clipped at the top", func(t *testing.T) {
		t.Parallel()
		render := func(item string, _ int, _ bool, _ int) string {
			return item + "\n  detail"
		}
		l, err := New(makeItems(10), render, WithSize(12, 5), WithItemHeight(2))
		require.NoError(t, err)

		l.MoveDown(1)
		assert.Equal(t, []string{
			"  detail",
			"item-01",
			"  detail",
			"item-02",
			"  detail",
		}, viewLines(l))
	})

	t.Run("short renders are padded to the item height", func(t *testing.T) {
		t.Parallel()
		l, err := New(makeItems(3), renderString, WithSize(10, 6), WithItemHeight(2))
		require.NoError(t, err)
		assert.Equal(t, []string{
			"> item-00",
			"",
			"  item-01",
			"",
			"  item-02",
			"",
		}, viewLines(l))
	})
}

func TestViewGolden(t *testing.T) {
	t.Parallel()

	t.Run("multi line rows", func(t *testing.T) {
		t.Parallel()
		render := func(item string, _ int, _ bool, _ int) string {
			return item + "\n  detail"
		}
		l, err := New(makeItems(10), render, WithSize(12, 5), WithItemHeight(2))
		require.NoError(t, err)
		l.MoveDown(1)
		golden.RequireEqual(t, []byte(l.View()))
	})

	t.Run("scrollbar at top", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20, WithScrollbar())
		golden.RequireEqual(t, []byte(ansi.Strip(l.View())))
	})

	t.Run("scrollbar at bottom", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20, WithScrollbar())
		l.GoToBottom()
		golden.RequireEqual(t, []byte(ansi.Strip(l.View())))
	})
}

func TestViewOnlyRendersTheWindow(t *testing.T) {
	t.Parallel()

	var calls int
	render := func(item string, i int, selected bool, w int) string {
		calls++
		return renderString(item, i, selected, w)
	}
	l, err := New(make([]string, 100_000), render, WithSize(20, 5))
	require.NoError(t, err)

	_ = l.View()
	assert.LessOrEqual(t, calls, 6)

	l.MoveDown(50_000)
	calls = 0
	_ = l.View()
	assert.LessOrEqual(t, calls, 6)
}

type idItem struct {
	id string
}

func (i idItem) ID() string { return i.id }

func TestViewCachesIdentifiableRows(t *testing.T) {
	t.Parallel()

	var calls int
	render := func(item idItem, _ int, _ bool, _ int) string {
		calls++
		return item.id
	}
	items := []idItem{{"a"}, {"b"}, {"c"}}
	l, err := New(items, render, WithSize(5, 3))
	require.NoError(t, err)

	_ = l.View()
	require.Equal(t, 3, calls)
	_ = l.View()
	assert.Equal(t, 3, calls, "second frame is served from the cache")

	l.SetItems([]idItem{{"a"}, {"d"}, {"c"}})
	_ = l.View()
	assert.Equal(t, 4, calls, "only the replaced row renders again")

	l.SetItems([]idItem{{"d"}, {"c"}})
	_ = l.View()
	assert.Equal(t, 6, calls, "rows that moved render again")

	l.ClearCache()
	_ = l.View()
	assert.Equal(t, 8, calls)
}

type namedItem struct {
	id, name string
}

func (i namedItem) ID() string { return i.id }

func TestViewSharedIDsRenderApart(t *testing.T) {
	t.Parallel()

	render := func(item namedItem, _ int, _ bool, _ int) string {
		return item.name
	}
	items := []namedItem{
		{id: "1", name: "Onion Soup"},
		{id: "1", name: "Steak Frites"},
		{id: "1", name: "Creme Brulee"},
	}
	l, err := New(items, render, WithSize(14, 3))
	require.NoError(t, err)

	assert.Equal(t, []string{"Onion Soup", "Steak Frites", "Creme Brulee"}, viewLines(l))
}

func TestSelection(t *testing.T) {
	t.Parallel()

	t.Run("moving below the viewport scrolls it", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20)
		for range 5 {
			l.SelectItemBelow()
		}
		assert.Equal(t, 5, l.SelectedIndex())
		assert.Equal(t, 1.0, l.Window().Offset())
		assert.Equal(t, []string{
			"  item-01",
			"  item-02",
			"  item-03",
			"  item-04",
			"> item-05",
		}, viewLines(l))
	})

	t.Run("emits selection changes", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20)
		msg := execCmd(l.SelectItemBelow())
		assert.Equal(t, SelectionChangedMsg{Index: 1}, msg)
		assert.Nil(t, l.SetSelected(1), "same selection emits nothing")
	})

	t.Run("stops at the edges without wrap", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 3)
		assert.Nil(t, l.SelectItemAbove())
		l.SetSelected(2)
		assert.Nil(t, l.SelectItemBelow())
		assert.Equal(t, 2, l.SelectedIndex())
	})

	t.Run("wraps around", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20, WithWrapNavigation())
		l.SelectItemAbove()
		assert.Equal(t, 19, l.SelectedIndex())
		assert.True(t, l.IsAtBottom())
		l.SelectItemBelow()
		assert.Equal(t, 0, l.SelectedIndex())
		assert.True(t, l.IsAtTop())
	})

	t.Run("set selected out of range clears it", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 5)
		l.SetSelected(9)
		assert.Equal(t, ItemNotFound, l.SelectedIndex())
		assert.Nil(t, l.SelectItemBelow())
	})
}

func TestScrolling(t *testing.T) {
	t.Parallel()

	l := newTestList(t, 20)
	l.SetSelected(5)
	require.Equal(t, 1.0, l.Window().Offset())

	l.MoveDown(3)
	assert.Equal(t, 4.0, l.Window().Offset())
	assert.Equal(t, 5, l.SelectedIndex(), "selection still visible")

	msg := execCmd(l.MoveDown(100))
	assert.Equal(t, 15.0, l.Window().Offset(), "scrolling stops at the last page")
	assert.Equal(t, SelectionChangedMsg{Index: 15}, msg, "selection follows the viewport")
	assert.True(t, l.IsAtBottom())

	l.MoveUp(100)
	assert.Equal(t, 0.0, l.Window().Offset())
	assert.Equal(t, 4, l.SelectedIndex())
	assert.True(t, l.IsAtTop())

	l.GoToBottom()
	assert.Equal(t, 19, l.SelectedIndex())
	assert.Equal(t, 15.0, l.Window().Offset())
	assert.Equal(t, "> item-19", viewLines(l)[4])

	l.GoToTop()
	assert.Equal(t, 0, l.SelectedIndex())
	assert.Equal(t, 0.0, l.Window().Offset())
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("keys", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20)
		var m List[string] = l

		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		assert.Equal(t, 1, m.SelectedIndex())
		m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
		assert.Equal(t, 2, m.SelectedIndex())
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
		assert.Equal(t, 1, m.SelectedIndex())
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
		assert.Equal(t, 19, m.SelectedIndex())
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyHome})
		assert.Equal(t, 0, m.SelectedIndex())
		m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyPgDown})
		assert.Equal(t, 5.0, m.Window().Offset())
	})

	t.Run("keys are ignored when blurred", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20)
		l.Blur()
		assert.False(t, l.IsFocused())
		l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		assert.Equal(t, 0, l.SelectedIndex())
		l.Focus()
		assert.True(t, l.IsFocused())
	})

	t.Run("mouse wheel scrolls when enabled", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20, WithEnableMouse())
		l.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
		assert.Equal(t, float64(ViewportDefaultScrollSize), l.Window().Offset())
		l.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
		assert.Zero(t, l.Window().Offset())

		plain := newTestList(t, 20)
		plain.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
		assert.Zero(t, plain.Window().Offset())
	})

	t.Run("mouse click selects the row under the pointer", func(t *testing.T) {
		t.Parallel()
		l := newTestList(t, 20, WithEnableMouse())
		l.MoveDown(3)
		l.Update(tea.MouseClickMsg{Button: tea.MouseLeft, Y: 2})
		assert.Equal(t, 5, l.SelectedIndex())

		l.Update(tea.MouseClickMsg{Button: tea.MouseLeft, Y: 7})
		assert.Equal(t, 5, l.SelectedIndex(), "clicks below the list are ignored")
		l.Update(tea.MouseClickMsg{Button: tea.MouseRight, Y: 0})
		assert.Equal(t, 5, l.SelectedIndex())
	})
}

func TestSetItems(t *testing.T) {
	t.Parallel()

	l := newTestList(t, 20)
	l.GoToBottom()

	msg := execCmd(l.SetItems(makeItems(7)))
	assert.Equal(t, SelectionChangedMsg{Index: 6}, msg)
	assert.Equal(t, 7, l.Len())
	assert.Equal(t, 2.0, l.Window().Offset())

	msg = execCmd(l.SetItems(nil))
	assert.Equal(t, SelectionChangedMsg{Index: ItemNotFound}, msg)
	assert.True(t, l.IsAtTop())
	assert.True(t, l.IsAtBottom())

	msg = execCmd(l.SetItems(makeItems(3)))
	assert.Equal(t, SelectionChangedMsg{Index: 0}, msg)
}

func TestSetSize(t *testing.T) {
	t.Parallel()

	l := newTestList(t, 20)
	l.SetSelected(12)
	l.SetSize(10, 3)

	w, h := l.GetSize()
	assert.Equal(t, 10, w)
	assert.Equal(t, 3, h)
	assert.Len(t, viewLines(l), 3)
	assert.True(t, l.Window().VisibleRange().Contains(12), "selection stays in view after a resize")
}

func TestScrollbar(t *testing.T) {
	t.Parallel()

	l := newTestList(t, 20, WithScrollbar())
	lines := strings.Split(ansi.Strip(l.View()), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		assert.Equal(t, 10, ansi.StringWidth(line))
	}
	assert.True(t, strings.HasSuffix(lines[0], "┃"))
	assert.True(t, strings.HasSuffix(lines[4], "│"))

	l.GoToBottom()
	lines = strings.Split(ansi.Strip(l.View()), "\n")
	assert.True(t, strings.HasSuffix(lines[0], "│"))
	assert.True(t, strings.HasSuffix(lines[4], "┃"))

	short := newTestList(t, 2, WithScrollbar())
	for _, line := range strings.Split(ansi.Strip(short.View()), "\n") {
		assert.False(t, strings.ContainsAny(line, "┃│"), "no scrollbar when everything fits")
	}
}
