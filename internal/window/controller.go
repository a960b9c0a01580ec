package window

import (
	"fmt"
	"math"
)

// Config is the geometry of a windowed list.
type Config struct {
	ItemHeight     float64 `json:"item_height" yaml:"item_height"`
	ViewportHeight float64 `json:"viewport_height" yaml:"viewport_height"`
	ItemCount      int     `json:"item_count" yaml:"item_count"`
	Overscan       int     `json:"overscan" yaml:"overscan"`
}

// Validate checks the invariants the engine relies on.
func (c Config) Validate() error {
	if err := validateGeometry(c.ItemHeight, c.ViewportHeight, c.Overscan); err != nil {
		return err
	}
	if c.ItemCount < 0 {
		return fmt.Errorf("%w: item count must not be negative, got %d", ErrInvalidConfiguration, c.ItemCount)
	}
	return nil
}

// TotalExtent is the height the whole collection would occupy.
func (c Config) TotalExtent() float64 {
	return float64(c.ItemCount) * c.ItemHeight
}

type Option func(*Controller)

// WithClampedScroll makes OnScroll clamp the offset to [0, MaxOffset()]
// instead of trusting the host to do it.
func WithClampedScroll() Option {
	return func(c *Controller) {
		c.clamp = true
	}
}

// Controller owns the scroll offset of one list. It is not safe for
// concurrent use; all calls are expected from the goroutine delivering
// scroll events.
type Controller struct {
	cfg    Config
	offset float64
	clamp  bool
}

// NewController returns a controller scrolled to the top.
func NewController(cfg Config, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the geometry the controller was built with.
func (c *Controller) Config() Config {
	return c.cfg
}

// Offset returns the current scroll offset.
func (c *Controller) Offset() float64 {
	return c.offset
}

// OnScroll applies a scroll event. Negative offsets become zero; offsets past
// MaxOffset are kept unless the controller was built WithClampedScroll.
func (c *Controller) OnScroll(offset float64) {
	c.setOffset(offset)
}

func (c *Controller) setOffset(offset float64) {
	if offset < 0 || math.IsNaN(offset) {
		offset = 0
	}
	if c.clamp {
		offset = min(offset, c.MaxOffset())
	}
	c.offset = offset
}

// ScrollBy moves the offset by delta. Relative moves never push the offset
// past MaxOffset, and never pull it back when it already is past it.
func (c *Controller) ScrollBy(delta float64) {
	if delta == 0 || math.IsNaN(delta) {
		return
	}
	next := c.offset + delta
	if delta > 0 {
		next = min(next, max(c.offset, c.MaxOffset()))
	}
	c.setOffset(next)
}

// ScrollToIndex puts the top of item i at the top of the viewport. Indices
// outside the collection are clamped to the first or last item.
func (c *Controller) ScrollToIndex(i int) {
	c.setOffset(float64(c.clampIndex(i)) * c.cfg.ItemHeight)
}

func (c *Controller) ScrollToTop() {
	c.ScrollToIndex(0)
}

func (c *Controller) ScrollToBottom() {
	c.ScrollToIndex(c.cfg.ItemCount - 1)
}

// ScrollIntoView scrolls as little as possible for item i to be fully
// visible. Items taller than the viewport are aligned to the top.
func (c *Controller) ScrollIntoView(i int) {
	if c.cfg.ItemCount == 0 {
		return
	}
	i = c.clampIndex(i)
	top := float64(i) * c.cfg.ItemHeight
	bottom := top + c.cfg.ItemHeight

	switch {
	case top < c.offset || c.cfg.ItemHeight >= c.cfg.ViewportHeight:
		c.setOffset(top)
	case bottom > c.offset+c.cfg.ViewportHeight:
		c.setOffset(bottom - c.cfg.ViewportHeight)
	}
}

func (c *Controller) PageDown() {
	c.ScrollBy(c.cfg.ViewportHeight)
}

func (c *Controller) PageUp() {
	c.ScrollBy(-c.cfg.ViewportHeight)
}

func (c *Controller) HalfPageDown() {
	c.ScrollBy(c.cfg.ViewportHeight / 2)
}

func (c *Controller) HalfPageUp() {
	c.ScrollBy(-c.cfg.ViewportHeight / 2)
}

// CurrentRange returns the range to render at the current offset, overscan
// included.
func (c *Controller) CurrentRange() Range {
	return computeRange(c.offset, c.cfg.ViewportHeight, c.cfg.ItemHeight, c.cfg.ItemCount, c.cfg.Overscan)
}

// VisibleRange returns the items that intersect the viewport, without
// overscan. An item whose top edge sits exactly on the bottom edge of the
// viewport is not visible.
func (c *Controller) VisibleRange() Range {
	if c.cfg.ItemCount == 0 || c.cfg.ViewportHeight == 0 {
		return EmptyRange
	}
	first := floorIndex(c.offset / c.cfg.ItemHeight)
	last := floorIndex(math.Ceil((c.offset+c.cfg.ViewportHeight)/c.cfg.ItemHeight)) - 1
	end := min(c.cfg.ItemCount-1, last)
	return Range{Start: min(first, end), End: end}
}

// IndexAt returns the item under the point y pixels below the top of the
// viewport.
func (c *Controller) IndexAt(y float64) (int, bool) {
	if c.cfg.ItemCount == 0 || y < 0 || y >= c.cfg.ViewportHeight {
		return -1, false
	}
	i := floorIndex((c.offset + y) / c.cfg.ItemHeight)
	if i >= c.cfg.ItemCount {
		return -1, false
	}
	return i, true
}

// TotalExtent is the height the host reserves for the whole collection so
// native scrollbars keep their proportions.
func (c *Controller) TotalExtent() float64 {
	return c.cfg.TotalExtent()
}

// MaxOffset is the largest offset that still fills the viewport.
func (c *Controller) MaxOffset() float64 {
	return max(0, c.TotalExtent()-c.cfg.ViewportHeight)
}

// Progress returns how far the list is scrolled, from 0 to 1.
func (c *Controller) Progress() float64 {
	maxOffset := c.MaxOffset()
	if maxOffset == 0 {
		return 0
	}
	return min(1, c.offset/maxOffset)
}

// IsAtTop reports whether the viewport shows the start of the list. An empty
// list is always at the top.
func (c *Controller) IsAtTop() bool {
	return c.cfg.ItemCount == 0 || c.offset == 0
}

// IsAtBottom reports whether the viewport reaches the end of the list. An
// empty list is always at the bottom.
func (c *Controller) IsAtBottom() bool {
	return c.offset+c.cfg.ViewportHeight >= c.TotalExtent()
}

// SetViewportHeight resizes the viewport, keeping the offset within the new
// bounds when the controller clamps.
func (c *Controller) SetViewportHeight(height float64) error {
	cfg := c.cfg
	cfg.ViewportHeight = height
	return c.reconfigure(cfg)
}

func (c *Controller) reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.setOffset(c.offset)
	return nil
}

func (c *Controller) clampIndex(i int) int {
	if c.cfg.ItemCount == 0 {
		return 0
	}
	return min(max(i, 0), c.cfg.ItemCount-1)
}
