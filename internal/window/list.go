package window

import "iter"

// List binds a Source to a Controller. It is the handle a host keeps for one
// list instance: scroll events go in through the embedded Controller and
// positioned entries come out of VisibleEntries.
type List[T any] struct {
	*Controller
	src Source[T]
}

// New builds a list over src scrolled to the top. A nil source is an empty
// list.
func New[T any](src Source[T], itemHeight, viewportHeight float64, overscan int, opts ...Option) (*List[T], error) {
	if src == nil {
		src = Slice[T](nil)
	}
	ctrl, err := NewController(Config{
		ItemHeight:     itemHeight,
		ViewportHeight: viewportHeight,
		ItemCount:      src.Len(),
		Overscan:       overscan,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &List[T]{Controller: ctrl, src: src}, nil
}

// FromSlice is New over a plain slice.
func FromSlice[T any](items []T, itemHeight, viewportHeight float64, overscan int, opts ...Option) (*List[T], error) {
	return New(Slice[T](items), itemHeight, viewportHeight, overscan, opts...)
}

// Source returns the collection the list windows over.
func (l *List[T]) Source() Source[T] {
	return l.src
}

// Len returns the number of items in the list.
func (l *List[T]) Len() int {
	return l.cfg.ItemCount
}

// VisibleEntries returns the entries to render. The range is read from the
// controller each time iteration starts, so a sequence kept across scroll
// events never yields stale entries.
func (l *List[T]) VisibleEntries() iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		for e := range Materialize(l.src, l.CurrentRange(), l.cfg.ItemHeight) {
			if !yield(e) {
				return
			}
		}
	}
}

// Item returns the item at index i.
func (l *List[T]) Item(i int) (T, bool) {
	var zero T
	if i < 0 || i >= l.cfg.ItemCount {
		return zero, false
	}
	return l.src.At(i), true
}

// SetSource swaps the collection, e.g. after filtering or a reload. The
// offset is kept but pulled back to the new MaxOffset when the collection
// shrank.
func (l *List[T]) SetSource(src Source[T]) error {
	if src == nil {
		src = Slice[T](nil)
	}
	cfg := l.cfg
	cfg.ItemCount = src.Len()
	if err := l.reconfigure(cfg); err != nil {
		return err
	}
	l.src = src
	l.offset = min(l.offset, l.MaxOffset())
	return nil
}
