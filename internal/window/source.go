package window

import "iter"

// Source is an ordered collection addressed by index. The engine only reads
// from it, and only the items of the range being materialized.
type Source[T any] interface {
	Len() int
	At(i int) T
}

// Slice adapts a Go slice to Source.
type Slice[T any] []T

func (s Slice[T]) Len() int { return len(s) }

func (s Slice[T]) At(i int) T { return s[i] }

// Entry is an item positioned for placement by a renderer.
type Entry[T any] struct {
	Item    T
	Index   int
	OffsetY float64
}

// Materialize returns the entries of r in ascending index order. The sequence
// reads src lazily and can be ranged over any number of times. Indices the
// source no longer holds are skipped.
func Materialize[T any](src Source[T], r Range, itemHeight float64) iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		if src == nil || r.Empty() {
			return
		}
		end := min(r.End, src.Len()-1)
		for i := max(r.Start, 0); i <= end; i++ {
			entry := Entry[T]{
				Item:    src.At(i),
				Index:   i,
				OffsetY: float64(i) * itemHeight,
			}
			if !yield(entry) {
				return
			}
		}
	}
}
