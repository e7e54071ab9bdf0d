package gt

import "iter"

// FromSeq collects items from an iterator and builds Data with [FromRows].
func FromSeq[T Rower](seq iter.Seq[T]) (*Data, error) {
	var items []T
	seq(func(item T) bool {
		items = append(items, item)
		return true
	})
	return FromRows(items...)
}

// FromChan collects items from a channel until it is closed.
// It is a thin wrapper around [FromSeq].
func FromChan[T Rower](ch <-chan T) (*Data, error) {
	return FromSeq(chanToIter(ch))
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
