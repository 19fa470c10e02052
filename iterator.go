package roar64

import (
	"github.com/aglyzov/roar64/art"
	"github.com/aglyzov/roar64/container"
)

// Iterator walks a bitmap's values in unsigned order, ascending or
// descending. It is a cursor over (tree position, current container,
// position inside it); any mutation of the owning bitmap invalidates
// it.
type Iterator struct {
	reverse bool
	leaves  *art.Iterator
	high    art.Key
	lows    container.Iterator
}

// Iterator starts an ascending walk over the whole bitmap.
func (b *Bitmap) Iterator() *Iterator {
	return &Iterator{leaves: b.index.Iterator()}
}

// ReverseIterator starts a descending walk over the whole bitmap.
func (b *Bitmap) ReverseIterator() *Iterator {
	return &Iterator{reverse: true, leaves: b.index.ReverseIterator()}
}

// IteratorFrom starts an ascending walk at the first value >= min.
func (b *Bitmap) IteratorFrom(min uint64) *Iterator {
	it := b.Iterator()
	it.AdvanceIfNeeded(min)
	return it
}

// ReverseIteratorFrom starts a descending walk at the last value <= max.
func (b *Bitmap) ReverseIteratorFrom(max uint64) *Iterator {
	it := b.ReverseIterator()
	it.AdvanceIfNeeded(max)
	return it
}

// HasNext reports whether another value is available, stepping over
// container boundaries as needed.
func (it *Iterator) HasNext() bool {
	for it.lows == nil || !it.lows.HasNext() {
		key, v, ok := it.leaves.Next()
		if !ok {
			return false
		}
		it.high = key
		c := v.(container.Container)
		if it.reverse {
			it.lows = c.ReverseIterator()
		} else {
			it.lows = c.Iterator()
		}
	}
	return true
}

// Next returns the current value and advances.
func (it *Iterator) Next() (uint64, bool) {
	if !it.HasNext() {
		return 0, false
	}
	return combine(it.high, it.lows.Next()), true
}

// Peek returns the current value without advancing.
func (it *Iterator) Peek() (uint64, bool) {
	if !it.HasNext() {
		return 0, false
	}
	return combine(it.high, it.lows.Peek()), true
}

// AdvanceIfNeeded seeks forward (ascending) or backward (descending)
// until the current value passes bound, if it does not already.
func (it *Iterator) AdvanceIfNeeded(bound uint64) {
	cur, ok := it.Peek()
	if !ok {
		return
	}
	if !it.reverse && cur >= bound {
		return
	}
	if it.reverse && cur <= bound {
		return
	}
	boundHigh := highPart(bound)
	if it.high != boundHigh {
		it.leaves.Seek(boundHigh)
		it.lows = nil
		if !it.HasNext() {
			return
		}
	}
	if it.high == boundHigh {
		it.lows.Seek(lowPart(bound))
	}
}
