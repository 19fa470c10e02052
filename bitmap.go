package roar64

import (
	"fmt"
	"math"

	"github.com/aglyzov/roar64/art"
	"github.com/aglyzov/roar64/container"
)

// Bitmap is a compressed set of unsigned 64-bit values.
//
// A Bitmap owns its containers exclusively; set-algebra operations read
// the other bitmap and deep-clone anything they import from it. The
// zero value is not usable, call New.
type Bitmap struct {
	index *art.Tree
}

func New() *Bitmap {
	return &Bitmap{index: art.New()}
}

// BitmapOf builds a bitmap holding the given values.
func BitmapOf(values ...uint64) *Bitmap {
	b := New()
	b.AddMany(values...)
	return b
}

func (b *Bitmap) get(high art.Key) (container.Container, bool) {
	v, ok := b.index.Search(high)
	if !ok {
		return nil, false
	}
	return v.(container.Container), true
}

// Add sets v in the bitmap, whether it was present or not.
func (b *Bitmap) Add(v uint64) {
	high, low := highPart(v), lowPart(v)
	if c, ok := b.get(high); ok {
		if fresh := c.Add(low); fresh != c {
			b.index.Insert(high, fresh)
		}
		return
	}
	b.index.Insert(high, container.NewArray().Add(low))
}

// AddMany sets every given value.
func (b *Bitmap) AddMany(values ...uint64) {
	for _, v := range values {
		b.Add(v)
	}
}

// Remove clears v; removing an absent value is a no-op.
func (b *Bitmap) Remove(v uint64) {
	high := highPart(v)
	c, ok := b.get(high)
	if !ok {
		return
	}
	fresh := c.Remove(lowPart(v))
	if fresh.Cardinality() == 0 {
		b.index.Delete(high)
		return
	}
	if fresh != c {
		b.index.Insert(high, fresh)
	}
}

// FlipValue adds v if absent, removes it otherwise.
func (b *Bitmap) FlipValue(v uint64) {
	if b.Contains(v) {
		b.Remove(v)
	} else {
		b.Add(v)
	}
}

func (b *Bitmap) Contains(v uint64) bool {
	c, ok := b.get(highPart(v))
	return ok && c.Contains(lowPart(v))
}

func (b *Bitmap) IsEmpty() bool {
	return b.index.Empty()
}

// Cardinality returns the number of values in the bitmap.
func (b *Bitmap) Cardinality() uint64 {
	card := uint64(0)
	for it := b.index.Iterator(); ; {
		_, v, ok := it.Next()
		if !ok {
			break
		}
		card += uint64(v.(container.Container).Cardinality())
	}
	return card
}

// CardinalityInt returns the cardinality as an int, or
// ErrCardinalityOverflow when it does not fit in an int32.
func (b *Bitmap) CardinalityInt() (int, error) {
	card := b.Cardinality()
	if card > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d values", ErrCardinalityOverflow, card)
	}
	return int(card), nil
}

// First returns the smallest value.
func (b *Bitmap) First() (uint64, error) {
	high, v, ok := b.index.Min()
	if !ok {
		return 0, ErrEmpty
	}
	return combine(high, v.(container.Container).Minimum()), nil
}

// Last returns the largest value.
func (b *Bitmap) Last() (uint64, error) {
	high, v, ok := b.index.Max()
	if !ok {
		return 0, ErrEmpty
	}
	return combine(high, v.(container.Container).Maximum()), nil
}

// Minimum is an alias of First.
func (b *Bitmap) Minimum() (uint64, error) { return b.First() }

// Maximum is an alias of Last.
func (b *Bitmap) Maximum() (uint64, error) { return b.Last() }

// Rank returns the number of values <= v.
func (b *Bitmap) Rank(v uint64) uint64 {
	high, low := highPart(v), lowPart(v)
	rank := uint64(0)
	for it := b.index.Iterator(); ; {
		key, cv, ok := it.Next()
		if !ok {
			break
		}
		cmp := art.Compare(key, high)
		if cmp > 0 {
			break
		}
		c := cv.(container.Container)
		if cmp == 0 {
			rank += uint64(c.Rank(low))
			break
		}
		rank += uint64(c.Cardinality())
	}
	return rank
}

// Select returns the k-th value in ascending order, 0-indexed.
func (b *Bitmap) Select(k uint64) (uint64, error) {
	left := k
	for it := b.index.Iterator(); ; {
		key, cv, ok := it.Next()
		if !ok {
			break
		}
		c := cv.(container.Container)
		card := uint64(c.Cardinality())
		if left < card {
			return combine(key, c.Select(int(left))), nil
		}
		left -= card
	}
	return 0, fmt.Errorf("%w: select %d of %d", ErrOutOfBounds, k, b.Cardinality())
}

// AddRange sets every value in [lo, hi). The range must be non-empty
// and must not wrap: hi == 0 or lo >= hi is ErrInvalidRange.
func (b *Bitmap) AddRange(lo, hi uint64) error {
	if err := checkRange(lo, hi); err != nil {
		return err
	}
	b.walkRange(lo, hi, func(high art.Key, lo16, hi16 int) {
		if c, ok := b.get(high); ok {
			if fresh := c.AddRange(lo16, hi16); fresh != c {
				b.index.Insert(high, fresh)
			}
			return
		}
		b.index.Insert(high, container.RangeOfOnes(lo16, hi16))
	})
	return nil
}

// RemoveRange clears every value in [lo, hi).
func (b *Bitmap) RemoveRange(lo, hi uint64) error {
	if err := checkRange(lo, hi); err != nil {
		return err
	}
	b.walkRange(lo, hi, func(high art.Key, lo16, hi16 int) {
		c, ok := b.get(high)
		if !ok {
			return
		}
		fresh := c.RemoveRange(lo16, hi16)
		if fresh.Cardinality() == 0 {
			b.index.Delete(high)
			return
		}
		if fresh != c {
			b.index.Insert(high, fresh)
		}
	})
	return nil
}

// Flip toggles every value in [lo, hi).
func (b *Bitmap) Flip(lo, hi uint64) error {
	if err := checkRange(lo, hi); err != nil {
		return err
	}
	b.walkRange(lo, hi, func(high art.Key, lo16, hi16 int) {
		c, ok := b.get(high)
		if !ok {
			b.index.Insert(high, container.RangeOfOnes(lo16, hi16))
			return
		}
		fresh := c.FlipRange(lo16, hi16)
		if fresh.Cardinality() == 0 {
			b.index.Delete(high)
			return
		}
		if fresh != c {
			b.index.Insert(high, fresh)
		}
	})
	return nil
}

func checkRange(lo, hi uint64) error {
	if hi == 0 || lo >= hi {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, lo, hi)
	}
	return nil
}

// walkRange visits each high key spanned by [lo, hi) with the low
// bounds of the range portion inside it, half-open.
func (b *Bitmap) walkRange(lo, hi uint64, visit func(high art.Key, lo16, hi16 int)) {
	highStart := highPart(lo)
	highEnd := highPart(hi - 1)
	for high := highStart; ; high = nextHigh(high) {
		lo16 := 0
		if high == highStart {
			lo16 = int(lowPart(lo))
		}
		hi16 := container.MaxCardinality
		if high == highEnd {
			hi16 = int(lowPart(hi-1)) + 1
		}
		visit(high, lo16, hi16)
		if high == highEnd {
			break
		}
	}
}

// Or unions other into b. Or with itself is a no-op.
func (b *Bitmap) Or(other *Bitmap) {
	if other == b {
		return
	}
	for it := other.index.Iterator(); ; {
		key, ov, ok := it.Next()
		if !ok {
			break
		}
		oc := ov.(container.Container)
		if c, ok2 := b.get(key); ok2 {
			if fresh := c.IOr(oc); fresh != c {
				b.index.Insert(key, fresh)
			}
			continue
		}
		b.index.Insert(key, oc.Clone())
	}
}

// And intersects b with other. And with itself is a no-op.
func (b *Bitmap) And(other *Bitmap) {
	if other == b {
		return
	}
	var stale []art.Key
	for it := b.index.Iterator(); ; {
		key, cv, ok := it.Next()
		if !ok {
			break
		}
		c := cv.(container.Container)
		ov, ok2 := other.index.Search(key)
		if !ok2 {
			stale = append(stale, key)
			continue
		}
		fresh := c.IAnd(ov.(container.Container))
		if fresh.Cardinality() == 0 {
			stale = append(stale, key)
			continue
		}
		if fresh != c {
			b.index.Insert(key, fresh)
		}
	}
	for _, key := range stale {
		b.index.Delete(key)
	}
}

// Xor replaces b with the symmetric difference of b and other.
// Xor with itself empties the bitmap.
func (b *Bitmap) Xor(other *Bitmap) {
	if other == b {
		b.Clear()
		return
	}
	for it := other.index.Iterator(); ; {
		key, ov, ok := it.Next()
		if !ok {
			break
		}
		oc := ov.(container.Container)
		c, ok2 := b.get(key)
		if !ok2 {
			b.index.Insert(key, oc.Clone())
			continue
		}
		fresh := c.IXor(oc)
		if fresh.Cardinality() == 0 {
			b.index.Delete(key)
			continue
		}
		if fresh != c {
			b.index.Insert(key, fresh)
		}
	}
}

// AndNot removes every value of other from b. AndNot with itself
// empties the bitmap.
func (b *Bitmap) AndNot(other *Bitmap) {
	if other == b {
		b.Clear()
		return
	}
	for it := other.index.Iterator(); ; {
		key, ov, ok := it.Next()
		if !ok {
			break
		}
		c, ok2 := b.get(key)
		if !ok2 {
			continue
		}
		fresh := c.IAndNot(ov.(container.Container))
		// install only a non-empty result, else drop the slot
		if fresh.Cardinality() == 0 {
			b.index.Delete(key)
			continue
		}
		if fresh != c {
			b.index.Insert(key, fresh)
		}
	}
}

// RunOptimize converts containers to run form where that is estimated
// smaller. It reports whether any container converted.
func (b *Bitmap) RunOptimize() bool {
	changed := false
	for it := b.index.Iterator(); ; {
		key, cv, ok := it.Next()
		if !ok {
			break
		}
		c := cv.(container.Container)
		if fresh := c.RunOptimize(); fresh != c {
			b.index.Insert(key, fresh)
			changed = true
		}
	}
	return changed
}

// Clear drops every container in one shot.
func (b *Bitmap) Clear() {
	b.index.Clear()
}

// Trim releases over-allocated backing storage and drops any container
// that has become empty.
func (b *Bitmap) Trim() {
	var stale []art.Key
	for it := b.index.Iterator(); ; {
		key, cv, ok := it.Next()
		if !ok {
			break
		}
		c := cv.(container.Container)
		if c.Cardinality() == 0 {
			stale = append(stale, key)
			continue
		}
		c.Trim()
	}
	for _, key := range stale {
		b.index.Delete(key)
	}
}

// Clone returns a deep copy sharing no storage with b.
func (b *Bitmap) Clone() *Bitmap {
	fresh := New()
	for it := b.index.Iterator(); ; {
		key, cv, ok := it.Next()
		if !ok {
			break
		}
		fresh.index.Insert(key, cv.(container.Container).Clone())
	}
	return fresh
}

// Equal reports whether b and other hold the same value set, whatever
// forms the containers are in.
func (b *Bitmap) Equal(other *Bitmap) bool {
	if b == other {
		return true
	}
	bi, oi := b.Iterator(), other.Iterator()
	for {
		bv, bok := bi.Next()
		ov, ook := oi.Next()
		if bok != ook {
			return false
		}
		if !bok {
			return true
		}
		if bv != ov {
			return false
		}
	}
}

// ToArray returns the values in ascending order, or
// ErrCardinalityOverflow when they do not fit in an int32-sized slice.
func (b *Bitmap) ToArray() ([]uint64, error) {
	card := b.Cardinality()
	if card > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d values", ErrCardinalityOverflow, card)
	}
	values := make([]uint64, 0, card)
	for it := b.Iterator(); ; {
		v, ok := it.Next()
		if !ok {
			break
		}
		values = append(values, v)
	}
	return values, nil
}

// Iterate calls fn for each value in ascending order until fn returns
// false.
func (b *Bitmap) Iterate(fn func(v uint64) bool) {
	for it := b.Iterator(); ; {
		v, ok := it.Next()
		if !ok {
			return
		}
		if !fn(v) {
			return
		}
	}
}

// SizeInBytes estimates the in-memory footprint as the serialized size.
// It is an estimate, not a measurement: container headers and tree
// nodes are not accounted for.
func (b *Bitmap) SizeInBytes() uint64 {
	return uint64(b.SerializedSize())
}
