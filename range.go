package roar64

import (
	"github.com/aglyzov/roar64/art"
	"github.com/aglyzov/roar64/container"
)

// RangeConsumer receives presence information for a contiguous window
// of the value space. Offsets are relative to the window start; absent
// spans are half-open and coalesced.
type RangeConsumer interface {
	Present(offset int, v uint64)
	Absent(start, end int)
}

// ForAllInRange reports presence for every index in [0, length) of the
// window starting at start, in order: Present for each value held,
// Absent once per maximal gap. The window must not wrap past 2^64-1.
func (b *Bitmap) ForAllInRange(start uint64, length int, rc RangeConsumer) {
	if length <= 0 {
		return
	}
	end := start + uint64(length)
	endHigh := highPart(end - 1)
	// pending absent span, flushed when a present value interrupts it
	pendingStart, pendingEnd := 0, 0
	absent := func(s, e int) {
		if pendingStart == pendingEnd {
			pendingStart = s
		}
		pendingEnd = e
	}
	flush := func() {
		if pendingStart != pendingEnd {
			rc.Absent(pendingStart, pendingEnd)
			pendingStart, pendingEnd = 0, 0
		}
	}

	filled := start
	for it := b.index.IteratorFrom(highPart(start)); ; {
		key, cv, ok := it.Next()
		if !ok {
			break
		}
		if art.Compare(key, endHigh) > 0 {
			break
		}
		containerStart := combine(key, 0)
		if filled < containerStart {
			absent(int(filled-start), int(containerStart-start))
			filled = containerStart
		}
		lo16 := 0
		if containerStart < start {
			lo16 = int(lowPart(start))
		}
		hi16 := container.MaxCardinality
		if key == endHigh {
			hi16 = int(lowPart(end-1)) + 1
		}
		cv.(container.Container).VisitRanges(lo16, hi16, func(present bool, s, e int) {
			base := int(containerStart - start)
			if !present {
				absent(base+s, base+e)
				return
			}
			flush()
			for x := s; x < e; x++ {
				rc.Present(base+x, containerStart+uint64(x))
			}
		})
		filled = containerStart + uint64(hi16)
	}
	if filled < end {
		absent(int(filled-start), length)
	}
	flush()
}

// ForEachInRange calls fn for each value present in
// [start, start+length), in ascending order.
func (b *Bitmap) ForEachInRange(start uint64, length int, fn func(v uint64)) {
	b.ForAllInRange(start, length, presentFunc(fn))
}

type presentFunc func(v uint64)

func (fn presentFunc) Present(_ int, v uint64) { fn(v) }
func (fn presentFunc) Absent(_, _ int)        {}
