package container

// Interval is an inclusive [Start, Last] block of present values.
type Interval struct {
	Start uint16
	Last  uint16
}

// Run is the run-length-encoded container form: disjoint intervals in
// strictly ascending order, no two of them touching.
type Run struct {
	runs []Interval
}

func NewRun() *Run {
	return &Run{}
}

func (r *Run) Kind() Kind { return RunKind }

func (r *Run) Cardinality() int {
	card := 0
	for _, iv := range r.runs {
		card += int(iv.Last) - int(iv.Start) + 1
	}
	return card
}

// search returns the index of the interval containing x, or
// -(insertion point)-1 when no interval does.
func (r *Run) search(x uint16) int {
	lo, hi := 0, len(r.runs)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch iv := r.runs[mid]; {
		case iv.Last < x:
			lo = mid + 1
		case iv.Start > x:
			hi = mid - 1
		default:
			return mid
		}
	}
	return -(lo + 1)
}

func (r *Run) Contains(x uint16) bool {
	return r.search(x) >= 0
}

func (r *Run) Minimum() uint16 { return r.runs[0].Start }
func (r *Run) Maximum() uint16 { return r.runs[len(r.runs)-1].Last }

func (r *Run) Rank(x uint16) int {
	rank := 0
	for _, iv := range r.runs {
		if iv.Last <= x {
			rank += int(iv.Last) - int(iv.Start) + 1
			continue
		}
		if iv.Start <= x {
			rank += int(x) - int(iv.Start) + 1
		}
		break
	}
	return rank
}

func (r *Run) Select(k int) uint16 {
	left := k
	for _, iv := range r.runs {
		length := int(iv.Last) - int(iv.Start) + 1
		if left < length {
			return iv.Start + uint16(left)
		}
		left -= length
	}
	return 0 // unreachable when k < cardinality
}

func (r *Run) Add(x uint16) Container {
	idx := r.search(x)
	if idx >= 0 {
		return r
	}
	at := -idx - 1
	mergeLeft := at > 0 && x > 0 && r.runs[at-1].Last == x-1
	mergeRight := at < len(r.runs) && x < MaxCardinality-1 && r.runs[at].Start == x+1
	switch {
	case mergeLeft && mergeRight:
		r.runs[at-1].Last = r.runs[at].Last
		r.runs = append(r.runs[:at], r.runs[at+1:]...)
	case mergeLeft:
		r.runs[at-1].Last = x
	case mergeRight:
		r.runs[at].Start = x
	default:
		r.runs = append(r.runs, Interval{})
		copy(r.runs[at+1:], r.runs[at:])
		r.runs[at] = Interval{Start: x, Last: x}
	}
	return r.normalize()
}

func (r *Run) Remove(x uint16) Container {
	idx := r.search(x)
	if idx < 0 {
		return r
	}
	iv := r.runs[idx]
	switch {
	case iv.Start == x && iv.Last == x:
		r.runs = append(r.runs[:idx], r.runs[idx+1:]...)
	case iv.Start == x:
		r.runs[idx].Start = x + 1
	case iv.Last == x:
		r.runs[idx].Last = x - 1
	default:
		// removal in the interior splits the run
		r.runs = append(r.runs, Interval{})
		copy(r.runs[idx+1:], r.runs[idx:])
		r.runs[idx].Last = x - 1
		r.runs[idx+1].Start = x + 1
	}
	return r.normalize()
}

func (r *Run) Flip(x uint16) Container {
	if r.Contains(x) {
		return r.Remove(x)
	}
	return r.Add(x)
}

func (r *Run) AddRange(lo, hi int) Container {
	if lo >= hi {
		return r
	}
	out := make([]Interval, 0, len(r.runs)+1)
	start, last := lo, hi-1
	i := 0
	for ; i < len(r.runs) && int(r.runs[i].Last)+1 < lo; i++ {
		out = append(out, r.runs[i])
	}
	// swallow every interval overlapping or touching [start, last]
	for ; i < len(r.runs) && int(r.runs[i].Start) <= last+1; i++ {
		if int(r.runs[i].Start) < start {
			start = int(r.runs[i].Start)
		}
		if int(r.runs[i].Last) > last {
			last = int(r.runs[i].Last)
		}
	}
	out = append(out, Interval{Start: uint16(start), Last: uint16(last)})
	out = append(out, r.runs[i:]...)
	r.runs = out
	return r.normalize()
}

func (r *Run) RemoveRange(lo, hi int) Container {
	if lo >= hi {
		return r
	}
	last := hi - 1
	out := make([]Interval, 0, len(r.runs)+1)
	for _, iv := range r.runs {
		if int(iv.Last) < lo || int(iv.Start) > last {
			out = append(out, iv)
			continue
		}
		if int(iv.Start) < lo {
			out = append(out, Interval{Start: iv.Start, Last: uint16(lo - 1)})
		}
		if int(iv.Last) > last {
			out = append(out, Interval{Start: uint16(hi), Last: iv.Last})
		}
	}
	r.runs = out
	return r.normalize()
}

func (r *Run) FlipRange(lo, hi int) Container {
	if lo >= hi {
		return r
	}
	out := make([]Interval, 0, len(r.runs)+1)
	push := func(start, last int) {
		if n := len(out); n > 0 && int(out[n-1].Last)+1 >= start {
			if last > int(out[n-1].Last) {
				out[n-1].Last = uint16(last)
			}
			return
		}
		out = append(out, Interval{Start: uint16(start), Last: uint16(last)})
	}
	for _, iv := range r.runs {
		if int(iv.Start) >= lo {
			break
		}
		last := int(iv.Last)
		if last > lo-1 {
			last = lo - 1
		}
		push(int(iv.Start), last)
	}
	r.VisitRanges(lo, hi, func(present bool, start, end int) {
		if !present {
			push(start, end-1)
		}
	})
	for _, iv := range r.runs {
		if int(iv.Last) < hi {
			continue
		}
		start := int(iv.Start)
		if start < hi {
			start = hi
		}
		push(start, int(iv.Last))
	}
	r.runs = out
	return r.normalize()
}

// normalize converts away from run form when the encoding is strictly
// larger than the cheaper alternative for the present contents.
func (r *Run) normalize() Container {
	card := r.Cardinality()
	runSize := 2 + 4*len(r.runs)
	if card <= ArrayMaxSize {
		if runSize > 2+2*card {
			return r.toArray()
		}
		return r
	}
	if len(r.runs) > maxRuns || runSize > 2+8*wordCount {
		return r.toBitmap()
	}
	return r
}

func (r *Run) Clone() Container {
	fresh := make([]Interval, len(r.runs))
	copy(fresh, r.runs)
	return &Run{runs: fresh}
}

func (r *Run) Trim() {
	if cap(r.runs) > len(r.runs) {
		fresh := make([]Interval, len(r.runs))
		copy(fresh, r.runs)
		r.runs = fresh
	}
}

// RunOptimize returns the receiver: the contents are already run-encoded.
func (r *Run) RunOptimize() Container { return r }

func (r *Run) SerializedSize() int {
	return 1 + 2 + 4*len(r.runs)
}

func (r *Run) toArray() *Array {
	content := make([]uint16, 0, r.Cardinality())
	for _, iv := range r.runs {
		for v := int(iv.Start); v <= int(iv.Last); v++ {
			content = append(content, uint16(v))
		}
	}
	return &Array{content: content}
}

func (r *Run) toBitmap() *Bitmap {
	b := NewBitmap()
	for _, iv := range r.runs {
		b.setRange(int(iv.Start), int(iv.Last)+1)
	}
	b.repairCardinality()
	return b
}

func (r *Run) VisitRanges(lo, hi int, emit func(present bool, start, end int)) {
	filled := lo
	for _, iv := range r.runs {
		start, end := int(iv.Start), int(iv.Last)+1
		if end <= filled {
			continue
		}
		if start >= hi {
			break
		}
		if start < filled {
			start = filled
		}
		if end > hi {
			end = hi
		}
		if filled < start {
			emit(false, filled, start)
		}
		emit(true, start, end)
		filled = end
	}
	if filled < hi {
		emit(false, filled, hi)
	}
}

// set algebra

func (r *Run) Or(other Container) Container {
	return r.Clone().(*Run).IOr(other)
}

func (r *Run) IOr(other Container) Container {
	switch o := other.(type) {
	case *Array:
		return r.iorArray(o)
	case *Bitmap:
		return o.Clone().(*Bitmap).IOr(r)
	case *Run:
		var res Container = r
		for _, iv := range o.runs {
			res = res.AddRange(int(iv.Start), int(iv.Last)+1)
		}
		return res
	}
	return nil
}

func (r *Run) iorArray(a *Array) Container {
	var res Container = r
	for _, v := range a.content {
		res = res.Add(v)
	}
	return res
}

func (r *Run) And(other Container) Container {
	switch o := other.(type) {
	case *Array:
		return o.andRun(r)
	case *Bitmap:
		return o.Clone().(*Bitmap).IAnd(r)
	case *Run:
		return r.intersectRun(o)
	}
	return nil
}

func (r *Run) IAnd(other Container) Container {
	switch o := other.(type) {
	case *Array:
		return o.andRun(r)
	case *Bitmap:
		return o.Clone().(*Bitmap).IAnd(r)
	case *Run:
		res := r.intersectRun(o)
		if fresh, ok := res.(*Run); ok {
			r.runs = fresh.runs
			return r
		}
		return res
	}
	return nil
}

func (r *Run) intersectRun(o *Run) Container {
	out := make([]Interval, 0, len(r.runs)+len(o.runs))
	i, j := 0, 0
	for i < len(r.runs) && j < len(o.runs) {
		a, b := r.runs[i], o.runs[j]
		start, last := a.Start, a.Last
		if b.Start > start {
			start = b.Start
		}
		if b.Last < last {
			last = b.Last
		}
		if start <= last {
			out = append(out, Interval{Start: start, Last: last})
		}
		if a.Last < b.Last {
			i++
		} else {
			j++
		}
	}
	return (&Run{runs: out}).normalize()
}

func (r *Run) Xor(other Container) Container {
	switch o := other.(type) {
	case *Array:
		return r.toBitmap().ixorArray(o)
	case *Bitmap:
		return o.Clone().(*Bitmap).IXor(r)
	case *Run:
		return r.Clone().(*Run).IXor(o)
	}
	return nil
}

func (r *Run) IXor(other Container) Container {
	switch o := other.(type) {
	case *Array:
		return r.toBitmap().ixorArray(o)
	case *Bitmap:
		return o.Clone().(*Bitmap).IXor(r)
	case *Run:
		var res Container = r
		for _, iv := range o.runs {
			res = res.FlipRange(int(iv.Start), int(iv.Last)+1)
		}
		return res
	}
	return nil
}

func (r *Run) AndNot(other Container) Container {
	return r.Clone().(*Run).IAndNot(other)
}

func (r *Run) IAndNot(other Container) Container {
	switch o := other.(type) {
	case *Array:
		var res Container = r
		for _, v := range o.content {
			res = res.Remove(v)
		}
		return res
	case *Bitmap:
		return r.toBitmap().IAndNot(o)
	case *Run:
		var res Container = r
		for _, iv := range o.runs {
			res = res.RemoveRange(int(iv.Start), int(iv.Last)+1)
		}
		return res
	}
	return nil
}

func (r *Run) Iterator() Iterator {
	it := &runIterator{runs: r.runs}
	if len(r.runs) > 0 {
		it.next = int(r.runs[0].Start)
	}
	return it
}

func (r *Run) ReverseIterator() Iterator {
	it := &runReverseIterator{runs: r.runs, idx: len(r.runs) - 1}
	if len(r.runs) > 0 {
		it.next = int(r.runs[len(r.runs)-1].Last)
	}
	return it
}
