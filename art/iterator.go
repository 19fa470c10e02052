package art

import "bytes"

// Iterator walks the tree in key order. The zero direction is ascending;
// reverse iterators descend. Iterators are invalidated by any mutation
// of the tree.
type Iterator struct {
	t       *Tree
	reverse bool
	stack   []frame
	cur     *leaf
}

type frame struct {
	n inner
	b int // byte of the child the walk descended into
}

// Iterator starts an ascending walk over the whole tree.
func (t *Tree) Iterator() *Iterator {
	it := &Iterator{t: t}
	if t.root != nil {
		it.descend(t.root)
	}
	return it
}

// ReverseIterator starts a descending walk over the whole tree.
func (t *Tree) ReverseIterator() *Iterator {
	it := &Iterator{t: t, reverse: true}
	if t.root != nil {
		it.descend(t.root)
	}
	return it
}

// IteratorFrom starts an ascending walk at the first key >= key.
func (t *Tree) IteratorFrom(key Key) *Iterator {
	it := &Iterator{t: t}
	it.seek(t.root, key, 0)
	return it
}

// ReverseIteratorFrom starts a descending walk at the last key <= key.
func (t *Tree) ReverseIteratorFrom(key Key) *Iterator {
	it := &Iterator{t: t, reverse: true}
	it.seek(t.root, key, 0)
	return it
}

func (it *Iterator) HasNext() bool {
	return it.cur != nil
}

// Peek returns the current position without advancing.
func (it *Iterator) Peek() (Key, interface{}, bool) {
	if it.cur == nil {
		return Key{}, nil, false
	}
	return it.cur.key, it.cur.value, true
}

// Next returns the current position and advances.
func (it *Iterator) Next() (Key, interface{}, bool) {
	if it.cur == nil {
		return Key{}, nil, false
	}
	l := it.cur
	it.advance()
	return l.key, l.value, true
}

// descend pushes frames down to the extreme leaf of the subtree.
func (it *Iterator) descend(n node) {
	for {
		if l, ok := n.(*leaf); ok {
			it.cur = l
			return
		}
		in := n.(inner)
		var b int
		var child node
		if it.reverse {
			b, child = in.childBefore(255)
		} else {
			b, child = in.childAfter(0)
		}
		it.stack = append(it.stack, frame{n: in, b: b})
		n = child
	}
}

func (it *Iterator) advance() {
	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		var b int
		var child node
		if it.reverse {
			b, child = top.n.childBefore(top.b - 1)
		} else {
			b, child = top.n.childAfter(top.b + 1)
		}
		if child == nil {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}
		top.b = b
		it.descend(child)
		return
	}
	it.cur = nil
}

// Seek repositions at the first key >= key (ascending) or the last
// key <= key (descending).
func (it *Iterator) Seek(key Key) {
	it.stack = it.stack[:0]
	it.cur = nil
	it.seek(it.t.root, key, 0)
}

// seek positions the walk inside the subtree rooted at n; it reports
// whether a bounding leaf was found there.
func (it *Iterator) seek(n node, key Key, depth int) bool {
	if n == nil {
		return false
	}
	if l, ok := n.(*leaf); ok {
		cmp := bytes.Compare(l.key[:], key[:])
		if (!it.reverse && cmp >= 0) || (it.reverse && cmp <= 0) {
			it.cur = l
			return true
		}
		return false
	}
	in := n.(inner)
	h := in.hdr()
	pl := int(h.prefixLen)
	if cmp := bytes.Compare(h.prefix[:pl], key[depth:depth+pl]); cmp != 0 {
		// every key below n sits entirely on one side of the target
		if (!it.reverse && cmp > 0) || (it.reverse && cmp < 0) {
			it.descend(n)
			return true
		}
		return false
	}
	depth += pl
	b := int(key[depth])
	if child := in.find(byte(b)); child != nil {
		it.stack = append(it.stack, frame{n: in, b: b})
		if it.seek(child, key, depth+1) {
			return true
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	var nb int
	var next node
	if it.reverse {
		nb, next = in.childBefore(b - 1)
	} else {
		nb, next = in.childAfter(b + 1)
	}
	if next == nil {
		return false
	}
	it.stack = append(it.stack, frame{n: in, b: nb})
	it.descend(next)
	return true
}
