// Package art implements an Adaptive Radix Tree over fixed 6-byte keys.
//
// Inner nodes come in four fan-out shapes (4, 16, 48 and 256 children)
// and grow or shrink across the shape boundaries as keys come and go,
// with hysteresis on the way down to avoid oscillation. The bytes shared
// by every key below a node are kept in a compressed prefix instead of a
// chain of single-child nodes.
//
// Keys compare lexicographically, so storing big-endian encoded integers
// yields ordered traversal in unsigned numeric order. Leaf values are
// opaque to the tree.
package art

import "bytes"

// KeyLen is the fixed key length in bytes.
const KeyLen = 6

// Key is a fixed-length byte key, compared lexicographically.
type Key [KeyLen]byte

// Compare orders two keys lexicographically.
func Compare(a, b Key) int {
	return bytes.Compare(a[:], b[:])
}

// Tree is an ordered map from Key to an opaque value.
// The zero value is an empty tree.
type Tree struct {
	root node
	size int
}

func New() *Tree {
	return &Tree{}
}

// Size returns the number of keys in the tree.
func (t *Tree) Size() int { return t.size }

func (t *Tree) Empty() bool { return t.root == nil }

// Clear drops every key in one shot.
func (t *Tree) Clear() {
	t.root = nil
	t.size = 0
}

// Search returns the value stored under key.
func (t *Tree) Search(key Key) (interface{}, bool) {
	n := t.root
	depth := 0
	for n != nil {
		l, ok := n.(*leaf)
		if ok {
			if l.key == key {
				return l.value, true
			}
			return nil, false
		}
		in := n.(inner)
		h := in.hdr()
		for i := 0; i < int(h.prefixLen); i++ {
			if h.prefix[i] != key[depth+i] {
				return nil, false
			}
		}
		depth += int(h.prefixLen)
		n = in.find(key[depth])
		depth++
	}
	return nil, false
}

// Insert stores value under key, replacing any previous value.
// It reports whether the key was absent before.
func (t *Tree) Insert(key Key, value interface{}) bool {
	if t.root == nil {
		t.root = &leaf{key: key, value: value}
		t.size++
		return true
	}
	fresh, added := insert(t.root, key, 0, value)
	t.root = fresh
	if added {
		t.size++
	}
	return added
}

func insert(n node, key Key, depth int, value interface{}) (node, bool) {
	if l, ok := n.(*leaf); ok {
		if l.key == key {
			l.value = value
			return l, false
		}
		// diverge below the bytes the two keys share
		common := 0
		for l.key[depth+common] == key[depth+common] {
			common++
		}
		branch := &node4{}
		branch.prefixLen = uint8(common)
		copy(branch.prefix[:], key[depth:depth+common])
		branch.add(l.key[depth+common], l)
		branch.add(key[depth+common], &leaf{key: key, value: value})
		return branch, true
	}

	in := n.(inner)
	h := in.hdr()
	pl := int(h.prefixLen)
	mismatch := 0
	for mismatch < pl && h.prefix[mismatch] == key[depth+mismatch] {
		mismatch++
	}
	if mismatch < pl {
		// the new key diverges inside the compressed prefix: split it
		branch := &node4{}
		branch.prefixLen = uint8(mismatch)
		copy(branch.prefix[:], h.prefix[:mismatch])
		oldByte := h.prefix[mismatch]
		copy(h.prefix[:], h.prefix[mismatch+1:pl])
		h.prefixLen = uint8(pl - mismatch - 1)
		branch.add(oldByte, in)
		branch.add(key[depth+mismatch], &leaf{key: key, value: value})
		return branch, true
	}
	depth += pl
	b := key[depth]
	if child := in.find(b); child != nil {
		fresh, added := insert(child, key, depth+1, value)
		if fresh != child {
			in.replace(b, fresh)
		}
		return in, added
	}
	return in.add(b, &leaf{key: key, value: value}), true
}

// Delete removes key and reports whether it was present.
func (t *Tree) Delete(key Key) bool {
	if t.root == nil {
		return false
	}
	fresh, deleted := remove(t.root, key, 0)
	if deleted {
		t.root = fresh
		t.size--
	}
	return deleted
}

func remove(n node, key Key, depth int) (node, bool) {
	if l, ok := n.(*leaf); ok {
		if l.key == key {
			return nil, true
		}
		return n, false
	}
	in := n.(inner)
	h := in.hdr()
	for i := 0; i < int(h.prefixLen); i++ {
		if h.prefix[i] != key[depth+i] {
			return n, false
		}
	}
	depth += int(h.prefixLen)
	b := key[depth]
	child := in.find(b)
	if child == nil {
		return n, false
	}
	fresh, deleted := remove(child, key, depth+1)
	if !deleted {
		return n, false
	}
	if fresh == nil {
		return in.remove(b), true
	}
	if fresh != child {
		in.replace(b, fresh)
	}
	return in, true
}

// Min returns the smallest key and its value.
func (t *Tree) Min() (Key, interface{}, bool) {
	if t.root == nil {
		return Key{}, nil, false
	}
	l := t.root.minLeaf()
	return l.key, l.value, true
}

// Max returns the largest key and its value.
func (t *Tree) Max() (Key, interface{}, bool) {
	if t.root == nil {
		return Key{}, nil, false
	}
	l := t.root.maxLeaf()
	return l.key, l.value, true
}

// Keys returns all keys in ascending order.
func (t *Tree) Keys() []Key {
	keys := make([]Key, 0, t.size)
	for it := t.Iterator(); ; {
		key, _, ok := it.Next()
		if !ok {
			break
		}
		keys = append(keys, key)
	}
	return keys
}
