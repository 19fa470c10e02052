package art

import (
	"sort"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(it *Iterator) []Key {
	var keys []Key
	for {
		k, _, ok := it.Next()
		if !ok {
			return keys
		}
		keys = append(keys, k)
	}
}

func TestIterator_EmptyTree(t *testing.T) {
	t.Parallel()

	tr := New()

	assert.Empty(t, collect(tr.Iterator()))
	assert.Empty(t, collect(tr.ReverseIterator()))
	assert.Empty(t, collect(tr.IteratorFrom(key48(42))))
}

func TestIterator_ForwardAndReverse(t *testing.T) {
	t.Parallel()

	const (
		total = 10_000
		seed  = 987654321
	)

	var (
		tr   = New()
		fake = gofakeit.New(seed)
		keys []Key
	)
	seen := map[Key]bool{}
	for i := 0; i < total; i++ {
		k := key48(fake.Uint64() & 0xFFFFFFFFFFFF)
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
		tr.Insert(k, nil)
	}
	sort.Slice(keys, func(i, j int) bool { return Compare(keys[i], keys[j]) < 0 })

	forward := collect(tr.Iterator())
	require.Equal(t, keys, forward)

	backward := collect(tr.ReverseIterator())
	require.Len(t, backward, len(keys))
	for i, k := range backward {
		assert.Equal(t, keys[len(keys)-1-i], k, i)
	}
}

func TestIterator_Peek(t *testing.T) {
	t.Parallel()

	tr := New()
	tr.Insert(key(0, 0, 0, 0, 0, 1), "a")
	tr.Insert(key(0, 0, 0, 0, 0, 2), "b")

	it := tr.Iterator()
	k, v, ok := it.Peek()
	require.True(t, ok)
	assert.Equal(t, key(0, 0, 0, 0, 0, 1), k)
	assert.Equal(t, "a", v)

	// peek does not advance
	k, _, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, key(0, 0, 0, 0, 0, 1), k)
}

func TestIterator_Seek(t *testing.T) {
	t.Parallel()

	tr := New()
	var present []uint64
	for _, h := range []uint64{10, 20, 30, 0x7FFFFFFFFFFF, 0x800000000000} {
		tr.Insert(key48(h), h)
		present = append(present, h)
	}

	for _, tcase := range []struct {
		Name    string
		From    uint64
		Expect  []uint64
		Reverse bool
	}{
		{"exact hit", 20, []uint64{20, 30, 0x7FFFFFFFFFFF, 0x800000000000}, false},
		{"between keys", 11, []uint64{20, 30, 0x7FFFFFFFFFFF, 0x800000000000}, false},
		{"before all", 0, present, false},
		{"past all", 0x800000000001, nil, false},
		{"sign boundary", 0x800000000000, []uint64{0x800000000000}, false},
		{"reverse exact", 20, []uint64{20, 10}, true},
		{"reverse between", 19, []uint64{10}, true},
		{"reverse before all", 5, nil, true},
		{"reverse past all", 0xFFFFFFFFFFFF, []uint64{0x800000000000, 0x7FFFFFFFFFFF, 30, 20, 10}, true},
	} {
		tcase := tcase
		t.Run(tcase.Name, func(t *testing.T) {
			t.Parallel()

			var it *Iterator
			if tcase.Reverse {
				it = tr.ReverseIteratorFrom(key48(tcase.From))
			} else {
				it = tr.IteratorFrom(key48(tcase.From))
			}

			var got []uint64
			for {
				_, v, ok := it.Next()
				if !ok {
					break
				}
				got = append(got, v.(uint64))
			}
			assert.Equal(t, tcase.Expect, got)
		})
	}
}

func TestIterator_SeekRepositions(t *testing.T) {
	t.Parallel()

	tr := New()
	for _, h := range []uint64{1, 2, 3, 4, 5} {
		tr.Insert(key48(h), h)
	}

	it := tr.Iterator()
	_, _, ok := it.Next()
	require.True(t, ok)

	it.Seek(key48(4))
	k, v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, key48(4), k)
	assert.Equal(t, uint64(4), v)

	// seeking backward from the current position is allowed too
	it.Seek(key48(2))
	k, _, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, key48(2), k)
}
