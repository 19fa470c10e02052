package roar64

import "github.com/aglyzov/roar64/art"

// maxHigh is the high part of 0xFFFFFFFFFFFFFFFF.
var maxHigh = art.Key{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// highPart encodes the upper 48 bits of v as a big-endian 6-byte key.
// Big-endian is load-bearing: it makes the tree's lexicographic byte
// order equal the unsigned numeric order of the values.
func highPart(v uint64) art.Key {
	return art.Key{
		byte(v >> 56),
		byte(v >> 48),
		byte(v >> 40),
		byte(v >> 32),
		byte(v >> 24),
		byte(v >> 16),
	}
}

// lowPart is the 16-bit remainder of v.
func lowPart(v uint64) uint16 {
	return uint16(v)
}

func combine(high art.Key, low uint16) uint64 {
	return uint64(high[0])<<56 |
		uint64(high[1])<<48 |
		uint64(high[2])<<40 |
		uint64(high[3])<<32 |
		uint64(high[4])<<24 |
		uint64(high[5])<<16 |
		uint64(low)
}

// nextHigh returns the successor of high in the 48-bit key space.
// The caller guards against calling it on maxHigh.
func nextHigh(high art.Key) art.Key {
	for i := art.KeyLen - 1; i >= 0; i-- {
		high[i]++
		if high[i] != 0 {
			break
		}
	}
	return high
}
