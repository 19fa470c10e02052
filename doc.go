// Package roar64 implements a compressed bitmap over the full unsigned
// 64-bit value range.
//
// Values are split into a 48-bit high part and a 16-bit low part. The
// high parts key an Adaptive Radix Tree (package art) whose leaves hold
// containers (package container) of the low parts sharing that high.
// A container is one of three self-converting forms:
//
//   - array  - a sorted slice, up to 4096 values;
//   - bitmap - a fixed 65536-bit array, above 4096 values;
//   - run    - run-length encoded intervals, when they are smaller.
//
// The split keeps clustered sets compact: dense runs, sparse tails and
// small clusters each land in the form that fits them.
//
// All ordering is unsigned: 0, 1, ..., 2^63-1, 2^63, ..., 2^64-1. The
// high part is encoded big-endian so that the tree's lexicographic key
// order is the numeric order.
//
// A Bitmap is single-writer: no operation is safe concurrently with a
// mutation, and iterators are invalidated by any mutation of the bitmap
// they came from.
package roar64
