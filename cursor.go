package hashtable

import "math/bits"

// nextCursor and prevCursor implement the reverse-bit cursor walk used
// uniformly for probing order, rehash order and scan order: bucket
// index 0 is visited, then the index whose bits (reversed) represent
// 1, then 2, and so on. The walk is stable across table growth and
// shrink because a cursor meaningful against a smaller table's mask
// still identifies a well-defined set of buckets in a larger one (the
// ones whose low bits match).

func nextCursor(cursor, mask uint64) uint64 {
	cursor |= ^mask
	cursor = bits.Reverse64(cursor)
	cursor++
	return bits.Reverse64(cursor)
}

func prevCursor(cursor, mask uint64) uint64 {
	cursor &= mask
	cursor = bits.Reverse64(cursor)
	cursor--
	return bits.Reverse64(cursor) & mask
}

// CursorLess reports whether a comes before b in the reverse-bit walk
// order defined by mask. It's exported because callers that drive
// their own scan loops (e.g. sampling across several Scan calls) need
// to compare cursors the same way the table does internally.
func CursorLess(a, b, mask uint64) bool {
	return bits.Reverse64(a&mask) < bits.Reverse64(b&mask)
}

func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
