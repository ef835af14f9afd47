package hashtable

import "math/bits"

// location identifies one slot: which physical table, which bucket in
// it, and which slot in that bucket.
type location struct {
	table  int
	bucket uint64
	slot   int
}

// slotBits is the number of bits needed to represent a slot index.
var slotBits = bits.Len(uint(elementsPerBucket - 1))

// Position is an opaque token produced by FindPositionForInsert and
// TwoPhasePopFind, consumed by InsertAtPosition and TwoPhasePopDelete.
// A Position from FindPositionForInsert is only valid until the next
// call of any kind on the table that produced it, besides the matching
// InsertAtPosition: even a lookup can run an incremental rehash step
// that fills the reserved slot or swaps the tables. A Position from
// TwoPhasePopFind is only valid until the next mutating call besides
// the matching TwoPhasePopDelete. A stale Position is not detected.
type Position uint64

func encodePosition(loc location) Position {
	raw := loc.bucket<<uint(slotBits+1) | uint64(loc.slot)<<1 | uint64(loc.table)
	return Position(raw + 1)
}

func decodePosition(p Position) location {
	raw := uint64(p) - 1
	table := int(raw & 1)
	raw >>= 1
	slot := int(raw & uint64((1<<uint(slotBits))-1))
	raw >>= uint(slotBits)
	return location{table: table, bucket: raw, slot: slot}
}
