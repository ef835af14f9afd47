package hashtable

// ScanFlags controls Scan's behavior.
type ScanFlags uint8

const (
	// ScanEmitRef signals that the callback is allowed to take a
	// reference to an emitted element that outlives the callback. In
	// Go, elements are already whatever shape the caller chose (often
	// a pointer), so this flag carries no extra machinery here beyond
	// being available for callers porting scan semantics from the
	// original design.
	ScanEmitRef ScanFlags = 1 << iota
	// ScanSingleStep makes Scan process exactly one cursor step,
	// instead of continuing through buckets it knows are part of a
	// probe chain. It trades the liveness guarantee (an element
	// present for the whole scan is guaranteed to be seen) for a
	// bounded amount of work per call; used by the sampling helpers.
	ScanSingleStep
)

// ScanFunc is called once per element visited by Scan.
type ScanFunc[E any] func(elem E)

func emitBucket[K comparable, E any](b *bucket[K, E], fn ScanFunc[E]) {
	for i := 0; i < elementsPerBucket; i++ {
		if b.occupied(i) {
			fn(b.elements[i])
		}
	}
}

// Scan visits a bounded set of buckets starting at cursor and calls fn
// for every element found there, returning the cursor to resume from.
// A returned cursor of 0 means the scan has covered the whole table.
//
// Scan never misses an element that is present for the whole duration
// of a full sweep (cursor 0 to cursor 0) and is never mutated, and
// never returns an element more than twice. It is safe to call Scan
// while the table is being incrementally rehashed, and safe to mutate
// the table between calls (including resizing it); only ScanSingleStep
// trades away the liveness guarantee.
func (t *Table[K, E]) Scan(cursor uint64, flags ScanFlags, fn ScanFunc[E]) uint64 {
	t.generation++
	if t.main.numBuckets() == 0 {
		return 0
	}
	t.pauseRehash.Acquire(1)
	defer t.pauseRehash.Release(1)

	for {
		var cont bool
		if !t.isRehashing() {
			mask := t.main.mask()
			idx := cursor & mask
			b := &t.main.buckets[idx]
			emitBucket[K, E](b, fn)
			cont = b.everFull
			cursor = nextCursor(cursor, mask)
		} else {
			cursor, cont = t.scanRehashing(cursor, fn)
		}
		if cursor == 0 {
			return 0
		}
		if flags&ScanSingleStep != 0 || !cont {
			return cursor
		}
	}
}

// scanRehashing handles one cursor step while a rehash is in progress.
// It treats main and the rehash target generically as "small"/"large"
// by bucket count: the smaller table's corresponding bucket is scanned
// once, and every sibling bucket in the larger table (the ones whose
// low bits, masked to the smaller table's size, agree with cursor) is
// scanned in turn. An element is always found in exactly one of the
// two physical tables at any instant (migrating a slot clears its
// source immediately), so scanning both sides unconditionally is
// always correct; there's no need to separately consult rehashIdx.
func (t *Table[K, E]) scanRehashing(cursor uint64, fn ScanFunc[E]) (next uint64, cont bool) {
	small, large := &t.main, &t.rehashTarget
	if small.numBuckets() > large.numBuckets() {
		small, large = large, small
	}
	m0 := small.mask()
	m1 := large.mask()
	v := cursor & m0

	emit := func(tbl *table[K, E], idx uint64) {
		b := &tbl.buckets[idx]
		emitBucket[K, E](b, fn)
		if b.everFull {
			cont = true
		}
	}

	emit(small, v&m0)
	for {
		emit(large, v&m1)
		v = (((v | m0) + 1) &^ m0) | (v & m0)
		if v&(m0^m1) == 0 {
			break
		}
	}
	return nextCursor(cursor&m0, m0), cont
}
