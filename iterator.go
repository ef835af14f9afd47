package hashtable

import "golang.org/x/exp/rand"

// iterFingerprint is a cheap stand-in for the "SipHash mix of both
// tables' pointers/exponents/used-counts" fingerprint: Go slices don't
// expose a stable address the way C arrays do, so instead the table
// keeps a generation counter bumped by every lookup, write, scan,
// resize and Empty, and the fingerprint is just that counter. It
// changes on any of those calls, mutating or not, which is what the
// unsafe iterator's contract needs to detect a violation; calls that
// only read counters (Size, Stats, IsRehashing) leave it unchanged.
func (t *Table[K, E]) iterFingerprint() uint64 {
	return t.generation
}

// Iterator walks every live element once. Its contract forbids any
// other call on the table (mutating or not) between Next calls:
// Reset checks a fingerprint recorded at the first Next and panics if
// it has changed.
type Iterator[K comparable, E any] struct {
	t           *Table[K, E]
	tableIdx    int
	bucketIdx   uint64
	visited     uint64
	slot        int
	fingerprint uint64
	started     bool
}

// Iter returns an unsafe iterator over every element currently stored.
func (t *Table[K, E]) Iter() *Iterator[K, E] {
	return &Iterator[K, E]{t: t}
}

// Next advances the iterator, returning the next element or
// (zero, false) once exhausted.
func (it *Iterator[K, E]) Next() (E, bool) {
	t := it.t
	if !it.started {
		it.started = true
		it.fingerprint = t.iterFingerprint()
		it.tableIdx = 0
		if nb := t.main.numBuckets(); nb > 0 {
			it.bucketIdx = rand.Uint64() & uint64(nb-1)
		}
		it.slot = 0
	}
	for {
		if it.tableIdx > 1 {
			return zeroOf[E](), false
		}
		tbl := t.tableByIndex(it.tableIdx)
		nb := uint64(tbl.numBuckets())
		if nb == 0 || it.visited >= nb {
			it.tableIdx++
			it.bucketIdx = 0
			it.visited = 0
			it.slot = 0
			continue
		}
		b := &tbl.buckets[it.bucketIdx%nb]
		for it.slot < elementsPerBucket {
			slot := it.slot
			it.slot++
			if b.occupied(slot) {
				return b.elements[slot], true
			}
		}
		it.bucketIdx++
		it.visited++
		it.slot = 0
	}
}

// Reset rewinds the iterator to the beginning, after verifying that no
// other call was made on the table while it was active.
func (it *Iterator[K, E]) Reset() {
	if it.started && it.fingerprint != it.t.iterFingerprint() {
		it.t.fatalf("hashtable: unsafe iterator used across another call on the table")
	}
	*it = Iterator[K, E]{t: it.t}
}

// SafeIterator walks every live element once, like Iterator, but
// pauses rehashing for its duration instead of asserting nothing else
// touched the table. Lookups and in-place Replace of the
// currently-or-already-emitted element are allowed; the table may not
// be resized while a SafeIterator is active.
type SafeIterator[K comparable, E any] struct {
	t         *Table[K, E]
	tableIdx  int
	bucketIdx uint64
	slot      int
	started   bool
}

// SafeIter returns a safe iterator over every element currently
// stored.
func (t *Table[K, E]) SafeIter() *SafeIterator[K, E] {
	return &SafeIterator[K, E]{t: t}
}

// Next advances the iterator, returning the next element or
// (zero, false) once exhausted.
func (it *SafeIterator[K, E]) Next() (E, bool) {
	t := it.t
	if !it.started {
		it.started = true
		t.pauseRehash.Acquire(1)
		it.tableIdx = 0
		it.bucketIdx = 0
		it.slot = 0
	}
	for {
		if it.tableIdx > 1 {
			return zeroOf[E](), false
		}
		tbl := t.tableByIndex(it.tableIdx)
		nb := uint64(tbl.numBuckets())
		if nb == 0 || it.bucketIdx >= nb {
			it.tableIdx++
			it.bucketIdx = 0
			it.slot = 0
			continue
		}
		b := &tbl.buckets[it.bucketIdx]
		for it.slot < elementsPerBucket {
			slot := it.slot
			it.slot++
			if b.occupied(slot) {
				return b.elements[slot], true
			}
		}
		it.bucketIdx++
		it.slot = 0
	}
}

// Reset rewinds the iterator to the beginning, releasing the rehash
// pause (if Next was ever called) so a fresh pass can re-acquire it.
func (it *SafeIterator[K, E]) Reset() {
	if it.started {
		it.t.pauseRehash.Release(1)
	}
	*it = SafeIterator[K, E]{t: it.t}
}
