package hashtable

// removeAt clears a slot. Per invariant, the bucket's ever-full bit is
// left untouched: it's only ever cleared by a full rehash of that
// bucket, never by a single deletion, since clearing it early would
// break probing for any other element that overflowed past this
// bucket.
func (t *Table[K, E]) removeAt(loc location) {
	tbl := t.tableByIndex(loc.table)
	b := &tbl.buckets[loc.bucket]
	b.clearOccupied(loc.slot)
	b.elements[loc.slot] = zeroOf[E]() // drop the reference so the GC can reclaim it
	tbl.used--
}

func (t *Table[K, E]) afterDelete() {
	if _, err := t.shrinkIfNeeded(); err != nil {
		t.fatalf("hashtable: shrink: %v", err)
	}
}

// Delete removes the element stored under key, calling Destroy on it.
// It reports whether an element was removed.
func (t *Table[K, E]) Delete(key K) bool {
	t.generation++
	t.stepRehashForWrite()
	elem, loc, found := t.locate(key)
	if !found {
		return false
	}
	t.removeAt(loc)
	t.typ.Destroy(elem)
	t.afterDelete()
	return true
}

// Pop removes and returns the element stored under key without
// calling Destroy: ownership passes to the caller.
func (t *Table[K, E]) Pop(key K) (E, bool) {
	t.generation++
	t.stepRehashForWrite()
	elem, loc, found := t.locate(key)
	if !found {
		return zeroOf[E](), false
	}
	t.removeAt(loc)
	t.afterDelete()
	return elem, true
}

// TwoPhasePopFind locates the element under key and, if found, pauses
// rehashing until TwoPhasePopDelete is called with the returned
// Position. This lets a caller inspect an element before committing
// to removing it, without the table moving it out from under them via
// an incremental rehash step in between.
func (t *Table[K, E]) TwoPhasePopFind(key K) (elem E, pos Position, found bool) {
	t.generation++
	t.stepRehashForWrite()
	elem, loc, found := t.locate(key)
	if !found {
		return zeroOf[E](), 0, false
	}
	t.pauseRehash.Acquire(1)
	return elem, encodePosition(loc), true
}

// TwoPhasePopDelete completes a TwoPhasePopFind, removing the element
// at pos without calling Destroy.
func (t *Table[K, E]) TwoPhasePopDelete(pos Position) {
	t.generation++
	loc := decodePosition(pos)
	t.removeAt(loc)
	t.pauseRehash.Release(1)
	t.afterDelete()
}
