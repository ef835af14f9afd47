package hashtable

// insertNew grows the table if needed and places a brand new element
// (the caller has already confirmed the key isn't present).
func (t *Table[K, E]) insertNew(key K, elem E) {
	if _, err := t.expandIfNeeded(); err != nil {
		t.fatalf("hashtable: expand: %v", err)
	}
	hash := t.typ.Hash(key)
	t.placeInto(t.writeTable(), hash, elem)
}

// Add inserts elem if no element with the same key is already present.
// It reports whether the element was added.
func (t *Table[K, E]) Add(elem E) bool {
	t.generation++
	key := t.typ.KeyOf(elem)
	t.stepRehashForWrite()
	if _, _, found := t.locate(key); found {
		return false
	}
	t.insertNew(key, elem)
	return true
}

// AddOrFind inserts elem if absent; otherwise it returns the existing
// element without modifying the table.
func (t *Table[K, E]) AddOrFind(elem E) (existing E, added bool) {
	t.generation++
	key := t.typ.KeyOf(elem)
	t.stepRehashForWrite()
	if ex, _, found := t.locate(key); found {
		return ex, false
	}
	t.insertNew(key, elem)
	return elem, true
}

// Replace inserts elem, overwriting (and destroying) any existing
// element with the same key. It reports whether the element is new.
func (t *Table[K, E]) Replace(elem E) bool {
	t.generation++
	key := t.typ.KeyOf(elem)
	t.stepRehashForWrite()
	if old, loc, found := t.locate(key); found {
		tbl := t.tableByIndex(loc.table)
		tbl.buckets[loc.bucket].elements[loc.slot] = elem
		t.typ.Destroy(old)
		return false
	}
	t.insertNew(key, elem)
	return true
}

// FindPositionForInsert looks up key. If present, it returns the
// existing element and a zero Position. If absent, it reserves a slot
// (writing the fingerprint but not marking it occupied) and returns a
// Position that must be completed with InsertAtPosition before any
// other call on this table, lookups included (see Position).
func (t *Table[K, E]) FindPositionForInsert(key K) (pos Position, existing E, found bool) {
	t.generation++
	t.stepRehashForWrite()
	if ex, _, ok := t.locate(key); ok {
		return 0, ex, true
	}
	if _, err := t.expandIfNeeded(); err != nil {
		t.fatalf("hashtable: expand: %v", err)
	}
	hash := t.typ.Hash(key)
	ti := 0
	if t.isRehashing() {
		ti = 1
	}
	tbl := t.tableByIndex(ti)
	mask := tbl.mask()
	idx := hash & mask
	for {
		b := &tbl.buckets[idx]
		if !b.full() {
			slot := firstFreeSlot(b.presence)
			b.fingerprints[slot] = fingerprint(hash)
			return encodePosition(location{table: ti, bucket: idx, slot: slot}), zeroOf[E](), false
		}
		b.everFull = true
		idx = nextCursor(idx, mask)
	}
}

// InsertAtPosition completes a reservation made by
// FindPositionForInsert, storing elem at the reserved slot.
func (t *Table[K, E]) InsertAtPosition(pos Position, elem E) {
	t.generation++
	loc := decodePosition(pos)
	tbl := t.tableByIndex(loc.table)
	b := &tbl.buckets[loc.bucket]
	b.elements[loc.slot] = elem
	b.setOccupied(loc.slot)
	if b.full() {
		b.everFull = true
	}
	tbl.used++
}
