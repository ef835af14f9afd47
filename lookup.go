package hashtable

// tableSearchOrder returns which physical tables to probe, in order.
// While rehashing, the destination table is probed first: it holds
// whatever has already migrated, and under InstantRehashing or a
// fast-forward it may in fact hold everything.
func (t *Table[K, E]) tableSearchOrder() [2]int {
	if t.isRehashing() {
		return [2]int{1, 0}
	}
	return [2]int{0, -1}
}

// locate finds the element stored under key, if any, performing one
// incremental rehash step first per the ALLOW policy.
func (t *Table[K, E]) locate(key K) (E, location, bool) {
	t.maybeRehashOnRead()
	return t.locateHash(key, t.typ.Hash(key))
}

func (t *Table[K, E]) locateHash(key K, hash uint64) (E, location, bool) {
	fp := fingerprint(hash)
	for _, ti := range t.tableSearchOrder() {
		if ti < 0 {
			continue
		}
		tbl := t.tableByIndex(ti)
		if tbl.numBuckets() == 0 {
			continue
		}
		mask := tbl.mask()
		idx := hash & mask
		for {
			b := &tbl.buckets[idx]
			for i := 0; i < elementsPerBucket; i++ {
				if !b.occupied(i) || b.fingerprints[i] != fp {
					continue
				}
				elem := b.elements[i]
				if t.typ.Equal(t.typ.KeyOf(elem), key) {
					return elem, location{table: ti, bucket: idx, slot: i}, true
				}
			}
			if !b.everFull {
				break
			}
			idx = nextCursor(idx, mask)
		}
	}
	return zeroOf[E](), location{}, false
}

// Find looks up key and returns its element, if present.
func (t *Table[K, E]) Find(key K) (E, bool) {
	t.generation++
	elem, _, found := t.locate(key)
	return elem, found
}

// Contains reports whether key is present.
func (t *Table[K, E]) Contains(key K) bool {
	_, found := t.Find(key)
	return found
}
