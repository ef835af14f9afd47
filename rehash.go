package hashtable

// maybeRehashOnRead performs one rehash step if a rehash is in
// progress, the policy is ALLOW, and rehashing isn't paused. Every
// lookup funnels through this, including the internal lookup that
// Add/Replace/Delete/Pop begin with.
func (t *Table[K, E]) maybeRehashOnRead() {
	if !t.isRehashing() || t.pauseRehash.Paused() {
		return
	}
	if GetResizePolicy() == PolicyAllow {
		t.rehashOneBucket()
	}
}

// stepRehashForWrite performs one rehash step under the AVOID policy.
// Call this once at the top of every mutating operation; under ALLOW
// the step already happened inside that operation's internal lookup,
// so this only fires for AVOID to avoid double-stepping.
func (t *Table[K, E]) stepRehashForWrite() {
	if !t.isRehashing() || t.pauseRehash.Paused() {
		return
	}
	if GetResizePolicy() == PolicyAvoid {
		t.rehashOneBucket()
	}
}

// rehashOneBucket migrates the bucket at rehashIdx and advances the
// cursor. If that was the last live bucket, the rehash completes:
// table 1 becomes table 0 and RehashingCompleted fires.
func (t *Table[K, E]) rehashOneBucket() {
	src := &t.main
	srcMask := src.mask()
	idx := uint64(t.rehashIdx)
	b := &src.buckets[idx]

	if b.presence != 0 {
		shrinking := t.rehashTarget.exponent < src.exponent
		var predecessorDrained bool
		if shrinking {
			pred := prevCursor(idx, srcMask)
			predecessorDrained = !src.buckets[pred].everFull
		}
		for i := 0; i < elementsPerBucket; i++ {
			if !b.occupied(i) {
				continue
			}
			elem := b.elements[i]
			if shrinking && predecessorDrained {
				// Every element that ever hashed here still hashes to
				// this same index under the smaller mask, so the
				// bucket's own index can stand in for a recomputed
				// hash once we know no earlier bucket overflowed into
				// it (no probing chain to preserve). The fingerprint
				// isn't derivable from idx, though: it has to come
				// from the source slot, same as the element itself.
				t.placeAt(&t.rehashTarget, idx, b.fingerprints[i], elem)
			} else {
				hash := t.typ.Hash(t.typ.KeyOf(elem))
				t.placeInto(&t.rehashTarget, hash, elem)
			}
			b.clearOccupied(i)
			src.used--
		}
	}
	b.presence = 0

	t.rehashIdx = int(nextCursor(idx, srcMask))
	if t.rehashIdx == 0 {
		if src.used != 0 {
			t.fatalf("hashtable: rehash completed with %d elements still counted in the source table", src.used)
		}
		t.main = t.rehashTarget
		t.rehashTarget = table[K, E]{exponent: -1}
		t.rehashIdx = -1
		if t.logger != nil {
			t.logger.Infof("hashtable: rehashing completed: %d buckets", t.main.numBuckets())
		}
		t.typ.RehashingCompleted(t)
	}
}

// fastForwardRehash drives an in-progress rehash to completion
// synchronously, bypassing the pause-rehash gate: a resize request
// that arrives mid-rehash needs the old rehash out of the way before
// a new one (or a direct reallocation) can start.
func (t *Table[K, E]) fastForwardRehash() {
	for t.isRehashing() {
		t.rehashOneBucket()
	}
}

// placeInto inserts elem into tbl at the first available slot found by
// probing from hash's bucket index, marking the bucket ever-full once
// it fills. The fingerprint stored alongside it is derived from the
// same hash.
func (t *Table[K, E]) placeInto(tbl *table[K, E], hash uint64, elem E) {
	mask := tbl.mask()
	t.placeAt(tbl, hash&mask, fingerprint(hash), elem)
}

// placeAt inserts elem into tbl at the first available slot found by
// probing starting from idx, storing fp as its fingerprint. Splitting
// this out from placeInto lets a caller supply a bucket index and
// fingerprint that didn't come from the same hash computation, which
// the shrink-path rehash optimization in rehashOneBucket needs: it
// knows the destination bucket index without recomputing a hash, but
// the fingerprint still has to be the one already stored on the
// source slot.
func (t *Table[K, E]) placeAt(tbl *table[K, E], idx uint64, fp uint8, elem E) {
	mask := tbl.mask()
	idx &= mask
	for {
		b := &tbl.buckets[idx]
		if !b.full() {
			slot := firstFreeSlot(b.presence)
			b.elements[slot] = elem
			b.fingerprints[slot] = fp
			b.setOccupied(slot)
			if b.full() {
				b.everFull = true
			}
			tbl.used++
			return
		}
		b.everFull = true
		idx = nextCursor(idx, mask)
	}
}
