package hashtable

// Fill ratio thresholds, expressed as percentages to keep the planner
// in integer arithmetic. AVOID uses the hard thresholds to decide when
// to grow or shrink, trading memory for fewer, cheaper resizes; every
// other policy uses the soft ones (FORBID never shrinks). Whatever
// triggers a resize, the new table is sized at the soft max fill.
const (
	softMaxFillPercent = 76
	hardMaxFillPercent = 90
	softMinFillPercent = 13
	hardMinFillPercent = 3
)

// minExponent bounds how small an allocated table is ever allowed to
// be; below this, per-resize overhead stops being worth it.
const minExponent = 2

// targetExponent computes the smallest exponent e such that
// (1<<e)*elementsPerBucket slots hold capacity elements at no more
// than maxFillPercent% full.
func targetExponent(capacity int, maxFillPercent int) int {
	if capacity <= 0 {
		return 0
	}
	slotsNeeded := ceilDiv(capacity*100, maxFillPercent)
	bucketsNeeded := ceilDiv(slotsNeeded, elementsPerBucket)
	if bucketsNeeded < 1 {
		bucketsNeeded = 1
	}
	return ceilLog2(bucketsNeeded)
}

func allocateBuckets[K comparable, E any](exponent int) ([]bucket[K, E], error) {
	return make([]bucket[K, E], 1<<uint(exponent)), nil
}

// tryExpand is the common resize entry point: it sizes a new table for
// at least minCapacity elements (at the soft fill ratio, so the new
// table has headroom) and either allocates table 0 directly (the very
// first allocation) or starts an incremental rehash into a fresh
// table 1.
func (t *Table[K, E]) tryExpand(minCapacity int) (bool, error) {
	newExp := targetExponent(minCapacity, softMaxFillPercent)
	if newExp < minExponent {
		newExp = minExponent
	}

	if t.main.exponent < 0 {
		buckets, err := allocateBuckets[K, E](newExp)
		if err != nil {
			return false, err
		}
		t.main = table[K, E]{buckets: buckets, exponent: newExp}
		return true, nil
	}

	if t.isRehashing() {
		t.fastForwardRehash()
	}
	if newExp == t.main.exponent {
		return false, nil
	}

	buckets, err := allocateBuckets[K, E](newExp)
	if err != nil {
		return false, err
	}
	if t.logger != nil {
		t.logger.Infof("hashtable: rehashing started: %d -> %d buckets",
			t.main.numBuckets(), 1<<uint(newExp))
	}
	t.rehashTarget = table[K, E]{buckets: buckets, exponent: newExp}
	t.rehashIdx = 0
	t.typ.RehashingStarted(t)
	if t.typ.InstantRehashing {
		t.fastForwardRehash()
	}
	return true, nil
}

func (t *Table[K, E]) expandIfNeeded() (bool, error) {
	active := t.writeTable()
	capacity := active.numBuckets() * elementsPerBucket
	if capacity == 0 {
		return t.tryExpand(1)
	}
	maxFillPercent := softMaxFillPercent
	if GetResizePolicy() == PolicyAvoid {
		maxFillPercent = hardMaxFillPercent
	}
	if (t.size()+1)*100 > capacity*maxFillPercent {
		return t.tryExpand(t.size() + 1)
	}
	return false, nil
}

func (t *Table[K, E]) shrinkIfNeeded() (bool, error) {
	if GetResizePolicy() == PolicyForbid {
		return false, nil
	}
	if t.isRehashing() || t.pauseAutoShrink.Paused() {
		return false, nil
	}
	capacity := t.main.numBuckets() * elementsPerBucket
	if capacity == 0 {
		return false, nil
	}
	minFillPercent := softMinFillPercent
	if GetResizePolicy() == PolicyAvoid {
		minFillPercent = hardMinFillPercent
	}
	if t.main.used*100 < capacity*minFillPercent {
		return t.tryExpand(t.main.used)
	}
	return false, nil
}

// TryExpand resizes the table for at least minCapacity elements if it
// isn't already big enough, returning whether a resize was started and
// any allocation error. This resolves the original design's ambiguous
// "0 could mean already-big-enough or out-of-memory" return: the two
// cases are now distinguishable (grew=false,err=nil vs err!=nil).
func (t *Table[K, E]) TryExpand(minCapacity int) (bool, error) {
	t.generation++
	if targetExponent(minCapacity, softMaxFillPercent) <= t.writeTable().exponent {
		return false, nil
	}
	return t.tryExpand(minCapacity)
}

// Expand is like TryExpand but treats an allocation failure as fatal,
// matching the rest of the package's "allocation failure aborts the
// process" error model.
func (t *Table[K, E]) Expand(minCapacity int) {
	if _, err := t.TryExpand(minCapacity); err != nil {
		t.fatalf("hashtable: expand: %v", err)
	}
}

// ExpandIfNeeded grows the table if its fill ratio is over the active
// policy's max threshold. Normally called automatically by Add et al.
func (t *Table[K, E]) ExpandIfNeeded() (bool, error) {
	t.generation++
	return t.expandIfNeeded()
}

// ShrinkIfNeeded shrinks the table if its fill ratio is under the
// active policy's min threshold. Normally called automatically after
// Delete/Pop.
func (t *Table[K, E]) ShrinkIfNeeded() (bool, error) {
	t.generation++
	return t.shrinkIfNeeded()
}
