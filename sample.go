package hashtable

import (
	"time"

	"golang.org/x/exp/rand"
)

var sampleRand = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

// fairRandomWindow is how many single-step Scan calls FairRandomElement
// samples from, versus the single window RandomElement uses: enough to
// smooth out the bias a single bucket's occupancy introduces.
const fairRandomWindow = 40

func (t *Table[K, E]) randCursor() uint64 {
	nb := t.cursorBucketBound()
	if nb == 0 {
		return 0
	}
	return sampleRand.Uint64() & uint64(nb-1)
}

// cursorBucketBound returns an upper bound on how many single-step Scan
// calls a full lap of the cursor space takes: the larger of the two
// physical tables' bucket counts while rehashing (the true cycle length
// is the smaller table's, but overshooting here only means a few wasted
// steps once every element has already been visited, never an
// undercount), or main's bucket count otherwise.
func (t *Table[K, E]) cursorBucketBound() int {
	nb := t.main.numBuckets()
	if tn := t.rehashTarget.numBuckets(); tn > nb {
		nb = tn
	}
	return nb
}

// RandomElement returns a uniformly random element from one
// randomly-chosen bucket's worth of slots. It's weak in the sense
// that a sparse bucket near a dense one gets disproportionate
// representation; FairRandomElement trades speed for evenness.
func (t *Table[K, E]) RandomElement() (E, bool) {
	if t.size() == 0 {
		return zeroOf[E](), false
	}
	var candidates []E
	t.Scan(t.randCursor(), ScanSingleStep, func(e E) {
		candidates = append(candidates, e)
	})
	if len(candidates) == 0 {
		return zeroOf[E](), false
	}
	return candidates[sampleRand.Intn(len(candidates))], true
}

// FairRandomElement returns a uniformly random element sampled across
// fairRandomWindow buckets instead of one, for a flatter distribution
// at the cost of more work per call. The scan wraps through cursor 0
// rather than stopping there: a returned cursor of 0 only means this
// step landed on the last cursor before a new lap starts, not that the
// lap is complete, so it must not be treated as an early-exit signal.
func (t *Table[K, E]) FairRandomElement() (E, bool) {
	if t.size() == 0 {
		return zeroOf[E](), false
	}
	var candidates []E
	cursor := t.randCursor()
	window := fairRandomWindow
	if bound := t.cursorBucketBound(); bound < window {
		window = bound
	}
	for i := 0; i < window; i++ {
		cursor = t.Scan(cursor, ScanSingleStep, func(e E) {
			candidates = append(candidates, e)
		})
	}
	if len(candidates) == 0 {
		return t.RandomElement()
	}
	return candidates[sampleRand.Intn(len(candidates))], true
}

// SampleElements calls fn for up to n distinct elements, chosen from a
// random starting point, and returns how many were emitted (capped at
// Size()). Like FairRandomElement it relies on ScanSingleStep and wraps
// through cursor 0 instead of stopping there, continuing until n
// elements have been emitted or a full lap of the cursor space has been
// made.
func (t *Table[K, E]) SampleElements(n int, fn func(E)) int {
	size := t.size()
	if n > size {
		n = size
	}
	if n <= 0 {
		return 0
	}
	cursor := t.randCursor()
	count := 0
	bound := t.cursorBucketBound()
	for visited := 0; count < n && visited < bound; visited++ {
		cursor = t.Scan(cursor, ScanSingleStep, func(e E) {
			if count < n {
				fn(e)
				count++
			}
		})
	}
	return count
}
