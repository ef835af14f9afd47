// Package hashtable implements a cache-line-conscious, open-addressing
// hash table with incremental rehashing and a stateless, cursor-based
// scan. It is meant as the core keyspace structure of an in-memory
// key/value server: callers own a single opaque element per slot
// (typically a pointer to a struct that embeds its own key), and the
// table never copies or compares element contents beyond what the
// caller's Type[K, E] callbacks do.
//
// A Table is not safe for concurrent use. Every operation is expected
// to be called from a single goroutine at a time; the caller is
// responsible for serializing access, exactly like a plain Go map.
package hashtable

import (
	"fmt"

	"github.com/kvcore/hashtable/internal/pause"
	"github.com/kvcore/hashtable/logging"
)

// ResizePolicy controls how much incremental rehashing work piggybacks
// on normal operations, and whether operations are even allowed to
// trigger a resize at all.
type ResizePolicy int

const (
	// PolicyAllow performs one rehash step per lookup (reads and the
	// internal lookup every write begins with) and resizes eagerly.
	PolicyAllow ResizePolicy = iota
	// PolicyAvoid performs one rehash step per write only, and only
	// resizes when the hard fill thresholds are crossed.
	PolicyAvoid
	// PolicyForbid never performs an incremental rehash step and never
	// shrinks the table. Inserts still expand the table once the soft
	// fill threshold is crossed, and such a resize (like an explicit
	// Expand) first fast-forwards any rehash already in progress.
	PolicyForbid
)

// Process-wide knobs. Per the table's single-threaded-cooperative
// model these are plain package variables: the caller is expected to
// serialize changes the same way they serialize every other operation
// on a Table.
var (
	resizePolicy = PolicyAllow
	hashSeed     [16]byte
)

// SetResizePolicy sets the process-wide resize policy.
func SetResizePolicy(p ResizePolicy) { resizePolicy = p }

// GetResizePolicy returns the current process-wide resize policy.
func GetResizePolicy() ResizePolicy { return resizePolicy }

// SetHashSeed sets the process-wide 16-byte hash seed. Changing it
// after any Table has been populated does not rehash existing tables;
// it only affects future Hash callback invocations that choose to use
// it (callers that want seed-dependent hashing read it via HashSeed).
func SetHashSeed(seed [16]byte) { hashSeed = seed }

// HashSeed returns the current process-wide hash seed.
func HashSeed() [16]byte { return hashSeed }

// Type describes how a Table should treat the elements stored in it.
// Hash and KeyOf are mandatory. Every other field has a
// sensible default and may be left zero.
type Type[K comparable, E any] struct {
	// Hash computes the hash of a key.
	Hash func(key K) uint64
	// KeyOf extracts the key from an element.
	KeyOf func(elem E) K
	// Equal reports whether two keys are the same. Defaults to ==.
	Equal func(a, b K) bool
	// Destroy is called on an element when Replace overwrites it, or
	// when Delete, Empty or Release removes it. It is never called for
	// Add (which leaves an existing element alone), Pop or the
	// two-phase pop, which hand ownership back to the caller instead.
	Destroy func(elem E)
	// MetadataSize reports how many bytes of caller-reserved metadata
	// the caller associates with the table. Defaults to 0. The table
	// never calls it and reserves no metadata storage of its own.
	MetadataSize func() int
	// RehashingStarted is called synchronously when a resize begins an
	// incremental rehash.
	RehashingStarted func(t *Table[K, E])
	// RehashingCompleted is called synchronously when an incremental
	// rehash finishes moving every bucket over.
	RehashingCompleted func(t *Table[K, E])
	// InstantRehashing, if true, makes every resize fast-forward its
	// rehash to completion synchronously instead of spreading it across
	// later operations.
	InstantRehashing bool
}

func (typ *Type[K, E]) withDefaults() *Type[K, E] {
	out := *typ
	if out.Equal == nil {
		out.Equal = func(a, b K) bool { return a == b }
	}
	if out.Destroy == nil {
		out.Destroy = func(E) {}
	}
	if out.MetadataSize == nil {
		out.MetadataSize = func() int { return 0 }
	}
	if out.RehashingStarted == nil {
		out.RehashingStarted = func(*Table[K, E]) {}
	}
	if out.RehashingCompleted == nil {
		out.RehashingCompleted = func(*Table[K, E]) {}
	}
	if out.Hash == nil {
		panic("hashtable: Type.Hash is mandatory")
	}
	if out.KeyOf == nil {
		panic("hashtable: Type.KeyOf is mandatory")
	}
	return &out
}

// NewIdentityType builds a Type[E, E] for callers whose element type is
// also its own key (e.g. a string set).
func NewIdentityType[E comparable](hash func(E) uint64) *Type[E, E] {
	return &Type[E, E]{
		Hash:  hash,
		KeyOf: func(e E) E { return e },
	}
}

// table is one of the (up to two) physical arrays backing a Table.
type table[K comparable, E any] struct {
	buckets  []bucket[K, E]
	exponent int // number of buckets is 1<<exponent; -1 means unallocated
	used     int
}

func (t *table[K, E]) numBuckets() int {
	if t.exponent < 0 {
		return 0
	}
	return 1 << t.exponent
}

func (t *table[K, E]) mask() uint64 {
	n := t.numBuckets()
	if n == 0 {
		return 0
	}
	return uint64(n - 1)
}

// Table is a cache-line-conscious open-addressing hash table with
// incremental rehashing.
type Table[K comparable, E any] struct {
	typ          *Type[K, E]
	main         table[K, E]
	rehashTarget table[K, E]
	rehashIdx    int // index into main.buckets of the next bucket to migrate; -1 when not rehashing

	pauseRehash     pause.Counter
	pauseAutoShrink pause.Counter

	logger     logging.Logger
	generation uint64 // bumped by every lookup, write, scan, resize and Empty; backs unsafe-iterator fingerprinting
}

// NewTable creates an empty table. logger may be nil, in which case
// lifecycle events are not logged and fatal assertions simply panic.
func NewTable[K comparable, E any](typ *Type[K, E], logger logging.Logger) *Table[K, E] {
	return &Table[K, E]{
		typ:          typ.withDefaults(),
		main:         table[K, E]{exponent: -1},
		rehashTarget: table[K, E]{exponent: -1},
		rehashIdx:    -1,
		logger:       logger,
	}
}

// Size returns the number of elements currently stored.
func (t *Table[K, E]) Size() int {
	return t.main.used + t.rehashTarget.used
}

func (t *Table[K, E]) size() int { return t.Size() }

// IsRehashing reports whether an incremental rehash is in progress.
func (t *Table[K, E]) IsRehashing() bool { return t.isRehashing() }

func (t *Table[K, E]) isRehashing() bool { return t.rehashIdx >= 0 }

func (t *Table[K, E]) tableByIndex(idx int) *table[K, E] {
	if idx == 0 {
		return &t.main
	}
	return &t.rehashTarget
}

func (t *Table[K, E]) writeTable() *table[K, E] {
	if t.isRehashing() {
		return &t.rehashTarget
	}
	return &t.main
}

// PauseRehashing prevents any incremental rehash step from running
// until a matching ResumeRehashing. Calls nest.
func (t *Table[K, E]) PauseRehashing() { t.pauseRehash.Acquire(1) }

// ResumeRehashing undoes one PauseRehashing.
func (t *Table[K, E]) ResumeRehashing() { t.pauseRehash.Release(1) }

// PauseAutoShrink prevents ShrinkIfNeeded (and the automatic shrink
// check after Delete/Pop) from acting until a matching ResumeAutoShrink.
func (t *Table[K, E]) PauseAutoShrink() { t.pauseAutoShrink.Acquire(1) }

// ResumeAutoShrink undoes one PauseAutoShrink.
func (t *Table[K, E]) ResumeAutoShrink() { t.pauseAutoShrink.Release(1) }

func (t *Table[K, E]) fatalf(format string, args ...interface{}) {
	if t.logger != nil {
		t.logger.Fatalf(format, args...)
	}
	panic(fmt.Sprintf(format, args...))
}

func zeroOf[E any]() E {
	var z E
	return z
}

// Empty removes every element, calling Destroy on each one. progress,
// if non-nil, is invoked every 65536 buckets processed; this is the
// one operation in this package whose cost is proportional to table
// size rather than O(1)/O(per-step), so it's the one worth giving
// callers a way to report progress on.
func (t *Table[K, E]) Empty(progress func(processed int)) {
	const progressInterval = 65536
	processed := 0
	destroy := func(tbl *table[K, E]) {
		for i := range tbl.buckets {
			b := &tbl.buckets[i]
			for s := 0; s < elementsPerBucket; s++ {
				if b.occupied(s) {
					t.typ.Destroy(b.elements[s])
				}
			}
			processed++
			if progress != nil && processed%progressInterval == 0 {
				progress(processed)
			}
		}
	}
	destroy(&t.main)
	if t.isRehashing() {
		destroy(&t.rehashTarget)
	}
	t.main = table[K, E]{exponent: -1}
	t.rehashTarget = table[K, E]{exponent: -1}
	t.rehashIdx = -1
	t.generation++
}

// Release empties the table and drops its backing arrays. The zero
// value of Table (or a freshly discarded *Table) needs no further
// cleanup beyond this; Go's GC reclaims the memory.
func (t *Table[K, E]) Release() {
	t.Empty(nil)
}
