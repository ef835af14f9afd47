package hashtable

// Stats is a structured snapshot of a Table's internal counters. It
// intentionally has no String method: human-readable formatting is out
// of scope here, but the underlying numbers are still worth exposing
// for metrics collection.
type Stats struct {
	Size                 int
	MainBuckets          int
	MainUsed             int
	RehashTargetBuckets  int
	RehashTargetUsed     int
	Rehashing            bool
	EverFullBuckets      int
	PauseRehashCount     int
	PauseAutoShrinkCount int
	// ProbeHistogram maps a probe-chain length (the number of
	// consecutive ever-full buckets starting at a given index) to how
	// many bucket indices in the main table have that chain length.
	ProbeHistogram map[int]int
}

// StatsSource is implemented by *Table[K, E] for any K, E: Stats()
// returns a concrete, non-generic struct, so this narrow interface is
// all a generic-unaware consumer (like a Prometheus collector) needs.
type StatsSource interface {
	Stats() Stats
}

func chainLength[K comparable, E any](tbl *table[K, E], start uint64) int {
	mask := tbl.mask()
	idx := start
	length := 0
	for tbl.buckets[idx].everFull {
		length++
		idx = nextCursor(idx, mask)
		if idx == start {
			break
		}
	}
	return length
}

// Stats returns a snapshot of the table's current counters.
func (t *Table[K, E]) Stats() Stats {
	s := Stats{
		Size:                 t.Size(),
		MainBuckets:          t.main.numBuckets(),
		MainUsed:             t.main.used,
		Rehashing:            t.isRehashing(),
		PauseRehashCount:     t.pauseRehash.Count(),
		PauseAutoShrinkCount: t.pauseAutoShrink.Count(),
		ProbeHistogram:       make(map[int]int),
	}
	if t.isRehashing() {
		s.RehashTargetBuckets = t.rehashTarget.numBuckets()
		s.RehashTargetUsed = t.rehashTarget.used
	}
	for i := range t.main.buckets {
		if t.main.buckets[i].everFull {
			s.EverFullBuckets++
		}
	}
	for i := range t.main.buckets {
		length := chainLength(&t.main, uint64(i))
		s.ProbeHistogram[length]++
	}
	return s
}
