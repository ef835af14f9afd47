package hashtable

import "testing"

func TestStatsReportsSizeAndCapacity(t *testing.T) {
	tbl := newRecordTable()
	for i := 0; i < 10; i++ {
		tbl.Add(&record{key: string(rune(i)) + "k", val: i})
	}
	s := tbl.Stats()
	if s.Size != 10 {
		t.Fatalf("expected Stats.Size 10, got %d", s.Size)
	}
	if s.MainBuckets <= 0 {
		t.Fatalf("expected a positive bucket count, got %d", s.MainBuckets)
	}
	if s.Rehashing {
		t.Fatalf("expected Rehashing to be false for a freshly grown table")
	}
}

func TestStatsReflectsRehashInProgress(t *testing.T) {
	tbl := newRecordTable()
	const n = 300
	for i := 0; i < n; i++ {
		tbl.Add(&record{key: string(rune(i)) + "k", val: i})
	}
	tbl.Expand(n * 4)

	s := tbl.Stats()
	if !s.Rehashing {
		t.Fatalf("expected Stats.Rehashing to be true mid-rehash")
	}
	if s.RehashTargetBuckets <= s.MainBuckets {
		t.Fatalf("expected the rehash target to have more buckets than main, got %d vs %d",
			s.RehashTargetBuckets, s.MainBuckets)
	}
}

func TestStatsPauseCounts(t *testing.T) {
	tbl := newRecordTable()
	tbl.PauseRehashing()
	tbl.PauseAutoShrink()
	tbl.PauseAutoShrink()

	s := tbl.Stats()
	if s.PauseRehashCount != 1 {
		t.Fatalf("expected PauseRehashCount 1, got %d", s.PauseRehashCount)
	}
	if s.PauseAutoShrinkCount != 2 {
		t.Fatalf("expected PauseAutoShrinkCount 2, got %d", s.PauseAutoShrinkCount)
	}
}

func TestStatsProbeHistogramSumsToBucketCount(t *testing.T) {
	tbl := newRecordTable()
	for i := 0; i < 40; i++ {
		tbl.Add(&record{key: string(rune(i)) + "k", val: i})
	}
	s := tbl.Stats()
	total := 0
	for _, count := range s.ProbeHistogram {
		total += count
	}
	if total != s.MainBuckets {
		t.Fatalf("expected ProbeHistogram counts to sum to %d buckets, got %d", s.MainBuckets, total)
	}
}
