package hashtable

import "testing"

func TestAddRejectsDuplicateKey(t *testing.T) {
	tbl := newRecordTable()
	if !tbl.Add(&record{key: "a", val: 1}) {
		t.Fatalf("expected first Add to succeed")
	}
	if tbl.Add(&record{key: "a", val: 2}) {
		t.Fatalf("expected Add of a duplicate key to fail")
	}
	got, _ := tbl.Find("a")
	if got.val != 1 {
		t.Fatalf("expected the original element to survive a rejected Add, got val=%d", got.val)
	}
}

func TestAddOrFind(t *testing.T) {
	tbl := newRecordTable()
	first := &record{key: "a", val: 1}
	existing, added := tbl.AddOrFind(first)
	if !added || existing != first {
		t.Fatalf("expected the first AddOrFind to add and return the new element")
	}

	second := &record{key: "a", val: 2}
	existing, added = tbl.AddOrFind(second)
	if added {
		t.Fatalf("expected the second AddOrFind to report added=false")
	}
	if existing != first {
		t.Fatalf("expected AddOrFind to return the existing element, not the candidate")
	}
}

func TestReplace(t *testing.T) {
	tbl := newRecordTable()
	var destroyedKeys []string
	tbl.typ.Destroy = func(r *record) { destroyedKeys = append(destroyedKeys, r.key) }

	if isNew := tbl.Replace(&record{key: "a", val: 1}); !isNew {
		t.Fatalf("expected Replace of an absent key to report isNew=true")
	}
	if isNew := tbl.Replace(&record{key: "a", val: 2}); isNew {
		t.Fatalf("expected Replace of a present key to report isNew=false")
	}
	got, _ := tbl.Find("a")
	if got.val != 2 {
		t.Fatalf("expected Replace to overwrite the stored element, got val=%d", got.val)
	}
	if len(destroyedKeys) != 1 || destroyedKeys[0] != "a" {
		t.Fatalf("expected Destroy to be called once on the replaced element, got %v", destroyedKeys)
	}
}

func TestFindPositionForInsertAndInsertAtPosition(t *testing.T) {
	tbl := newRecordTable()
	pos, existing, found := tbl.FindPositionForInsert("a")
	if found {
		t.Fatalf("expected key %q to be absent, got existing=%+v", "a", existing)
	}
	tbl.InsertAtPosition(pos, &record{key: "a", val: 1})

	got, ok := tbl.Find("a")
	if !ok || got.val != 1 {
		t.Fatalf("expected the inserted element to be found with val=1, got %+v, %v", got, ok)
	}

	_, existing, found = tbl.FindPositionForInsert("a")
	if !found || existing.val != 1 {
		t.Fatalf("expected FindPositionForInsert to report the existing element once present")
	}
}

func TestAddTriggersExpand(t *testing.T) {
	tbl := newRecordTable()
	const n = 500
	for i := 0; i < n; i++ {
		k := string(rune('a' + i%26))
		if !tbl.Add(&record{key: k + string(rune(i)), val: i}) {
			t.Fatalf("Add #%d unexpectedly rejected", i)
		}
	}
	if tbl.Size() != n {
		t.Fatalf("expected size %d after %d inserts, got %d", n, n, tbl.Size())
	}
	if tbl.main.numBuckets()*elementsPerBucket < n {
		t.Fatalf("expected capacity to have grown past %d, got %d buckets", n, tbl.main.numBuckets())
	}
}
