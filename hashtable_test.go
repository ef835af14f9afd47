package hashtable

import (
	"testing"

	itest "github.com/kvcore/hashtable/internal/test"
)

type record struct {
	key string
	val int
}

func fnvHash(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func newRecordTable() *Table[string, *record] {
	typ := &Type[string, *record]{
		Hash:  fnvHash,
		KeyOf: func(r *record) string { return r.key },
	}
	return NewTable[string, *record](typ, nil)
}

func TestTypeWithDefaultsFillsEqual(t *testing.T) {
	typ := (&Type[string, *record]{
		Hash:  fnvHash,
		KeyOf: func(r *record) string { return r.key },
	}).withDefaults()
	if !typ.Equal("a", "a") {
		t.Errorf("default Equal should treat identical keys as equal")
	}
	if typ.Equal("a", "b") {
		t.Errorf("default Equal should treat different keys as unequal")
	}
}

func TestTypeWithDefaultsPanicsWithoutHash(t *testing.T) {
	itest.ShouldPanic(t, func() {
		(&Type[string, *record]{KeyOf: func(r *record) string { return r.key }}).withDefaults()
	})
}

func TestTypeWithDefaultsPanicsWithoutKeyOf(t *testing.T) {
	itest.ShouldPanic(t, func() {
		(&Type[string, *record]{Hash: fnvHash}).withDefaults()
	})
}

func TestNewIdentityType(t *testing.T) {
	typ := NewIdentityType[string](fnvHash)
	if typ.KeyOf("hello") != "hello" {
		t.Errorf("identity type's KeyOf should return its argument unchanged")
	}
}

func TestSizeAndEmpty(t *testing.T) {
	tbl := newRecordTable()
	if tbl.Size() != 0 {
		t.Fatalf("expected an empty table, got size %d", tbl.Size())
	}
	var destroyed []string
	tbl.typ.Destroy = func(r *record) { destroyed = append(destroyed, r.key) }

	for _, k := range []string{"a", "b", "c"} {
		tbl.Add(&record{key: k})
	}
	if tbl.Size() != 3 {
		t.Fatalf("expected size 3, got %d", tbl.Size())
	}

	tbl.Empty(nil)
	if tbl.Size() != 0 {
		t.Fatalf("expected size 0 after Empty, got %d", tbl.Size())
	}
	if len(destroyed) != 3 {
		t.Fatalf("expected Destroy to be called 3 times, got %d", len(destroyed))
	}
}

func TestReleaseLeavesTableReusable(t *testing.T) {
	tbl := newRecordTable()
	tbl.Add(&record{key: "a"})
	tbl.Release()
	if tbl.Size() != 0 {
		t.Fatalf("expected size 0 after Release, got %d", tbl.Size())
	}
	if !tbl.Add(&record{key: "a"}) {
		t.Fatalf("expected the table to accept inserts after Release")
	}
}

func TestPauseRehashingNests(t *testing.T) {
	tbl := newRecordTable()
	tbl.PauseRehashing()
	tbl.PauseRehashing()
	if !tbl.pauseRehash.Paused() {
		t.Fatalf("expected pauseRehash to be held")
	}
	tbl.ResumeRehashing()
	if !tbl.pauseRehash.Paused() {
		t.Fatalf("expected pauseRehash to still be held after one release")
	}
	tbl.ResumeRehashing()
	if tbl.pauseRehash.Paused() {
		t.Fatalf("expected pauseRehash to be released")
	}
}

func TestFatalfPanicsWithoutLogger(t *testing.T) {
	tbl := newRecordTable()
	itest.ShouldPanicWithStr(t, "boom 42", func() {
		tbl.fatalf("boom %d", 42)
	})
}
