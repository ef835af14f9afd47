package registry

import (
	"testing"

	"github.com/kvcore/hashtable"
)

type entry struct {
	key string
	val int
}

func TestRegisterLookup(t *testing.T) {
	typ := &hashtable.Type[string, *entry]{
		Hash:  func(k string) uint64 { return uint64(len(k)) },
		KeyOf: func(e *entry) string { return e.key },
	}
	Register[string, *entry](typ)

	got, ok := Lookup[string, *entry]()
	if !ok {
		t.Fatal("expected a registered descriptor")
	}
	if got != typ {
		t.Errorf("Lookup returned a different descriptor than was registered")
	}
}

func TestLookupMissing(t *testing.T) {
	type unregistered struct{ x int }
	if _, ok := Lookup[int, *unregistered](); ok {
		t.Error("expected no descriptor to be registered for this type")
	}
}
