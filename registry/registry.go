// Package registry lets callers register a *hashtable.Type[K, E]
// descriptor once and look it up later from a call site that only has
// the element's dynamic type to go on — the expiry-index and
// auxiliary-set callers this table is built for share descriptors this
// way instead of threading them through every function signature.
package registry

import (
	"reflect"
	"sync"

	"github.com/aristanetworks/gomap"

	"github.com/kvcore/hashtable"
)

// descriptors is keyed by the reflect.Type of the element a Type[K, E]
// serves. gomap.Map gives us an open-addressing map over a
// non-comparable-by-== key (reflect.Type values do compare with == in
// practice, but gomap is used here the same way the core package uses
// its own Table: a generic, callback-driven hash map, same as the
// sibling package this one is grounded on).
var (
	mu          sync.Mutex
	descriptors = gomap.New[reflect.Type, any](
		func(a, b reflect.Type) bool { return a == b },
		func(t reflect.Type) uint64 { return uint64(reflect.ValueOf(t).Pointer()) },
	)
)

// Register associates typ with its element type E. Registering a
// second descriptor for the same element type replaces the first.
func Register[K comparable, E any](typ *hashtable.Type[K, E]) {
	mu.Lock()
	defer mu.Unlock()
	descriptors.Set(reflect.TypeOf(zero[E]()), typ)
}

// Lookup returns the descriptor registered for E, if any.
func Lookup[K comparable, E any]() (*hashtable.Type[K, E], bool) {
	mu.Lock()
	v, ok := descriptors.Get(reflect.TypeOf(zero[E]()))
	mu.Unlock()
	if !ok {
		return nil, false
	}
	typ, ok := v.(*hashtable.Type[K, E])
	return typ, ok
}

func zero[E any]() E {
	var z E
	return z
}
