// Package test holds small helpers shared by the hashtable package's
// test files: a reflect-based diff for table-driven assertions and a
// couple of panic-expectation helpers for contract-violation tests.
package test

import "reflect"

// comparable types have an equality-testing method.
type comparable interface {
	Equal(other interface{}) bool
}

// DeepEqual reports whether a and b are equal. Types implementing
// comparable get to define their own notion of equality; everything
// else falls back to reflect.DeepEqual.
func DeepEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	if ac, ok := a.(comparable); ok {
		return ac.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
