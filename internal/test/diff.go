package test

import (
	"fmt"
	"reflect"
)

// diffable types can produce their own human readable diff.
type diffable interface {
	Diff(other interface{}) string
}

// Diff returns a human readable description of how a and b differ, or
// the empty string if they are equal.
func Diff(a, b interface{}) string {
	if DeepEqual(a, b) {
		return ""
	}

	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() {
		return fmt.Sprintf("%#v != %#v", a, b)
	}
	if av.Type() != bv.Type() {
		return fmt.Sprintf("types are different: %T vs %T", a, b)
	}

	if ad, ok := a.(diffable); ok {
		return ad.Diff(b)
	}

	switch av.Kind() {
	case reflect.Struct:
		t := av.Type()
		for i, n := 0, av.NumField(); i < n; i++ {
			af := av.Field(i)
			bf := bv.Field(i)
			if !af.CanInterface() {
				continue
			}
			if d := Diff(af.Interface(), bf.Interface()); d != "" {
				return fmt.Sprintf("field %q differs: %s", t.Field(i).Name, d)
			}
		}
		return ""
	case reflect.Slice, reflect.Array:
		if av.Len() != bv.Len() {
			return fmt.Sprintf("lengths differ: %d vs %d", av.Len(), bv.Len())
		}
		for i := 0; i < av.Len(); i++ {
			if d := Diff(av.Index(i).Interface(), bv.Index(i).Interface()); d != "" {
				return fmt.Sprintf("index %d differs: %s", i, d)
			}
		}
		return ""
	default:
		return fmt.Sprintf("%#v != %#v", a, b)
	}
}
