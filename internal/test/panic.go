package test

import "testing"

// ShouldPanic fails the test unless fn panics.
func ShouldPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		if recover() == nil {
			t.Errorf("expected the function to panic")
		}
	}()
	fn()
}

// ShouldPanicWith fails the test unless fn panics with a value equal to msg.
func ShouldPanicWith(t *testing.T, msg interface{}, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("expected the function to panic with %#v", msg)
			return
		}
		if d := Diff(msg, r); d != "" {
			t.Errorf("panicked with the wrong value.\nwant: %#v\ngot:  %#v\ndiff: %s",
				msg, r, d)
		}
	}()
	fn()
}

// ShouldPanicWithStr fails the test unless fn panics with a string (or an
// error whose message) equal to msg.
func ShouldPanicWithStr(t *testing.T, msg string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("expected the function to panic with %q", msg)
			return
		}
		gotStr, ok := r.(string)
		if !ok {
			gotErr, ok := r.(error)
			if !ok {
				t.Errorf("the function panicked with a non string/error: %#v", r)
				return
			}
			gotStr = gotErr.Error()
		}
		if gotStr != msg {
			t.Errorf("panicked with the wrong message.\nwant: %q\ngot:  %q", msg, gotStr)
		}
	}()
	fn()
}
