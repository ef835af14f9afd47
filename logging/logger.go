// Package logging provides the logger contract used by the hashtable
// package for rehash/resize lifecycle events and fatal assertions,
// without tying it to a specific logging backend.
package logging

// Logger is a generic logging interface so hashtable doesn't have to
// depend on any one logging backend directly.
type Logger interface {
	// Info logs at the info level.
	Info(args ...interface{})
	// Infof logs at the info level, with format.
	Infof(format string, args ...interface{})
	// Error logs at the error level.
	Error(args ...interface{})
	// Errorf logs at the error level, with format.
	Errorf(format string, args ...interface{})
	// Fatal logs at the fatal level and aborts the process.
	Fatal(args ...interface{})
	// Fatalf logs at the fatal level, with format, and aborts the process.
	Fatalf(format string, args ...interface{})
}
