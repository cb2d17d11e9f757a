// Package tabuutil holds small generic helpers shared across the
// command-line tool and the core engine's logging path.
package tabuutil

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Must unwraps val if err is nil, and panics otherwise. Useful for
// simplifying code where an error is unexpected or should be fatal
// (e.g. parsing a baked-in constant).
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Must0 panics if err is non-nil.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// IfThen returns a if condition is true, otherwise b. Both branches are
// always evaluated, so avoid calling it with expensive or invalid
// values on the untaken branch.
func IfThen[T any](condition bool, a, b T) T {
	if condition {
		return a
	}
	return b
}

// CloseFile closes a file and logs any error that occurs.
func CloseFile(file *os.File) {
	if err := file.Close(); err != nil {
		log.Printf("Error closing file: %v", err)
	}
}

// MustFprintf writes a formatted string to w, logging and exiting on
// error. Progress reporting is not expected to fail; if it does, the
// process is in a bad enough state that continuing silently would be
// worse than a clear crash.
func MustFprintf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		log.Fatalf("write failed: %v", err)
	}
}
