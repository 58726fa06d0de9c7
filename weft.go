// Package weft implements algebraic simplification of a typed, vector-aware
// expression IR. Expressions are immutable trees; Simplify rewrites a tree
// into a cheaper equivalent form using constant folding, interval (bounds)
// analysis, modulus-remainder (alignment) analysis, and an ordered pattern
// rewriter. Rewrites that cannot improve a node return the original node
// pointer so callers can detect no-change by identity.
package weft

import "fmt"

// assert panics with a formatted message if condition is false.
func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic("assert: " + fmt.Sprintf(format, args...))
	}
}
