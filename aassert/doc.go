// Package aassert provides assertions for use with the normal Go testing system.
//
// They go beyond what stretchr/testify/assert offers and follow its
// design as close as possible: every assertion returns whether it passed.
package aassert
