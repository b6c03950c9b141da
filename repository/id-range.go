package repository

import (
	"strconv"
)

// IDRange is a closed range of numeric ids.
type IDRange struct {
	Low  int
	High int
}

func NewIDRange(low, high int) IDRange {
	return IDRange{Low: low, High: high}
}

// Valid reports whether raw is an integer within the range.
// Anything that does not parse as an integer is not valid.
func (r IDRange) Valid(raw string) bool {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}

	return r.Contains(n)
}

func (r IDRange) Contains(n int) bool {
	return n >= r.Low && n <= r.High
}

// Size returns the number of ids in the range.
func (r IDRange) Size() int {
	if r.High < r.Low {
		return 0
	}

	return r.High - r.Low + 1
}

// First returns the lowest number of the range for which taken returns false.
// The second return value is false if every number is taken.
func (r IDRange) First(taken func(n int) bool) (int, bool) {
	for n := r.Low; n <= r.High; n++ {
		if !taken(n) {
			return n, true
		}
	}

	return 0, false
}
