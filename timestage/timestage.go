// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package timestage implements time ranges
// in million years.
package timestage

import (
	"fmt"
	"math"
)

// Epsilon is the value added to the end of a range
// so an end age that is a multiple of the increment
// is included in the range.
const Epsilon = 1e-6

// Range returns the ages
// from start to end
// (inclusive)
// using a fixed increment.
// All values are in million years.
//
// The ages are start + i*inc,
// for all i in which the age is less than end + Epsilon.
// If end is younger than start,
// it returns an empty range.
func Range(start, end, inc float64) []float64 {
	if inc <= 0 {
		return nil
	}
	n := math.Ceil((end + Epsilon - start) / inc)
	if n <= 0 {
		return nil
	}

	ages := make([]float64, 0, int(n))
	for i := 0; i < int(n); i++ {
		ages = append(ages, start+float64(i)*inc)
	}
	return ages
}

// Check returns an error
// if the values cannot define a time range.
//
// Only the increment is checked:
// a range in which the end is younger than the start
// is a valid empty range.
func Check(start, end, inc float64) error {
	if inc <= 0 {
		return fmt.Errorf("invalid time increment %.6f", inc)
	}
	return nil
}
