// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package match implements the matching of line features
// between two feature collections
// that describe the same geological structures
// with slightly different geometries,
// and the transfer of attributes
// between the matched features.
package match

import (
	"math"

	"github.com/js-arias/backtrack/feature"
	"github.com/js-arias/backtrack/geometry"
	"github.com/js-arias/earth"
)

// DefaultSpacing is the default spacing
// (in degrees)
// used to sample the lines.
const DefaultSpacing = 0.5

// Default attributes transferred between trench collections.
const (
	SubductingKey = "exclude_subducting_distance_to_trenches_kms"
	OverridingKey = "exclude_overriding_distance_to_trenches_kms"
)

// AlignmentDistance returns the average distance
// (in radians)
// between two sequences of points.
//
// Points with the same index are compared,
// and each extra point of the longer sequence
// is compared with the last point of the shorter sequence.
// The sum is divided by the length of the longer sequence.
//
// If both sequences are empty,
// the distance is 0.
// If only one sequence is empty,
// the distance is the half circumference.
func AlignmentDistance(a, b []earth.Point) float64 {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return 0
	}
	if len(b) == 0 {
		return geometry.HalfCircumference
	}

	var sum float64
	for i, p := range a {
		if i < len(b) {
			sum += geometry.Angle(p, b[i])
			continue
		}
		sum += geometry.Angle(p, b[len(b)-1])
	}
	return sum / float64(len(a))
}

// Closest returns the index of the candidate
// closest to the target line,
// and its alignment distance.
// Lines are sampled at the given spacing
// (in degrees).
//
// On ties,
// the first candidate is returned.
// If there are no candidates,
// it returns -1.
func Closest(candidates []geometry.Polyline, target geometry.Polyline, spacing float64) (int, float64) {
	samples := make([][]earth.Point, len(candidates))
	for i, c := range candidates {
		samples[i] = c.Uniform(earth.ToRad(spacing))
	}
	return closest(samples, target.Uniform(earth.ToRad(spacing)))
}

func closest(samples [][]earth.Point, target []earth.Point) (int, float64) {
	best := -1
	min := math.Inf(1)
	for i, s := range samples {
		d := AlignmentDistance(s, target)
		if d < min {
			min = d
			best = i
		}
	}
	return best, min
}

// A Pair is a destination feature
// and the source feature from which
// the attributes were copied.
type Pair struct {
	Dest   string
	Source string

	// Distance is the alignment distance
	// (in radians)
	Distance float64
}

// Transfer copies the indicated attributes
// from the features of the source collection
// into the closest feature
// of the destination collection.
// Lines are sampled at the given spacing
// (in degrees).
//
// Values in the destination are always overwritten.
// If the source feature does not have an attribute,
// it is removed from the destination feature.
// The source collection is never modified.
//
// It returns the matched pairs
// in the order of the destination collection.
func Transfer(src, dst *feature.Collection, keys []string, spacing float64) []Pair {
	sf := src.Features()
	if len(sf) == 0 {
		return nil
	}
	samples := make([][]earth.Point, len(sf))
	for i, f := range sf {
		samples[i] = f.Line().Uniform(earth.ToRad(spacing))
	}

	pairs := make([]Pair, 0, dst.Len())
	for _, f := range dst.Features() {
		i, d := closest(samples, f.Line().Uniform(earth.ToRad(spacing)))
		s := sf[i]
		for _, k := range keys {
			v, ok := s.Attr(k)
			if !ok {
				f.DelAttr(k)
				continue
			}
			f.SetAttr(k, v)
		}
		pairs = append(pairs, Pair{
			Dest:     f.ID,
			Source:   s.ID,
			Distance: d,
		})
	}
	return pairs
}
