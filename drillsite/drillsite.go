// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package drillsite reconstructs the present-day location
// of drill sites
// through geological time.
package drillsite

import (
	"errors"
	"fmt"
	"math"

	"github.com/js-arias/backtrack/geometry"
	"github.com/js-arias/backtrack/rotation"
	"github.com/js-arias/backtrack/timestage"
	"github.com/js-arias/backtrack/well"
	"github.com/js-arias/earth"
)

// Per-site errors.
// A site with any of these errors is skipped.
var (
	ErrNoLayers = errors.New("site has no stratigraphic layers")
	ErrTooOld   = errors.New("start time is older than oldest drilled section")
)

// ErrNoPlate is returned when a site is not inside
// any static polygon.
// As static polygons should have a global coverage,
// this error aborts the reconstruction.
var ErrNoPlate = errors.New("unable to assign plate ID: site does not intersect the static polygons")

// A SkipError is an error of a single site.
// The site is not reconstructed,
// but other sites can be reconstructed.
type SkipError struct {
	Site string
	Err  error
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("not reconstructing drill site %q: %v", e.Site, e.Err)
}

func (e *SkipError) Unwrap() error {
	return e.Err
}

// A Rotator returns the finite rotation
// of a plate between two ages.
type Rotator interface {
	Rotation(plate int, age, from float64) rotation.Rotation
}

// A Partitioner assigns a plate ID
// to a present-day location.
type Partitioner interface {
	Plate(pt earth.Point) (int, bool)
}

// A Snapshotter returns the reconstructed geometries
// of a feature collection
// at a given age.
type Snapshotter interface {
	Snapshot(age float64) []geometry.Polyline
}

// A Step is the reconstructed location of a site
// at a given age.
type Step struct {
	Age   float64
	Point earth.Point

	// Distance is the distance (in km)
	// to the nearest boundary feature.
	Distance float64
}

// A Path is the set of reconstructed locations
// of a drill site.
type Path struct {
	// Name of the site
	Name string

	// Present-day location
	Latitude  float64
	Longitude float64

	// Plate is the plate ID assigned to the site
	Plate int

	// HasDistance is true if the distance
	// to the boundary features is defined
	HasDistance bool

	// Steps are the reconstructed locations
	// ordered from youngest to oldest
	Steps []Step
}

// A Reconstructor reconstructs drill sites
// using a plate motion model.
type Reconstructor struct {
	// Rotation is the plate motion model
	Rotation Rotator

	// Plates assigns plate IDs
	// from static polygons
	Plates Partitioner

	// Boundaries are the features used
	// to calculate the distance
	// to the reconstructed sites.
	// If nil,
	// no distance will be calculated.
	Boundaries Snapshotter

	// Time range (in million years)
	Start     float64
	End       float64
	Increment float64
}

// Path returns the reconstructed path of a drill site.
//
// If the site has no stratigraphic layers,
// or the start time is older than the site,
// it returns a *SkipError.
// If the site cannot be assigned to a plate,
// it returns an error wrapping ErrNoPlate.
func (r *Reconstructor) Path(w *well.Well) (*Path, error) {
	oldest, ok := w.OldestAge()
	if !ok {
		return nil, &SkipError{Site: w.Name, Err: ErrNoLayers}
	}
	if r.Start > oldest {
		return nil, &SkipError{Site: w.Name, Err: ErrTooOld}
	}

	ages := timestage.Range(r.Start, math.Min(r.End, oldest), r.Increment)

	pt := w.Point()
	plate, ok := r.Plates.Plate(pt)
	if !ok {
		return nil, fmt.Errorf("drill site %q: %w", w.Name, ErrNoPlate)
	}

	p := &Path{
		Name:        w.Name,
		Latitude:    w.Latitude,
		Longitude:   w.Longitude,
		Plate:       plate,
		HasDistance: r.Boundaries != nil,
		Steps:       make([]Step, 0, len(ages)),
	}
	for _, a := range ages {
		rot := r.Rotation.Rotation(plate, a, 0)
		st := Step{
			Age:   a,
			Point: rot.Rotate(pt),
		}
		if r.Boundaries != nil {
			st.Distance = nearest(st.Point, r.Boundaries.Snapshot(a)) * earth.Radius / 1000
		}
		p.Steps = append(p.Steps, st)
	}
	return p, nil
}

// nearest returns the distance (in radians)
// from a point to the nearest geometry.
// If there are no geometries,
// it returns the half circumference of the sphere.
func nearest(pt earth.Point, lines []geometry.Polyline) float64 {
	min := math.Inf(1)
	found := false
	for _, l := range lines {
		d, ok := geometry.DistanceWithin(pt, l, min)
		if !ok {
			continue
		}
		min = d
		found = true
	}
	if !found {
		return geometry.HalfCircumference
	}
	return min
}
