// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package feature

import (
	"sync"

	"github.com/js-arias/backtrack/geometry"
	"github.com/js-arias/backtrack/rotation"
	"github.com/js-arias/earth"
)

// A Rotator returns the finite rotation
// of a plate between two ages.
type Rotator interface {
	Rotation(plate int, age, from float64) rotation.Rotation
}

// A Partition assigns plate IDs to points
// using a set of static polygons.
type Partition struct {
	polys []*Feature
}

// NewPartition returns a partition
// from the polygons of a collection
// that exist at the present time.
func NewPartition(c *Collection) *Partition {
	p := &Partition{}
	for _, f := range c.features {
		if f.Kind != Polygon {
			continue
		}
		if !f.ValidAt(0) {
			continue
		}
		p.polys = append(p.polys, f)
	}
	return p
}

// Len returns the number of polygons
// in the partition.
func (p *Partition) Len() int {
	return len(p.polys)
}

// Plate returns the plate ID
// of the first polygon that contains the point.
// If no polygon contains the point,
// it returns false.
func (p *Partition) Plate(pt earth.Point) (int, bool) {
	for _, f := range p.polys {
		if geometry.Polygon(f.Points).Contains(pt) {
			return f.Plate, true
		}
	}
	return 0, false
}

// A Reconstruction reconstructs
// the geometries of a feature collection
// to past times.
//
// Snapshots are cached,
// and it is safe for concurrent use.
type Reconstruction struct {
	c   *Collection
	rot Rotator

	mu    sync.Mutex
	cache map[float64][]geometry.Polyline
}

// NewReconstruction returns a reconstruction
// of a feature collection
// using a plate motion model.
func NewReconstruction(c *Collection, rot Rotator) *Reconstruction {
	return &Reconstruction{
		c:     c,
		rot:   rot,
		cache: make(map[float64][]geometry.Polyline),
	}
}

// Snapshot returns the reconstructed geometries
// (as polylines)
// of the features that exist at the given age.
func (r *Reconstruction) Snapshot(age float64) []geometry.Polyline {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lines, ok := r.cache[age]; ok {
		return lines
	}

	var lines []geometry.Polyline
	for _, f := range r.c.features {
		if !f.ValidAt(age) {
			continue
		}
		if len(f.Points) == 0 {
			continue
		}
		rot := r.rot.Rotation(f.Plate, age, 0)
		src := f.Line()
		l := make(geometry.Polyline, 0, len(src))
		for _, pt := range src {
			l = append(l, rot.Rotate(pt))
		}
		lines = append(lines, l)
	}
	r.cache[age] = lines
	return lines
}
