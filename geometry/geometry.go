// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package geometry implements simple geometries
// on the surface of a unit sphere.
//
// All distances are angular distances
// (i.e., in radians).
// To get the distance in kilometers
// multiply by earth.Radius / 1000.
package geometry

import (
	"math"

	"github.com/js-arias/earth"
	"gonum.org/v1/gonum/spatial/r3"
)

// HalfCircumference is the largest possible distance
// between two points on the sphere
// (in radians).
const HalfCircumference = math.Pi

// Vector returns the unit vector
// of a geographic point.
func Vector(p earth.Point) r3.Vec {
	lat := earth.ToRad(p.Latitude())
	lon := earth.ToRad(p.Longitude())
	return r3.Vec{
		X: math.Cos(lat) * math.Cos(lon),
		Y: math.Cos(lat) * math.Sin(lon),
		Z: math.Sin(lat),
	}
}

// Point returns the geographic point
// of a vector.
// The vector does not need to be normalized.
func Point(v r3.Vec) earth.Point {
	lat := math.Atan2(v.Z, math.Hypot(v.X, v.Y))
	lon := math.Atan2(v.Y, v.X)
	return earth.NewPoint(toDegree(lat), toDegree(lon))
}

func toDegree(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Angle returns the great circle distance
// (in radians)
// between two points.
// It is numerically stable for very close points.
func Angle(p, q earth.Point) float64 {
	return angle(Vector(p), Vector(q))
}

// angle returns the angle between two unit vectors.
func angle(a, b r3.Vec) float64 {
	return math.Atan2(r3.Norm(r3.Cross(a, b)), r3.Dot(a, b))
}

// slerp returns the point at a fraction f
// of the great circle arc between two unit vectors
// separated by an angle theta.
func slerp(a, b r3.Vec, theta, f float64) r3.Vec {
	if theta < 1e-12 {
		return a
	}
	s := math.Sin(theta)
	wa := math.Sin((1-f)*theta) / s
	wb := math.Sin(f*theta) / s
	return r3.Unit(r3.Add(r3.Scale(wa, a), r3.Scale(wb, b)))
}

// A Polyline is an ordered set of points
// joined by great circle arcs.
type Polyline []earth.Point

// Length returns the length of the polyline.
func (l Polyline) Length() float64 {
	var sum float64
	for i := 1; i < len(l); i++ {
		sum += earth.Distance(l[i-1], l[i])
	}
	return sum
}

// Uniform returns the points of the polyline
// sampled at a uniform spacing
// (in radians)
// along the line.
// The first point is always the first vertex of the line,
// the last sampled point is not necessarily the last vertex.
//
// If spacing is not positive,
// it returns a copy of the vertices.
func (l Polyline) Uniform(spacing float64) []earth.Point {
	if len(l) == 0 {
		return nil
	}
	if spacing <= 0 {
		pts := make([]earth.Point, len(l))
		copy(pts, l)
		return pts
	}

	pts := []earth.Point{l[0]}

	// distance along the line
	// of the next sample
	next := spacing
	var start float64
	for i := 1; i < len(l); i++ {
		a := Vector(l[i-1])
		b := Vector(l[i])
		theta := angle(a, b)
		end := start + theta
		for next <= end+1e-12 {
			f := (next - start) / theta
			pts = append(pts, Point(slerp(a, b, theta, f)))
			next += spacing
		}
		start = end
	}
	return pts
}

// Distance returns the minimum distance
// between a point and a polyline.
// If the polyline is empty,
// it returns HalfCircumference.
func Distance(p earth.Point, l Polyline) float64 {
	d, _ := DistanceWithin(p, l, math.Inf(1))
	return d
}

// DistanceWithin returns the minimum distance
// between a point and a polyline,
// and true if that distance is less than the threshold.
// If the distance is equal or larger than the threshold,
// the search might be stopped earlier,
// and the returned distance is the threshold.
func DistanceWithin(p earth.Point, l Polyline, threshold float64) (float64, bool) {
	if len(l) == 0 {
		return math.Min(threshold, HalfCircumference), false
	}
	v := Vector(p)

	min := threshold
	found := false
	if len(l) == 1 {
		d := angle(v, Vector(l[0]))
		if d < min {
			return d, true
		}
		return min, false
	}
	for i := 1; i < len(l); i++ {
		d := arcDistance(v, Vector(l[i-1]), Vector(l[i]))
		if d < min {
			min = d
			found = true
		}
		if min == 0 {
			break
		}
	}
	return min, found
}

// arcDistance returns the minimum distance
// between a point
// and the great circle arc between a and b.
func arcDistance(p, a, b r3.Vec) float64 {
	n := r3.Cross(a, b)
	if r3.Norm(n) < 1e-15 {
		// degenerated arc
		return angle(p, a)
	}
	n = r3.Unit(n)

	// projection of p on the great circle
	c := r3.Sub(p, r3.Scale(r3.Dot(p, n), n))
	if r3.Norm(c) > 1e-15 {
		if r3.Dot(r3.Cross(a, c), n) >= 0 && r3.Dot(r3.Cross(c, b), n) >= 0 {
			return math.Atan2(math.Abs(r3.Dot(p, n)), r3.Norm(c))
		}
	}
	return math.Min(angle(p, a), angle(p, b))
}

// A Polygon is a closed ring of points.
// The last point is joined to the first point,
// so it is not required to repeat the first point.
type Polygon []earth.Point

// Boundary returns the outline of a polygon
// as a closed polyline.
func (pg Polygon) Boundary() Polyline {
	if len(pg) == 0 {
		return nil
	}
	l := make(Polyline, 0, len(pg)+1)
	l = append(l, pg...)
	first, last := pg[0], pg[len(pg)-1]
	if first.Latitude() != last.Latitude() || first.Longitude() != last.Longitude() {
		l = append(l, first)
	}
	return l
}

// Contains returns true if the point is inside the polygon.
//
// The interior is the smaller of the two regions
// bounded by the ring,
// so the orientation of the ring is irrelevant.
// Points on a vertex are considered inside.
func (pg Polygon) Contains(p earth.Point) bool {
	if len(pg) < 3 {
		return false
	}
	v := Vector(p)
	q := r3.Scale(-1, v)

	// Seen from the antipode of the point,
	// the absolute value of the signed area of the ring
	// is the area of the region that does not include the point.
	var area float64
	for i := range pg {
		j := i + 1
		if j == len(pg) {
			j = 0
		}
		u, w := Vector(pg[i]), Vector(pg[j])
		if isVertex(v, u) {
			return true
		}
		area += triangleArea(q, u, w)
	}
	return math.Abs(area) > 2*math.Pi
}

func isVertex(v, u r3.Vec) bool {
	return r3.Norm(r3.Sub(v, u)) < 1e-12
}

// triangleArea returns the signed area
// of a spherical triangle.
// The area is positive
// if the vertices are in counter-clockwise order.
func triangleArea(a, b, c r3.Vec) float64 {
	det := r3.Dot(a, r3.Cross(b, c))
	d := 1 + r3.Dot(a, b) + r3.Dot(b, c) + r3.Dot(c, a)
	return 2 * math.Atan2(det, d)
}
