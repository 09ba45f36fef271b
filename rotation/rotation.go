// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rotation implements finite rotations
// and plate motion models
// based on total reconstruction poles.
package rotation

import (
	"math"

	"github.com/js-arias/backtrack/geometry"
	"github.com/js-arias/earth"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// A Rotation is a finite rotation
// on the surface of the sphere.
type Rotation struct {
	q quat.Number
}

// Identity returns a rotation
// that does not change the position of a point.
func Identity() Rotation {
	return Rotation{q: quat.Number{Real: 1}}
}

// New returns a finite rotation
// defined by an Euler pole
// and a rotation angle in degrees.
func New(pole earth.Point, angle float64) Rotation {
	v := geometry.Vector(pole)
	half := earth.ToRad(angle) / 2
	s := math.Sin(half)
	return Rotation{
		q: quat.Number{
			Real: math.Cos(half),
			Imag: s * v.X,
			Jmag: s * v.Y,
			Kmag: s * v.Z,
		},
	}
}

// Rotate returns the position of a point
// after applying the rotation.
func (r Rotation) Rotate(p earth.Point) earth.Point {
	v := geometry.Vector(p)
	pq := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rq := quat.Mul(quat.Mul(r.q, pq), quat.Conj(r.q))
	return geometry.Point(r3.Vec{X: rq.Imag, Y: rq.Jmag, Z: rq.Kmag})
}

// Compose returns the rotation
// that results from applying o
// and then r.
func (r Rotation) Compose(o Rotation) Rotation {
	return Rotation{q: normalize(quat.Mul(r.q, o.q))}
}

// Inverse returns the inverse of the rotation.
func (r Rotation) Inverse() Rotation {
	return Rotation{q: quat.Conj(r.q)}
}

// Pole returns the Euler pole
// and the angle (in degrees)
// of the rotation.
// The angle is always in the range [0, 180].
// For the identity rotation,
// the pole is the north pole.
func (r Rotation) Pole() (earth.Point, float64) {
	q := r.q
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	v := r3.Vec{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
	s := r3.Norm(v)
	if s < 1e-15 {
		return earth.NewPoint(90, 0), 0
	}
	angle := 2 * math.Atan2(s, q.Real)
	return geometry.Point(v), angle * 180 / math.Pi
}

// Interpolate returns the rotation
// at a fraction f
// of the path between rotations a and b.
func Interpolate(a, b Rotation, f float64) Rotation {
	qa, qb := a.q, b.q
	dot := qa.Real*qb.Real + qa.Imag*qb.Imag + qa.Jmag*qb.Jmag + qa.Kmag*qb.Kmag
	if dot < 0 {
		qb = quat.Scale(-1, qb)
		dot = -dot
	}
	if dot > 0.9995 {
		q := quat.Add(quat.Scale(1-f, qa), quat.Scale(f, qb))
		return Rotation{q: normalize(q)}
	}
	theta := math.Acos(dot)
	s := math.Sin(theta)
	wa := math.Sin((1-f)*theta) / s
	wb := math.Sin(f*theta) / s
	q := quat.Add(quat.Scale(wa, qa), quat.Scale(wb, qb))
	return Rotation{q: normalize(q)}
}

func normalize(q quat.Number) quat.Number {
	a := quat.Abs(q)
	if a == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/a, q)
}
