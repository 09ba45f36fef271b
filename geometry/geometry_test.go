// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package geometry_test

import (
	"math"
	"testing"

	"github.com/js-arias/backtrack/geometry"
	"github.com/js-arias/earth"
)

const tolerance = 1e-9

func TestPointVector(t *testing.T) {
	tests := []struct {
		lat, lon float64
	}{
		{0, 0},
		{45, 45},
		{-30, 120},
		{10, -170},
		{-60, -45},
	}

	for _, test := range tests {
		p := earth.NewPoint(test.lat, test.lon)
		np := geometry.Point(geometry.Vector(p))
		if math.Abs(np.Latitude()-test.lat) > tolerance || math.Abs(np.Longitude()-test.lon) > tolerance {
			t.Errorf("point %.3f, %.3f: got %.6f, %.6f", test.lat, test.lon, np.Latitude(), np.Longitude())
		}
	}
}

func TestDistance(t *testing.T) {
	tests := map[string]struct {
		p    earth.Point
		l    geometry.Polyline
		want float64
	}{
		"perpendicular": {
			p: earth.NewPoint(0, 0),
			l: geometry.Polyline{
				earth.NewPoint(-5, 10),
				earth.NewPoint(5, 10),
			},
			want: earth.ToRad(10),
		},
		"end point": {
			p: earth.NewPoint(0, 10),
			l: geometry.Polyline{
				earth.NewPoint(20, 10),
				earth.NewPoint(30, 10),
			},
			want: earth.ToRad(20),
		},
		"on line": {
			p: earth.NewPoint(0, 5),
			l: geometry.Polyline{
				earth.NewPoint(0, 0),
				earth.NewPoint(0, 10),
				earth.NewPoint(10, 10),
			},
			want: 0,
		},
		"single point": {
			p: earth.NewPoint(0, 0),
			l: geometry.Polyline{
				earth.NewPoint(0, 30),
			},
			want: earth.ToRad(30),
		},
		"empty": {
			p:    earth.NewPoint(0, 0),
			want: geometry.HalfCircumference,
		},
	}

	for name, test := range tests {
		got := geometry.Distance(test.p, test.l)
		if math.Abs(got-test.want) > tolerance {
			t.Errorf("%s: got %.6f, want %.6f", name, got, test.want)
		}
	}
}

func TestDistanceWithin(t *testing.T) {
	p := earth.NewPoint(0, 0)
	l := geometry.Polyline{
		earth.NewPoint(-5, 10),
		earth.NewPoint(5, 10),
	}

	d, ok := geometry.DistanceWithin(p, l, earth.ToRad(20))
	if !ok {
		t.Fatalf("distance within 20 degrees: expecting true")
	}
	if math.Abs(d-earth.ToRad(10)) > tolerance {
		t.Errorf("distance within 20 degrees: got %.6f, want %.6f", d, earth.ToRad(10))
	}

	if _, ok := geometry.DistanceWithin(p, l, earth.ToRad(5)); ok {
		t.Errorf("distance within 5 degrees: expecting false")
	}
}

func TestUniform(t *testing.T) {
	tests := map[string]struct {
		l    geometry.Polyline
		want []float64
	}{
		"exact": {
			l: geometry.Polyline{
				earth.NewPoint(0, 0),
				earth.NewPoint(0, 1),
				earth.NewPoint(0, 2),
			},
			want: []float64{0, 0.5, 1, 1.5, 2},
		},
		"short": {
			l: geometry.Polyline{
				earth.NewPoint(0, 0),
				earth.NewPoint(0, 1.2),
			},
			want: []float64{0, 0.5, 1},
		},
		"point": {
			l: geometry.Polyline{
				earth.NewPoint(0, 3),
			},
			want: []float64{3},
		},
		"empty": {},
	}

	spacing := earth.ToRad(0.5)
	for name, test := range tests {
		pts := test.l.Uniform(spacing)
		if len(pts) != len(test.want) {
			t.Errorf("%s: got %d points, want %d", name, len(pts), len(test.want))
			continue
		}
		for i, p := range pts {
			if math.Abs(p.Latitude()) > tolerance || math.Abs(p.Longitude()-test.want[i]) > tolerance {
				t.Errorf("%s: point %d: got %.6f, %.6f, want %.6f, %.6f", name, i, p.Latitude(), p.Longitude(), 0.0, test.want[i])
			}
		}
	}
}

func TestContains(t *testing.T) {
	pg := geometry.Polygon{
		earth.NewPoint(-10, -10),
		earth.NewPoint(-10, 10),
		earth.NewPoint(10, 10),
		earth.NewPoint(10, -10),
	}

	tests := map[string]struct {
		p    earth.Point
		want bool
	}{
		"center":   {earth.NewPoint(0, 0), true},
		"inside":   {earth.NewPoint(5, -7), true},
		"outside":  {earth.NewPoint(0, 20), false},
		"north":    {earth.NewPoint(60, 0), false},
		"far":      {earth.NewPoint(0, 180), false},
		"antipode": {earth.NewPoint(-5, 173), false},
		"south":    {earth.NewPoint(-89, 0), false},
		"vertex":   {earth.NewPoint(10, 10), true},
	}
	testContains(t, "square", pg, tests)
	testContains(t, "reversed square", reverse(pg), tests)

	// a polygon close to a hemisphere
	large := box(-60, 60, -80, 80)
	tests = map[string]struct {
		p    earth.Point
		want bool
	}{
		"center":   {earth.NewPoint(0, 0), true},
		"east":     {earth.NewPoint(0, 75), true},
		"corner":   {earth.NewPoint(55, -75), true},
		"antipode": {earth.NewPoint(0, -105), false},
		"far":      {earth.NewPoint(0, 180), false},
		"outside":  {earth.NewPoint(0, 90), false},
		"north":    {earth.NewPoint(70, 0), false},
		"south":    {earth.NewPoint(-55, -100), false},
	}
	testContains(t, "large", large, tests)
	testContains(t, "reversed large", reverse(large), tests)

	// a ring that encloses more than a hemisphere
	// is the outline of its smaller side
	ring := box(-50, 50, -125, 125)
	tests = map[string]struct {
		p    earth.Point
		want bool
	}{
		"center": {earth.NewPoint(0, 0), false},
		"west":   {earth.NewPoint(0, 120), false},
		"far":    {earth.NewPoint(0, 180), true},
		"side":   {earth.NewPoint(0, 150), true},
		"north":  {earth.NewPoint(80, 0), true},
	}
	testContains(t, "ring", ring, tests)
	testContains(t, "reversed ring", reverse(ring), tests)
}

func testContains(t testing.TB, name string, pg geometry.Polygon, tests map[string]struct {
	p    earth.Point
	want bool
}) {
	t.Helper()

	for n, test := range tests {
		if got := pg.Contains(test.p); got != test.want {
			t.Errorf("%s: %s: got %v, want %v", name, n, got, test.want)
		}
	}
}

func reverse(pg geometry.Polygon) geometry.Polygon {
	rev := make(geometry.Polygon, len(pg))
	for i, p := range pg {
		rev[len(pg)-1-i] = p
	}
	return rev
}

// box returns a polygon bounded by two parallels
// and two meridians,
// with a vertex every 5 degrees.
func box(minLat, maxLat, minLon, maxLon float64) geometry.Polygon {
	var pg geometry.Polygon
	for lon := minLon; lon < maxLon; lon += 5 {
		pg = append(pg, earth.NewPoint(minLat, lon))
	}
	for lat := minLat; lat < maxLat; lat += 5 {
		pg = append(pg, earth.NewPoint(lat, maxLon))
	}
	for lon := maxLon; lon > minLon; lon -= 5 {
		pg = append(pg, earth.NewPoint(maxLat, lon))
	}
	for lat := maxLat; lat > minLat; lat -= 5 {
		pg = append(pg, earth.NewPoint(lat, minLon))
	}
	return pg
}

func TestBoundary(t *testing.T) {
	pg := geometry.Polygon{
		earth.NewPoint(-10, -10),
		earth.NewPoint(-10, 10),
		earth.NewPoint(10, 10),
	}
	b := pg.Boundary()
	if len(b) != 4 {
		t.Fatalf("boundary: got %d points, want %d", len(b), 4)
	}
	if math.Abs(b[3].Latitude()+10) > tolerance || math.Abs(b[3].Longitude()+10) > tolerance {
		t.Errorf("boundary: last point %.3f, %.3f, want first point", b[3].Latitude(), b[3].Longitude())
	}
}
