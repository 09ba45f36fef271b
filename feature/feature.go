// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package feature implements collections
// of tectonic features,
// such as static polygons,
// continent-ocean boundaries,
// or trenches.
package feature

import (
	"math"
	"slices"

	"github.com/js-arias/backtrack/geometry"
	"github.com/js-arias/earth"
)

// Kind is the kind of geometry of a feature.
type Kind string

// Valid geometry kinds.
const (
	Point    Kind = "point"
	Polyline Kind = "polyline"
	Polygon  Kind = "polygon"
)

// A Feature is a tectonic feature
// with a geometry
// and a reconstruction plate.
type Feature struct {
	// ID is the identifier of the feature
	// in the collection.
	ID string

	Name  string
	Plate int

	// Begin and End are the ages
	// (in million years)
	// in which the feature exists.
	// Begin is the oldest age
	// (+Inf for the distant past),
	// and End is the youngest age.
	Begin float64
	End   float64

	Kind   Kind
	Points []earth.Point

	attrs map[string]float64
}

// New returns a new feature
// that exists from the distant past
// up to the present.
func New(id string, kind Kind, plate int) *Feature {
	return &Feature{
		ID:    id,
		Plate: plate,
		Begin: math.Inf(1),
		Kind:  kind,
		attrs: make(map[string]float64),
	}
}

// Attr returns the value of a numeric attribute
// of the feature.
func (f *Feature) Attr(key string) (float64, bool) {
	v, ok := f.attrs[key]
	return v, ok
}

// SetAttr sets the value of a numeric attribute.
func (f *Feature) SetAttr(key string, v float64) {
	f.attrs[key] = v
}

// DelAttr removes an attribute.
func (f *Feature) DelAttr(key string) {
	delete(f.attrs, key)
}

// Attrs returns the names of the attributes
// defined for the feature.
func (f *Feature) Attrs() []string {
	keys := make([]string, 0, len(f.attrs))
	for k := range f.attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ValidAt returns true if the feature
// exists at the given age.
func (f *Feature) ValidAt(age float64) bool {
	return age <= f.Begin && age >= f.End
}

// Line returns the geometry of the feature
// as a polyline.
// For polygons,
// it returns the outline of the polygon.
func (f *Feature) Line() geometry.Polyline {
	if f.Kind == Polygon {
		return geometry.Polygon(f.Points).Boundary()
	}
	return geometry.Polyline(f.Points)
}

// A Collection is an ordered collection of features.
type Collection struct {
	features []*Feature
	ids      map[string]*Feature
}

// NewCollection returns an empty feature collection.
func NewCollection() *Collection {
	return &Collection{
		ids: make(map[string]*Feature),
	}
}

// Add adds a feature to the collection.
// If a feature with the same ID
// is already in the collection,
// it will be replaced.
func (c *Collection) Add(f *Feature) {
	if prev, ok := c.ids[f.ID]; ok {
		i := slices.Index(c.features, prev)
		c.features[i] = f
		c.ids[f.ID] = f
		return
	}
	c.features = append(c.features, f)
	c.ids[f.ID] = f
}

// Feature returns a feature with the given ID.
func (c *Collection) Feature(id string) *Feature {
	return c.ids[id]
}

// Features returns the features of the collection
// in the order in which they were added.
func (c *Collection) Features() []*Feature {
	return c.features
}

// Len returns the number of features in the collection.
func (c *Collection) Len() int {
	return len(c.features)
}

// Merge adds all the features of another collection.
func (c *Collection) Merge(o *Collection) {
	for _, f := range o.features {
		c.Add(f)
	}
}
