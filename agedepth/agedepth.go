// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package agedepth implements models
// to convert the age of the oceanic crust
// into the depth of the basement.
package agedepth

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
)

// A Model is an oceanic age to depth model.
type Model interface {
	// Depth returns the basement depth
	// (in meters)
	// of an ocean crust of the given age
	// (in million years).
	Depth(age float64) float64
}

// GDH1 is the model of Stein & Stein (1992).
type GDH1 struct{}

// Depth returns the basement depth (in meters).
func (GDH1) Depth(age float64) float64 {
	if age < 0 {
		age = 0
	}
	if age < 20 {
		return 2600 + 365*math.Sqrt(age)
	}
	return 5651 - 2473*math.Exp(-0.0278*age)
}

// PS77 is the model of Parsons & Sclater (1977).
type PS77 struct{}

// Depth returns the basement depth (in meters).
func (PS77) Depth(age float64) float64 {
	if age < 0 {
		age = 0
	}
	if age < 70 {
		return 2500 + 350*math.Sqrt(age)
	}
	return 6400 - 3200*math.Exp(-age/62.8)
}

var models = map[string]Model{
	"gdh1": GDH1{},
	"ps77": PS77{},
}

// Models returns the names of the available models.
func Models() []string {
	names := make([]string, 0, len(models))
	for n := range models {
		names = append(names, strings.ToUpper(n))
	}
	slices.Sort(names)
	return names
}

// Get returns a model by its name.
// Names are case insensitive.
func Get(name string) (Model, error) {
	m, ok := models[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown age to depth model %q", name)
	}
	return m, nil
}

// A Sample is the depth of the basement
// at a given age.
type Sample struct {
	Age   float64
	Depth float64
}

// Table returns the depths of a model
// from the present to the oldest age
// (inclusive)
// at 1 million year steps.
func Table(m Model, oldest float64) []Sample {
	if oldest < 0 {
		return nil
	}
	n := int(math.Floor(oldest+0.1)) + 1
	tab := make([]Sample, 0, n)
	for i := range n {
		a := float64(i)
		tab = append(tab, Sample{
			Age:   a,
			Depth: m.Depth(a),
		})
	}
	return tab
}

// Write writes a table of ages and depths
// as two space-aligned columns.
//
// Here is an example output:
//
//	# age                 depth
//	  0.000               2600.000
//	  1.000               2965.000
func Write(w io.Writer, tab []Sample) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", strings.TrimRight(fmt.Sprintf("# %-20s%-20s", "age", "depth"), " "))
	for _, s := range tab {
		fmt.Fprintf(bw, "  %s\n", strings.TrimRight(fmt.Sprintf("%-20.3f%-20.3f", s.Age, s.Depth), " "))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
