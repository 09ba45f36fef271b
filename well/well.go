// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package well implements reading of drill site
// (well)
// files.
package well

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/earth"
	"github.com/js-arias/earth/vector"
)

// Site attribute keys.
const (
	SiteLongitude = "SiteLongitude"
	SiteLatitude  = "SiteLatitude"
	SurfaceAge    = "SurfaceAge"
)

// A Lithology is a lithology component
// of a stratigraphic unit.
type Lithology struct {
	Name     string
	Fraction float64
}

// A Unit is a stratigraphic unit (layer)
// of a drill site.
type Unit struct {
	// Ages in million years
	TopAge    float64
	BottomAge float64

	// Depths in meters
	TopDepth    float64
	BottomDepth float64

	Lithology []Lithology
}

// A Well is a drill site.
type Well struct {
	Name string

	Latitude  float64
	Longitude float64

	// Units are the stratigraphic units
	// ordered from the surface to the bottom.
	Units []Unit

	attrs map[string]string
}

// Point returns the present-day location
// of the drill site.
func (w *Well) Point() earth.Point {
	return earth.NewPoint(w.Latitude, w.Longitude)
}

// Attr returns the value of a site attribute
// as read from the file header.
func (w *Well) Attr(key string) string {
	return w.attrs[key]
}

// OldestAge returns the bottom age
// of the deepest stratigraphic unit.
// It returns false if the site has no units.
func (w *Well) OldestAge() (float64, bool) {
	if len(w.Units) == 0 {
		return 0, false
	}
	return w.Units[len(w.Units)-1].BottomAge, true
}

// ReadFile reads a drill site from a file.
func ReadFile(name string) (*Well, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	w.Name = name
	return w, nil
}

// Read reads a drill site.
//
// Site attributes are defined in comment lines
// using the form "# <key> = <value>".
// The attributes SiteLongitude and SiteLatitude are required.
// The optional attribute SurfaceAge
// is the age of the top of the first unit
// (zero by default).
//
// Each non-comment line is a stratigraphic unit
// with the following white-space separated fields:
//
//   - bottom age (in million years)
//   - bottom depth (in meters)
//   - zero or more pairs of lithology name
//     and its fraction in the unit
//
// The top of a unit is the bottom of the previous unit.
//
// Here is an example file:
//
//	# SiteLongitude = -139.1
//	# SiteLatitude = 30.0
//	#
//	# bottom_age bottom_depth lithology
//	  2.5        24.0         Clay 1.0
//	  15.0       110.0        Chalk 0.7 Clay 0.3
//	  30.0       180.0        Basalt 1.0
func Read(r io.Reader) (*Well, error) {
	w := &Well{
		attrs: make(map[string]string),
	}

	s := bufio.NewScanner(r)
	ln := 0
	var top, topDepth float64
	for s.Scan() {
		ln++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			key, value, ok := strings.Cut(strings.TrimPrefix(line, "#"), "=")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			if key == "" || strings.ContainsAny(key, " \t") {
				continue
			}
			w.attrs[key] = strings.TrimSpace(value)
			continue
		}

		if len(w.Units) == 0 {
			if a := w.attrs[SurfaceAge]; a != "" {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return nil, fmt.Errorf("attribute %q: %v", SurfaceAge, err)
				}
				top = v
			}
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("on line %d: got %d fields, want at least 2", ln, len(fields))
		}
		age, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("on line %d: field %q: %v", ln, "bottom age", err)
		}
		if age < top {
			return nil, fmt.Errorf("on line %d: field %q: age %.6f is younger than top age %.6f", ln, "bottom age", age, top)
		}
		depth, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("on line %d: field %q: %v", ln, "bottom depth", err)
		}
		if depth < topDepth {
			return nil, fmt.Errorf("on line %d: field %q: depth %.6f is shallower than top depth %.6f", ln, "bottom depth", depth, topDepth)
		}

		u := Unit{
			TopAge:      top,
			BottomAge:   age,
			TopDepth:    topDepth,
			BottomDepth: depth,
		}
		lith := fields[2:]
		if len(lith)%2 != 0 {
			return nil, fmt.Errorf("on line %d: expecting lithology and fraction pairs", ln)
		}
		for i := 0; i < len(lith); i += 2 {
			fr, err := strconv.ParseFloat(lith[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("on line %d: lithology %q: %v", ln, lith[i], err)
			}
			u.Lithology = append(u.Lithology, Lithology{Name: lith[i], Fraction: fr})
		}
		w.Units = append(w.Units, u)
		top = age
		topDepth = depth
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("on line %d: %v", ln, err)
	}

	lon, ok := w.attrs[SiteLongitude]
	if !ok {
		return nil, fmt.Errorf("attribute %q undefined", SiteLongitude)
	}
	lat, ok := w.attrs[SiteLatitude]
	if !ok {
		return nil, fmt.Errorf("attribute %q undefined", SiteLatitude)
	}
	pt, err := vector.ParsePoint(lat, lon)
	if err != nil {
		return nil, fmt.Errorf("invalid site location: %v", err)
	}
	if pt.Lat < -90 || pt.Lat > 90 {
		return nil, fmt.Errorf("attribute %q: invalid value %.6f", SiteLatitude, pt.Lat)
	}
	w.Latitude = pt.Lat
	w.Longitude = pt.Lon

	return w, nil
}
