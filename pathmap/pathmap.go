// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pathmap implements a map image
// for reconstructed drill site paths,
// in a plate carrée (equirectangular) projection.
package pathmap

import (
	"image"
	"image/color"
	"math"

	"github.com/js-arias/backtrack/drillsite"
	"github.com/js-arias/backtrack/geometry"
	"github.com/js-arias/backtrack/platekey"
	"github.com/js-arias/blind"
	"github.com/js-arias/earth"
)

// An Outline is a plate outline
// drawn in the map.
type Outline struct {
	Plate int
	Line  geometry.Polyline
}

// Image is a map of reconstructed paths.
type Image struct {
	// Number of columns in the image
	Cols int

	// Reconstructed paths
	Paths []*drillsite.Path

	// Plate outlines
	Outlines []Outline

	// Color keys of the plates
	Keys *platekey.Key

	// A Gradient color scheme
	// for the ages of the paths
	Gradient Gradienter

	step  float64
	pix   map[int]color.Color
	steps map[int]float64
}

// Format prepares the image to be drawn.
// It must be called before the image is encoded.
func (i *Image) Format() {
	if i.Cols <= 0 {
		i.Cols = 3600
	}
	if i.Cols%2 != 0 {
		i.Cols++
	}
	i.step = 360 / float64(i.Cols)
	if i.Gradient == nil {
		i.Gradient = RainbowPurpleToRed{}
	}
	if i.Keys == nil {
		i.Keys = platekey.New()
	}

	i.pix = make(map[int]color.Color)
	spacing := earth.ToRad(i.step / 2)
	for _, o := range i.Outlines {
		c, _ := i.Keys.Color(o.Plate)
		for _, pt := range o.Line.Uniform(spacing) {
			i.pix[i.pixel(pt)] = c
		}
		// vertices after the last sample
		if len(o.Line) > 0 {
			i.pix[i.pixel(o.Line[len(o.Line)-1])] = c
		}
	}

	var oldest float64
	for _, p := range i.Paths {
		for _, st := range p.Steps {
			oldest = math.Max(oldest, st.Age)
		}
	}
	i.steps = make(map[int]float64)
	for _, p := range i.Paths {
		for _, st := range p.Steps {
			v := 0.0
			if oldest > 0 {
				v = st.Age / oldest
			}
			px := i.pixel(st.Point)
			if prev, ok := i.steps[px]; ok && prev > v {
				continue
			}
			i.steps[px] = v
		}
	}
}

// pixel returns the index of the image pixel
// of a point.
func (i *Image) pixel(pt earth.Point) int {
	rows := i.Cols / 2
	x := int((pt.Longitude() + 180) / i.step)
	y := int((90 - pt.Latitude()) / i.step)
	x = min(max(x, 0), i.Cols-1)
	y = min(max(y, 0), rows-1)
	return y*i.Cols + x
}

func (i *Image) ColorModel() color.Model { return color.RGBAModel }
func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.Cols, i.Cols/2) }
func (i *Image) At(x, y int) color.Color {
	px := y*i.Cols + x
	if v, ok := i.steps[px]; ok {
		return i.Gradient.Gradient(v)
	}
	if c, ok := i.pix[px]; ok {
		return c
	}
	return color.RGBA{255, 255, 255, 255}
}

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
