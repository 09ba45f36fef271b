// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package platekey implements a simple color key
// for the plates of a plate motion model.
package platekey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/js-arias/blind"
	"github.com/jszwec/csvutil"
)

// Default is the color of plates
// without an assigned color.
var Default = color.RGBA{153, 153, 153, 255}

// Key stores the colors of plate IDs.
type Key struct {
	color map[int]color.RGBA
}

// New returns an empty key.
func New() *Key {
	return &Key{
		color: make(map[int]color.RGBA),
	}
}

// Random returns a key
// with random colors for the given plates.
func Random(plates []int) *Key {
	k := New()
	for _, p := range plates {
		k.SetColor(p, blind.Sequential(blind.Iridescent, rand.Float64()))
	}
	return k
}

// Color returns the color associated with a plate.
// If no color is defined for the plate,
// it will return the default color.
func (k *Key) Color(plate int) (color.RGBA, bool) {
	c, ok := k.color[plate]
	if !ok {
		return Default, false
	}
	return c, true
}

// SetColor sets the color of a plate.
func (k *Key) SetColor(plate int, c color.RGBA) {
	k.color[plate] = c
}

// Len returns the number of plates
// with an assigned color.
func (k *Key) Len() int {
	return len(k.color)
}

type row struct {
	Plate int    `csv:"plate"`
	Color string `csv:"color"`
}

// Read reads a key file used to define the colors
// of plates.
//
// A key file is a tab-delimited file
// with the following required columns:
//
//	-plate	the plate ID
//	-color	an RGB value separated by commas,
//		for example "125,132,148".
//
// Any other columns, will be ignored.
// Here is an example of a key file:
//
//	plate	color	comment
//	101	251, 236, 93	North America
//	201	255, 165, 0	South America
//	701	68, 167, 196	Africa
func Read(r io.Reader) (*Key, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]bool, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		head[i] = h
		fields[h] = true
	}
	for _, h := range []string{"plate", "color"} {
		if !fields[h] {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	dec, err := csvutil.NewDecoder(tsv, head...)
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	k := New()
	for {
		var v row
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "color"
		val := strings.Split(v.Color, ",")
		if len(val) != 3 {
			return nil, fmt.Errorf("on row %d: field %q: found %d values, want 3", ln, f, len(val))
		}
		var rgb [3]uint8
		for i, name := range []string{"red", "green", "blue"} {
			c, err := strconv.Atoi(strings.TrimSpace(val[i]))
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q [%s value]: %v", ln, f, name, err)
			}
			if c < 0 || c > 255 {
				return nil, fmt.Errorf("on row %d: field %q [%s value]: invalid value %d", ln, f, name, c)
			}
			rgb[i] = uint8(c)
		}

		k.SetColor(v.Plate, color.RGBA{rgb[0], rgb[1], rgb[2], 255})
	}
	return k, nil
}
