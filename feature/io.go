// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package feature

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/earth"
	"github.com/jszwec/csvutil"
)

var headerFields = []string{
	"feature",
	"plate",
	"geometry",
	"lat",
	"lon",
}

// vertex is a row of a feature file.
type vertex struct {
	Feature  string  `csv:"feature"`
	Name     string  `csv:"name"`
	Plate    int     `csv:"plate"`
	Begin    string  `csv:"begin"`
	End      string  `csv:"end"`
	Geometry string  `csv:"geometry"`
	Lat      float64 `csv:"lat"`
	Lon      float64 `csv:"lon"`
}

// ReadTSV reads a collection of features
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - feature, the ID of the feature
//   - plate, the reconstruction plate ID of the feature
//   - geometry, the kind of the geometry,
//     either "point", "polyline", or "polygon"
//   - lat, the latitude of a vertex
//   - lon, the longitude of a vertex
//
// Optionally,
// the fields "name",
// "begin" (the oldest age of the feature in million years),
// and "end" (the youngest age)
// can be defined.
// Any other field is a numeric attribute of the feature.
//
// Each row is a vertex of the feature geometry,
// so a feature will be defined by one or more rows,
// and the vertices are ordered as read.
// The name, time range, and attributes of a feature
// are taken from its first row.
//
// Here is an example file:
//
//	# trenches
//	feature	name	plate	begin	end	geometry	lat	lon	exclude_overriding_distance_to_trenches_kms
//	t1	Peru-Chile	201			polyline	-5.0	-81.5	60
//	t1	Peru-Chile	201			polyline	-15.0	-76.0	60
//	t1	Peru-Chile	201			polyline	-30.0	-72.0	60
func ReadTSV(r io.Reader) (*Collection, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		head[i] = h
		fields[h] = i
	}
	for _, h := range headerFields {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	dec, err := csvutil.NewDecoder(tsv, head...)
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}

	c := NewCollection()
	for {
		var v vertex
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		id := strings.TrimSpace(v.Feature)
		if id == "" {
			continue
		}
		if v.Lat < -90 || v.Lat > 90 {
			return nil, fmt.Errorf("on row %d: field %q: invalid value %.6f", ln, "lat", v.Lat)
		}
		pt := earth.NewPoint(v.Lat, math.Remainder(v.Lon, 360))

		f := c.Feature(id)
		if f != nil {
			f.Points = append(f.Points, pt)
			continue
		}

		kind := Kind(strings.ToLower(strings.TrimSpace(v.Geometry)))
		switch kind {
		case Point, Polyline, Polygon:
		default:
			return nil, fmt.Errorf("on row %d: field %q: unknown value %q", ln, "geometry", v.Geometry)
		}

		f = New(id, kind, v.Plate)
		f.Name = strings.Join(strings.Fields(v.Name), " ")
		if f.Begin, err = parseAge(v.Begin, math.Inf(1)); err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "begin", err)
		}
		if f.End, err = parseAge(v.End, 0); err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "end", err)
		}

		rec := dec.Record()
		for _, i := range dec.Unused() {
			s := strings.TrimSpace(rec[i])
			if s == "" {
				continue
			}
			a, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, head[i], err)
			}
			f.SetAttr(head[i], a)
		}

		f.Points = append(f.Points, pt)
		c.Add(f)
	}
	if c.Len() == 0 {
		return nil, fmt.Errorf("while reading data: %v", io.EOF)
	}

	return c, nil
}

func parseAge(s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatAge(a float64) string {
	if math.IsInf(a, 0) {
		return ""
	}
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// TSV writes a collection of features
// as a TSV file.
// Attributes are written as additional fields,
// sorted by name.
func (c *Collection) TSV(w io.Writer) error {
	attrs := make(map[string]bool)
	for _, f := range c.features {
		for k := range f.attrs {
			attrs[k] = true
		}
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	header := []string{"feature", "name", "plate", "begin", "end", "geometry", "lat", "lon"}
	header = append(header, keys...)
	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, f := range c.features {
		for _, pt := range f.Points {
			row := []string{
				f.ID,
				f.Name,
				strconv.Itoa(f.Plate),
				formatAge(f.Begin),
				formatAge(f.End),
				string(f.Kind),
				strconv.FormatFloat(pt.Latitude(), 'f', 6, 64),
				strconv.FormatFloat(pt.Longitude(), 'f', 6, 64),
			}
			for _, k := range keys {
				v, ok := f.attrs[k]
				if !ok {
					row = append(row, "")
					continue
				}
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			}
			if err := tsv.Write(row); err != nil {
				return fmt.Errorf("when writing data: %v", err)
			}
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
