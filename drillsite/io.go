// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package drillsite

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/js-arias/earth"
)

// eol is the line terminator of the platform.
var eol = "\n"

func init() {
	if runtime.GOOS == "windows" {
		eol = "\r\n"
	}
}

// Header labels.
const (
	siteFileLabel = "Site file:"
	siteLonLabel  = "Site longitude:"
	siteLatLabel  = "Site latitude:"
	columnsLabel  = "paleo_longitude  paleo_latitude  time"
	distanceLabel = "distance_to_COBs(kms)"
)

// Write writes a reconstructed path
// as a space-delimited text file.
// Name is the name of the output file
// stored in the header.
//
// Here is an example output:
//
//	#
//	# Site file: site_reconstructed.txt
//	# Site longitude: -139.1
//	# Site latitude: 30.0
//	#
//	# paleo_longitude  paleo_latitude  time  distance_to_COBs(kms)
//	-139.100000 30.000000 0.0 1021.503017
//	-138.524100 29.704214 1.0 1035.339126
func (p *Path) Write(w io.Writer, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#%s", eol)
	fmt.Fprintf(bw, "# %s %s%s", siteFileLabel, name, eol)
	fmt.Fprintf(bw, "# %s %s%s", siteLonLabel, formatFloat(p.Longitude), eol)
	fmt.Fprintf(bw, "# %s %s%s", siteLatLabel, formatFloat(p.Latitude), eol)
	fmt.Fprintf(bw, "#%s", eol)

	fmt.Fprintf(bw, "# %s", columnsLabel)
	if p.HasDistance {
		fmt.Fprintf(bw, "  %s", distanceLabel)
	}
	fmt.Fprintf(bw, "%s", eol)

	for _, st := range p.Steps {
		row := []string{
			formatCoord(st.Point.Longitude()),
			formatCoord(st.Point.Latitude()),
			formatFloat(st.Age),
		}
		if p.HasDistance {
			row = append(row, formatCoord(st.Distance))
		}
		fmt.Fprintf(bw, "%s%s", strings.Join(row, " "), eol)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// formatFloat formats a value
// with at least one decimal digit.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatCoord(v float64) string {
	if math.Abs(v) < 5e-7 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// ReadPath reads a reconstructed path
// from a file written by Path.Write.
// The name of the path is taken from the header.
func ReadPath(r io.Reader) (*Path, error) {
	p := &Path{}
	var hasLon, hasLat bool

	s := bufio.NewScanner(r)
	ln := 0
	for s.Scan() {
		ln++
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			h := strings.TrimSpace(strings.TrimPrefix(line, "#"))
			switch {
			case strings.HasPrefix(h, siteFileLabel):
				p.Name = strings.TrimSpace(strings.TrimPrefix(h, siteFileLabel))
			case strings.HasPrefix(h, siteLonLabel):
				v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(h, siteLonLabel)), 64)
				if err != nil {
					return nil, fmt.Errorf("on line %d: site longitude: %v", ln, err)
				}
				p.Longitude = v
				hasLon = true
			case strings.HasPrefix(h, siteLatLabel):
				v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(h, siteLatLabel)), 64)
				if err != nil {
					return nil, fmt.Errorf("on line %d: site latitude: %v", ln, err)
				}
				p.Latitude = v
				hasLat = true
			case strings.HasPrefix(h, columnsLabel):
				p.HasDistance = strings.Contains(h, distanceLabel)
			}
			continue
		}

		fields := strings.Fields(line)
		want := 3
		if p.HasDistance {
			want = 4
		}
		if len(fields) != want {
			return nil, fmt.Errorf("on line %d: got %d fields, want %d", ln, len(fields), want)
		}
		var v [4]float64
		for i, f := range fields {
			var err error
			v[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("on line %d: column %d: %v", ln, i+1, err)
			}
		}
		if v[1] < -90 || v[1] > 90 {
			return nil, fmt.Errorf("on line %d: invalid latitude %.6f", ln, v[1])
		}
		p.Steps = append(p.Steps, Step{
			Age:      v[2],
			Point:    earth.NewPoint(v[1], v[0]),
			Distance: v[3],
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("on line %d: %v", ln, err)
	}
	if !hasLon || !hasLat {
		return nil, fmt.Errorf("undefined site location")
	}

	return p, nil
}
