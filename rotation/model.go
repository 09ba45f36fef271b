// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rotation

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/earth"
)

// CommentPlate is the moving plate ID
// used in rotation files
// to indicate a commented rotation.
const CommentPlate = 999

// maxCircuit is the maximum length
// of a plate circuit.
const maxCircuit = 100

type pole struct {
	age float64
	rot Rotation
}

// A sequence is a set of total reconstruction poles
// of a moving plate
// relative to a single fixed plate.
type sequence struct {
	moving int
	fixed  int
	poles  []pole
}

func (s *sequence) contains(age float64) bool {
	return age >= s.poles[0].age && age <= s.poles[len(s.poles)-1].age
}

// at returns the rotation of the moving plate
// relative to the fixed plate
// at a given age.
func (s *sequence) at(age float64) Rotation {
	i, ok := slices.BinarySearchFunc(s.poles, age, func(p pole, a float64) int {
		if p.age < a {
			return -1
		}
		if p.age > a {
			return 1
		}
		return 0
	})
	if ok {
		return s.poles[i].rot
	}
	young := s.poles[i-1]
	old := s.poles[i]
	f := (age - young.age) / (old.age - young.age)
	return Interpolate(young.rot, old.rot, f)
}

// A Model is a plate motion model
// defined by sequences of total reconstruction poles.
type Model struct {
	anchor int
	plates map[int][]*sequence

	// last sequence read
	last *sequence
}

// NewModel returns an empty plate motion model
// using the indicated anchor plate.
func NewModel(anchor int) *Model {
	return &Model{
		anchor: anchor,
		plates: make(map[int][]*sequence),
	}
}

// Anchor returns the anchor plate of the model.
func (m *Model) Anchor() int {
	return m.anchor
}

// Add adds a total reconstruction pole
// of a moving plate relative to a fixed plate.
// Consecutive poles of the same moving and fixed plates
// are part of the same sequence.
func (m *Model) Add(moving, fixed int, age float64, rot Rotation) {
	if m.last == nil || m.last.moving != moving || m.last.fixed != fixed {
		m.last = &sequence{
			moving: moving,
			fixed:  fixed,
		}
		m.plates[moving] = append(m.plates[moving], m.last)
	}
	m.last.poles = append(m.last.poles, pole{age: age, rot: rot})
	slices.SortStableFunc(m.last.poles, func(a, b pole) int {
		if a.age < b.age {
			return -1
		}
		if a.age > b.age {
			return 1
		}
		return 0
	})
}

// Plates returns the moving plates defined in the model.
func (m *Model) Plates() []int {
	pl := make([]int, 0, len(m.plates))
	for p := range m.plates {
		pl = append(pl, p)
	}
	slices.Sort(pl)
	return pl
}

// Ages returns the youngest and oldest ages
// with a defined pole in the model.
func (m *Model) Ages() (young, old float64) {
	first := true
	for _, ss := range m.plates {
		for _, s := range ss {
			y := s.poles[0].age
			o := s.poles[len(s.poles)-1].age
			if first || y < young {
				young = y
			}
			if first || o > old {
				old = o
			}
			first = false
		}
	}
	return young, old
}

// Total returns the total rotation
// of a plate at a given age
// relative to the anchor plate.
func (m *Model) Total(plate int, age float64) Rotation {
	p := m.root(plate, age)
	if m.anchor == 0 {
		return p
	}
	a := m.root(m.anchor, age)
	return a.Inverse().Compose(p)
}

// Rotation returns the rotation
// that moves a point of a plate
// from its position at a given age (from)
// to its position at another age.
func (m *Model) Rotation(plate int, age, from float64) Rotation {
	to := m.Total(plate, age)
	return to.Compose(m.Total(plate, from).Inverse())
}

// root returns the total rotation of a plate
// relative to the root of its plate circuit.
func (m *Model) root(plate int, age float64) Rotation {
	rot := Identity()
	for range maxCircuit {
		if plate == 0 {
			break
		}
		s := m.find(plate, age)
		if s == nil {
			break
		}
		rot = s.at(age).Compose(rot)
		plate = s.fixed
	}
	return rot
}

func (m *Model) find(plate int, age float64) *sequence {
	for _, s := range m.plates[plate] {
		if s.contains(age) {
			return s
		}
	}
	return nil
}

// Read reads total reconstruction poles
// from a PLATES4 rotation file.
//
// Each line of the file is a pole,
// with the following white-space separated fields:
//
//   - moving plate ID
//   - age of the pole (in million years)
//   - latitude of the Euler pole
//   - longitude of the Euler pole
//   - rotation angle (in degrees)
//   - fixed plate ID
//
// Any text after a '!' character is a comment.
// Lines with the moving plate 999 are ignored.
//
// Here is an example file:
//
//	701 0.0 90.0 0.0 0.0 000 ! AFR-ABS
//	701 10.0 49.8 -39.6 -2.56 000
//	701 20.0 53.4 -35.7 -4.67 000
//	999 0.0 90.0 0.0 0.0 999 ! end of file
func (m *Model) Read(r io.Reader) error {
	s := bufio.NewScanner(r)
	ln := 0
	for s.Scan() {
		ln++
		line := s.Text()
		if i := strings.IndexByte(line, '!'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 6 {
			return fmt.Errorf("on line %d: got %d fields, want 6", ln, len(fields))
		}

		moving, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("on line %d: field %q: %v", ln, "moving plate", err)
		}
		if moving == CommentPlate {
			continue
		}
		fixed, err := strconv.Atoi(fields[5])
		if err != nil {
			return fmt.Errorf("on line %d: field %q: %v", ln, "fixed plate", err)
		}

		var v [4]float64
		for i, f := range []string{"age", "latitude", "longitude", "angle"} {
			v[i], err = strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return fmt.Errorf("on line %d: field %q: %v", ln, f, err)
			}
		}
		if v[0] < 0 {
			return fmt.Errorf("on line %d: field %q: invalid value %.6f", ln, "age", v[0])
		}
		if v[1] < -90 || v[1] > 90 {
			return fmt.Errorf("on line %d: field %q: invalid value %.6f", ln, "latitude", v[1])
		}

		lon := math.Remainder(v[2], 360)
		m.Add(moving, fixed, v[0], New(earth.NewPoint(v[1], lon), v[3]))
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("on line %d: %v", ln, err)
	}

	// a new file always starts a new sequence
	m.last = nil
	return nil
}
