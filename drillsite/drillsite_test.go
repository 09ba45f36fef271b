// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package drillsite_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/backtrack/drillsite"
	"github.com/js-arias/backtrack/geometry"
	"github.com/js-arias/backtrack/rotation"
	"github.com/js-arias/backtrack/well"
	"github.com/js-arias/earth"
)

type identity struct{}

func (identity) Rotation(plate int, age, from float64) rotation.Rotation {
	return rotation.Identity()
}

type onePlate struct {
	plate int
	ok    bool
}

func (p onePlate) Plate(pt earth.Point) (int, bool) {
	return p.plate, p.ok
}

// snapshots are boundaries
// defined for some ages.
type snapshots map[float64][]geometry.Polyline

func (s snapshots) Snapshot(age float64) []geometry.Polyline {
	return s[age]
}

func newSite(name string, lat, lon float64, ages ...float64) *well.Well {
	w := &well.Well{
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
	}
	var top float64
	for _, a := range ages {
		w.Units = append(w.Units, well.Unit{
			TopAge:    top,
			BottomAge: a,
		})
		top = a
	}
	return w
}

func loader(sites ...*well.Well) drillsite.Loader {
	m := make(map[string]*well.Well, len(sites))
	for _, w := range sites {
		m[w.Name] = w
	}
	return func(name string) (*well.Well, error) {
		w, ok := m[name]
		if !ok {
			return nil, fmt.Errorf("site %q not found", name)
		}
		return w, nil
	}
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "site_reconstructed.txt")

	r := &drillsite.Reconstructor{
		Rotation:  identity{},
		Plates:    onePlate{0, true},
		Start:     0,
		End:       20,
		Increment: 5,
	}
	res, err := r.Run([]string{"site.txt"}, []string{out}, loader(newSite("site.txt", 0, 0, 10)), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 1 {
		t.Fatalf("results: got %d, want %d", len(res), 1)
	}
	if res[0].Skip != nil {
		t.Fatalf("site skipped: %v", res[0].Skip)
	}
	if res[0].Steps != 3 {
		t.Errorf("steps: got %d, want %d", res[0].Steps, 3)
	}

	want := `#
# Site file: site_reconstructed.txt
# Site longitude: 0.0
# Site latitude: 0.0
#
# paleo_longitude  paleo_latitude  time
0.000000 0.000000 0.0
0.000000 0.000000 5.0
0.000000 0.000000 10.0
`
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("unable to read output: %v", err)
	}
	got := strings.ReplaceAll(string(b), "\r\n", "\n")
	if got != want {
		t.Errorf("output: got\n%s\nwant\n%s", got, want)
	}
}

func TestInclusiveBound(t *testing.T) {
	r := &drillsite.Reconstructor{
		Rotation:  identity{},
		Plates:    onePlate{0, true},
		Start:     1,
		End:       100,
		Increment: 1.5,
	}

	p, err := r.Path(newSite("site", 10, 20, 5, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Steps) != 5 {
		t.Fatalf("steps: got %d, want %d", len(p.Steps), 5)
	}
	if a := p.Steps[len(p.Steps)-1].Age; a != 7 {
		t.Errorf("last age: got %.3f, want %.3f", a, 7.0)
	}
	for i, st := range p.Steps {
		if math.Abs(st.Point.Latitude()-10) > 1e-9 || math.Abs(st.Point.Longitude()-20) > 1e-9 {
			t.Errorf("step %d: got %.6f, %.6f, want %.6f, %.6f", i, st.Point.Latitude(), st.Point.Longitude(), 10.0, 20.0)
		}
	}
}

func TestRotatedPath(t *testing.T) {
	rot := rotation.NewModel(0)
	rot.Add(101, 0, 0, rotation.Identity())
	rot.Add(101, 0, 10, rotation.New(earth.NewPoint(90, 0), 10))

	r := &drillsite.Reconstructor{
		Rotation:  rot,
		Plates:    onePlate{101, true},
		End:       10,
		Increment: 5,
	}
	p, err := r.Path(newSite("site", 0, 0, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Plate != 101 {
		t.Errorf("plate: got %d, want %d", p.Plate, 101)
	}
	for i, lon := range []float64{0, 5, 10} {
		st := p.Steps[i]
		if math.Abs(st.Point.Longitude()-lon) > 1e-6 {
			t.Errorf("step %d: longitude: got %.6f, want %.6f", i, st.Point.Longitude(), lon)
		}
	}
}

func TestSkip(t *testing.T) {
	dir := t.TempDir()
	sites := []*well.Well{
		newSite("empty.txt", 0, 0),
		newSite("young.txt", 0, 0, 1, 3),
		newSite("valid.txt", 0, 0, 10, 30),
	}
	names := make([]string, 0, len(sites))
	outputs := make([]string, 0, len(sites))
	for _, w := range sites {
		names = append(names, w.Name)
		outputs = append(outputs, filepath.Join(dir, drillsite.OutputName(w.Name)))
	}

	r := &drillsite.Reconstructor{
		Rotation:  identity{},
		Plates:    onePlate{0, true},
		Start:     5,
		End:       20,
		Increment: 5,
	}
	res, err := r.Run(names, outputs, loader(sites...), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !errors.Is(res[0].Skip, drillsite.ErrNoLayers) {
		t.Errorf("site %q: got %v, want %v", names[0], res[0].Skip, drillsite.ErrNoLayers)
	}
	if !errors.Is(res[1].Skip, drillsite.ErrTooOld) {
		t.Errorf("site %q: got %v, want %v", names[1], res[1].Skip, drillsite.ErrTooOld)
	}
	if res[2].Skip != nil {
		t.Errorf("site %q: unexpected skip: %v", names[2], res[2].Skip)
	}
	if res[2].Steps != 4 {
		t.Errorf("site %q: steps: got %d, want %d", names[2], res[2].Steps, 4)
	}

	for i, o := range outputs {
		_, err := os.Stat(o)
		exists := err == nil
		if want := i == 2; exists != want {
			t.Errorf("output %q: exists %v, want %v", o, exists, want)
		}
	}
}

var goodSite = `# SiteLongitude = -139.1
# SiteLatitude = 30.0
#
# bottom_age bottom_depth lithology
  2.5        24.0         Clay 1.0
  30.0       180.0        Basalt 1.0
`

var badSite = `# SiteLongitude = -139.1
# SiteLatitude = 30.0
#
# bottom_age bottom_depth lithology
  2.5        deep         Clay 1.0
`

func TestSiteErrors(t *testing.T) {
	for _, cpu := range []int{1, 2} {
		dir := t.TempDir()
		bad := filepath.Join(dir, "bad.txt")
		if err := os.WriteFile(bad, []byte(badSite), 0o644); err != nil {
			t.Fatalf("unable to write site file: %v", err)
		}
		good := filepath.Join(dir, "good.txt")
		if err := os.WriteFile(good, []byte(goodSite), 0o644); err != nil {
			t.Fatalf("unable to write site file: %v", err)
		}

		sites := []string{bad, good, good, filepath.Join(dir, "missing.txt")}
		outputs := []string{
			filepath.Join(dir, "bad_out.txt"),
			filepath.Join(dir, "no-dir", "good_out.txt"),
			filepath.Join(dir, "good_out.txt"),
			filepath.Join(dir, "missing_out.txt"),
		}

		r := &drillsite.Reconstructor{
			Rotation:  identity{},
			Plates:    onePlate{0, true},
			End:       20,
			Increment: 1,
		}
		res, err := r.Run(sites, outputs, nil, cpu)
		if err != nil {
			t.Fatalf("cpu %d: unexpected error: %v", cpu, err)
		}
		if len(res) != len(sites) {
			t.Fatalf("cpu %d: results: got %d, want %d", cpu, len(res), len(sites))
		}

		for i, rs := range res {
			reconstructed := i == 2
			if (rs.Skip == nil) != reconstructed {
				t.Errorf("cpu %d: site %d: skip %v, want reconstructed %v", cpu, i, rs.Skip, reconstructed)
			}
			_, err := os.Stat(outputs[i])
			if exists := err == nil; exists != reconstructed {
				t.Errorf("cpu %d: output %q: exists %v, want %v", cpu, outputs[i], exists, reconstructed)
			}
		}
		if res[2].Steps != 21 {
			t.Errorf("cpu %d: steps: got %d, want %d", cpu, res[2].Steps, 21)
		}
	}
}

func TestEmptyRange(t *testing.T) {
	dir := t.TempDir()
	sites := []*well.Well{
		newSite("young.txt", 0, 0, 30),
		newSite("old.txt", 0, 0, 60),
	}
	names := []string{"young.txt", "old.txt"}
	outputs := []string{
		filepath.Join(dir, "young_out.txt"),
		filepath.Join(dir, "old_out.txt"),
	}

	r := &drillsite.Reconstructor{
		Rotation:  identity{},
		Plates:    onePlate{0, true},
		Start:     50,
		End:       20,
		Increment: 1,
	}
	res, err := r.Run(names, outputs, loader(sites...), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(res[0].Skip, drillsite.ErrTooOld) {
		t.Errorf("site %q: got %v, want %v", names[0], res[0].Skip, drillsite.ErrTooOld)
	}
	if res[1].Skip != nil {
		t.Fatalf("site %q: unexpected skip: %v", names[1], res[1].Skip)
	}
	if res[1].Steps != 0 {
		t.Errorf("site %q: steps: got %d, want %d", names[1], res[1].Steps, 0)
	}

	f, err := os.Open(outputs[1])
	if err != nil {
		t.Fatalf("unable to open output: %v", err)
	}
	defer f.Close()
	p, err := drillsite.ReadPath(f)
	if err != nil {
		t.Fatalf("unable to read output: %v", err)
	}
	if len(p.Steps) != 0 {
		t.Errorf("output: got %d steps, want %d", len(p.Steps), 0)
	}
}

func TestNoPlate(t *testing.T) {
	for _, cpu := range []int{1, 2} {
		dir := t.TempDir()
		names := []string{"a.txt", "b.txt"}
		outputs := []string{
			filepath.Join(dir, "a_out.txt"),
			filepath.Join(dir, "b_out.txt"),
		}
		r := &drillsite.Reconstructor{
			Rotation:  identity{},
			Plates:    onePlate{0, false},
			End:       20,
			Increment: 1,
		}
		_, err := r.Run(names, outputs, loader(newSite("a.txt", 0, 0, 10), newSite("b.txt", 0, 0, 10)), cpu)
		if !errors.Is(err, drillsite.ErrNoPlate) {
			t.Errorf("cpu %d: got error %v, want %v", cpu, err, drillsite.ErrNoPlate)
		}
		var skip *drillsite.SkipError
		if errors.As(err, &skip) {
			t.Errorf("cpu %d: error %v should not be a skip", cpu, err)
		}
		for _, o := range outputs {
			if _, err := os.Stat(o); err == nil {
				t.Errorf("cpu %d: output %q should not exist", cpu, o)
			}
		}
	}
}

func TestOutputCount(t *testing.T) {
	r := &drillsite.Reconstructor{
		Rotation:  identity{},
		Plates:    onePlate{0, true},
		End:       20,
		Increment: 1,
	}
	load := func(name string) (*well.Well, error) {
		t.Fatalf("site %q should not be read", name)
		return nil, nil
	}
	_, err := r.Run([]string{"a.txt", "b.txt"}, []string{"a_out.txt"}, load, 1)
	if !errors.Is(err, drillsite.ErrOutputCount) {
		t.Errorf("got error %v, want %v", err, drillsite.ErrOutputCount)
	}
}

func TestBoundaryDistance(t *testing.T) {
	line := geometry.Polyline{
		earth.NewPoint(-5, 10),
		earth.NewPoint(5, 10),
	}
	far := geometry.Polyline{
		earth.NewPoint(-5, 40),
		earth.NewPoint(5, 40),
	}
	r := &drillsite.Reconstructor{
		Rotation: identity{},
		Plates:   onePlate{0, true},
		Boundaries: snapshots{
			0: {far, line},
			1: {line, far},
		},
		End:       2,
		Increment: 1,
	}
	p, err := r.Path(newSite("site", 0, 0, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.HasDistance {
		t.Fatalf("path without distance")
	}

	km := float64(earth.Radius) / 1000
	want := []float64{earth.ToRad(10) * km, earth.ToRad(10) * km, math.Pi * km}
	for i, st := range p.Steps {
		if math.Abs(st.Distance-want[i]) > 1e-6 {
			t.Errorf("step %d: distance: got %.6f, want %.6f", i, st.Distance, want[i])
		}
	}
}

func TestReadPath(t *testing.T) {
	p := &drillsite.Path{
		Name:        "site_reconstructed.txt",
		Latitude:    -12.5,
		Longitude:   130.25,
		HasDistance: true,
		Steps: []drillsite.Step{
			{Age: 0, Point: earth.NewPoint(-12.5, 130.25), Distance: 120.5},
			{Age: 1, Point: earth.NewPoint(-12, 131), Distance: 118.25},
		},
	}

	var buf bytes.Buffer
	if err := p.Write(&buf, p.Name); err != nil {
		t.Fatalf("unable to write path: %v", err)
	}

	np, err := drillsite.ReadPath(&buf)
	if err != nil {
		t.Logf("output:\n%s\n", buf.String())
		t.Fatalf("unable to read path: %v", err)
	}
	if np.Name != p.Name {
		t.Errorf("name: got %q, want %q", np.Name, p.Name)
	}
	if np.Latitude != p.Latitude || np.Longitude != p.Longitude {
		t.Errorf("location: got %.6f, %.6f, want %.6f, %.6f", np.Latitude, np.Longitude, p.Latitude, p.Longitude)
	}
	if !np.HasDistance {
		t.Errorf("path without distance")
	}
	if len(np.Steps) != len(p.Steps) {
		t.Fatalf("steps: got %d, want %d", len(np.Steps), len(p.Steps))
	}
	for i, st := range np.Steps {
		w := p.Steps[i]
		if st.Age != w.Age || math.Abs(st.Distance-w.Distance) > 1e-6 {
			t.Errorf("step %d: got age %.3f distance %.6f, want %.3f %.6f", i, st.Age, st.Distance, w.Age, w.Distance)
		}
		if math.Abs(st.Point.Latitude()-w.Point.Latitude()) > 1e-6 || math.Abs(st.Point.Longitude()-w.Point.Longitude()) > 1e-6 {
			t.Errorf("step %d: got %.6f, %.6f, want %.6f, %.6f", i, st.Point.Latitude(), st.Point.Longitude(), w.Point.Latitude(), w.Point.Longitude())
		}
	}
}

func TestConcurrentRun(t *testing.T) {
	dir := t.TempDir()
	var sites []*well.Well
	var names, outputs []string
	for i := range 10 {
		name := fmt.Sprintf("site-%02d.txt", i)
		sites = append(sites, newSite(name, float64(i), float64(i), float64(i+1)))
		names = append(names, name)
		outputs = append(outputs, filepath.Join(dir, drillsite.OutputName(name)))
	}

	r := &drillsite.Reconstructor{
		Rotation:  identity{},
		Plates:    onePlate{0, true},
		End:       20,
		Increment: 1,
	}
	res, err := r.Run(names, outputs, loader(sites...), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, rs := range res {
		if rs.Site != names[i] {
			t.Errorf("result %d: site: got %q, want %q", i, rs.Site, names[i])
		}
		if rs.Steps != i+2 {
			t.Errorf("result %d: steps: got %d, want %d", i, rs.Steps, i+2)
		}
		if _, err := os.Stat(outputs[i]); err != nil {
			t.Errorf("result %d: output: %v", i, err)
		}
	}
}

func TestOutputName(t *testing.T) {
	tests := map[string]string{
		"site.txt":         "site_reconstructed.txt",
		"data/ODP-1208.xy": "data/ODP-1208_reconstructed.xy",
		"site":             "site_reconstructed",
	}
	for in, want := range tests {
		if got := drillsite.OutputName(in); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}
