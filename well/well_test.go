// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package well_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/backtrack/well"
)

var siteFile = `# SiteLongitude = -139.1
# SiteLatitude = 30.0
#
# bottom_age bottom_depth lithology
  2.5        24.0         Clay 1.0
  15.0       110.0        Chalk 0.7 Clay 0.3
  30.0       180.0        Basalt 1.0
`

func TestRead(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "site.txt")
	if err := os.WriteFile(name, []byte(siteFile), 0o644); err != nil {
		t.Fatalf("unable to write site file: %v", err)
	}

	w, err := well.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read site: %v", err)
	}
	if w.Name != name {
		t.Errorf("name: got %q, want %q", w.Name, name)
	}
	if w.Longitude != -139.1 || w.Latitude != 30 {
		t.Errorf("location: got %.3f, %.3f, want %.3f, %.3f", w.Longitude, w.Latitude, -139.1, 30.0)
	}
	if a := w.Attr(well.SiteLongitude); a != "-139.1" {
		t.Errorf("attribute %q: got %q, want %q", well.SiteLongitude, a, "-139.1")
	}

	want := []well.Unit{
		{
			TopAge:      0,
			BottomAge:   2.5,
			TopDepth:    0,
			BottomDepth: 24,
			Lithology:   []well.Lithology{{"Clay", 1}},
		},
		{
			TopAge:      2.5,
			BottomAge:   15,
			TopDepth:    24,
			BottomDepth: 110,
			Lithology:   []well.Lithology{{"Chalk", 0.7}, {"Clay", 0.3}},
		},
		{
			TopAge:      15,
			BottomAge:   30,
			TopDepth:    110,
			BottomDepth: 180,
			Lithology:   []well.Lithology{{"Basalt", 1}},
		},
	}
	if !reflect.DeepEqual(w.Units, want) {
		t.Errorf("units: got %v, want %v", w.Units, want)
	}

	age, ok := w.OldestAge()
	if !ok || age != 30 {
		t.Errorf("oldest age: got %.3f (%v), want %.3f", age, ok, 30.0)
	}
}

func TestReadSurfaceAge(t *testing.T) {
	data := "# SiteLongitude = 10\n# SiteLatitude = 5\n# SurfaceAge = 1.5\n3.0 10.0\n"
	w, err := well.Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read site: %v", err)
	}
	if len(w.Units) != 1 {
		t.Fatalf("units: got %d, want %d", len(w.Units), 1)
	}
	if w.Units[0].TopAge != 1.5 {
		t.Errorf("top age: got %.3f, want %.3f", w.Units[0].TopAge, 1.5)
	}
}

func TestReadNoUnits(t *testing.T) {
	data := "# SiteLongitude = 10\n# SiteLatitude = 5\n"
	w, err := well.Read(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unable to read site: %v", err)
	}
	if _, ok := w.OldestAge(); ok {
		t.Errorf("oldest age: expecting undefined age")
	}
}

func TestReadError(t *testing.T) {
	tests := map[string]string{
		"no longitude": "# SiteLatitude = 5\n1 10\n",
		"no latitude":  "# SiteLongitude = 5\n1 10\n",
		"latitude":     "# SiteLongitude = 5\n# SiteLatitude = 95\n1 10\n",
		"fields":       "# SiteLongitude = 5\n# SiteLatitude = 5\n1\n",
		"age":          "# SiteLongitude = 5\n# SiteLatitude = 5\n5 10\n2 20\n",
		"lithology":    "# SiteLongitude = 5\n# SiteLatitude = 5\n5 10 Clay\n",
	}
	for name, data := range tests {
		if _, err := well.Read(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}
