// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"os"

	"github.com/js-arias/backtrack/feature"
	"github.com/js-arias/backtrack/rotation"
)

// ReadRotation reads a plate motion model
// from one or more rotation files.
func ReadRotation(anchor int, names ...string) (*rotation.Model, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("undefined rotation files")
	}
	m := rotation.NewModel(anchor)
	for _, name := range names {
		if err := readRotationFile(m, name); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func readRotationFile(m *rotation.Model, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := m.Read(f); err != nil {
		return fmt.Errorf("on file %q: %v", name, err)
	}
	return nil
}

// ReadFeatures reads a feature collection
// from one or more feature files.
func ReadFeatures(names ...string) (*feature.Collection, error) {
	c := feature.NewCollection()
	for _, name := range names {
		fc, err := readFeatureFile(name)
		if err != nil {
			return nil, err
		}
		c.Merge(fc)
	}
	return c, nil
}

func readFeatureFile(name string) (*feature.Collection, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := feature.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return c, nil
}

// Rotation reads the plate motion model
// defined in a project,
// using the given anchor plate.
func (p *Project) Rotation(anchor int) (*rotation.Model, error) {
	names := p.Paths(Rotation)
	if len(names) == 0 {
		return nil, fmt.Errorf("plate motion model not defined in project %q", p.name)
	}
	return ReadRotation(anchor, names...)
}

// Features reads a feature collection
// defined in a project.
func (p *Project) Features(set Dataset) (*feature.Collection, error) {
	names := p.Paths(set)
	if len(names) == 0 {
		return nil, fmt.Errorf("dataset %q not defined in project %q", set, p.name)
	}
	return ReadFeatures(names...)
}
