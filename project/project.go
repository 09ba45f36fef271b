// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of backtrack project files.
//
// A backtrack project is a tab-delimited file (TSV)
// used to store the reference data files
// (rotations, static polygons, and boundaries)
// required by backtrack commands.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// Files for the plate motion model
	// (rotation files).
	// A project can have multiple rotation files.
	Rotation Dataset = "rotation"

	// File for the static polygons
	// used to assign plate IDs.
	Polygons Dataset = "polygons"

	// File for the continent-ocean boundaries.
	COBs Dataset = "cobs"

	// File for the subduction zones.
	Trenches Dataset = "trenches"
)

var multiple = map[Dataset]bool{
	Rotation: true,
}

// Valid returns true if a dataset keyword
// is a known dataset.
func Valid(set Dataset) bool {
	switch set {
	case Rotation, Polygons, COBs, Trenches:
		return true
	}
	return false
}

// A Project represents a collection of paths
// for particular datasets.
type Project struct {
	name  string
	paths map[Dataset][]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		name:  "",
		paths: make(map[Dataset][]string),
	}
}

var header = []string{
	"dataset",
	"path",
}

// Read reads a project file from a TSV file.
//
// The TSV must contain the following fields:
//
//   - dataset, for the kind of file
//   - path, for the path of the file
//
// Here is an example file:
//
//	# backtrack project files
//	dataset	path
//	rotation	Muller2016.rot
//	rotation	Muller2016-extra.rot
//	polygons	static-polygons.tab
//	cobs	cobs.tab
//	trenches	trenches.tab
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	p := New()
	p.name = name
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "dataset"
		s := Dataset(strings.ToLower(row[fields[f]]))
		if !Valid(s) {
			return nil, fmt.Errorf("on file %q: on row %d: field %q: unknown dataset %q", name, ln, f, s)
		}

		f = "path"
		path := row[fields[f]]
		if path == "" {
			continue
		}
		p.Add(s, path)
	}

	return p, nil
}

// Add adds a filepath of a dataset to a given project.
// For datasets with multiple files
// the path is appended
// (if it is not already in the project).
// For other datasets,
// the path replaces the previous value.
// If path is empty,
// the dataset is removed.
//
// It returns the previous value
// (the first one for datasets with multiple files).
func (p *Project) Add(set Dataset, path string) string {
	prev := p.Path(set)
	if path == "" {
		delete(p.paths, set)
		return prev
	}

	if multiple[set] {
		if !slices.Contains(p.paths[set], path) {
			p.paths[set] = append(p.paths[set], path)
		}
		return prev
	}
	p.paths[set] = []string{path}
	return prev
}

// Path returns the path of the given dataset.
// For datasets with multiple files,
// it returns the first one.
func (p *Project) Path(set Dataset) string {
	ps := p.paths[set]
	if len(ps) == 0 {
		return ""
	}
	return ps[0]
}

// Paths returns all the paths of the given dataset.
func (p *Project) Paths(set Dataset) []string {
	return slices.Clone(p.paths[set])
}

// Sets returns the datasets defined on a project.
func (p *Project) Sets() []Dataset {
	var sets []Dataset
	for s := range p.paths {
		sets = append(sets, s)
	}
	slices.Sort(sets)
	return sets
}

// Name returns the project file name.
func (p *Project) Name() string {
	return p.name
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write writes a project into a file.
func (p *Project) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# backtrack project files\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", p.name, err)
	}

	for _, s := range p.Sets() {
		for _, path := range p.paths[s] {
			row := []string{
				string(s),
				path,
			}
			if err := tsv.Write(row); err != nil {
				return fmt.Errorf("on file %q: %v", p.name, err)
			}
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}

// PathList is a list of paths
// that can be used as a repeatable command flag.
type PathList []string

// String implements the flag.Value interface.
func (pl *PathList) String() string {
	return strings.Join(*pl, ",")
}

// Set implements the flag.Value interface.
// A value with commas
// adds each element as a path.
func (pl *PathList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		*pl = append(*pl, p)
	}
	return nil
}
