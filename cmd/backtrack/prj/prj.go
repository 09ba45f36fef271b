// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// and edit the basic information of a project.
package prj

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/js-arias/backtrack/feature"
	"github.com/js-arias/backtrack/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "prj [--add <dataset>=<file>]... [--remove <dataset>]... <project-file>",
	Short: "print and edit information about a project",
	Long: `
Command prj reads a backtrack project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.

The flag --add adds a dataset file to the project, in the form
'<dataset>=<file>'. The flag can be repeated. If the project file does not
exist, a new project will be created. Valid datasets are "rotation" (that
can have multiple files), "polygons", "cobs", and "trenches".

The flag --remove removes all the files of a dataset from the project. The
flag can be repeated.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFlags project.PathList
var removeFlags project.PathList

func setFlags(c *command.Command) {
	c.Flags().Var(&addFlags, "add", "")
	c.Flags().Var(&removeFlags, "remove", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	edit := len(addFlags) > 0 || len(removeFlags) > 0
	p, err := project.Read(args[0])
	if errors.Is(err, fs.ErrNotExist) && edit {
		p = project.New()
		p.SetName(args[0])
		err = nil
	}
	if err != nil {
		return err
	}

	if edit {
		for _, r := range removeFlags {
			set := project.Dataset(strings.ToLower(r))
			if !project.Valid(set) {
				return c.UsageError(fmt.Sprintf("flag --remove: unknown dataset %q", r))
			}
			p.Add(set, "")
		}
		for _, a := range addFlags {
			s, path, ok := strings.Cut(a, "=")
			if !ok || strings.TrimSpace(path) == "" {
				return c.UsageError(fmt.Sprintf("flag --add: invalid value %q", a))
			}
			set := project.Dataset(strings.ToLower(strings.TrimSpace(s)))
			if !project.Valid(set) {
				return c.UsageError(fmt.Sprintf("flag --add: unknown dataset %q", s))
			}
			p.Add(set, strings.TrimSpace(path))
		}
		if err := p.Write(); err != nil {
			return err
		}
	}

	if rf := p.Paths(project.Rotation); len(rf) > 0 {
		if err := printRotation(c.Stdout(), p, rf); err != nil {
			return err
		}
	}
	for _, set := range []project.Dataset{project.Polygons, project.COBs, project.Trenches} {
		if p.Path(set) == "" {
			continue
		}
		if err := printFeatures(c.Stdout(), p, set); err != nil {
			return err
		}
	}
	return nil
}

func printRotation(w io.Writer, p *project.Project, files []string) error {
	rot, err := p.Rotation(0)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Plate motion model:\n")
	for _, f := range files {
		fmt.Fprintf(w, "\tfile: %s\n", f)
	}
	fmt.Fprintf(w, "\tplates: %d\n", len(rot.Plates()))
	young, old := rot.Ages()
	fmt.Fprintf(w, "\tage range: %.3f-%.3f Ma\n", young, old)
	fmt.Fprintf(w, "\n")
	return nil
}

var setNames = map[project.Dataset]string{
	project.Polygons: "Static polygons",
	project.COBs:     "Continent-ocean boundaries",
	project.Trenches: "Trenches",
}

func printFeatures(w io.Writer, p *project.Project, set project.Dataset) error {
	c, err := p.Features(set)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s:\n", setNames[set])
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(set))
	fmt.Fprintf(w, "\tfeatures: %d\n", c.Len())
	plates := make(map[int]bool)
	for _, f := range c.Features() {
		plates[f.Plate] = true
	}
	fmt.Fprintf(w, "\tplates: %d\n", len(plates))
	if set == project.Polygons {
		fmt.Fprintf(w, "\tpresent-day polygons: %d\n", feature.NewPartition(c).Len())
	}
	fmt.Fprintf(w, "\n")
	return nil
}
