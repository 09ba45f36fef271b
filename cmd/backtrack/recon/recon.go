// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package recon implements a command to reconstruct
// the present-day location of drill sites.
package recon

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/js-arias/backtrack/drillsite"
	"github.com/js-arias/backtrack/feature"
	"github.com/js-arias/backtrack/project"
	"github.com/js-arias/backtrack/timestage"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `recon -e|--end <age> [-s|--start <age>] [-i|--increment <value>]
	[-a|--anchor <plate>]
	[-r|--rotation <file>]... [-p|--polygons <file>]
	[-od|--distance] [--cob <file>]...
	[-o|--output <file>]...
	[--project <project-file>] [--cpu <number>]
	<drill-site-file>...`,
	Short: "reconstruct drill site locations",
	Long: `
Command recon reads one or more drill sites, and reconstructs the location of
each drill site through a range of times, but not older than the age of the
oldest stratigraphic layer at the drill site. The reconstructed longitude,
latitude, and time are written into a text file, one for each drill site.

The arguments of the command are the drill site files. Use 'backtrack help
site-files' for a description of the format.

The flag --end, or -e, is required and sets the end of the time range (the
oldest time, in million years). The flag --start, or -s, sets the start of the
time range (the youngest time); by default it is 0. The flag --increment, or
-i, sets the increment of the time range; by default it is 1 million years.
The end of the time range is inclusive. If the end is younger than the start,
the time range is empty, and only the header is written for each drill site.

Each drill site is assigned to a plate ID using the static polygons, and
reconstructed with the plate motion model. The flag --rotation, or -r, sets a
rotation file; it can be repeated to use multiple rotation files. The flag
--polygons, or -p, sets the static polygons file. The flag --anchor, or -a,
sets the anchor plate ID; if given, it must be a positive integer. By default
the anchor plate is 0.

If the flag --distance, or -od, is defined, the distance (in km) from each
reconstructed drill site location to the reconstructed continent-ocean
boundaries (COBs) is calculated and written as a fourth column. The flag
--cob sets the COBs file; it can be repeated to use multiple files.

Reference data not given with flags is taken from a project file set with the
flag --project. Use 'backtrack help projects' for a description of project
files.

By default, the output file of each drill site has the name of the drill site
file with the suffix '_reconstructed' added before the extension. The flag
--output, or -o, sets the output file; it can be repeated, and in that case,
the number of output files must match the number of drill site files.

Drill sites that cannot be read, that have no stratigraphic layers, or that
are younger than the start time, are skipped with a warning; a drill site
whose output file cannot be written is also reported with a warning. If a
drill site is outside all the static polygons, the command stops with an
error.

By default, drill sites are processed one at a time. Use the flag --cpu to
process drill sites in parallel; if it is 0, all available CPUs will be used.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var startFlag float64
var endFlag float64
var incFlag float64
var anchorFlag string
var distFlag bool
var rotFiles project.PathList
var polFile string
var cobFiles project.PathList
var outFiles project.PathList
var projFile string
var numCPU int

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&startFlag, "start", 0, "")
	c.Flags().Float64Var(&startFlag, "s", 0, "")
	c.Flags().Float64Var(&endFlag, "end", 0, "")
	c.Flags().Float64Var(&endFlag, "e", 0, "")
	c.Flags().Float64Var(&incFlag, "increment", 1, "")
	c.Flags().Float64Var(&incFlag, "i", 1, "")
	c.Flags().StringVar(&anchorFlag, "anchor", "", "")
	c.Flags().StringVar(&anchorFlag, "a", "", "")
	c.Flags().BoolVar(&distFlag, "distance", false, "")
	c.Flags().BoolVar(&distFlag, "od", false, "")
	c.Flags().Var(&rotFiles, "rotation", "")
	c.Flags().Var(&rotFiles, "r", "")
	c.Flags().StringVar(&polFile, "polygons", "", "")
	c.Flags().StringVar(&polFile, "p", "", "")
	c.Flags().Var(&cobFiles, "cob", "")
	c.Flags().Var(&outFiles, "output", "")
	c.Flags().Var(&outFiles, "o", "")
	c.Flags().StringVar(&projFile, "project", "", "")
	c.Flags().IntVar(&numCPU, "cpu", 1, "")
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		return c.UsageError("expecting drill site files")
	}

	var endSet bool
	c.Flags().Visit(func(f *flag.Flag) {
		if f.Name == "end" || f.Name == "e" {
			endSet = true
		}
	})
	if !endSet {
		return c.UsageError("expecting end time, flag --end")
	}
	if err := timestage.Check(startFlag, endFlag, incFlag); err != nil {
		return c.UsageError(err.Error())
	}
	anchor, err := parseAnchor(anchorFlag)
	if err != nil {
		return c.UsageError(err.Error())
	}

	outputs := []string(outFiles)
	if len(outputs) == 0 {
		for _, s := range args {
			outputs = append(outputs, drillsite.OutputName(s))
		}
	}
	if len(outputs) != len(args) {
		return drillsite.ErrOutputCount
	}

	p := project.New()
	if projFile != "" {
		p, err = project.Read(projFile)
		if err != nil {
			return err
		}
	}

	rf := []string(rotFiles)
	if len(rf) == 0 {
		rf = p.Paths(project.Rotation)
	}
	if len(rf) == 0 {
		return c.UsageError("expecting rotation files, flag --rotation")
	}
	rot, err := project.ReadRotation(anchor, rf...)
	if err != nil {
		return err
	}

	pf := polFile
	if pf == "" {
		pf = p.Path(project.Polygons)
	}
	if pf == "" {
		return c.UsageError("expecting static polygons file, flag --polygons")
	}
	polygons, err := project.ReadFeatures(pf)
	if err != nil {
		return err
	}

	r := &drillsite.Reconstructor{
		Rotation:  rot,
		Plates:    feature.NewPartition(polygons),
		Start:     startFlag,
		End:       endFlag,
		Increment: incFlag,
	}

	if distFlag {
		cf := []string(cobFiles)
		if len(cf) == 0 {
			cf = p.Paths(project.COBs)
		}
		if len(cf) == 0 {
			return c.UsageError("expecting COBs file, flag --cob")
		}
		cobs, err := project.ReadFeatures(cf...)
		if err != nil {
			return err
		}
		r.Boundaries = feature.NewReconstruction(cobs, rot)
	}

	res, err := r.Run(args, outputs, nil, numCPU)
	for _, rs := range res {
		if rs.Skip != nil {
			fmt.Fprintf(c.Stderr(), "WARNING: %v\n", rs.Skip)
		}
	}
	if err != nil {
		return err
	}
	return nil
}

// parseAnchor parses the anchor plate flag.
// If the flag is given,
// it must be a positive integer.
func parseAnchor(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("flag --anchor: %q is not an integer", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("flag --anchor: %d is not a positive integer", v)
	}
	return v, nil
}
