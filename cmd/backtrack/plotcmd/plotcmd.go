// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plotcmd implements a command to draw
// reconstructed drill site paths.
package plotcmd

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"slices"

	"github.com/js-arias/backtrack/drillsite"
	"github.com/js-arias/backtrack/pathmap"
	"github.com/js-arias/backtrack/platekey"
	"github.com/js-arias/backtrack/project"
	"github.com/js-arias/backtrack/rotation"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `plot [-c|--columns <value>] [--gradient <name>]
	[-p|--polygons <file>] [-r|--rotation <file>]... [--at <age>]
	[--key <key-file>] [--project <project-file>]
	[-o|--output <file>] <reconstructed-file>...`,
	Short: "draw a map of reconstructed drill sites",
	Long: `
Command plot reads one or more reconstructed drill site files, as produced by
the command 'backtrack recon', and draws the reconstructed locations as a png
image using a plate carrée projection. Each location is colored by its age.

The arguments of the command are the reconstructed drill site files.

By default the image will be 3600 pixels wide; use the flag --columns, or -c,
to define a different number of image columns.

By default the locations are colored with a purple to red rainbow gradient.
Use the flag --gradient to set a different gradient. Valid values are
"rainbow", "iridescent", and "incandescent".

If the flag --polygons, or -p, is defined, the outlines of the static
polygons will be drawn. By default, the outlines are drawn at their
present-day location; use the flag --at to draw them at a given age (in
million years), using the rotation files set with the flag --rotation, or
-r. If the flag --project is defined, the static polygons and rotation
files will be read from the project.

By default the outline of each plate is drawn with a random color. Use the
flag --key to define a file with the colors of the plates. Use 'backtrack help
plate-keys' for a description of the format.

By default, the output file is "paths.png". Use the flag --output, or -o, to
set a different name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var colsFlag int
var gradFlag string
var polFile string
var rotFiles project.PathList
var atFlag float64
var keyFile string
var projFile string
var output string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&colsFlag, "columns", 3600, "")
	c.Flags().IntVar(&colsFlag, "c", 3600, "")
	c.Flags().StringVar(&gradFlag, "gradient", "rainbow", "")
	c.Flags().StringVar(&polFile, "polygons", "", "")
	c.Flags().StringVar(&polFile, "p", "", "")
	c.Flags().Var(&rotFiles, "rotation", "")
	c.Flags().Var(&rotFiles, "r", "")
	c.Flags().Float64Var(&atFlag, "at", 0, "")
	c.Flags().StringVar(&keyFile, "key", "", "")
	c.Flags().StringVar(&projFile, "project", "", "")
	c.Flags().StringVar(&output, "output", "paths.png", "")
	c.Flags().StringVar(&output, "o", "paths.png", "")
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		return c.UsageError("expecting reconstructed drill site files")
	}
	if colsFlag <= 0 {
		return c.UsageError(fmt.Sprintf("flag --columns: invalid value %d", colsFlag))
	}
	if atFlag < 0 {
		return c.UsageError(fmt.Sprintf("flag --at: invalid value %.3f", atFlag))
	}

	var grad pathmap.Gradienter
	switch gradFlag {
	case "rainbow":
		grad = pathmap.RainbowPurpleToRed{}
	case "iridescent":
		grad = pathmap.Iridescent{}
	case "incandescent":
		grad = pathmap.Incandescent{}
	default:
		return c.UsageError(fmt.Sprintf("flag --gradient: unknown value %q", gradFlag))
	}

	img := &pathmap.Image{
		Cols:     colsFlag,
		Gradient: grad,
	}
	for _, a := range args {
		p, err := readPath(a)
		if err != nil {
			return err
		}
		img.Paths = append(img.Paths, p)
	}

	p := project.New()
	if projFile != "" {
		var err error
		p, err = project.Read(projFile)
		if err != nil {
			return err
		}
	}

	pf := polFile
	if pf == "" {
		pf = p.Path(project.Polygons)
	}
	if pf != "" {
		outlines, plates, err := readOutlines(pf, p)
		if err != nil {
			return err
		}
		img.Outlines = outlines

		if keyFile != "" {
			img.Keys, err = readKeys(keyFile)
			if err != nil {
				return err
			}
		} else {
			img.Keys = platekey.Random(plates)
		}
	}

	img.Format()
	if err := writeImage(output, img); err != nil {
		return err
	}
	return nil
}

func readPath(name string) (*drillsite.Path, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := drillsite.ReadPath(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return p, nil
}

func readOutlines(name string, p *project.Project) ([]pathmap.Outline, []int, error) {
	pol, err := project.ReadFeatures(name)
	if err != nil {
		return nil, nil, err
	}

	var rot *rotation.Model
	if atFlag > 0 {
		rf := []string(rotFiles)
		if len(rf) == 0 {
			rf = p.Paths(project.Rotation)
		}
		if len(rf) == 0 {
			return nil, nil, fmt.Errorf("expecting rotation files, flag --rotation")
		}
		rot, err = project.ReadRotation(0, rf...)
		if err != nil {
			return nil, nil, err
		}
	}

	var outlines []pathmap.Outline
	var plates []int
	for _, f := range pol.Features() {
		if !f.ValidAt(atFlag) {
			continue
		}
		line := slices.Clone(f.Line())
		if rot != nil {
			r := rot.Rotation(f.Plate, atFlag, 0)
			for i, pt := range line {
				line[i] = r.Rotate(pt)
			}
		}
		outlines = append(outlines, pathmap.Outline{
			Plate: f.Plate,
			Line:  line,
		})
		if !slices.Contains(plates, f.Plate) {
			plates = append(plates, f.Plate)
		}
	}
	return outlines, plates, nil
}

func readKeys(name string) (*platekey.Key, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	k, err := platekey.Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return k, nil
}

func writeImage(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("when encoding image file %q: %v", name, err)
	}
	return nil
}
