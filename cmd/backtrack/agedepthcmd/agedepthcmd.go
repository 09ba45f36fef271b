// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package agedepthcmd implements a command to convert
// a range of ocean crust ages to basement depths.
package agedepthcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/backtrack/agedepth"
	"github.com/js-arias/command"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `agedepth [-m|--model <name>] [--oldest <age>]
	[-o|--output <file>] [--plot <png-file>]`,
	Short: "convert ocean crust ages to basement depths",
	Long: `
Command agedepth converts a range of ocean crust ages, from the present to
the oldest age at 1 million year increments, to basement depths (in meters)
using an ocean age to depth model. The ages and depths are printed in the
standard output.

By default, the oldest age is 300 million years. Use the flag --oldest to
set a different age.

By default, the GDH1 model (Stein & Stein 1992) is used. Use the flag
--model, or -m, to set a different model. Valid models are:

	GDH1	Stein & Stein (1992)
	PS77	Parsons & Sclater (1977)

The RHCW18 (Richards et al. 2018) and CROSBY_2007 (Crosby et al. 2006)
models are not implemented, so GDH1 is used as the default model.

The flag --output, or -o, sets a file in which the ages and depths will be
written.

The flag --plot sets the name of a png image file with a plot of the depth
through the age range.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var modelFlag string
var oldestFlag float64
var output string
var plotFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&modelFlag, "model", "GDH1", "")
	c.Flags().StringVar(&modelFlag, "m", "GDH1", "")
	c.Flags().Float64Var(&oldestFlag, "oldest", 300, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
}

func run(c *command.Command, args []string) error {
	m, err := agedepth.Get(modelFlag)
	if err != nil {
		msg := fmt.Sprintf("flag --model: %v (valid models: %s)", err, strings.Join(agedepth.Models(), ", "))
		return c.UsageError(msg)
	}
	if oldestFlag < 0 {
		return c.UsageError(fmt.Sprintf("flag --oldest: invalid value %.3f", oldestFlag))
	}

	tab := agedepth.Table(m, oldestFlag)
	if err := agedepth.Write(c.Stdout(), tab); err != nil {
		return err
	}

	if output != "" {
		if err := writeTable(output, tab); err != nil {
			return err
		}
	}
	if plotFile != "" {
		if err := plotTable(plotFile, strings.ToUpper(modelFlag), tab); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(name string, tab []agedepth.Sample) (err error) {
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

	if err := agedepth.Write(f, tab); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func plotTable(name, model string, tab []agedepth.Sample) error {
	p := plot.New()
	p.Title.Text = model
	p.X.Label.Text = "age (Ma)"
	p.Y.Label.Text = "depth (m)"

	pts := make(plotter.XYs, 0, len(tab))
	for _, s := range tab {
		// depth increases downwards
		pts = append(pts, plotter.XY{X: s.Age, Y: -s.Depth})
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("while plotting %q: %v", name, err)
	}
	p.Add(line, plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
