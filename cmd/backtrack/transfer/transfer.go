// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package transfer implements a command to copy attributes
// between the features of two feature collections.
package transfer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/js-arias/backtrack/feature"
	"github.com/js-arias/backtrack/match"
	"github.com/js-arias/backtrack/project"
	"github.com/js-arias/command"
	"github.com/js-arias/earth"
)

var Command = &command.Command{
	Usage: `transfer [--keys <key>,...] [--spacing <degrees>]
	[-o|--output <file>] [-v|--verbose]
	<source-file> <destination-file>`,
	Short: "transfer feature attributes between collections",
	Long: `
Command transfer reads two feature collections that describe the same
structures (for example, the trenches of two plate models) with slightly
different geometries. For each feature of the destination collection, it
finds the closest feature of the source collection, and copies the
attributes of the source feature into the destination feature.

The first argument is the source feature file, and the second argument is
the destination feature file. Use 'backtrack help feature-files' for a
description of the format.

Two lines are compared by sampling both lines at a uniform spacing, and
averaging the distance between the sampled points. By default the spacing is
0.5 degrees; use the flag --spacing to set a different value.

By default, the transferred attributes are the trench exclusion distances
'exclude_subducting_distance_to_trenches_kms' and
'exclude_overriding_distance_to_trenches_kms'. Use the flag --keys to set a
different list of attributes (separated by commas). The values in the
destination are always overwritten, and if the source feature does not have
an attribute, the attribute is removed from the destination feature.

By default, the destination file is overwritten. Use the flag --output, or
-o, to write the result into a different file.

If the flag --verbose, or -v, is defined, the matched features will be
printed in the standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var keysFlag string
var spacing float64
var output string
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&keysFlag, "keys", match.SubductingKey+","+match.OverridingKey, "")
	c.Flags().Float64Var(&spacing, "spacing", match.DefaultSpacing, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting source and destination files")
	}
	if spacing <= 0 {
		return c.UsageError(fmt.Sprintf("flag --spacing: invalid value %.6f", spacing))
	}

	var keys []string
	for _, k := range strings.Split(keysFlag, ",") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return c.UsageError("expecting attribute keys, flag --keys")
	}

	src, err := project.ReadFeatures(args[0])
	if err != nil {
		return err
	}
	if src.Len() == 0 {
		return fmt.Errorf("on file %q: no features", args[0])
	}
	dst, err := project.ReadFeatures(args[1])
	if err != nil {
		return err
	}

	pairs := match.Transfer(src, dst, keys, spacing)
	if verbose {
		for _, p := range pairs {
			fmt.Fprintf(c.Stdout(), "%s\t%s\t%.3f\n", p.Dest, p.Source, p.Distance*earth.Radius/1000)
		}
	}

	if output == "" {
		output = args[1]
	}
	if err := writeFeatures(output, dst, args[0]); err != nil {
		return err
	}
	return nil
}

func writeFeatures(name string, c *feature.Collection, src string) (err error) {
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

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# feature attributes transferred from %q\n", src)
	fmt.Fprintf(w, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := c.TSV(w); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
