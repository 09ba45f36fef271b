// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Backtrack is a tool to reconstruct drill sites
// through geological time,
// and to prepare the reference data used
// in the reconstructions.
package main

import (
	"github.com/js-arias/backtrack/cmd/backtrack/agedepthcmd"
	"github.com/js-arias/backtrack/cmd/backtrack/plotcmd"
	"github.com/js-arias/backtrack/cmd/backtrack/prj"
	"github.com/js-arias/backtrack/cmd/backtrack/recon"
	"github.com/js-arias/backtrack/cmd/backtrack/transfer"
	"github.com/js-arias/command"
)

var app = &command.Command{
	Usage: "backtrack <command> [<argument>...]",
	Short: "a tool to reconstruct drill sites",
}

func init() {
	app.Add(agedepthcmd.Command)
	app.Add(plotcmd.Command)
	app.Add(prj.Command)
	app.Add(recon.Command)
	app.Add(transfer.Command)
}

func main() {
	app.Main()
}
