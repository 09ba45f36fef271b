// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(featureFilesGuide)
	app.Add(plateKeysGuide)
	app.Add(projectsGuide)
	app.Add(rotationFilesGuide)
	app.Add(siteFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Backtrack requires several reference files to reconstruct drill sites. To
reduce the burden of keeping track of many files, a single project file can be
used to hold the reference of the files. This guide explains the structure of
the file, but most of the time, the best way to edit or view this file is by
using the command 'backtrack prj'.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# backtrack project files
	dataset	path
	rotation	Muller2016.rot
	rotation	Muller2016-extra.rot
	polygons	static-polygons.tab
	cobs	cobs.tab
	trenches	trenches.tab

The valid file types are:

- Rotation files. Defined by the dataset keyword "rotation". These files
  contain the plate motion model. A project can have multiple rotation files.
  Use 'backtrack help rotation-files' for a description of the format.
- Static polygons. Defined by the dataset keyword "polygons". This file
  contains the polygons used to assign plate IDs to drill sites. Use
  'backtrack help feature-files' for a description of the format.
- Continent-ocean boundaries. Defined by the dataset keyword "cobs". This
  file contains the boundaries used to calculate the distance of a
  reconstructed drill site to the continental margin.
- Trenches. Defined by the dataset keyword "trenches". This file contains
  the subduction zones with its exclusion distances.
	`,
}

var rotationFilesGuide = &command.Command{
	Usage: "rotation-files",
	Short: "about rotation files",
	Long: `
Rotation files define the plate motion model as a set of total reconstruction
poles, in the PLATES4 format. Each line is a pole, with the following
white-space separated fields:

	- moving plate ID
	- age (in million years)
	- latitude of the Euler pole
	- longitude of the Euler pole
	- rotation angle (in degrees)
	- fixed plate ID
	- an optional comment, starting with '!'

Here is an example file:

	701   0.0  90.00    0.00   0.00  000 !AFR-Abs
	701  10.0  29.37  -57.27  -2.39  000 !AFR-Abs
	701  20.0  25.59  -68.95  -5.12  000 !AFR-Abs
	201   0.0  90.00    0.00   0.00  701 !SAM-AFR
	201  10.0  62.40  -40.50   3.30  701 !SAM-AFR

Poles of a moving plate with the same fixed plate are interpolated between
the defined ages. The rotation of a plate is the composition of the rotations
through its fixed plates, up to the plate 0. Lines with the moving plate 999
are comments.
	`,
}

var featureFilesGuide = &command.Command{
	Usage: "feature-files",
	Short: "about feature files",
	Long: `
Static polygons, continent-ocean boundaries, and trenches are stored as
feature files. A feature file is a tab-delimited file with the following
fields:

	- feature   the ID of the feature
	- name      an optional name of the feature
	- plate     the reconstruction plate ID
	- begin     the oldest age of the feature (in million years);
	            empty for the distant past
	- end       the youngest age of the feature;
	            empty for the present
	- geometry  the kind of geometry: "point", "polyline", or "polygon"
	- lat       the latitude of a vertex
	- lon       the longitude of a vertex

Each row is a vertex of the feature, so a feature can span multiple rows.
Any other field is a numeric attribute of the feature, read from the first
row of the feature.

Here is an example file:

	feature	name	plate	begin	end	geometry	lat	lon	exclude_subducting_distance_to_trenches_kms
	t1	Peru-Chile	201			polyline	-5.0	-81.5	60
	t1	Peru-Chile	201			polyline	-15.0	-76.0	60
	t1	Peru-Chile	201			polyline	-30.0	-72.0	60
	`,
}

var siteFilesGuide = &command.Command{
	Usage: "site-files",
	Short: "about drill site files",
	Long: `
A drill site file is a text file with the stratigraphic units of the site.
The location of the site is defined with comment lines in the form
'# <attribute> = <value>', with the attributes SiteLongitude and
SiteLatitude. The optional attribute SurfaceAge sets the age of the top of
the first unit.

Each non-comment line is a stratigraphic unit, from the top to the bottom,
with the following white-space separated fields:

	- bottom age (in million years)
	- bottom depth (in meters)
	- zero or more pairs of lithology name and its fraction

Here is an example file:

	# SiteLongitude = -139.1
	# SiteLatitude = 30.0
	#
	# bottom_age bottom_depth lithology
	  2.5        24.0         Clay 1.0
	  15.0       110.0        Chalk 0.7 Clay 0.3
	  30.0       180.0        Basalt 1.0
	`,
}

var plateKeysGuide = &command.Command{
	Usage: "plate-keys",
	Short: "about plate key files",
	Long: `
A plate key file defines the colors used to draw the plates in a map. It is a
tab-delimited file with the following fields:

	- plate  the plate ID
	- color  an RGB value separated by commas

Any other field is ignored. Here is an example file:

	plate	color	comment
	101	251, 236, 93	North America
	201	255, 165, 0	South America
	701	68, 167, 196	Africa
	`,
}
