// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package drillsite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/js-arias/backtrack/well"
)

// ErrOutputCount is returned when the number of output files
// is different from the number of drill site files.
var ErrOutputCount = errors.New("number of output files must match number of input drill site files")

// OutputSuffix is the suffix added to a drill site file name
// to build the default output file name.
const OutputSuffix = "_reconstructed"

// OutputName returns the default output file name
// of a drill site file.
func OutputName(site string) string {
	ext := filepath.Ext(site)
	return strings.TrimSuffix(site, ext) + OutputSuffix + ext
}

// A Result is the result of the reconstruction
// of a single drill site.
type Result struct {
	Site   string
	Output string

	// Steps is the number of reconstructed ages
	// written into the output.
	Steps int

	// Skip is the reason for a skipped site,
	// or the error when reading the site
	// or writing its output.
	// It is nil if the site was reconstructed.
	Skip *SkipError
}

// A Loader reads a drill site.
type Loader func(name string) (*well.Well, error)

// Run reconstructs a set of drill site files,
// and writes each reconstruction
// into its corresponding output file.
//
// Sites are processed with the indicated number of CPUs.
// The default (zero) uses all available CPUs.
//
// Skipped sites,
// including sites that cannot be read
// or whose output cannot be written,
// do not stop the processing of other sites,
// and are reported in the results.
// A site outside the static polygons
// stops the processing,
// and the error is returned with the results
// of the sites already processed.
func (r *Reconstructor) Run(sites, outputs []string, load Loader, cpu int) ([]Result, error) {
	if len(sites) != len(outputs) {
		return nil, ErrOutputCount
	}
	if load == nil {
		load = well.ReadFile
	}
	if cpu <= 0 {
		cpu = runtime.NumCPU()
	}

	res := make([]Result, len(sites))
	if cpu == 1 {
		for i := range sites {
			if err := r.runSite(load, sites[i], outputs[i], &res[i]); err != nil {
				return res[:i], err
			}
		}
		return res, nil
	}

	jobs := make(chan int, cpu*2)
	stop := make(chan struct{})
	var once sync.Once
	var fatal error

	var wg sync.WaitGroup
	for range cpu {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := r.runSite(load, sites[i], outputs[i], &res[i]); err != nil {
					once.Do(func() {
						fatal = err
						close(stop)
					})
				}
			}
		}()
	}

dispatch:
	for i := range sites {
		select {
		case jobs <- i:
		case <-stop:
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return res, fatal
}

// runSite reconstructs a single site.
// It only returns an error
// if the whole reconstruction must be stopped.
func (r *Reconstructor) runSite(load Loader, site, output string, res *Result) error {
	res.Site = site
	w, err := load(site)
	if err != nil {
		res.Skip = &SkipError{Site: site, Err: err}
		return nil
	}
	if w.Name == "" {
		w.Name = site
	}

	p, err := r.Path(w)
	var skip *SkipError
	if errors.As(err, &skip) {
		res.Skip = skip
		return nil
	}
	if err != nil {
		return err
	}

	if err := writePath(output, p); err != nil {
		res.Skip = &SkipError{Site: w.Name, Err: err}
		return nil
	}
	res.Output = output
	res.Steps = len(p.Steps)
	return nil
}

func writePath(name string, p *Path) (err error) {
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

	if err := p.Write(f, filepath.Base(name)); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
