/*
Copyright © 2026 the geofluid authors.
This file is part of geofluid.

geofluid is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

geofluid is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with geofluid.  If not, see <http://www.gnu.org/licenses/>.
*/

package geofluid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miniufo/MyPackage-sub003/coords"
	"github.com/miniufo/MyPackage-sub003/diag"
	"github.com/miniufo/MyPackage-sub003/elliptic"
	"github.com/miniufo/MyPackage-sub003/field"
	"github.com/miniufo/MyPackage-sub003/grid"
	"github.com/miniufo/MyPackage-sub003/phys"
	"github.com/sirupsen/logrus"
)

// VarNames are the source variable names of the inversion inputs. Empty
// names are not read.
type VarNames struct {
	// Unknown holds the first guess and, on its edges, the boundary values.
	// Without it the first guess is zero.
	Unknown string
	Forcing string

	Stability       string
	Inertial        string
	Baroclinicity   string
	AngularMomentum string
	SpecificVolume  string
	Temperature     string

	// RadialFlux and VerticalFlux are integrated along the edges when
	// boundary seeding is requested.
	RadialFlux   string
	VerticalFlux string
}

// Config configures an inversion.
type Config struct {
	System    coords.System
	Constants phys.Constants // zero means phys.Default
	Fields    VarNames
	Options   elliptic.Options

	// SeedBoundaries sets the edges of the unknown from the boundary fluxes
	// before solving.
	SeedBoundaries bool

	// RefLatitude and Laplace are passed to the Cartesian coefficients.
	RefLatitude float64
	Laplace     bool
}

// Output holds the result of an inversion.
type Output struct {
	// Solution is the solved unknown with one column.
	Solution     *field.Field
	Coefficients *elliptic.Coefficients
	Results      []elliptic.Result
	Seeds        []elliptic.Seed

	// Radial and Vertical are the flux components of Solution.
	Radial, Vertical *field.Field
}

// Converged reports whether every slice converged.
func (o *Output) Converged() bool {
	for _, r := range o.Results {
		if r.Status != elliptic.Converged {
			return false
		}
	}
	return len(o.Results) > 0
}

// Summary describes the outcome of every slice, one line each.
func (o *Output) Summary() string {
	var b strings.Builder
	for _, r := range o.Results {
		fmt.Fprintf(&b, "slice %d: %v after %d iterations, relative error %.3g\n",
			r.Slice, r.Status, r.Iterations, r.RelativeError)
	}
	return b.String()
}

// Invert reads the inputs named in cfg from src, builds the coefficients of
// cfg.System, optionally seeds the boundaries, and solves.
func Invert(src grid.Source, cfg *Config, log logrus.FieldLogger) (*Output, error) {
	d := src.Descriptor()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	c := cfg.Constants
	if c == (phys.Constants{}) {
		c = phys.Default
	}
	load := func(name string) (*field.Field, error) {
		if name == "" {
			return nil, nil
		}
		f, err := src.Field(name)
		if err != nil {
			return nil, fmt.Errorf("geofluid: loading %s: %w", name, err)
		}
		return f, nil
	}

	var base coords.Base
	for _, v := range []struct {
		name string
		dst  **field.Field
	}{
		{cfg.Fields.Stability, &base.Stability},
		{cfg.Fields.Inertial, &base.Inertial},
		{cfg.Fields.Baroclinicity, &base.Baroclinicity},
		{cfg.Fields.AngularMomentum, &base.AngularMomentum},
		{cfg.Fields.SpecificVolume, &base.SpecificVolume},
		{cfg.Fields.Temperature, &base.Temperature},
	} {
		f, err := load(v.name)
		if err != nil {
			return nil, err
		}
		*v.dst = f
	}
	base.RefLatitude = cfg.RefLatitude
	base.Laplace = cfg.Laplace

	coef, err := cfg.System.Coefficients(d, &base, c)
	if err != nil {
		return nil, fmt.Errorf("geofluid: %v coefficients: %w", cfg.System, err)
	}
	log.WithFields(logrus.Fields{
		"system": cfg.System,
		"grid":   d.Name,
		"dy":     coef.DY,
		"dz":     coef.DZ,
		"cross":  coef.B != nil,
	}).Info("geofluid computed coefficients")

	s, err := column(d, src, cfg.Fields.Unknown, "psi")
	if err != nil {
		return nil, err
	}
	var forcing *field.Field
	if cfg.Fields.Forcing != "" {
		if forcing, err = column(d, src, cfg.Fields.Forcing, ""); err != nil {
			return nil, err
		}
	}
	out := &Output{Solution: s, Coefficients: coef}

	if cfg.SeedBoundaries {
		if cfg.Fields.RadialFlux == "" || cfg.Fields.VerticalFlux == "" {
			return nil, errors.New("geofluid: boundary seeding needs radial and vertical flux variables")
		}
		radial, err := column(d, src, cfg.Fields.RadialFlux, "")
		if err != nil {
			return nil, err
		}
		vertical, err := column(d, src, cfg.Fields.VerticalFlux, "")
		if err != nil {
			return nil, err
		}
		if out.Seeds, err = elliptic.SeedBoundaries(s, radial, vertical, coef.DY, coef.DZ); err != nil {
			return nil, fmt.Errorf("geofluid: seeding boundaries: %w", err)
		}
		for _, sd := range out.Seeds {
			log.WithFields(logrus.Fields{
				"slice":       sd.Slice,
				"discrepancy": sd.Discrepancy,
				"corner":      sd.Corner,
			}).Info("geofluid seeded boundaries")
		}
	}

	if out.Results, err = elliptic.Solve(s, forcing, coef, cfg.Options); err != nil {
		return nil, fmt.Errorf("geofluid: solving: %w", err)
	}
	for _, r := range out.Results {
		entry := log.WithFields(logrus.Fields{
			"slice":      r.Slice,
			"status":     r.Status,
			"iterations": r.Iterations,
			"relerr":     r.RelativeError,
		})
		switch {
		case r.Warning != nil:
			entry.Warn(r.Warning)
		case r.Status != elliptic.Converged:
			entry.Warn("geofluid slice did not converge")
		default:
			entry.Info("geofluid solved slice")
		}
	}

	if out.Radial, out.Vertical, err = diag.Fluxes(s, coef.DY, coef.DZ); err != nil {
		return nil, fmt.Errorf("geofluid: %w", err)
	}
	return out, nil
}

// column reads variable name from src averaged to one column. An empty
// name gives a zeroed field called dflt.
func column(d *grid.Descriptor, src grid.Source, name, dflt string) (*field.Field, error) {
	var f *field.Field
	var err error
	if name == "" {
		f, err = d.NewField(dflt)
	} else {
		f, err = src.Field(name)
	}
	if err != nil {
		return nil, fmt.Errorf("geofluid: loading %s: %w", name, err)
	}
	if err := d.Check(f); err != nil {
		return nil, fmt.Errorf("geofluid: %w", err)
	}
	if f.X() > 1 {
		return f.Mean(field.X)
	}
	return f, nil
}
