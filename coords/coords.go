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

// Package coords builds elliptic coefficients from physical base fields
// for Cartesian, spherical and cylindrical coordinate systems.
package coords

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/miniufo/MyPackage-sub003/elliptic"
	"github.com/miniufo/MyPackage-sub003/field"
	"github.com/miniufo/MyPackage-sub003/grid"
	"github.com/miniufo/MyPackage-sub003/phys"
)

var (
	// ErrMissingField is returned when a strategy lacks a required base field.
	ErrMissingField = errors.New("coords: missing base field")

	// ErrNonUniform is returned for an axis whose spacing varies.
	ErrNonUniform = errors.New("coords: axis spacing is not uniform")
)

// uniformTol is the relative spacing variation accepted as uniform.
const uniformTol = 1e-6

// System selects a coordinate system.
type System int

// Supported coordinate systems.
const (
	Cartesian System = iota
	Spherical
	Cylindrical
)

// ParseSystem returns the System with the given name.
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cartesian":
		return Cartesian, nil
	case "spherical":
		return Spherical, nil
	case "cylindrical":
		return Cylindrical, nil
	default:
		return 0, fmt.Errorf("coords: unknown coordinate system %q", s)
	}
}

func (s System) String() string {
	switch s {
	case Cartesian:
		return "cartesian"
	case Spherical:
		return "spherical"
	case Cylindrical:
		return "cylindrical"
	default:
		return fmt.Sprintf("System(%d)", int(s))
	}
}

// Strategy computes the coefficients of one coordinate system.
type Strategy func(d *grid.Descriptor, b *Base, c phys.Constants) (*elliptic.Coefficients, error)

var strategies = map[System]Strategy{
	Cartesian:   cartesian,
	Spherical:   spherical,
	Cylindrical: cylindrical,
}

// Coefficients computes the coefficients for system s. Base fields with
// more than one column are averaged along X first; b is never modified.
func (s System) Coefficients(d *grid.Descriptor, b *Base, c phys.Constants) (*elliptic.Coefficients, error) {
	fn, ok := strategies[s]
	if !ok {
		return nil, fmt.Errorf("coords: unknown coordinate system %d", int(s))
	}
	if b == nil {
		b = &Base{}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	for _, a := range []grid.Axis{d.Y, d.Z} {
		if a.Len() > 1 && !a.Uniform(uniformTol) {
			return nil, fmt.Errorf("%w: %s", ErrNonUniform, a.Name)
		}
	}
	return fn(d, b, c)
}

// Base holds the physical fields coefficients are derived from. Which
// fields are used, and which may be nil, depends on the System.
type Base struct {
	Stability       *field.Field // static stability
	Inertial        *field.Field // inertial stability
	Baroclinicity   *field.Field
	AngularMomentum *field.Field // absolute angular momentum
	SpecificVolume  *field.Field

	// Temperature [K] stands in for SpecificVolume when that is nil, with
	// the Z axis taken as pressure [Pa].
	Temperature *field.Field

	// RefLatitude is the f-plane latitude [degrees] of the Cartesian system.
	RefLatitude float64

	// Laplace makes the Cartesian system ignore its base fields and use
	// unit A and C with no cross term.
	Laplace bool
}

// column returns f averaged along X, or f itself when it has one column.
func column(d *grid.Descriptor, f *field.Field) (*field.Field, error) {
	if f == nil {
		return nil, nil
	}
	if err := d.Check(f); err != nil {
		return nil, fmt.Errorf("coords: %w", err)
	}
	if f.X() == 1 {
		return f, nil
	}
	return f.Mean(field.X)
}

// coefficient allocates a coefficient field of nz levels and ny rows for
// every time of d.
func coefficient(d *grid.Descriptor, name string, nz, ny int) *field.Field {
	f, err := field.New(d.T.Len(), nz, ny, 1, d.Order)
	if err != nil {
		panic(err) // the descriptor was validated.
	}
	f.Name = name
	return f
}

// each calls fn for every (t, z, y) of f.
func each(f *field.Field, fn func(l, k, j int)) {
	for l := 0; l < f.T(); l++ {
		for k := 0; k < f.Z(); k++ {
			for j := 0; j < f.Y(); j++ {
				fn(l, k, j)
			}
		}
	}
}

// value returns element (l, k, j) of the single-column field f, or dflt
// when f is nil. ok is false for undefined elements.
func value(f *field.Field, dflt float64, l, k, j int) (v float64, ok bool) {
	if f == nil {
		return dflt, true
	}
	v = f.Get(l, k, j, 0)
	return v, !f.IsUndef(v)
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

// tiny is the magnitude below which a metric factor is singular.
const tiny = 1e-10

// put sets element (l, k, j) of f to v, or to undefined when ok is false
// or v is not finite.
func put(f *field.Field, v float64, ok bool, l, k, j int) {
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		v = f.Undef()
	}
	f.Set(v, l, k, j, 0)
}
