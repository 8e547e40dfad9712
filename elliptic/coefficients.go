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

// Package elliptic solves the generalized two-dimensional elliptic equation
//
//	∂y(A ∂S/∂y) + ∂y(B ∂S/∂z) + ∂z(B ∂S/∂y) + ∂z(C ∂S/∂z) = F
//
// by successive over-relaxation, one time slice at a time. Y indexes rows
// and Z indexes levels; fields must have a single column (X = 1).
package elliptic

import (
	"fmt"
	"math"

	"github.com/miniufo/MyPackage-sub003/field"
)

// Coefficients holds the operator coefficients and grid spacings.
//
// A may be given at rows (extent Y) or at row interfaces j+½ (extent Y-1),
// and C at levels (extent Z) or level interfaces k+½ (extent Z-1).
// Collocated values are averaged onto interfaces. B is always collocated
// and may be nil, in which case the cross terms vanish. Each coefficient
// has the unknown's T extent, or 1 to share one slice across all times.
type Coefficients struct {
	A, B, C *field.Field

	// DY and DZ are the signed spacings between rows and between levels.
	DY, DZ float64
}

// layout records how the coefficients line up with the unknown.
type layout struct {
	aStag, cStag bool
}

func (c *Coefficients) check(s *field.Field) (layout, error) {
	var l layout
	if c == nil || c.A == nil || c.C == nil {
		return l, fmt.Errorf("elliptic: coefficients A and C are required: %w", ErrInvalidOption)
	}
	for _, v := range []float64{c.DY, c.DZ} {
		if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return l, fmt.Errorf("elliptic: grid spacing (%g, %g) must be nonzero and finite: %w", c.DY, c.DZ, ErrInvalidOption)
		}
	}
	e := s.Extents()
	if e[field.X] != 1 {
		return l, fmt.Errorf("elliptic: unknown %v must have one column: %w", s, field.ErrDimensionMismatch)
	}
	if e[field.Y] < 3 || e[field.Z] < 3 {
		return l, fmt.Errorf("elliptic: unknown %v has no interior points: %w", s, field.ErrInvalidDimension)
	}
	var err error
	if l.aStag, err = compatible(s, c.A, field.Y); err != nil {
		return l, err
	}
	if l.cStag, err = compatible(s, c.C, field.Z); err != nil {
		return l, err
	}
	if c.B != nil {
		if _, err = compatible(s, c.B, -1); err != nil {
			return l, err
		}
	}
	return l, nil
}

// compatible checks that coefficient f lines up with the unknown s. Along
// axis stag, f may be one shorter than s, and the return value reports
// whether it is.
func compatible(s, f *field.Field, stag field.Axis) (bool, error) {
	se, fe := s.Extents(), f.Extents()
	mismatch := func() error {
		return fmt.Errorf("elliptic: coefficient %v incompatible with unknown %v: %w", f, s, field.ErrDimensionMismatch)
	}
	if f.Order() != s.Order() || fe[field.X] != 1 {
		return false, mismatch()
	}
	if fe[field.T] != se[field.T] && fe[field.T] != 1 {
		return false, mismatch()
	}
	staggered := false
	for _, a := range []field.Axis{field.Z, field.Y} {
		switch {
		case fe[a] == se[a]:
		case a == stag && fe[a] == se[a]-1:
			staggered = true
		default:
			return false, mismatch()
		}
	}
	return staggered, nil
}

// slice returns the coefficient's time index for unknown slice l.
func slice(f *field.Field, l int) int {
	if f.T() == 1 {
		return 0
	}
	return l
}
