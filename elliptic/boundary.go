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

package elliptic

import (
	"fmt"
	"math"

	"github.com/miniufo/MyPackage-sub003/field"
)

// Seed reports the boundary seeding of one time slice.
type Seed struct {
	Slice int

	// Discrepancy is the difference between the two integrations at the
	// far corner before it was redistributed.
	Discrepancy float64

	// Corner is the far-corner value after correction.
	Corner float64
}

type point struct{ k, j int }

// SeedBoundaries sets the edge values of every slice of s by integrating
// the boundary fluxes from the corner (k, j) = (0, 0), using ∂S/∂y =
// verticalFlux and ∂S/∂z = -radialFlux. One path runs along the bottom
// level and up the outer row, the other up the inner row and along the
// top level. The two meet at the far corner, where their difference is
// shared between the paths in proportion to the magnitude each
// accumulated and spread linearly along them, so both agree there.
//
// The corner value already in s is the constant of integration; an
// undefined corner is taken as zero. Seeding overwrites every edge value,
// so repeating it gives the same edges. Interior values are untouched.
func SeedBoundaries(s, radialFlux, verticalFlux *field.Field, dy, dz float64) ([]Seed, error) {
	for _, f := range []*field.Field{radialFlux, verticalFlux} {
		if f == nil || !f.SameShape(s) {
			return nil, fmt.Errorf("elliptic: flux %v does not match unknown %v: %w", f, s, field.ErrDimensionMismatch)
		}
	}
	if s.X() != 1 || s.Y() < 2 || s.Z() < 2 {
		return nil, fmt.Errorf("elliptic: cannot seed the edges of %v: %w", s, field.ErrDimensionMismatch)
	}
	ny, nz := s.Y(), s.Z()
	outer := make([]point, 0, ny+nz-1)
	for j := 0; j < ny; j++ {
		outer = append(outer, point{0, j})
	}
	for k := 1; k < nz; k++ {
		outer = append(outer, point{k, ny - 1})
	}
	inner := make([]point, 0, ny+nz-1)
	for k := 0; k < nz; k++ {
		inner = append(inner, point{k, 0})
	}
	for j := 1; j < ny; j++ {
		inner = append(inner, point{nz - 1, j})
	}

	seeds := make([]Seed, s.T())
	for l := range seeds {
		start := s.Get(l, 0, 0, 0)
		if s.IsUndef(start) {
			start = 0
		}
		v1, m1, err := integrate(l, outer, start, radialFlux, verticalFlux, dy, dz)
		if err != nil {
			return nil, err
		}
		v2, m2, err := integrate(l, inner, start, radialFlux, verticalFlux, dy, dz)
		if err != nil {
			return nil, err
		}
		n := float64(len(outer) - 1)
		d := v1[len(v1)-1] - v2[len(v2)-1]
		w1 := 0.5
		if m1+m2 > 0 {
			w1 = m1 / (m1 + m2)
		}
		w2 := 1 - w1
		for i, pt := range outer {
			s.Set(v1[i]-d*w1*float64(i)/n, l, pt.k, pt.j, 0)
		}
		for i, pt := range inner {
			s.Set(v2[i]+d*w2*float64(i)/n, l, pt.k, pt.j, 0)
		}
		seeds[l] = Seed{Slice: l, Discrepancy: d, Corner: s.Get(l, nz-1, ny-1, 0)}
	}
	return seeds, nil
}

// integrate accumulates S along path with the trapezoidal rule, returning
// the values at each point and the total magnitude of the increments.
func integrate(l int, path []point, start float64, radial, vertical *field.Field, dy, dz float64) ([]float64, float64, error) {
	vals := make([]float64, len(path))
	vals[0] = start
	var mag float64
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		var inc float64
		if a.k == b.k {
			fa, fb := vertical.Get(l, a.k, a.j, 0), vertical.Get(l, b.k, b.j, 0)
			if vertical.IsUndef(fa) || vertical.IsUndef(fb) {
				return nil, 0, fmt.Errorf("elliptic: vertical flux at slice %d level %d rows %d-%d: %w", l, a.k, a.j, b.j, ErrUndefinedFlux)
			}
			inc = (fa + fb) / 2 * dy
		} else {
			fa, fb := radial.Get(l, a.k, a.j, 0), radial.Get(l, b.k, b.j, 0)
			if radial.IsUndef(fa) || radial.IsUndef(fb) {
				return nil, 0, fmt.Errorf("elliptic: radial flux at slice %d row %d levels %d-%d: %w", l, a.j, a.k, b.k, ErrUndefinedFlux)
			}
			inc = -(fa + fb) / 2 * dz
		}
		mag += math.Abs(inc)
		vals[i] = vals[i-1] + inc
	}
	return vals, mag, nil
}
