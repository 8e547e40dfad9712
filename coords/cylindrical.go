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

package coords

import (
	"fmt"
	"math"

	"github.com/miniufo/MyPackage-sub003/elliptic"
	"github.com/miniufo/MyPackage-sub003/field"
	"github.com/miniufo/MyPackage-sub003/grid"
	"github.com/miniufo/MyPackage-sub003/phys"
)

// cylindrical is the radius-height form of the Eliassen balance for a
// vortex, with the Y axis holding great-circle distance θ from the centre
// in degrees and radius r = a sin θ. A is given at row interfaces:
//
//	A(j+½) = Stability(j+½) / sin θ(j+½)
//	C(j)   = ∂(M²)/∂r / r³
//	B(j)   = -∂α/∂r / sin θ
//
// where M is the absolute angular momentum and α the specific volume.
// Radial derivatives are centered, one-sided at the first and last rows,
// and taken over the row spacing. C is undefined on a row at the centre,
// where B takes its axis limit -a ∂²α/∂r² for a symmetric α. Without a
// specific volume field α is Rd T / p from the temperature, and B is nil
// when neither is given.
func cylindrical(d *grid.Descriptor, b *Base, c phys.Constants) (*elliptic.Coefficients, error) {
	if b.Stability == nil || b.AngularMomentum == nil {
		return nil, fmt.Errorf("%w: cylindrical coefficients need stability and angular momentum", ErrMissingField)
	}
	nz, ny := d.Z.Len(), d.Y.Len()
	if ny < 2 {
		return nil, fmt.Errorf("coords: cylindrical coefficients need at least 2 rows: %w", field.ErrInvalidDimension)
	}
	stab, err := column(d, b.Stability)
	if err != nil {
		return nil, err
	}
	m, err := column(d, b.AngularMomentum)
	if err != nil {
		return nil, err
	}
	alpha, err := column(d, b.SpecificVolume)
	if err != nil {
		return nil, err
	}
	temp, err := column(d, b.Temperature)
	if err != nil {
		return nil, err
	}
	dy := c.ArcLength(d.Y.Spacing())
	out := &elliptic.Coefficients{
		A:  coefficient(d, "A", nz, ny-1),
		C:  coefficient(d, "C", nz, ny),
		DY: dy,
		DZ: d.Z.Spacing(),
	}
	if alpha != nil || temp != nil {
		out.B = coefficient(d, "B", nz, ny)
	}
	sq := func(l, k, j int) (float64, bool) {
		v, ok := value(m, 0, l, k, j)
		return v * v, ok
	}
	av := func(l, k, j int) (float64, bool) {
		if alpha == nil {
			v, ok := value(temp, 0, l, k, j)
			return c.SpecificVolume(v, d.Z.Samples[k]), ok
		}
		return value(alpha, 0, l, k, j)
	}

	each(out.A, func(l, k, j int) {
		sin := math.Sin(rad(d.Y.Mid(j)))
		s0, ok0 := value(stab, 1, l, k, j)
		s1, ok1 := value(stab, 1, l, k, j+1)
		put(out.A, (s0+s1)/2/sin, ok0 && ok1 && math.Abs(sin) > tiny, l, k, j)
	})
	each(out.C, func(l, k, j int) {
		sin := math.Sin(rad(d.Y.Samples[j]))
		r := c.EarthRadius * sin
		centre := math.Abs(sin) < tiny

		dm, ok := radial(sq, l, k, j, ny, dy)
		put(out.C, dm/(r*r*r), ok && !centre, l, k, j)

		if out.B == nil {
			return
		}
		if centre {
			n := j + 1
			if j == ny-1 {
				n = j - 1
			}
			a0, ok0 := av(l, k, j)
			a1, ok1 := av(l, k, n)
			put(out.B, -c.EarthRadius*2*(a1-a0)/(dy*dy), ok0 && ok1, l, k, j)
			return
		}
		da, ok := radial(av, l, k, j, ny, dy)
		put(out.B, -da/sin, ok, l, k, j)
	})
	return out, nil
}

// radial differentiates fn along rows at (l, k, j): centered inside,
// forward at the first row and backward at the last.
func radial(fn func(l, k, j int) (float64, bool), l, k, j, ny int, dy float64) (float64, bool) {
	lo, hi := j-1, j+1
	switch j {
	case 0:
		lo = 0
	case ny - 1:
		hi = ny - 1
	}
	a, ok1 := fn(l, k, lo)
	b, ok2 := fn(l, k, hi)
	return (b - a) / (float64(hi-lo) * dy), ok1 && ok2
}
