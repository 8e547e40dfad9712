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
	"math"

	"github.com/miniufo/MyPackage-sub003/elliptic"
	"github.com/miniufo/MyPackage-sub003/grid"
	"github.com/miniufo/MyPackage-sub003/phys"
)

// spherical is the latitude-height form of the Kuo-Eliassen balance, with
// the Y axis holding latitude in degrees. A is given at row interfaces:
//
//	A(j+½) = Stability(j+½) / cos φ(j+½)
//	C(j)   = Inertial(j) / cos φ(j)
//	B(j)   = Baroclinicity(j) / cos φ(j)
//
// Stability defaults to 1 and Inertial to (2Ω sin φ)². Rows at a pole are
// undefined.
func spherical(d *grid.Descriptor, b *Base, c phys.Constants) (*elliptic.Coefficients, error) {
	nz, ny := d.Z.Len(), d.Y.Len()
	stab, err := column(d, b.Stability)
	if err != nil {
		return nil, err
	}
	inertial, err := column(d, b.Inertial)
	if err != nil {
		return nil, err
	}
	baro, err := column(d, b.Baroclinicity)
	if err != nil {
		return nil, err
	}
	out := &elliptic.Coefficients{
		A:  coefficient(d, "A", nz, ny-1),
		C:  coefficient(d, "C", nz, ny),
		DY: c.ArcLength(d.Y.Spacing()),
		DZ: d.Z.Spacing(),
	}
	if baro != nil {
		out.B = coefficient(d, "B", nz, ny)
	}

	each(out.A, func(l, k, j int) {
		cos := math.Cos(rad(d.Y.Mid(j)))
		s0, ok0 := value(stab, 1, l, k, j)
		s1, ok1 := value(stab, 1, l, k, j+1)
		put(out.A, (s0+s1)/2/cos, ok0 && ok1 && cos > tiny, l, k, j)
	})
	each(out.C, func(l, k, j int) {
		lat := d.Y.Samples[j]
		cos := math.Cos(rad(lat))
		f := c.Coriolis(lat)
		v, ok := value(inertial, f*f, l, k, j)
		put(out.C, v/cos, ok && cos > tiny, l, k, j)
		if baro != nil {
			v, ok = value(baro, 0, l, k, j)
			put(out.B, v/cos, ok && cos > tiny, l, k, j)
		}
	})
	return out, nil
}
