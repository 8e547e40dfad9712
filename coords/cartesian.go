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
	"github.com/miniufo/MyPackage-sub003/elliptic"
	"github.com/miniufo/MyPackage-sub003/grid"
	"github.com/miniufo/MyPackage-sub003/phys"
)

// cartesian uses the base fields directly on a plane with the Y and Z axes
// in metres. A defaults to 1 and C to f0² at the reference latitude.
func cartesian(d *grid.Descriptor, b *Base, c phys.Constants) (*elliptic.Coefficients, error) {
	nz, ny := d.Z.Len(), d.Y.Len()
	out := &elliptic.Coefficients{
		A:  coefficient(d, "A", nz, ny),
		C:  coefficient(d, "C", nz, ny),
		DY: d.Y.Spacing(),
		DZ: d.Z.Spacing(),
	}
	if b.Laplace {
		out.A.Fill(1)
		out.C.Fill(1)
		return out, nil
	}
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
	f0 := c.Coriolis(b.RefLatitude)
	if baro != nil {
		out.B = coefficient(d, "B", nz, ny)
	}
	each(out.A, func(l, k, j int) {
		v, ok := value(stab, 1, l, k, j)
		put(out.A, v, ok, l, k, j)
		v, ok = value(inertial, f0*f0, l, k, j)
		put(out.C, v, ok, l, k, j)
		if baro != nil {
			v, ok = value(baro, 0, l, k, j)
			put(out.B, v, ok, l, k, j)
		}
	})
	return out, nil
}

