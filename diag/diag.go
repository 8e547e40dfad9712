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

// Package diag derives diagnostic quantities from solved fields.
package diag

import (
	"fmt"

	"github.com/miniufo/MyPackage-sub003/field"
)

// Fluxes returns the radial (-∂ψ/∂z) and vertical (∂ψ/∂y) flux components
// of streamfunction psi, with centered differences inside and one-sided
// differences on the edges. Values next to an undefined psi are undefined.
func Fluxes(psi *field.Field, dy, dz float64) (radial, vertical *field.Field, err error) {
	if psi.Y() < 2 || psi.Z() < 2 {
		return nil, nil, fmt.Errorf("diag: %v needs at least 2 rows and 2 levels: %w", psi, field.ErrInvalidDimension)
	}
	if dy == 0 || dz == 0 {
		return nil, nil, fmt.Errorf("diag: zero grid spacing: %w", field.ErrDivideByZero)
	}
	radial = field.Like(psi, "radial")
	vertical = field.Like(psi, "vertical")
	derivative(psi, vertical, field.Y, 1/dy)
	derivative(psi, radial, field.Z, -1/dz)
	return radial, vertical, nil
}

// derivative sets o to scale times the derivative of f along a, both in
// index units.
func derivative(f, o *field.Field, a field.Axis, scale float64) {
	e := f.Extents()
	n := e[a]
	for l := 0; l < e[field.T]; l++ {
		for k := 0; k < e[field.Z]; k++ {
			for j := 0; j < e[field.Y]; j++ {
				for i := 0; i < e[field.X]; i++ {
					idx := [4]int{l, k, j, i}
					p := idx[a]
					lo, hi := p-1, p+1
					if p == 0 {
						lo = 0
					}
					if p == n-1 {
						hi = n - 1
					}
					idx[a] = lo
					v0 := f.Get(idx[0], idx[1], idx[2], idx[3])
					idx[a] = hi
					v1 := f.Get(idx[0], idx[1], idx[2], idx[3])
					if f.IsUndef(v0) || f.IsUndef(v1) {
						o.Set(o.Undef(), l, k, j, i)
						continue
					}
					o.Set(scale*(v1-v0)/float64(hi-lo), l, k, j, i)
				}
			}
		}
	}
}

// Decompose splits f into its mean along axis a and the deviation from
// that mean. f is not modified.
func Decompose(f *field.Field, a field.Axis) (mean, eddy *field.Field, err error) {
	eddy = f.Copy()
	mean, err = eddy.ReduceAlong(a, 0, f.Extents()[a]-1, true)
	if err != nil {
		return nil, nil, fmt.Errorf("diag: decomposing %s: %w", f.Name, err)
	}
	eddy.Name = f.Name + "_eddy"
	mean.Name = f.Name + "_mean"
	return mean, eddy, nil
}
