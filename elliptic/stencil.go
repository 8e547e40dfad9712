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
	"math"

	"github.com/miniufo/MyPackage-sub003/field"
)

// problem binds an unknown, its forcing and coefficients for evaluation of
// the discrete operator.
type problem struct {
	s, f           *field.Field
	a, b, c        *field.Field
	layout         layout
	ny, nz         int
	idy2, idz2, ix float64 // 1/dy², 1/dz², 1/(4 dy dz)
}

func newProblem(s, f *field.Field, c *Coefficients) (*problem, error) {
	l, err := c.check(s)
	if err != nil {
		return nil, err
	}
	if f != nil && !f.SameShape(s) {
		return nil, fieldMismatch(f, s)
	}
	return &problem{
		s: s, f: f,
		a: c.A, b: c.B, c: c.C,
		layout: l,
		ny:     s.Y(),
		nz:     s.Z(),
		idy2:   1 / (c.DY * c.DY),
		idz2:   1 / (c.DZ * c.DZ),
		ix:     1 / (4 * c.DY * c.DZ),
	}, nil
}

// aEast returns A at row interface j+½ of level k.
func (p *problem) aEast(l, k, j int) (float64, bool) {
	t := slice(p.a, l)
	if p.layout.aStag {
		v := p.a.Get(t, k, j, 0)
		return v, !p.a.IsUndef(v)
	}
	v0, v1 := p.a.Get(t, k, j, 0), p.a.Get(t, k, j+1, 0)
	if p.a.IsUndef(v0) || p.a.IsUndef(v1) {
		return 0, false
	}
	return (v0 + v1) / 2, true
}

// cNorth returns C at level interface k+½ of row j.
func (p *problem) cNorth(l, k, j int) (float64, bool) {
	t := slice(p.c, l)
	if p.layout.cStag {
		v := p.c.Get(t, k, j, 0)
		return v, !p.c.IsUndef(v)
	}
	v0, v1 := p.c.Get(t, k, j, 0), p.c.Get(t, k+1, j, 0)
	if p.c.IsUndef(v0) || p.c.IsUndef(v1) {
		return 0, false
	}
	return (v0 + v1) / 2, true
}

// operator evaluates the discrete operator L(S) and the diagonal
// normalization D at interior point (k, j) of slice l. ok is false when a
// required value is undefined or D is not positive.
func (p *problem) operator(l, k, j int) (lap, d float64, ok bool) {
	ae, ok1 := p.aEast(l, k, j)
	aw, ok2 := p.aEast(l, k, j-1)
	cn, ok3 := p.cNorth(l, k, j)
	cs, ok4 := p.cNorth(l, k-1, j)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, 0, false
	}

	s := p.s
	var n [3][3]float64 // n[dk+1][dj+1]
	for dk := -1; dk <= 1; dk++ {
		for dj := -1; dj <= 1; dj++ {
			if p.b == nil && dk != 0 && dj != 0 {
				continue
			}
			v := s.Get(l, k+dk, j+dj, 0)
			if s.IsUndef(v) {
				return 0, 0, false
			}
			n[dk+1][dj+1] = v
		}
	}
	c := n[1][1]
	lap = (ae*(n[1][2]-c)-aw*(c-n[1][0]))*p.idy2 +
		(cn*(n[2][1]-c)-cs*(c-n[0][1]))*p.idz2

	if p.b != nil {
		t := slice(p.b, l)
		be, bw := p.b.Get(t, k, j+1, 0), p.b.Get(t, k, j-1, 0)
		bn, bs := p.b.Get(t, k+1, j, 0), p.b.Get(t, k-1, j, 0)
		for _, v := range []float64{be, bw, bn, bs} {
			if p.b.IsUndef(v) {
				return 0, 0, false
			}
		}
		// ∂y(B ∂S/∂z) and ∂z(B ∂S/∂y), centered.
		lap += (be*(n[2][2]-n[0][2]) - bw*(n[2][0]-n[0][0])) * p.ix
		lap += (bn*(n[2][2]-n[2][0]) - bs*(n[0][2]-n[0][0])) * p.ix
	}

	d = (ae+aw)*p.idy2 + (cn+cs)*p.idz2
	if !(d > 0) || math.IsInf(d, 0) {
		return 0, 0, false
	}
	return lap, d, true
}

// forcing returns F at (l, k, j), or 0 without forcing.
func (p *problem) forcing(l, k, j int) (float64, bool) {
	if p.f == nil {
		return 0, true
	}
	v := p.f.Get(l, k, j, 0)
	return v, !p.f.IsUndef(v)
}

// Residual returns L(S) - F at every interior point. Edges, and points
// where the operator cannot be evaluated, are undefined. f may be nil.
func Residual(s, f *field.Field, c *Coefficients) (*field.Field, error) {
	p, err := newProblem(s, f, c)
	if err != nil {
		return nil, err
	}
	r := field.Like(s, "residual")
	r.Fill(r.Undef())
	for l := 0; l < s.T(); l++ {
		for k := 1; k < p.nz-1; k++ {
			for j := 1; j < p.ny-1; j++ {
				lap, _, ok := p.operator(l, k, j)
				fv, fok := p.forcing(l, k, j)
				if !ok || !fok {
					continue
				}
				r.Set(lap-fv, l, k, j, 0)
			}
		}
	}
	return r, nil
}
