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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miniufo/MyPackage-sub003/field"
)

// slab returns a one-column field with values fn(l, k, j).
func slab(t *testing.T, nt, nz, ny int, fn func(l, k, j int) float64) *field.Field {
	f, err := field.New(nt, nz, ny, 1, field.TimeMajor)
	if err != nil {
		t.Fatal(err)
	}
	for l := 0; l < nt; l++ {
		for k := 0; k < nz; k++ {
			for j := 0; j < ny; j++ {
				f.Set(fn(l, k, j), l, k, j, 0)
			}
		}
	}
	return f
}

func constant(v float64) func(l, k, j int) float64 {
	return func(int, int, int) float64 { return v }
}

// dirichlet returns an unknown holding exact(y, z) on its edges and zero
// inside, with y and z in [0, 1].
func dirichlet(t *testing.T, nt, nz, ny int, exact func(y, z float64) float64) (*field.Field, float64, float64) {
	dy, dz := 1/float64(ny-1), 1/float64(nz-1)
	s := slab(t, nt, nz, ny, func(l, k, j int) float64 {
		if k == 0 || k == nz-1 || j == 0 || j == ny-1 {
			return exact(float64(j)*dy, float64(k)*dz) + float64(l)
		}
		return 0
	})
	return s, dy, dz
}

func bilinear(y, z float64) float64 { return 0.2 + 0.3*y + 0.4*z + 0.1*y*z }

func laplace(t *testing.T, nt, nz, ny int, dy, dz float64) *Coefficients {
	return &Coefficients{
		A:  slab(t, nt, nz, ny, constant(1)),
		C:  slab(t, nt, nz, ny, constant(1)),
		DY: dy,
		DZ: dz,
	}
}

func maxError(s *field.Field, l int, exact func(y, z float64) float64) float64 {
	dy, dz := 1/float64(s.Y()-1), 1/float64(s.Z()-1)
	var m float64
	for k := 0; k < s.Z(); k++ {
		for j := 0; j < s.Y(); j++ {
			m = math.Max(m, math.Abs(s.Get(l, k, j, 0)-exact(float64(j)*dy, float64(k)*dz)-float64(l)))
		}
	}
	return m
}

func TestOptimalOmega(t *testing.T) {
	w := OptimalOmega(10, 8)
	if math.Abs(w-1.522665551901) > 1e-9 {
		t.Errorf("omega(10, 8) = %.12f", w)
	}
	if OptimalOmega(10, 8) != w {
		t.Error("omega is not deterministic")
	}
	for _, n := range [][2]int{{1, 1}, {3, 50}, {200, 200}} {
		if w := OptimalOmega(n[0], n[1]); w < 1 || w >= 2 {
			t.Errorf("omega%v = %g outside [1, 2)", n, w)
		}
	}
	if OptimalOmega(100, 100) <= OptimalOmega(10, 10) {
		t.Error("omega should grow with the grid")
	}
}

func TestLaplaceBilinear(t *testing.T) {
	const ny, nz = 12, 10
	s, dy, dz := dirichlet(t, 1, nz, ny, bilinear)
	res, err := Solve(s, nil, laplace(t, 1, nz, ny, dy, dz), Options{Tolerance: 1e-5})
	if err != nil {
		t.Fatal(err)
	}
	r := res[0]
	if r.Status != Converged || r.Iterations >= DefaultMaxIterations {
		t.Fatalf("result %+v", r)
	}
	if r.RelativeError >= 1e-5 {
		t.Errorf("relative error %g", r.RelativeError)
	}
	if r.Omega != OptimalOmega(ny-2, nz-2) {
		t.Errorf("omega %g", r.Omega)
	}
	if e := maxError(s, 0, bilinear); e > 1e-3 {
		t.Errorf("max pointwise error %g", e)
	}
}

func TestConvergenceHistory(t *testing.T) {
	const ny, nz = 40, 30
	s, dy, dz := dirichlet(t, 1, nz, ny, bilinear)
	res, err := Solve(s, nil, laplace(t, 1, nz, ny, dy, dz), Options{Tolerance: 1e-5, History: true})
	if err != nil {
		t.Fatal(err)
	}
	r := res[0]
	if r.Status != Converged {
		t.Fatalf("status %v", r.Status)
	}
	if len(r.History) != r.Iterations {
		t.Fatalf("%d history entries for %d iterations", len(r.History), r.Iterations)
	}
	for i := 5; i < len(r.History)-1; i++ {
		if r.History[i+1] > r.History[i] {
			t.Errorf("relative error rose from %g to %g at sweep %d", r.History[i], r.History[i+1], i+1)
		}
	}
	if r.Rate <= 0 || r.Rate >= 1 {
		t.Errorf("rate %g", r.Rate)
	}
	if e := maxError(s, 0, bilinear); e > 1e-3 {
		t.Errorf("max pointwise error %g", e)
	}
}

func TestCrossTerm(t *testing.T) {
	// L(yz) = 2B for constant A, B, C.
	const ny, nz, b = 14, 12, 0.3
	exact := func(y, z float64) float64 { return y * z }
	s, dy, dz := dirichlet(t, 1, nz, ny, exact)
	c := laplace(t, 1, nz, ny, dy, dz)
	c.B = slab(t, 1, nz, ny, constant(b))
	f := slab(t, 1, nz, ny, constant(2*b))
	res, err := Solve(s, f, c, Options{Tolerance: 1e-7})
	if err != nil {
		t.Fatal(err)
	}
	if res[0].Status != Converged {
		t.Fatalf("result %+v", res[0])
	}
	if e := maxError(s, 0, exact); e > 1e-3 {
		t.Errorf("max pointwise error %g", e)
	}
}

func TestResidual(t *testing.T) {
	const ny, nz = 8, 6
	dy, dz := 1/float64(ny-1), 1/float64(nz-1)
	s := slab(t, 1, nz, ny, func(_, k, j int) float64 { return bilinear(float64(j)*dy, float64(k)*dz) })
	r, err := Residual(s, nil, laplace(t, 1, nz, ny, dy, dz))
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			v := r.Get(0, k, j, 0)
			edge := k == 0 || k == nz-1 || j == 0 || j == ny-1
			switch {
			case edge && !r.IsUndef(v):
				t.Errorf("edge residual at (%d,%d) = %g", k, j, v)
			case !edge && math.Abs(v) > 1e-10:
				t.Errorf("residual at (%d,%d) = %g", k, j, v)
			}
		}
	}
}

func TestSkipUndefined(t *testing.T) {
	const ny, nz, k0, j0 = 10, 9, 4, 5
	s, dy, dz := dirichlet(t, 1, nz, ny, bilinear)
	s.Set(7, 0, k0, j0, 0)
	c := laplace(t, 1, nz, ny, dy, dz)
	c.A.Set(c.A.Undef(), 0, k0, j0, 0)
	before := s.Copy()
	if _, err := Solve(s, nil, c, Options{Tolerance: 1e-6}); err != nil {
		t.Fatal(err)
	}
	if s.Get(0, k0, j0, 0) != 7 {
		t.Errorf("point with undefined coefficient changed to %g", s.Get(0, k0, j0, 0))
	}
	for _, n := range [][2]int{{k0 - 1, j0}, {k0 + 1, j0}} {
		if s.Get(0, n[0], n[1], 0) == before.Get(0, n[0], n[1], 0) {
			t.Errorf("neighbour %v did not update", n)
		}
	}
}

func TestUndefinedForcingSkipped(t *testing.T) {
	const ny, nz = 8, 8
	s, dy, dz := dirichlet(t, 1, nz, ny, bilinear)
	f := slab(t, 1, nz, ny, constant(0))
	f.Set(math.NaN(), 0, 3, 3, 0)
	if _, err := Solve(s, f, laplace(t, 1, nz, ny, dy, dz), Options{Tolerance: 1e-6}); err != nil {
		t.Fatal(err)
	}
	if s.Get(0, 3, 3, 0) != 0 {
		t.Errorf("point with undefined forcing changed to %g", s.Get(0, 3, 3, 0))
	}
}

func TestDegenerateReference(t *testing.T) {
	const ny, nz = 6, 5
	s := slab(t, 1, nz, ny, constant(0))
	res, err := Solve(s, nil, laplace(t, 1, nz, ny, 1, 1), Options{Tolerance: 1e-3, MaxIterations: 5, History: true})
	if err != nil {
		t.Fatal(err)
	}
	r := res[0]
	if r.Status != MaxIterationsReached || r.Iterations != 5 || r.DegenerateSweeps != 5 {
		t.Errorf("result %+v", r)
	}
	if !errors.Is(r.Warning, ErrDegenerateReference) {
		t.Errorf("warning %v", r.Warning)
	}
	if !math.IsInf(r.RelativeError, 1) || !math.IsNaN(r.History[0]) {
		t.Errorf("relative error %g history %v", r.RelativeError, r.History)
	}

	// A zero start with forcing leaves the first sweep degenerate only.
	s = slab(t, 1, nz, ny, constant(0))
	f := slab(t, 1, nz, ny, constant(1))
	res, err = Solve(s, f, laplace(t, 1, nz, ny, 1, 1), Options{Tolerance: 1e-8})
	if err != nil {
		t.Fatal(err)
	}
	if res[0].Status != Converged || res[0].DegenerateSweeps != 1 {
		t.Errorf("forced result %+v", res[0])
	}
}

func TestSolveErrors(t *testing.T) {
	const ny, nz = 6, 5
	s := slab(t, 2, nz, ny, constant(1))
	good := func() *Coefficients { return laplace(t, 2, nz, ny, 1, 1) }
	minor, err := slab(t, 2, nz, ny, constant(1)).Reorder(field.TimeMinor)
	if err != nil {
		t.Fatal(err)
	}
	wide, err := field.New(2, nz, ny, 2, field.TimeMajor)
	if err != nil {
		t.Fatal(err)
	}

	for name, tc := range map[string]struct {
		s    *field.Field
		f    *field.Field
		c    func(c *Coefficients)
		o    Options
		want error
	}{
		"short A":          {c: func(c *Coefficients) { c.A = slab(t, 2, nz, ny-2, constant(1)) }, want: field.ErrDimensionMismatch},
		"A staggered in z": {c: func(c *Coefficients) { c.A = slab(t, 2, nz-1, ny, constant(1)) }, want: field.ErrDimensionMismatch},
		"C order":          {c: func(c *Coefficients) { c.C = minor }, want: field.ErrDimensionMismatch},
		"B staggered":      {c: func(c *Coefficients) { c.B = slab(t, 2, nz, ny-1, constant(1)) }, want: field.ErrDimensionMismatch},
		"coefficient T":    {c: func(c *Coefficients) { c.A = slab(t, 3, nz, ny, constant(1)) }, want: field.ErrDimensionMismatch},
		"forcing":          {f: slab(t, 1, nz, ny, constant(0)), want: field.ErrDimensionMismatch},
		"two columns":      {s: wide, want: field.ErrDimensionMismatch},
		"no interior":      {s: slab(t, 2, 2, ny, constant(1)), want: field.ErrInvalidDimension},
		"missing C":        {c: func(c *Coefficients) { c.C = nil }, want: ErrInvalidOption},
		"zero spacing":     {c: func(c *Coefficients) { c.DZ = 0 }, want: ErrInvalidOption},
		"tolerance":        {o: Options{Tolerance: -1}, want: ErrInvalidOption},
		"iterations":       {o: Options{MaxIterations: -2}, want: ErrInvalidOption},
		"omega":            {o: Options{Omega: 2.5}, want: ErrInvalidOption},
	} {
		us := s.Copy()
		if tc.s != nil {
			us = tc.s
		}
		c := good()
		if tc.c != nil {
			tc.c(c)
		}
		before := us.Copy()
		if _, err := Solve(us, tc.f, c, tc.o); !errors.Is(err, tc.want) {
			t.Errorf("%s: have %v, want %v", name, err, tc.want)
		}
		if diff := cmp.Diff(before.Data(), us.Data()); diff != "" {
			t.Errorf("%s: failed solve modified the unknown", name)
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	const nt, ny, nz = 5, 16, 12
	seq, dy, dz := dirichlet(t, nt, nz, ny, bilinear)
	par := seq.Copy()
	c := laplace(t, 1, nz, ny, dy, dz)
	c.B = slab(t, 1, nz, ny, func(_, k, j int) float64 { return 0.01 * float64(k-j) })

	rs, err := Solve(seq, nil, c, Options{Tolerance: 1e-6})
	if err != nil {
		t.Fatal(err)
	}
	rp, err := Solve(par, nil, c, Options{Tolerance: 1e-6, Workers: 3})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(rs, rp, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
		t.Errorf("results differ (-sequential +parallel):\n%s", diff)
	}
	if diff := cmp.Diff(seq.Data(), par.Data()); diff != "" {
		t.Errorf("solutions differ (-sequential +parallel):\n%s", diff)
	}
	for l, r := range rs {
		if r.Slice != l || r.Status != Converged {
			t.Errorf("slice %d: %+v", l, r)
		}
	}
}

func TestStaggeredMatchesCollocated(t *testing.T) {
	const ny, nz = 12, 10
	av := func(_, k, j int) float64 { return 1 + 0.1*float64(j) + 0.05*float64(k) }
	cv := func(_, k, j int) float64 { return 2 - 0.05*float64(k) + 0.02*float64(j) }

	col, dy, dz := dirichlet(t, 1, nz, ny, bilinear)
	stg := col.Copy()
	cc := &Coefficients{A: slab(t, 1, nz, ny, av), C: slab(t, 1, nz, ny, cv), DY: dy, DZ: dz}
	cs := &Coefficients{
		A:  slab(t, 1, nz, ny-1, func(l, k, j int) float64 { return (av(l, k, j) + av(l, k, j+1)) / 2 }),
		C:  slab(t, 1, nz-1, ny, func(l, k, j int) float64 { return (cv(l, k, j) + cv(l, k+1, j)) / 2 }),
		DY: dy,
		DZ: dz,
	}
	rc, err := Solve(col, nil, cc, Options{Tolerance: 1e-6})
	if err != nil {
		t.Fatal(err)
	}
	rs, err := Solve(stg, nil, cs, Options{Tolerance: 1e-6})
	if err != nil {
		t.Fatal(err)
	}
	if rc[0].Iterations != rs[0].Iterations {
		t.Errorf("iterations %d vs %d", rc[0].Iterations, rs[0].Iterations)
	}
	if diff := cmp.Diff(col.Data(), stg.Data()); diff != "" {
		t.Errorf("solutions differ (-collocated +staggered):\n%s", diff)
	}
}

func TestSharedCoefficientSlice(t *testing.T) {
	const nt, ny, nz = 3, 9, 7
	s, dy, dz := dirichlet(t, nt, nz, ny, bilinear)
	res, err := Solve(s, nil, laplace(t, 1, nz, ny, dy, dz), Options{Tolerance: 1e-6})
	if err != nil {
		t.Fatal(err)
	}
	for l := 0; l < nt; l++ {
		if res[l].Status != Converged {
			t.Errorf("slice %d: %v", l, res[l].Status)
		}
		if e := maxError(s, l, bilinear); e > 1e-3 {
			t.Errorf("slice %d: max pointwise error %g", l, e)
		}
	}
}

func TestStatusString(t *testing.T) {
	for s, want := range map[Status]string{
		Initialized:          "initialized",
		Iterating:            "iterating",
		Converged:            "converged",
		MaxIterationsReached: "max iterations reached",
	} {
		if s.String() != want {
			t.Errorf("%d: %q", s, s.String())
		}
	}
}
