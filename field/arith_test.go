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

package field

import (
	"errors"
	"math"
	"testing"
)

func TestUndefinedPropagation(t *testing.T) {
	for _, order := range []Order{TimeMajor, TimeMinor} {
		a := ramp(t, [4]int{2, 3, 4, 5}, order)
		b := ramp(t, [4]int{2, 3, 4, 5}, order)
		a.Set(a.Undef(), 0, 1, 2, 3)
		b.Set(math.NaN(), 1, 2, 3, 4)
		for _, op := range []Op{Add, Sub, Mul, Div, Pow} {
			r, err := a.Apply(op, b)
			if err != nil {
				t.Fatalf("%v %v: %v", order, op, err)
			}
			for _, idx := range [][4]int{{0, 1, 2, 3}, {1, 2, 3, 4}} {
				if v := r.Get(idx[0], idx[1], idx[2], idx[3]); !r.IsUndef(v) {
					t.Errorf("%v %v at %v = %g, want undefined", order, op, idx, v)
				}
			}
			if v := r.Get(0, 0, 0, 0); r.IsUndef(v) {
				t.Errorf("%v %v: defined element became undefined", order, op)
			}
		}
		for _, u := range []UnaryOp{Sqrt, Abs, Neg, Exp, Log, Square} {
			r := a.Map(u)
			if !r.IsUndef(r.Get(0, 1, 2, 3)) {
				t.Errorf("%v unary %d: undefined element became defined", order, u)
			}
		}
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	a := ramp(t, [4]int{1, 2, 2, 2}, TimeMajor)
	b := ramp(t, [4]int{1, 2, 2, 2}, TimeMajor)
	before := a.Get(0, 1, 1, 1)
	r, err := a.Mul(b)
	if err != nil {
		t.Fatal(err)
	}
	if a.Get(0, 1, 1, 1) != before {
		t.Error("Mul modified its receiver")
	}
	if have, want := r.Get(0, 1, 1, 1), before*before; have != want {
		t.Errorf("product = %g, want %g", have, want)
	}
	if err := a.MulInPlace(b); err != nil {
		t.Fatal(err)
	}
	if a.Get(0, 1, 1, 1) != before*before {
		t.Error("MulInPlace did not modify its receiver")
	}
}

func TestShapeInvariance(t *testing.T) {
	a := ramp(t, [4]int{2, 3, 4, 5}, TimeMajor)
	b := ramp(t, [4]int{2, 3, 4, 5}, TimeMajor)
	r, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	if r.Extents() != [4]int{2, 3, 4, 5} || r.Order() != TimeMajor {
		t.Errorf("sum has shape %v %v", r.Extents(), r.Order())
	}
	if have, want := r.Get(1, 2, 3, 4), 2*a.Get(1, 2, 3, 4); have != want {
		t.Errorf("sum = %g, want %g", have, want)
	}

	for _, c := range []*Field{
		ramp(t, [4]int{2, 3, 4, 4}, TimeMajor),
		ramp(t, [4]int{1, 3, 4, 5}, TimeMajor),
		ramp(t, [4]int{2, 3, 4, 5}, TimeMinor),
	} {
		if _, err := a.Add(c); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("%v + %v: have %v, want ErrDimensionMismatch", a, c, err)
		}
		before := a.Get(0, 0, 0, 0)
		if err := a.AddInPlace(c); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("in place %v + %v: have %v", a, c, err)
		}
		if a.Get(0, 0, 0, 0) != before {
			t.Error("failed operation modified its receiver")
		}
	}
}

func TestScalarOps(t *testing.T) {
	a := ramp(t, [4]int{1, 1, 2, 2}, TimeMajor)
	a.Set(a.Undef(), 0, 0, 1, 1)

	if _, err := a.DivScalar(0); !errors.Is(err, ErrDivideByZero) {
		t.Errorf("have %v, want ErrDivideByZero", err)
	}
	h, err := a.DivScalar(2)
	if err != nil {
		t.Fatal(err)
	}
	if h.Get(0, 0, 0, 1) != a.Get(0, 0, 0, 1)/2 {
		t.Errorf("half = %g", h.Get(0, 0, 0, 1))
	}
	s := a.AddScalar(1)
	if !s.IsUndef(s.Get(0, 0, 1, 1)) {
		t.Error("scalar op defined an undefined element")
	}
	if s.Get(0, 0, 0, 0) != a.Get(0, 0, 0, 0)+1 {
		t.Error("AddScalar")
	}
	all := a.AddScalar(math.NaN())
	for _, v := range all.Data() {
		if !all.IsUndef(v) {
			t.Fatal("an undefined scalar operand must undefine every element")
		}
	}
}

func TestNonFiniteResultsAreUndefined(t *testing.T) {
	a := ramp(t, [4]int{1, 1, 1, 2}, TimeMajor)
	b := Like(a, "zero")
	r, err := a.Div(b)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range r.Data() {
		if v != r.Undef() {
			t.Errorf("x/0 = %g, want sentinel", v)
		}
	}
	n := a.MulScalar(-1).Sqrt()
	if !n.IsUndef(n.Get(0, 0, 0, 0)) {
		t.Error("sqrt of a negative number should be undefined")
	}
	if v := a.Abs().Get(0, 0, 0, 1); v != 2 {
		t.Errorf("abs = %g", v)
	}
}
