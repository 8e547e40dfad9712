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
	"fmt"
	"math"
)

// Op is a pointwise binary operator.
type Op int

// Binary operators.
const (
	Add Op = iota
	Sub
	Mul
	Div
	Pow
)

func (op Op) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "subtract"
	case Mul:
		return "multiply"
	case Div:
		return "divide"
	case Pow:
		return "power"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

func (op Op) eval(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		return a / b
	case Pow:
		return math.Pow(a, b)
	default:
		panic(fmt.Errorf("field: invalid operator %d", int(op)))
	}
}

// UnaryOp is a pointwise function of one field.
type UnaryOp int

// Unary operators.
const (
	Sqrt UnaryOp = iota
	Abs
	Neg
	Exp
	Log
	Square
)

func (u UnaryOp) eval(a float64) float64 {
	switch u {
	case Sqrt:
		return math.Sqrt(a)
	case Abs:
		return math.Abs(a)
	case Neg:
		return -a
	case Exp:
		return math.Exp(a)
	case Log:
		return math.Log(a)
	case Square:
		return a * a
	default:
		panic(fmt.Errorf("field: invalid unary operator %d", int(u)))
	}
}

// finite returns v, or the sentinel when v is NaN or infinite.
func (f *Field) finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return f.undef
	}
	return v
}

// ApplyInPlace sets f = f op o elementwise. An element that is undefined in
// either operand is undefined in the result.
func (f *Field) ApplyInPlace(op Op, o *Field) error {
	if err := f.checkShape(o); err != nil {
		return fmt.Errorf("field: %v: %w", op, err)
	}
	a, b := f.data.Elements, o.data.Elements
	for i, av := range a {
		bv := b[i]
		if f.IsUndef(av) || o.IsUndef(bv) {
			a[i] = f.undef
			continue
		}
		a[i] = f.finite(op.eval(av, bv))
	}
	return nil
}

// Apply returns f op o as a new field; f and o are unchanged.
func (f *Field) Apply(op Op, o *Field) (*Field, error) {
	if err := f.checkShape(o); err != nil {
		return nil, fmt.Errorf("field: %v: %w", op, err)
	}
	r := f.Copy()
	if err := r.ApplyInPlace(op, o); err != nil {
		return nil, err
	}
	return r, nil
}

// ApplyScalarInPlace sets f = f op v elementwise.
func (f *Field) ApplyScalarInPlace(op Op, v float64) error {
	if op == Div && v == 0 {
		return fmt.Errorf("field: %s: %w", f.Name, ErrDivideByZero)
	}
	a := f.data.Elements
	if f.IsUndef(v) {
		f.Fill(f.undef)
		return nil
	}
	for i, av := range a {
		if f.IsUndef(av) {
			continue
		}
		a[i] = f.finite(op.eval(av, v))
	}
	return nil
}

// ApplyScalar returns f op v as a new field.
func (f *Field) ApplyScalar(op Op, v float64) (*Field, error) {
	r := f.Copy()
	if err := r.ApplyScalarInPlace(op, v); err != nil {
		return nil, err
	}
	return r, nil
}

// MapInPlace applies u to every defined element of f.
func (f *Field) MapInPlace(u UnaryOp) {
	a := f.data.Elements
	for i, av := range a {
		if f.IsUndef(av) {
			a[i] = f.undef
			continue
		}
		a[i] = f.finite(u.eval(av))
	}
}

// Map returns u applied to every defined element of f as a new field.
func (f *Field) Map(u UnaryOp) *Field {
	r := f.Copy()
	r.MapInPlace(u)
	return r
}

// AddInPlace sets f = f + o.
func (f *Field) AddInPlace(o *Field) error { return f.ApplyInPlace(Add, o) }

// Add returns f + o.
func (f *Field) Add(o *Field) (*Field, error) { return f.Apply(Add, o) }

// SubInPlace sets f = f - o.
func (f *Field) SubInPlace(o *Field) error { return f.ApplyInPlace(Sub, o) }

// Sub returns f - o.
func (f *Field) Sub(o *Field) (*Field, error) { return f.Apply(Sub, o) }

// MulInPlace sets f = f * o.
func (f *Field) MulInPlace(o *Field) error { return f.ApplyInPlace(Mul, o) }

// Mul returns f * o.
func (f *Field) Mul(o *Field) (*Field, error) { return f.Apply(Mul, o) }

// DivInPlace sets f = f / o. Elements where o is zero become undefined.
func (f *Field) DivInPlace(o *Field) error { return f.ApplyInPlace(Div, o) }

// Div returns f / o.
func (f *Field) Div(o *Field) (*Field, error) { return f.Apply(Div, o) }

// PowInPlace sets f = f ^ o.
func (f *Field) PowInPlace(o *Field) error { return f.ApplyInPlace(Pow, o) }

// Pow returns f ^ o.
func (f *Field) Pow(o *Field) (*Field, error) { return f.Apply(Pow, o) }

// AddScalarInPlace sets f = f + v.
func (f *Field) AddScalarInPlace(v float64) { f.ApplyScalarInPlace(Add, v) }

// AddScalar returns f + v.
func (f *Field) AddScalar(v float64) *Field {
	r, _ := f.ApplyScalar(Add, v)
	return r
}

// MulScalarInPlace sets f = f * v.
func (f *Field) MulScalarInPlace(v float64) { f.ApplyScalarInPlace(Mul, v) }

// MulScalar returns f * v.
func (f *Field) MulScalar(v float64) *Field {
	r, _ := f.ApplyScalar(Mul, v)
	return r
}

// DivScalarInPlace sets f = f / v.
func (f *Field) DivScalarInPlace(v float64) error { return f.ApplyScalarInPlace(Div, v) }

// DivScalar returns f / v.
func (f *Field) DivScalar(v float64) (*Field, error) { return f.ApplyScalar(Div, v) }

// SqrtInPlace sets f = sqrt(f); negative elements become undefined.
func (f *Field) SqrtInPlace() { f.MapInPlace(Sqrt) }

// Sqrt returns sqrt(f).
func (f *Field) Sqrt() *Field { return f.Map(Sqrt) }

// AbsInPlace sets f = |f|.
func (f *Field) AbsInPlace() { f.MapInPlace(Abs) }

// Abs returns |f|.
func (f *Field) Abs() *Field { return f.Map(Abs) }
