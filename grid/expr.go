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

package grid

import (
	"fmt"
	"math"
	"sort"

	"github.com/Knetic/govaluate"
	"github.com/miniufo/MyPackage-sub003/field"
)

// ExprSource is a Source whose variables are analytic expressions of the
// grid coordinates. Expressions may refer to the axis values t, z, y and x,
// the 0-based indices it, iz, iy and ix, and undef, the descriptor's
// undefined value. The functions sin, cos, tan, exp, log, sqrt, abs, rad
// (degrees to radians) and pow are available in addition to any supplied
// by the caller.
type ExprSource struct {
	desc  *Descriptor
	exprs map[string]*govaluate.EvaluableExpression
	units map[string]string
}

var exprParams = map[string]bool{
	"t": true, "z": true, "y": true, "x": true,
	"it": true, "iz": true, "iy": true, "ix": true,
	"undef": true,
}

func unary(name string, fn func(float64) float64) govaluate.ExpressionFunction {
	return func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("grid: got %d arguments for function '%s', but needs 1", len(arg), name)
		}
		v, ok := arg[0].(float64)
		if !ok {
			return nil, fmt.Errorf("grid: argument of '%s' is %T, not a number", name, arg[0])
		}
		return fn(v), nil
	}
}

func defaultFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"sin":  unary("sin", math.Sin),
		"cos":  unary("cos", math.Cos),
		"tan":  unary("tan", math.Tan),
		"exp":  unary("exp", math.Exp),
		"log":  unary("log", math.Log),
		"sqrt": unary("sqrt", math.Sqrt),
		"abs":  unary("abs", math.Abs),
		"rad":  unary("rad", func(v float64) float64 { return v * math.Pi / 180 }),
		"pow": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 2 {
				return nil, fmt.Errorf("grid: got %d arguments for function 'pow', but needs 2", len(arg))
			}
			a, ok1 := arg[0].(float64)
			b, ok2 := arg[1].(float64)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("grid: arguments of 'pow' must be numbers")
			}
			return math.Pow(a, b), nil
		},
	}
}

// NewExprSource compiles one expression per variable. funcs may be nil.
func NewExprSource(d *Descriptor, vars map[string]string, funcs map[string]govaluate.ExpressionFunction) (*ExprSource, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	fns := defaultFunctions()
	for k, v := range funcs {
		fns[k] = v
	}
	s := &ExprSource{
		desc:  d,
		exprs: make(map[string]*govaluate.EvaluableExpression, len(vars)),
		units: make(map[string]string),
	}
	for name, src := range vars {
		e, err := govaluate.NewEvaluableExpressionWithFunctions(src, fns)
		if err != nil {
			return nil, fmt.Errorf("grid: variable %s: %v", name, err)
		}
		for _, v := range e.Vars() {
			if !exprParams[v] {
				return nil, fmt.Errorf("grid: variable %s refers to unknown parameter %q", name, v)
			}
		}
		s.exprs[name] = e
	}
	return s, nil
}

// SetUnit records the units reported for variable name.
func (s *ExprSource) SetUnit(name, units string) { s.units[name] = units }

// Descriptor implements Source.
func (s *ExprSource) Descriptor() *Descriptor { return s.desc }

// Variables implements Source.
func (s *ExprSource) Variables() []string {
	o := make([]string, 0, len(s.exprs))
	for k := range s.exprs {
		o = append(o, k)
	}
	sort.Strings(o)
	return o
}

// Field evaluates the named expression at every grid point.
func (s *ExprSource) Field(name string) (*field.Field, error) {
	e, ok := s.exprs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoVariable, name)
	}
	f, err := s.desc.NewField(name)
	if err != nil {
		return nil, err
	}
	f.Unit = s.units[name]
	f.Comment = e.String()
	d := s.desc
	p := map[string]interface{}{"undef": f.Undef()}
	for l, tv := range d.T.Samples {
		p["t"], p["it"] = tv, float64(l)
		for k, zv := range d.Z.Samples {
			p["z"], p["iz"] = zv, float64(k)
			for j, yv := range d.Y.Samples {
				p["y"], p["iy"] = yv, float64(j)
				for i, xv := range d.X.Samples {
					p["x"], p["ix"] = xv, float64(i)
					r, err := e.Evaluate(p)
					if err != nil {
						return nil, fmt.Errorf("grid: evaluating %s at (%d,%d,%d,%d): %v", name, l, k, j, i, err)
					}
					v, ok := r.(float64)
					if !ok {
						return nil, fmt.Errorf("grid: %s evaluates to %T, not a number", name, r)
					}
					f.Set(v, l, k, j, i)
				}
			}
		}
	}
	return f, nil
}
