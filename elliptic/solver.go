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
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// DefaultMaxIterations is the sweep cap used when Options.MaxIterations is 0.
const DefaultMaxIterations = 6000

// OptimalOmega returns the over-relaxation factor for a five-point
// discretization with the given numbers of interior rows and levels.
func OptimalOmega(rows, levels int) float64 {
	s1 := math.Sin(math.Pi / (2 * float64(rows+1)))
	s2 := math.Sin(math.Pi / (2 * float64(levels+1)))
	e := s1*s1 + s2*s2
	return 2 / (1 + math.Sqrt((2-e)*e))
}

// Options controls Solve.
type Options struct {
	// Tolerance is the relative error below which a slice has converged.
	Tolerance float64

	// MaxIterations caps the sweeps per slice. 0 means DefaultMaxIterations.
	MaxIterations int

	// Workers is the number of time slices solved concurrently. Values
	// below 2 solve slices one after another.
	Workers int

	// Omega overrides the relaxation factor when nonzero. It must lie in
	// (0, 2).
	Omega float64

	// History records the relative error of every sweep in Result.History.
	History bool
}

func (o *Options) validate() error {
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) {
		return fmt.Errorf("elliptic: tolerance %g: %w", o.Tolerance, ErrInvalidOption)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("elliptic: max iterations %d: %w", o.MaxIterations, ErrInvalidOption)
	}
	if o.Omega != 0 && !(o.Omega > 0 && o.Omega < 2) {
		return fmt.Errorf("elliptic: relaxation factor %g outside (0, 2): %w", o.Omega, ErrInvalidOption)
	}
	return nil
}

// Status is the solver state of one time slice.
type Status int

// Slice states, in the order they are passed through.
const (
	Initialized Status = iota
	Iterating
	Converged
	MaxIterationsReached
)

func (s Status) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max iterations reached"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result reports the outcome for one time slice.
type Result struct {
	Slice      int
	Status     Status
	Iterations int

	// RelativeError is the error of the last sweep with a nonzero reference,
	// or +Inf if there was none.
	RelativeError float64
	Omega         float64

	// DegenerateSweeps counts sweeps that began with an all-zero unknown.
	// When nonzero, Warning wraps ErrDegenerateReference.
	DegenerateSweeps int
	Warning          error

	// History holds the relative error after each sweep (NaN for
	// degenerate sweeps) when Options.History is set.
	History []float64

	// Rate is the asymptotic error reduction per sweep fitted to History,
	// or 0 when it cannot be estimated.
	Rate float64
}

// Solve relaxes s in place towards the solution of the elliptic equation
// with forcing f (nil for the homogeneous equation) and coefficients c.
// Edge values of s are held fixed as Dirichlet boundaries. Results are
// returned in slice order.
func Solve(s, f *field.Field, c *Coefficients, o Options) ([]Result, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	p, err := newProblem(s, f, c)
	if err != nil {
		return nil, err
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	omega := o.Omega
	if omega == 0 {
		omega = OptimalOmega(p.ny-2, p.nz-2)
	}

	results := make([]Result, s.T())
	for l := range results {
		results[l] = Result{Slice: l, Status: Initialized, Omega: omega, RelativeError: math.Inf(1)}
	}
	if o.Workers < 2 {
		for l := range results {
			p.relax(&results[l], o)
		}
		return results, nil
	}
	var g errgroup.Group
	g.SetLimit(o.Workers)
	for l := range results {
		r := &results[l]
		g.Go(func() error {
			p.relax(r, o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// relax sweeps slice r.Slice until it converges or reaches the cap.
func (p *problem) relax(r *Result, o Options) {
	l := r.Slice
	r.Status = Iterating
	for r.Iterations < o.MaxIterations {
		ref := p.sliceMax(l)
		maxR := p.sweep(l, r.Omega)
		r.Iterations++
		if ref == 0 {
			r.DegenerateSweeps++
			if o.History {
				r.History = append(r.History, math.NaN())
			}
			continue
		}
		r.RelativeError = maxR / ref
		if o.History {
			r.History = append(r.History, r.RelativeError)
		}
		if r.RelativeError < o.Tolerance {
			r.Status = Converged
			break
		}
	}
	if r.Status == Iterating {
		r.Status = MaxIterationsReached
	}
	if r.DegenerateSweeps > 0 {
		r.Warning = fmt.Errorf("elliptic: slice %d: %d sweeps: %w", l, r.DegenerateSweeps, ErrDegenerateReference)
	}
	r.Rate = convergenceRate(r.History)
}

// sliceMax returns the largest defined magnitude of the unknown in slice l.
func (p *problem) sliceMax(l int) float64 {
	var m float64
	for k := 0; k < p.nz; k++ {
		for j := 0; j < p.ny; j++ {
			v := p.s.Get(l, k, j, 0)
			if p.s.IsUndef(v) {
				continue
			}
			m = math.Max(m, math.Abs(v))
		}
	}
	return m
}

// sweep performs one Gauss-Seidel pass over the interior of slice l, levels
// outermost, and returns the largest normalized correction.
func (p *problem) sweep(l int, omega float64) float64 {
	var maxR float64
	for k := 1; k < p.nz-1; k++ {
		for j := 1; j < p.ny-1; j++ {
			lap, d, ok := p.operator(l, k, j)
			if !ok {
				continue
			}
			fv, ok := p.forcing(l, k, j)
			if !ok {
				continue
			}
			r := (lap - fv) / d
			p.s.Set(p.s.Get(l, k, j, 0)+omega*r, l, k, j, 0)
			maxR = math.Max(maxR, math.Abs(r))
		}
	}
	return maxR
}

// convergenceRate fits log(error) against sweep number over the second
// half of h and returns the per-sweep reduction factor.
func convergenceRate(h []float64) float64 {
	var x, y []float64
	for i := len(h) / 2; i < len(h); i++ {
		if v := h[i]; v > 0 && !math.IsInf(v, 0) {
			x = append(x, float64(i))
			y = append(y, math.Log(v))
		}
	}
	if len(x) < 2 {
		return 0
	}
	_, beta := stat.LinearRegression(x, y, nil, false)
	return math.Exp(beta)
}

func fieldMismatch(f, s *field.Field) error {
	return fmt.Errorf("elliptic: forcing %v does not match unknown %v: %w", f, s, field.ErrDimensionMismatch)
}
