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

// Package grid describes the coordinate axes that gridded fields are laid
// out on and the sources fields are read from.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotMonotonic is returned for axis samples that are not strictly
// increasing or strictly decreasing.
var ErrNotMonotonic = errors.New("grid: axis samples are not strictly monotonic")

// Axis holds the coordinate values along one field dimension.
type Axis struct {
	Name    string
	Units   string
	Samples []float64
}

// NewAxis returns an axis after checking that samples are strictly monotonic.
// A single sample is allowed.
func NewAxis(name, units string, samples []float64) (Axis, error) {
	a := Axis{Name: name, Units: units, Samples: samples}
	if err := a.validate(); err != nil {
		return Axis{}, err
	}
	return a, nil
}

// Linear returns an axis of n evenly spaced samples beginning at start.
func Linear(name, units string, start, step float64, n int) (Axis, error) {
	if n < 1 {
		return Axis{}, fmt.Errorf("grid: axis %s has %d samples", name, n)
	}
	s := make([]float64, n)
	for i := range s {
		s[i] = start + float64(i)*step
	}
	return NewAxis(name, units, s)
}

func (a Axis) validate() error {
	if len(a.Samples) == 0 {
		return fmt.Errorf("grid: axis %s has no samples", a.Name)
	}
	for _, v := range a.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("grid: axis %s has non-finite sample %g", a.Name, v)
		}
	}
	if len(a.Samples) < 2 {
		return nil
	}
	up := a.Samples[1] > a.Samples[0]
	for i := 1; i < len(a.Samples); i++ {
		d := a.Samples[i] - a.Samples[i-1]
		if d == 0 || (d > 0) != up {
			return fmt.Errorf("%w: %s at index %d", ErrNotMonotonic, a.Name, i)
		}
	}
	return nil
}

// Len returns the number of samples.
func (a Axis) Len() int { return len(a.Samples) }

// Ascending reports whether samples increase with index.
func (a Axis) Ascending() bool {
	return len(a.Samples) < 2 || a.Samples[1] > a.Samples[0]
}

// Spacing returns the signed mean step between samples, or 0 for a
// single-sample axis.
func (a Axis) Spacing() float64 {
	n := len(a.Samples)
	if n < 2 {
		return 0
	}
	return (a.Samples[n-1] - a.Samples[0]) / float64(n-1)
}

// Uniform reports whether every step is within relTol of the mean step.
func (a Axis) Uniform(relTol float64) bool {
	d := a.Spacing()
	for i := 1; i < len(a.Samples); i++ {
		if math.Abs(a.Samples[i]-a.Samples[i-1]-d) > relTol*math.Abs(d) {
			return false
		}
	}
	return true
}

// Mid returns the mean of samples i and i+1.
func (a Axis) Mid(i int) float64 {
	return (a.Samples[i] + a.Samples[i+1]) / 2
}
