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

// Package phys holds the planetary constants used to build elliptic
// coefficients.
package phys

import (
	"fmt"
	"math"

	"github.com/ctessum/unit"
)

// Constants are planetary parameters in SI units.
type Constants struct {
	Gravity     float64 // [m s-2]
	Omega       float64 // rotation rate [s-1]
	EarthRadius float64 // [m]
	Rd          float64 // dry-air gas constant [J kg-1 K-1]
}

// Default holds the values for Earth.
var Default = Constants{
	Gravity:     9.80665,
	Omega:       7.292e-5,
	EarthRadius: 6.371e6,
	Rd:          287.04,
}

// GasConstant is the dimension of a specific gas constant [m2 s-2 K-1].
var GasConstant = unit.Dimensions{
	unit.LengthDim:      2,
	unit.TimeDim:        -2,
	unit.TemperatureDim: -1,
}

// FromUnits builds Constants from dimensioned values, returning an error if
// any has the wrong dimensions. A nil argument keeps the Default value.
func FromUnits(gravity, omega, radius, rd *unit.Unit) (Constants, error) {
	c := Default
	for _, p := range []struct {
		name string
		u    *unit.Unit
		dims unit.Dimensions
		dst  *float64
	}{
		{"gravity", gravity, unit.MeterPerSecond2, &c.Gravity},
		{"omega", omega, unit.Herz, &c.Omega},
		{"earth radius", radius, unit.Meter, &c.EarthRadius},
		{"gas constant", rd, GasConstant, &c.Rd},
	} {
		if p.u == nil {
			continue
		}
		if err := p.u.Check(p.dims); err != nil {
			return Constants{}, fmt.Errorf("phys: %s: %v", p.name, err)
		}
		if v := p.u.Value(); v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return Constants{}, fmt.Errorf("phys: %s must be positive and finite, not %g", p.name, v)
		}
		*p.dst = p.u.Value()
	}
	return c, nil
}

// Coriolis returns the Coriolis parameter 2Ω sin φ [s-1] at latitude
// latDeg degrees.
func (c Constants) Coriolis(latDeg float64) float64 {
	return 2 * c.Omega * math.Sin(latDeg*math.Pi/180)
}

// SpecificVolume returns the dry-air specific volume Rd T / p [m3 kg-1] at
// temperature tempK kelvin and pressure presPa pascals.
func (c Constants) SpecificVolume(tempK, presPa float64) float64 {
	return c.Rd * tempK / presPa
}

// ArcLength returns the distance [m] along a great circle subtending deg
// degrees.
func (c Constants) ArcLength(deg float64) float64 {
	return c.EarthRadius * deg * math.Pi / 180
}
