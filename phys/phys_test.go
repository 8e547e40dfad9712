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

package phys

import (
	"math"
	"testing"

	"github.com/ctessum/unit"
)

func TestFromUnits(t *testing.T) {
	c, err := FromUnits(unit.New(3.71, unit.MeterPerSecond2), nil, unit.New(3.3895e6, unit.Meter), nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Gravity != 3.71 || c.EarthRadius != 3.3895e6 || c.Omega != Default.Omega || c.Rd != Default.Rd {
		t.Errorf("constants %+v", c)
	}
	rd := unit.Div(unit.New(287, unit.Joule), unit.New(1, unit.Kilogram), unit.New(1, unit.Kelvin))
	if _, err := FromUnits(nil, nil, nil, rd); err != nil {
		t.Errorf("gas constant: %v", err)
	}
}

func TestFromUnitsWrongDimensions(t *testing.T) {
	if _, err := FromUnits(unit.New(9.8, unit.Meter), nil, nil, nil); err == nil {
		t.Error("gravity in metres accepted")
	}
	if _, err := FromUnits(nil, unit.New(7e-5, unit.Second), nil, nil); err == nil {
		t.Error("omega in seconds accepted")
	}
	if _, err := FromUnits(nil, nil, unit.New(-1, unit.Meter), nil); err == nil {
		t.Error("negative radius accepted")
	}
}

func TestCoriolis(t *testing.T) {
	if f := Default.Coriolis(0); f != 0 {
		t.Errorf("equator f = %g", f)
	}
	if f, want := Default.Coriolis(90), 2*Default.Omega; math.Abs(f-want) > 1e-18 {
		t.Errorf("pole f = %g, want %g", f, want)
	}
	if f := Default.Coriolis(-30); math.Abs(f+Default.Omega) > 1e-15 {
		t.Errorf("f(-30) = %g", f)
	}
	if v, want := Default.SpecificVolume(273.15, 101325), 0.7738; math.Abs(v-want) > 1e-4 {
		t.Errorf("specific volume = %g, want %g", v, want)
	}
	if d := Default.ArcLength(180); math.Abs(d-math.Pi*Default.EarthRadius) > 1e-6 {
		t.Errorf("half circumference = %g", d)
	}
}
