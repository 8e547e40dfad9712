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

package cdfio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/miniufo/MyPackage-sub003/field"
	"github.com/miniufo/MyPackage-sub003/grid"
)

func testDescriptor(t *testing.T) *grid.Descriptor {
	mk := func(name, units string, start, step float64, n int) grid.Axis {
		a, err := grid.Linear(name, units, start, step, n)
		if err != nil {
			t.Fatal(err)
		}
		return a
	}
	return &grid.Descriptor{
		Name:  "vortex",
		T:     mk("time", "hours", 0, 6, 2),
		Z:     mk("lev", "Pa", 100000, -2500, 3),
		Y:     mk("theta", "degrees", 0.5, 0.5, 4),
		X:     mk("lambda", "degrees", 0, 90, 1),
		Order: field.TimeMinor,
	}
}

func writeTemp(t *testing.T, d *grid.Descriptor, fields ...*field.Field) string {
	path := filepath.Join(t.TempDir(), "out.nc")
	w, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := Write(w, d, fields...); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRoundTrip(t *testing.T) {
	d := testDescriptor(t)
	psi, err := d.NewField("psi")
	if err != nil {
		t.Fatal(err)
	}
	psi.Unit, psi.Comment = "kg s-1", "streamfunction"
	for i := range psi.Data() {
		psi.Data()[i] = float64(i) * 0.25
	}
	psi.Set(psi.Undef(), 1, 2, 3, 0)
	stab, err := d.NewField("stab")
	if err != nil {
		t.Fatal(err)
	}
	stab.Fill(1e-6)

	path := writeTemp(t, d, psi, stab)
	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	ds, err := Open(r, AxisNames{Y: "theta", X: "lambda"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"psi", "stab"}, ds.Variables()); diff != "" {
		t.Errorf("variables (-want +got):\n%s", diff)
	}
	rd := ds.Descriptor()
	if rd.Name != "vortex" || rd.Z.Units != "Pa" {
		t.Errorf("descriptor %s, z units %q", rd.Name, rd.Z.Units)
	}
	if diff := cmp.Diff(d.Y.Samples, rd.Y.Samples); diff != "" {
		t.Errorf("theta samples (-want +got):\n%s", diff)
	}

	rd.Order = field.TimeMinor
	got, err := ds.Field("psi")
	if err != nil {
		t.Fatal(err)
	}
	if got.Order() != field.TimeMinor || got.Unit != "kg s-1" || got.Comment != "streamfunction" {
		t.Errorf("read %v unit %q comment %q", got, got.Unit, got.Comment)
	}
	if diff := cmp.Diff(psi.Data(), got.Data()); diff != "" {
		t.Errorf("psi (-want +got):\n%s", diff)
	}
	if !got.IsUndef(got.Get(1, 2, 3, 0)) {
		t.Error("undefined value not restored")
	}

	if _, err := ds.Field("theta"); !errors.Is(err, field.ErrDimensionMismatch) {
		t.Errorf("coordinate variable: have %v", err)
	}
	if _, err := ds.Field("nope"); !errors.Is(err, grid.ErrNoVariable) {
		t.Errorf("missing variable: have %v", err)
	}
}

func TestOpenMissingDimension(t *testing.T) {
	d := testDescriptor(t)
	path := writeTemp(t, d)
	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if _, err := Open(r, AxisNames{}); err == nil {
		t.Error("opened with the default lat/lon names")
	}
}

func TestWriteErrors(t *testing.T) {
	d := testDescriptor(t)
	w, err := os.Create(filepath.Join(t.TempDir(), "bad.nc"))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	small, err := field.New(1, 3, 4, 1, field.TimeMajor)
	if err != nil {
		t.Fatal(err)
	}
	small.Name = "small"
	if err := Write(w, d, small); !errors.Is(err, field.ErrDimensionMismatch) {
		t.Errorf("have %v, want ErrDimensionMismatch", err)
	}
	a, _ := d.NewField("lev")
	if err := Write(w, d, a); err == nil {
		t.Error("field named after a dimension accepted")
	}
}
