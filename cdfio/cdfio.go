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

// Package cdfio reads and writes gridded fields as NetCDF classic files.
package cdfio

import (
	"fmt"
	"os"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/miniufo/MyPackage-sub003/field"
	"github.com/miniufo/MyPackage-sub003/grid"
)

// AxisNames are the NetCDF dimension names of the four axes.
type AxisNames struct {
	T, Z, Y, X string
}

// DefaultAxisNames are used for axes without a name.
var DefaultAxisNames = AxisNames{T: "time", Z: "lev", Y: "lat", X: "lon"}

func (n AxisNames) list() [4]string {
	return [4]string{n.T, n.Z, n.Y, n.X}
}

// Write writes the axes of d and the given fields to w. Fields are written
// in time-major order as doubles, with units, description and _FillValue
// attributes.
func Write(w *os.File, d *grid.Descriptor, fields ...*field.Field) error {
	if err := d.Validate(); err != nil {
		return err
	}
	axes := [4]grid.Axis{d.T, d.Z, d.Y, d.X}
	def := DefaultAxisNames.list()
	var dims [4]string
	for i, a := range axes {
		dims[i] = a.Name
		if dims[i] == "" {
			dims[i] = def[i]
		}
		for _, prev := range dims[:i] {
			if prev == dims[i] {
				return fmt.Errorf("cdfio: axis name %q is repeated", prev)
			}
		}
	}
	e := d.Extents()
	h := cdf.NewHeader(dims[:], e[:])
	if d.Name != "" {
		h.AddAttribute("", "title", d.Name)
	}
	h.AddAttribute("", "source", "geofluid")

	for i, a := range axes {
		h.AddVariable(dims[i], []string{dims[i]}, []float64{0})
		if a.Units != "" {
			h.AddAttribute(dims[i], "units", a.Units)
		}
	}

	data := make(map[string]*field.Field, len(fields))
	for _, f := range fields {
		if err := d.Check(f); err != nil {
			return fmt.Errorf("cdfio: %w", err)
		}
		if _, ok := data[f.Name]; ok || f.Name == "" {
			return fmt.Errorf("cdfio: field name %q is empty or repeated", f.Name)
		}
		for _, n := range dims {
			if f.Name == n {
				return fmt.Errorf("cdfio: field %s has the name of a dimension", f.Name)
			}
		}
		data[f.Name] = f
	}
	// Sort the names so they write in the same order every time.
	names := make([]string, 0, len(data))
	for n := range data {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, name := range names {
		f := data[name]
		h.AddVariable(name, dims[:], []float64{0})
		if f.Unit != "" {
			h.AddAttribute(name, "units", f.Unit)
		}
		if f.Comment != "" {
			h.AddAttribute(name, "description", f.Comment)
		}
		h.AddAttribute(name, "_FillValue", []float64{f.Undef()})
	}
	h.Define()

	cf, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return fmt.Errorf("cdfio: creating header: %w", err)
	}
	for i, a := range axes {
		if _, err := cf.Writer(dims[i], nil, nil).Write(a.Samples); err != nil {
			return fmt.Errorf("cdfio: writing axis %s: %w", dims[i], err)
		}
	}
	for _, name := range names {
		if err := writeField(cf, data[name]); err != nil {
			return err
		}
	}
	return cdf.UpdateNumRecs(w)
}

func writeField(cf *cdf.File, f *field.Field) error {
	if f.Order() != field.TimeMajor {
		var err error
		if f, err = f.Reorder(field.TimeMajor); err != nil {
			return err
		}
	}
	// Undefined elements are written as the fill value.
	vals := make([]float64, len(f.Data()))
	for i, v := range f.Data() {
		if f.IsUndef(v) {
			v = f.Undef()
		}
		vals[i] = v
	}
	if _, err := cf.Writer(f.Name, nil, nil).Write(vals); err != nil {
		return fmt.Errorf("cdfio: writing variable %s to netcdf file: %w", f.Name, err)
	}
	return nil
}
