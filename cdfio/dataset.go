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
	"fmt"
	"math"

	"github.com/ctessum/cdf"
	"github.com/miniufo/MyPackage-sub003/field"
	"github.com/miniufo/MyPackage-sub003/grid"
)

// Dataset is a grid.Source backed by a NetCDF file.
type Dataset struct {
	f     *cdf.File
	names [4]string
	desc  *grid.Descriptor
}

var _ grid.Source = (*Dataset)(nil)

// Open reads the header of rw. names gives the dimension names of the
// axes; empty names take their DefaultAxisNames value. Axis samples come
// from the coordinate variable named after each dimension, or are the
// indices 0, 1, ... when the file has none.
//
// Fields are returned in the order of Descriptor().Order, time-major
// unless the caller changes it.
func Open(rw cdf.ReaderWriterAt, names AxisNames) (*Dataset, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("cdfio: opening netcdf file: %w", err)
	}
	ds := &Dataset{f: f, names: names.list()}
	def := DefaultAxisNames.list()
	for i := range ds.names {
		if ds.names[i] == "" {
			ds.names[i] = def[i]
		}
	}

	lengths := make(map[string]int)
	dl := f.Header.Lengths("")
	for i, n := range f.Header.Dimensions("") {
		lengths[n] = dl[i]
	}
	var axes [4]grid.Axis
	for i, n := range ds.names {
		l, ok := lengths[n]
		if !ok {
			return nil, fmt.Errorf("cdfio: file has no dimension %q", n)
		}
		if l == 0 {
			return nil, fmt.Errorf("cdfio: record dimension %q is not supported", n)
		}
		samples := make([]float64, l)
		if d := f.Header.Dimensions(n); len(d) == 1 && d[0] == n {
			if samples, err = ds.read(n, l); err != nil {
				return nil, err
			}
		} else {
			for j := range samples {
				samples[j] = float64(j)
			}
		}
		units, _ := f.Header.GetAttribute(n, "units").(string)
		if axes[i], err = grid.NewAxis(n, units, samples); err != nil {
			return nil, fmt.Errorf("cdfio: %w", err)
		}
	}
	title, _ := f.Header.GetAttribute("", "title").(string)
	ds.desc = &grid.Descriptor{
		Name:  title,
		T:     axes[0],
		Z:     axes[1],
		Y:     axes[2],
		X:     axes[3],
		Undef: field.DefaultUndef,
		Order: field.TimeMajor,
	}
	return ds, nil
}

// Descriptor implements grid.Source.
func (ds *Dataset) Descriptor() *grid.Descriptor { return ds.desc }

// Variables returns the names of the variables that span all four axes.
func (ds *Dataset) Variables() []string {
	var o []string
	for _, v := range ds.f.Header.Variables() {
		if ds.gridded(v) {
			o = append(o, v)
		}
	}
	return o
}

func (ds *Dataset) gridded(v string) bool {
	d := ds.f.Header.Dimensions(v)
	if len(d) != 4 {
		return false
	}
	for i, n := range ds.names {
		if d[i] != n {
			return false
		}
	}
	return true
}

// Field implements grid.Source. Elements equal to the variable's
// _FillValue are undefined.
func (ds *Dataset) Field(name string) (*field.Field, error) {
	if !ds.gridded(name) {
		if ds.f.Header.Lengths(name) == nil {
			return nil, fmt.Errorf("%w: %s", grid.ErrNoVariable, name)
		}
		return nil, fmt.Errorf("cdfio: variable %s does not have dimensions %v: %w", name, ds.names, field.ErrDimensionMismatch)
	}
	e := ds.desc.Extents()
	f, err := field.New(e[0], e[1], e[2], e[3], field.TimeMajor)
	if err != nil {
		return nil, err
	}
	f.Name = name
	f.SetUndef(ds.desc.Undef)
	f.Unit, _ = ds.f.Header.GetAttribute(name, "units").(string)
	f.Comment, _ = ds.f.Header.GetAttribute(name, "description").(string)

	vals, err := ds.read(name, len(f.Data()))
	if err != nil {
		return nil, err
	}
	fill := math.NaN()
	switch v := ds.f.Header.GetAttribute(name, "_FillValue").(type) {
	case []float64:
		if len(v) > 0 {
			fill = v[0]
		}
	case []float32:
		if len(v) > 0 {
			fill = float64(v[0])
		}
	}
	data := f.Data()
	for i, v := range vals {
		if v == fill || math.IsNaN(v) {
			v = f.Undef()
		}
		data[i] = v
	}
	if ds.desc.Order != field.TimeMajor {
		return f.Reorder(ds.desc.Order)
	}
	return f, nil
}

// read returns the n values of variable v as float64.
func (ds *Dataset) read(v string, n int) ([]float64, error) {
	r := ds.f.Reader(v, nil, nil)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("cdfio: reading netcdf variable %s: %w", v, err)
	}
	switch b := buf.(type) {
	case []float64:
		return b, nil
	case []float32:
		o := make([]float64, len(b))
		for i, x := range b {
			o[i] = float64(x)
		}
		return o, nil
	case []int32:
		o := make([]float64, len(b))
		for i, x := range b {
			o[i] = float64(x)
		}
		return o, nil
	case []int16:
		o := make([]float64, len(b))
		for i, x := range b {
			o[i] = float64(x)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("cdfio: variable %s has unsupported type %T", v, buf)
	}
}
