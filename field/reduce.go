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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ReduceAlong averages f over the 0-based inclusive index range
// [start, end] of axis a. The result has length 1 along a. Undefined
// elements are excluded from the mean; a point with no defined
// contributors is undefined.
//
// If anomalize is true, the mean is also subtracted from every defined
// contributing element of f, leaving f holding the deviation (eddy)
// part. This modifies f.
func (f *Field) ReduceAlong(a Axis, start, end int, anomalize bool) (*Field, error) {
	if a < T || a > X {
		return nil, fmt.Errorf("field: reduce along %v: %w", a, ErrInvalidDimension)
	}
	if start < 0 || end < start || end >= f.ext[a] {
		return nil, fmt.Errorf("field: reduce %s along %v over [%d, %d] with extent %d: %w",
			f.Name, a, start, end, f.ext[a], ErrInvalidDimension)
	}
	ext := f.ext
	ext[a] = 1
	o, err := newField(ext, f.order)
	if err != nil {
		return nil, err
	}
	o.Name, o.Unit, o.Comment = f.Name, f.Unit, f.Comment
	o.undef = f.undef
	var rs [4]int
	rs[a] = start
	o.region = f.region.Sub(rs, f.shrink(a, end-start+1))
	o.region.Len[a] = 1

	elems := f.data.Elements
	step := f.stride[a]
	for t := 0; t < ext[T]; t++ {
		for z := 0; z < ext[Z]; z++ {
			for y := 0; y < ext[Y]; y++ {
				for x := 0; x < ext[X]; x++ {
					base := f.Offset(t, z, y, x) + start*step
					var sum float64
					var n int
					for i := 0; i <= end-start; i++ {
						v := elems[base+i*step]
						if f.IsUndef(v) {
							continue
						}
						sum += v
						n++
					}
					if n == 0 {
						o.Set(o.undef, t, z, y, x)
						continue
					}
					mean := sum / float64(n)
					o.Set(mean, t, z, y, x)
					if anomalize {
						for i := 0; i <= end-start; i++ {
							if p := base + i*step; !f.IsUndef(elems[p]) {
								elems[p] -= mean
							}
						}
					}
				}
			}
		}
	}
	return o, nil
}

// shrink returns the extents of f with axis a set to n.
func (f *Field) shrink(a Axis, n int) [4]int {
	e := f.ext
	e[a] = n
	return e
}

// Mean averages f over the whole of axis a without modifying f.
func (f *Field) Mean(a Axis) (*Field, error) {
	return f.ReduceAlong(a, 0, f.ext[a]-1, false)
}

// Defined returns a copy of the defined elements of f.
func (f *Field) Defined() []float64 {
	o := make([]float64, 0, len(f.data.Elements))
	for _, v := range f.data.Elements {
		if !f.IsUndef(v) {
			o = append(o, v)
		}
	}
	return o
}

// Summary holds statistics of the defined elements of a field.
type Summary struct {
	Count          int
	Min, Max, Mean float64
	AbsMax         float64
}

// Stats summarizes the defined elements of f. With no defined elements
// the statistics are NaN.
func (f *Field) Stats() Summary {
	d := f.Defined()
	if len(d) == 0 {
		nan := math.NaN()
		return Summary{Min: nan, Max: nan, Mean: nan, AbsMax: nan}
	}
	s := Summary{
		Count: len(d),
		Min:   floats.Min(d),
		Max:   floats.Max(d),
		Mean:  stat.Mean(d, nil),
	}
	s.AbsMax = math.Max(math.Abs(s.Min), math.Abs(s.Max))
	return s
}

// AbsMax returns the largest defined magnitude in f, or 0 when no element
// is defined.
func (f *Field) AbsMax() float64 {
	var m float64
	for _, v := range f.data.Elements {
		if f.IsUndef(v) {
			continue
		}
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
