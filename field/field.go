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

// Package field holds the four-dimensional (time, level, row, column)
// gridded fields that the rest of geofluid operates on.
package field

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
)

// DefaultUndef is the undefined-value sentinel given to new fields.
const DefaultUndef = -9.99e8

// Order specifies the storage order of a field.
type Order int

const (
	// TimeMajor stores elements as [t][z][y][x]; x varies fastest.
	TimeMajor Order = iota
	// TimeMinor stores elements as [z][y][x][t]; t varies fastest.
	TimeMinor
)

func (o Order) String() string {
	switch o {
	case TimeMajor:
		return "time-major"
	case TimeMinor:
		return "time-minor"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// Axis identifies one of the four field dimensions.
type Axis int

// The four axes, in the order extents are given.
const (
	T Axis = iota
	Z
	Y
	X
)

func (a Axis) String() string {
	switch a {
	case T:
		return "t"
	case Z:
		return "z"
	case Y:
		return "y"
	case X:
		return "x"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Range locates a field inside a larger dataset. Start and End are
// 1-based and inclusive. Len is the field extent, End-Start+1 except along
// an axis that has been averaged, where Start and End give the averaged
// span and Len is 1.
type Range struct {
	Start, End, Len [4]int
}

// NewRange returns the range covering a whole dataset with the given extents.
func NewRange(ext [4]int) Range {
	var r Range
	for i, n := range ext {
		r.Start[i] = 1
		r.End[i] = n
		r.Len[i] = n
	}
	return r
}

// Sub returns the range of the sub-region beginning at the 0-based
// indices start with extents ext, relative to r.
func (r Range) Sub(start, ext [4]int) Range {
	var o Range
	for i := range ext {
		o.Start[i] = r.Start[i] + start[i]
		o.End[i] = o.Start[i] + ext[i] - 1
		o.Len[i] = ext[i]
	}
	return o
}

func (r Range) String() string {
	return fmt.Sprintf("t[%d:%d] z[%d:%d] y[%d:%d] x[%d:%d]",
		r.Start[T], r.End[T], r.Start[Z], r.End[Z],
		r.Start[Y], r.End[Y], r.Start[X], r.End[X])
}

// Field is a gridded variable with extents (T, Z, Y, X). Each Field owns
// its storage.
type Field struct {
	Name    string
	Unit    string
	Comment string

	ext    [4]int
	order  Order
	undef  float64
	region Range

	stride [4]int
	data   *sparse.DenseArray
}

// New allocates a zero-filled field with the given extents.
func New(t, z, y, x int, order Order) (*Field, error) {
	return newField([4]int{t, z, y, x}, order)
}

func newField(ext [4]int, order Order) (*Field, error) {
	for i, n := range ext {
		if n < 1 {
			return nil, fmt.Errorf("field: %v extent is %d: %w", Axis(i), n, ErrInvalidDimension)
		}
	}
	if order != TimeMajor && order != TimeMinor {
		return nil, fmt.Errorf("field: unknown storage order %d: %w", order, ErrInvalidDimension)
	}
	f := &Field{
		ext:    ext,
		order:  order,
		undef:  DefaultUndef,
		region: NewRange(ext),
	}
	f.stride = strides(ext, order)
	if order == TimeMajor {
		f.data = sparse.ZerosDense(ext[T], ext[Z], ext[Y], ext[X])
	} else {
		f.data = sparse.ZerosDense(ext[Z], ext[Y], ext[X], ext[T])
	}
	return f, nil
}

// strides returns the element step along each of T, Z, Y, X.
func strides(ext [4]int, order Order) [4]int {
	var s [4]int
	if order == TimeMajor {
		s[X] = 1
		s[Y] = ext[X]
		s[Z] = ext[X] * ext[Y]
		s[T] = ext[X] * ext[Y] * ext[Z]
	} else {
		s[T] = 1
		s[X] = ext[T]
		s[Y] = ext[T] * ext[X]
		s[Z] = ext[T] * ext[X] * ext[Y]
	}
	return s
}

// Like returns a new zeroed field with the extents, order, undefined value
// and region of other.
func Like(other *Field, name string) *Field {
	f, err := newField(other.ext, other.order)
	if err != nil {
		panic(err) // other was validated when it was created.
	}
	f.Name = name
	f.Unit = other.Unit
	f.undef = other.undef
	f.region = other.region
	return f
}

// Copy returns a deep copy of f.
func (f *Field) Copy() *Field {
	o := *f
	o.data = f.data.Copy()
	return &o
}

// Extents returns the (T, Z, Y, X) extents of f.
func (f *Field) Extents() [4]int { return f.ext }

// T is the number of time steps.
func (f *Field) T() int { return f.ext[T] }

// Z is the number of levels.
func (f *Field) Z() int { return f.ext[Z] }

// Y is the number of rows.
func (f *Field) Y() int { return f.ext[Y] }

// X is the number of columns.
func (f *Field) X() int { return f.ext[X] }

// Order returns the storage order of f.
func (f *Field) Order() Order { return f.order }

// Region returns the location of f within its parent dataset.
func (f *Field) Region() Range { return f.region }

// SetRegion sets the location of f within its parent dataset.
func (f *Field) SetRegion(r Range) { f.region = r }

// Undef returns the undefined-value sentinel.
func (f *Field) Undef() float64 { return f.undef }

// SetUndef changes the sentinel. Existing elements equal to the old
// sentinel are rewritten to the new one.
func (f *Field) SetUndef(v float64) {
	old := f.undef
	if old == v {
		return
	}
	for i, e := range f.data.Elements {
		if e == old {
			f.data.Elements[i] = v
		}
	}
	f.undef = v
}

// IsUndef reports whether v is the sentinel or NaN.
func (f *Field) IsUndef(v float64) bool {
	return v == f.undef || math.IsNaN(v)
}

// Offset returns the position of element (t, z, y, x) in Data.
func (f *Field) Offset(t, z, y, x int) int {
	return t*f.stride[T] + z*f.stride[Z] + y*f.stride[Y] + x*f.stride[X]
}

// Stride returns the distance in Data between neighbours along a.
func (f *Field) Stride(a Axis) int { return f.stride[a] }

// Get returns element (t, z, y, x).
func (f *Field) Get(t, z, y, x int) float64 {
	return f.data.Elements[f.Offset(t, z, y, x)]
}

// Set sets element (t, z, y, x).
func (f *Field) Set(v float64, t, z, y, x int) {
	f.data.Elements[f.Offset(t, z, y, x)] = v
}

// Fill sets every element to v.
func (f *Field) Fill(v float64) {
	for i := range f.data.Elements {
		f.data.Elements[i] = v
	}
}

// Data returns the backing storage of f in storage order. The slice is
// shared with f, not copied: writes through it change f.
func (f *Field) Data() []float64 { return f.data.Elements }

// SameShape reports whether f and o have identical extents and order.
func (f *Field) SameShape(o *Field) bool {
	return f.ext == o.ext && f.order == o.order
}

func (f *Field) checkShape(o *Field) error {
	if !f.SameShape(o) {
		return fmt.Errorf("field: %s %v (%v) vs %s %v (%v): %w",
			f.Name, f.ext, f.order, o.Name, o.ext, o.order, ErrDimensionMismatch)
	}
	return nil
}

func (f *Field) String() string {
	return fmt.Sprintf("%s[t=%d z=%d y=%d x=%d %v]", f.Name, f.ext[T], f.ext[Z], f.ext[Y], f.ext[X], f.order)
}

// Reorder returns a copy of f stored in the given order.
func (f *Field) Reorder(order Order) (*Field, error) {
	o, err := newField(f.ext, order)
	if err != nil {
		return nil, err
	}
	o.Name, o.Unit, o.Comment = f.Name, f.Unit, f.Comment
	o.undef = f.undef
	o.region = f.region
	for t := 0; t < f.ext[T]; t++ {
		for z := 0; z < f.ext[Z]; z++ {
			for y := 0; y < f.ext[Y]; y++ {
				for x := 0; x < f.ext[X]; x++ {
					o.Set(f.Get(t, z, y, x), t, z, y, x)
				}
			}
		}
	}
	return o, nil
}

// Subgrid returns a copy of the rectangular region of f beginning at the
// 0-based indices start with extents ext.
func (f *Field) Subgrid(start, ext [4]int) (*Field, error) {
	for i := range ext {
		if start[i] < 0 || ext[i] < 1 || start[i]+ext[i] > f.ext[i] {
			return nil, fmt.Errorf("field: subgrid %v start %d length %d outside extent %d: %w",
				Axis(i), start[i], ext[i], f.ext[i], ErrInvalidDimension)
		}
	}
	o, err := newField(ext, f.order)
	if err != nil {
		return nil, err
	}
	o.Name, o.Unit, o.Comment = f.Name, f.Unit, f.Comment
	o.undef = f.undef
	o.region = f.region.Sub(start, ext)
	for t := 0; t < ext[T]; t++ {
		for z := 0; z < ext[Z]; z++ {
			for y := 0; y < ext[Y]; y++ {
				for x := 0; x < ext[X]; x++ {
					o.Set(f.Get(start[T]+t, start[Z]+z, start[Y]+y, start[X]+x), t, z, y, x)
				}
			}
		}
	}
	return o, nil
}

// Narrow32 packs f into float32 storage order. Undefined elements are
// kept as float32(undef).
func (f *Field) Narrow32() ([]float32, error) {
	o := make([]float32, len(f.data.Elements))
	for i, v := range f.data.Elements {
		if !f.IsUndef(v) && math.Abs(v) > math.MaxFloat32 {
			return nil, fmt.Errorf("field: %s element %d = %g: %w", f.Name, i, v, ErrOverflow)
		}
		o[i] = float32(v)
	}
	return o, nil
}
