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

	"github.com/miniufo/MyPackage-sub003/field"
)

// Descriptor is the dataset-level metadata shared by every field of a source.
type Descriptor struct {
	Name       string
	T, Z, Y, X Axis
	Undef      float64
	Order      field.Order
}

// Validate checks the axes and storage order.
func (d *Descriptor) Validate() error {
	for _, a := range []Axis{d.T, d.Z, d.Y, d.X} {
		if err := a.validate(); err != nil {
			return fmt.Errorf("grid: descriptor %s: %w", d.Name, err)
		}
	}
	if d.Order != field.TimeMajor && d.Order != field.TimeMinor {
		return fmt.Errorf("grid: descriptor %s: storage order %v: %w", d.Name, d.Order, field.ErrInvalidDimension)
	}
	return nil
}

// Extents returns the (T, Z, Y, X) lengths.
func (d *Descriptor) Extents() [4]int {
	return [4]int{d.T.Len(), d.Z.Len(), d.Y.Len(), d.X.Len()}
}

// Axis returns the axis along dimension a.
func (d *Descriptor) Axis(a field.Axis) Axis {
	switch a {
	case field.T:
		return d.T
	case field.Z:
		return d.Z
	case field.Y:
		return d.Y
	default:
		return d.X
	}
}

// NewField allocates a zeroed field covering the whole descriptor.
func (d *Descriptor) NewField(name string) (*field.Field, error) {
	e := d.Extents()
	f, err := field.New(e[field.T], e[field.Z], e[field.Y], e[field.X], d.Order)
	if err != nil {
		return nil, fmt.Errorf("grid: descriptor %s: %w", d.Name, err)
	}
	f.Name = name
	if d.Undef != 0 {
		f.SetUndef(d.Undef)
	}
	return f, nil
}

// Check returns field.ErrDimensionMismatch unless f covers the descriptor.
func (d *Descriptor) Check(f *field.Field) error {
	if f.Extents() != d.Extents() {
		return fmt.Errorf("grid: %v does not match descriptor %s extents %v: %w",
			f, d.Name, d.Extents(), field.ErrDimensionMismatch)
	}
	return nil
}
