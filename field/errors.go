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

import "errors"

// Errors returned by field operations. They are wrapped with context and
// should be matched with errors.Is.
var (
	// ErrInvalidDimension means a requested shape or index range is not
	// positive or falls outside a field.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrDimensionMismatch means two fields that must align do not have the
	// same extents and storage order.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDivideByZero means a field was divided by the scalar zero.
	ErrDivideByZero = errors.New("divide by zero")

	// ErrOverflow means a value does not fit a narrower storage type.
	ErrOverflow = errors.New("overflow")
)
