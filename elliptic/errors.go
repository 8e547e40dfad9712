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

package elliptic

import "errors"

var (
	// ErrInvalidOption is returned for solver options outside their domain.
	ErrInvalidOption = errors.New("elliptic: invalid option")

	// ErrDegenerateReference is recorded in a Result when a sweep began
	// with an all-zero unknown, leaving the relative error undefined. It is
	// never returned from Solve.
	ErrDegenerateReference = errors.New("elliptic: zero convergence reference")

	// ErrUndefinedFlux is returned when a boundary flux needed for seeding
	// is undefined.
	ErrUndefinedFlux = errors.New("elliptic: undefined boundary flux")
)
