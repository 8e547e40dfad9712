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
	"errors"

	"github.com/miniufo/MyPackage-sub003/field"
)

// ErrNoVariable is returned by a Source asked for a variable it lacks.
var ErrNoVariable = errors.New("grid: no such variable")

// Source supplies named fields on a common grid.
type Source interface {
	// Descriptor returns the grid the fields are defined on.
	Descriptor() *Descriptor

	// Field reads the named variable over the whole grid.
	Field(name string) (*field.Field, error)

	// Variables lists the names Field accepts.
	Variables() []string
}
