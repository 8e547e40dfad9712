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

// Package geofluid inverts generalized elliptic balance equations, such as
// the Eliassen balance of a tropical cyclone's secondary circulation, on
// gridded atmospheric data.
//
// The numerical pieces live in sub-packages: field holds gridded data,
// coords turns physical base fields into coefficients, and elliptic solves
// the resulting equation. Invert ties them together.
package geofluid

// Version is the geofluid version.
const Version = "0.3.0"
