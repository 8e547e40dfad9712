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

// Command geofluid is a command-line interface for the geofluid elliptic
// equation inversion toolkit.
package main

import (
	"fmt"
	"os"

	"github.com/miniufo/MyPackage-sub003/geofluidutil"
)

func main() {
	if err := geofluidutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
