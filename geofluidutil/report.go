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

package geofluidutil

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
	geofluid "github.com/miniufo/MyPackage-sub003"
	"github.com/miniufo/MyPackage-sub003/elliptic"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Report summarizes an inversion.
type Report struct {
	Version   string        `toml:"version"`
	Grid      string        `toml:"grid"`
	System    string        `toml:"system"`
	Converged bool          `toml:"converged"`
	DY        float64       `toml:"dy"`
	DZ        float64       `toml:"dz"`
	Slices    []SliceReport `toml:"slice"`
}

// SliceReport is the part of a Report about one time slice.
type SliceReport struct {
	Slice      int    `toml:"slice"`
	Status     string `toml:"status"`
	Iterations int    `toml:"iterations"`

	// RelativeError and Rate are -1 when they are undefined.
	RelativeError    float64 `toml:"relative_error"`
	Rate             float64 `toml:"rate"`
	Omega            float64 `toml:"omega"`
	DegenerateSweeps int     `toml:"degenerate_sweeps"`

	// Discrepancy is the boundary flux imbalance removed by seeding.
	Discrepancy float64 `toml:"discrepancy"`
}

// NewReport summarizes out, which was computed on grid gridName.
func NewReport(gridName string, cfg *geofluid.Config, out *geofluid.Output) *Report {
	r := &Report{
		Version:   geofluid.Version,
		Grid:      gridName,
		System:    cfg.System.String(),
		Converged: out.Converged(),
		DY:        out.Coefficients.DY,
		DZ:        out.Coefficients.DZ,
	}
	for _, res := range out.Results {
		s := SliceReport{
			Slice:            res.Slice,
			Status:           res.Status.String(),
			Iterations:       res.Iterations,
			RelativeError:    finiteOr(res.RelativeError, -1),
			Rate:             finiteOr(res.Rate, -1),
			Omega:            res.Omega,
			DegenerateSweeps: res.DegenerateSweeps,
		}
		if res.Rate == 0 {
			s.Rate = -1
		}
		for _, sd := range out.Seeds {
			if sd.Slice == res.Slice {
				s.Discrepancy = sd.Discrepancy
			}
		}
		r.Slices = append(r.Slices, s)
	}
	return r
}

func finiteOr(v, dflt float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return dflt
	}
	return v
}

// WriteFile writes r to file in TOML format.
func (r *Report) WriteFile(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("geofluid: creating report: %v", err)
	}
	if err := toml.NewEncoder(f).Encode(r); err != nil {
		f.Close()
		return fmt.Errorf("geofluid: writing report: %v", err)
	}
	return f.Close()
}

// PlotConvergence saves a PNG plot of the base-10 logarithm of the relative
// error against sweep number, one line per slice. The results must have been
// computed with Options.History set. Degenerate sweeps are left out.
func PlotConvergence(results []elliptic.Result, file string) error {
	p := plot.New()
	p.Title.Text = "Convergence"
	p.X.Label.Text = "Sweep"
	p.Y.Label.Text = "log10 relative error"

	var lines []interface{}
	for _, r := range results {
		var xy plotter.XYs
		for i, e := range r.History {
			if !(e > 0) || math.IsInf(e, 0) {
				continue
			}
			xy = append(xy, plotter.XY{X: float64(i + 1), Y: math.Log10(e)})
		}
		if len(xy) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("slice %d", r.Slice), xy)
	}
	if len(lines) == 0 {
		return fmt.Errorf("geofluid: there is no convergence history to plot")
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return fmt.Errorf("geofluid: plotting convergence: %v", err)
	}
	if err := p.Save(5*vg.Inch, 3.5*vg.Inch, file); err != nil {
		return fmt.Errorf("geofluid: saving convergence plot: %v", err)
	}
	return nil
}
