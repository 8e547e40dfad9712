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
	"io"
	"os"

	"github.com/lnashier/viper"
	geofluid "github.com/miniufo/MyPackage-sub003"
	"github.com/miniufo/MyPackage-sub003/cdfio"
	"github.com/miniufo/MyPackage-sub003/grid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// Solve runs the inversion configured by cfg and writes the output file and
// any requested report, plot and snapshot. Log messages go to w and the log
// file. A run whose slices do not all converge still writes its output.
func Solve(w io.Writer, cfg *viper.Viper) error {
	outputFile, err := checkOutputFile(cfg.GetString("OutputFile"))
	if err != nil {
		return err
	}
	logFile := checkLogFile(os.ExpandEnv(cfg.GetString("LogFile")), outputFile)
	log, logCloser, err := NewLogger(w, logFile, cfg.GetString("LogLevel"))
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ic, err := InversionConfig(cfg)
	if err != nil {
		return err
	}
	src, closeSrc, err := Source(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()
	d := src.Descriptor()
	log.WithFields(logrus.Fields{
		"version":   geofluid.Version,
		"grid":      d.Name,
		"extents":   d.Extents(),
		"variables": src.Variables(),
	}).Info("geofluid starting inversion")

	out, err := geofluid.Invert(src, ic, log)
	if err != nil {
		return err
	}

	if err := writeOutput(outputFile, d, out); err != nil {
		return err
	}
	log.WithField("file", outputFile).Info("geofluid wrote output")

	if f := os.ExpandEnv(cfg.GetString("ReportFile")); f != "" {
		if err := NewReport(d.Name, ic, out).WriteFile(f); err != nil {
			return err
		}
		log.WithField("file", f).Info("geofluid wrote report")
	}
	if f := os.ExpandEnv(cfg.GetString("PlotFile")); f != "" {
		if err := PlotConvergence(out.Results, f); err != nil {
			return err
		}
		log.WithField("file", f).Info("geofluid wrote convergence plot")
	}
	if f := os.ExpandEnv(cfg.GetString("SnapshotFile")); f != "" {
		if err := writeSnapshot(f, out); err != nil {
			return err
		}
		log.WithField("file", f).Info("geofluid wrote snapshot")
	}

	if !out.Converged() {
		log.Warn("geofluid inversion did not converge in every slice")
	}
	fmt.Fprint(w, out.Summary())
	return nil
}

// columnDescriptor returns d with its x axis collapsed to its mean, matching
// the single column of the solution.
func columnDescriptor(d *grid.Descriptor) (*grid.Descriptor, error) {
	if d.X.Len() == 1 {
		return d, nil
	}
	x, err := grid.NewAxis(d.X.Name, d.X.Units, []float64{stat.Mean(d.X.Samples, nil)})
	if err != nil {
		return nil, err
	}
	c := *d
	c.X = x
	return &c, nil
}

func writeOutput(file string, d *grid.Descriptor, out *geofluid.Output) error {
	cd, err := columnDescriptor(d)
	if err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("geofluid: creating output file: %v", err)
	}
	if err := cdfio.Write(f, cd, out.Solution, out.Radial, out.Vertical); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSnapshot(file string, out *geofluid.Output) error {
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("geofluid: creating snapshot: %v", err)
	}
	if err := out.Solution.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
