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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/unit"
	"github.com/lnashier/viper"
	geofluid "github.com/miniufo/MyPackage-sub003"
	"github.com/miniufo/MyPackage-sub003/cdfio"
	"github.com/miniufo/MyPackage-sub003/coords"
	"github.com/miniufo/MyPackage-sub003/elliptic"
	"github.com/miniufo/MyPackage-sub003/field"
	"github.com/miniufo/MyPackage-sub003/grid"
	"github.com/miniufo/MyPackage-sub003/phys"
	"github.com/spf13/cast"
)

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`geofluid: you need to specify an output file configuration variable (for example: OutputFile="output.nc")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("geofluid: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return logFile
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("geofluid: parsing %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("geofluid: invalid type for %s: %#v", varName, i)
	}
}

// Constants unmarshals the planetary constants, checking their dimensions.
func Constants(cfg *viper.Viper) (phys.Constants, error) {
	return phys.FromUnits(
		unit.New(cfg.GetFloat64("Constants.Gravity"), unit.MeterPerSecond2),
		unit.New(cfg.GetFloat64("Constants.Omega"), unit.Herz),
		unit.New(cfg.GetFloat64("Constants.EarthRadius"), unit.Meter),
		unit.New(cfg.GetFloat64("Constants.Rd"), phys.GasConstant),
	)
}

// InversionConfig unmarshals a viper configuration for an inversion.
func InversionConfig(cfg *viper.Viper) (*geofluid.Config, error) {
	sys, err := coords.ParseSystem(os.ExpandEnv(cfg.GetString("System")))
	if err != nil {
		return nil, err
	}
	c, err := Constants(cfg)
	if err != nil {
		return nil, err
	}
	ic := &geofluid.Config{
		System:    sys,
		Constants: c,
		Options: elliptic.Options{
			Tolerance:     cfg.GetFloat64("Solver.Tolerance"),
			MaxIterations: cfg.GetInt("Solver.MaxIterations"),
			Workers:       cfg.GetInt("Solver.Workers"),
			Omega:         cfg.GetFloat64("Solver.Omega"),
			History:       cfg.GetString("PlotFile") != "",
		},
		SeedBoundaries: cfg.GetBool("SeedBoundaries"),
		RefLatitude:    cfg.GetFloat64("RefLatitude"),
		Laplace:        cfg.GetBool("Laplace"),
	}
	for _, v := range variableOptions {
		*v.dst(&ic.Fields) = os.ExpandEnv(cfg.GetString("Variables." + v.name))
	}
	return ic, nil
}

// axisNames unmarshals the dimension names.
func axisNames(cfg *viper.Viper) cdfio.AxisNames {
	return cdfio.AxisNames{
		T: cfg.GetString("Dims.T"),
		Z: cfg.GetString("Dims.Z"),
		Y: cfg.GetString("Dims.Y"),
		X: cfg.GetString("Dims.X"),
	}
}

// GridDescriptor unmarshals the analytic grid.
func GridDescriptor(cfg *viper.Viper) (*grid.Descriptor, error) {
	names := axisNames(cfg)
	d := &grid.Descriptor{
		Name:  os.ExpandEnv(cfg.GetString("Grid.Name")),
		Undef: cfg.GetFloat64("Grid.Undef"),
		Order: field.TimeMajor,
	}
	for _, a := range []struct {
		key, name string
		dst       *grid.Axis
	}{
		{"T", names.T, &d.T}, {"Z", names.Z, &d.Z}, {"Y", names.Y, &d.Y}, {"X", names.X, &d.X},
	} {
		p := "Grid." + a.key + "."
		n := cfg.GetInt(p + "N")
		if n < 1 {
			return nil, fmt.Errorf("parsing grid configuration: %sN=%d but should be >0", p, n)
		}
		ax, err := grid.Linear(a.name, "", cfg.GetFloat64(p+"Start"), cfg.GetFloat64(p+"Step"), n)
		if err != nil {
			return nil, fmt.Errorf("parsing grid configuration: %s: %w", a.key, err)
		}
		*a.dst = ax
	}
	return d, nil
}

// Source opens the input described by cfg: the netCDF file named by Input,
// or the Expressions evaluated on the analytic grid. The returned function
// closes any file that was opened.
func Source(cfg *viper.Viper) (grid.Source, func() error, error) {
	nop := func() error { return nil }
	if in := os.ExpandEnv(cfg.GetString("Input")); in != "" {
		f, err := os.Open(in)
		if err != nil {
			return nil, nop, fmt.Errorf("geofluid: opening Input file: %v", err)
		}
		ds, err := cdfio.Open(f, axisNames(cfg))
		if err != nil {
			f.Close()
			return nil, nop, err
		}
		return ds, f.Close, nil
	}
	d, err := GridDescriptor(cfg)
	if err != nil {
		return nil, nop, err
	}
	exprs, err := GetStringMapString("Expressions", cfg)
	if err != nil {
		return nil, nop, err
	}
	if len(exprs) == 0 {
		return nil, nop, fmt.Errorf("geofluid: there is no Input file and there are no Expressions")
	}
	src, err := grid.NewExprSource(d, exprs, nil)
	if err != nil {
		return nil, nop, err
	}
	return src, nop, nil
}
