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

// Package geofluidutil holds the command-line interface and the
// configuration handling of geofluid.
package geofluidutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	geofluid "github.com/miniufo/MyPackage-sub003"
	"github.com/miniufo/MyPackage-sub003/cdfio"
	"github.com/miniufo/MyPackage-sub003/elliptic"
	"github.com/miniufo/MyPackage-sub003/phys"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

type cfgOption struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []cfgOption

// variableOptions maps configuration names to the inversion inputs they set.
var variableOptions = []struct {
	name, usage string
	dst         func(*geofluid.VarNames) *string
}{
	{"Unknown", "holds the first guess, with the boundary values on its edges.",
		func(v *geofluid.VarNames) *string { return &v.Unknown }},
	{"Forcing", "is the right-hand side of the equation.",
		func(v *geofluid.VarNames) *string { return &v.Forcing }},
	{"Stability", "is the static stability.",
		func(v *geofluid.VarNames) *string { return &v.Stability }},
	{"Inertial", "is the inertial stability.",
		func(v *geofluid.VarNames) *string { return &v.Inertial }},
	{"Baroclinicity", "is the baroclinicity, which gives the cross term.",
		func(v *geofluid.VarNames) *string { return &v.Baroclinicity }},
	{"AngularMomentum", "is the absolute angular momentum, used by the cylindrical system.",
		func(v *geofluid.VarNames) *string { return &v.AngularMomentum }},
	{"SpecificVolume", "is the specific volume, used by the cylindrical system.",
		func(v *geofluid.VarNames) *string { return &v.SpecificVolume }},
	{"Temperature", "is the temperature on pressure levels, giving the specific volume when that is not set.",
		func(v *geofluid.VarNames) *string { return &v.Temperature }},
	{"RadialFlux", "is the radial flux used to seed the boundaries.",
		func(v *geofluid.VarNames) *string { return &v.RadialFlux }},
	{"VerticalFlux", "is the vertical flux used to seed the boundaries.",
		func(v *geofluid.VarNames) *string { return &v.VerticalFlux }},
}

func init() {
	solveFlags := []*pflag.FlagSet{solveCmd.Flags()}

	// Options are the configuration options available to geofluid.
	options = []cfgOption{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Input",
			usage: `
              Input is the path to the netCDF file holding the input variables.
              When it is empty, the variables are computed from the
              Expressions on the grid given by the Grid options.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   solveFlags,
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the netCDF file the solution and
              its fluxes are written to. It can include environment variables.`,
			shorthand:  "o",
			defaultVal: "geofluid.nc",
			flagsets:   solveFlags,
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the log file. The default is the
              OutputFile path with a ".log" extension.`,
			defaultVal: "",
			flagsets:   solveFlags,
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of logged messages: debug,
              info, warning or error.`,
			defaultVal: "info",
			flagsets:   solveFlags,
		},
		{
			name: "ReportFile",
			usage: `
              ReportFile is the path of a TOML summary of the solution
              status of every time slice. No report is written when it is empty.`,
			defaultVal: "",
			flagsets:   solveFlags,
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path of a PNG plot of the convergence history.
              No plot is made when it is empty.`,
			defaultVal: "",
			flagsets:   solveFlags,
		},
		{
			name: "SnapshotFile",
			usage: `
              SnapshotFile is the path of a compressed binary copy of the
              solution that can be reloaded without netCDF. None is written
              when it is empty.`,
			defaultVal: "",
			flagsets:   solveFlags,
		},
		{
			name: "System",
			usage: `
              System is the coordinate system of the equation: cartesian,
              spherical or cylindrical.`,
			shorthand:  "s",
			defaultVal: "cartesian",
			flagsets:   solveFlags,
		},
		{
			name: "RefLatitude",
			usage: `
              RefLatitude is the latitude [degrees] of the Coriolis parameter
              used by the cartesian system when no inertial stability is given.`,
			defaultVal: 45.0,
			flagsets:   solveFlags,
		},
		{
			name: "Laplace",
			usage: `
              Laplace sets all cartesian coefficients to one, so that the
              plain Poisson equation is solved.`,
			defaultVal: false,
			flagsets:   solveFlags,
		},
		{
			name: "SeedBoundaries",
			usage: `
              SeedBoundaries sets the boundary values by integrating the
              radial and vertical fluxes along the edges before solving.`,
			defaultVal: false,
			flagsets:   solveFlags,
		},
		{
			name: "Solver.Tolerance",
			usage: `
              Solver.Tolerance is the relative error at which relaxation stops.`,
			defaultVal: 1e-5,
			flagsets:   solveFlags,
		},
		{
			name: "Solver.MaxIterations",
			usage: `
              Solver.MaxIterations is the maximum number of sweeps per time slice.`,
			defaultVal: elliptic.DefaultMaxIterations,
			flagsets:   solveFlags,
		},
		{
			name: "Solver.Workers",
			usage: `
              Solver.Workers is the number of time slices solved concurrently.`,
			defaultVal: 1,
			flagsets:   solveFlags,
		},
		{
			name: "Solver.Omega",
			usage: `
              Solver.Omega is the over-relaxation factor. Zero selects the
              optimal factor for the grid size.`,
			defaultVal: 0.0,
			flagsets:   solveFlags,
		},
		{
			name: "Constants.Gravity",
			usage: `
              Constants.Gravity is the gravitational acceleration [m s-2].`,
			defaultVal: phys.Default.Gravity,
			flagsets:   solveFlags,
		},
		{
			name: "Constants.Omega",
			usage: `
              Constants.Omega is the planetary rotation rate [s-1].`,
			defaultVal: phys.Default.Omega,
			flagsets:   solveFlags,
		},
		{
			name: "Constants.EarthRadius",
			usage: `
              Constants.EarthRadius is the planetary radius [m].`,
			defaultVal: phys.Default.EarthRadius,
			flagsets:   solveFlags,
		},
		{
			name: "Constants.Rd",
			usage: `
              Constants.Rd is the gas constant of dry air [J kg-1 K-1].`,
			defaultVal: phys.Default.Rd,
			flagsets:   solveFlags,
		},
		{
			name: "Expressions",
			usage: `
              Expressions gives an analytic expression of the grid
              coordinates for each input variable, used when Input is empty.
              Variable names are stored in lower case. It is a JSON object
              on the command line, for example '{"psi":"y*z"}'.`,
			defaultVal: map[string]string{},
			flagsets:   solveFlags,
		},
		{
			name: "Grid.Name",
			usage: `
              Grid.Name is the title of the analytic grid.`,
			defaultVal: "expr",
			flagsets:   solveFlags,
		},
		{
			name: "Grid.Undef",
			usage: `
              Grid.Undef is the undefined value of the analytic grid.`,
			defaultVal: 0.0,
			flagsets:   solveFlags,
		},
	}

	names := cdfio.DefaultAxisNames
	for _, a := range []struct{ key, dim string }{
		{"T", names.T}, {"Z", names.Z}, {"Y", names.Y}, {"X", names.X},
	} {
		options = append(options,
			cfgOption{
				name: "Dims." + a.key,
				usage: fmt.Sprintf(`
              Dims.%s is the name of the %s dimension of the Input file
              and of the output.`, a.key, a.dim),
				defaultVal: a.dim,
				flagsets:   solveFlags,
			},
			cfgOption{
				name: "Grid." + a.key + ".Start",
				usage: fmt.Sprintf(`
              Grid.%s.Start is the first %s coordinate of the analytic grid.`, a.key, a.dim),
				defaultVal: 0.0,
				flagsets:   solveFlags,
			},
			cfgOption{
				name: "Grid." + a.key + ".Step",
				usage: fmt.Sprintf(`
              Grid.%s.Step is the %s spacing of the analytic grid.`, a.key, a.dim),
				defaultVal: 1.0,
				flagsets:   solveFlags,
			},
			cfgOption{
				name: "Grid." + a.key + ".N",
				usage: fmt.Sprintf(`
              Grid.%s.N is the number of %s points of the analytic grid.`, a.key, a.dim),
				defaultVal: 1,
				flagsets:   solveFlags,
			},
		)
	}
	for _, v := range variableOptions {
		options = append(options, cfgOption{
			name: "Variables." + v.name,
			usage: fmt.Sprintf(`
              Variables.%s names the input variable that %s`, v.name, v.usage),
			defaultVal: "",
			flagsets:   solveFlags,
		})
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOFLUID")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, v, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, v, option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, v, option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, v, option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, v, option.usage)
				} else {
					set.IntP(option.name, option.shorthand, v, option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, v, option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, v, option.usage)
				}
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(v)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(solveCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geofluid: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geofluid",
	Short: "An elliptic equation inversion toolkit.",
	Long: `geofluid solves second-order elliptic equations with variable
coefficients, such as the Eliassen balanced-vortex equation, on gridded
atmospheric and oceanic data by successive over-relaxation.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOFLUID_var' where 'var' is the
name of the variable to be set. File paths are allowed to contain
environment variables within them.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of geofluid.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("geofluid v%s\n", geofluid.Version)
	},
	DisableAutoGenTag: true,
}

// solveCmd reads the inputs, solves the equation and writes the results.
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve an elliptic equation.",
	Long: `solve builds the coefficients of the chosen coordinate system from the
input variables, inverts the elliptic operator for every time slice and writes
the solution and its fluxes to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Solve(cmd.OutOrStdout(), Cfg)
	},
	DisableAutoGenTag: true,
}
