/*
Copyright © 2019 the BreathPK authors.
This file is part of BreathPK.

BreathPK is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

BreathPK is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with BreathPK.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package breathpkutil wraps the breathpk model in a command-line
// interface: configuration loading, the cobra command tree, and the
// output plumbing.
package breathpkutil

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/exhalomics/breathpk"
)

var (
	configFile string

	// Config holds the settings for the current invocation.
	Config *ConfigData
)

// Root is the main command.
var Root = &cobra.Command{
	Use:   "breathpk",
	Short: "A breath-biopsy pharmacokinetic model.",
	Long: `A compartmental pharmacokinetic model of inhaled, enzyme-activated
volatile-reporter nanosensors, predicting the reporter signal in
exhaled breath.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startup(cmd)
	},
}

func startup(cmd *cobra.Command) error {
	var err error
	Config, err = ReadConfigFile(configFile)
	if err != nil {
		return err
	}

	// Command-line flags take precedence over the configuration file.
	flags := cmd.Flags()
	if flags.Changed("species") {
		Config.Species, _ = flags.GetString("species")
	}
	if flags.Changed("reporter") {
		Config.Reporter, _ = flags.GetString("reporter")
	}
	if flags.Changed("dose") {
		Config.Dose, _ = flags.GetFloat64("dose")
	}
	if flags.Changed("begin") {
		Config.Begin, _ = flags.GetFloat64("begin")
	}
	if flags.Changed("end") {
		Config.End, _ = flags.GetFloat64("end")
	}
	if flags.Changed("step") {
		Config.SampleInterval, _ = flags.GetFloat64("step")
	}
	return Config.Validate()
}

func init() {
	Root.AddCommand(runCmd, reportersCmd, versionCmd)

	Root.PersistentFlags().StringVar(&configFile, "config", "", "configuration file location")

	runCmd.Flags().String("species", "mouse", "species to simulate (mouse or human)")
	runCmd.Flags().String("reporter", "PFC1", "reporter chemistry (PFC1, PFC3, PFC5, or PFC7)")
	runCmd.Flags().Float64("dose", 10, "initial nanosensor dose in the airway lumen [µM]")
	runCmd.Flags().Float64("begin", 0, "simulation start time [min]")
	runCmd.Flags().Float64("end", 120, "simulation end time [min]")
	runCmd.Flags().Float64("step", 0.1, "breath signal sampling interval [min]")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model",
	Long: "Run the breath-signal simulation for the configured species, " +
		"reporter, and dose, and write the results.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(Config)
	},
}

var reportersCmd = &cobra.Command{
	Use:   "reporters",
	Short: "List the characterized species/reporter combinations",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintln(w, "species\treporter\tkcat [1/min]\tKm [µM]\tH tissue:air")
		for _, p := range breathpk.Combinations() {
			fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\n",
				p.Species, p.Reporter, p.Kcat, p.Km, p.HTissueAir)
		}
		return w.Flush()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of BreathPK",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("BreathPK v%s\n", breathpk.Version)
	},
}

// statusInterval is how many samples pass between progress log lines.
const statusInterval = 200

// Run executes a simulation described by cfg and writes the configured
// outputs.
func Run(cfg *ConfigData) error {
	p, err := breathpk.Params(breathpk.Species(cfg.Species), breathpk.Reporter(cfg.Reporter))
	if err != nil {
		return err
	}

	sim := breathpk.NewSimulation(p)
	if cfg.Solver.AbsTol > 0 {
		sim.Solver.AbsTol = cfg.Solver.AbsTol
	}
	if cfg.Solver.RelTol > 0 {
		sim.Solver.RelTol = cfg.Solver.RelTol
	}
	if cfg.Solver.InitialStep > 0 {
		sim.Solver.InitialStep = cfg.Solver.InitialStep
	}
	if cfg.Solver.MaxStep > 0 {
		sim.Solver.MaxStep = cfg.Solver.MaxStep
	}
	if cfg.Solver.MaxSteps > 0 {
		sim.Solver.MaxSteps = cfg.Solver.MaxSteps
	}

	status := make(chan *breathpk.SimulationStatus)
	go func() {
		n := 0
		for st := range status {
			n++
			if n%statusInterval == 0 {
				log.Info(st.String())
			}
		}
	}()

	sim.InitFuncs = []breathpk.SimManipulator{
		breathpk.SampleGrid(cfg.Begin, cfg.End, cfg.SampleInterval),
		breathpk.InitialDose(cfg.Dose),
	}
	sim.RunFuncs = []breathpk.SimManipulator{
		breathpk.Log(status),
		breathpk.Integrate(),
		breathpk.ConvertToBreath(),
	}
	sim.CleanupFuncs = outputFuncs(cfg)

	log.WithFields(log.Fields{
		"species":  p.Species,
		"reporter": p.Reporter,
		"dose_uM":  cfg.Dose,
	}).Info("starting simulation")

	if err := sim.RunAll(); err != nil {
		return err
	}

	tPeak, peak := sim.Breath.Peak()
	log.WithFields(log.Fields{
		"peak_ppb":   peak,
		"peak_t_min": tPeak,
		"steps":      sim.Stats.Steps,
		"rejected":   sim.Stats.Rejected,
		"rhs_evals":  sim.Stats.Evaluations,
	}).Info("simulation complete")
	return nil
}

// outputFuncs builds the cleanup pipeline for the outputs configured
// in cfg.
func outputFuncs(cfg *ConfigData) []breathpk.SimManipulator {
	var funcs []breathpk.SimManipulator
	if cfg.OutputCSV != "" {
		funcs = append(funcs, toFile(cfg.OutputCSV, breathpk.WriteCSV))
	}
	if cfg.OutputGob != "" {
		funcs = append(funcs, toFile(cfg.OutputGob, breathpk.Save))
	}
	if cfg.OutputXLSX != "" {
		funcs = append(funcs, breathpk.WriteXLSX(cfg.OutputXLSX))
	}
	if cfg.OutputPlot != "" {
		funcs = append(funcs, breathpk.PlotPNG(cfg.OutputPlot))
	}
	return funcs
}

// toFile adapts a writer-based output manipulator to a file path.
func toFile(path string, f func(io.Writer) breathpk.SimManipulator) breathpk.SimManipulator {
	return func(s *breathpk.Simulation) error {
		w, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file %q: %v", path, err)
		}
		defer w.Close()
		return f(w)(s)
	}
}
