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

// Package breathpk models the pharmacokinetics of inhaled,
// enzyme-activated volatile-reporter nanosensors in the respiratory
// tract, predicting the reporter concentration exhaled into a
// breath-collection chamber over time.
//
// A simulation is assembled from manipulator functions that are run in
// three phases (initialization, running, and cleanup), so that runs
// with different dosing, solver settings, or outputs can be composed
// from the same parts.
package breathpk

import (
	"fmt"
	"time"
)

// Version is the version of this module.
const Version = "1.2.0"

// A Simulation holds the state of one model run: the parameter set,
// dosing and sampling settings, and the results as they are produced.
// Each run is an independent value; nothing is shared between runs.
type Simulation struct {
	// Params is the species/reporter constant bundle, fixed for the
	// whole run.
	Params *ParameterSet

	// Solver holds the stiff-integrator settings.
	Solver SolverConfig

	// Begin and End delimit the simulated time span [min], sampled
	// every SampleInterval minutes.
	Begin, End, SampleInterval float64

	// Dose is the initial nanosensor concentration in the airway
	// lumen [µM]; all other compartments start at zero.
	Dose float64

	// InitFuncs are run (in order) before the rest of the
	// simulation, RunFuncs are run during the simulation, and
	// CleanupFuncs are run after the simulation is finished.
	InitFuncs, RunFuncs, CleanupFuncs []SimManipulator

	// T and Conc are the sampled trajectory: T[i] is the i-th sample
	// time [min] and Conc[i] the corresponding state vector [µM],
	// filled in by Integrate.
	T    []float64
	Conc [][]float64

	// Breath is the exhaled-breath signal, filled in by
	// ConvertToBreath.
	Breath *BreathSeries

	// Stats reports the work the integrator performed.
	Stats Statistics

	initial   []float64
	startTime time.Time
}

// SimManipulator is a function that updates a simulation, for example
// by setting the initial dose, integrating the model equations, or
// writing results to a file.
type SimManipulator func(s *Simulation) error

// NewSimulation returns a simulation of the given parameter set with
// the default dosing and sampling used for the published figures:
// 10 µM nanosensor in the lumen at t=0, sampled every 0.1 min from 0
// to 120 min.
func NewSimulation(p *ParameterSet) *Simulation {
	return &Simulation{
		Params:         p,
		Solver:         DefaultSolverConfig(),
		Begin:          0,
		End:            120,
		SampleInterval: 0.1,
		Dose:           10,
	}
}

// Init runs the initialization functions.
func (s *Simulation) Init() error {
	s.startTime = time.Now()
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Run runs the model functions.
func (s *Simulation) Run() error {
	for _, f := range s.RunFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Cleanup runs the cleanup functions.
func (s *Simulation) Cleanup() error {
	for _, f := range s.CleanupFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// RunAll runs the three simulation phases in order.
func (s *Simulation) RunAll() error {
	if err := s.Init(); err != nil {
		return err
	}
	if err := s.Run(); err != nil {
		return err
	}
	return s.Cleanup()
}

// setup validates the sampling settings and builds the sample grid and
// initial state if they have not been built yet.
func (s *Simulation) setup() error {
	if s.T != nil {
		return nil
	}
	if s.Params == nil {
		return fmt.Errorf("breathpk: simulation has no parameter set")
	}
	if s.Dose < 0 {
		return fmt.Errorf("breathpk: initial dose must be non-negative, got %g µM", s.Dose)
	}
	if s.SampleInterval <= 0 {
		return fmt.Errorf("breathpk: sample interval must be positive, got %g min", s.SampleInterval)
	}
	if s.End <= s.Begin {
		return fmt.Errorf("breathpk: simulation end (%g min) must be after begin (%g min)", s.End, s.Begin)
	}
	n := int((s.End-s.Begin)/s.SampleInterval+0.5) + 1
	s.T = make([]float64, n)
	for i := range s.T {
		s.T[i] = s.Begin + float64(i)*s.SampleInterval
	}
	s.T[n-1] = s.End
	s.initial = make([]float64, nCompartments)
	s.initial[iNanoLumen] = s.Dose
	return nil
}

// InitialDose returns a function that sets the nanosensor dose
// delivered to the airway lumen at t=0 [µM].
func InitialDose(dose float64) SimManipulator {
	return func(s *Simulation) error {
		if dose < 0 {
			return fmt.Errorf("breathpk: initial dose must be non-negative, got %g µM", dose)
		}
		s.Dose = dose
		return nil
	}
}

// SampleGrid returns a function that sets the simulated time span
// [min] and the interval at which the trajectory is reported [min].
// The solver chooses its internal steps independently of the grid.
func SampleGrid(begin, end, interval float64) SimManipulator {
	return func(s *Simulation) error {
		s.Begin, s.End, s.SampleInterval = begin, end, interval
		return nil
	}
}

// Integrate returns a function that advances the compartment model
// over the sample grid with the stiff solver, storing the sampled
// trajectory in s.T and s.Conc. Solver failure aborts the run with an
// *IntegrationError; no partial trajectory is kept.
func Integrate() SimManipulator {
	return func(s *Simulation) error {
		if err := s.setup(); err != nil {
			return err
		}
		conc, stats, err := Solve(s.Params.Derivative, s.Params.Jacobian, s.initial, s.T, s.Solver)
		s.Stats = stats
		if err != nil {
			return err
		}
		s.Conc = conc
		return nil
	}
}

// ConvertToBreath returns a function that converts the sampled chamber
// concentration to the exhaled-breath signal in ppb.
func ConvertToBreath() SimManipulator {
	return func(s *Simulation) error {
		if s.Conc == nil {
			return fmt.Errorf("breathpk: no trajectory to convert; run Integrate first")
		}
		b, err := breathSignal(s.Params.Reporter, s.T, s.Conc)
		if err != nil {
			return err
		}
		s.Breath = b
		return nil
	}
}

// SimulationStatus holds information about the progress of a running
// simulation.
type SimulationStatus struct {
	Walltime time.Duration // elapsed wall-clock time
	T        float64       // model time reached [min]
	Sample   int           // samples reported so far
	Samples  int           // total samples requested
	StepSize float64       // last internal step size [min]
	Steps    int           // accepted internal steps so far
}

func (s *SimulationStatus) String() string {
	return fmt.Sprintf("sample %d/%d  t=%-6.4g min  steps=%-8d h=%.3g min  walltime=%.3gs",
		s.Sample, s.Samples, s.T, s.Steps, s.StepSize, s.Walltime.Seconds())
}

// Log returns a function that causes the simulation to report its
// progress to c as it integrates. The channel is closed when
// integration ends, so a receiver draining it in a separate goroutine
// terminates cleanly.
func Log(c chan *SimulationStatus) SimManipulator {
	return func(s *Simulation) error {
		if err := s.setup(); err != nil {
			return err
		}
		samples := 0
		total := len(s.T)
		s.Solver.Progress = func(stats Statistics, t float64) {
			samples++
			c <- &SimulationStatus{
				Walltime: time.Since(s.startTime),
				T:        t,
				Sample:   samples,
				Samples:  total,
				StepSize: stats.LastStep,
				Steps:    stats.Steps,
			}
			if samples == total-1 {
				close(c)
			}
		}
		return nil
	}
}
