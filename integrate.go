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

package breathpk

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DerivFunc evaluates the right-hand side of an autonomous ODE system,
// writing dy/dt at time t and state y into dydt.
type DerivFunc func(t float64, y, dydt []float64)

// JacobianFunc writes ∂(dy/dt)/∂y at time t and state y into dst.
type JacobianFunc func(t float64, y []float64, dst *mat.Dense)

// SolverConfig holds the error-control settings for the stiff
// integrator. Zero-valued fields are replaced by defaults.
type SolverConfig struct {
	// InitialStep is the size of the first integration step [min].
	InitialStep float64

	// MinStep is the smallest internal step the solver may take [min].
	// Integration fails if error control pushes the step below it.
	MinStep float64

	// MaxStep, if > 0, caps the internal step size [min].
	MaxStep float64

	// AbsTol and RelTol are the absolute [µM] and relative error
	// tolerances applied per component on every internal step.
	AbsTol, RelTol float64

	// MaxSteps bounds the total number of accepted internal steps.
	MaxSteps int

	// Progress, if non-nil, is called after each sample point is
	// reached, with the running statistics and the model time.
	Progress func(stats Statistics, t float64)
}

// DefaultSolverConfig returns the solver settings used for the
// published breath-signal figures: tolerances tight enough to resolve
// the fast reporter-exchange dynamics on top of the slow nanosensor
// clearance.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		InitialStep: 1e-6,
		MinStep:     1e-13,
		AbsTol:      1e-10,
		RelTol:      1e-10,
		MaxSteps:    10000000,
	}
}

func (c SolverConfig) withDefaults() SolverConfig {
	def := DefaultSolverConfig()
	if c.InitialStep <= 0 {
		c.InitialStep = def.InitialStep
	}
	if c.MinStep <= 0 {
		c.MinStep = def.MinStep
	}
	if c.AbsTol <= 0 {
		c.AbsTol = def.AbsTol
	}
	if c.RelTol <= 0 {
		c.RelTol = def.RelTol
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = def.MaxSteps
	}
	return c
}

// Statistics reports the work performed by a solver run.
type Statistics struct {
	Steps         int     // accepted internal steps
	Rejected      int     // steps rejected by error control
	Evaluations   int     // right-hand-side evaluations
	JacobianEvals int     // Jacobian evaluations (or finite-difference builds)
	LastStep      float64 // size of the last accepted step [min]
}

// IntegrationError indicates that the stiff solver could not complete
// the requested time span within its step-size and step-count budget.
// It is fatal: the caller receives no partial trajectory.
type IntegrationError struct {
	Time   float64 // model time at failure [min]
	Step   float64 // step size at failure [min]
	Steps  int     // accepted steps before failure
	Reason string
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("breathpk: integration failed at t=%g min after %d steps (h=%g): %s",
		e.Time, e.Steps, e.Step, e.Reason)
}

// Rosenbrock(2,3) method constants (Shampine & Reichelt). The pair is
// L-stable, so widely separated rate constants do not force the step
// size down once the fast transients have decayed.
var (
	rosD   = 1 / (2 + math.Sqrt2)
	rosE32 = 6 + math.Sqrt2
)

// Solve integrates the autonomous system f from state y0 over the
// sample grid ts, which must be strictly increasing. The returned
// trajectory has one state vector per element of ts, with the first
// entry a copy of y0. Internal steps are chosen adaptively; the sample
// grid only determines where the trajectory is reported.
//
// jac may be nil, in which case the Jacobian needed by the implicit
// stages is built by forward finite differences.
func Solve(f DerivFunc, jac JacobianFunc, y0 []float64, ts []float64, cfg SolverConfig) ([][]float64, Statistics, error) {
	var stats Statistics
	cfg = cfg.withDefaults()

	if len(ts) < 2 {
		return nil, stats, fmt.Errorf("breathpk: sample grid must contain at least start and stop times, got %d points", len(ts))
	}
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return nil, stats, fmt.Errorf("breathpk: sample grid must be strictly increasing (ts[%d]=%g, ts[%d]=%g)",
				i-1, ts[i-1], i, ts[i])
		}
	}

	n := len(y0)
	out := make([][]float64, len(ts))
	out[0] = append([]float64(nil), y0...)

	y := append([]float64(nil), y0...)
	ynew := make([]float64, n)
	f0 := make([]float64, n)
	f1 := make([]float64, n)
	f2 := make([]float64, n)
	ytmp := make([]float64, n)
	ftmp := make([]float64, n)
	k1 := make([]float64, n)
	k2 := make([]float64, n)
	k3 := make([]float64, n)
	rhs := make([]float64, n)

	J := mat.NewDense(n, n, nil)
	W := mat.NewDense(n, n, nil)
	var lu mat.LU
	rhsVec := mat.NewVecDense(n, rhs)
	solVec := mat.NewVecDense(n, nil)

	// solve computes dst = W⁻¹ rhs using the current factorization.
	solve := func(dst []float64) error {
		if err := lu.SolveVecTo(solVec, false, rhsVec); err != nil {
			return err
		}
		copy(dst, solVec.RawVector().Data)
		return nil
	}

	t := ts[0]
	h := cfg.InitialStep
	f(t, y, f0)
	stats.Evaluations++

	for i := 1; i < len(ts); i++ {
		target := ts[i]
		for t < target {
			if stats.Steps >= cfg.MaxSteps {
				return nil, stats, &IntegrationError{Time: t, Step: h, Steps: stats.Steps,
					Reason: fmt.Sprintf("step budget of %d exceeded", cfg.MaxSteps)}
			}
			minStep := math.Max(cfg.MinStep, 16*machEps*math.Abs(t))
			if h < minStep {
				return nil, stats, &IntegrationError{Time: t, Step: h, Steps: stats.Steps,
					Reason: "step size underflow: error control cannot meet the requested tolerances"}
			}
			if cfg.MaxStep > 0 && h > cfg.MaxStep {
				h = cfg.MaxStep
			}
			hTry := h
			lastStep := false
			if t+hTry >= target {
				hTry = target - t
				lastStep = true
			}

			// W = I - h*d*J, factorized once per attempt.
			if jac != nil {
				jac(t, y, J)
			} else {
				stats.Evaluations += numJacobian(f, t, y, f0, J, ytmp, ftmp)
			}
			stats.JacobianEvals++
			hd := hTry * rosD
			for r := 0; r < n; r++ {
				for c := 0; c < n; c++ {
					v := -hd * J.At(r, c)
					if r == c {
						v++
					}
					W.Set(r, c, v)
				}
			}
			lu.Factorize(W)

			// Stage 1.
			copy(rhs, f0)
			if err := solve(k1); err != nil {
				stats.Rejected++
				h = hTry / 2
				continue
			}

			// Stage 2.
			for j := 0; j < n; j++ {
				ytmp[j] = y[j] + 0.5*hTry*k1[j]
			}
			f(t+0.5*hTry, ytmp, f1)
			stats.Evaluations++
			for j := 0; j < n; j++ {
				rhs[j] = f1[j] - k1[j]
			}
			if err := solve(k2); err != nil {
				stats.Rejected++
				h = hTry / 2
				continue
			}
			for j := 0; j < n; j++ {
				k2[j] += k1[j]
				ynew[j] = y[j] + hTry*k2[j]
			}

			// Stage 3, used only for the embedded error estimate.
			f(t+hTry, ynew, f2)
			stats.Evaluations++
			for j := 0; j < n; j++ {
				rhs[j] = f2[j] - rosE32*(k2[j]-f1[j]) - 2*(k1[j]-f0[j])
			}
			if err := solve(k3); err != nil {
				stats.Rejected++
				h = hTry / 2
				continue
			}

			// Weighted max-norm of the local error estimate.
			errNorm := 0.
			for j := 0; j < n; j++ {
				e := hTry / 6 * (k1[j] - 2*k2[j] + k3[j])
				w := cfg.AbsTol + cfg.RelTol*math.Max(math.Abs(y[j]), math.Abs(ynew[j]))
				errNorm = math.Max(errNorm, math.Abs(e/w))
			}

			if !(errNorm <= 1) { // also catches NaN
				stats.Rejected++
				fac := 0.5
				if !math.IsNaN(errNorm) && !math.IsInf(errNorm, 0) {
					fac = math.Max(0.1, 0.9*math.Pow(errNorm, -1./3.))
				}
				h = hTry * fac
				continue
			}

			// Accept.
			stats.Steps++
			stats.LastStep = hTry
			if lastStep {
				t = target
			} else {
				t += hTry
			}
			copy(y, ynew)
			copy(f0, f2)

			fac := 5.
			if errNorm > 0 {
				fac = math.Min(5, 0.9*math.Pow(errNorm, -1./3.))
			}
			h = hTry * math.Max(fac, 1e-2)
		}
		out[i] = append([]float64(nil), y...)
		if cfg.Progress != nil {
			cfg.Progress(stats, t)
		}
	}
	return out, stats, nil
}

const machEps = 2.220446049250313e-16

// numJacobian builds a forward-difference approximation of the
// Jacobian at (t, y), given f0 = f(t, y). It returns the number of
// right-hand-side evaluations used.
func numJacobian(f DerivFunc, t float64, y, f0 []float64, dst *mat.Dense, ytmp, ftmp []float64) int {
	n := len(y)
	sqrtEps := math.Sqrt(machEps)
	for j := 0; j < n; j++ {
		delta := sqrtEps * math.Max(math.Abs(y[j]), 1)
		copy(ytmp, y)
		ytmp[j] += delta
		f(t, ytmp, ftmp)
		for r := 0; r < n; r++ {
			dst.Set(r, j, (ftmp[r]-f0[r])/delta)
		}
	}
	return n
}
