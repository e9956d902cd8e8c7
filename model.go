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
	"gonum.org/v1/gonum/mat"

	"github.com/exhalomics/breathpk/science/enzyme"
)

// Indices of the model compartments in state vectors.
const (
	iNanoLumen = iota // nanosensor in airway lumen
	iNanoTissue
	iReporterTissue
	iReporterLumen // gas phase
	iReporterChamber
	nCompartments
)

// compartmentNames are the names of the model compartments, in state
// vector order. All concentrations are in µM.
var compartmentNames = []string{
	"NanosensorLumen", "NanosensorTissue",
	"ReporterTissue", "ReporterLumen", "ReporterChamber",
}

// Derivative computes the instantaneous rate of change of each
// compartment concentration [µM/min] for state c at time t [min],
// writing the result into dcdt. It is a pure function of its inputs:
// stiff solvers evaluate it repeatedly at trial times and states, in
// no particular order, and rely on it having no memory of prior calls.
//
// The nanosensor diffuses between lumen and tissue and is removed from
// tissue by phagocytosis and by two saturable cleavage reactions
// (specific elastase and a nonspecific protease pool). Each cleavage
// event frees one reporter molecule into tissue. The freed reporter
// partitions between tissue and lumen air (the tissue concentration is
// rescaled by HTissueAir before the diffusive comparison), is cleared
// from tissue into blood, and is carried from lumen to the collection
// chamber by ventilation.
func (p *ParameterSet) Derivative(t float64, c, dcdt []float64) {
	_ = t // the system is autonomous

	nanoFlux := p.KNanoTissue * (c[iNanoLumen] - c[iNanoTissue])
	cleavage := enzyme.Rate(p.Kcat, p.NE, p.Km, c[iNanoTissue]) +
		enzyme.Rate(p.NSKcat, p.NSE, p.NSKm, c[iNanoTissue])
	reporterFlux := p.KReporterTissue * (c[iReporterTissue]/p.HTissueAir - c[iReporterLumen])
	exhaleFlux := p.Qmc * (c[iReporterLumen] - c[iReporterChamber])

	dcdt[iNanoLumen] = -nanoFlux
	dcdt[iNanoTissue] = nanoFlux - p.KNanoPhago*c[iNanoTissue] - cleavage
	dcdt[iReporterTissue] = -reporterFlux - p.KReporterClear*c[iReporterTissue]/p.HTissueBlood + cleavage
	dcdt[iReporterLumen] = reporterFlux - exhaleFlux
	dcdt[iReporterChamber] = exhaleFlux
}

// Jacobian writes ∂(dc/dt)/∂c for state c at time t into the
// nCompartments×nCompartments matrix dst. Supplying the analytic
// Jacobian saves the stiff solver a round of finite-difference
// derivative evaluations on every step.
func (p *ParameterSet) Jacobian(t float64, c []float64, dst *mat.Dense) {
	_ = t
	dst.Zero()

	dCleavage := enzyme.RateDerivative(p.Kcat, p.NE, p.Km, c[iNanoTissue]) +
		enzyme.RateDerivative(p.NSKcat, p.NSE, p.NSKm, c[iNanoTissue])

	dst.Set(iNanoLumen, iNanoLumen, -p.KNanoTissue)
	dst.Set(iNanoLumen, iNanoTissue, p.KNanoTissue)

	dst.Set(iNanoTissue, iNanoLumen, p.KNanoTissue)
	dst.Set(iNanoTissue, iNanoTissue, -p.KNanoTissue-p.KNanoPhago-dCleavage)

	dst.Set(iReporterTissue, iNanoTissue, dCleavage)
	dst.Set(iReporterTissue, iReporterTissue,
		-p.KReporterTissue/p.HTissueAir-p.KReporterClear/p.HTissueBlood)
	dst.Set(iReporterTissue, iReporterLumen, p.KReporterTissue)

	dst.Set(iReporterLumen, iReporterTissue, p.KReporterTissue/p.HTissueAir)
	dst.Set(iReporterLumen, iReporterLumen, -p.KReporterTissue-p.Qmc)
	dst.Set(iReporterLumen, iReporterChamber, p.Qmc)

	dst.Set(iReporterChamber, iReporterLumen, p.Qmc)
	dst.Set(iReporterChamber, iReporterChamber, -p.Qmc)
}
