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

	"gonum.org/v1/gonum/floats"
)

// molarVolume is the volume occupied by one mole of an ideal gas at
// 25 °C and 1 atm [mL/mol].
const molarVolume = 24450.

// MicromolarToPPB converts a gas-phase concentration from µM to parts
// per billion by volume:
//
//	ppb = µM * 1e-6 * 1000 * 24450 * 1000
//
// (µM → mol/mL, times molar volume → volume fraction in ppm after the
// first factor of 1000, then ppm → ppb).
func MicromolarToPPB(uM float64) float64 {
	return uM * 1e-6 * 1000 * molarVolume * 1000
}

// PPBToMicromolar is the inverse of MicromolarToPPB.
func PPBToMicromolar(ppb float64) float64 {
	return ppb / (1e-6 * 1000 * molarVolume * 1000)
}

// BreathSeries is the exhaled-breath reporter signal sampled on the
// simulation's output grid. It is the quantity handed to the plotting
// and persistence collaborators.
type BreathSeries struct {
	// Name is the artifact name the series is exported under,
	// e.g. "PFC1_breath_signal".
	Name string

	T   []float64 // sample times [min]
	PPB []float64 // breath reporter concentration [ppb]
}

// Len returns the number of samples in the series.
func (b *BreathSeries) Len() int { return len(b.T) }

// Peak returns the time [min] and value [ppb] of the largest sample.
func (b *BreathSeries) Peak() (t, ppb float64) {
	i := floats.MaxIdx(b.PPB)
	return b.T[i], b.PPB[i]
}

// breathSignal converts the chamber-compartment trajectory to a
// BreathSeries named after the reporter. The sampled states are read,
// never modified.
func breathSignal(reporter Reporter, ts []float64, conc [][]float64) (*BreathSeries, error) {
	if len(conc) != len(ts) {
		return nil, fmt.Errorf("breathpk: trajectory has %d samples but grid has %d", len(conc), len(ts))
	}
	b := &BreathSeries{
		Name: string(reporter) + "_breath_signal",
		T:    append([]float64(nil), ts...),
		PPB:  make([]float64, len(ts)),
	}
	for i, c := range conc {
		b.PPB[i] = MicromolarToPPB(c[iReporterChamber])
	}
	return b, nil
}
