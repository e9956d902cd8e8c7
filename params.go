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

import "fmt"

// Species identifies the organism whose respiratory physiology is
// being simulated.
type Species string

// Supported species.
const (
	Mouse Species = "mouse"
	Human Species = "human"
)

// Reporter identifies the volatile reporter chemistry carried by the
// nanosensor. The four candidates are perfluorocarbon ethers of
// increasing chain length; longer chains are cleaved more slowly and
// partition more strongly into tissue.
type Reporter string

// Supported reporter chemistries.
const (
	PFC1 Reporter = "PFC1"
	PFC3 Reporter = "PFC3"
	PFC5 Reporter = "PFC5"
	PFC7 Reporter = "PFC7"
)

// ParameterSet holds the physiological, transport, and enzymatic
// constants for one species/reporter combination. It is built once by
// Params at simulation setup and is never modified afterward; the
// derived fields (Qmc, NSKcat, NSKm, HTissueBlood) are filled in by the
// factory and must not be set independently.
//
// Units: time in minutes, concentrations in µM, volumes in mL.
type ParameterSet struct {
	Species  Species
	Reporter Reporter

	Qm  float64 `desc:"Minute ventilation" units:"mL/min"`
	Vl  float64 `desc:"Tidal lung volume" units:"mL"`
	Qmc float64 `desc:"Breathing-rate-corrected ventilation (Qm/Vl)" units:"1/min"`

	KNanoTissue float64 `desc:"Nanosensor lumen-tissue exchange rate" units:"1/min"`
	KNanoPhago  float64 `desc:"Nanosensor phagocytic clearance rate" units:"1/min"`

	KReporterTissue float64 `desc:"Reporter tissue-lumen exchange rate" units:"1/min"`
	KReporterClear  float64 `desc:"Reporter clearance rate into blood" units:"1/min"`

	NE   float64 `desc:"Neutrophil elastase concentration" units:"µM"`
	Kcat float64 `desc:"Elastase turnover number for this reporter" units:"1/min"`
	Km   float64 `desc:"Elastase Michaelis constant for this reporter" units:"µM"`

	NSE    float64 `desc:"Nonspecific protease concentration" units:"µM"`
	NSKcat float64 `desc:"Nonspecific turnover number (Kcat/60)" units:"1/min"`
	NSKm   float64 `desc:"Nonspecific Michaelis constant (Km*35)" units:"µM"`

	HBloodAir    float64 `desc:"Blood:air partition coefficient" units:"-"`
	HTissueAir   float64 `desc:"Tissue:air partition coefficient" units:"-"`
	HTissueBlood float64 `desc:"Tissue:blood partition coefficient (HTissueAir/HBloodAir)" units:"-"`
}

// ConfigurationError indicates that no parameter set is defined for the
// requested species/reporter combination. It is returned before any
// integration work starts.
type ConfigurationError struct {
	Species  Species
	Reporter Reporter
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("breathpk: no parameter set defined for species %q with reporter %q",
		e.Species, e.Reporter)
}

// primaries holds the measured (non-derived) constants for every
// combination that has been characterized. Human kinetics have only
// been worked up for PFC1; the other three reporters are deliberately
// absent rather than extrapolated from mouse data.
var primaries = map[Species]map[Reporter]ParameterSet{
	Mouse: {
		PFC1: {
			Qm: 24, Vl: 0.15,
			KNanoTissue: 0.05, KNanoPhago: 6.6e-4,
			KReporterTissue: 30.8, KReporterClear: 3.2,
			NE: 0.34, Kcat: 60, Km: 10,
			NSE:       2.5,
			HBloodAir: 0.066, HTissueAir: 0.12,
		},
		PFC3: {
			Qm: 24, Vl: 0.15,
			KNanoTissue: 0.05, KNanoPhago: 6.6e-4,
			KReporterTissue: 30.8, KReporterClear: 3.2,
			NE: 0.34, Kcat: 45, Km: 14,
			NSE:       2.5,
			HBloodAir: 0.085, HTissueAir: 0.19,
		},
		PFC5: {
			Qm: 24, Vl: 0.15,
			KNanoTissue: 0.05, KNanoPhago: 6.6e-4,
			KReporterTissue: 30.8, KReporterClear: 3.2,
			NE: 0.34, Kcat: 28, Km: 21,
			NSE:       2.5,
			HBloodAir: 0.11, HTissueAir: 0.27,
		},
		PFC7: {
			Qm: 24, Vl: 0.15,
			KNanoTissue: 0.05, KNanoPhago: 6.6e-4,
			KReporterTissue: 30.8, KReporterClear: 3.2,
			NE: 0.34, Kcat: 16, Km: 33,
			NSE:       2.5,
			HBloodAir: 0.15, HTissueAir: 0.41,
		},
	},
	Human: {
		PFC1: {
			Qm: 6000, Vl: 500,
			KNanoTissue: 0.023, KNanoPhago: 6.6e-4,
			KReporterTissue: 30.8, KReporterClear: 3.2,
			NE: 0.17, Kcat: 60, Km: 10,
			NSE:       2.5,
			HBloodAir: 0.066, HTissueAir: 0.12,
		},
	},
}

// Params returns the constant bundle for the given species and
// reporter chemistry, with all derived quantities filled in. It
// returns a *ConfigurationError if the combination has not been
// characterized.
func Params(species Species, reporter Reporter) (*ParameterSet, error) {
	byReporter, ok := primaries[species]
	if !ok {
		return nil, &ConfigurationError{Species: species, Reporter: reporter}
	}
	p, ok := byReporter[reporter]
	if !ok {
		return nil, &ConfigurationError{Species: species, Reporter: reporter}
	}
	p.Species = species
	p.Reporter = reporter
	p.Qmc = p.Qm / p.Vl
	p.NSKcat = p.Kcat / 60
	p.NSKm = p.Km * 35
	p.HTissueBlood = p.HTissueAir / p.HBloodAir
	return &p, nil
}

// Combinations returns all (species, reporter) pairs that Params
// accepts, in a stable order.
func Combinations() []*ParameterSet {
	var out []*ParameterSet
	for _, s := range []Species{Mouse, Human} {
		for _, r := range []Reporter{PFC1, PFC3, PFC5, PFC7} {
			if p, err := Params(s, r); err == nil {
				out = append(out, p)
			}
		}
	}
	return out
}
