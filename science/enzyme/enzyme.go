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

// Package enzyme implements saturable Michaelis-Menten enzyme kinetics.
package enzyme

// Rate returns the Michaelis-Menten reaction rate
//
//	v = kcat * e * s / (km + s)
//
// where kcat is the turnover number [1/min], e is the enzyme
// concentration [µM], km is the Michaelis constant [µM], and s is
// the substrate concentration [µM]. The returned rate is in µM/min.
//
// The denominator is km + s, so the rate stays finite for any s > -km;
// small negative substrate values produced by integrator overshoot are
// handled without special cases.
func Rate(kcat, e, km, s float64) float64 {
	return kcat * e * s / (km + s)
}

// RateDerivative returns dv/ds for the Michaelis-Menten rate,
//
//	dv/ds = kcat * e * km / (km + s)²
//
// used when assembling analytic Jacobians of systems that contain
// saturable cleavage terms.
func RateDerivative(kcat, e, km, s float64) float64 {
	d := km + s
	return kcat * e * km / (d * d)
}
