package enzyme

import (
	"math"
	"testing"
)

func TestRate(t *testing.T) {
	const (
		kcat = 60.0
		e    = 0.34
		km   = 10.0
	)
	if got := Rate(kcat, e, km, 0); got != 0 {
		t.Errorf("rate at zero substrate = %g, want 0", got)
	}
	// Half of the maximum rate at s = Km.
	if got, want := Rate(kcat, e, km, km), kcat*e/2; math.Abs(got-want) > 1e-12 {
		t.Errorf("rate at s=Km = %g, want %g", got, want)
	}
	// Saturation: the rate approaches kcat*e for s >> Km.
	if got, want := Rate(kcat, e, km, 1e9*km), kcat*e; math.Abs(got-want) > 1e-6*want {
		t.Errorf("saturated rate = %g, want %g", got, want)
	}
	// Slightly negative substrate values stay evaluable.
	if got := Rate(kcat, e, km, -1e-12); math.IsNaN(got) || math.IsInf(got, 0) {
		t.Errorf("rate at small negative substrate = %g", got)
	}
}

func TestRateDerivative(t *testing.T) {
	const (
		kcat = 28.0
		e    = 2.5
		km   = 21.0
	)
	for _, s := range []float64{0, 0.1, 5, 21, 300} {
		const h = 1e-6
		numeric := (Rate(kcat, e, km, s+h) - Rate(kcat, e, km, s-h)) / (2 * h)
		analytic := RateDerivative(kcat, e, km, s)
		if math.Abs(numeric-analytic) > 1e-5*(math.Abs(analytic)+1) {
			t.Errorf("s=%g: dv/ds analytic=%g numeric=%g", s, analytic, numeric)
		}
	}
}
