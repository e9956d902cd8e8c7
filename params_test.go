package breathpk

import (
	"errors"
	"math"
	"testing"
)

func TestDerivedQuantities(t *testing.T) {
	const tol = 1e-15
	for _, p := range Combinations() {
		if p.Qm <= 0 || p.Vl <= 0 {
			t.Errorf("%s/%s: non-positive ventilation parameters", p.Species, p.Reporter)
		}
		checks := []struct {
			name     string
			got, want float64
		}{
			{"Qmc", p.Qmc, p.Qm / p.Vl},
			{"NSKcat", p.NSKcat, p.Kcat / 60},
			{"NSKm", p.NSKm, p.Km * 35},
			{"HTissueBlood", p.HTissueBlood, p.HTissueAir / p.HBloodAir},
		}
		for _, c := range checks {
			if diff := math.Abs(c.got - c.want); diff > tol*math.Abs(c.want) {
				t.Errorf("%s/%s: %s = %g, want %g", p.Species, p.Reporter, c.name, c.got, c.want)
			}
		}
	}
}

func TestSupportedCombinations(t *testing.T) {
	combos := Combinations()
	if len(combos) != 5 {
		t.Fatalf("expected 5 characterized combinations, got %d", len(combos))
	}
	for _, r := range []Reporter{PFC1, PFC3, PFC5, PFC7} {
		if _, err := Params(Mouse, r); err != nil {
			t.Errorf("mouse/%s should be supported: %v", r, err)
		}
	}
	if _, err := Params(Human, PFC1); err != nil {
		t.Errorf("human/PFC1 should be supported: %v", err)
	}
}

func TestUnsupportedCombinations(t *testing.T) {
	cases := []struct {
		species  Species
		reporter Reporter
	}{
		{Human, PFC3},
		{Human, PFC5},
		{Human, PFC7},
		{Species("rat"), PFC1},
		{Mouse, Reporter("PFC9")},
	}
	for _, c := range cases {
		p, err := Params(c.species, c.reporter)
		if err == nil {
			t.Errorf("%s/%s: expected an error, got parameter set %+v", c.species, c.reporter, p)
			continue
		}
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			t.Errorf("%s/%s: error has type %T, want *ConfigurationError", c.species, c.reporter, err)
			continue
		}
		if cerr.Species != c.species || cerr.Reporter != c.reporter {
			t.Errorf("error reports %s/%s, want %s/%s", cerr.Species, cerr.Reporter, c.species, c.reporter)
		}
	}
}

// Params must hand out independent copies: mutating one returned
// bundle must not leak into later runs.
func TestParamsIndependence(t *testing.T) {
	p1, err := Params(Mouse, PFC1)
	if err != nil {
		t.Fatal(err)
	}
	orig := p1.Kcat
	p1.Kcat = -1
	p2, err := Params(Mouse, PFC1)
	if err != nil {
		t.Fatal(err)
	}
	if p2.Kcat != orig {
		t.Errorf("mutating a returned ParameterSet changed the table: Kcat = %g, want %g", p2.Kcat, orig)
	}
}
