package breathpk

import (
	"bytes"
	"testing"
)

func TestSaveLoad(t *testing.T) {
	buf := bytes.NewBuffer([]byte{})

	s := &Simulation{
		Breath: &BreathSeries{
			Name: "PFC1_breath_signal",
			T:    []float64{0, 0.1, 0.2},
			PPB:  []float64{0, 12.5, 31.25},
		},
	}
	if err := Save(buf)(s); err != nil {
		t.Fatal(err)
	}

	b, err := Load(buf)
	if err != nil {
		t.Fatal(err)
	}
	if b.Name != s.Breath.Name {
		t.Errorf("loaded artifact name %q, want %q", b.Name, s.Breath.Name)
	}
	if len(b.T) != len(s.Breath.T) || len(b.PPB) != len(s.Breath.PPB) {
		t.Fatalf("loaded series has %d/%d samples, want %d", len(b.T), len(b.PPB), len(s.Breath.T))
	}
	for i := range b.T {
		if b.T[i] != s.Breath.T[i] || b.PPB[i] != s.Breath.PPB[i] {
			t.Errorf("sample %d: (%g, %g), want (%g, %g)", i, b.T[i], b.PPB[i], s.Breath.T[i], s.Breath.PPB[i])
		}
	}
}

func TestSaveWithoutSignal(t *testing.T) {
	s := &Simulation{}
	if err := Save(bytes.NewBuffer(nil))(s); err == nil {
		t.Error("expected an error when saving before conversion")
	}
}
