package breathpk

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Save returns a function that saves the simulation's breath signal to
// w as a gob stream (format description at
// https://golang.org/pkg/encoding/gob/), under its artifact name
// (e.g. "PFC1_breath_signal") so the flat ppb array can be reused
// outside the model.
func Save(w io.Writer) SimManipulator {
	return func(s *Simulation) error {
		if s.Breath == nil {
			return fmt.Errorf("breathpk: no breath signal to save; run ConvertToBreath first")
		}
		e := gob.NewEncoder(w)
		if err := e.Encode(s.Breath); err != nil {
			return fmt.Errorf("breathpk: saving breath signal: %v", err)
		}
		return nil
	}
}

// Load reads a breath signal previously written by Save.
func Load(r io.Reader) (*BreathSeries, error) {
	dec := gob.NewDecoder(r)
	b := new(BreathSeries)
	if err := dec.Decode(b); err != nil {
		return nil, fmt.Errorf("breathpk: loading breath signal: %v", err)
	}
	return b, nil
}
