package breathpk

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"
)

func testSimulation() *Simulation {
	p, _ := Params(Mouse, PFC1)
	return &Simulation{
		Params: p,
		Breath: &BreathSeries{
			Name: "PFC1_breath_signal",
			T:    []float64{0, 0.1, 0.2, 0.3},
			PPB:  []float64{0, 2.5, 7.75, 5.125},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	s := testSimulation()
	buf := bytes.NewBuffer(nil)
	if err := WriteCSV(buf)(s); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(s.Breath.T)+1 {
		t.Fatalf("CSV has %d rows, want %d", len(records), len(s.Breath.T)+1)
	}
	if records[0][0] != "time_minutes" || records[0][1] != "breath_ppb" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[3][0] != "0.2" || records[3][1] != "7.75" {
		t.Errorf("row 3 = %v, want [0.2 7.75]", records[3])
	}
}

func TestWriteXLSX(t *testing.T) {
	s := testSimulation()
	path := filepath.Join(t.TempDir(), "breath.xlsx")
	if err := WriteXLSX(path)(s); err != nil {
		t.Fatal(err)
	}
}

func TestPlotPNG(t *testing.T) {
	s := testSimulation()
	path := filepath.Join(t.TempDir(), "breath.png")
	if err := PlotPNG(path)(s); err != nil {
		t.Fatal(err)
	}
}

func TestOutputsRequireSignal(t *testing.T) {
	s := &Simulation{}
	if err := WriteCSV(bytes.NewBuffer(nil))(s); err == nil {
		t.Error("WriteCSV: expected an error before conversion")
	}
	if err := WriteXLSX("unused.xlsx")(s); err == nil {
		t.Error("WriteXLSX: expected an error before conversion")
	}
	if err := PlotPNG("unused.png")(s); err == nil {
		t.Error("PlotPNG: expected an error before conversion")
	}
}
