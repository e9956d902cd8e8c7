package breathpkutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("default configuration is invalid: %v", err)
	}
	if c.Species != "mouse" || c.Reporter != "PFC1" {
		t.Errorf("default configuration is %s/%s, want mouse/PFC1", c.Species, c.Reporter)
	}
	if c.Dose != 10 || c.End != 120 || c.SampleInterval != 0.1 {
		t.Errorf("unexpected default run settings: %+v", c)
	}
}

func TestReadConfigFileEmpty(t *testing.T) {
	c, err := ReadConfigFile("")
	if err != nil {
		t.Fatal(err)
	}
	if c.Species != "mouse" {
		t.Errorf("empty filename should return defaults, got species %q", c.Species)
	}
}

func TestReadConfigFile(t *testing.T) {
	t.Setenv("BREATHPK_TEST_OUT", "/tmp/out")
	contents := `
Species = "human"
Reporter = "PFC1"
Dose = 2.5
End = 240
SampleInterval = 0.5
OutputCSV = "${BREATHPK_TEST_OUT}/human.csv"

[Solver]
AbsTol = 1e-9
MaxSteps = 500000
`
	path := filepath.Join(t.TempDir(), "breathpk.toml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := ReadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Species != "human" || c.Dose != 2.5 || c.End != 240 {
		t.Errorf("unexpected parsed configuration: %+v", c)
	}
	if c.OutputCSV != "/tmp/out/human.csv" {
		t.Errorf("environment variables not expanded: %q", c.OutputCSV)
	}
	if c.Solver.AbsTol != 1e-9 || c.Solver.MaxSteps != 500000 {
		t.Errorf("solver settings not parsed: %+v", c.Solver)
	}
	// Unset fields keep their defaults.
	if c.SampleInterval != 0.5 || c.Begin != 0 {
		t.Errorf("defaults not preserved: %+v", c)
	}
}

func TestReadConfigFileMissing(t *testing.T) {
	if _, err := ReadConfigFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for a missing configuration file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*ConfigData)
	}{
		{"no species", func(c *ConfigData) { c.Species = "" }},
		{"no reporter", func(c *ConfigData) { c.Reporter = "" }},
		{"negative dose", func(c *ConfigData) { c.Dose = -4 }},
		{"zero interval", func(c *ConfigData) { c.SampleInterval = 0 }},
		{"inverted span", func(c *ConfigData) { c.Begin, c.End = 60, 30 }},
	}
	for _, tc := range cases {
		c := DefaultConfig()
		tc.mod(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}
