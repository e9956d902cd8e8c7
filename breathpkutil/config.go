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

package breathpkutil

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ConfigData holds information about a BreathPK run.
type ConfigData struct {
	// Species is the simulated organism: "mouse" or "human".
	Species string

	// Reporter is the volatile reporter chemistry: "PFC1", "PFC3",
	// "PFC5", or "PFC7". Only PFC1 kinetics are available for humans.
	Reporter string

	// Dose is the nanosensor concentration delivered to the airway
	// lumen at t=0 [µM].
	Dose float64

	// Begin and End delimit the simulated time span [min]; the breath
	// signal is reported every SampleInterval minutes.
	Begin, End, SampleInterval float64

	// OutputCSV, OutputXLSX, OutputPlot, and OutputGob are the paths
	// the breath signal is written to after the run (CSV table, xlsx
	// spreadsheet, line plot image, and gob artifact, respectively).
	// Empty paths are skipped. All can include environment variables.
	OutputCSV  string
	OutputXLSX string
	OutputPlot string
	OutputGob  string

	// Solver holds the stiff-integrator error control settings.
	// Zero values keep the model defaults.
	Solver struct {
		AbsTol      float64
		RelTol      float64
		InitialStep float64
		MaxStep     float64
		MaxSteps    int
	}
}

// DefaultConfig returns the run settings used for the published
// figures: mouse, PFC1, 10 µM dose, 0–120 min sampled every 0.1 min,
// CSV output next to the working directory.
func DefaultConfig() *ConfigData {
	c := &ConfigData{
		Species:        "mouse",
		Reporter:       "PFC1",
		Dose:           10,
		Begin:          0,
		End:            120,
		SampleInterval: 0.1,
		OutputCSV:      "breath_signal.csv",
	}
	return c
}

// ReadConfigFile reads and parses a TOML configuration file. If
// filename is empty, the default configuration is returned.
func ReadConfigFile(filename string) (*ConfigData, error) {
	config := DefaultConfig()
	if filename == "" {
		return config, nil
	}
	if _, err := toml.DecodeFile(filename, config); err != nil {
		return nil, fmt.Errorf("the configuration file %q could not be read: %v", filename, err)
	}
	config.OutputCSV = os.ExpandEnv(config.OutputCSV)
	config.OutputXLSX = os.ExpandEnv(config.OutputXLSX)
	config.OutputPlot = os.ExpandEnv(config.OutputPlot)
	config.OutputGob = os.ExpandEnv(config.OutputGob)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings that can be rejected before the model
// itself sees them.
func (c *ConfigData) Validate() error {
	if c.Species == "" {
		return fmt.Errorf("config: species must be specified")
	}
	if c.Reporter == "" {
		return fmt.Errorf("config: reporter must be specified")
	}
	if c.Dose < 0 {
		return fmt.Errorf("config: dose must be non-negative, got %g", c.Dose)
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("config: sample interval must be positive, got %g", c.SampleInterval)
	}
	if c.End <= c.Begin {
		return fmt.Errorf("config: end time (%g) must be after begin time (%g)", c.End, c.Begin)
	}
	return nil
}
