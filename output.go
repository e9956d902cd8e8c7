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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tealeg/xlsx"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteCSV returns a function that writes the breath signal to w as
// (time_minutes, breath_ppb) rows with a header line.
func WriteCSV(w io.Writer) SimManipulator {
	return func(s *Simulation) error {
		if s.Breath == nil {
			return fmt.Errorf("breathpk: no breath signal to write; run ConvertToBreath first")
		}
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"time_minutes", "breath_ppb"}); err != nil {
			return fmt.Errorf("breathpk: writing CSV header: %v", err)
		}
		for i, t := range s.Breath.T {
			rec := []string{
				strconv.FormatFloat(t, 'g', -1, 64),
				strconv.FormatFloat(s.Breath.PPB[i], 'g', -1, 64),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("breathpk: writing CSV row %d: %v", i, err)
			}
		}
		cw.Flush()
		return cw.Error()
	}
}

// WriteXLSX returns a function that writes the breath signal to an
// xlsx spreadsheet at path, one sheet named after the artifact.
func WriteXLSX(path string) SimManipulator {
	return func(s *Simulation) error {
		if s.Breath == nil {
			return fmt.Errorf("breathpk: no breath signal to write; run ConvertToBreath first")
		}
		f := xlsx.NewFile()
		sheet, err := f.AddSheet(s.Breath.Name)
		if err != nil {
			return fmt.Errorf("breathpk: creating xlsx sheet: %v", err)
		}
		header := sheet.AddRow()
		header.AddCell().SetString("time_minutes")
		header.AddCell().SetString("breath_ppb")
		for i, t := range s.Breath.T {
			row := sheet.AddRow()
			row.AddCell().SetFloat(t)
			row.AddCell().SetFloat(s.Breath.PPB[i])
		}
		if err := f.Save(path); err != nil {
			return fmt.Errorf("breathpk: saving xlsx file: %v", err)
		}
		return nil
	}
}

// PlotPNG returns a function that renders the breath signal as a line
// plot and saves it to path. The image format is chosen from the file
// extension (.png, .svg, .pdf, ...).
func PlotPNG(path string) SimManipulator {
	return func(s *Simulation) error {
		if s.Breath == nil {
			return fmt.Errorf("breathpk: no breath signal to plot; run ConvertToBreath first")
		}
		p := plot.New()
		p.Title.Text = fmt.Sprintf("%s breath signal (%s)", s.Params.Reporter, s.Params.Species)
		p.X.Label.Text = "Time (min)"
		p.Y.Label.Text = "Reporter in breath (ppb)"

		pts := make(plotter.XYs, s.Breath.Len())
		for i := range pts {
			pts[i].X = s.Breath.T[i]
			pts[i].Y = s.Breath.PPB[i]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("breathpk: building plot: %v", err)
		}
		p.Add(plotter.NewGrid(), line)

		if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return fmt.Errorf("breathpk: saving plot: %v", err)
		}
		return nil
	}
}
