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

// Command breathpk runs the exhaled-breath reporter pharmacokinetic
// model from the command line.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/exhalomics/breathpk/breathpkutil"
)

func main() {
	if err := breathpkutil.Root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
