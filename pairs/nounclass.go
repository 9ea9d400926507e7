// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of DETCOUNT.
//
//  DETCOUNT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  DETCOUNT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with DETCOUNT.  If not, see <https://www.gnu.org/licenses/>.

package pairs

import (
	"encoding/json"
	"fmt"
)

// NounClass is a number/countability class of a noun
// as observed in a determiner-noun pair.
type NounClass int

const (
	Mass NounClass = iota
	Plural
	SingularOrMass
)

// AllClasses lists the classes in the order used by
// the aggregated table columns.
var AllClasses = []NounClass{Mass, Plural, SingularOrMass}

func (nc NounClass) String() string {
	switch nc {
	case Mass:
		return "MASS"
	case Plural:
		return "PLURAL"
	case SingularOrMass:
		return "SINGULAR_OR_MASS"
	}
	return fmt.Sprintf("NounClass(%d)", int(nc))
}

func (nc NounClass) Validate() error {
	if nc < Mass || nc > SingularOrMass {
		return fmt.Errorf("invalid noun class %d", int(nc))
	}
	return nil
}

func (nc NounClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(nc.String())
}

func ParseNounClass(s string) (NounClass, error) {
	switch s {
	case "MASS":
		return Mass, nil
	case "PLURAL":
		return Plural, nil
	case "SINGULAR_OR_MASS":
		return SingularOrMass, nil
	}
	return 0, fmt.Errorf("unknown noun class `%s`", s)
}

// Observation is a single determiner-noun pair occurrence.
type Observation struct {
	Determiner string
	Class      NounClass
}
