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
	"fmt"

	"detcount/corpus"

	"github.com/czcorpus/cnc-gokit/collections"
)

const (
	TagExistentialThere = "EX"
)

var (
	singularNounTags = []string{"NN", "NNP"}
	pluralNounTags   = []string{"NNS", "NNPS"}
)

// TagSet defines which tokens are considered determiners.
// A token is a determiner candidate in case its fine tag is
// in DeterminerFine or its coarse tag is in DeterminerCoarse
// and its fine tag is not in Excluded.
type TagSet struct {
	DeterminerFine   []string `json:"determinerFine"`
	DeterminerCoarse []string `json:"determinerCoarse"`
	Excluded         []string `json:"excluded"`
}

func (ts TagSet) Validate() error {
	if len(ts.DeterminerFine) == 0 && len(ts.DeterminerCoarse) == 0 {
		return fmt.Errorf("at least one determiner tag must be specified")
	}
	return nil
}

func (ts TagSet) IsDeterminer(tok *corpus.Token) bool {
	if collections.SliceContains(ts.Excluded, tok.FinePOS) {
		return false
	}
	return collections.SliceContains(ts.DeterminerFine, tok.FinePOS) ||
		collections.SliceContains(ts.DeterminerCoarse, tok.CoarsePOS)
}

// DefaultTagSet returns determiner tags used by the parsers
// producing the respective corpus formats.
func DefaultTagSet(format corpus.Format) TagSet {
	ans := TagSet{Excluded: []string{TagExistentialThere}}
	switch format {
	case corpus.FormatXML:
		ans.DeterminerFine = []string{"DT", "CD", "WDT"}
	case corpus.FormatCoNLLX:
		ans.DeterminerCoarse = []string{"D"}
	default:
		ans.DeterminerCoarse = []string{"DET"}
	}
	return ans
}

// LookupKey specifies which token attribute is used
// to search the countability table.
type LookupKey string

const (
	LookupByForm  LookupKey = "form"
	LookupByLemma LookupKey = "lemma"
)

func (lk LookupKey) Validate() error {
	if lk != LookupByForm && lk != LookupByLemma {
		return fmt.Errorf("invalid lookup key `%s` (supported values are: form, lemma)", lk)
	}
	return nil
}

func (lk LookupKey) value(tok *corpus.Token) string {
	if lk == LookupByLemma && tok.Lemma != "" && tok.Lemma != "_" {
		return tok.Lemma
	}
	return tok.Form
}

// Countability is a source of noun countability information.
type Countability interface {
	Query(lemma string) (countable bool, known bool)
}
