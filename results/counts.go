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

// Package results contains the aggregated determiner-noun
// class frequencies and their serialized forms.
package results

import (
	"iter"
	"sort"

	"detcount/pairs"
)

// Row is an aggregated record of a single determiner
type Row struct {
	Det            string `json:"det"`
	Mass           int64  `json:"mass"`
	Plural         int64  `json:"plural"`
	SingularOrMass int64  `json:"singularOrMass"`
}

func (r Row) Total() int64 {
	return r.Mass + r.Plural + r.SingularOrMass
}

func (r Row) Count(cls pairs.NounClass) int64 {
	switch cls {
	case pairs.Mass:
		return r.Mass
	case pairs.Plural:
		return r.Plural
	case pairs.SingularOrMass:
		return r.SingularOrMass
	}
	return 0
}

// PairCount is a single record of the pair artifact
type PairCount struct {
	Det   string
	Class pairs.NounClass
	Count int64
}

type classCounts [3]int64

// CountTable maps (determiner, noun class) to a number of
// observations. Values can only grow. The table is not
// safe for concurrent use - each worker must own its table
// and the tables are merged afterwards (see Merge).
type CountTable struct {
	data map[string]*classCounts
}

func (table *CountTable) AddCount(det string, cls pairs.NounClass, n int64) {
	if n <= 0 || cls.Validate() != nil {
		return
	}
	v, ok := table.data[det]
	if !ok {
		v = new(classCounts)
		table.data[det] = v
	}
	v[cls] += n
}

func (table *CountTable) Add(obs pairs.Observation) {
	table.AddCount(obs.Determiner, obs.Class, 1)
}

// Accumulate folds a sequence of observations into the table
// and returns the number of processed items.
func (table *CountTable) Accumulate(observations iter.Seq[pairs.Observation]) int {
	var n int
	for obs := range observations {
		table.Add(obs)
		n++
	}
	return n
}

// Merge adds all the values of other to the table.
func (table *CountTable) Merge(other *CountTable) {
	if other == nil {
		return
	}
	for det, counts := range other.data {
		for cls, v := range counts {
			table.AddCount(det, pairs.NounClass(cls), v)
		}
	}
}

func (table *CountTable) Get(det string, cls pairs.NounClass) int64 {
	v, ok := table.data[det]
	if !ok || cls.Validate() != nil {
		return 0
	}
	return v[cls]
}

// Row returns an aggregated row for a determiner. The `ok` flag
// is false if the determiner has never been observed.
func (table *CountTable) Row(det string) (Row, bool) {
	v, ok := table.data[det]
	if !ok {
		return Row{Det: det}, false
	}
	return Row{
		Det:            det,
		Mass:           v[pairs.Mass],
		Plural:         v[pairs.Plural],
		SingularOrMass: v[pairs.SingularOrMass],
	}, true
}

// Len returns number of distinct (determiner, class) pairs
func (table *CountTable) Len() int {
	var ans int
	for _, counts := range table.data {
		for _, v := range counts {
			if v > 0 {
				ans++
			}
		}
	}
	return ans
}

// NumDeterminers returns number of distinct determiners
func (table *CountTable) NumDeterminers() int {
	return len(table.data)
}

func (table *CountTable) sortedDets() []string {
	ans := make([]string, 0, len(table.data))
	for det := range table.data {
		ans = append(ans, det)
	}
	sort.Strings(ans)
	return ans
}

// Rows returns aggregated rows sorted by total count (descending)
// and determiner (ascending).
func (table *CountTable) Rows() []Row {
	ans := make([]Row, 0, len(table.data))
	for _, det := range table.sortedDets() {
		row, _ := table.Row(det)
		ans = append(ans, row)
	}
	sort.SliceStable(ans, func(i, j int) bool { return ans[i].Total() > ans[j].Total() })
	return ans
}

// Pairs returns all the non-zero cells ordered by determiner
// and noun class.
func (table *CountTable) Pairs() []PairCount {
	ans := make([]PairCount, 0, len(table.data)*2)
	for _, det := range table.sortedDets() {
		counts := table.data[det]
		for _, cls := range pairs.AllClasses {
			if counts[cls] > 0 {
				ans = append(ans, PairCount{Det: det, Class: cls, Count: counts[cls]})
			}
		}
	}
	return ans
}

// Equal tells whether both tables contain the same values
func (table *CountTable) Equal(other *CountTable) bool {
	if other == nil || len(table.data) != len(other.data) {
		return false
	}
	for det, counts := range table.data {
		v, ok := other.data[det]
		if !ok || *v != *counts {
			return false
		}
	}
	return true
}

func NewCountTable() *CountTable {
	return &CountTable{data: make(map[string]*classCounts)}
}
