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

// Package lexicon provides noun countability information
// loaded from a CELEX-like lexicon export.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"detcount/merror"
)

const (
	DfltDelimiter = '\\'

	flagYes = "Y"
)

// Normalize makes the case uniform and removes surrounding spaces.
// Both the table keys and all the queried values must be normalized
// the same way.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CountabilityTable maps a normalized noun lemma to a flag
// telling whether at least one of its senses is countable.
// Once loaded, the table is read-only and can be shared
// by multiple goroutines.
type CountabilityTable struct {
	data map[string]bool
}

// Query returns countability of a lemma. The `known` flag
// is false in case the lemma is not in the table.
func (table *CountabilityTable) Query(lemma string) (countable bool, known bool) {
	if table == nil {
		return false, false
	}
	countable, known = table.data[Normalize(lemma)]
	return
}

func (table *CountabilityTable) Len() int {
	if table == nil {
		return 0
	}
	return len(table.data)
}

func (table *CountabilityTable) add(lemma string, countable bool) {
	key := Normalize(lemma)
	table.data[key] = table.data[key] || countable
}

// NewCountabilityTable creates a table from already known values.
// Keys are normalized.
func NewCountabilityTable(items map[string]bool) *CountabilityTable {
	ans := &CountabilityTable{data: make(map[string]bool, len(items))}
	for k, v := range items {
		ans.add(k, v)
	}
	return ans
}

// Load reads records (lemma, countable_flag, uncountable_flag)
// separated by `delim`. Multiple senses of a lemma are merged
// using logical OR over the countable flag.
func Load(r io.Reader, delim rune) (*CountabilityTable, error) {
	return load(r, delim, "")
}

func load(r io.Reader, delim rune, srcName string) (*CountabilityTable, error) {
	if delim == ',' {
		return nil, merror.NewInputError("comma cannot be used as a lexicon delimiter")
	}
	ans := &CountabilityTable{data: make(map[string]bool)}
	sc := bufio.NewScanner(r)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		items := strings.Split(line, string(delim))
		if len(items) != 3 {
			return nil, merror.RecordError{
				File: srcName,
				Line: lineNum,
				Msg:  fmt.Sprintf("expected 3 fields, found %d", len(items)),
			}
		}
		ans.add(items[0], strings.TrimSpace(items[1]) == flagYes)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return ans, nil
}

// LoadFile loads a countability table from a file.
func LoadFile(path string, delim rune) (*CountabilityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, merror.NewInputError("failed to open lexicon: %s", err)
	}
	defer f.Close()
	return load(f, delim, path)
}
