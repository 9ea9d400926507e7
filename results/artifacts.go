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

package results

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"detcount/merror"
	"detcount/pairs"
)

var tableHeader = []string{"det", "MASS", "PLURAL", "SINGULAR_OR_MASS", "TOTAL"}

// WritePairs writes the table as `determiner,noun_class,count`
// lines without any header.
func (table *CountTable) WritePairs(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, item := range table.Pairs() {
		if _, err := fmt.Fprintf(bw, "%s,%s,%d\n", item.Det, item.Class, item.Count); err != nil {
			return fmt.Errorf("failed to write pairs: %w", err)
		}
	}
	return bw.Flush()
}

// WriteTable writes aggregated rows as CSV with the header
// `det,MASS,PLURAL,SINGULAR_OR_MASS,TOTAL`.
func (table *CountTable) WriteTable(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tableHeader); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	for _, row := range table.Rows() {
		rec := []string{
			row.Det,
			strconv.FormatInt(row.Mass, 10),
			strconv.FormatInt(row.Plural, 10),
			strconv.FormatInt(row.SingularOrMass, 10),
			strconv.FormatInt(row.Total(), 10),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadPairs parses data written by WritePairs. Values of repeated
// pairs are summed.
func ReadPairs(r io.Reader) (*CountTable, error) {
	return readPairs(r, "")
}

func readPairs(r io.Reader, srcName string) (*CountTable, error) {
	ans := NewCountTable()
	sc := bufio.NewScanner(r)
	var lineNum int
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		// determiner is split from the right side as it is the only
		// value which may (theoretically) contain a comma
		countIdx := strings.LastIndex(line, ",")
		if countIdx < 0 {
			return nil, merror.RecordError{File: srcName, Line: lineNum, Msg: "expected 3 fields"}
		}
		classIdx := strings.LastIndex(line[:countIdx], ",")
		if classIdx < 0 {
			return nil, merror.RecordError{File: srcName, Line: lineNum, Msg: "expected 3 fields"}
		}
		cls, err := pairs.ParseNounClass(line[classIdx+1 : countIdx])
		if err != nil {
			return nil, merror.RecordError{File: srcName, Line: lineNum, Msg: err.Error()}
		}
		count, err := strconv.ParseInt(line[countIdx+1:], 10, 64)
		if err != nil || count < 0 {
			return nil, merror.RecordError{
				File: srcName,
				Line: lineNum,
				Msg:  fmt.Sprintf("invalid count `%s`", line[countIdx+1:]),
			}
		}
		ans.AddCount(line[:classIdx], cls, count)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pairs: %w", err)
	}
	return ans, nil
}

// ReadPairsFile loads a pair artifact file.
func ReadPairsFile(path string) (*CountTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, merror.NewInputError("failed to open pairs file: %s", err)
	}
	defer f.Close()
	return readPairs(f, path)
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (table *CountTable) WritePairsFile(path string) error {
	return writeFile(path, table.WritePairs)
}

func (table *CountTable) WriteTableFile(path string) error {
	return writeFile(path, table.WriteTable)
}
