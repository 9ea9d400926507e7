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

package corpus

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"detcount/merror"
)

const (
	numFlatColumns  = 10
	noHeadValue     = "_"
	maxLineCapacity = 1024 * 1024

	colID     = 0
	colForm   = 1
	colLemma  = 2
	colCPOS   = 3
	colFPOS   = 4
	colHead   = 6
	tabSymbol = "\t"
)

// flatParser turns CoNLL(-X) lines into sentences. Sentences
// are not delimited explicitly, a new one starts once a token
// id is lower than the previous one. Blank lines are ignored.
type flatParser struct {
	srcName string
	curr    *Sentence
	prevID  int
}

// feedLine processes a single line and returns a sentence in case
// the line started a new one (i.e. the returned sentence is the
// previous, completed one).
func (fp *flatParser) feedLine(line string, lineNum int) (*Sentence, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	items := strings.Split(line, tabSymbol)
	if len(items) != numFlatColumns {
		return nil, merror.RecordError{
			File: fp.srcName,
			Line: lineNum,
			Msg:  fmt.Sprintf("expected %d columns, found %d", numFlatColumns, len(items)),
		}
	}
	tokenID, err := strconv.Atoi(items[colID])
	if err != nil {
		return nil, merror.RecordError{
			File: fp.srcName,
			Line: lineNum,
			Msg:  fmt.Sprintf("invalid token id `%s`", items[colID]),
		}
	}
	var head int
	if items[colHead] != noHeadValue {
		head, err = strconv.Atoi(items[colHead])
		if err != nil {
			return nil, merror.RecordError{
				File: fp.srcName,
				Line: lineNum,
				Msg:  fmt.Sprintf("invalid head `%s`", items[colHead]),
			}
		}
	}
	var done *Sentence
	if fp.curr != nil && tokenID < fp.prevID {
		done = fp.curr
		fp.curr = nil
	}
	if fp.curr == nil {
		fp.curr = &Sentence{
			HeadMode: HeadByPendingID,
			Source:   fp.srcName,
			Line:     lineNum,
		}
	}
	fp.curr.addToken(Token{
		ID:        items[colID],
		Form:      items[colForm],
		Lemma:     items[colLemma],
		CoarsePOS: items[colCPOS],
		FinePOS:   strings.TrimSpace(items[colFPOS]),
		Head:      head,
		HeadID:    items[colHead],
	})
	fp.prevID = tokenID
	return done, nil
}

// flush returns the current unfinished sentence (if any)
// and resets the parser.
func (fp *flatParser) flush() *Sentence {
	ans := fp.curr
	fp.curr = nil
	fp.prevID = 0
	return ans
}

// flatOpts configures document markup handling for line based
// formats. Zero value means plain CoNLL without any markup.
type flatOpts struct {
	skipHeader   bool
	docEndMarker string
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineCapacity)
	return sc
}

// scanFlat reads all the sentences from r and passes them to yield.
// It returns false in case the consumer stopped the iteration or
// an error occurred.
func scanFlat(srcName string, r io.Reader, opts flatOpts, yield func(*Sentence, error) bool) bool {
	parser := &flatParser{srcName: srcName}
	sc := newLineScanner(r)
	var lineNum int
	if opts.skipHeader && sc.Scan() {
		lineNum++
	}
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		if opts.docEndMarker != "" {
			trimmed := strings.TrimSpace(line)
			if trimmed == opts.docEndMarker || strings.HasPrefix(trimmed, DfltDocStartPrefix) {
				if sent := parser.flush(); sent != nil {
					if !yield(sent, nil) {
						return false
					}
				}
				continue
			}
		}
		sent, err := parser.feedLine(line, lineNum)
		if err != nil {
			yield(nil, err)
			return false
		}
		if sent != nil {
			if !yield(sent, nil) {
				return false
			}
		}
	}
	if err := sc.Err(); err != nil {
		yield(nil, fmt.Errorf("failed to read %s: %w", srcName, err))
		return false
	}
	if sent := parser.flush(); sent != nil {
		return yield(sent, nil)
	}
	return true
}

// ------------------------------------

// CoNLLSource reads tab separated 10-column CoNLL data
// from a single plain text file.
type CoNLLSource struct {
	path string
	r    io.Reader
}

func (src *CoNLLSource) Name() string {
	return src.path
}

func (src *CoNLLSource) Sentences() iter.Seq2[*Sentence, error] {
	return func(yield func(*Sentence, error) bool) {
		r := src.r
		if r == nil {
			f, err := os.Open(src.path)
			if err != nil {
				yield(nil, merror.NewInputError("failed to open %s: %s", src.path, err))
				return
			}
			defer f.Close()
			r = f
		}
		scanFlat(src.path, r, flatOpts{}, yield)
	}
}

func NewCoNLLSource(path string) *CoNLLSource {
	return &CoNLLSource{path: path}
}

// NewCoNLLReaderSource creates a source reading from an already
// opened reader. The name is used only in error messages.
func NewCoNLLReaderSource(name string, r io.Reader) *CoNLLSource {
	return &CoNLLSource{path: name, r: r}
}
