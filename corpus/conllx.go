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
	"fmt"
	"iter"
	"os"

	"detcount/merror"

	"github.com/klauspost/compress/gzip"
)

// CoNLLXSource reads CoNLL-X parses stored in multiple gzip
// compressed files. Each file starts with a header line followed
// by documents closed by an end marker line. The shards are read
// in the order of the `files` slice.
type CoNLLXSource struct {
	pattern      string
	files        []string
	docEndMarker string
}

func (src *CoNLLXSource) Name() string {
	return src.pattern
}

func (src *CoNLLXSource) Files() []string {
	return src.files
}

func (src *CoNLLXSource) Sentences() iter.Seq2[*Sentence, error] {
	return func(yield func(*Sentence, error) bool) {
		for _, file := range src.files {
			if !src.scanFile(file, yield) {
				return
			}
		}
	}
}

func (src *CoNLLXSource) scanFile(path string, yield func(*Sentence, error) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		yield(nil, merror.NewInputError("failed to open %s: %s", path, err))
		return false
	}
	defer f.Close()
	zr, err := gzip.NewReader(f)
	if err != nil {
		yield(nil, fmt.Errorf("failed to decompress %s: %w", path, err))
		return false
	}
	defer zr.Close()
	return scanFlat(
		path,
		zr,
		flatOpts{skipHeader: true, docEndMarker: src.docEndMarker},
		yield,
	)
}

// Shards returns one source per compressed file.
func (src *CoNLLXSource) Shards() ([]Source, error) {
	ans := make([]Source, len(src.files))
	for i, f := range src.files {
		ans[i] = NewCoNLLXSource(f, []string{f}, src.docEndMarker)
	}
	return ans, nil
}

func NewCoNLLXSource(pattern string, files []string, docEndMarker string) *CoNLLXSource {
	if docEndMarker == "" {
		docEndMarker = DfltDocEndMarker
	}
	return &CoNLLXSource{
		pattern:      pattern,
		files:        files,
		docEndMarker: docEndMarker,
	}
}
