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
	"iter"

	"detcount/merror"
)

// Source is a single-pass lazy sequence of sentences. To iterate
// again, a new source must be opened. Iteration stops after the
// first error.
type Source interface {
	Name() string
	Sentences() iter.Seq2[*Sentence, error]
}

// ShardedSource is a source consisting of multiple independent
// files which can be processed separately.
type ShardedSource interface {
	Source
	Shards() ([]Source, error)
}

// Open creates a sentence source for a configured corpus.
// The setup is expected to be validated (see CorpusSetup.ValidateAndDefaults).
func Open(setup *CorpusSetup) (Source, error) {
	if err := setup.CheckFiles(); err != nil {
		return nil, merror.NewInputError("cannot open corpus %s: %s", setup.ID, err)
	}
	switch setup.Format {
	case FormatXML:
		return NewXMLSource(setup.Path, setup.SentenceElement), nil
	case FormatCoNLL:
		return NewCoNLLSource(setup.Path), nil
	case FormatCoNLLX:
		files, err := setup.Files()
		if err != nil {
			return nil, err
		}
		return NewCoNLLXSource(setup.Path, files, setup.DocEndMarker), nil
	case FormatVertical:
		cols := setup.Columns
		if cols == nil {
			cols = DefaultVerticalColumns()
		}
		return NewVerticalSource(setup.Path, setup.SentenceElement, *cols), nil
	}
	return nil, merror.NewInputError("unsupported corpus format `%s`", setup.Format)
}
