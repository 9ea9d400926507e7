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
	"path/filepath"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

const (
	DfltSentenceElement   = "sentence"
	DfltSentenceStructure = "s"
	DfltDocEndMarker      = "</doc>"
	DfltDocStartPrefix    = "<doc"
)

type Format string

const (
	FormatXML      Format = "xml"
	FormatCoNLL    Format = "conll"
	FormatCoNLLX   Format = "conllx"
	FormatVertical Format = "vertical"
)

func (f Format) Validate() error {
	switch f {
	case FormatXML, FormatCoNLL, FormatCoNLLX, FormatVertical:
		return nil
	}
	return fmt.Errorf("unsupported corpus format `%s` (supported values are: xml, conll, conllx, vertical)", f)
}

// IsFlat tells whether the format is a line based one with
// heads referenced by token id strings.
func (f Format) IsFlat() bool {
	return f == FormatCoNLL || f == FormatCoNLLX
}

// VerticalColumns specifies positional attributes of a vertical
// file. Index 0 is the first column (word), 1 the second etc.
type VerticalColumns struct {
	Form      int `json:"form"`
	Lemma     int `json:"lemma"`
	CoarsePOS int `json:"coarsePos"`
	FinePOS   int `json:"finePos"`
	Head      int `json:"head"`
}

func (vc VerticalColumns) Validate() error {
	for _, v := range []int{vc.Form, vc.Lemma, vc.CoarsePOS, vc.FinePOS, vc.Head} {
		if v < 0 {
			return fmt.Errorf("invalid vertical column index %d", v)
		}
	}
	return nil
}

func DefaultVerticalColumns() *VerticalColumns {
	return &VerticalColumns{
		Form:      0,
		Lemma:     1,
		CoarsePOS: 2,
		FinePOS:   3,
		Head:      4,
	}
}

// CorpusSetup describes a physical corpus and the way it is encoded.
type CorpusSetup struct {
	ID     string `json:"id"`
	Format Format `json:"format"`

	// Path is a file path. For the `conllx` format, it is a glob
	// pattern matching all the gzip shards of the corpus.
	Path string `json:"path"`

	// SentenceElement is a name of an element (xml) or a structure
	// (vertical) representing a sentence.
	SentenceElement string `json:"sentenceElement"`

	// DocEndMarker is a line closing a document in `conllx` shards
	DocEndMarker string `json:"docEndMarker"`

	Columns *VerticalColumns `json:"columns"`
}

// Files returns all the files the corpus consists of.
func (cs *CorpusSetup) Files() ([]string, error) {
	if cs.Format != FormatCoNLLX {
		return []string{cs.Path}, nil
	}
	ans, err := filepath.Glob(cs.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid shard pattern `%s`: %w", cs.Path, err)
	}
	return ans, nil
}

func (cs *CorpusSetup) ValidateAndDefaults(confContext string) error {
	if cs == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if cs.ID == "" {
		return fmt.Errorf("missing `%s.id`", confContext)
	}
	if err := cs.Format.Validate(); err != nil {
		return fmt.Errorf("invalid `%s.format`: %w", confContext, err)
	}
	if cs.Path == "" {
		return fmt.Errorf("missing `%s.path`", confContext)
	}
	switch cs.Format {
	case FormatXML:
		if cs.SentenceElement == "" {
			cs.SentenceElement = DfltSentenceElement
			log.Warn().
				Str("corpus", cs.ID).
				Str("value", cs.SentenceElement).
				Msgf("`%s.sentenceElement` not specified, using default", confContext)
		}
	case FormatVertical:
		if cs.SentenceElement == "" {
			cs.SentenceElement = DfltSentenceStructure
			log.Warn().
				Str("corpus", cs.ID).
				Str("value", cs.SentenceElement).
				Msgf("`%s.sentenceElement` not specified, using default", confContext)
		}
		if cs.Columns == nil {
			cs.Columns = DefaultVerticalColumns()
			log.Warn().
				Str("corpus", cs.ID).
				Msgf("`%s.columns` not specified, using default", confContext)
		}
		if err := cs.Columns.Validate(); err != nil {
			return fmt.Errorf("invalid `%s.columns`: %w", confContext, err)
		}
	case FormatCoNLLX:
		if cs.DocEndMarker == "" {
			cs.DocEndMarker = DfltDocEndMarker
			log.Warn().
				Str("corpus", cs.ID).
				Str("value", cs.DocEndMarker).
				Msgf("`%s.docEndMarker` not specified, using default", confContext)
		}
	}
	return nil
}

// CheckFiles verifies that all the corpus files exist.
func (cs *CorpusSetup) CheckFiles() error {
	files, err := cs.Files()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files match `%s`", cs.Path)
	}
	for _, f := range files {
		isFile, err := fs.IsFile(f)
		if err != nil {
			return fmt.Errorf("failed to check corpus file %s: %w", f, err)
		}
		if !isFile {
			return fmt.Errorf("corpus file %s not found", f)
		}
	}
	return nil
}
