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
	"strconv"
	"strings"

	"detcount/merror"

	"github.com/tomachalek/vertigo/v5"
)

// VerticalSource reads a vertical file where sentences are
// represented by a structure (typically <s>...</s>) and heads
// are absolute positions within a sentence.
type VerticalSource struct {
	path           string
	sentenceStruct string
	columns        VerticalColumns
}

func (src *VerticalSource) Name() string {
	return src.path
}

func (src *VerticalSource) Sentences() iter.Seq2[*Sentence, error] {
	return func(yield func(*Sentence, error) bool) {
		proc := &verticalProcessor{
			src:   src,
			yield: yield,
		}
		pc := &vertigo.ParserConf{
			InputFilePath:         src.path,
			Encoding:              "utf-8",
			StructAttrAccumulator: "comb",
		}
		err := vertigo.ParseVerticalFile(pc, proc)
		if proc.stopped {
			return
		}
		if err != nil {
			yield(nil, fmt.Errorf("failed to parse vertical file %s: %w", src.path, err))
		}
	}
}

func NewVerticalSource(path, sentenceStruct string, columns VerticalColumns) *VerticalSource {
	if sentenceStruct == "" {
		sentenceStruct = DfltSentenceStructure
	}
	return &VerticalSource{
		path:           path,
		sentenceStruct: sentenceStruct,
		columns:        columns,
	}
}

// ------

var errIterationStopped = fmt.Errorf("iteration stopped by consumer")

// verticalProcessor implements vertigo.LineProcessor
type verticalProcessor struct {
	src     *VerticalSource
	yield   func(*Sentence, error) bool
	curr    *Sentence
	stopped bool
}

func (vp *verticalProcessor) attr(token *vertigo.Token, idx int) string {
	// `word` in Vertigo is separated from other attributes
	if idx == 0 {
		return token.Word
	}
	if idx-1 < len(token.Attrs) {
		return token.Attrs[idx-1]
	}
	return ""
}

func (vp *verticalProcessor) ProcToken(token *vertigo.Token, line int, err error) error {
	if err != nil {
		return err
	}
	if vp.curr == nil {
		return nil
	}
	cols := vp.src.columns
	tok := Token{
		ID:        strconv.Itoa(vp.curr.Len() + 1),
		Form:      vp.attr(token, cols.Form),
		Lemma:     vp.attr(token, cols.Lemma),
		CoarsePOS: strings.TrimSpace(vp.attr(token, cols.CoarsePOS)),
		FinePOS:   strings.TrimSpace(vp.attr(token, cols.FinePOS)),
		HeadID:    strings.TrimSpace(vp.attr(token, cols.Head)),
	}
	if tok.HeadID != "" && tok.HeadID != noHeadValue {
		head, err := strconv.Atoi(tok.HeadID)
		if err != nil {
			vp.stopped = true
			vp.yield(nil, merror.RecordError{
				File: vp.src.path,
				Line: line,
				Msg:  fmt.Sprintf("invalid head `%s`", tok.HeadID),
			})
			return errIterationStopped
		}
		tok.Head = head
	}
	vp.curr.addToken(tok)
	return nil
}

func (vp *verticalProcessor) ProcStruct(strc *vertigo.Structure, line int, err error) error {
	if err != nil {
		return err
	}
	if strc.Name == vp.src.sentenceStruct {
		vp.curr = &Sentence{HeadMode: HeadByIndex, Source: vp.src.path, Line: line}
	}
	return nil
}

func (vp *verticalProcessor) ProcStructClose(strc *vertigo.StructureClose, line int, err error) error {
	if err != nil {
		return err
	}
	if strc.Name != vp.src.sentenceStruct || vp.curr == nil {
		return nil
	}
	sent := vp.curr
	vp.curr = nil
	if !vp.yield(sent, nil) {
		vp.stopped = true
		return errIterationStopped
	}
	return nil
}
