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
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strconv"
	"strings"

	"detcount/merror"
)

const (
	xmlAttrPOS   = "pos"
	xmlAttrCPOS  = "cpos"
	xmlAttrHead  = "head"
	xmlAttrLemma = "lemma"
)

// XMLSource reads tree-structured parses where each sentence
// element contains token elements with `pos` and `head` attributes.
// The `head` value is a 1-based index into the sibling list.
//
// The document is processed as a stream of XML tokens so only
// the sentence being read is kept in memory.
type XMLSource struct {
	path            string
	r               io.Reader
	sentenceElement string
}

func (src *XMLSource) Name() string {
	return src.path
}

func (src *XMLSource) Sentences() iter.Seq2[*Sentence, error] {
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
		src.scan(r, yield)
	}
}

func (src *XMLSource) parseError(dec *xml.Decoder, msg string) merror.RecordError {
	line, _ := dec.InputPos()
	return merror.RecordError{File: src.path, Line: line, Msg: msg}
}

func (src *XMLSource) newToken(dec *xml.Decoder, elm xml.StartElement) (Token, error) {
	var tok Token
	for _, attr := range elm.Attr {
		switch attr.Name.Local {
		case xmlAttrPOS:
			tok.FinePOS = strings.TrimSpace(attr.Value)
		case xmlAttrCPOS:
			tok.CoarsePOS = strings.TrimSpace(attr.Value)
		case xmlAttrLemma:
			tok.Lemma = attr.Value
		case xmlAttrHead:
			tok.HeadID = strings.TrimSpace(attr.Value)
		}
	}
	if tok.HeadID != "" {
		head, err := strconv.Atoi(tok.HeadID)
		if err != nil {
			return tok, src.parseError(dec, fmt.Sprintf("invalid head `%s`", tok.HeadID))
		}
		tok.Head = head
	}
	return tok, nil
}

func (src *XMLSource) scan(r io.Reader, yield func(*Sentence, error) bool) {
	dec := xml.NewDecoder(r)
	var curr *Sentence
	var currTok Token
	var text strings.Builder
	// depth relative to the current sentence element
	// (1 = sentence, 2 = token, 3+ = token's sub-elements)
	var depth int

	for {
		item, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break

		} else if err != nil {
			yield(nil, src.parseError(dec, err.Error()))
			return
		}
		switch elm := item.(type) {
		case xml.StartElement:
			if curr == nil {
				if elm.Name.Local == src.sentenceElement {
					line, _ := dec.InputPos()
					curr = &Sentence{HeadMode: HeadByIndex, Source: src.path, Line: line}
					depth = 1
				}
				continue
			}
			depth++
			if depth == 2 {
				currTok, err = src.newToken(dec, elm)
				if err != nil {
					yield(nil, err)
					return
				}
				text.Reset()
			}
		case xml.CharData:
			if curr != nil && depth == 2 {
				text.Write(elm)
			}
		case xml.EndElement:
			if curr == nil {
				continue
			}
			if depth == 2 {
				currTok.Form = strings.TrimSpace(text.String())
				currTok.ID = strconv.Itoa(curr.Len() + 1)
				curr.addToken(currTok)
			}
			depth--
			if depth == 0 {
				sent := curr
				curr = nil
				if !yield(sent, nil) {
					return
				}
			}
		}
	}
	if curr != nil {
		yield(nil, src.parseError(dec, "unexpected end of document inside a sentence"))
	}
}

func NewXMLSource(path, sentenceElement string) *XMLSource {
	if sentenceElement == "" {
		sentenceElement = DfltSentenceElement
	}
	return &XMLSource{path: path, sentenceElement: sentenceElement}
}

// NewXMLReaderSource creates a source reading from an already
// opened reader. The name is used only in error messages.
func NewXMLReaderSource(name string, r io.Reader, sentenceElement string) *XMLSource {
	ans := NewXMLSource(name, sentenceElement)
	ans.r = r
	return ans
}
