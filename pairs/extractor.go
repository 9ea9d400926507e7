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
	"iter"

	"detcount/corpus"
	"detcount/lexicon"

	"github.com/czcorpus/cnc-gokit/collections"
)

// Extractor finds determiners in sentences, resolves their
// governing nouns and classifies the nouns. The extractor
// does not keep any state between sentences.
type Extractor struct {
	lex       Countability
	tags      TagSet
	lookupKey LookupKey
}

// Classify determines a class of a noun token. The `ok` flag
// is false for non-noun tags and for singular nouns missing
// in the countability table.
func (ext *Extractor) Classify(noun *corpus.Token) (cls NounClass, ok bool) {
	if collections.SliceContains(pluralNounTags, noun.FinePOS) {
		return Plural, true
	}
	if !collections.SliceContains(singularNounTags, noun.FinePOS) {
		return 0, false
	}
	countable, known := ext.lex.Query(lexicon.Normalize(ext.lookupKey.value(noun)))
	if !known {
		return 0, false
	}
	if countable {
		return SingularOrMass, true
	}
	return Mass, true
}

// Each returns a lazy sequence of observations found in a sentence.
func (ext *Extractor) Each(sent *corpus.Sentence) iter.Seq[Observation] {
	if sent.HeadMode == corpus.HeadByPendingID {
		return ext.eachByPendingID(sent)
	}
	return ext.eachByIndex(sent)
}

// Extract returns all the observations found in a sentence.
func (ext *Extractor) Extract(sent *corpus.Sentence) []Observation {
	var ans []Observation
	for obs := range ext.Each(sent) {
		ans = append(ans, obs)
	}
	return ans
}

func (ext *Extractor) eachByIndex(sent *corpus.Sentence) iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		for i := range sent.Tokens {
			tok := &sent.Tokens[i]
			if !ext.tags.IsDeterminer(tok) {
				continue
			}
			head := sent.HeadOf(i)
			if head == nil {
				continue
			}
			cls, ok := ext.Classify(head)
			if !ok {
				continue
			}
			if !yield(Observation{Determiner: lexicon.Normalize(tok.Form), Class: cls}) {
				return
			}
		}
	}
}

// eachByPendingID resolves heads while scanning the tokens in textual
// order. A determiner registers its head id, a later token with that id
// consumes the registration (whether it is classifiable or not). A head
// can be credited to at most one determiner - the last one referencing it.
func (ext *Extractor) eachByPendingID(sent *corpus.Sentence) iter.Seq[Observation] {
	return func(yield func(Observation) bool) {
		pending := make(map[string]string)
		for i := range sent.Tokens {
			tok := &sent.Tokens[i]
			if ext.tags.IsDeterminer(tok) {
				pending[tok.HeadID] = lexicon.Normalize(tok.Form)
			}
			det, ok := pending[tok.ID]
			if !ok {
				continue
			}
			delete(pending, tok.ID)
			cls, ok := ext.Classify(tok)
			if !ok {
				continue
			}
			if !yield(Observation{Determiner: det, Class: cls}) {
				return
			}
		}
	}
}

// NewExtractor creates an extractor. Empty lookup key defaults to
// LookupByForm, a nil countability source makes all singular
// nouns unknown.
func NewExtractor(lex Countability, tags TagSet, lookupKey LookupKey) *Extractor {
	if lookupKey == "" {
		lookupKey = LookupByForm
	}
	if lex == nil {
		lex = (*lexicon.CountabilityTable)(nil)
	}
	return &Extractor{
		lex:       lex,
		tags:      tags,
		lookupKey: lookupKey,
	}
}
