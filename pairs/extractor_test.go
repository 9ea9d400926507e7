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
	"strings"
	"testing"

	"detcount/corpus"
	"detcount/lexicon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexSentence(tokens ...corpus.Token) *corpus.Sentence {
	for i := range tokens {
		tokens[i].Position = i + 1
	}
	return &corpus.Sentence{Tokens: tokens, HeadMode: corpus.HeadByIndex}
}

func tok(form, fpos string, head int) corpus.Token {
	return corpus.Token{Form: form, FinePOS: fpos, Head: head}
}

func flatTok(id, form, cpos, fpos, head string) corpus.Token {
	return corpus.Token{ID: id, Form: form, CoarsePOS: cpos, FinePOS: fpos, HeadID: head}
}

func pendingSentence(tokens ...corpus.Token) *corpus.Sentence {
	for i := range tokens {
		tokens[i].Position = i + 1
	}
	return &corpus.Sentence{Tokens: tokens, HeadMode: corpus.HeadByPendingID}
}

func xmlExtractor(lex map[string]bool) *Extractor {
	return NewExtractor(
		lexicon.NewCountabilityTable(lex), DefaultTagSet(corpus.FormatXML), LookupByForm)
}

func TestSingularCountable(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"dog": true})
	obs := ext.Extract(indexSentence(tok("the", "DT", 2), tok("dog", "NN", 0)))
	assert.Equal(t, []Observation{{Determiner: "the", Class: SingularOrMass}}, obs)
}

func TestSingularUncountable(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"water": false})
	obs := ext.Extract(indexSentence(tok("some", "DT", 2), tok("water", "NN", 0)))
	assert.Equal(t, []Observation{{Determiner: "some", Class: Mass}}, obs)
}

func TestPluralNeedsNoLexicon(t *testing.T) {
	ext := xmlExtractor(map[string]bool{})
	obs := ext.Extract(indexSentence(tok("these", "DT", 2), tok("dogs", "NNS", 0)))
	assert.Equal(t, []Observation{{Determiner: "these", Class: Plural}}, obs)
	obs = ext.Extract(indexSentence(tok("the", "DT", 2), tok("Smiths", "NNPS", 0)))
	assert.Equal(t, []Observation{{Determiner: "the", Class: Plural}}, obs)
}

func TestUnknownSingularNounDropped(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"dog": true})
	obs := ext.Extract(indexSentence(tok("the", "DT", 2), tok("cat", "NN", 0)))
	assert.Empty(t, obs)
}

func TestProperSingularUsesLexicon(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"paris": true})
	obs := ext.Extract(indexSentence(tok("the", "DT", 2), tok("Paris", "NNP", 0)))
	assert.Equal(t, []Observation{{Determiner: "the", Class: SingularOrMass}}, obs)
}

func TestNonNounHeadDropped(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"big": true})
	obs := ext.Extract(indexSentence(tok("the", "DT", 2), tok("big", "JJ", 0)))
	assert.Empty(t, obs)
}

func TestRootDeterminerDropped(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"dog": true})
	obs := ext.Extract(indexSentence(tok("that", "DT", 0), tok("dog", "NN", 0)))
	assert.Empty(t, obs)
	obs = ext.Extract(indexSentence(tok("that", "DT", 5), tok("dog", "NN", 0)))
	assert.Empty(t, obs)
}

func TestExistentialThereExcluded(t *testing.T) {
	ext := NewExtractor(
		lexicon.NewCountabilityTable(map[string]bool{"dog": true}),
		DefaultTagSet(corpus.FormatCoNLL),
		LookupByForm,
	)
	sent := pendingSentence(
		flatTok("1", "There", "DET", "EX", "2"),
		flatTok("2", "dog", "NOUN", "NN", "0"),
	)
	assert.Empty(t, ext.Extract(sent))
}

func TestNormalizationCollapsesCase(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"dog": true})
	obs := ext.Extract(indexSentence(tok(" The", "DT", 2), tok("DOG", "NN", 0)))
	assert.Equal(t, []Observation{{Determiner: "the", Class: SingularOrMass}}, obs)
}

func TestMultipleDeterminersInSentence(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"dog": true, "water": false})
	sent := indexSentence(
		tok("the", "DT", 2),
		tok("dog", "NN", 3),
		tok("drinks", "VBZ", 0),
		tok("some", "DT", 5),
		tok("water", "NN", 3),
		tok("two", "CD", 7),
		tok("bowls", "NNS", 3),
	)
	obs := ext.Extract(sent)
	assert.Equal(t, []Observation{
		{Determiner: "the", Class: SingularOrMass},
		{Determiner: "some", Class: Mass},
		{Determiner: "two", Class: Plural},
	}, obs)
}

func TestIndexModeHeadBeforeDeterminer(t *testing.T) {
	ext := xmlExtractor(map[string]bool{"dog": true})
	obs := ext.Extract(indexSentence(tok("dog", "NN", 0), tok("this", "DT", 1)))
	assert.Equal(t, []Observation{{Determiner: "this", Class: SingularOrMass}}, obs)
}

func TestPendingHeadMode(t *testing.T) {
	ext := NewExtractor(
		lexicon.NewCountabilityTable(map[string]bool{"dog": true}),
		DefaultTagSet(corpus.FormatCoNLLX),
		LookupByForm,
	)
	sent := pendingSentence(
		flatTok("1", "The", "D", "DT", "3"),
		flatTok("2", "big", "A", "JJ", "3"),
		flatTok("3", "dog", "N", "NN", "0"),
		flatTok("4", "barks", "V", "VBZ", "3"),
	)
	obs := ext.Extract(sent)
	assert.Equal(t, []Observation{{Determiner: "the", Class: SingularOrMass}}, obs)
}

func TestPendingHeadPrecedingDeterminerNotResolved(t *testing.T) {
	ext := NewExtractor(
		lexicon.NewCountabilityTable(map[string]bool{"dog": true}),
		DefaultTagSet(corpus.FormatCoNLL),
		LookupByForm,
	)
	sent := pendingSentence(
		flatTok("1", "dog", "NOUN", "NN", "0"),
		flatTok("2", "this", "DET", "DT", "1"),
	)
	assert.Empty(t, ext.Extract(sent))
}

func TestPendingHeadConsumedOnce(t *testing.T) {
	ext := NewExtractor(
		lexicon.NewCountabilityTable(map[string]bool{}),
		DefaultTagSet(corpus.FormatCoNLL),
		LookupByForm,
	)
	sent := pendingSentence(
		flatTok("1", "all", "DET", "PDT", "3"),
		flatTok("2", "the", "DET", "DT", "3"),
		flatTok("3", "dogs", "NOUN", "NNS", "0"),
		flatTok("3", "dogs", "NOUN", "NNS", "0"),
	)
	obs := ext.Extract(sent)
	assert.Equal(t, []Observation{{Determiner: "the", Class: Plural}}, obs)
}

func TestLookupByLemma(t *testing.T) {
	ext := NewExtractor(
		lexicon.NewCountabilityTable(map[string]bool{"mouse": true}),
		DefaultTagSet(corpus.FormatXML),
		LookupByLemma,
	)
	sent := indexSentence(
		corpus.Token{Form: "a", FinePOS: "DT", Head: 2},
		corpus.Token{Form: "Mouse", Lemma: "mouse", FinePOS: "NN"},
	)
	assert.Len(t, ext.Extract(sent), 1)
	sent.Tokens[1].Lemma = "_"
	sent.Tokens[1].Form = "mouse"
	assert.Len(t, ext.Extract(sent), 1)
}

func TestNilLexicon(t *testing.T) {
	ext := NewExtractor(nil, DefaultTagSet(corpus.FormatXML), "")
	assert.Empty(t, ext.Extract(indexSentence(tok("the", "DT", 2), tok("dog", "NN", 0))))
	assert.Len(t, ext.Extract(indexSentence(tok("the", "DT", 2), tok("dogs", "NNS", 0))), 1)
}

func TestEachStopsEarly(t *testing.T) {
	ext := xmlExtractor(map[string]bool{})
	sent := indexSentence(
		tok("these", "DT", 3), tok("those", "DT", 3), tok("dogs", "NNS", 0))
	var n int
	for range ext.Each(sent) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestSentenceBoundaryResetEndToEnd(t *testing.T) {
	data := strings.Join([]string{
		"1\tThe\tthe\tDET\tDT\t_\t2\tdet\t_\t_",
		"2\tdog\tdog\tNOUN\tNN\t_\t0\troot\t_\t_",
		"1\tA\ta\tDET\tDT\t_\t2\tdet\t_\t_",
		"2\tcat\tcat\tNOUN\tNN\t_\t0\troot\t_\t_",
	}, "\n")
	ext := NewExtractor(
		lexicon.NewCountabilityTable(map[string]bool{"dog": true, "cat": false}),
		DefaultTagSet(corpus.FormatCoNLL),
		LookupByForm,
	)
	var obs []Observation
	for sent, err := range corpus.NewCoNLLReaderSource("test", strings.NewReader(data)).Sentences() {
		require.NoError(t, err)
		obs = append(obs, ext.Extract(sent)...)
	}
	assert.Equal(t, []Observation{
		{Determiner: "the", Class: SingularOrMass},
		{Determiner: "a", Class: Mass},
	}, obs)
}

func TestDeterminerDoesNotResolveAcrossSentences(t *testing.T) {
	data := strings.Join([]string{
		"1\tdog\tdog\tNOUN\tNN\t_\t0\troot\t_\t_",
		"2\tbarks\tbark\tVERB\tVBZ\t_\t1\tdep\t_\t_",
		"1\tThe\tthe\tDET\tDT\t_\t2\tdet\t_\t_",
	}, "\n")
	ext := NewExtractor(
		lexicon.NewCountabilityTable(map[string]bool{"dog": true}),
		DefaultTagSet(corpus.FormatCoNLL),
		LookupByForm,
	)
	var obs []Observation
	for sent, err := range corpus.NewCoNLLReaderSource("test", strings.NewReader(data)).Sentences() {
		require.NoError(t, err)
		obs = append(obs, ext.Extract(sent)...)
	}
	assert.Empty(t, obs)
}

func TestNounClassStrings(t *testing.T) {
	for _, cls := range AllClasses {
		parsed, err := ParseNounClass(cls.String())
		require.NoError(t, err)
		assert.Equal(t, cls, parsed)
	}
	_, err := ParseNounClass("UNKNOWN")
	assert.Error(t, err)
}

func TestTagSetValidate(t *testing.T) {
	assert.Error(t, TagSet{}.Validate())
	assert.NoError(t, DefaultTagSet(corpus.FormatVertical).Validate())
}
