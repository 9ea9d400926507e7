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

package worker

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"detcount/corpus"
	"detcount/lexicon"
	"detcount/merror"
	"detcount/pairs"
	"detcount/results"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cxLine(id, form, cpos, fpos, head string) string {
	return strings.Join([]string{id, form, strings.ToLower(form), cpos, fpos, "_", head, "dep", "_", "_"}, "\t")
}

func writeShard(t *testing.T, path string, lines ...string) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

func createShards(t *testing.T) *corpus.CoNLLXSource {
	dir := t.TempDir()
	writeShard(
		t, filepath.Join(dir, "part-0.gz"),
		`<doc id="1">`,
		cxLine("1", "The", "D", "DT", "2"),
		cxLine("2", "book", "N", "NN", "0"),
		cxLine("1", "the", "D", "DT", "2"),
		cxLine("2", "dogs", "N", "NNS", "0"),
		"</doc>",
	)
	writeShard(
		t, filepath.Join(dir, "part-1.gz"),
		`<doc id="2">`,
		cxLine("1", "Some", "D", "DT", "2"),
		cxLine("2", "water", "N", "NN", "0"),
		cxLine("1", "a", "D", "DT", "2"),
		cxLine("2", "book", "N", "NN", "0"),
		"</doc>",
	)
	writeShard(
		t, filepath.Join(dir, "part-2.gz"),
		`<doc id="3">`,
		cxLine("1", "the", "D", "DT", "2"),
		cxLine("2", "unicorn", "N", "NN", "0"),
		cxLine("1", "These", "D", "DT", "2"),
		cxLine("2", "dogs", "N", "NNS", "0"),
		"</doc>",
	)
	pattern := filepath.Join(dir, "*.gz")
	files, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.Len(t, files, 3)
	return corpus.NewCoNLLXSource(pattern, files, "")
}

func newExtractor() *pairs.Extractor {
	lex := lexicon.NewCountabilityTable(map[string]bool{"book": true, "water": false})
	return pairs.NewExtractor(lex, pairs.DefaultTagSet(corpus.FormatCoNLLX), pairs.LookupByForm)
}

func expectedTable() *results.CountTable {
	ans := results.NewCountTable()
	ans.AddCount("the", pairs.SingularOrMass, 1)
	ans.AddCount("the", pairs.Plural, 1)
	ans.AddCount("some", pairs.Mass, 1)
	ans.AddCount("a", pairs.SingularOrMass, 1)
	ans.AddCount("these", pairs.Plural, 1)
	return ans
}

func TestRunSequential(t *testing.T) {
	res, err := Run(context.Background(), Job{
		CorpusID:  "wiki",
		Source:    createShards(t),
		Extractor: newExtractor(),
	})
	require.NoError(t, err)
	assert.True(t, expectedTable().Equal(res.Counts))
	assert.Equal(t, "wiki", res.Report.CorpusID)
	assert.NotEmpty(t, res.Report.RunID)
	assert.Equal(t, int64(6), res.Report.NumSentences)
	assert.Equal(t, int64(5), res.Report.NumObservations)
	assert.Equal(t, 5, res.Report.NumPairs)
	assert.Equal(t, 4, res.Report.NumDeterminers)
	assert.Len(t, res.Report.Shards, 1)
}

func TestRunParallelEqualsSequential(t *testing.T) {
	src := createShards(t)
	seq, err := Run(context.Background(), Job{CorpusID: "wiki", Source: src, Extractor: newExtractor()})
	require.NoError(t, err)
	for _, numWorkers := range []int{2, 3, 8} {
		par, err := Run(context.Background(), Job{
			CorpusID:   "wiki",
			Source:     src,
			Extractor:  newExtractor(),
			NumWorkers: numWorkers,
		})
		require.NoError(t, err)
		assert.True(t, seq.Counts.Equal(par.Counts))
		assert.Len(t, par.Report.Shards, 3)
		assert.Equal(t, seq.Report.NumSentences, par.Report.NumSentences)
	}
}

func TestRunShardError(t *testing.T) {
	src := createShards(t)
	broken := filepath.Join(filepath.Dir(src.Files()[0]), "part-3.gz")
	writeShard(t, broken, `<doc id="4">`, "1\tfoo\tfoo")
	files := append(slices.Clone(src.Files()), broken)
	_, err := Run(context.Background(), Job{
		CorpusID:   "wiki",
		Source:     corpus.NewCoNLLXSource("test", files, ""),
		Extractor:  newExtractor(),
		NumWorkers: 2,
	})
	var recErr merror.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, 2, recErr.Line)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Job{
		CorpusID:  "wiki",
		Source:    createShards(t),
		Extractor: newExtractor(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

type panickingSource struct{}

func (panickingSource) Name() string {
	return "panicking"
}

func (panickingSource) Sentences() iter.Seq2[*corpus.Sentence, error] {
	return func(yield func(*corpus.Sentence, error) bool) {
		panic("broken reader")
	}
}

func TestRunRecoversPanic(t *testing.T) {
	_, err := Run(context.Background(), Job{
		CorpusID:  "broken",
		Source:    panickingSource{},
		Extractor: newExtractor(),
	})
	var recovered merror.RecoveredError
	require.True(t, errors.As(err, &recovered))
	assert.Contains(t, recovered.Error(), "broken reader")
}
