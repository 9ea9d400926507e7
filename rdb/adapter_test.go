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

package rdb

import (
	"context"
	"testing"

	"detcount/monitoring"
	"detcount/pairs"
	"detcount/results"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T) (*Adapter, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	a := &Adapter{
		ctx:       context.Background(),
		c:         redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		keyPrefix: "test",
	}
	t.Cleanup(func() { a.Close() })
	return a, mr
}

func sampleTable() *results.CountTable {
	table := results.NewCountTable()
	table.AddCount("the", pairs.SingularOrMass, 10)
	table.AddCount("the", pairs.Plural, 4)
	table.AddCount("a", pairs.SingularOrMass, 7)
	return table
}

func TestPairFieldRoundTrip(t *testing.T) {
	det, cls, err := parsePairField(pairField("some", pairs.Mass))
	require.NoError(t, err)
	assert.Equal(t, "some", det)
	assert.Equal(t, pairs.Mass, cls)

	_, _, err = parsePairField("no-separator")
	assert.Error(t, err)
	_, _, err = parsePairField("the\tFOO")
	assert.Error(t, err)
}

func TestStoreAndLoadCounts(t *testing.T) {
	a, mr := newTestAdapter(t)
	report := &monitoring.RunReport{RunID: "r1", CorpusID: "wiki"}
	require.NoError(t, a.StoreCounts("wiki", sampleTable(), report))

	loaded, err := a.LoadCounts("wiki")
	require.NoError(t, err)
	assert.True(t, sampleTable().Equal(loaded))

	assert.Equal(t, "10", mr.HGet("test:counts:wiki", "the\tSINGULAR_OR_MASS"))

	rawReport, err := a.LoadReport("wiki")
	require.NoError(t, err)
	assert.Contains(t, string(rawReport), `"runId":"r1"`)
}

func TestStoreCountsReplacesTable(t *testing.T) {
	a, _ := newTestAdapter(t)
	require.NoError(t, a.StoreCounts("wiki", sampleTable(), nil))
	smaller := results.NewCountTable()
	smaller.AddCount("this", pairs.Mass, 1)
	require.NoError(t, a.StoreCounts("wiki", smaller, nil))

	loaded, err := a.LoadCounts("wiki")
	require.NoError(t, err)
	assert.True(t, smaller.Equal(loaded))
}

func TestLoadUnknownCorpus(t *testing.T) {
	a, _ := newTestAdapter(t)
	_, err := a.LoadCounts("missing")
	assert.ErrorIs(t, err, results.ErrNotFound)
	_, err = a.LoadReport("missing")
	assert.ErrorIs(t, err, results.ErrNotFound)
}

func TestListCorpora(t *testing.T) {
	a, _ := newTestAdapter(t)
	require.NoError(t, a.StoreCounts("wiki", sampleTable(), nil))
	require.NoError(t, a.StoreCounts("efcamdat", sampleTable(), nil))
	require.NoError(t, a.StoreCounts("wiki", sampleTable(), nil))

	corpora, err := a.ListCorpora()
	require.NoError(t, err)
	assert.Equal(t, []string{"efcamdat", "wiki"}, corpora)
}

func TestConfDefaults(t *testing.T) {
	var empty *Conf
	assert.False(t, empty.IsConfigured())

	conf := &Conf{Host: "localhost"}
	conf.ValidateAndDefaults()
	assert.Equal(t, DfltPort, conf.Port)
	assert.Equal(t, DfltKeyPrefix, conf.KeyPrefix)
}
