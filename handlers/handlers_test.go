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

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"detcount/pairs"
	"detcount/results"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProvider struct {
	tables map[string]*results.CountTable
	err    error
}

func (mp *memProvider) ListCorpora() ([]string, error) {
	if mp.err != nil {
		return nil, mp.err
	}
	return []string{"wiki"}, nil
}

func (mp *memProvider) LoadCounts(corpusID string) (*results.CountTable, error) {
	if mp.err != nil {
		return nil, mp.err
	}
	t, ok := mp.tables[corpusID]
	if !ok {
		return nil, results.ErrNotFound
	}
	return t, nil
}

func newTestEngine(provider CountsProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	actions := NewActions(provider, VersionInfo{Version: "test"})
	engine.GET("/", actions.ServiceInfo)
	engine.GET("/corpora", actions.Corpora)
	engine.GET("/counts/:corpusId", actions.Counts)
	engine.GET("/counts/:corpusId/:det", actions.DeterminerCounts)
	return engine
}

func newTestProvider() *memProvider {
	table := results.NewCountTable()
	table.AddCount("the", pairs.SingularOrMass, 10)
	table.AddCount("the", pairs.Plural, 5)
	table.AddCount("a", pairs.SingularOrMass, 8)
	table.AddCount("some", pairs.Mass, 1)
	return &memProvider{tables: map[string]*results.CountTable{"wiki": table}}
}

func doGet(engine *gin.Engine, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestServiceInfo(t *testing.T) {
	rec := doGet(newTestEngine(newTestProvider()), "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp serviceInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp.Version.Version)
}

func TestCorpora(t *testing.T) {
	rec := doGet(newTestEngine(newTestProvider()), "/corpora")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp corporaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"wiki"}, resp.Corpora)
}

func TestCounts(t *testing.T) {
	rec := doGet(newTestEngine(newTestProvider()), "/counts/wiki")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp countsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 3)
	assert.Equal(t, "the", resp.Rows[0].Det)
	assert.Equal(t, int64(15), resp.Rows[0].Total)
	assert.Equal(t, "a", resp.Rows[1].Det)
	assert.Equal(t, "some", resp.Rows[2].Det)
}

func TestCountsMinTotal(t *testing.T) {
	engine := newTestEngine(newTestProvider())
	rec := doGet(engine, "/counts/wiki?minTotal=8")
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp countsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 2)

	rec = doGet(engine, "/counts/wiki?minTotal=foo")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCountsUnknownCorpus(t *testing.T) {
	rec := doGet(newTestEngine(newTestProvider()), "/counts/efcamdat")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeterminerCounts(t *testing.T) {
	engine := newTestEngine(newTestProvider())
	rec := doGet(engine, "/counts/wiki/The")
	assert.Equal(t, http.StatusOK, rec.Code)
	var row countsRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, int64(10), row.SingularOrMass)
	assert.Equal(t, int64(5), row.Plural)
	assert.Equal(t, int64(0), row.Mass)

	rec = doGet(engine, "/counts/wiki/these")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProviderFailure(t *testing.T) {
	engine := newTestEngine(&memProvider{err: errors.New("connection refused")})
	assert.Equal(t, http.StatusInternalServerError, doGet(engine, "/corpora").Code)
	assert.Equal(t, http.StatusInternalServerError, doGet(engine, "/counts/wiki").Code)
}
