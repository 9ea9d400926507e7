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

package openapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchDocument(t *testing.T, publicURL string, hdr map[string]string) Document {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/openapi", MkHandleRequest("1.0.0", publicURL))
	req := httptest.NewRequest(http.MethodGet, "http://localhost:8090/openapi", nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	return doc
}

func TestDocumentPaths(t *testing.T) {
	doc := fetchDocument(t, "", nil)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.Contains(t, doc.Paths, "/corpora")
	assert.Contains(t, doc.Paths, "/counts/{corpusId}")
	assert.Contains(t, doc.Paths, "/counts/{corpusId}/{det}")
	assert.Equal(t, "http://localhost:8090", doc.Servers[0].URL)
}

func TestDocumentBehindProxy(t *testing.T) {
	doc := fetchDocument(
		t,
		"",
		map[string]string{"X-Forwarded-Proto": "https", "X-Forwarded-Host": "api.example.com"},
	)
	assert.Equal(t, "https://api.example.com", doc.Servers[0].URL)
}

func TestDocumentConfiguredURL(t *testing.T) {
	doc := fetchDocument(t, "https://corpora.example.com/detcount", nil)
	assert.Equal(t, "https://corpora.example.com/detcount", doc.Servers[0].URL)
}
