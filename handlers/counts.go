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
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"detcount/lexicon"
	"detcount/results"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type serviceInfoResponse struct {
	Name    string      `json:"name"`
	Version VersionInfo `json:"version"`
}

type corporaResponse struct {
	Corpora []string `json:"corpora"`
}

type countsRow struct {
	results.Row
	Total int64 `json:"total"`
}

type countsResponse struct {
	CorpusID string      `json:"corpusId"`
	Rows     []countsRow `json:"rows"`
}

func (a *Actions) ServiceInfo(ctx *gin.Context) {
	uniresp.WriteJSONResponse(
		ctx.Writer,
		serviceInfoResponse{Name: "DETCOUNT", Version: a.version},
	)
}

func (a *Actions) Corpora(ctx *gin.Context) {
	corpora, err := a.provider.ListCorpora()
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	if corpora == nil {
		corpora = []string{}
	}
	uniresp.WriteJSONResponse(ctx.Writer, corporaResponse{Corpora: corpora})
}

func (a *Actions) loadCountsOrRespond(ctx *gin.Context, corpusID string) (*results.CountTable, bool) {
	table, err := a.provider.LoadCounts(corpusID)
	if errors.Is(err, results.ErrNotFound) {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("counts for corpus `%s` not found", corpusID),
			http.StatusNotFound,
		)
		return nil, false

	} else if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return nil, false
	}
	return table, true
}

// Counts returns all the rows of a corpus count table ordered
// by total frequency. Argument `minTotal` drops less frequent
// determiners.
func (a *Actions) Counts(ctx *gin.Context) {
	var minTotal int64
	if v := ctx.Query("minTotal"); v != "" {
		var err error
		minTotal, err = strconv.ParseInt(v, 10, 64)
		if err != nil || minTotal < 0 {
			uniresp.RespondWithErrorJSON(
				ctx,
				fmt.Errorf("invalid `minTotal` value `%s`", v),
				http.StatusBadRequest,
			)
			return
		}
	}
	corpusID := ctx.Param("corpusId")
	table, ok := a.loadCountsOrRespond(ctx, corpusID)
	if !ok {
		return
	}
	ans := countsResponse{CorpusID: corpusID, Rows: []countsRow{}}
	for _, row := range table.Rows() {
		if row.Total() < minTotal {
			continue
		}
		ans.Rows = append(ans.Rows, countsRow{Row: row, Total: row.Total()})
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) DeterminerCounts(ctx *gin.Context) {
	corpusID := ctx.Param("corpusId")
	table, ok := a.loadCountsOrRespond(ctx, corpusID)
	if !ok {
		return
	}
	det := lexicon.Normalize(ctx.Param("det"))
	row, ok := table.Row(det)
	if !ok {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("determiner `%s` not found in `%s`", det, corpusID),
			http.StatusNotFound,
		)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, countsRow{Row: row, Total: row.Total()})
}
