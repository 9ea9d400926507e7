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
	"fmt"
	"net/http"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

func findHTTPProtocol(req *http.Request) string {
	if prot := req.Header.Get("x-forwarded-proto"); prot != "" {
		return prot
	}
	if req.TLS != nil {
		return "https"
	}
	return "http"
}

func findHTTPServer(req *http.Request) string {
	if serv := req.Header.Get("x-forwarded-host"); serv != "" {
		return serv
	}
	return req.Host
}

func findPublicURL(publicURL string, req *http.Request) string {
	if publicURL != "" {
		return publicURL
	}
	return fmt.Sprintf("%s://%s", findHTTPProtocol(req), findHTTPServer(req))
}

// MkHandleRequest creates a handler serving the API description.
// With empty publicURL, the server URL is derived from the request
// (proxy headers are respected).
func MkHandleRequest(ver, publicURL string) func(ctx *gin.Context) {
	return func(ctx *gin.Context) {
		ans := NewDocument(ver, findPublicURL(publicURL, ctx.Request))
		uniresp.WriteJSONResponse(ctx.Writer, ans)
	}
}
