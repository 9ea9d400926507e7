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

const (
	openAPIVersion = "3.1.0"
	jsonMediaType  = "application/json"
)

var (
	rowSchema = Property{
		Type: "object",
		Properties: map[string]Property{
			"det":            {Type: "string"},
			"mass":           {Type: "integer"},
			"plural":         {Type: "integer"},
			"singularOrMass": {Type: "integer"},
			"total":          {Type: "integer"},
		},
	}

	corpusIDParam = Parameter{
		Name:        "corpusId",
		In:          "path",
		Description: "An ID of a processed corpus",
		Required:    true,
		Schema:      ParamSchema{Type: "string"},
	}
)

func jsonResponse(descr string, schema Property) Response {
	return Response{
		Description: descr,
		Content:     map[string]MediaType{jsonMediaType: {Schema: schema}},
	}
}

func notFoundResponse(descr string) Response {
	return Response{Description: descr}
}

func NewDocument(ver, url string) *Document {
	paths := make(map[string]Methods)
	zero := 0

	paths["/corpora"] = Methods{
		Get: &Method{
			Description: "Lists corpora with available determiner counts.",
			OperationID: "Corpora",
			Parameters:  []Parameter{},
			Responses: map[string]Response{
				"200": jsonResponse(
					"List of corpora IDs",
					Property{
						Type: "object",
						Properties: map[string]Property{
							"corpora": {Type: "array", Items: &Property{Type: "string"}},
						},
					},
				),
			},
		},
	}

	paths["/counts/{corpusId}"] = Methods{
		Get: &Method{
			Description: "Shows counts of determiners modifying MASS, PLURAL and SINGULAR_OR_MASS " +
				"nouns ordered by total frequency.",
			OperationID: "Counts",
			Parameters: []Parameter{
				corpusIDParam,
				{
					Name:        "minTotal",
					In:          "query",
					Description: "Skip determiners with total frequency lower than the value",
					Required:    false,
					Schema:      ParamSchema{Type: "integer", Minimum: &zero},
				},
			},
			Responses: map[string]Response{
				"200": jsonResponse(
					"Count table rows",
					Property{
						Type: "object",
						Properties: map[string]Property{
							"corpusId": {Type: "string"},
							"rows":     {Type: "array", Items: &rowSchema},
						},
					},
				),
				"404": notFoundResponse("Corpus counts not found"),
			},
		},
	}

	paths["/counts/{corpusId}/{det}"] = Methods{
		Get: &Method{
			Description: "Shows counts of a single determiner.",
			OperationID: "DeterminerCounts",
			Parameters: []Parameter{
				corpusIDParam,
				{
					Name:        "det",
					In:          "path",
					Description: "A determiner (case insensitive)",
					Required:    true,
					Schema:      ParamSchema{Type: "string"},
				},
			},
			Responses: map[string]Response{
				"200": jsonResponse("Count table row", rowSchema),
				"404": notFoundResponse("Corpus or determiner not found"),
			},
		},
	}

	return &Document{
		OpenAPI: openAPIVersion,
		Info: Info{
			Title:       "DETCOUNT",
			Description: "Determiner and noun countability class co-occurrence counts",
			Version:     ver,
		},
		Servers: []Server{{URL: url}},
		Paths:   paths,
	}
}
