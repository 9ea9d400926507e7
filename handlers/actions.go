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
	"detcount/results"
)

// CountsProvider is a source of stored count tables
// (Redis or pair files)
type CountsProvider interface {
	ListCorpora() ([]string, error)
	LoadCounts(corpusID string) (*results.CountTable, error)
}

type Actions struct {
	provider CountsProvider
	version  VersionInfo
}

type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

func NewActions(provider CountsProvider, version VersionInfo) *Actions {
	return &Actions{
		provider: provider,
		version:  version,
	}
}
