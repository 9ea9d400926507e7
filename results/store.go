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

package results

import (
	"errors"
	"sort"

	"github.com/czcorpus/cnc-gokit/fs"
)

var ErrNotFound = errors.New("counts not found")

// FileStore provides count tables stored in pair artifact files.
// Files are read on each request as they may be rewritten by
// an extraction run.
type FileStore struct {
	paths map[string]string
}

func (store *FileStore) ListCorpora() ([]string, error) {
	ans := make([]string, 0, len(store.paths))
	for corpusID := range store.paths {
		ans = append(ans, corpusID)
	}
	sort.Strings(ans)
	return ans, nil
}

func (store *FileStore) LoadCounts(corpusID string) (*CountTable, error) {
	path, ok := store.paths[corpusID]
	if !ok || !fs.PathExists(path) {
		return nil, ErrNotFound
	}
	return ReadPairsFile(path)
}

// NewFileStore creates a store from a map corpusID => pairs file path
func NewFileStore(paths map[string]string) *FileStore {
	return &FileStore{paths: paths}
}
