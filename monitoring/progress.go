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

package monitoring

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const (
	DfltProgressEachNth = 100000
)

// Progress counts processed sentences and periodically
// logs the state. It can be shared by multiple workers.
type Progress struct {
	corpusID     string
	eachNth      int64
	numSentences atomic.Int64
	numObs       atomic.Int64
}

// Sentence registers a processed sentence with `numObs`
// found observations.
func (p *Progress) Sentence(numObs int) {
	p.numObs.Add(int64(numObs))
	n := p.numSentences.Add(1)
	if p.eachNth > 0 && n%p.eachNth == 0 {
		log.Info().
			Str("corpus", p.corpusID).
			Int64("sentences", n).
			Int64("observations", p.numObs.Load()).
			Msg("extraction progress")
	}
}

func (p *Progress) NumSentences() int64 {
	return p.numSentences.Load()
}

func (p *Progress) NumObservations() int64 {
	return p.numObs.Load()
}

func NewProgress(corpusID string, eachNth int) *Progress {
	return &Progress{
		corpusID: corpusID,
		eachNth:  int64(eachNth),
	}
}
