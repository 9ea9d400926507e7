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
	"time"

	"github.com/bytedance/sonic"
)

// ---

// ShardLog describes processing of a single corpus shard (file)
type ShardLog struct {
	Shard           string
	NumSentences    int64
	NumObservations int64
	Begin           time.Time
	End             time.Time
	Err             error
}

func (sl ShardLog) Duration() time.Duration {
	return sl.End.Sub(sl.Begin)
}

func (sl ShardLog) MarshalJSON() ([]byte, error) {
	var errMsg string
	if sl.Err != nil {
		errMsg = sl.Err.Error()
	}
	return sonic.Marshal(
		struct {
			Shard           string  `json:"shard"`
			NumSentences    int64   `json:"numSentences"`
			NumObservations int64   `json:"numObservations"`
			DurationSecs    float64 `json:"durationSecs"`
			Error           string  `json:"error,omitempty"`
		}{
			Shard:           sl.Shard,
			NumSentences:    sl.NumSentences,
			NumObservations: sl.NumObservations,
			DurationSecs:    sl.Duration().Seconds(),
			Error:           errMsg,
		},
	)
}

// RunReport summarizes an extraction run over a whole corpus
type RunReport struct {
	RunID           string
	CorpusID        string
	NumSentences    int64
	NumObservations int64
	NumPairs        int
	NumDeterminers  int
	Shards          []ShardLog
	Begin           time.Time
	End             time.Time
}

func (rr *RunReport) AddShard(sl ShardLog) {
	rr.Shards = append(rr.Shards, sl)
	rr.NumSentences += sl.NumSentences
	rr.NumObservations += sl.NumObservations
}

// SentencesPerSec returns avg. processing speed
func (rr *RunReport) SentencesPerSec() float64 {
	dur := rr.End.Sub(rr.Begin).Seconds()
	if dur <= 0 {
		return 0
	}
	return float64(rr.NumSentences) / dur
}

func (rr *RunReport) MarshalJSON() ([]byte, error) {
	var t0, t1 *time.Time
	if !rr.Begin.IsZero() {
		t0 = &rr.Begin
	}
	if !rr.End.IsZero() {
		t1 = &rr.End
	}
	return sonic.Marshal(
		struct {
			RunID           string     `json:"runId"`
			CorpusID        string     `json:"corpusId"`
			NumSentences    int64      `json:"numSentences"`
			NumObservations int64      `json:"numObservations"`
			NumPairs        int        `json:"numPairs"`
			NumDeterminers  int        `json:"numDeterminers"`
			Shards          []ShardLog `json:"shards"`
			Begin           *time.Time `json:"begin,omitempty"`
			End             *time.Time `json:"end,omitempty"`
			SentencesPerSec float64    `json:"sentencesPerSec"`
		}{
			RunID:           rr.RunID,
			CorpusID:        rr.CorpusID,
			NumSentences:    rr.NumSentences,
			NumObservations: rr.NumObservations,
			NumPairs:        rr.NumPairs,
			NumDeterminers:  rr.NumDeterminers,
			Shards:          rr.Shards,
			Begin:           t0,
			End:             t1,
			SentencesPerSec: rr.SentencesPerSec(),
		},
	)
}
