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

// Package worker runs the extraction over a corpus, either
// sequentially or with one goroutine per corpus shard.
package worker

import (
	"context"
	"fmt"
	"time"

	"detcount/corpus"
	"detcount/merror"
	"detcount/monitoring"
	"detcount/pairs"
	"detcount/results"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DfltNumWorkers = 1
)

// Job describes an extraction of a single corpus
type Job struct {
	CorpusID  string
	Source    corpus.Source
	Extractor *pairs.Extractor

	// NumWorkers limits the number of shards processed in parallel.
	// Values < 2 (or a non-sharded source) mean sequential processing.
	NumWorkers int

	// ProgressEachNth specifies how often a progress is logged
	// (in number of sentences, 0 = never)
	ProgressEachNth int
}

// Result is an outcome of a finished job
type Result struct {
	Counts *results.CountTable
	Report *monitoring.RunReport
}

// processSource folds all the observations found in src into a new table.
// A panic in parsing/extraction is converted to an error.
func processSource(
	ctx context.Context,
	src corpus.Source,
	ext *pairs.Extractor,
	progress *monitoring.Progress,
) (table *results.CountTable, shardLog monitoring.ShardLog, ansErr error) {
	shardLog = monitoring.ShardLog{Shard: src.Name(), Begin: time.Now()}
	table = results.NewCountTable()
	defer func() {
		if r := recover(); r != nil {
			ansErr = merror.RecoveredError{Msg: merror.PanicValueToErr(r).Error()}
		}
		shardLog.End = time.Now()
		shardLog.Err = ansErr
	}()
	for sent, err := range src.Sentences() {
		if err != nil {
			return table, shardLog, err
		}
		if err := ctx.Err(); err != nil {
			return table, shardLog, err
		}
		numObs := table.Accumulate(ext.Each(sent))
		shardLog.NumSentences++
		shardLog.NumObservations += int64(numObs)
		progress.Sentence(numObs)
	}
	return table, shardLog, nil
}

func runSequential(ctx context.Context, job Job, progress *monitoring.Progress, report *monitoring.RunReport) (*results.CountTable, error) {
	table, shardLog, err := processSource(ctx, job.Source, job.Extractor, progress)
	report.AddShard(shardLog)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func runParallel(
	ctx context.Context,
	job Job,
	shards []corpus.Source,
	progress *monitoring.Progress,
	report *monitoring.RunReport,
) (*results.CountTable, error) {
	tables := make([]*results.CountTable, len(shards))
	logs := make([]monitoring.ShardLog, len(shards))
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(job.NumWorkers)
	for i, shard := range shards {
		grp.Go(func() error {
			table, shardLog, err := processSource(grpCtx, shard, job.Extractor, progress)
			tables[i] = table
			logs[i] = shardLog
			if err != nil {
				return fmt.Errorf("failed to process shard %s: %w", shard.Name(), err)
			}
			log.Debug().
				Str("corpus", job.CorpusID).
				Str("shard", shard.Name()).
				Int64("sentences", shardLog.NumSentences).
				Msg("shard done")
			return nil
		})
	}
	err := grp.Wait()
	for _, sl := range logs {
		report.AddShard(sl)
	}
	if err != nil {
		return nil, err
	}
	// merged in shard order
	ans := results.NewCountTable()
	for _, table := range tables {
		ans.Merge(table)
	}
	return ans, nil
}

// Run processes the whole corpus. There is no partial result,
// the first error stops the job.
func Run(ctx context.Context, job Job) (*Result, error) {
	report := &monitoring.RunReport{
		RunID:    uuid.New().String(),
		CorpusID: job.CorpusID,
		Begin:    time.Now(),
	}
	progress := monitoring.NewProgress(job.CorpusID, job.ProgressEachNth)

	var table *results.CountTable
	var err error
	sharded, isSharded := job.Source.(corpus.ShardedSource)
	if isSharded && job.NumWorkers > 1 {
		var shards []corpus.Source
		shards, err = sharded.Shards()
		if err != nil {
			return nil, fmt.Errorf("failed to get corpus shards: %w", err)
		}
		log.Info().
			Str("corpus", job.CorpusID).
			Int("numShards", len(shards)).
			Int("numWorkers", job.NumWorkers).
			Msg("running parallel extraction")
		table, err = runParallel(ctx, job, shards, progress, report)

	} else {
		table, err = runSequential(ctx, job, progress, report)
	}
	report.End = time.Now()
	if err != nil {
		return nil, err
	}
	report.NumPairs = table.Len()
	report.NumDeterminers = table.NumDeterminers()
	return &Result{Counts: table, Report: report}, nil
}
