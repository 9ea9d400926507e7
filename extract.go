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

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"detcount/cnf"
	"detcount/corpus"
	"detcount/lexicon"
	"detcount/monitoring"
	"detcount/pairs"
	"detcount/rdb"
	"detcount/results"
	"detcount/worker"

	"github.com/rs/zerolog/log"
)

type countsStore interface {
	StoreCounts(corpusID string, table *results.CountTable, report *monitoring.RunReport) error
}

func extractCorpus(
	ctx context.Context,
	conf *cnf.Conf,
	corpConf *cnf.CorpusConf,
	lex *lexicon.CountabilityTable,
	store countsStore,
) (*worker.Result, error) {
	src, err := corpus.Open(&corpConf.CorpusSetup)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus %s: %w", corpConf.ID, err)
	}
	ext := pairs.NewExtractor(lex, *corpConf.Tags, corpConf.LookupKey)
	ans, err := worker.Run(ctx, worker.Job{
		CorpusID:        corpConf.ID,
		Source:          src,
		Extractor:       ext,
		NumWorkers:      conf.NumWorkers,
		ProgressEachNth: conf.ProgressEachNth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract pairs from %s: %w", corpConf.ID, err)
	}
	if corpConf.PairsOutput != "" {
		if err := ans.Counts.WritePairsFile(corpConf.PairsOutput); err != nil {
			return nil, err
		}
		log.Info().Str("corpus", corpConf.ID).Str("path", corpConf.PairsOutput).Msg("pairs written")
	}
	if corpConf.TableOutput != "" {
		if err := ans.Counts.WriteTableFile(corpConf.TableOutput); err != nil {
			return nil, err
		}
		log.Info().Str("corpus", corpConf.ID).Str("path", corpConf.TableOutput).Msg("count table written")
	}
	if store != nil {
		if err := store.StoreCounts(corpConf.ID, ans.Counts, ans.Report); err != nil {
			return nil, err
		}
	}
	return ans, nil
}

func logReport(report *monitoring.RunReport) {
	data, err := report.MarshalJSON()
	if err != nil {
		log.Error().Err(err).Str("corpus", report.CorpusID).Msg("failed to serialize run report")
		return
	}
	log.Info().RawJSON("report", data).Msg("extraction finished")
}

func runExtract(conf *cnf.Conf, corpusID string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lex, err := lexicon.LoadFile(conf.LexiconPath, conf.LexiconDelimiterRune())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load countability lexicon")
		return
	}
	log.Info().Str("path", conf.LexiconPath).Int("lemmas", lex.Len()).Msg("lexicon loaded")

	var store countsStore
	if conf.Redis.IsConfigured() {
		radapter := rdb.NewAdapter(ctx, &conf.Redis)
		defer radapter.Close()
		if err := radapter.TestConnection(redisConnectionTestTimeout); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
			return
		}
		store = radapter
	}

	corpora := conf.Corpora
	if corpusID != "" {
		corpConf := conf.GetCorpus(corpusID)
		if corpConf == nil {
			log.Fatal().Str("corpus", corpusID).Msg("corpus not configured")
			return
		}
		corpora = []*cnf.CorpusConf{corpConf}
	}
	for _, corpConf := range corpora {
		log.Info().
			Str("corpus", corpConf.ID).
			Str("format", string(corpConf.Format)).
			Msg("starting extraction")
		ans, err := extractCorpus(ctx, conf, corpConf, lex, store)
		if err != nil {
			log.Fatal().Err(err).Str("corpus", corpConf.ID).Msg("extraction failed")
			return
		}
		logReport(ans.Report)
	}
}

// mergePairFiles sums pair artifacts (e.g. produced for separate
// parts of a corpus) into a single one.
func mergePairFiles(outPath string, inPaths []string) error {
	ans := results.NewCountTable()
	for _, p := range inPaths {
		table, err := results.ReadPairsFile(p)
		if err != nil {
			return err
		}
		ans.Merge(table)
		log.Info().Str("path", p).Int("numPairs", table.Len()).Msg("merged pair file")
	}
	if err := ans.WritePairsFile(outPath); err != nil {
		return err
	}
	log.Info().Str("path", outPath).Int("numPairs", ans.Len()).Msg("merged pairs written")
	return nil
}
