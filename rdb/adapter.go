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

package rdb

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"detcount/monitoring"
	"detcount/pairs"
	"detcount/results"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	fieldSeparator = "\t"
	pingInterval   = 500 * time.Millisecond
)

// Adapter stores and loads count tables. For each corpus there is a hash
// `<prefix>:counts:<corpus>` with fields `det\tCLASS` mapped to counts,
// a JSON run report under `<prefix>:report:<corpus>` and the corpus
// is also registered in the set `<prefix>:corpora`.
type Adapter struct {
	ctx       context.Context
	c         *redis.Client
	keyPrefix string
}

func (a *Adapter) countsKey(corpusID string) string {
	return fmt.Sprintf("%s:counts:%s", a.keyPrefix, corpusID)
}

func (a *Adapter) reportKey(corpusID string) string {
	return fmt.Sprintf("%s:report:%s", a.keyPrefix, corpusID)
}

func (a *Adapter) corporaKey() string {
	return a.keyPrefix + ":corpora"
}

func pairField(det string, cls pairs.NounClass) string {
	return det + fieldSeparator + cls.String()
}

func parsePairField(field string) (string, pairs.NounClass, error) {
	idx := strings.LastIndex(field, fieldSeparator)
	if idx < 0 {
		return "", 0, fmt.Errorf("invalid counts field %q", field)
	}
	cls, err := pairs.ParseNounClass(field[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid counts field %q: %w", field, err)
	}
	return field[:idx], cls, nil
}

// TestConnection pings Redis until it responds or the timeout
// is reached.
func (a *Adapter) TestConnection(timeout time.Duration) error {
	tick := time.NewTicker(pingInterval)
	defer tick.Stop()
	timeoutCh := time.After(timeout)
	for {
		select {
		case <-timeoutCh:
			return fmt.Errorf("failed to connect to Redis within %s", timeout)
		case <-tick.C:
			if err := a.c.Ping(a.ctx).Err(); err != nil {
				log.Warn().Err(err).Msg("waiting for Redis connection")
				continue
			}
			log.Info().Msg("Redis connection OK")
			return nil
		case <-a.ctx.Done():
			return a.ctx.Err()
		}
	}
}

// StoreCounts replaces any previously stored table of the corpus.
// The report is optional.
func (a *Adapter) StoreCounts(corpusID string, table *results.CountTable, report *monitoring.RunReport) error {
	fields := make(map[string]any)
	for _, p := range table.Pairs() {
		fields[pairField(p.Det, p.Class)] = p.Count
	}
	var rawReport []byte
	if report != nil {
		var err error
		rawReport, err = report.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to store counts of %s: %w", corpusID, err)
		}
	}
	_, err := a.c.TxPipelined(a.ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(a.ctx, a.countsKey(corpusID))
		if len(fields) > 0 {
			pipe.HSet(a.ctx, a.countsKey(corpusID), fields)
		}
		pipe.SAdd(a.ctx, a.corporaKey(), corpusID)
		if rawReport != nil {
			pipe.Set(a.ctx, a.reportKey(corpusID), string(rawReport), 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store counts of %s: %w", corpusID, err)
	}
	log.Debug().
		Str("corpus", corpusID).
		Int("numPairs", len(fields)).
		Msg("stored counts to Redis")
	return nil
}

func (a *Adapter) LoadCounts(corpusID string) (*results.CountTable, error) {
	data, err := a.c.HGetAll(a.ctx, a.countsKey(corpusID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load counts of %s: %w", corpusID, err)
	}
	if len(data) == 0 {
		return nil, results.ErrNotFound
	}
	ans := results.NewCountTable()
	for field, rawCount := range data {
		det, cls, err := parsePairField(field)
		if err != nil {
			return nil, fmt.Errorf("failed to load counts of %s: %w", corpusID, err)
		}
		count, err := strconv.ParseInt(rawCount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to load counts of %s: %w", corpusID, err)
		}
		ans.AddCount(det, cls, count)
	}
	return ans, nil
}

// LoadReport returns a raw JSON report of the last run
func (a *Adapter) LoadReport(corpusID string) ([]byte, error) {
	ans, err := a.c.Get(a.ctx, a.reportKey(corpusID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, results.ErrNotFound

	} else if err != nil {
		return nil, fmt.Errorf("failed to load report of %s: %w", corpusID, err)
	}
	return ans, nil
}

func (a *Adapter) ListCorpora() ([]string, error) {
	ans, err := a.c.SMembers(a.ctx, a.corporaKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list corpora: %w", err)
	}
	slices.Sort(ans)
	return ans, nil
}

func (a *Adapter) Close() error {
	return a.c.Close()
}

func NewAdapter(ctx context.Context, conf *Conf) *Adapter {
	prefix := conf.KeyPrefix
	if prefix == "" {
		prefix = DfltKeyPrefix
	}
	return &Adapter{
		ctx: ctx,
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		keyPrefix: prefix,
	}
}
