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
	"github.com/rs/zerolog/log"
)

const (
	DfltPort      = 6379
	DfltKeyPrefix = "detcount"
)

// Conf configures an optional Redis store for count tables.
// All the values can be overridden via environment variables.
type Conf struct {
	Host      string `json:"host" env:"DETCOUNT_REDIS_HOST"`
	Port      int    `json:"port" env:"DETCOUNT_REDIS_PORT"`
	DB        int    `json:"db" env:"DETCOUNT_REDIS_DB"`
	Password  string `json:"password" env:"DETCOUNT_REDIS_PASSWORD"`
	KeyPrefix string `json:"keyPrefix" env:"DETCOUNT_REDIS_KEYPREFIX"`
}

// IsConfigured tells whether Redis should be used at all
func (conf *Conf) IsConfigured() bool {
	return conf != nil && conf.Host != ""
}

func (conf *Conf) ValidateAndDefaults() {
	if !conf.IsConfigured() {
		return
	}
	if conf.Port == 0 {
		conf.Port = DfltPort
		log.Warn().Msgf("redis.port not specified, using default: %d", DfltPort)
	}
	if conf.KeyPrefix == "" {
		conf.KeyPrefix = DfltKeyPrefix
		log.Warn().Msgf("redis.keyPrefix not specified, using default: %s", DfltKeyPrefix)
	}
}
