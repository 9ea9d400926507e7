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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"detcount/corpus"
	"detcount/lexicon"
	"detcount/monitoring"
	"detcount/pairs"
	"detcount/rdb"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerReadTimeoutSecs  = 10
	dfltServerWriteTimeoutSecs = 30
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8090
	dfltNumWorkers             = 1
)

// CorpusConf is a configuration of a single corpus processing.
type CorpusConf struct {
	corpus.CorpusSetup

	// Tags overrides format-specific determiner tags
	Tags *pairs.TagSet `json:"tags"`

	LookupKey pairs.LookupKey `json:"lookupKey"`

	// PairsOutput is a path of the `det,CLASS,count` file
	PairsOutput string `json:"pairsOutput"`

	// TableOutput is a path of the CSV table with per-class columns
	TableOutput string `json:"tableOutput"`
}

func (cc *CorpusConf) ValidateAndDefaults(confContext string) error {
	if cc == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if err := cc.CorpusSetup.ValidateAndDefaults(confContext); err != nil {
		return err
	}
	if cc.Tags == nil {
		tags := pairs.DefaultTagSet(cc.Format)
		cc.Tags = &tags
		log.Warn().
			Str("corpus", cc.ID).
			Strs("determinerFine", tags.DeterminerFine).
			Strs("determinerCoarse", tags.DeterminerCoarse).
			Msgf("`%s.tags` not specified, using format defaults", confContext)
	}
	if err := cc.Tags.Validate(); err != nil {
		return fmt.Errorf("invalid `%s.tags`: %w", confContext, err)
	}
	if cc.LookupKey == "" {
		cc.LookupKey = pairs.LookupByForm
		log.Warn().
			Str("corpus", cc.ID).
			Msgf("`%s.lookupKey` not specified, using default: %s", confContext, cc.LookupKey)
	}
	if err := cc.LookupKey.Validate(); err != nil {
		return fmt.Errorf("invalid `%s.lookupKey`: %w", confContext, err)
	}
	if cc.PairsOutput == "" && cc.TableOutput == "" {
		log.Warn().
			Str("corpus", cc.ID).
			Msgf("neither `%s.pairsOutput` nor `%s.tableOutput` specified", confContext, confContext)
	}
	return nil
}

// Conf is a global configuration of the app
type Conf struct {
	LogFile  string           `json:"logFile"`
	LogLevel logging.LogLevel `json:"logLevel"`

	LexiconPath string `json:"lexiconPath"`

	// LexiconDelimiter is a single character separating
	// lexicon record fields
	LexiconDelimiter string `json:"lexiconDelimiter"`

	NumWorkers      int `json:"numWorkers"`
	ProgressEachNth int `json:"progressEachNth"`

	ListenAddress          string   `json:"listenAddress"`
	ListenPort             int      `json:"listenPort"`
	PublicURL              string   `json:"publicUrl"`
	ServerReadTimeoutSecs  int      `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int      `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string `json:"corsAllowedOrigins"`

	Redis rdb.Conf `json:"redis"`

	Corpora []*CorpusConf `json:"corpora"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.LogLevel == "debug"
}

// LexiconDelimiterRune returns a configured delimiter
// (ValidateAndDefaults must be called first).
func (conf *Conf) LexiconDelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(conf.LexiconDelimiter)
	return r
}

// GetCorpus returns a corpus configuration or nil if not found
func (conf *Conf) GetCorpus(corpusID string) *CorpusConf {
	for _, c := range conf.Corpora {
		if c.ID == corpusID {
			return c
		}
	}
	return nil
}

// PairsFiles maps corpora to their pair artifacts (if configured)
func (conf *Conf) PairsFiles() map[string]string {
	ans := make(map[string]string)
	for _, c := range conf.Corpora {
		if c.PairsOutput != "" {
			ans[c.ID] = c.PairsOutput
		}
	}
	return ans
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

// ReadConfig loads a JSON configuration and applies
// environment overrides of the Redis section.
func ReadConfig(path string) (*Conf, error) {
	if path == "" {
		return nil, fmt.Errorf("cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	var conf Conf
	conf.srcPath = path
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	if err := cleanenv.ReadEnv(&conf.Redis); err != nil {
		return nil, fmt.Errorf("cannot load config env. overrides: %w", err)
	}
	return &conf, nil
}

func LoadConfig(path string) *Conf {
	conf, err := ReadConfig(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return conf
}

// ValidateAndDefaults checks the configuration and fills in default
// values. Corpus files are not checked here (see corpus.Open).
func ValidateAndDefaults(conf *Conf) error {
	if conf.LexiconPath == "" {
		return fmt.Errorf("missing `lexiconPath`")
	}
	isFile, err := fs.IsFile(conf.LexiconPath)
	if err != nil {
		return fmt.Errorf("failed to check `lexiconPath`: %w", err)
	}
	if !isFile {
		return fmt.Errorf("lexicon file %s not found", conf.LexiconPath)
	}
	if conf.LexiconDelimiter == "" {
		conf.LexiconDelimiter = string(lexicon.DfltDelimiter)
		log.Warn().Msgf("lexiconDelimiter not specified, using default: %s", conf.LexiconDelimiter)
	}
	if utf8.RuneCountInString(conf.LexiconDelimiter) != 1 {
		return fmt.Errorf("`lexiconDelimiter` must be a single character")
	}
	if conf.NumWorkers <= 0 {
		conf.NumWorkers = dfltNumWorkers
		log.Warn().Msgf("numWorkers not specified, using default: %d", dfltNumWorkers)
	}
	if conf.ProgressEachNth == 0 {
		conf.ProgressEachNth = monitoring.DfltProgressEachNth
		log.Warn().Msgf(
			"progressEachNth not specified, using default: %d",
			monitoring.DfltProgressEachNth,
		)
	}
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Msgf("listenAddress not specified, using default: %s", dfltListenAddress)
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	conf.Redis.ValidateAndDefaults()

	if len(conf.Corpora) == 0 {
		return fmt.Errorf("no corpora configured")
	}
	ids := make(map[string]bool)
	for i, c := range conf.Corpora {
		if err := c.ValidateAndDefaults(fmt.Sprintf("corpora[%d]", i)); err != nil {
			return err
		}
		if ids[c.ID] {
			return fmt.Errorf("duplicate corpus id `%s`", c.ID)
		}
		ids[c.ID] = true
	}
	return nil
}
