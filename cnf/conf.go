// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of PHONOSTAT.
//
//  PHONOSTAT is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  PHONOSTAT is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with PHONOSTAT.  If not, see <https://www.gnu.org/licenses/>.

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"phonostat/corpus"
	"phonostat/monitoring"
	"phonostat/phon"
	"phonostat/rdb"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const (
	dfltServerWriteTimeoutSecs = 30
	dfltServerReadTimeoutSecs  = 15
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8989
	dfltTimeZone               = "Europe/Prague"
	dfltAuthHeaderName         = "X-Api-Key"
)

// AnalysisConf contains defaults applied to analyses when
// the respective query arguments are missing
type AnalysisConf struct {
	Vowels         string   `json:"vowels"`
	Patterns       []string `json:"patterns"`
	RoundDigits    *int     `json:"roundDigits"`
	MarginalPolicy string   `json:"marginalPolicy"`
}

// DefaultRoundDigits returns configured (or built-in) number
// of decimal places for rounded O/E values
func (ac *AnalysisConf) DefaultRoundDigits() int {
	if ac.RoundDigits == nil {
		return phon.DefaultRoundDigits
	}
	return *ac.RoundDigits
}

func (ac *AnalysisConf) ValidateAndDefaults(confContext string) error {
	if ac.Vowels == "" {
		ac.Vowels = phon.DefaultVowels
		log.Warn().
			Str("vowels", ac.Vowels).
			Msgf("`%s.vowels` not specified, using default", confContext)
	}
	if len(ac.Patterns) > 0 {
		if _, err := phon.ParsePatterns(ac.Patterns); err != nil {
			return fmt.Errorf("invalid `%s.patterns`: %w", confContext, err)
		}
	}
	if ac.RoundDigits != nil && (*ac.RoundDigits < 0 || *ac.RoundDigits > phon.MaxRoundDigits) {
		return fmt.Errorf(
			"invalid `%s.roundDigits`: %w", confContext, phon.ErrInvalidDigits)
	}
	if ac.MarginalPolicy == "" {
		ac.MarginalPolicy = string(phon.MarginalsAllTokens)
		log.Warn().
			Str("marginalPolicy", ac.MarginalPolicy).
			Msgf("`%s.marginalPolicy` not specified, using default", confContext)
	}
	if err := phon.MarginalPolicy(ac.MarginalPolicy).Validate(); err != nil {
		return fmt.Errorf("invalid `%s.marginalPolicy`: %w", confContext, err)
	}
	return nil
}

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string               `json:"listenAddress"`
	PublicURL              string               `json:"publicUrl"`
	ListenPort             int                  `json:"listenPort"`
	ServerReadTimeoutSecs  int                  `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                  `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string             `json:"corsAllowedOrigins"`
	Corpora                *corpus.CorporaSetup `json:"corpora"`
	Redis                  *rdb.Conf            `json:"redis"`
	Logging                logging.LoggingConf  `json:"logging"`
	TimeZone               string               `json:"timeZone"`
	AuthHeaderName         string               `json:"authHeaderName"`
	AuthTokens             []string             `json:"authTokens"`
	Analysis               AnalysisConf         `json:"analysis"`
	Monitoring             *monitoring.Conf     `json:"monitoring"`

	srcPath string
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call ValidateAndDefaults()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
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

// yamlToJSON converts YAML data to JSON so both formats
// share the same struct tags
func yamlToJSON(data []byte) ([]byte, error) {
	var tmp any
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return nil, err
	}
	return json.Marshal(tmp)
}

// LoadConfig loads a JSON config file. Files with the .yaml
// or .yml suffix are read as YAML.
func LoadConfig(path string) (*Conf, error) {
	if path == "" {
		return nil, fmt.Errorf("cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		rawData, err = yamlToJSON(rawData)
		if err != nil {
			return nil, fmt.Errorf("cannot load YAML config: %w", err)
		}
	}
	var conf Conf
	conf.srcPath = path
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	return &conf, nil
}

// ValidateAndDefaults checks the configuration and sets default
// values for missing optional items. The `redis` section is
// required only if requireRedis is true.
func ValidateAndDefaults(conf *Conf, requireRedis bool) error {
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Str("address", conf.ListenAddress).Msg("listenAddress not specified, using default")
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Int("port", conf.ListenPort).Msg("listenPort not specified, using default")
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s:%d", conf.ListenAddress, conf.ListenPort)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if len(conf.AuthTokens) > 0 && conf.AuthHeaderName == "" {
		conf.AuthHeaderName = dfltAuthHeaderName
		log.Warn().Str("header", conf.AuthHeaderName).Msg("authHeaderName not set, using default")
	}
	if err := conf.Corpora.ValidateAndDefaults("corpora"); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if conf.Redis != nil {
		if err := conf.Redis.ValidateAndDefaults(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

	} else if requireRedis {
		return fmt.Errorf("invalid configuration: missing `redis` section")
	}
	if err := conf.Analysis.ValidateAndDefaults("analysis"); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}
