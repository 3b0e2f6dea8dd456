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

package rdb

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultQueryAnswerTimeoutSecs = 60
	DefaultPort                   = 6379
)

type Conf struct {
	Host                   string `json:"host"`
	Port                   int    `json:"port"`
	DB                     int    `json:"db"`
	Password               string `json:"password"`
	ChannelQuery           string `json:"channelQuery"`
	ChannelResultPrefix    string `json:"channelResultPrefix"`
	QueryAnswerTimeoutSecs int    `json:"queryAnswerTimeoutSecs"`

	// CachePath is a directory where results are cached.
	// If empty, no caching is performed.
	CachePath string `json:"cachePath"`
}

func (conf *Conf) QueryAnswerTimeout() time.Duration {
	return time.Duration(conf.QueryAnswerTimeoutSecs) * time.Second
}

func (conf *Conf) ValidateAndDefaults() error {
	if conf == nil {
		return fmt.Errorf("missing configuration section `redis`")
	}
	if conf.Host == "" {
		return fmt.Errorf("missing `redis.host`")
	}
	if conf.Port == 0 {
		conf.Port = DefaultPort
		log.Warn().Int("port", conf.Port).Msg("redis port not specified, using default")
	}
	if conf.ChannelQuery == "" {
		conf.ChannelQuery = DefaultQueryChannel
		log.Warn().
			Str("channel", conf.ChannelQuery).
			Msg("Redis channel for queries not specified, using default")
	}
	if conf.ChannelResultPrefix == "" {
		conf.ChannelResultPrefix = DefaultResultChannelPrefix
		log.Warn().
			Str("channel", conf.ChannelResultPrefix).
			Msg("Redis channel for results not specified, using default")
	}
	if conf.QueryAnswerTimeoutSecs == 0 {
		conf.QueryAnswerTimeoutSecs = DefaultQueryAnswerTimeoutSecs
		log.Warn().
			Int("timeoutSecs", conf.QueryAnswerTimeoutSecs).
			Msg("queryAnswerTimeoutSecs not specified, using default")
	}
	return nil
}
