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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	MsgNewQuery                = "newQuery"
	DefaultQueueKey            = "phonostatQueue"
	DefaultResultChannelPrefix = "phonostatResults"
	DefaultQueryChannel        = "phonostatQueries"
	DefaultResultExpiration    = 10 * time.Minute
)

var (
	ErrorEmptyQueue = errors.New("no queries in the queue")
)

type Adapter struct {
	ctx                 context.Context
	c                   *redis.Client
	channelQuery        string
	channelResultPrefix string
	queryAnswerTimeout  time.Duration
	cachePath           string
}

// TestConnection repeatedly pings Redis until it responds
// or the timeout is reached
func (a *Adapter) TestConnection(timeout time.Duration) error {
	tick := time.NewTicker(2 * time.Second)
	defer tick.Stop()
	timeoutCh := time.After(timeout)
	for {
		select {
		case <-timeoutCh:
			return fmt.Errorf("failed to connect to Redis within %s", timeout)
		case <-tick.C:
			err := a.c.Ping(a.ctx).Err()
			if err == nil {
				log.Info().Msg("connected to Redis")
				return nil
			}
			log.Error().Err(err).Msg("failed to ping Redis, will try again")
		}
	}
}

func (a *Adapter) SomeoneListens(query Query) (bool, error) {
	cmd := a.c.PubSubNumSub(a.ctx, query.Channel)
	if cmd.Err() != nil {
		return false, fmt.Errorf("failed to check channel listeners: %w", cmd.Err())
	}
	return cmd.Val()[query.Channel] > 0, nil
}

// PublishQuery publishes a new query and returns a channel
// the result will be sent to. In case no worker answers within
// the configured timeout, an error result is sent.
func (a *Adapter) PublishQuery(query Query) (<-chan *WorkerResult, error) {
	return a.CacheResult(a.publishQuery, query)
}

func (a *Adapter) publishQuery(query Query) (<-chan *WorkerResult, error) {
	query.Channel = fmt.Sprintf("%s:%s", a.channelResultPrefix, uuid.New().String())
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		RawJSON("args", query.Args).
		Msg("publishing query")

	msg, err := query.ToJSON()
	if err != nil {
		return nil, err
	}
	// we must subscribe before the query is available to workers
	sub := a.c.Subscribe(a.ctx, query.Channel)
	if _, err := sub.Receive(a.ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("failed to subscribe to result channel: %w", err)
	}
	if err := a.c.LPush(a.ctx, DefaultQueueKey, msg).Err(); err != nil {
		sub.Close()
		return nil, err
	}
	ans := make(chan *WorkerResult)

	go func() {
		defer close(ans)
		defer sub.Close()
		result := new(WorkerResult)
		select {
		case item := <-sub.Channel():
			cmd := a.c.Get(a.ctx, item.Payload)
			if cmd.Err() != nil {
				result.ResultType = ResultTypeError
				result.Error = cmd.Err().Error()

			} else if err := json.Unmarshal([]byte(cmd.Val()), result); err != nil {
				result.ResultType = ResultTypeError
				result.Error = err.Error()
			}
		case <-time.After(a.queryAnswerTimeout):
			result.ResultType = ResultTypeError
			result.Error = fmt.Sprintf("no worker answered query %s within %s", query.Func, a.queryAnswerTimeout)
		}
		ans <- result
	}()
	return ans, a.c.Publish(a.ctx, a.channelQuery, MsgNewQuery).Err()
}

func (a *Adapter) DequeueQuery() (Query, error) {
	cmd := a.c.RPop(a.ctx, DefaultQueueKey)
	if errors.Is(cmd.Err(), redis.Nil) {
		return Query{}, ErrorEmptyQueue

	} else if cmd.Err() != nil {
		return Query{}, fmt.Errorf("failed to dequeue query: %w", cmd.Err())
	}
	q, err := DecodeQuery(cmd.Val())
	if err != nil {
		return Query{}, fmt.Errorf("failed to deserialize query: %w", err)
	}
	return q, nil
}

func (a *Adapter) PublishResult(channelName string, value *WorkerResult) error {
	log.Debug().
		Str("channel", channelName).
		Str("resultType", value.ResultType.String()).
		Msg("publishing result")
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	if err := a.c.Set(a.ctx, channelName, string(data), DefaultResultExpiration).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}
	return a.c.Publish(a.ctx, channelName, channelName).Err()
}

func (a *Adapter) Subscribe() <-chan *redis.Message {
	sub := a.c.Subscribe(a.ctx, a.channelQuery)
	return sub.Channel()
}

// NewAdapter creates a new adapter. The conf is expected to be
// validated (see Conf.ValidateAndDefaults).
func NewAdapter(conf *Conf, ctx context.Context) *Adapter {
	return &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ctx:                 ctx,
		channelQuery:        conf.ChannelQuery,
		channelResultPrefix: conf.ChannelResultPrefix,
		queryAnswerTimeout:  conf.QueryAnswerTimeout(),
		cachePath:           conf.CachePath,
	}
}
