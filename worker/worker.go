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

package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"phonostat/merror"
	"phonostat/rdb"
	"phonostat/rdb/results"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTickerInterval = 2 * time.Second
)

type jobLogger interface {
	Log(rec rdb.JobLog)
}

type resultPublisher interface {
	DequeueQuery() (rdb.Query, error)
	SomeoneListens(query rdb.Query) (bool, error)
	PublishResult(channelName string, value *rdb.WorkerResult) error
}

type Worker struct {
	ID         string
	messages   <-chan *redis.Message
	radapter   resultPublisher
	ticker     *time.Ticker
	jobLogger  jobLogger
	currJobLog *rdb.JobLog
	corpora    *CorpusCache
}

func (w *Worker) publishResult(res rdb.FuncResult, channel string) error {
	ans, err := rdb.CreateWorkerResult(res)
	if err != nil {
		return err
	}
	if w.currJobLog != nil {
		w.currJobLog.End = time.Now()
		w.currJobLog.Err = res.Err()
		ans.ProcBegin = w.currJobLog.Begin
		ans.ProcEnd = w.currJobLog.End
		w.jobLogger.Log(*w.currJobLog)
		w.currJobLog = nil
	}
	ans.ID = channel
	ans.WorkerID = w.ID
	return w.radapter.PublishResult(channel, ans)
}

// RunQuery executes a query and returns its result.
// Panics are recovered and reported as merror.RecoveredError.
func RunQuery(cache *CorpusCache, query rdb.Query) (ans rdb.FuncResult) {
	defer func() {
		if r := recover(); r != nil {
			err := merror.PanicValueToErr(r)
			log.Error().Err(err).Str("func", query.Func).Msg("worker panicked")
			ans = results.ErrorResult{Func: query.Func, Error: err.Error()}
		}
	}()
	switch query.Func {
	case rdb.FuncShapeCounts:
		var args rdb.ShapeCountsArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return results.ShapeCounts{Error: fmt.Errorf("invalid query args: %w", err)}
		}
		return shapeCounts(cache, args)
	case rdb.FuncPairOE:
		var args rdb.PairOEArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return results.OEMatrix{Error: fmt.Errorf("invalid query args: %w", err)}
		}
		return pairOE(cache, args)
	case rdb.FuncCorpusInfo:
		var args rdb.CorpusInfoArgs
		if err := json.Unmarshal(query.Args, &args); err != nil {
			return results.CorpusInfo{Error: fmt.Errorf("invalid query args: %w", err)}
		}
		return corpusInfo(args)
	default:
		return results.ErrorResult{Func: query.Func, Error: fmt.Sprintf("unknown query function: %s", query.Func)}
	}
}

func (w *Worker) tryNextQuery() error {
	time.Sleep(time.Duration(rand.Intn(40)) * time.Millisecond)
	query, err := w.radapter.DequeueQuery()
	if errors.Is(err, rdb.ErrorEmptyQueue) {
		return nil

	} else if err != nil {
		return err
	}
	log.Debug().
		Str("channel", query.Channel).
		Str("func", query.Func).
		RawJSON("args", query.Args).
		Msg("received query")

	isActive, err := w.radapter.SomeoneListens(query)
	if err != nil {
		return err
	}
	if !isActive {
		log.Warn().
			Str("func", query.Func).
			Str("channel", query.Channel).
			Msg("worker found an inactive query")
		return nil
	}

	w.currJobLog = &rdb.JobLog{
		WorkerID: w.ID,
		Func:     query.Func,
		Begin:    time.Now(),
	}
	if err := w.publishResult(RunQuery(w.corpora, query), query.Channel); err != nil {
		log.Error().Err(err).Str("func", query.Func).Msg("failed to publish result")
		if err := w.publishResult(results.ErrorResult{Func: query.Func, Error: err.Error()}, query.Channel); err != nil {
			return fmt.Errorf("failed to publish general publishing error: %w", err)
		}
	}
	return nil
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-w.ticker.C:
				if err := w.tryNextQuery(); err != nil {
					log.Error().Err(err).Msg("failed to process query")
				}
			case <-ctx.Done():
				log.Info().Msg("worker exiting")
				return
			case msg := <-w.messages:
				if msg != nil && msg.Payload == rdb.MsgNewQuery {
					if err := w.tryNextQuery(); err != nil {
						log.Error().Err(err).Msg("failed to process query")
					}
				}
			}
		}
	}()
}

func (w *Worker) Stop(ctx context.Context) error {
	w.ticker.Stop()
	log.Warn().Str("workerId", w.ID).Msg("stopping worker")
	return nil
}

func NewWorker(
	workerID string,
	radapter resultPublisher,
	messages <-chan *redis.Message,
	jobLogger jobLogger,
) *Worker {
	return &Worker{
		ID:        workerID,
		radapter:  radapter,
		messages:  messages,
		ticker:    time.NewTicker(DefaultTickerInterval),
		jobLogger: jobLogger,
		corpora:   NewCorpusCache(),
	}
}
