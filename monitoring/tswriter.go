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

package monitoring

import (
	"context"
	"time"

	"phonostat/merror"
	"phonostat/rdb"

	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"
)

/*
Expected tables:

create table phonostat_jobs (
  "time" timestamp with time zone NOT NULL,
  worker_id text,
  func text,
  corpus_id text,
  duration_secs float,
  failed boolean,
  input_error boolean
);
select create_hypertable('phonostat_jobs', 'time');

create table phonostat_corpus_usage (
  "time" timestamp with time zone NOT NULL,
  corpus_id text,
  func text,
  num_queries int,
  num_failed int
);
select create_hypertable('phonostat_corpus_usage', 'time');
*/

const (
	jobsTable          = "phonostat_jobs"
	corpusUsageTable   = "phonostat_corpus_usage"
	dbWriteTimeout     = 20 * time.Second
	usageFlushInterval = time.Minute
)

// tableStream is an activated hltscl writer of a single table
type tableStream struct {
	writer *hltscl.TableWriter
	data   chan<- hltscl.Entry
	errs   <-chan hltscl.WriteError
}

func (ts *tableStream) reportErrors(ctx context.Context, table string) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-ts.errs:
			if !ok {
				return
			}
			log.Error().
				Err(err.Err).
				Str("entry", err.Entry.String()).
				Str("table", table).
				Msg("error writing data to TimescaleDB")
		}
	}
}

func openTableStream(ctx context.Context, conn *hltscl.TableWriter) *tableStream {
	data, errs := conn.Activate(ctx, hltscl.WithTimeout(dbWriteTimeout))
	return &tableStream{writer: conn, data: data, errs: errs}
}

// TimescaleDBWriter stores each finished job as a row of the jobs table
// and, once per usageFlushInterval, the number of queries per corpus
// and function.
type TimescaleDBWriter struct {
	jobs     *tableStream
	usage    *tableStream
	counter  *corpusUsage
	location *time.Location
}

func (sw *TimescaleDBWriter) flushUsage(ts time.Time) {
	for _, item := range sw.counter.drain() {
		sw.usage.data <- *sw.usage.writer.NewEntry(ts).
			Str("corpus_id", item.CorpusID).
			Str("func", item.Func).
			Int("num_queries", item.NumQueries).
			Int("num_failed", item.NumFailed)
	}
}

func (sw *TimescaleDBWriter) Start(ctx context.Context) {
	go sw.jobs.reportErrors(ctx, jobsTable)
	go sw.usage.reportErrors(ctx, corpusUsageTable)
	go func() {
		ticker := time.NewTicker(usageFlushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("about to close TimescaleDB status writer")
				return
			case t := <-ticker.C:
				sw.flushUsage(t.In(sw.location))
			}
		}
	}()
}

func (sw *TimescaleDBWriter) Stop(ctx context.Context) error {
	log.Warn().Int("pendingUsageRecords", sw.counter.size()).Msg("stopping TimescaleDB status writer")
	return nil
}

func (sw *TimescaleDBWriter) Write(item rdb.JobLog) {
	sw.counter.add(item)
	sw.jobs.data <- *sw.jobs.writer.NewEntry(item.End.In(sw.location)).
		Str("worker_id", item.WorkerID).
		Str("func", item.Func).
		Str("corpus_id", item.CorpusID).
		Float("duration_secs", item.TimeSpent().Seconds()).
		Bool("failed", item.Err != nil).
		Bool("input_error", merror.IsInputError(item.Err))
}

func NewTimescaleDBWriter(
	ctx context.Context,
	conf hltscl.PgConf,
	tz *time.Location,
) (*TimescaleDBWriter, error) {
	conn, err := hltscl.CreatePool(conf)
	if err != nil {
		return nil, err
	}
	return &TimescaleDBWriter{
		jobs:     openTableStream(ctx, hltscl.NewTableWriter(conn, jobsTable, "time", tz)),
		usage:    openTableStream(ctx, hltscl.NewTableWriter(conn, corpusUsageTable, "time", tz)),
		counter:  newCorpusUsage(),
		location: tz,
	}, nil
}
