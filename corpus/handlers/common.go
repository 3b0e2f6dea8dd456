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

package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"phonostat/corpus"
	"phonostat/rdb"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// QueryPublisher passes queries to workers and provides
// a channel for obtaining the result
type QueryPublisher interface {
	PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error)
}

// JobLogger receives information about each finished job
type JobLogger interface {
	Log(rec rdb.JobLog)
}

func (a *Actions) corpusOrRespondError(ctx *gin.Context) (*corpus.CorpusSetup, bool) {
	corpusID := ctx.Param("corpusId")
	corpusConf := a.conf.GetCorp(corpusID)
	if corpusConf == nil {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("corpus %s not found", corpusID),
			http.StatusNotFound,
		)
		return nil, false
	}
	return corpusConf, true
}

// dataStamp identifies the current version of a corpus file
// so cached results of older versions are not used
func dataStamp(corpusConf *corpus.CorpusSetup) string {
	mtime, err := fs.GetFileMtime(corpusConf.Path)
	if err != nil {
		log.Warn().Err(err).Str("corpus", corpusConf.ID).Msg("failed to determine corpus file mtime")
		return ""
	}
	return strconv.FormatInt(mtime.UnixNano(), 10)
}

// runQueryOrRespondError publishes a query, waits for its result
// and handles possible errors. In case false is returned, the
// response has been already written.
func (a *Actions) runQueryOrRespondError(
	ctx *gin.Context,
	fn string,
	args any,
	stamp string,
) (*rdb.WorkerResult, bool) {
	query, err := rdb.NewQuery(fn, args)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return nil, false
	}
	query.Stamp = stamp
	t0 := time.Now()
	wait, err := a.radapter.PublishQuery(query)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return nil, false
	}
	result := <-wait
	if result == nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("no result received for %s", fn),
			http.StatusInternalServerError,
		)
		return nil, false
	}
	a.logJob(fn, ctx.Param("corpusId"), t0, result)
	if ok := HandleWorkerError(ctx, result); !ok {
		return nil, false
	}
	return result, true
}

func (a *Actions) logJob(fn, corpusID string, t0 time.Time, result *rdb.WorkerResult) {
	if a.jobLogger == nil || result.Cached {
		return
	}
	rec := rdb.JobLog{
		WorkerID: result.WorkerID,
		Func:     fn,
		CorpusID: corpusID,
		Begin:    result.ProcBegin,
		End:      result.ProcEnd,
		Err:      result.Err(),
	}
	if rec.Begin.IsZero() || rec.End.IsZero() {
		// e.g. a timeout
		rec.Begin = t0
		rec.End = time.Now()
	}
	a.jobLogger.Log(rec)
}

func HandleWorkerError(ctx *gin.Context, result *rdb.WorkerResult) bool {
	if err := result.Err(); err != nil {
		if result.HasUserError {
			uniresp.WriteJSONErrorResponse(
				ctx.Writer,
				uniresp.NewActionErrorFrom(err),
				http.StatusBadRequest,
			)

		} else {
			uniresp.WriteJSONErrorResponse(
				ctx.Writer,
				uniresp.NewActionErrorFrom(err),
				http.StatusInternalServerError,
			)
		}
		return false
	}
	return true
}

// DecodeOrRespondError decodes a worker result value into
// the response type T
func DecodeOrRespondError[T any](ctx *gin.Context, result *rdb.WorkerResult, rt rdb.ResultType) (T, bool) {
	ans, err := rdb.DecodeValue[T](result, rt)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return ans, false
	}
	return ans, true
}
