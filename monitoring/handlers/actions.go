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
	"errors"
	"fmt"
	"net/http"

	"phonostat/monitoring"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type timeSpan string

func (ts timeSpan) Validate() error {
	if ts != spanTypeRecent && ts != spanTypeTotal {
		return fmt.Errorf("unknown time span `%s`", ts)
	}
	return nil
}

const (
	spanTypeRecent timeSpan = "recent"
	spanTypeTotal  timeSpan = "total"
)

type Actions struct {
	logger *monitoring.WorkerJobLogger
}

// WorkersLoad godoc
// @Summary      WorkersLoad
// @Description  Show load of all the workers
// @Produce      json
// @Param        span query string false "Time span (recent, total)" default(recent)
// @Success      200 {object} any
// @Router       /monitoring/workers-load [get]
func (a *Actions) WorkersLoad(ctx *gin.Context) {
	span := timeSpan(ctx.DefaultQuery("span", string(spanTypeRecent)))
	if err := span.Validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	var ans monitoring.WorkerLoad
	if span == spanTypeRecent {
		ans = a.logger.RecentLoad()

	} else {
		ans = a.logger.TotalLoad()
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) SingleWorkerLoad(ctx *gin.Context) {
	span := timeSpan(ctx.DefaultQuery("span", string(spanTypeRecent)))
	if err := span.Validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}
	workerID := ctx.Param("workerId")

	var ans monitoring.WorkerLoad
	var srchErr error
	if span == spanTypeRecent {
		ans, srchErr = a.logger.RecentWorkerLoad(workerID)

	} else {
		ans, srchErr = a.logger.TotalWorkerLoad(workerID)
	}
	if errors.Is(srchErr, monitoring.ErrWorkerNotFound) {
		uniresp.RespondWithErrorJSON(ctx, srchErr, http.StatusNotFound)
		return

	} else if srchErr != nil {
		uniresp.RespondWithErrorJSON(ctx, srchErr, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) RecentRecords(ctx *gin.Context) {
	recs := a.logger.RecentRecords()
	ans := make([]map[string]any, len(recs))
	for i, rec := range recs {
		var errMsg string
		if rec.Err != nil {
			errMsg = rec.Err.Error()
		}
		ans[i] = map[string]any{
			"workerId":  rec.WorkerID,
			"func":      rec.Func,
			"begin":     rec.Begin,
			"end":       rec.End,
			"timeSpent": rec.TimeSpent().Seconds(),
			"error":     errMsg,
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func NewActions(logger *monitoring.WorkerJobLogger) *Actions {
	return &Actions{logger: logger}
}
