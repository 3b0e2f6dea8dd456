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
	"errors"
	"sync"
	"time"

	"phonostat/rdb"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

const (
	StaleWorkerLoadTTL = time.Hour * 24
	cleanupInterval    = time.Minute
	recentLogSize      = 100
)

var (
	ErrWorkerNotFound = errors.New("worker not found")
)

// WorkerJobLogger collects information about jobs processed
// by workers. It keeps both total per-worker values and a limited
// list of recent jobs.
type WorkerJobLogger struct {
	loadData     WorkersLoad
	dataLock     sync.RWMutex
	recentLog    *collections.CircularList[rdb.JobLog]
	tz           *time.Location
	statusWriter StatusWriter
	metrics      *Metrics
}

func (w *WorkerJobLogger) Log(rec rdb.JobLog) {
	w.dataLock.Lock()
	defer w.dataLock.Unlock()

	entry, ok := w.loadData[rec.WorkerID]
	if !ok {
		entry.FirstUpdate = rec.Begin
		entry.NumWorkers = 1
	}
	entry.NumJobs++
	entry.LastUpdate = rec.End
	if rec.Err != nil {
		entry.NumErrors++
	}
	entry.TotalTimeSecs += rec.TimeSpent().Seconds()
	w.loadData[rec.WorkerID] = entry
	w.recentLog.Append(rec)
	if w.metrics != nil {
		w.metrics.Observe(rec)
	}
	w.statusWriter.Write(rec)
}

func (w *WorkerJobLogger) TotalLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	return w.loadData.SumLoad(w.tz)
}

func (w *WorkerJobLogger) RecentLoad() WorkerLoad {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	workers := collections.NewSet[string]()
	w.recentLog.ForEach(func(i int, item rdb.JobLog) bool {
		workers.Add(item.WorkerID)
		if i == 0 {
			ans.FirstUpdate = item.Begin
		}
		ans.LastUpdate = item.End
		if item.Err != nil {
			ans.NumErrors++
		}
		ans.NumJobs++
		ans.TotalTimeSecs += item.TimeSpent().Seconds()
		return true
	})
	ans.NumWorkers = workers.Size()
	return ans
}

func (w *WorkerJobLogger) RecentRecords() []rdb.JobLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]rdb.JobLog, 0, w.recentLog.Len())
	w.recentLog.ForEach(func(i int, item rdb.JobLog) bool {
		ans = append(ans, item)
		return true
	})
	return ans
}

func (w *WorkerJobLogger) TotalWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans, ok := w.loadData[workerID]
	if !ok {
		return ans, ErrWorkerNotFound
	}
	return ans, nil
}

func (w *WorkerJobLogger) RecentWorkerLoad(workerID string) (WorkerLoad, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	var ans WorkerLoad
	var found bool
	w.recentLog.ForEach(func(i int, item rdb.JobLog) bool {
		if item.WorkerID != workerID {
			return true
		}
		if !found {
			ans.FirstUpdate = item.Begin
			found = true
		}
		ans.LastUpdate = item.End
		if item.Err != nil {
			ans.NumErrors++
		}
		ans.NumJobs++
		ans.TotalTimeSecs += item.TimeSpent().Seconds()
		return true
	})
	if found {
		ans.NumWorkers = 1
		return ans, nil
	}
	return ans, ErrWorkerNotFound
}

func (w *WorkerJobLogger) Start(ctx context.Context) {
	log.Info().Msg("starting worker job logger")
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("requesting worker job logger stop")
				return
			case <-ticker.C:
				w.dataLock.Lock()
				w.loadData.cleanOldRecords()
				w.dataLock.Unlock()
			}
		}
	}()
}

func (w *WorkerJobLogger) Stop(ctx context.Context) error {
	log.Info().Msg("shutting down worker job logger")
	return nil
}

// NewWorkerJobLogger creates a new logger. Both statusWriter and
// metrics are optional (nil).
func NewWorkerJobLogger(
	statusWriter StatusWriter,
	metrics *Metrics,
	tz *time.Location,
) *WorkerJobLogger {
	if statusWriter == nil {
		statusWriter = &NullStatusWriter{}
	}
	return &WorkerJobLogger{
		loadData:     make(WorkersLoad),
		recentLog:    collections.NewCircularList[rdb.JobLog](recentLogSize),
		statusWriter: statusWriter,
		metrics:      metrics,
		tz:           tz,
	}
}
