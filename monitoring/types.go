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
	"time"

	"phonostat/rdb"

	"github.com/bytedance/sonic"
	"github.com/czcorpus/hltscl"
)

// Conf configures optional TimescaleDB reporting of processed jobs
type Conf struct {
	DB *hltscl.PgConf `json:"db"`
}

// StatusWriter stores job records to an external storage
type StatusWriter interface {
	Write(rec rdb.JobLog)
}

type NullStatusWriter struct{}

func (n *NullStatusWriter) Write(rec rdb.JobLog) {}

// ---

type WorkerLoad struct {
	NumJobs       int
	TotalTimeSecs float64
	NumErrors     int
	FirstUpdate   time.Time
	LastUpdate    time.Time
	NumWorkers    int
}

// TotalSpan returns time span covered by the load info
func (wl WorkerLoad) TotalSpan() time.Duration {
	return wl.LastUpdate.Sub(wl.FirstUpdate)
}

// AvgLoad returns the ratio of time spent on jobs and the total
// span, normalized by the number of workers.
func (wl WorkerLoad) AvgLoad() float64 {
	span := wl.TotalSpan().Seconds()
	if wl.TotalTimeSecs == 0 || span <= 0 || wl.NumWorkers == 0 {
		return 0
	}
	return wl.TotalTimeSecs / span / float64(wl.NumWorkers)
}

func (wl WorkerLoad) MarshalJSON() ([]byte, error) {
	var t0, t1 *time.Time
	if !wl.FirstUpdate.IsZero() {
		t0 = &wl.FirstUpdate
	}
	if !wl.LastUpdate.IsZero() {
		t1 = &wl.LastUpdate
	}
	return sonic.Marshal(
		struct {
			NumJobs       int        `json:"numJobs"`
			TotalTimeSecs float64    `json:"totalTimeSecs"`
			NumErrors     int        `json:"numErrors"`
			FirstUpdate   *time.Time `json:"firstUpdate,omitempty"`
			LastUpdate    *time.Time `json:"lastUpdate,omitempty"`
			NumWorkers    int        `json:"numWorkers"`
			AvgLoad       float64    `json:"avgLoad"`
		}{
			NumJobs:       wl.NumJobs,
			TotalTimeSecs: wl.TotalTimeSecs,
			NumErrors:     wl.NumErrors,
			FirstUpdate:   t0,
			LastUpdate:    t1,
			NumWorkers:    wl.NumWorkers,
			AvgLoad:       wl.AvgLoad(),
		},
	)
}

// WorkersLoad maps worker IDs to their accumulated load
type WorkersLoad map[string]WorkerLoad

// SumLoad merges all the workers' load into a single value
func (wl WorkersLoad) SumLoad(tz *time.Location) WorkerLoad {
	var ans WorkerLoad
	for _, v := range wl {
		if ans.FirstUpdate.IsZero() || v.FirstUpdate.Before(ans.FirstUpdate) {
			ans.FirstUpdate = v.FirstUpdate
		}
		if v.LastUpdate.After(ans.LastUpdate) {
			ans.LastUpdate = v.LastUpdate
		}
		ans.NumJobs += v.NumJobs
		ans.NumErrors += v.NumErrors
		ans.TotalTimeSecs += v.TotalTimeSecs
		ans.NumWorkers++
	}
	if !ans.FirstUpdate.IsZero() {
		ans.FirstUpdate = ans.FirstUpdate.In(tz)
		ans.LastUpdate = ans.LastUpdate.In(tz)
	}
	return ans
}

// cleanOldRecords removes workers which have not reported
// anything for StaleWorkerLoadTTL
func (wl WorkersLoad) cleanOldRecords() {
	limit := time.Now().Add(-StaleWorkerLoadTTL)
	for k, v := range wl {
		if v.LastUpdate.Before(limit) {
			delete(wl, k)
		}
	}
}
