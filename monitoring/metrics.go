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
	"net/http"

	"phonostat/merror"
	"phonostat/rdb"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	jobStatusOK        = "ok"
	jobStatusUserError = "user_error"
	jobStatusError     = "error"
)

// Metrics holds Prometheus collectors describing processed
// analysis jobs
type Metrics struct {
	registry    *prometheus.Registry
	JobsTotal   *prometheus.CounterVec
	JobDuration *prometheus.HistogramVec
}

func jobStatus(err error) string {
	if err == nil {
		return jobStatusOK
	}
	if merror.IsInputError(err) {
		return jobStatusUserError
	}
	return jobStatusError
}

// Observe records a single finished job
func (m *Metrics) Observe(rec rdb.JobLog) {
	m.JobsTotal.WithLabelValues(rec.Func, jobStatus(rec.Err)).Inc()
	m.JobDuration.WithLabelValues(rec.Func).Observe(rec.TimeSpent().Seconds())
}

// Handler returns the Prometheus scrape HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewMetrics creates all the collectors and registers them
// in a dedicated registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "phonostat_jobs_total",
				Help: "Total number of processed analysis jobs by function and status.",
			},
			[]string{"func", "status"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "phonostat_job_duration_seconds",
				Help:    "Analysis job processing time in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"func"},
		),
	}
	m.registry.MustRegister(m.JobsTotal, m.JobDuration)
	return m
}
