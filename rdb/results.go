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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"phonostat/merror"

	"github.com/bytedance/sonic"
)

const (
	ResultTypeShapeCounts ResultType = "shapeCounts"
	ResultTypePairOE      ResultType = "pairOE"
	ResultTypeCorpusInfo  ResultType = "corpusInfo"
	ResultTypeError       ResultType = "error"
)

type ResultType string // @name ResultType

func (rt ResultType) String() string {
	return string(rt)
}

// ----------------

// FuncResult is implemented by all the values a worker can produce
type FuncResult interface {
	Err() error
	Type() ResultType
}

// WorkerResult is a serialized FuncResult along with some
// processing metadata
type WorkerResult struct {
	ID           string          `json:"id"`
	WorkerID     string          `json:"workerId,omitempty"`
	ResultType   ResultType      `json:"resultType"`
	Value        json.RawMessage `json:"value"`
	Error        string          `json:"error,omitempty"`
	HasUserError bool            `json:"hasUserError,omitempty"`
	ProcBegin    time.Time       `json:"procBegin"`
	ProcEnd      time.Time       `json:"procEnd"`

	// Cached is set for results loaded from the file cache
	// (i.e. no worker processed them for the current query)
	Cached bool `json:"-"`
}

// Err returns an error stored in the result (if any)
func (wr *WorkerResult) Err() error {
	if wr.Error == "" {
		return nil
	}
	if wr.HasUserError {
		return merror.InputError{Msg: wr.Error}
	}
	return errors.New(wr.Error)
}

// CreateWorkerResult serializes a function result so it can
// be passed via Redis.
func CreateWorkerResult(value FuncResult) (*WorkerResult, error) {
	data, err := sonic.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s result: %w", value.Type(), err)
	}
	ans := &WorkerResult{
		ResultType: value.Type(),
		Value:      data,
	}
	if err := value.Err(); err != nil {
		ans.Error = err.Error()
		ans.HasUserError = merror.IsInputError(err)
	}
	return ans, nil
}

// DecodeValue deserializes the stored value into a response type
func DecodeValue[T any](wr *WorkerResult, expected ResultType) (T, error) {
	var ans T
	if wr.ResultType != expected {
		return ans, fmt.Errorf(
			"unexpected result type %s (expected %s)", wr.ResultType, expected)
	}
	if err := sonic.Unmarshal(wr.Value, &ans); err != nil {
		return ans, fmt.Errorf("failed to decode %s result: %w", expected, err)
	}
	return ans, nil
}

// ----------------

// JobLog describes a single job processed by a worker
type JobLog struct {
	WorkerID string    `json:"workerId"`
	Func     string    `json:"func"`
	CorpusID string    `json:"corpusId,omitempty"`
	Begin    time.Time `json:"begin"`
	End      time.Time `json:"end"`
	Err      error     `json:"error"`
}

func (jl JobLog) TimeSpent() time.Duration {
	return jl.End.Sub(jl.Begin)
}
