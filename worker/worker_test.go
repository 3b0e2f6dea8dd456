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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"phonostat/merror"
	"phonostat/phon"
	"phonostat/rdb"
	"phonostat/rdb/results"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	queries   []rdb.Query
	listening bool
	published map[string]*rdb.WorkerResult
}

func (fq *fakeQueue) DequeueQuery() (rdb.Query, error) {
	if len(fq.queries) == 0 {
		return rdb.Query{}, rdb.ErrorEmptyQueue
	}
	ans := fq.queries[0]
	fq.queries = fq.queries[1:]
	return ans, nil
}

func (fq *fakeQueue) SomeoneListens(query rdb.Query) (bool, error) {
	return fq.listening, nil
}

func (fq *fakeQueue) PublishResult(channelName string, value *rdb.WorkerResult) error {
	fq.published[channelName] = value
	return nil
}

type fakeJobLogger struct {
	logs []rdb.JobLog
}

func (fl *fakeJobLogger) Log(rec rdb.JobLog) {
	fl.logs = append(fl.logs, rec)
}

func writeCorpus(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mkQuery(t *testing.T, fn string, args any) rdb.Query {
	q, err := rdb.NewQuery(fn, args)
	require.NoError(t, err)
	q.Channel = "chan1"
	return q
}

func TestRunQueryShapeCounts(t *testing.T) {
	path := writeCorpus(t, "p a t a\na i\n")
	res := RunQuery(NewCorpusCache(), mkQuery(t, rdb.FuncShapeCounts, rdb.ShapeCountsArgs{
		CorpusID:   "test",
		CorpusPath: path,
		Patterns:   []string{"C V", "V V"},
	}))
	require.NoError(t, res.Err())
	sc, ok := res.(results.ShapeCounts)
	require.True(t, ok)
	assert.Equal(t, 2, sc.NumWords)
	assert.Equal(t, []string{"a", "e", "i", "o", "u"}, sc.Vowels)
	assert.Equal(t, []results.ShapeCountItem{{Pattern: "C V", Count: 2}, {Pattern: "V V", Count: 1}}, sc.Items)
}

func TestRunQueryShapeCountsInvalidPattern(t *testing.T) {
	path := writeCorpus(t, "p a t a\n")
	res := RunQuery(NewCorpusCache(), mkQuery(t, rdb.FuncShapeCounts, rdb.ShapeCountsArgs{
		CorpusID:   "test",
		CorpusPath: path,
		Patterns:   []string{"C X"},
	}))
	assert.Error(t, res.Err())
	assert.True(t, merror.IsInputError(res.Err()))
}

func TestRunQueryMissingCorpus(t *testing.T) {
	res := RunQuery(NewCorpusCache(), mkQuery(t, rdb.FuncShapeCounts, rdb.ShapeCountsArgs{
		CorpusID:   "test",
		CorpusPath: filepath.Join(t.TempDir(), "nonexistent.txt"),
	}))
	assert.Error(t, res.Err())
	assert.True(t, merror.IsInputError(res.Err()))
}

func TestRunQueryPairOE(t *testing.T) {
	path := writeCorpus(t, "p a t e\na i\nk a o\na u\ne i\ni o u i o u\n")
	res := RunQuery(NewCorpusCache(), mkQuery(t, rdb.FuncPairOE, rdb.PairOEArgs{
		CorpusID:   "test",
		CorpusPath: path,
		Inventory:  []string{"a", "e", "i", "o", "u"},
		Digits:     2,
	}))
	require.NoError(t, res.Err())
	m, ok := res.(results.OEMatrix)
	require.True(t, ok)
	assert.Equal(t, "all", m.Policy)
	assert.Equal(t, 10, m.TotalPairs)
	require.NotNil(t, m.Matrix[0][1])
	assert.InDelta(t, 1.25, *m.Matrix[0][1], 1e-9)
}

func TestRunQueryPairOENoPairs(t *testing.T) {
	path := writeCorpus(t, "p a t\nk e\n")
	res := RunQuery(NewCorpusCache(), mkQuery(t, rdb.FuncPairOE, rdb.PairOEArgs{
		CorpusID:   "test",
		CorpusPath: path,
		Inventory:  []string{"a", "e"},
		Digits:     2,
	}))
	assert.NoError(t, res.Err())
	m, ok := res.(results.OEMatrix)
	require.True(t, ok)
	assert.NotEmpty(t, m.Warning)
	assert.Len(t, m.Matrix, 2)
	assert.Nil(t, m.Matrix[0][0])
}

func TestRunQueryPairOEInvalidArgs(t *testing.T) {
	path := writeCorpus(t, "a e\n")
	res := RunQuery(NewCorpusCache(), mkQuery(t, rdb.FuncPairOE, rdb.PairOEArgs{
		CorpusPath: path,
		Inventory:  []string{"a", "e"},
		Digits:     16,
	}))
	assert.True(t, merror.IsInputError(res.Err()))

	res = RunQuery(NewCorpusCache(), mkQuery(t, rdb.FuncPairOE, rdb.PairOEArgs{
		CorpusPath: path,
		Inventory:  []string{"a", "e"},
		Policy:     "foo",
	}))
	assert.True(t, merror.IsInputError(res.Err()))
}

func TestRunQueryPairOEEmptyInventory(t *testing.T) {
	path := writeCorpus(t, "a e\n")
	res := RunQuery(NewCorpusCache(), mkQuery(t, rdb.FuncPairOE, rdb.PairOEArgs{
		CorpusPath: path,
		Inventory:  []string{},
		Digits:     2,
	}))
	require.NoError(t, res.Err())
	oe, ok := res.(results.OEMatrix)
	require.True(t, ok)
	assert.Empty(t, oe.Matrix)
	assert.Equal(t, 0, oe.TotalPairs)
	assert.Equal(t, phon.ErrNoPairs.Error(), oe.Warning)
}

func TestRunQueryUnknownFunc(t *testing.T) {
	res := RunQuery(NewCorpusCache(), rdb.Query{Func: "foo", Args: json.RawMessage("{}")})
	assert.Error(t, res.Err())
	assert.Equal(t, rdb.ResultTypeError, res.Type())
}

func TestCorpusCacheReload(t *testing.T) {
	path := writeCorpus(t, "a e\n")
	cache := NewCorpusCache()
	corp, err := cache.Get(path)
	require.NoError(t, err)
	assert.Len(t, corp, 1)
	corp, err = cache.Get(path)
	require.NoError(t, err)
	assert.Len(t, corp, 1)
	assert.Equal(t, 1, cache.Size())

	require.NoError(t, os.WriteFile(path, []byte("a e\ni o\n"), 0644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))
	corp, err = cache.Get(path)
	require.NoError(t, err)
	assert.Len(t, corp, 2)
}

func TestWorkerTryNextQuery(t *testing.T) {
	path := writeCorpus(t, "p a t a\n")
	queue := &fakeQueue{
		listening: true,
		published: make(map[string]*rdb.WorkerResult),
		queries: []rdb.Query{
			mkQuery(t, rdb.FuncShapeCounts, rdb.ShapeCountsArgs{CorpusID: "test", CorpusPath: path}),
		},
	}
	jl := &fakeJobLogger{}
	w := NewWorker("w1", queue, nil, jl)
	defer w.ticker.Stop()
	require.NoError(t, w.tryNextQuery())
	res, ok := queue.published["chan1"]
	require.True(t, ok)
	assert.Equal(t, rdb.ResultTypeShapeCounts, res.ResultType)
	assert.Equal(t, "chan1", res.ID)
	assert.NoError(t, res.Err())
	require.Len(t, jl.logs, 1)
	assert.Equal(t, "w1", jl.logs[0].WorkerID)
	assert.Equal(t, rdb.FuncShapeCounts, jl.logs[0].Func)
	assert.False(t, res.ProcEnd.Before(res.ProcBegin))

	// empty queue is not an error
	assert.NoError(t, w.tryNextQuery())
}

func TestWorkerSkipsInactiveQuery(t *testing.T) {
	queue := &fakeQueue{
		listening: false,
		published: make(map[string]*rdb.WorkerResult),
		queries:   []rdb.Query{mkQuery(t, rdb.FuncShapeCounts, rdb.ShapeCountsArgs{})},
	}
	jl := &fakeJobLogger{}
	w := NewWorker("w1", queue, nil, jl)
	defer w.ticker.Stop()
	require.NoError(t, w.tryNextQuery())
	assert.Empty(t, queue.published)
	assert.Empty(t, jl.logs)
}
