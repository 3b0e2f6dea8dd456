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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"phonostat/cnf"
	"phonostat/corpus"
	"phonostat/phon"
	"phonostat/rdb"
	"phonostat/rdb/results"
	"phonostat/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// localPublisher runs queries synchronously in the current process
type localPublisher struct {
	cache   *worker.CorpusCache
	queries []rdb.Query

	// cached makes results look like file cache hits
	cached bool
}

func (lp *localPublisher) PublishQuery(query rdb.Query) (<-chan *rdb.WorkerResult, error) {
	lp.queries = append(lp.queries, query)
	ans := make(chan *rdb.WorkerResult, 1)
	res, err := rdb.CreateWorkerResult(worker.RunQuery(lp.cache, query))
	if err != nil {
		return nil, err
	}
	res.Cached = lp.cached
	ans <- res
	return ans, nil
}

type countingLogger struct {
	numJobs int
}

func (cl *countingLogger) Log(rec rdb.JobLog) {
	cl.numJobs++
}

type testEnv struct {
	engine    *gin.Engine
	publisher *localPublisher
	logger    *countingLogger
}

func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "test.txt"),
		[]byte("p a t e\na i\nk a o\na u\ne i\ni o u i o u\n"),
		0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "other.txt"),
		[]byte("k a k\n"),
		0644,
	))
	corpora := &corpus.CorporaSetup{
		DataDir: dir,
		Resources: []*corpus.CorpusSetup{
			{
				ID:          "test",
				Description: "test word list",
				Inventories: map[string]string{"dorsals": "k g"},
			},
		},
		ZeroConfCorpora: true,
	}
	require.NoError(t, corpora.ValidateAndDefaults("corpora"))
	analysis := &cnf.AnalysisConf{}
	require.NoError(t, analysis.ValidateAndDefaults("analysis"))

	env := &testEnv{
		engine:    gin.New(),
		publisher: &localPublisher{cache: worker.NewCorpusCache()},
		logger:    &countingLogger{},
	}
	actions := NewActions(corpora, analysis, env.publisher, env.logger)
	env.engine.GET("/corplist", actions.Corplist)
	env.engine.GET("/info/:corpusId", actions.CorpusInfo)
	env.engine.GET("/cv-shapes/:corpusId", actions.CVShapes)
	env.engine.GET("/oe/:corpusId", actions.PairOE)
	return env
}

func (env *testEnv) get(url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	env.engine.ServeHTTP(w, req)
	return w
}

func TestCVShapesDefaultPatterns(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/cv-shapes/test")
	require.Equal(t, http.StatusOK, w.Code)
	var resp results.ShapeCountsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp.CorpusID)
	assert.Equal(t, 6, resp.NumWords)
	assert.Len(t, resp.Items, len(phon.DefaultPatterns()))
	assert.Equal(t, 1, env.logger.numJobs)
	require.Len(t, env.publisher.queries, 1)
	assert.NotEmpty(t, env.publisher.queries[0].Stamp)
}

func TestCVShapesCustomPatterns(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/cv-shapes/test?pattern=C+V&pattern=VV")
	require.Equal(t, http.StatusOK, w.Code)
	var resp results.ShapeCountsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, results.ShapeCountItem{Pattern: "C V", Count: 3}, resp.Items[0])
	assert.Equal(t, "V V", resp.Items[1].Pattern)
	// a i, a o, a u, e i, i o, o u, u i, i o, o u
	assert.Equal(t, 9, resp.Items[1].Count)
}

func TestCVShapesCustomVowels(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/cv-shapes/other?pattern=CVC&vowels=a")
	require.Equal(t, http.StatusOK, w.Code)
	var resp results.ShapeCountsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a"}, resp.Vowels)
	assert.Equal(t, 1, resp.Items[0].Count)
}

func TestCVShapesInvalidPattern(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/cv-shapes/test?pattern=CXV")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.publisher.queries)
}

func TestUnknownCorpus(t *testing.T) {
	env := setupTestEnv(t)
	assert.Equal(t, http.StatusNotFound, env.get("/cv-shapes/foo").Code)
	assert.Equal(t, http.StatusNotFound, env.get("/oe/foo?segments=a+e").Code)
	assert.Equal(t, http.StatusNotFound, env.get("/info/foo").Code)
}

func TestPairOESegments(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/oe/test?segments=a+e+i+o+u&digits=3")
	require.Equal(t, http.StatusOK, w.Code)
	var resp results.OEMatrixResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a", "e", "i", "o", "u"}, resp.Inventory)
	assert.Equal(t, 10, resp.TotalPairs)
	assert.Equal(t, 3, resp.Digits)
	assert.Equal(t, "all", resp.Policy)
	assert.Equal(t, 4, resp.Marginals["a"])
	require.NotNil(t, resp.Matrix[0][1])
	assert.InDelta(t, 1.25, *resp.Matrix[0][1], 1e-9)
	assert.Empty(t, resp.Warning)
}

func TestPairOENamedInventory(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/oe/test?inventory=vowels")
	require.Equal(t, http.StatusOK, w.Code)
	var resp results.OEMatrixResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"a", "e", "i", "o", "u"}, resp.Inventory)
	assert.Equal(t, phon.DefaultRoundDigits, resp.Digits)
}

func TestPairOENoPairs(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/oe/test?inventory=dorsals")
	require.Equal(t, http.StatusOK, w.Code)
	var resp results.OEMatrixResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.TotalPairs)
	assert.NotEmpty(t, resp.Warning)
	for _, p := range resp.Pairs {
		assert.Nil(t, p.OE)
	}
}

func TestPairOEEmptySegments(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/oe/test?segments=+")
	require.Equal(t, http.StatusOK, w.Code)
	var resp results.OEMatrixResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{}, resp.Inventory)
	assert.Empty(t, resp.Matrix)
	assert.Empty(t, resp.Pairs)
	assert.Equal(t, 0, resp.TotalPairs)
	assert.NotEmpty(t, resp.Warning)
}

func TestCachedResultsNotLogged(t *testing.T) {
	env := setupTestEnv(t)
	require.Equal(t, http.StatusOK, env.get("/oe/test?segments=a+i").Code)
	assert.Equal(t, 1, env.logger.numJobs)

	env.publisher.cached = true
	require.Equal(t, http.StatusOK, env.get("/oe/test?segments=a+i").Code)
	require.Equal(t, http.StatusOK, env.get("/cv-shapes/test").Code)
	assert.Equal(t, 1, env.logger.numJobs)
}

func TestPairOEInvalidArgs(t *testing.T) {
	env := setupTestEnv(t)
	assert.Equal(t, http.StatusBadRequest, env.get("/oe/test").Code)
	assert.Equal(t, http.StatusBadRequest, env.get("/oe/test?inventory=vowels&segments=a").Code)
	assert.Equal(t, http.StatusNotFound, env.get("/oe/test?inventory=labials").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, env.get("/oe/test?segments=a+e&digits=16").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, env.get("/oe/test?segments=a+e&digits=-1").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, env.get("/oe/test?segments=a+e&policy=foo").Code)
	assert.Empty(t, env.publisher.queries)
}

func TestCorpusInfo(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/info/test")
	require.Equal(t, http.StatusOK, w.Code)
	var resp results.CorpusInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data)
	assert.Equal(t, "test", resp.Data.ID)
	assert.Equal(t, 6, resp.Data.NumWords)
	assert.Equal(t, []string{"vowels", "dorsals"}, resp.Data.Inventories)
}

func TestCorplist(t *testing.T) {
	env := setupTestEnv(t)
	w := env.get("/corplist")
	require.Equal(t, http.StatusOK, w.Code)
	var resp corplistResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Corpora, 2)
	assert.Equal(t, "test", resp.Corpora[0].ID)
	assert.Equal(t, "other", resp.Corpora[1].ID)

	w = env.get("/corplist?filter=oth")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Corpora, 1)
}
