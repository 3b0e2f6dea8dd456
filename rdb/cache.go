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
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
)

func (a *Adapter) cacheFilePath(query Query) string {
	hashKey := sha1.Sum(append([]byte(query.Stamp+"\n"), query.Args...))
	return filepath.Join(a.cachePath, query.Func+hex.EncodeToString(hashKey[:]))
}

func (a *Adapter) readCachedResult(path string) (*WorkerResult, bool) {
	pe := fs.PathExists(path)
	isf, _ := fs.IsFile(path)
	if !pe || !isf {
		return nil, false
	}
	content, err := os.ReadFile(path)
	if err != nil {
		log.Err(err).Msgf("Error while reading cache file %s", path)
		return nil, false
	}
	result := new(WorkerResult)
	if err := json.Unmarshal(content, result); err != nil {
		log.Err(err).Msgf("Error while decoding cache file %s", path)
		return nil, false
	}
	result.Cached = true
	result.WorkerID = ""
	result.ProcBegin = time.Time{}
	result.ProcEnd = time.Time{}
	return result, true
}

func (a *Adapter) writeCachedResult(path string, result *WorkerResult) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Err(err).Msgf("Error while encoding cache file %s", path)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Err(err).Msgf("Error while writing cache file %s", path)
	}
}

// CacheResult wraps a query function with a file cache. Only
// results without errors are stored. In case the cache path is
// not configured, fn is called directly.
func (a *Adapter) CacheResult(fn func(Query) (<-chan *WorkerResult, error), query Query) (<-chan *WorkerResult, error) {
	if len(a.cachePath) == 0 {
		return fn(query)
	}
	path := a.cacheFilePath(query)
	if cached, ok := a.readCachedResult(path); ok {
		log.Debug().Str("func", query.Func).Str("path", path).Msg("cache hit")
		ans := make(chan *WorkerResult, 1)
		ans <- cached
		close(ans)
		return ans, nil
	}

	wr, err := fn(query)
	if err != nil {
		return wr, err
	}
	ans := make(chan *WorkerResult, 1)
	go func() {
		defer close(ans)
		rawResult := <-wr
		if rawResult != nil && rawResult.Error == "" && rawResult.ResultType != ResultTypeError {
			a.writeCachedResult(path, rawResult)
		}
		ans <- rawResult
	}()
	return ans, nil
}
