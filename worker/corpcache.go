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
	"sync"
	"time"

	"phonostat/corpus"
	"phonostat/phon"

	"github.com/czcorpus/cnc-gokit/fs"
)

type cachedCorpus struct {
	data  phon.Corpus
	mtime time.Time
}

// CorpusCache keeps loaded corpora in memory. An entry is reloaded
// once the modification time of its file changes.
type CorpusCache struct {
	sync.Mutex
	data map[string]cachedCorpus
}

func (cc *CorpusCache) Get(path string) (phon.Corpus, error) {
	mtime, err := fs.GetFileMtime(path)
	if err != nil {
		// let the loader produce a proper (user) error
		return corpus.LoadFile(path)
	}
	cc.Lock()
	defer cc.Unlock()
	v, ok := cc.data[path]
	if ok && v.mtime.Equal(mtime) {
		return v.data, nil
	}
	corp, err := corpus.LoadFile(path)
	if err != nil {
		return nil, err
	}
	cc.data[path] = cachedCorpus{data: corp, mtime: mtime}
	return corp, nil
}

func (cc *CorpusCache) Size() int {
	cc.Lock()
	defer cc.Unlock()
	return len(cc.data)
}

func NewCorpusCache() *CorpusCache {
	return &CorpusCache{
		data: make(map[string]cachedCorpus),
	}
}
