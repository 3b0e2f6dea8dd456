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
	"sort"
	"sync"

	"phonostat/rdb"
)

type usageKey struct {
	corpusID string
	fn       string
}

// UsageItem is a number of queries of a single function
// on a single corpus since the last flush
type UsageItem struct {
	CorpusID   string
	Func       string
	NumQueries int
	NumFailed  int
}

// corpusUsage accumulates query counts between two writes
// to the usage table
type corpusUsage struct {
	mu     sync.Mutex
	counts map[usageKey]*UsageItem
}

func (cu *corpusUsage) add(rec rdb.JobLog) {
	cu.mu.Lock()
	defer cu.mu.Unlock()
	k := usageKey{corpusID: rec.CorpusID, fn: rec.Func}
	item, ok := cu.counts[k]
	if !ok {
		item = &UsageItem{CorpusID: rec.CorpusID, Func: rec.Func}
		cu.counts[k] = item
	}
	item.NumQueries++
	if rec.Err != nil {
		item.NumFailed++
	}
}

// drain returns accumulated items (sorted by corpus and function)
// and resets the counter
func (cu *corpusUsage) drain() []UsageItem {
	cu.mu.Lock()
	defer cu.mu.Unlock()
	ans := make([]UsageItem, 0, len(cu.counts))
	for _, v := range cu.counts {
		ans = append(ans, *v)
	}
	cu.counts = make(map[usageKey]*UsageItem)
	sort.Slice(ans, func(i, j int) bool {
		if ans[i].CorpusID != ans[j].CorpusID {
			return ans[i].CorpusID < ans[j].CorpusID
		}
		return ans[i].Func < ans[j].Func
	})
	return ans
}

func (cu *corpusUsage) size() int {
	cu.mu.Lock()
	defer cu.mu.Unlock()
	return len(cu.counts)
}

func newCorpusUsage() *corpusUsage {
	return &corpusUsage{counts: make(map[usageKey]*UsageItem)}
}
