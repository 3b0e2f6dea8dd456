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

package corpus

import (
	"fmt"
	"sort"
	"time"

	"github.com/czcorpus/cnc-gokit/fs"
)

// Info provides basic information about a corpus file
type Info struct {
	ID           string    `json:"id"`
	Description  string    `json:"description,omitempty"`
	Vowels       []string  `json:"vowels"`
	Inventories  []string  `json:"inventories"`
	NumWords     int       `json:"numWords"`
	NumSegments  int       `json:"numSegments"`
	Segments     []string  `json:"segments"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// GetInfo loads the corpus and collects its properties
func GetInfo(conf *CorpusSetup) (*Info, error) {
	corp, err := LoadFile(conf.Path)
	if err != nil {
		return nil, err
	}
	ans := &Info{
		ID:          conf.ID,
		Description: conf.Description,
		Vowels:      conf.VowelInventory(),
		Inventories: make([]string, 0, len(conf.Inventories)+1),
		NumWords:    len(corp),
		NumSegments: corp.NumSegments(),
	}
	ans.Inventories = append(ans.Inventories, "vowels")
	for k := range conf.Inventories {
		if k != "vowels" {
			ans.Inventories = append(ans.Inventories, k)
		}
	}
	sort.Strings(ans.Inventories[1:])
	segs := make(map[string]bool)
	for _, w := range corp {
		for _, s := range w {
			segs[s] = true
		}
	}
	ans.Segments = make([]string, 0, len(segs))
	for s := range segs {
		ans.Segments = append(ans.Segments, s)
	}
	sort.Strings(ans.Segments)
	ans.Size, err = fs.FileSize(conf.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to get corpus info: %w", err)
	}
	ans.LastModified, err = fs.GetFileMtime(conf.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to get corpus info: %w", err)
	}
	return ans, nil
}
