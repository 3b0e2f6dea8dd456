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
	"fmt"
)

const (
	FuncShapeCounts = "shapeCounts"
	FuncPairOE      = "pairOE"
	FuncCorpusInfo  = "corpusInfo"
)

type ShapeCountsArgs struct {
	CorpusID   string   `json:"corpusId"`
	CorpusPath string   `json:"corpusPath"`
	Patterns   []string `json:"patterns"`
	Vowels     []string `json:"vowels"`
}

type PairOEArgs struct {
	CorpusID   string   `json:"corpusId"`
	CorpusPath string   `json:"corpusPath"`
	Inventory  []string `json:"inventory"`
	Digits     int      `json:"digits"`
	Policy     string   `json:"policy"`
}

type CorpusInfoArgs struct {
	CorpusID    string            `json:"corpusId"`
	CorpusPath  string            `json:"corpusPath"`
	Description string            `json:"description"`
	Vowels      string            `json:"vowels"`
	Inventories map[string]string `json:"inventories"`
}

// ----

type Query struct {
	Channel string          `json:"channel"`
	Func    string          `json:"func"`
	Args    json.RawMessage `json:"args"`

	// Stamp identifies the state of the data the query is run on
	// (e.g. a corpus file modification time). It only affects
	// result caching.
	Stamp string `json:"stamp,omitempty"`
}

func (q Query) ToJSON() (string, error) {
	ans, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(ans), nil
}

func NewQuery(fn string, args any) (Query, error) {
	data, err := json.Marshal(args)
	if err != nil {
		return Query{}, fmt.Errorf("failed to create query %s: %w", fn, err)
	}
	return Query{Func: fn, Args: data}, nil
}

func DecodeQuery(q string) (Query, error) {
	var ans Query
	err := json.Unmarshal([]byte(q), &ans)
	return ans, err
}
