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

package results

import (
	"errors"

	"phonostat/corpus"
	"phonostat/phon"
	"phonostat/rdb"

	"github.com/bytedance/sonic"
)

func errToStr(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

func definedOrNil(v float64, defined bool) *float64 {
	if !defined {
		return nil
	}
	return &v
}

// ----

type ShapeCountItem struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

type ShapeCountsResponse struct {
	CorpusID   string           `json:"corpusId"`
	Vowels     []string         `json:"vowels"`
	NumWords   int              `json:"numWords"`
	Items      []ShapeCountItem `json:"items"`
	ResultType rdb.ResultType   `json:"resultType"`
	Error      string           `json:"error,omitempty"`
} // @name ShapeCounts

type ShapeCounts struct {
	CorpusID string
	Vowels   []string
	NumWords int
	Items    []ShapeCountItem
	Error    error
}

func (res ShapeCounts) Err() error {
	return res.Error
}

func (res ShapeCounts) Type() rdb.ResultType {
	return rdb.ResultTypeShapeCounts
}

func (res ShapeCounts) MarshalJSON() ([]byte, error) {
	items := res.Items
	if items == nil {
		items = []ShapeCountItem{}
	}
	return sonic.Marshal(ShapeCountsResponse{
		CorpusID:   res.CorpusID,
		Vowels:     res.Vowels,
		NumWords:   res.NumWords,
		Items:      items,
		ResultType: res.Type(),
		Error:      errToStr(res.Error),
	})
}

func NewShapeCounts(corpusID string, sc *phon.ShapeCounts) ShapeCounts {
	ans := ShapeCounts{
		CorpusID: corpusID,
		Vowels:   sc.Vowels,
		NumWords: sc.NumWords,
		Items:    make([]ShapeCountItem, len(sc.Patterns)),
	}
	for i, p := range sc.Patterns {
		ans.Items[i] = ShapeCountItem{Pattern: p.String(), Count: sc.Count(p)}
	}
	return ans
}

// ----

// PairItem describes one ordered pair of segments. Undefined values
// are encoded as null.
type PairItem struct {
	First     string   `json:"first"`
	Second    string   `json:"second"`
	Observed  int      `json:"observed"`
	Expected  *float64 `json:"expected"`
	OE        *float64 `json:"oe"`
	OERounded *float64 `json:"oeRounded"`
}

type OEMatrixResponse struct {
	CorpusID   string         `json:"corpusId"`
	Inventory  []string       `json:"inventory"`
	Marginals  map[string]int `json:"marginals"`
	TotalPairs int            `json:"totalPairs"`
	NumWords   int            `json:"numWords"`
	Digits     int            `json:"digits"`
	Policy     string         `json:"policy"`
	Pairs      []PairItem     `json:"pairs"`

	// Matrix contains rounded O/E values with rows representing
	// the first segment and columns the second one
	Matrix     [][]*float64   `json:"matrix"`
	ResultType rdb.ResultType `json:"resultType"`

	// Warning reports a state where no value can be calculated
	// (e.g. there are no pairs of inventory segments in the corpus)
	Warning string `json:"warning,omitempty"`
	Error   string `json:"error,omitempty"`
} // @name OEMatrix

type OEMatrix struct {
	CorpusID   string
	Inventory  []string
	Marginals  map[string]int
	TotalPairs int
	NumWords   int
	Digits     int
	Policy     string
	Pairs      []PairItem
	Matrix     [][]*float64
	Warning    string
	Error      error
}

func (res OEMatrix) Err() error {
	return res.Error
}

func (res OEMatrix) Type() rdb.ResultType {
	return rdb.ResultTypePairOE
}

func (res OEMatrix) MarshalJSON() ([]byte, error) {
	pairs := res.Pairs
	if pairs == nil {
		pairs = []PairItem{}
	}
	matrix := res.Matrix
	if matrix == nil {
		matrix = [][]*float64{}
	}
	inventory := res.Inventory
	if inventory == nil {
		inventory = []string{}
	}
	return sonic.Marshal(OEMatrixResponse{
		CorpusID:   res.CorpusID,
		Inventory:  inventory,
		Marginals:  res.Marginals,
		TotalPairs: res.TotalPairs,
		NumWords:   res.NumWords,
		Digits:     res.Digits,
		Policy:     res.Policy,
		Pairs:      pairs,
		Matrix:     matrix,
		ResultType: res.Type(),
		Warning:    res.Warning,
		Error:      errToStr(res.Error),
	})
}

func NewOEMatrix(corpusID string, table *phon.OETable, policy phon.MarginalPolicy) OEMatrix {
	n := len(table.Inventory)
	ans := OEMatrix{
		CorpusID:   corpusID,
		Inventory:  table.Inventory,
		Marginals:  table.Marginals,
		TotalPairs: table.TotalPairs,
		NumWords:   table.NumWords,
		Digits:     table.Digits,
		Policy:     string(policy),
		Pairs:      make([]PairItem, 0, n*n),
		Matrix:     make([][]*float64, n),
	}
	for i, s1 := range table.Inventory {
		ans.Matrix[i] = make([]*float64, n)
		for j, s2 := range table.Inventory {
			st := table.Get(s1, s2)
			item := PairItem{
				First:     s1,
				Second:    s2,
				Observed:  st.Observed,
				Expected:  definedOrNil(st.Expected, st.ExpectedDefined),
				OE:        definedOrNil(st.OE, st.OEDefined),
				OERounded: definedOrNil(st.OERounded, st.OEDefined),
			}
			ans.Pairs = append(ans.Pairs, item)
			ans.Matrix[i][j] = item.OERounded
		}
	}
	return ans
}

// ----

type CorpusInfoResponse struct {
	Data       *corpus.Info   `json:"data"`
	ResultType rdb.ResultType `json:"resultType"`
	Error      string         `json:"error,omitempty"`
} // @name CorpusInfo

type CorpusInfo struct {
	Data  *corpus.Info
	Error error
}

func (res CorpusInfo) Err() error {
	return res.Error
}

func (res CorpusInfo) Type() rdb.ResultType {
	return rdb.ResultTypeCorpusInfo
}

func (res CorpusInfo) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(CorpusInfoResponse{
		Data:       res.Data,
		ResultType: res.Type(),
		Error:      errToStr(res.Error),
	})
}

// ----

type ErrorResult struct {
	Func  string `json:"func"`
	Error string `json:"error"`
}

func (res ErrorResult) Err() error {
	return errors.New(res.Error)
}

func (res ErrorResult) Type() rdb.ResultType {
	return rdb.ResultTypeError
}
