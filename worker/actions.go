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
	"errors"
	"fmt"

	"phonostat/corpus"
	"phonostat/merror"
	"phonostat/phon"
	"phonostat/rdb"
	"phonostat/rdb/results"
)

func shapeCounts(cache *CorpusCache, args rdb.ShapeCountsArgs) results.ShapeCounts {
	ans := results.ShapeCounts{CorpusID: args.CorpusID}
	patterns := phon.DefaultPatterns()
	if len(args.Patterns) > 0 {
		var err error
		patterns, err = phon.ParsePatterns(args.Patterns)
		if err != nil {
			ans.Error = merror.InputError{Msg: err.Error()}
			return ans
		}
	}
	vowels := phon.Inventory(args.Vowels)
	if len(vowels) == 0 {
		vowels = phon.ParseInventory(phon.DefaultVowels)
	}
	corp, err := cache.Get(args.CorpusPath)
	if err != nil {
		ans.Error = err
		return ans
	}
	return results.NewShapeCounts(args.CorpusID, phon.CountShapes(corp, patterns, vowels))
}

func pairOE(cache *CorpusCache, args rdb.PairOEArgs) results.OEMatrix {
	ans := results.OEMatrix{CorpusID: args.CorpusID}
	policy := phon.MarginalPolicy(args.Policy)
	if policy == "" {
		policy = phon.MarginalsAllTokens
	}
	if err := policy.Validate(); err != nil {
		ans.Error = merror.InputError{Msg: err.Error()}
		return ans
	}
	corp, err := cache.Get(args.CorpusPath)
	if err != nil {
		ans.Error = err
		return ans
	}
	freqs := phon.CollectPairs(corp, phon.Inventory(args.Inventory), policy)
	table, err := phon.ComputeOE(freqs, args.Digits)
	if errors.Is(err, phon.ErrInvalidDigits) {
		ans.Error = merror.InputError{Msg: err.Error()}
		return ans
	}
	ans = results.NewOEMatrix(args.CorpusID, table, policy)
	if errors.Is(err, phon.ErrNoPairs) {
		ans.Warning = err.Error()

	} else if err != nil {
		ans.Error = fmt.Errorf("failed to calculate O/E values: %w", err)
	}
	return ans
}

func corpusInfo(args rdb.CorpusInfoArgs) results.CorpusInfo {
	var ans results.CorpusInfo
	info, err := corpus.GetInfo(&corpus.CorpusSetup{
		ID:          args.CorpusID,
		Path:        args.CorpusPath,
		Description: args.Description,
		Vowels:      args.Vowels,
		Inventories: args.Inventories,
	})
	if err != nil {
		ans.Error = err
		return ans
	}
	ans.Data = info
	return ans
}
