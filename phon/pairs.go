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

package phon

import "fmt"

// MarginalPolicy decides which filtered tokens count toward
// segment marginals.
type MarginalPolicy string

const (

	// MarginalsAllTokens counts every inventory token, even in words
	// where only one inventory token remains after filtering.
	MarginalsAllTokens MarginalPolicy = "all"

	// MarginalsPairedWordsOnly ignores words with less than two
	// inventory tokens entirely (for both pairs and marginals).
	MarginalsPairedWordsOnly MarginalPolicy = "paired"
)

func (mp MarginalPolicy) Validate() error {
	if mp != MarginalsAllTokens && mp != MarginalsPairedWordsOnly {
		return fmt.Errorf("unsupported marginal policy `%s` (supported values are: all, paired)", mp)
	}
	return nil
}

// PairKey is an ordered segment pair
type PairKey struct {
	First  string
	Second string
}

func (pk PairKey) String() string {
	return pk.First + " " + pk.Second
}

// PairFreqs contains raw frequencies needed to calculate O/E values
type PairFreqs struct {
	Inventory  Inventory
	Marginals  map[string]int
	Observed   map[PairKey]int
	TotalPairs int
	NumWords   int
	Policy     MarginalPolicy
}

func newPairFreqs(inv Inventory, policy MarginalPolicy) *PairFreqs {
	ans := &PairFreqs{
		Inventory: inv,
		Marginals: make(map[string]int, len(inv)),
		Observed:  make(map[PairKey]int, len(inv)*len(inv)),
		Policy:    policy,
	}
	for _, s1 := range inv {
		ans.Marginals[s1] = 0
		for _, s2 := range inv {
			ans.Observed[PairKey{s1, s2}] = 0
		}
	}
	return ans
}

// filterWord keeps only inventory segments. Adjacency is then
// defined on the filtered sequence.
func filterWord(word Word, invSet map[string]struct{}) Word {
	ans := make(Word, 0, len(word))
	for _, seg := range word {
		if _, ok := invSet[seg]; ok {
			ans = append(ans, seg)
		}
	}
	return ans
}

// CollectPairs counts segment marginals and adjacent pairs of
// inventory segments. Segments outside the inventory are removed
// from each word first so e.g. with inventory "a i" the word
// "p a t i" yields the pair (a, i).
func CollectPairs(corpus Corpus, inv Inventory, policy MarginalPolicy) *PairFreqs {
	if policy == "" {
		policy = MarginalsAllTokens
	}
	ans := newPairFreqs(inv, policy)
	invSet := inv.Set()
	for _, word := range corpus {
		ans.NumWords++
		filtered := filterWord(word, invSet)
		if len(filtered) < 2 && policy == MarginalsPairedWordsOnly {
			continue
		}
		for i := 0; i+1 < len(filtered); i++ {
			ans.Observed[PairKey{filtered[i], filtered[i+1]}]++
			ans.TotalPairs++
		}
		for _, seg := range filtered {
			ans.Marginals[seg]++
		}
	}
	return ans
}
