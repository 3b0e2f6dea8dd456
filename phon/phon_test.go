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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkCorpus(lines ...string) Corpus {
	ans := make(Corpus, len(lines))
	for i, line := range lines {
		ans[i] = ParseWord(line)
	}
	return ans
}

func TestParseInventory(t *testing.T) {
	inv := ParseInventory("  ph t  tʃ ")
	assert.Equal(t, Inventory{"ph", "t", "tʃ"}, inv)
	assert.True(t, inv.Contains("tʃ"))
	assert.False(t, inv.Contains("ʃ"))
	assert.Equal(t, "ph t tʃ", inv.String())
}

func TestInventoryDuplicates(t *testing.T) {
	inv := ParseInventory("a e a i e a")
	assert.Equal(t, []string{"a", "e"}, inv.Duplicates())
	assert.Empty(t, ParseInventory(DefaultVowels).Duplicates())
}

func TestClassifyWholeSegments(t *testing.T) {
	vowels := ParseInventory(DefaultVowels).Set()
	assert.Equal(t, "C V C V", ClassString(Classify(ParseWord("p a t a"), vowels)))
	// "t" must not be matched inside "tʃ" and vice versa
	assert.Equal(t, "C V C", ClassString(Classify(ParseWord("tʃ a t"), vowels)))
	assert.Equal(t, "C V C", ClassString(Classify(ParseWord("p̩ʲ u mb"), vowels)))
}

func TestClassifyMultiCharVowel(t *testing.T) {
	vowels := ParseInventory("a aː e").Set()
	assert.Equal(t, "C V V C", ClassString(Classify(ParseWord("k aː a t"), vowels)))
}

func TestClassifyEmptyWord(t *testing.T) {
	assert.Equal(t, "", ClassString(Classify(Word{}, nil)))
}

func TestParsePattern(t *testing.T) {
	p, err := ParsePattern("C V C")
	assert.NoError(t, err)
	assert.Equal(t, 3, p.Len())
	assert.Equal(t, "C V C", p.String())

	p, err = ParsePattern("CVCC")
	assert.NoError(t, err)
	assert.Equal(t, "C V C C", p.String())
}

func TestParsePatternInvalid(t *testing.T) {
	_, err := ParsePattern("C X C")
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Contains(t, err.Error(), "'X'")

	_, err = ParsePattern("c v")
	assert.ErrorIs(t, err, ErrInvalidPattern)

	_, err = ParsePattern("   ")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestParsePatternsStopsOnFirstError(t *testing.T) {
	ans, err := ParsePatterns([]string{"C V", "C-V"})
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.Nil(t, ans)
}

func TestDefaultPatterns(t *testing.T) {
	pp := DefaultPatterns()
	assert.Len(t, pp, 11)
	assert.Equal(t, "C V C", pp[0].String())
	assert.Equal(t, "V C C C V", pp[10].String())
}

func TestCountOverlapping(t *testing.T) {
	vowels := ParseInventory(DefaultVowels).Set()
	classes := Classify(ParseWord("a t a t a"), vowels)
	assert.Equal(t, 2, CountOverlapping(classes, MustParsePattern("V C V")))
	assert.Equal(t, 2, CountOverlapping(classes, MustParsePattern("C V")))
	assert.Equal(t, 0, CountOverlapping(classes, MustParsePattern("V V")))
	assert.Equal(t, 0, CountOverlapping(classes, MustParsePattern("V C V C V C")))
}

func TestCountOverlappingRepeatedSymbolLaw(t *testing.T) {
	vv := MustParsePattern("V V")
	for n := 1; n <= 12; n++ {
		word := ParseWord(strings.TrimSpace(strings.Repeat("a ", n)))
		sc := CountShapes(Corpus{word}, []Pattern{vv}, ParseInventory(DefaultVowels))
		assert.Equal(t, n-1, sc.Count(vv), "word length %d", n)
	}
}

func TestCountShapesScenario(t *testing.T) {
	corp := mkCorpus("p a t a", "p i k u b e", "s a mb u k i")
	sc := CountShapes(corp, DefaultPatterns(), ParseInventory(DefaultVowels))
	assert.Equal(t, 3, sc.NumWords)
	// C V C V, C V C V C V, C V C V C V
	assert.Equal(t, 1+2+2, sc.CountOf("V C V"))
	assert.Equal(t, 1+2+2, sc.CountOf("C V C"))
	assert.Equal(t, 0, sc.CountOf("C C"))
	assert.Equal(t, 0, sc.CountOf("V V"))

	single := CountShapes(mkCorpus("p a t a"), []Pattern{MustParsePattern("V C V")}, ParseInventory(DefaultVowels))
	assert.Equal(t, 1, single.CountOf("VCV"))
}

func TestCountShapesKeepsOrderAndZeroes(t *testing.T) {
	pp, err := ParsePatterns([]string{"V V", "C C", "V V"})
	require.NoError(t, err)
	sc := CountShapes(Corpus{}, pp, ParseInventory(DefaultVowels))
	assert.Len(t, sc.Patterns, 2)
	assert.Equal(t, "V V", sc.Patterns[0].String())
	assert.Equal(t, "C C", sc.Patterns[1].String())
	assert.Equal(t, 0, sc.CountOf("V V"))
	assert.Equal(t, 0, sc.CountOf("C C"))
	assert.Equal(t, 0, sc.CountOf("not searched"))
}

func TestCountShapesUpperBound(t *testing.T) {
	corp := mkCorpus("a a a", "t", "a t a a t a", "")
	p := MustParsePattern("V")
	sc := CountShapes(corp, []Pattern{p, MustParsePattern("V V")}, ParseInventory(DefaultVowels))
	var bound int
	for _, w := range corp {
		if v := len(w) - 2 + 1; v > 0 {
			bound += v
		}
	}
	assert.LessOrEqual(t, sc.CountOf("V V"), bound)
	assert.Equal(t, 7, sc.Count(p))
}

func TestCollectPairsFiltersAdjacency(t *testing.T) {
	corp := mkCorpus("p a t i", "a k a")
	freqs := CollectPairs(corp, ParseInventory("a i"), MarginalsAllTokens)
	assert.Equal(t, 1, freqs.Observed[PairKey{"a", "i"}])
	assert.Equal(t, 1, freqs.Observed[PairKey{"a", "a"}])
	assert.Equal(t, 0, freqs.Observed[PairKey{"i", "a"}])
	assert.Equal(t, 0, freqs.Observed[PairKey{"i", "i"}])
	assert.Equal(t, 2, freqs.TotalPairs)
	assert.Equal(t, 3, freqs.Marginals["a"])
	assert.Equal(t, 1, freqs.Marginals["i"])
	assert.Len(t, freqs.Observed, 4)
}

func TestCollectPairsSumEqualsTotal(t *testing.T) {
	corp := mkCorpus("p a t a", "p i k u b e", "s a mb u k i", "k a tʃ o", "a", "e e e")
	for _, inv := range []string{DefaultVowels, "p k tʃ mb", "a", "x"} {
		freqs := CollectPairs(corp, ParseInventory(inv), MarginalsAllTokens)
		var sum int
		for _, v := range freqs.Observed {
			sum += v
		}
		assert.Equal(t, freqs.TotalPairs, sum, "inventory %s", inv)
	}
}

func TestCollectPairsMarginalPolicy(t *testing.T) {
	corp := mkCorpus("p a t", "a i")
	all := CollectPairs(corp, ParseInventory("a i"), MarginalsAllTokens)
	assert.Equal(t, 2, all.Marginals["a"])
	assert.Equal(t, 1, all.Marginals["i"])
	assert.Equal(t, 1, all.TotalPairs)

	paired := CollectPairs(corp, ParseInventory("a i"), MarginalsPairedWordsOnly)
	assert.Equal(t, 1, paired.Marginals["a"])
	assert.Equal(t, 1, paired.Marginals["i"])
	assert.Equal(t, 1, paired.TotalPairs)
	assert.Equal(t, 2, paired.NumWords)

	dflt := CollectPairs(corp, ParseInventory("a i"), "")
	assert.Equal(t, MarginalsAllTokens, dflt.Policy)
}

func TestMarginalPolicyValidate(t *testing.T) {
	assert.NoError(t, MarginalsAllTokens.Validate())
	assert.NoError(t, MarginalsPairedWordsOnly.Validate())
	assert.Error(t, MarginalPolicy("foo").Validate())
}

func TestCollectPairsWordOutsideInventory(t *testing.T) {
	corp := mkCorpus("p t k", "a e")
	freqs := CollectPairs(corp, ParseInventory(DefaultVowels), MarginalsAllTokens)
	withoutCons := CollectPairs(mkCorpus("a e"), ParseInventory(DefaultVowels), MarginalsAllTokens)
	assert.Equal(t, withoutCons.Marginals, freqs.Marginals)
	assert.Equal(t, withoutCons.Observed, freqs.Observed)
	assert.Equal(t, withoutCons.TotalPairs, freqs.TotalPairs)
}

func scenarioBCorpus() Corpus {
	return mkCorpus(
		"p a t e",
		"a i",
		"k a o",
		"a u",
		"e i",
		"i o u i o u",
	)
}

func TestComputeOEScenario(t *testing.T) {
	freqs := CollectPairs(scenarioBCorpus(), ParseInventory(DefaultVowels), MarginalsAllTokens)
	require.Equal(t, 4, freqs.Marginals["a"])
	require.Equal(t, 2, freqs.Marginals["e"])
	require.Equal(t, 10, freqs.TotalPairs)

	table, err := ComputeOE(freqs, DefaultRoundDigits)
	require.NoError(t, err)
	ae := table.Get("a", "e")
	assert.Equal(t, 1, ae.Observed)
	assert.True(t, ae.ExpectedDefined)
	assert.InDelta(t, 0.8, ae.Expected, 1e-12)
	assert.True(t, ae.OEDefined)
	assert.InDelta(t, 1.25, ae.OE, 1e-12)
	assert.InDelta(t, 1.25, ae.OERounded, 1e-12)
	assert.True(t, table.HasData())
}

func TestComputeOEExpectedLaw(t *testing.T) {
	corp := mkCorpus("p a t a", "p i k u b e", "s a mb u k i", "k a tʃ o", "o o a")
	freqs := CollectPairs(corp, ParseInventory(DefaultVowels), MarginalsAllTokens)
	table, err := ComputeOE(freqs, 3)
	require.NoError(t, err)
	for _, s1 := range table.Inventory {
		for _, s2 := range table.Inventory {
			exp := float64(freqs.Marginals[s1]) * float64(freqs.Marginals[s2]) / float64(freqs.TotalPairs)
			st := table.Get(s1, s2)
			assert.InDelta(t, exp, st.Expected, 1e-9)
			if st.OEDefined {
				assert.Equal(t, Round(st.OE, 3), st.OERounded)
			}
		}
	}
}

func TestComputeOEIsIdempotent(t *testing.T) {
	freqs := CollectPairs(scenarioBCorpus(), ParseInventory(DefaultVowels), MarginalsAllTokens)
	t1, err1 := ComputeOE(freqs, 2)
	t2, err2 := ComputeOE(freqs, 2)
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, t1, t2)
}

func TestComputeOERoundingPrecision(t *testing.T) {
	// pairs: a i, i a, i i, a a => a: 4, i: 3, expected(a, i) = 4 * 3 / 4 = 3
	corp := mkCorpus("a i a", "i i", "a a")
	freqs := CollectPairs(corp, ParseInventory("a i"), MarginalsAllTokens)
	t3, err := ComputeOE(freqs, 3)
	require.NoError(t, err)
	t2, err := ComputeOE(freqs, 2)
	require.NoError(t, err)
	st3 := t3.Get("a", "i")
	st2 := t2.Get("a", "i")
	require.True(t, st3.OEDefined)
	assert.Equal(t, st3.OE, st2.OE)
	assert.Equal(t, Round(st3.OE, 3), st3.OERounded)
	assert.Equal(t, Round(st3.OE, 2), st2.OERounded)
	assert.InDelta(t, 1.0/3.0, st3.OE, 1e-12)
	assert.InDelta(t, 0.333, st3.OERounded, 1e-12)
	assert.InDelta(t, 0.33, st2.OERounded, 1e-12)
}

func TestComputeOEEmptyCorpus(t *testing.T) {
	freqs := CollectPairs(Corpus{}, ParseInventory(DefaultVowels), MarginalsAllTokens)
	table, err := ComputeOE(freqs, 2)
	assert.ErrorIs(t, err, ErrNoPairs)
	require.NotNil(t, table)
	assert.False(t, table.HasData())
	for _, s1 := range table.Inventory {
		for _, s2 := range table.Inventory {
			st := table.Get(s1, s2)
			assert.False(t, st.ExpectedDefined)
			assert.False(t, st.OEDefined)
			assert.Equal(t, 0, st.Observed)
		}
	}
}

func TestComputeOEZeroMarginal(t *testing.T) {
	freqs := CollectPairs(mkCorpus("a e", "e a"), ParseInventory("a e u"), MarginalsAllTokens)
	table, err := ComputeOE(freqs, 2)
	require.NoError(t, err)
	au := table.Get("a", "u")
	assert.True(t, au.ExpectedDefined)
	assert.Equal(t, 0.0, au.Expected)
	assert.False(t, au.OEDefined)
	ae := table.Get("a", "e")
	assert.True(t, ae.OEDefined)
	// a: 2, e: 2, pairs: 2 => expected(a, e) = 2
	assert.InDelta(t, 0.5, ae.OE, 1e-12)
}

func TestComputeOEInvalidDigits(t *testing.T) {
	freqs := CollectPairs(scenarioBCorpus(), ParseInventory(DefaultVowels), MarginalsAllTokens)
	table, err := ComputeOE(freqs, -1)
	assert.ErrorIs(t, err, ErrInvalidDigits)
	assert.Nil(t, table)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.34, Round(1.3432, 2))
	assert.Equal(t, 1.343, Round(1.3432, 3))
	assert.Equal(t, 1.0, Round(1.3432, 0))
}

func TestRoundHalfToEven(t *testing.T) {
	assert.Equal(t, 0.12, Round(0.125, 2))
	assert.Equal(t, 0.38, Round(0.375, 2))
	assert.Equal(t, 2.0, Round(2.5, 0))
	assert.Equal(t, 4.0, Round(3.5, 0))
}
