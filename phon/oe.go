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
	"errors"
	"fmt"
	"math"
)

const (
	DefaultRoundDigits = 2
	MaxRoundDigits     = 15
)

var (
	ErrNoPairs       = errors.New("no segment pairs found in the corpus - O/E is undefined")
	ErrInvalidDigits = errors.New("invalid number of decimal places")
)

// Round rounds val to the specified number of decimal places.
// Exact halves are rounded to the nearest even digit (0.125 => 0.12).
func Round(val float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.RoundToEven(val*p) / p
}

// PairStat describes one ordered pair of segments.
// Expected and OE values are meaningful only if the respective
// ...Defined flag is true.
type PairStat struct {
	Observed        int
	Expected        float64
	ExpectedDefined bool
	OE              float64
	OERounded       float64
	OEDefined       bool
}

// OETable contains O/E statistics for all the ordered pairs
// of an inventory.
type OETable struct {
	Inventory  Inventory
	Marginals  map[string]int
	TotalPairs int
	NumWords   int
	Digits     int
	stats      map[PairKey]PairStat
}

// Get returns statistics for the (s1, s2) pair. For segments
// outside the inventory, a zero (undefined) value is returned.
func (t *OETable) Get(s1, s2 string) PairStat {
	return t.stats[PairKey{s1, s2}]
}

// HasData tells whether there was at least one pair to base
// the expected values on.
func (t *OETable) HasData() bool {
	return t.TotalPairs > 0
}

// ComputeOE calculates expected values and observed/expected ratios:
//
//	expected(s1, s2) = N(s1) * N(s2) / N(all pairs)
//	OE(s1, s2) = N(s1 s2) / expected(s1, s2)
//
// In case there are no pairs at all, a table with all the values
// undefined is returned along with ErrNoPairs. A pair with zero
// expected value (i.e. one of the segments never occurs) has an
// undefined O/E while other pairs are not affected.
func ComputeOE(freqs *PairFreqs, digits int) (*OETable, error) {
	if digits < 0 || digits > MaxRoundDigits {
		return nil, fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidDigits, digits, MaxRoundDigits)
	}
	ans := &OETable{
		Inventory:  freqs.Inventory,
		Marginals:  make(map[string]int, len(freqs.Marginals)),
		TotalPairs: freqs.TotalPairs,
		NumWords:   freqs.NumWords,
		Digits:     digits,
		stats:      make(map[PairKey]PairStat, len(freqs.Inventory)*len(freqs.Inventory)),
	}
	for k, v := range freqs.Marginals {
		ans.Marginals[k] = v
	}
	for _, s1 := range freqs.Inventory {
		for _, s2 := range freqs.Inventory {
			key := PairKey{s1, s2}
			stat := PairStat{Observed: freqs.Observed[key]}
			if freqs.TotalPairs > 0 {
				stat.Expected = float64(freqs.Marginals[s1]) * float64(freqs.Marginals[s2]) /
					float64(freqs.TotalPairs)
				stat.ExpectedDefined = true
				if stat.Expected > 0 {
					stat.OE = float64(stat.Observed) / stat.Expected
					stat.OERounded = Round(stat.OE, digits)
					stat.OEDefined = true
				}
			}
			ans.stats[key] = stat
		}
	}
	if freqs.TotalPairs == 0 {
		return ans, ErrNoPairs
	}
	return ans, nil
}
