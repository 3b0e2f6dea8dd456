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
	"strings"
)

var (
	ErrInvalidPattern = errors.New("invalid CV pattern")

	defaultPatterns = []string{
		"C V C",
		"C V C C",
		"C V V C",
		"C V C C C",
		"C C C",
		"C C V C",
		"C C",
		"V C V",
		"V V",
		"V C C V",
		"V C C C V",
	}
)

// Pattern is a validated CV shape, e.g. "C V C"
type Pattern struct {
	symbols []ClassSymbol
}

// ParsePattern accepts both the space separated notation ("C V C")
// and the compact one ("CVC"). Any symbol other than C or V
// is rejected.
func ParsePattern(s string) (Pattern, error) {
	var ans Pattern
	for _, item := range strings.Fields(s) {
		for _, r := range item {
			switch r {
			case 'C':
				ans.symbols = append(ans.symbols, C)
			case 'V':
				ans.symbols = append(ans.symbols, V)
			default:
				return Pattern{}, fmt.Errorf(
					"%w: unsupported symbol %q in `%s` (only C and V are allowed)",
					ErrInvalidPattern, r, s,
				)
			}
		}
	}
	if len(ans.symbols) == 0 {
		return Pattern{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	return ans, nil
}

// MustParsePattern is like ParsePattern but panics on invalid input
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

func ParsePatterns(items []string) ([]Pattern, error) {
	ans := make([]Pattern, 0, len(items))
	for _, item := range items {
		p, err := ParsePattern(item)
		if err != nil {
			return nil, err
		}
		ans = append(ans, p)
	}
	return ans, nil
}

// DefaultPatterns returns the eleven canonical shapes searched
// when no custom pattern is requested.
func DefaultPatterns() []Pattern {
	ans := make([]Pattern, len(defaultPatterns))
	for i, v := range defaultPatterns {
		ans[i] = MustParsePattern(v)
	}
	return ans
}

func (p Pattern) Len() int {
	return len(p.symbols)
}

func (p Pattern) String() string {
	return ClassString(p.symbols)
}

func (p Pattern) matchesAt(classes []ClassSymbol, pos int) bool {
	for j, sym := range p.symbols {
		if classes[pos+j] != sym {
			return false
		}
	}
	return true
}

// CountOverlapping counts all positions where the pattern matches.
// After a match at i the search continues at i+1, so "V C V"
// occurs twice in "V C V C V".
func CountOverlapping(classes []ClassSymbol, p Pattern) int {
	var ans int
	for i := 0; i+len(p.symbols) <= len(classes); i++ {
		if p.matchesAt(classes, i) {
			ans++
		}
	}
	return ans
}

// ---------------------------

// ShapeCounts holds accumulated counts of searched CV patterns.
type ShapeCounts struct {
	Patterns []Pattern
	Vowels   Inventory
	NumWords int
	counts   map[string]int
}

// Count returns the number of (overlapping) occurrences of p.
// For patterns which were not searched, zero is returned.
func (sc *ShapeCounts) Count(p Pattern) int {
	return sc.counts[p.String()]
}

// CountOf is like Count but accepts the textual form of a pattern
func (sc *ShapeCounts) CountOf(pattern string) int {
	p, err := ParsePattern(pattern)
	if err != nil {
		return 0
	}
	return sc.Count(p)
}

// CountShapes classifies each word using the vowel inventory
// and sums overlapping occurrences of each pattern over
// the whole corpus. Repeated patterns are searched only once.
func CountShapes(corpus Corpus, patterns []Pattern, vowels Inventory) *ShapeCounts {
	ans := &ShapeCounts{
		Patterns: make([]Pattern, 0, len(patterns)),
		Vowels:   vowels,
		NumWords: len(corpus),
		counts:   make(map[string]int, len(patterns)),
	}
	for _, p := range patterns {
		if _, ok := ans.counts[p.String()]; ok {
			continue
		}
		ans.counts[p.String()] = 0
		ans.Patterns = append(ans.Patterns, p)
	}
	vset := vowels.Set()
	for _, word := range corpus {
		classes := Classify(word, vset)
		for _, p := range ans.Patterns {
			ans.counts[p.String()] += CountOverlapping(classes, p)
		}
	}
	return ans
}
