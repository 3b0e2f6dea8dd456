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
)

const (
	DefaultVowels = "a e i o u"
)

// Word is a single corpus entry split into phonetic segments.
// A segment may consist of more than one character (e.g. "tʃ", "pʲ").
type Word []string

// ParseWord splits a corpus line into segments. Any run of
// whitespace acts as a separator.
func ParseWord(line string) Word {
	return Word(strings.Fields(line))
}

// String returns the word with segments separated by single spaces
func (w Word) String() string {
	return strings.Join(w, " ")
}

// Corpus is an in-memory word list
type Corpus []Word

// NumSegments returns the total number of segment tokens in the corpus
func (c Corpus) NumSegments() int {
	var ans int
	for _, w := range c {
		ans += len(w)
	}
	return ans
}

// Inventory is an ordered list of segments a statistic is computed over.
// The order only affects how results are presented. Duplicate entries
// are not removed.
type Inventory []string

// ParseInventory parses a space separated list of segments
// (e.g. "a e i o u" or "ph t tʃ").
func ParseInventory(s string) Inventory {
	return Inventory(strings.Fields(s))
}

func (inv Inventory) Set() map[string]struct{} {
	ans := make(map[string]struct{}, len(inv))
	for _, seg := range inv {
		ans[seg] = struct{}{}
	}
	return ans
}

func (inv Inventory) Contains(seg string) bool {
	for _, v := range inv {
		if v == seg {
			return true
		}
	}
	return false
}

// Duplicates returns segments listed more than once
// (each reported once, in order of their first repetition).
func (inv Inventory) Duplicates() []string {
	seen := make(map[string]int, len(inv))
	ans := make([]string, 0)
	for _, seg := range inv {
		seen[seg]++
		if seen[seg] == 2 {
			ans = append(ans, seg)
		}
	}
	return ans
}

func (inv Inventory) String() string {
	return strings.Join(inv, " ")
}
