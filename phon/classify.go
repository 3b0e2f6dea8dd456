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

import "strings"

// ClassSymbol is a coarse segment class used by CV shapes
type ClassSymbol byte

const (
	C ClassSymbol = 'C'
	V ClassSymbol = 'V'
)

func (cs ClassSymbol) String() string {
	return string(rune(cs))
}

// Classify maps each segment of the word to V (the segment is
// a member of vowels) or C (anything else). Whole segments are
// compared so e.g. "t" never matches inside "tʃ".
func Classify(word Word, vowels map[string]struct{}) []ClassSymbol {
	ans := make([]ClassSymbol, len(word))
	for i, seg := range word {
		if _, ok := vowels[seg]; ok {
			ans[i] = V

		} else {
			ans[i] = C
		}
	}
	return ans
}

// ClassString renders class symbols the same way patterns
// are written, i.e. space separated ("C V C V").
func ClassString(classes []ClassSymbol) string {
	var sb strings.Builder
	for i, cs := range classes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(byte(cs))
	}
	return sb.String()
}
