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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"phonostat/merror"
	"phonostat/phon"

	"github.com/czcorpus/cnc-gokit/fs"
)

const (
	maxLineSize = 1024 * 1024
	utf8BOM     = "\ufeff"
)

var (
	ErrCorpusNotFound = errors.New("corpus not found")
)

// Read reads a word list with one word per line and segments
// separated by spaces, e.g.:
//
//	p a t a
//	p i k u b e
//	s a mb u k i
//
// Empty lines are skipped.
func Read(r io.Reader) (phon.Corpus, error) {
	ans := make(phon.Corpus, 0, 1000)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var lineNum int
	for scanner.Scan() {
		line := scanner.Text()
		if lineNum == 0 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		lineNum++
		word := phon.ParseWord(line)
		if len(word) == 0 {
			continue
		}
		ans = append(ans, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus (line %d): %w", lineNum+1, err)
	}
	return ans, nil
}

// LoadFile loads a word list from a file. A missing file is reported
// as merror.InputError wrapping ErrCorpusNotFound.
func LoadFile(path string) (phon.Corpus, error) {
	isFile, err := fs.IsFile(path)
	if err != nil || !isFile {
		return nil, fmt.Errorf(
			"%w: %w", merror.NewInputError("cannot read corpus file %s", path), ErrCorpusNotFound)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file %s: %w", path, err)
	}
	defer f.Close()
	corp, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return corp, nil
}
