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

// Package table arranges computed statistics into printable rows.
package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"phonostat/phon"
)

const (
	DfltNA = "NA"
)

// Rows is a list of table rows where the first row is a header
type Rows [][]string

// Options affect how O/E tables are rendered
type Options struct {

	// Raw disables rounding of O/E values
	Raw bool

	// NA is written instead of undefined values
	NA string
}

func (opts Options) na() string {
	if opts.NA == "" {
		return DfltNA
	}
	return opts.NA
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ShapeRows creates a two-column table with CV patterns
// and their counts (in the order the patterns were searched).
func ShapeRows(sc *phon.ShapeCounts) Rows {
	ans := make(Rows, 0, len(sc.Patterns)+1)
	ans = append(ans, []string{"sequence", "count"})
	for _, p := range sc.Patterns {
		ans = append(ans, []string{p.String(), strconv.Itoa(sc.Count(p))})
	}
	return ans
}

// OERows creates an N x N grid of O/E values where rows represent
// the first segment of a pair and columns the second one.
func OERows(t *phon.OETable, opts Options) Rows {
	ans := make(Rows, 0, len(t.Inventory)+1)
	header := make([]string, 0, len(t.Inventory)+1)
	header = append(header, "")
	header = append(header, t.Inventory...)
	ans = append(ans, header)
	for _, s1 := range t.Inventory {
		row := make([]string, 0, len(t.Inventory)+1)
		row = append(row, s1)
		for _, s2 := range t.Inventory {
			st := t.Get(s1, s2)
			switch {
			case !st.OEDefined:
				row = append(row, opts.na())
			case opts.Raw:
				row = append(row, formatFloat(st.OE))
			default:
				row = append(row, strconv.FormatFloat(st.OERounded, 'f', t.Digits, 64))
			}
		}
		ans = append(ans, row)
	}
	return ans
}

// CountRows creates a table with two rows per segment, one with
// observed and one with expected counts of pairs starting with
// the segment.
func CountRows(t *phon.OETable, opts Options) Rows {
	ans := make(Rows, 0, 2*len(t.Inventory)+1)
	header := make([]string, 0, len(t.Inventory)+1)
	header = append(header, "")
	header = append(header, t.Inventory...)
	ans = append(ans, header)
	for _, s1 := range t.Inventory {
		obs := []string{s1 + " observed"}
		exp := []string{s1 + " expected"}
		for _, s2 := range t.Inventory {
			st := t.Get(s1, s2)
			obs = append(obs, strconv.Itoa(st.Observed))
			if st.ExpectedDefined {
				exp = append(exp, formatFloat(st.Expected))

			} else {
				exp = append(exp, opts.na())
			}
		}
		ans = append(ans, obs, exp)
	}
	return ans
}

// WriteTSV writes rows as tab separated values. Cells are written
// as they are (no quoting or escaping).
func WriteTSV(w io.Writer, rows Rows) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := bw.WriteString(strings.Join(row, "\t") + "\n"); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// SaveTSV stores rows to a file (an existing file is overwritten)
func SaveTSV(path string, rows Rows) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save table: %w", err)
	}
	if err := WriteTSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
