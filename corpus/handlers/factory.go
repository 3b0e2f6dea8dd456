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

package handlers

import (
	"phonostat/cnf"
	"phonostat/corpus"
)

type Actions struct {
	conf      *corpus.CorporaSetup
	analysis  *cnf.AnalysisConf
	radapter  QueryPublisher
	jobLogger JobLogger
}

// NewActions creates handlers for corpus analyses. The jobLogger
// is optional (nil).
func NewActions(
	conf *corpus.CorporaSetup,
	analysis *cnf.AnalysisConf,
	radapter QueryPublisher,
	jobLogger JobLogger,
) *Actions {
	return &Actions{
		conf:      conf,
		analysis:  analysis,
		radapter:  radapter,
		jobLogger: jobLogger,
	}
}
