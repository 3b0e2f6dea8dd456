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
	"net/http"

	"phonostat/phon"
	"phonostat/rdb"
	"phonostat/rdb/results"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

// CVShapes godoc
// @Summary      CVShapes
// @Description  Count (overlapping) occurrences of consonant/vowel shapes in a word list
// @Produce      json
// @Param        corpusId path string true "An ID of a corpus"
// @Param        pattern query []string false "CV pattern (e.g. `C V C` or `CVC`); can be repeated; if omitted, default patterns are used" collectionFormat(multi)
// @Param        vowels query string false "space separated list of vowel segments"
// @Success      200 {object} results.ShapeCountsResponse
// @Router       /cv-shapes/{corpusId} [get]
func (a *Actions) CVShapes(ctx *gin.Context) {
	corpusConf, ok := a.corpusOrRespondError(ctx)
	if !ok {
		return
	}
	patterns := ctx.QueryArray("pattern")
	if len(patterns) == 0 {
		patterns = a.analysis.Patterns
	}
	// validate here so users get 400 without involving workers
	if _, err := phon.ParsePatterns(patterns); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusBadRequest)
		return
	}

	var vowels phon.Inventory
	if ctx.Query("vowels") != "" {
		vowels = phon.ParseInventory(ctx.Query("vowels"))

	} else if corpusConf.Vowels != "" {
		vowels = corpusConf.VowelInventory()

	} else {
		vowels = phon.ParseInventory(a.analysis.Vowels)
	}
	if len(vowels) == 0 {
		vowels = phon.ParseInventory(phon.DefaultVowels)
	}

	rawResult, ok := a.runQueryOrRespondError(
		ctx,
		rdb.FuncShapeCounts,
		rdb.ShapeCountsArgs{
			CorpusID:   corpusConf.ID,
			CorpusPath: corpusConf.Path,
			Patterns:   patterns,
			Vowels:     vowels,
		},
		dataStamp(corpusConf),
	)
	if !ok {
		return
	}
	result, ok := DecodeOrRespondError[results.ShapeCountsResponse](
		ctx, rawResult, rdb.ResultTypeShapeCounts)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, &result)
}
