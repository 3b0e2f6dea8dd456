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

	"phonostat/rdb"
	"phonostat/rdb/results"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type corpusCompactInfo struct {
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`
}

type corplistResponse struct {
	Corpora []corpusCompactInfo `json:"corpora"`
} // @name Corplist

// CorpusInfo godoc
// @Summary      CorpusInfo
// @Description  Get information about a word list (number of words, segments, configured inventories)
// @Produce      json
// @Param        corpusId path string true "An ID of a corpus"
// @Success      200 {object} results.CorpusInfoResponse
// @Router       /info/{corpusId} [get]
func (a *Actions) CorpusInfo(ctx *gin.Context) {
	corpusConf, ok := a.corpusOrRespondError(ctx)
	if !ok {
		return
	}
	rawResult, ok := a.runQueryOrRespondError(
		ctx,
		rdb.FuncCorpusInfo,
		rdb.CorpusInfoArgs{
			CorpusID:    corpusConf.ID,
			CorpusPath:  corpusConf.Path,
			Description: corpusConf.Description,
			Vowels:      corpusConf.Vowels,
			Inventories: corpusConf.Inventories,
		},
		dataStamp(corpusConf),
	)
	if !ok {
		return
	}
	result, ok := DecodeOrRespondError[results.CorpusInfoResponse](
		ctx, rawResult, rdb.ResultTypeCorpusInfo)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, &result)
}

// Corplist godoc
// @Summary      Corplist
// @Description  List available word lists
// @Produce      json
// @Param        filter query string false "Return only corpora with IDs containing the value"
// @Success      200 {object} corplistResponse
// @Router       /corplist [get]
func (a *Actions) Corplist(ctx *gin.Context) {
	allCorpora, err := a.conf.GetAllCorpora(ctx.Query("filter"))
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionErrorFrom(err),
			http.StatusInternalServerError,
		)
		return
	}
	ans := corplistResponse{Corpora: make([]corpusCompactInfo, len(allCorpora))}
	for i, v := range allCorpora {
		ans.Corpora[i] = corpusCompactInfo{
			ID:          v.ID,
			Description: v.Description,
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, &ans)
}
