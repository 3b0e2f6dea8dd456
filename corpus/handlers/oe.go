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
	"errors"
	"fmt"
	"net/http"

	"phonostat/phon"
	"phonostat/rdb"
	"phonostat/rdb/results"

	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

// PairOE godoc
// @Summary      PairOE
// @Description  Calculate observed/expected ratios of adjacent segment pairs. Segments outside
// @Description  the inventory are removed from words before pairs are collected. Values which
// @Description  cannot be calculated are `null`.
// @Produce      json
// @Param        corpusId path string true "An ID of a corpus"
// @Param        inventory query string false "a name of a configured inventory (`vowels` is always available)"
// @Param        segments query string false "space separated list of segments (an ad-hoc inventory)"
// @Param        digits query int false "number of decimal places of rounded values" minimum(0) maximum(15) default(2)
// @Param        policy query string false "which tokens count toward segment marginals" enums(all, paired) default(all)
// @Success      200 {object} results.OEMatrixResponse
// @Router       /oe/{corpusId} [get]
func (a *Actions) PairOE(ctx *gin.Context) {
	corpusConf, ok := a.corpusOrRespondError(ctx)
	if !ok {
		return
	}
	invName := ctx.Query("inventory")
	segments, hasSegments := ctx.GetQuery("segments")
	if invName != "" && hasSegments {
		uniresp.RespondWithErrorJSON(
			ctx,
			errors.New("cannot use inventory and segments at the same time"),
			http.StatusBadRequest,
		)
		return
	}
	var inventory phon.Inventory
	if hasSegments {
		// a blank list is accepted and yields an empty table
		inventory = phon.ParseInventory(segments)

	} else if invName != "" {
		var found bool
		inventory, found = corpusConf.Inventory(invName)
		if !found {
			uniresp.RespondWithErrorJSON(
				ctx,
				fmt.Errorf("unknown inventory `%s`", invName),
				http.StatusNotFound,
			)
			return
		}

	} else {
		uniresp.RespondWithErrorJSON(
			ctx,
			errors.New("missing inventory (use either `inventory` or `segments`)"),
			http.StatusBadRequest,
		)
		return
	}

	digits, ok := unireq.GetURLIntArgOrFail(ctx, "digits", a.analysis.DefaultRoundDigits())
	if !ok {
		return
	}
	if digits < 0 || digits > phon.MaxRoundDigits {
		uniresp.RespondWithErrorJSON(
			ctx,
			fmt.Errorf("%w: %d (must be between 0 and %d)", phon.ErrInvalidDigits, digits, phon.MaxRoundDigits),
			http.StatusUnprocessableEntity,
		)
		return
	}
	policy := phon.MarginalPolicy(ctx.DefaultQuery("policy", a.analysis.MarginalPolicy))
	if err := policy.Validate(); err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}

	rawResult, ok := a.runQueryOrRespondError(
		ctx,
		rdb.FuncPairOE,
		rdb.PairOEArgs{
			CorpusID:   corpusConf.ID,
			CorpusPath: corpusConf.Path,
			Inventory:  inventory,
			Digits:     digits,
			Policy:     string(policy),
		},
		dataStamp(corpusConf),
	)
	if !ok {
		return
	}
	result, ok := DecodeOrRespondError[results.OEMatrixResponse](
		ctx, rawResult, rdb.ResultTypePairOE)
	if !ok {
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, &result)
}
