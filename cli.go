// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"phonostat/cnf"
	"phonostat/corpus"
	"phonostat/merror"
	"phonostat/phon"
	"phonostat/table"

	"github.com/rs/zerolog/log"
)

const (
	patternArgDefault = "default"
)

// cliOptions configures one-shot analyses run from the command line
type cliOptions struct {
	outFile    string
	raw        bool
	na         string
	pairedOnly bool

	// conf is optional; if set, corpus arguments are first
	// resolved as configured corpus IDs
	conf *cnf.Conf
}

func (opts cliOptions) analysis() *cnf.AnalysisConf {
	if opts.conf != nil {
		return &opts.conf.Analysis
	}
	return &cnf.AnalysisConf{}
}

func (opts cliOptions) resolveCorpus(arg string) *corpus.CorpusSetup {
	if opts.conf != nil && opts.conf.Corpora != nil {
		if cs := opts.conf.Corpora.GetCorp(arg); cs != nil {
			return cs
		}
	}
	return &corpus.CorpusSetup{
		ID:   strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg)),
		Path: arg,
	}
}

func (opts cliOptions) writeRows(out io.Writer, rows table.Rows) error {
	if opts.outFile != "" {
		if err := table.SaveTSV(opts.outFile, rows); err != nil {
			return err
		}
		log.Info().Str("file", opts.outFile).Int("numRows", len(rows)).Msg("table saved")
		return nil
	}
	return table.WriteTSV(out, rows)
}

func arityError(action, usage string, numArgs int) error {
	return merror.NewInputError(
		"invalid number of arguments (%d) for `%s`, usage: %s", numArgs, action, usage)
}

// runCV counts CV shapes. Arguments: CORPUS [PATTERN|default] [VOWELS]
func runCV(args []string, opts cliOptions, out io.Writer) error {
	var corpusArg, patternArg, vowelsArg string
	switch len(args) {
	case 1:
		corpusArg = args[0]
	case 2:
		corpusArg, patternArg = args[0], args[1]
	case 3:
		corpusArg, patternArg, vowelsArg = args[0], args[1], args[2]
	default:
		return arityError("cv", "cv CORPUS [PATTERN|default] [VOWELS]", len(args))
	}

	var patterns []phon.Pattern
	if patternArg == "" || patternArg == patternArgDefault {
		if len(opts.analysis().Patterns) > 0 {
			var err error
			patterns, err = phon.ParsePatterns(opts.analysis().Patterns)
			if err != nil {
				return err
			}

		} else {
			patterns = phon.DefaultPatterns()
		}

	} else {
		p, err := phon.ParsePattern(patternArg)
		if err != nil {
			return merror.NewInputError("%s", err)
		}
		patterns = []phon.Pattern{p}
	}

	corpusConf := opts.resolveCorpus(corpusArg)
	var vowels phon.Inventory
	if vowelsArg != "" {
		vowels = phon.ParseInventory(vowelsArg)

	} else if corpusConf.Vowels == "" && opts.analysis().Vowels != "" {
		vowels = phon.ParseInventory(opts.analysis().Vowels)

	} else {
		vowels = corpusConf.VowelInventory()
	}
	if len(vowels) == 0 {
		log.Warn().Msg("empty vowel inventory, all segments will be treated as consonants")
	}
	log.Info().Str("corpus", corpusConf.Path).Str("vowels", vowels.String()).Msg("counting CV shapes")

	corp, err := corpus.LoadFile(corpusConf.Path)
	if err != nil {
		return err
	}
	return opts.writeRows(out, table.ShapeRows(phon.CountShapes(corp, patterns, vowels)))
}

func (opts cliOptions) policy() phon.MarginalPolicy {
	if opts.pairedOnly {
		return phon.MarginalsPairedWordsOnly
	}
	if p := opts.analysis().MarginalPolicy; p != "" {
		return phon.MarginalPolicy(p)
	}
	return phon.MarginalsAllTokens
}

// inventoryArg resolves either a named inventory of a configured
// corpus or a space separated list of segments
func inventoryArg(corpusConf *corpus.CorpusSetup, arg string) (phon.Inventory, error) {
	inv, ok := corpusConf.Inventory(arg)
	if !ok {
		inv = phon.ParseInventory(arg)
	}
	if len(inv) == 0 {
		log.Warn().Msg("empty segment inventory, the resulting table will be empty")
	}
	if dups := inv.Duplicates(); len(dups) > 0 {
		log.Warn().Strs("duplicates", dups).Msg("inventory contains duplicate segments")
	}
	return inv, nil
}

func computeOETable(corpusConf *corpus.CorpusSetup, inv phon.Inventory, digits int, policy phon.MarginalPolicy) (*phon.OETable, error) {
	corp, err := corpus.LoadFile(corpusConf.Path)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("corpus", corpusConf.Path).
		Str("inventory", inv.String()).
		Str("policy", string(policy)).
		Msg("calculating O/E values")
	t, err := phon.ComputeOE(phon.CollectPairs(corp, inv, policy), digits)
	if errors.Is(err, phon.ErrNoPairs) {
		log.Warn().Err(err).Msg("all the values will be reported as undefined")
		return t, nil

	} else if errors.Is(err, phon.ErrInvalidDigits) {
		return nil, merror.NewInputError("%s", err)
	}
	return t, err
}

// runOE calculates the O/E grid. Arguments: CORPUS INVENTORY [DIGITS]
func runOE(args []string, opts cliOptions, out io.Writer) error {
	digits := opts.analysis().DefaultRoundDigits()
	switch len(args) {
	case 2:
	case 3:
		var err error
		digits, err = strconv.Atoi(args[2])
		if err != nil {
			return merror.NewInputError("invalid number of decimal places `%s`", args[2])
		}
	default:
		return arityError("oe", "oe CORPUS INVENTORY [DIGITS]", len(args))
	}
	corpusConf := opts.resolveCorpus(args[0])
	inv, err := inventoryArg(corpusConf, args[1])
	if err != nil {
		return err
	}
	t, err := computeOETable(corpusConf, inv, digits, opts.policy())
	if err != nil {
		return err
	}
	return opts.writeRows(out, table.OERows(t, table.Options{Raw: opts.raw, NA: opts.na}))
}

// runCounts writes observed and expected counts. Arguments: CORPUS INVENTORY
func runCounts(args []string, opts cliOptions, out io.Writer) error {
	if len(args) != 2 {
		return arityError("counts", "counts CORPUS INVENTORY", len(args))
	}
	corpusConf := opts.resolveCorpus(args[0])
	inv, err := inventoryArg(corpusConf, args[1])
	if err != nil {
		return err
	}
	t, err := computeOETable(corpusConf, inv, opts.analysis().DefaultRoundDigits(), opts.policy())
	if err != nil {
		return err
	}
	return opts.writeRows(out, table.CountRows(t, table.Options{Raw: opts.raw, NA: opts.na}))
}

func runCLIAction(action string, args []string, opts cliOptions, out io.Writer) error {
	switch action {
	case "cv":
		return runCV(args, opts, out)
	case "oe":
		return runOE(args, opts, out)
	case "counts":
		return runCounts(args, opts, out)
	default:
		return fmt.Errorf("unknown action %s", action)
	}
}
