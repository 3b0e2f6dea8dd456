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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"phonostat/phon"

	"github.com/czcorpus/cnc-gokit/fs"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DfltCorpusFileSuffix = ".txt"
	DfltValidationJobs   = 4
)

// CorpusSetup is a configuration of a single word list
type CorpusSetup struct {
	ID          string `json:"id"`
	Path        string `json:"path"`
	Description string `json:"description"`

	// Vowels is a space separated list of vowel segments used
	// by CV shape analysis. If empty, phon.DefaultVowels is used.
	Vowels string `json:"vowels"`

	// Inventories contains named segment inventories
	// (e.g. "dorsals": "k q g G") usable in O/E calculations
	// by their names.
	Inventories map[string]string `json:"inventories"`
}

// VowelInventory returns configured vowels or the default ones
func (cs *CorpusSetup) VowelInventory() phon.Inventory {
	if cs.Vowels == "" {
		return phon.ParseInventory(phon.DefaultVowels)
	}
	return phon.ParseInventory(cs.Vowels)
}

// Inventory returns a named inventory. The name "vowels"
// is always available.
func (cs *CorpusSetup) Inventory(name string) (phon.Inventory, bool) {
	if v, ok := cs.Inventories[name]; ok {
		return phon.ParseInventory(v), true
	}
	if name == "vowels" {
		return cs.VowelInventory(), true
	}
	return nil, false
}

func (cs *CorpusSetup) ValidateAndDefaults(dataDir string) error {
	if cs.ID == "" {
		return fmt.Errorf("missing corpus `id`")
	}
	if cs.Path == "" {
		cs.Path = cs.ID + DfltCorpusFileSuffix
		log.Warn().
			Str("corpus", cs.ID).
			Str("path", cs.Path).
			Msg("corpus `path` not specified, using default")
	}
	if !filepath.IsAbs(cs.Path) {
		cs.Path = filepath.Join(dataDir, cs.Path)
	}
	for name, inv := range cs.Inventories {
		items := phon.ParseInventory(inv)
		if len(items) == 0 {
			return fmt.Errorf("corpus %s: inventory `%s` is empty", cs.ID, name)
		}
		if dups := items.Duplicates(); len(dups) > 0 {
			log.Warn().
				Str("corpus", cs.ID).
				Str("inventory", name).
				Strs("duplicates", dups).
				Msg("inventory contains duplicate segments")
		}
	}
	return nil
}

// ------

// CorporaSetup defines a root configuration of corpora
type CorporaSetup struct {
	DataDir   string         `json:"dataDir"`
	Resources []*CorpusSetup `json:"resources"`

	// ZeroConfCorpora allows using any `<corpusID>.txt` file
	// found in DataDir without an explicit configuration
	ZeroConfCorpora bool `json:"zeroConfCorpora"`
}

func (cs *CorporaSetup) get(corpusID string) *CorpusSetup {
	for _, v := range cs.Resources {
		if v.ID == corpusID {
			return v
		}
	}
	return nil
}

// GetCorp returns a corpus configuration or nil if not found
func (cs *CorporaSetup) GetCorp(corpusID string) *CorpusSetup {
	if c := cs.get(corpusID); c != nil {
		return c
	}
	if !cs.ZeroConfCorpora || strings.ContainsAny(corpusID, "/\\") || corpusID == "" {
		return nil
	}
	path := filepath.Join(cs.DataDir, corpusID+DfltCorpusFileSuffix)
	isFile, err := fs.IsFile(path)
	if err != nil || !isFile {
		return nil
	}
	return &CorpusSetup{ID: corpusID, Path: path}
}

// GetAllCorpora lists all the available corpora. If substrFilter
// is non-empty, only corpora with matching (case insensitive) IDs
// are returned.
func (cs *CorporaSetup) GetAllCorpora(substrFilter string) ([]*CorpusSetup, error) {
	ans := make([]*CorpusSetup, 0, len(cs.Resources))
	matches := func(id string) bool {
		return substrFilter == "" ||
			strings.Contains(strings.ToLower(id), strings.ToLower(substrFilter))
	}
	for _, v := range cs.Resources {
		if matches(v.ID) {
			ans = append(ans, v)
		}
	}
	if !cs.ZeroConfCorpora {
		return ans, nil
	}
	files, err := os.ReadDir(cs.DataDir)
	if err != nil {
		return ans, fmt.Errorf("failed to get list of corpus files: %w", err)
	}
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), DfltCorpusFileSuffix) {
			continue
		}
		id := strings.TrimSuffix(f.Name(), DfltCorpusFileSuffix)
		if cs.get(id) == nil && matches(id) {
			ans = append(ans, &CorpusSetup{ID: id, Path: filepath.Join(cs.DataDir, f.Name())})
		}
	}
	return ans, nil
}

func (cs *CorporaSetup) ValidateAndDefaults(confContext string) error {
	if cs == nil {
		return fmt.Errorf("missing configuration section `%s`", confContext)
	}
	if cs.DataDir == "" {
		return fmt.Errorf("missing `%s.dataDir`", confContext)
	}
	isDir, err := fs.IsDir(cs.DataDir)
	if err != nil {
		return fmt.Errorf("failed to test `%s.dataDir`: %w", confContext, err)
	}
	if !isDir {
		return fmt.Errorf("`%s.dataDir` is not a directory", confContext)
	}
	ids := make(map[string]bool)
	for _, v := range cs.Resources {
		if err := v.ValidateAndDefaults(cs.DataDir); err != nil {
			return fmt.Errorf("invalid `%s.resources`: %w", confContext, err)
		}
		if ids[v.ID] {
			return fmt.Errorf("duplicate corpus `%s` in `%s.resources`", v.ID, confContext)
		}
		ids[v.ID] = true
	}
	return nil
}

// ValidateFiles tries to load all the configured corpora and reports
// the first error encountered. Files are read concurrently.
func (cs *CorporaSetup) ValidateFiles(confContext string) error {
	var eg errgroup.Group
	eg.SetLimit(DfltValidationJobs)
	for _, v := range cs.Resources {
		eg.Go(func() error {
			corp, err := LoadFile(v.Path)
			if err != nil {
				return fmt.Errorf("`%s.resources`, corpus %s: %w", confContext, v.ID, err)
			}
			log.Info().
				Str("corpus", v.ID).
				Int("numWords", len(corp)).
				Msg("corpus file OK")
			return nil
		})
	}
	return eg.Wait()
}
