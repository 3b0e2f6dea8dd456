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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phonostat/merror"
	"phonostat/phon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testData = "p a t a\np i k u b e\r\n\ns a mb u k i\n"

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRead(t *testing.T) {
	corp, err := Read(strings.NewReader("\ufeff" + testData))
	assert.NoError(t, err)
	assert.Equal(
		t,
		phon.Corpus{
			{"p", "a", "t", "a"},
			{"p", "i", "k", "u", "b", "e"},
			{"s", "a", "mb", "u", "k", "i"},
		},
		corp,
	)
}

func TestReadEmpty(t *testing.T) {
	corp, err := Read(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Len(t, corp, 0)
}

func TestReadLongLine(t *testing.T) {
	line := strings.Repeat("a t ", 100000)
	corp, err := Read(strings.NewReader(line))
	assert.NoError(t, err)
	assert.Len(t, corp, 1)
	assert.Len(t, corp[0], 200000)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrCorpusNotFound))
	assert.True(t, merror.IsInputError(err))
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "quechua.txt", testData)
	corp, err := LoadFile(path)
	assert.NoError(t, err)
	assert.Len(t, corp, 3)
}

func TestCorpusSetupInventory(t *testing.T) {
	cs := CorpusSetup{
		ID:          "quechua",
		Inventories: map[string]string{"dorsals": "k q K Q g G"},
	}
	inv, ok := cs.Inventory("dorsals")
	assert.True(t, ok)
	assert.Equal(t, phon.Inventory{"k", "q", "K", "Q", "g", "G"}, inv)

	inv, ok = cs.Inventory("vowels")
	assert.True(t, ok)
	assert.Equal(t, phon.ParseInventory(phon.DefaultVowels), inv)

	_, ok = cs.Inventory("labials")
	assert.False(t, ok)
}

func TestCorporaSetupValidateAndDefaults(t *testing.T) {
	dir := t.TempDir()
	setup := &CorporaSetup{
		DataDir:   dir,
		Resources: []*CorpusSetup{{ID: "quechua"}},
	}
	assert.NoError(t, setup.ValidateAndDefaults("corpora"))
	assert.Equal(t, filepath.Join(dir, "quechua.txt"), setup.Resources[0].Path)

	var nilSetup *CorporaSetup
	assert.Error(t, nilSetup.ValidateAndDefaults("corpora"))

	setup = &CorporaSetup{DataDir: filepath.Join(dir, "nonexisting")}
	assert.Error(t, setup.ValidateAndDefaults("corpora"))

	setup = &CorporaSetup{
		DataDir:   dir,
		Resources: []*CorpusSetup{{ID: "a"}, {ID: "a"}},
	}
	assert.Error(t, setup.ValidateAndDefaults("corpora"))

	setup = &CorporaSetup{
		DataDir:   dir,
		Resources: []*CorpusSetup{{ID: "a", Inventories: map[string]string{"empty": "  "}}},
	}
	assert.Error(t, setup.ValidateAndDefaults("corpora"))
}

func TestCorporaSetupZeroConf(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quechua.txt", testData)
	writeFile(t, dir, "notes.md", "foo")
	setup := &CorporaSetup{
		DataDir:         dir,
		Resources:       []*CorpusSetup{{ID: "shona", Path: "shona_words.txt"}},
		ZeroConfCorpora: true,
	}
	require.NoError(t, setup.ValidateAndDefaults("corpora"))

	c := setup.GetCorp("quechua")
	require.NotNil(t, c)
	assert.Equal(t, filepath.Join(dir, "quechua.txt"), c.Path)
	assert.Nil(t, setup.GetCorp("notes"))
	assert.Nil(t, setup.GetCorp("../quechua"))

	all, err := setup.GetAllCorpora("")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	filtered, err := setup.GetAllCorpora("QUE")
	assert.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "quechua", filtered[0].ID)

	setup.ZeroConfCorpora = false
	assert.Nil(t, setup.GetCorp("quechua"))
	assert.NotNil(t, setup.GetCorp("shona"))
}

func TestCorporaSetupValidateFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "quechua.txt", testData)
	setup := &CorporaSetup{
		DataDir:   dir,
		Resources: []*CorpusSetup{{ID: "quechua"}},
	}
	require.NoError(t, setup.ValidateAndDefaults("corpora"))
	assert.NoError(t, setup.ValidateFiles("corpora"))

	setup.Resources = append(setup.Resources, &CorpusSetup{ID: "missing", Path: filepath.Join(dir, "missing.txt")})
	err := setup.ValidateFiles("corpora")
	assert.ErrorIs(t, err, ErrCorpusNotFound)
}

func TestGetInfo(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quechua.txt", testData)
	info, err := GetInfo(&CorpusSetup{
		ID:          "quechua",
		Path:        path,
		Vowels:      "a i u",
		Inventories: map[string]string{"stops": "p t k", "labials": "p b m"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, info.NumWords)
	assert.Equal(t, 16, info.NumSegments)
	assert.Equal(t, []string{"a", "i", "u"}, info.Vowels)
	assert.Equal(t, []string{"vowels", "labials", "stops"}, info.Inventories)
	assert.Equal(t, []string{"a", "b", "e", "i", "k", "mb", "p", "s", "t", "u"}, info.Segments)
	assert.Equal(t, int64(len(testData)), info.Size)
}
