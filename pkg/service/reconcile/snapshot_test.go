// Ultimate Gametime Tracker
// Copyright (c) 2026 The Ultimate Gametime Tracker Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Ultimate Gametime Tracker.
//
// Ultimate Gametime Tracker is free software: you can redistribute it and/or
// modify it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Ultimate Gametime Tracker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Ultimate Gametime Tracker.  If not, see <http://www.gnu.org/licenses/>.

package reconcile

import (
	"testing"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fakeCharacterStore struct {
	chars []database.WoWCharacter
}

func (s *fakeCharacterStore) WoWCharacters() ([]database.WoWCharacter, error) {
	out := make([]database.WoWCharacter, len(s.chars))
	copy(out, s.chars)
	return out, nil
}

func (s *fakeCharacterStore) ReplaceWoWCharacters(chars []database.WoWCharacter) error {
	s.chars = make([]database.WoWCharacter, len(chars))
	copy(s.chars, chars)
	return nil
}

func TestSnapshotMergerTotalOnlyGrows(t *testing.T) {
	t.Parallel()

	store := &fakeCharacterStore{}
	merger := NewSnapshotMerger(store)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, merger.Merge([]database.WoWCharacter{
		{Name: "Thrall", Realm: "Draenor", Version: "Retail", TotalSeconds: 5000, Level: 70, LastUpdated: base},
	}))

	// A stale scan reporting less never lowers the stored total.
	require.NoError(t, merger.Merge([]database.WoWCharacter{
		{Name: "Thrall", Realm: "Draenor", Version: "Retail", TotalSeconds: 3000, Level: 68, LastUpdated: base.Add(-time.Hour)},
	}))

	chars, err := store.WoWCharacters()
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, int64(5000), chars[0].TotalSeconds)
	assert.Equal(t, 70, chars[0].Level)
}

func TestSnapshotMergerPartialScanRetainsOthers(t *testing.T) {
	t.Parallel()

	store := &fakeCharacterStore{}
	merger := NewSnapshotMerger(store)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, merger.Merge([]database.WoWCharacter{
		{Name: "Thrall", Realm: "Draenor", Version: "Retail", TotalSeconds: 5000, LastUpdated: base},
		{Name: "Jaina", Realm: "Draenor", Version: "Retail", TotalSeconds: 8000, LastUpdated: base},
	}))

	// Later scan only sees one character; the other survives untouched.
	require.NoError(t, merger.Merge([]database.WoWCharacter{
		{Name: "Thrall", Realm: "Draenor", Version: "Retail", TotalSeconds: 6000, LastUpdated: base.Add(time.Hour)},
	}))

	chars, err := store.WoWCharacters()
	require.NoError(t, err)
	require.Len(t, chars, 2)

	byName := make(map[string]database.WoWCharacter, 2)
	for _, char := range chars {
		byName[char.Name] = char
	}
	assert.Equal(t, int64(6000), byName["Thrall"].TotalSeconds)
	assert.Equal(t, int64(8000), byName["Jaina"].TotalSeconds)
}

func TestSnapshotMergerVersionsAreDistinct(t *testing.T) {
	t.Parallel()

	store := &fakeCharacterStore{}
	merger := NewSnapshotMerger(store)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, merger.Merge([]database.WoWCharacter{
		{Name: "Thrall", Realm: "Draenor", Version: "Retail", TotalSeconds: 5000, LastUpdated: base},
		{Name: "Thrall", Realm: "Draenor", Version: "Classic Era", TotalSeconds: 1000, LastUpdated: base},
	}))

	chars, err := store.WoWCharacters()
	require.NoError(t, err)
	assert.Len(t, chars, 2)
}

func TestSnapshotMergerNewerScanUpdatesAttributes(t *testing.T) {
	t.Parallel()

	store := &fakeCharacterStore{}
	merger := NewSnapshotMerger(store)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, merger.Merge([]database.WoWCharacter{
		{Name: "Arthas", Realm: "Silvermoon", Version: "Retail", TotalSeconds: 100, Level: 10, Class: "Paladin", LastUpdated: base},
	}))
	require.NoError(t, merger.Merge([]database.WoWCharacter{
		{Name: "Arthas", Realm: "Silvermoon", Version: "Retail", TotalSeconds: 200, Level: 20, Class: "Paladin", LastUpdated: base.Add(time.Hour)},
	}))

	chars, err := store.WoWCharacters()
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, 20, chars[0].Level)
	assert.Equal(t, int64(200), chars[0].TotalSeconds)
}

func characterGen() *rapid.Generator[database.WoWCharacter] {
	names := []string{"Thrall", "Jaina", "Arthas", "Sylvanas"}
	realms := []string{"Draenor", "Silvermoon"}
	versions := []string{"Retail", "Classic Era"}
	// Empty class and level zero model addon files that omit the field.
	classes := []string{"", "Shaman", "Warrior", "Paladin"}

	return rapid.Custom(func(t *rapid.T) database.WoWCharacter {
		char := database.WoWCharacter{
			Name:         rapid.SampledFrom(names).Draw(t, "name"),
			Realm:        rapid.SampledFrom(realms).Draw(t, "realm"),
			Version:      rapid.SampledFrom(versions).Draw(t, "version"),
			Class:        rapid.SampledFrom(classes).Draw(t, "class"),
			Level:        rapid.IntRange(0, 80).Draw(t, "level"),
			TotalSeconds: rapid.Int64Range(0, 1_000_000).Draw(t, "totalSeconds"),
			LastUpdated: time.Unix(
				rapid.Int64Range(1_700_000_000, 1_800_000_000).Draw(t, "lastUpdated"), 0),
		}
		if char.Class != "" {
			char.ClassUpdated = char.LastUpdated
		}
		if char.Level > 0 {
			char.LevelUpdated = char.LastUpdated
		}
		return char
	})
}

// TestSnapshotMergerScanOrderWithPartialAttributes pins the case where one
// scan carries two observations of the same character and the newest omits
// the class. The class seen most recently must win in both merge orders.
func TestSnapshotMergerScanOrderWithPartialAttributes(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	scanA := []database.WoWCharacter{
		{
			Name: "Thrall", Realm: "Draenor", Version: "Retail",
			Class: "Shaman", Level: 60, TotalSeconds: 1000,
			LastUpdated: base, ClassUpdated: base, LevelUpdated: base,
		},
		{
			Name: "Thrall", Realm: "Draenor", Version: "Retail",
			TotalSeconds: 3000,
			LastUpdated:  base.Add(2 * time.Hour),
		},
	}
	scanB := []database.WoWCharacter{
		{
			Name: "Thrall", Realm: "Draenor", Version: "Retail",
			Class: "Warrior", Level: 61, TotalSeconds: 2000,
			LastUpdated:  base.Add(time.Hour),
			ClassUpdated: base.Add(time.Hour), LevelUpdated: base.Add(time.Hour),
		},
	}

	ab := &fakeCharacterStore{}
	mergerAB := NewSnapshotMerger(ab)
	require.NoError(t, mergerAB.Merge(scanA))
	require.NoError(t, mergerAB.Merge(scanB))

	ba := &fakeCharacterStore{}
	mergerBA := NewSnapshotMerger(ba)
	require.NoError(t, mergerBA.Merge(scanB))
	require.NoError(t, mergerBA.Merge(scanA))

	assert.Equal(t, ab.chars, ba.chars)

	require.Len(t, ab.chars, 1)
	assert.Equal(t, "Warrior", ab.chars[0].Class)
	assert.Equal(t, 61, ab.chars[0].Level)
	assert.Equal(t, int64(3000), ab.chars[0].TotalSeconds)
}

// TestPropertyMergeOrderIndependent verifies that applying two scans in
// either order yields the same stored collection.
func TestPropertyMergeOrderIndependent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		scanA := rapid.SliceOfN(characterGen(), 0, 6).Draw(t, "scanA")
		scanB := rapid.SliceOfN(characterGen(), 0, 6).Draw(t, "scanB")

		ab := &fakeCharacterStore{}
		mergerAB := NewSnapshotMerger(ab)
		require.NoError(t, mergerAB.Merge(scanA))
		require.NoError(t, mergerAB.Merge(scanB))

		ba := &fakeCharacterStore{}
		mergerBA := NewSnapshotMerger(ba)
		require.NoError(t, mergerBA.Merge(scanB))
		require.NoError(t, mergerBA.Merge(scanA))

		assert.Equal(t, ab.chars, ba.chars)
	})
}

// TestPropertyMergeTotalsMonotonic verifies no merge ever lowers a stored
// character's cumulative total.
func TestPropertyMergeTotalsMonotonic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		store := &fakeCharacterStore{}
		merger := NewSnapshotMerger(store)

		scans := rapid.SliceOfN(rapid.SliceOfN(characterGen(), 0, 4), 1, 5).Draw(t, "scans")

		previous := make(map[string]int64)
		for _, scan := range scans {
			require.NoError(t, merger.Merge(scan))

			for _, char := range store.chars {
				key := char.Key()
				assert.GreaterOrEqual(t, char.TotalSeconds, previous[key])
				previous[key] = char.TotalSeconds
			}
		}
	})
}
