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
	"fmt"
	"sort"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/rs/zerolog/log"
)

// SnapshotMerger folds possibly-partial character scans into the stored
// collection. A scan is never treated as authoritative: cumulative values
// only grow, and characters missing from a scan are retained.
type SnapshotMerger struct {
	store CharacterStore
}

func NewSnapshotMerger(store CharacterStore) *SnapshotMerger {
	return &SnapshotMerger{store: store}
}

// Merge combines one scan with the stored collection and replaces the stored
// collection with the result.
func (m *SnapshotMerger) Merge(scan []database.WoWCharacter) error {
	stored, err := m.store.WoWCharacters()
	if err != nil {
		return fmt.Errorf("failed to load stored characters: %w", err)
	}

	merged := mergeCharacters(stored, scan)

	if err := m.store.ReplaceWoWCharacters(merged); err != nil {
		return fmt.Errorf("failed to store merged characters: %w", err)
	}

	log.Debug().
		Int("scanned", len(scan)).
		Int("stored", len(stored)).
		Int("merged", len(merged)).
		Msg("merged character snapshot")

	return nil
}

// mergeCharacters merges a scan into the stored collection. Per key each
// attribute is merged independently under a total order, so the result does
// not depend on scan order or on how observations are batched into scans.
// Keys absent from the scan survive unchanged, and the result is sorted by
// key so repeated merges are deterministic.
func mergeCharacters(stored, scan []database.WoWCharacter) []database.WoWCharacter {
	byKey := make(map[string]database.WoWCharacter, len(stored)+len(scan))

	for i := range stored {
		byKey[stored[i].Key()] = stored[i]
	}

	for i := range scan {
		observed := scan[i]
		key := observed.Key()

		existing, ok := byKey[key]
		if !ok {
			byKey[key] = observed
			continue
		}

		byKey[key] = mergeCharacter(existing, observed)
	}

	merged := make([]database.WoWCharacter, 0, len(byKey))
	for _, char := range byKey {
		merged = append(merged, char)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Key() < merged[j].Key()
	})

	return merged
}

// mergeCharacter combines two observations of the same character. Every
// field is merged on its own: the cumulative total and the observation time
// take the max of both sides, and class and level each follow their own
// sighting time. Picking the max under a total order per field makes the
// merge commutative, associative, and idempotent, so neither scan order nor
// how observations are grouped into scans changes the outcome.
func mergeCharacter(a, b database.WoWCharacter) database.WoWCharacter {
	merged := a

	if b.TotalSeconds > merged.TotalSeconds {
		merged.TotalSeconds = b.TotalSeconds
	}
	if b.LastUpdated.After(merged.LastUpdated) {
		merged.LastUpdated = b.LastUpdated
	}
	merged.Class, merged.ClassUpdated = joinClass(a, b)
	merged.Level, merged.LevelUpdated = joinLevel(a, b)

	return merged
}

// joinClass picks the class sighting that wins between two observations. An
// empty class means the attribute was never seen and always loses. Otherwise
// the later sighting wins, with equal times broken by the greater class name
// so the choice stays total.
func joinClass(a, b database.WoWCharacter) (string, time.Time) {
	switch {
	case a.Class == "" && b.Class == "":
		return "", time.Time{}
	case a.Class == "":
		return b.Class, b.ClassUpdated
	case b.Class == "":
		return a.Class, a.ClassUpdated
	case a.ClassUpdated.Before(b.ClassUpdated):
		return b.Class, b.ClassUpdated
	case b.ClassUpdated.Before(a.ClassUpdated):
		return a.Class, a.ClassUpdated
	case a.Class < b.Class:
		return b.Class, b.ClassUpdated
	default:
		return a.Class, a.ClassUpdated
	}
}

// joinLevel is the level counterpart of joinClass, with zero as the
// never-seen value and the higher level breaking sighting-time ties.
func joinLevel(a, b database.WoWCharacter) (int, time.Time) {
	switch {
	case a.Level == 0 && b.Level == 0:
		return 0, time.Time{}
	case a.Level == 0:
		return b.Level, b.LevelUpdated
	case b.Level == 0:
		return a.Level, a.LevelUpdated
	case a.LevelUpdated.Before(b.LevelUpdated):
		return b.Level, b.LevelUpdated
	case b.LevelUpdated.Before(a.LevelUpdated):
		return a.Level, a.LevelUpdated
	case a.Level < b.Level:
		return b.Level, b.LevelUpdated
	default:
		return a.Level, a.LevelUpdated
	}
}
