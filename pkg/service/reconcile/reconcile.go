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

// Package reconcile converts source-specific playtime signals into the
// shared data model without double-counting. Three strategies exist, one per
// source semantic: monotonic cumulative counters become incremental synthetic
// sessions, possibly-partial collection snapshots are max-merged, and
// immutable discrete records are ingested at most once per ID.
package reconcile

import "github.com/Petlus/UltimateGametimeTracker/pkg/database"

// SessionWriter appends finalized records to the session ledger.
type SessionWriter interface {
	AddSession(record *database.SessionRecord) (int64, error)
}

// WatermarkStore persists the last processed cumulative value per
// (source, entity) pair.
type WatermarkStore interface {
	Watermark(source, entityID string) (int64, error)
	SetWatermark(source, entityID string, value int64) error
}

// CharacterStore persists the per-character snapshot collection.
type CharacterStore interface {
	WoWCharacters() ([]database.WoWCharacter, error)
	ReplaceWoWCharacters(chars []database.WoWCharacter) error
}

// RecordStore persists discrete records keyed by externally issued IDs.
type RecordStore interface {
	HasRecord(kind, id string) (bool, error)
	PutRecord(kind, id string, payload []byte) error
}
