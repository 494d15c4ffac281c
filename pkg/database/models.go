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

package database

import (
	"fmt"
	"strings"
	"time"
)

// Session origins. Detected sessions come from the process watcher, manual
// ones from the user, synthetic ones from reconciling external cumulative
// counters.
const (
	OriginDetected  = "detected"
	OriginManual    = "manual"
	OriginSynthetic = "synthetic"
)

// SessionRecord is one finalized play session. Records are append-only and
// never mutated once written.
type SessionRecord struct {
	StartTime       time.Time
	EndTime         time.Time
	ID              string
	GameName        string
	Origin          string
	DurationSeconds int
	DBID            int64
}

// CustomGame is a user-registered game identity. Executable is the lowercase
// process filename; Path, when set, is a lowercase full path that takes
// precedence over the filename match.
type CustomGame struct {
	ID         string
	Name       string
	Executable string
	Path       string
}

// WoWCharacter is one character entry scraped from the addon's SavedVariables
// file. TotalSeconds only ever grows across merges. ClassUpdated and
// LevelUpdated record when the class and level were last actually seen, so
// merging picks each attribute from its most recent sighting independently
// of how scans are ordered or batched.
type WoWCharacter struct {
	LastUpdated  time.Time
	ClassUpdated time.Time
	LevelUpdated time.Time
	Name         string
	Realm        string
	Class        string
	Version      string
	Level        int
	TotalSeconds int64
}

// Key returns the composite identity a character is merged under.
func (c *WoWCharacter) Key() string {
	version := c.Version
	if version == "" {
		version = "unknown"
	}
	return strings.ToLower(fmt.Sprintf("%s-%s-%s", c.Name, c.Realm, version))
}

// SteamGame is one title from a linked Steam account's owned-games listing.
// PlaytimeMinutes is the summed total across all linked accounts.
type SteamGame struct {
	Name            string
	IconURL         string
	AppID           int
	PlaytimeMinutes int
}

// RiotMatch is an immutable League of Legends match record, keyed by the
// externally issued match ID.
type RiotMatch struct {
	ID              string
	ChampionName    string
	ChampionID      int
	QueueID         int
	Timestamp       int64
	DurationSeconds int
	Win             bool
}

// TFTMatch is an immutable Teamfight Tactics match record.
type TFTMatch struct {
	ID              string
	Traits          []string
	Units           []string
	Placement       int
	QueueID         int
	Timestamp       int64
	DurationSeconds int
}
