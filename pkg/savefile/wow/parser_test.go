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

package wow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSavedVariables = `
UltimateGametimeTrackerDB = {
	["Thrall-Draenor"] = {
		["name"] = "Thrall",
		["realm"] = "Draenor",
		["class"] = "Shaman",
		["level"] = 70,
		["totalSeconds"] = 124500,
	},
	["Jaina-Draenor"] = {
		["name"] = "Jaina",
		["realm"] = "Draenor",
		["class"] = "Mage",
		["level"] = 68,
		["totalSeconds"] = 98000,
	},
	["Fresh-Draenor"] = {
		["name"] = "Fresh",
		["realm"] = "Draenor",
		["class"] = "Priest",
		["level"] = 1,
		["totalSeconds"] = 0,
	},
}
`

func TestParseSavedVariables(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	chars := ParseSavedVariables(sampleSavedVariables, "Retail", now)

	// The zero-playtime character is skipped.
	require.Len(t, chars, 2)

	assert.Equal(t, "Thrall", chars[0].Name)
	assert.Equal(t, "Draenor", chars[0].Realm)
	assert.Equal(t, "Shaman", chars[0].Class)
	assert.Equal(t, 70, chars[0].Level)
	assert.Equal(t, int64(124500), chars[0].TotalSeconds)
	assert.Equal(t, "Retail", chars[0].Version)
	assert.Equal(t, now, chars[0].LastUpdated)
	assert.Equal(t, now, chars[0].ClassUpdated)
	assert.Equal(t, now, chars[0].LevelUpdated)

	assert.Equal(t, "Jaina", chars[1].Name)
	assert.Equal(t, int64(98000), chars[1].TotalSeconds)
}

func TestParseSavedVariablesLegacyTotalTime(t *testing.T) {
	t.Parallel()

	content := `
PlaytimeTrackerDB = {
	["Rexxar-Silvermoon"] = {
		["totalTime"] = 56000,
		["level"] = 60,
	},
}
`
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	chars := ParseSavedVariables(content, "Classic Era", now)
	require.Len(t, chars, 1)

	// Name and realm come from the entry key when the fields are missing.
	assert.Equal(t, "Rexxar", chars[0].Name)
	assert.Equal(t, "Silvermoon", chars[0].Realm)
	assert.Equal(t, int64(56000), chars[0].TotalSeconds)

	// The class field is absent, so no sighting is recorded for it and a
	// later scan that does carry one can fill it in.
	assert.Empty(t, chars[0].Class)
	assert.True(t, chars[0].ClassUpdated.IsZero())
	assert.Equal(t, now, chars[0].LevelUpdated)
}

func TestParseSavedVariablesMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "not lua at all", content: "hello world"},
		{name: "entry without playtime", content: `["Someone-Somewhere"] = { ["level"] = 5, }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, ParseSavedVariables(tt.content, "Retail", time.Now()))
		})
	}
}

func TestVersionFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{`C:\Program Files (x86)\World of Warcraft\_retail_\WTF\Account\X\SavedVariables\UltimateGametimeTracker.lua`, "Retail"},
		{`C:\World of Warcraft\_classic_era_\WTF\Account\X\SavedVariables\UltimateGametimeTracker.lua`, "Classic Era"},
		{`C:\World of Warcraft\_classic_\WTF\Account\X\SavedVariables\UltimateGametimeTracker.lua`, "Mists of Pandaria Classic"},
		{`C:\World of Warcraft\_anniversary_\WTF\Account\X\SavedVariables\PlaytimeTracker.lua`, "Anniversary Edition"},
		{`C:\World of Warcraft\_ptr_\WTF\Account\X\SavedVariables\UltimateGametimeTracker.lua`, "PTR"},
		{`/some/unusual/install/UltimateGametimeTracker.lua`, "Retail"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VersionFromPath(tt.path), tt.path)
	}
}
