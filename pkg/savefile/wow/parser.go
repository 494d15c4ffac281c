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

// Package wow scrapes per-character playtime totals from the tracking
// addon's SavedVariables files.
package wow

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
)

// SavedVariables filenames written by the supported addon versions.
var savedVariablesFiles = []string{
	"UltimateGametimeTracker.lua",
	"PlaytimeTracker.lua",
}

var (
	entryRe        = regexp.MustCompile(`\["(.*?)"\]\s*=\s*\{([^}]*)\}`)
	totalSecondsRe = regexp.MustCompile(`\["totalSeconds"\]\s*=\s*(\d+)`)
	totalTimeRe    = regexp.MustCompile(`\["totalTime"\]\s*=\s*(\d+)`)
	levelRe        = regexp.MustCompile(`\["level"\]\s*=\s*(\d+)`)
	classRe        = regexp.MustCompile(`\["class"\]\s*=\s*"(.*?)"`)
	nameRe         = regexp.MustCompile(`\["name"\]\s*=\s*"(.*?)"`)
	realmRe        = regexp.MustCompile(`\["realm"\]\s*=\s*"(.*?)"`)
)

// versionSegments map install path segments to client version labels,
// checked in order because "_classic_" is a suffix of two of them.
var versionSegments = []struct {
	segment string
	label   string
}{
	{"_retail_", "Retail"},
	{"_classic_era_", "Classic Era"},
	{"_anniversary_", "Anniversary Edition"},
	{"_classic_", "Mists of Pandaria Classic"},
	{"_ptr_", "PTR"},
}

// VersionFromPath derives the client version label from a SavedVariables
// file path.
func VersionFromPath(path string) string {
	for _, v := range versionSegments {
		if strings.Contains(path, v.segment) {
			return v.label
		}
	}
	return "Retail"
}

// ParseSavedVariables extracts character entries from a SavedVariables file
// body. Entries without positive playtime are skipped. Malformed content
// simply yields no entries; a failed scan never clears stored data.
func ParseSavedVariables(content, version string, now time.Time) []database.WoWCharacter {
	matches := entryRe.FindAllStringSubmatch(content, -1)
	chars := make([]database.WoWCharacter, 0, len(matches))

	for _, match := range matches {
		id := match[1]
		block := match[2]

		totalSeconds := extractInt(totalSecondsRe, block)
		if totalSeconds == 0 {
			// Older addon releases wrote totalTime instead.
			totalSeconds = extractInt(totalTimeRe, block)
		}
		if totalSeconds <= 0 {
			continue
		}

		name := extractString(nameRe, block)
		realm := extractString(realmRe, block)
		if name == "" || realm == "" {
			// Fall back to the "Name-Realm" entry key.
			keyName, keyRealm := splitCharacterID(id)
			if name == "" {
				name = keyName
			}
			if realm == "" {
				realm = keyRealm
			}
		}

		char := database.WoWCharacter{
			Name:         strings.ReplaceAll(name, `"`, ""),
			Realm:        strings.ReplaceAll(realm, `"`, ""),
			Class:        extractString(classRe, block),
			Level:        int(extractInt(levelRe, block)),
			TotalSeconds: totalSeconds,
			LastUpdated:  now,
			Version:      version,
		}
		// Sighting times are only stamped for attributes actually present,
		// so a file that omits them never displaces a previously seen value.
		if char.Class != "" {
			char.ClassUpdated = now
		}
		if char.Level > 0 {
			char.LevelUpdated = now
		}

		chars = append(chars, char)
	}

	return chars
}

func splitCharacterID(id string) (name, realm string) {
	name, realm, found := strings.Cut(id, "-")
	if !found {
		return id, "Unknown"
	}
	return name, realm
}

func extractInt(re *regexp.Regexp, block string) int64 {
	match := re.FindStringSubmatch(block)
	if match == nil {
		return 0
	}
	value, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0
	}
	return value
}

func extractString(re *regexp.Regexp, block string) string {
	match := re.FindStringSubmatch(block)
	if match == nil {
		return ""
	}
	return match[1]
}
