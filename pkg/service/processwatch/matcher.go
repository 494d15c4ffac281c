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

package processwatch

import (
	"sort"
	"strings"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/rs/zerolog/log"
)

// builtinGames maps lowercase executable names to canonical game titles.
var builtinGames = map[string]string{
	"wow.exe":          "World of Warcraft",
	"leagueclient.exe": "League of Legends",
	"cs2.exe":          "Counter-Strike 2",
	"valorant.exe":     "Valorant",
	"overwatch.exe":    "Overwatch 2",
	"dota2.exe":        "Dota 2",
	"minecraft.exe":    "Minecraft",
	"javaw.exe":        "Minecraft (Java)",
}

// CustomGameSource provides the user's registered game identities.
type CustomGameSource interface {
	CustomGames() ([]database.CustomGame, error)
}

// Matcher maps raw process identities to canonical game titles using the
// builtin table and the user's custom registrations.
type Matcher struct {
	custom CustomGameSource
}

func NewMatcher(custom CustomGameSource) *Matcher {
	return &Matcher{custom: custom}
}

// Detect returns the deduplicated, sorted set of canonical titles present in
// the process list. Builtin identities match by exact lowercase filename. A
// custom identity with a declared path matches only on exact lowercase path
// equality; without one it matches by exact lowercase filename.
func (m *Matcher) Detect(procs []Process) []string {
	customGames, err := m.custom.CustomGames()
	if err != nil {
		log.Error().Err(err).Msg("failed to load custom games, matching builtins only")
		customGames = nil
	}

	detected := make(map[string]struct{})

	for _, proc := range procs {
		if title, ok := builtinGames[proc.Name]; ok {
			detected[title] = struct{}{}
		}

		for i := range customGames {
			custom := &customGames[i]
			if custom.Executable == "" {
				continue
			}

			if custom.Path != "" {
				if proc.Path == strings.ToLower(custom.Path) {
					detected[custom.Name] = struct{}{}
				}
			} else if proc.Name == strings.ToLower(custom.Executable) {
				detected[custom.Name] = struct{}{}
			}
		}
	}

	titles := make([]string, 0, len(detected))
	for title := range detected {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	return titles
}
