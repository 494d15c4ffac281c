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

package methods

import (
	"fmt"
	"sort"

	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models"
	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models/requests"
)

// topChampionCount caps the champions list in the riot stats response.
const topChampionCount = 10

// HandleRiotStats aggregates the stored match records into per-queue totals
// and a most-played champions list.
func HandleRiotStats(env requests.RequestEnv) (any, error) {
	league, err := env.SyncDB.RiotMatches()
	if err != nil {
		return nil, fmt.Errorf("failed to read league matches: %w", err)
	}
	tft, err := env.SyncDB.TFTMatches()
	if err != nil {
		return nil, fmt.Errorf("failed to read tft matches: %w", err)
	}

	resp := models.RiotStatsResponse{
		LeagueMatches: len(league),
		TFTMatches:    len(tft),
	}

	champions := make(map[string]*models.ChampionStats)
	for i := range league {
		match := &league[i]
		resp.LeagueSeconds += int64(match.DurationSeconds)

		stats, ok := champions[match.ChampionName]
		if !ok {
			stats = &models.ChampionStats{Name: match.ChampionName}
			champions[match.ChampionName] = stats
		}
		stats.Matches++
		if match.Win {
			stats.Wins++
		}
	}

	for i := range tft {
		resp.TFTSeconds += int64(tft[i].DurationSeconds)
	}

	top := make([]models.ChampionStats, 0, len(champions))
	for _, stats := range champions {
		top = append(top, *stats)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Matches != top[j].Matches {
			return top[i].Matches > top[j].Matches
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > topChampionCount {
		top = top[:topChampionCount]
	}
	resp.TopChampions = top

	return resp, nil
}

// HandleWoWCharacters returns the stored character snapshot collection.
func HandleWoWCharacters(env requests.RequestEnv) (any, error) {
	chars, err := env.SyncDB.WoWCharacters()
	if err != nil {
		return nil, fmt.Errorf("failed to read characters: %w", err)
	}

	infos := make([]models.WoWCharacterInfo, 0, len(chars))
	for _, char := range chars {
		class := char.Class
		if class == "" {
			// Legacy addon files carry no class field.
			class = "Unknown"
		}
		infos = append(infos, models.WoWCharacterInfo{
			Name:         char.Name,
			Realm:        char.Realm,
			Class:        class,
			Version:      char.Version,
			Level:        char.Level,
			TotalSeconds: char.TotalSeconds,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].TotalSeconds > infos[j].TotalSeconds
	})

	return models.WoWCharactersResponse{Characters: infos}, nil
}
