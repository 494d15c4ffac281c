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

// Package library builds the unified per-title playtime view from the
// session ledger and the independent source stores.
package library

import (
	"fmt"
	"sort"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
)

// Titles the external stores map onto in the aggregated view.
const (
	titleWorldOfWarcraft  = "World of Warcraft"
	titleLeagueOfLegends  = "League of Legends"
	titleTeamfightTactics = "Teamfight Tactics"
)

// Entry is one ranked row of the library view.
type Entry struct {
	GameName     string `json:"gameName"`
	TotalSeconds int64  `json:"totalSeconds"`
}

// LedgerReader provides the summed session durations per title.
type LedgerReader interface {
	SessionTotals() (map[string]int64, error)
}

// SourceReader provides the independently derived per-title totals from the
// snapshot and discrete-record stores.
type SourceReader interface {
	WoWCharacters() ([]database.WoWCharacter, error)
	SteamGames() ([]database.SteamGame, error)
	RiotMatches() ([]database.RiotMatch, error)
	TFTMatches() ([]database.TFTMatch, error)
}

// Options filter the aggregated view.
type Options struct {
	ExcludedTitles []string
	MinSeconds     int64
}

// Aggregator combines all stores into one ranked per-title view.
type Aggregator struct {
	ledger  LedgerReader
	sources SourceReader
}

func NewAggregator(ledger LedgerReader, sources SourceReader) *Aggregator {
	return &Aggregator{ledger: ledger, sources: sources}
}

// Build produces the ranked library. Per title the ledger total and any
// independently derived total are combined with max, never summed: the same
// hour of play can be visible both as detected sessions and in an external
// counter, and adding them would double-count it.
func (a *Aggregator) Build(opts Options) ([]Entry, error) {
	totals, err := a.ledger.SessionTotals()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger totals: %w", err)
	}

	// Copy so repeated builds never see each other's adjustments.
	byTitle := make(map[string]int64, len(totals))
	for title, total := range totals {
		byTitle[title] = total
	}

	if err := a.applyWoW(byTitle); err != nil {
		return nil, err
	}
	if err := a.applySteam(byTitle); err != nil {
		return nil, err
	}
	if err := a.applyMatches(byTitle); err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(opts.ExcludedTitles))
	for _, title := range opts.ExcludedTitles {
		excluded[title] = struct{}{}
	}

	entries := make([]Entry, 0, len(byTitle))
	for title, total := range byTitle {
		if total < opts.MinSeconds {
			continue
		}
		if _, skip := excluded[title]; skip {
			continue
		}
		entries = append(entries, Entry{GameName: title, TotalSeconds: total})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalSeconds != entries[j].TotalSeconds {
			return entries[i].TotalSeconds > entries[j].TotalSeconds
		}
		return entries[i].GameName < entries[j].GameName
	})

	return entries, nil
}

func (a *Aggregator) applyWoW(byTitle map[string]int64) error {
	chars, err := a.sources.WoWCharacters()
	if err != nil {
		return fmt.Errorf("failed to read character snapshots: %w", err)
	}

	var total int64
	for i := range chars {
		total += chars[i].TotalSeconds
	}
	if total > 0 {
		raise(byTitle, titleWorldOfWarcraft, total)
	}
	return nil
}

func (a *Aggregator) applySteam(byTitle map[string]int64) error {
	games, err := a.sources.SteamGames()
	if err != nil {
		return fmt.Errorf("failed to read steam games: %w", err)
	}

	for i := range games {
		seconds := int64(games[i].PlaytimeMinutes) * 60
		if seconds > 0 {
			raise(byTitle, games[i].Name, seconds)
		}
	}
	return nil
}

func (a *Aggregator) applyMatches(byTitle map[string]int64) error {
	riot, err := a.sources.RiotMatches()
	if err != nil {
		return fmt.Errorf("failed to read riot matches: %w", err)
	}
	var lolTotal int64
	for i := range riot {
		lolTotal += int64(riot[i].DurationSeconds)
	}
	if lolTotal > 0 {
		raise(byTitle, titleLeagueOfLegends, lolTotal)
	}

	tft, err := a.sources.TFTMatches()
	if err != nil {
		return fmt.Errorf("failed to read tft matches: %w", err)
	}
	var tftTotal int64
	for i := range tft {
		tftTotal += int64(tft[i].DurationSeconds)
	}
	if tftTotal > 0 {
		raise(byTitle, titleTeamfightTactics, tftTotal)
	}

	return nil
}

// raise lifts a title's total to the independently derived value when that
// value is higher, keeping the ledger total otherwise.
func raise(byTitle map[string]int64, title string, total int64) {
	if existing, ok := byTitle[title]; !ok || total > existing {
		byTitle[title] = total
	}
}
