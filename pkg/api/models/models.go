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

package models

import (
	"encoding/json"

	"github.com/Petlus/UltimateGametimeTracker/pkg/service/library"
	"github.com/google/uuid"
)

const (
	MethodVersion             = "version"
	MethodLibrary             = "library"
	MethodSessions            = "sessions"
	MethodSessionsAdd         = "sessions.add"
	MethodStats               = "stats"
	MethodStatsRiot           = "stats.riot"
	MethodWoWCharacters       = "wow.characters"
	MethodGames               = "games"
	MethodGamesAdd            = "games.add"
	MethodGamesDelete         = "games.delete"
	MethodSettings            = "settings"
	MethodSettingsUpdate      = "settings.update"
	MethodRiotLink            = "riot.link"
	MethodRiotSync            = "riot.sync"
	MethodSteamSync           = "steam.sync"
	MethodSteamAccountsAdd    = "steam.accounts.add"
	MethodSteamAccountsDelete = "steam.accounts.delete"
	MethodLaunchersSync       = "launchers.sync"
)

type RequestObject struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uuid.UUID      `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ResponseObject struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
}

// ResponseErrorObject exists for sending errors, so result can be omitted
// from the payload while nil results still serialize on the main
// ResponseObject.
type ResponseErrorObject struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
	Error   *ErrorObject `json:"error"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

type LibraryParams struct {
	MinSeconds *int64 `json:"minSeconds,omitempty" validate:"omitempty,min=0"`
}

type LibraryResponse struct {
	Games []library.Entry `json:"games"`
	Total int             `json:"total"`
}

type SessionsParams struct {
	Limit *int `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

type SessionInfo struct {
	ID              string `json:"id"`
	GameName        string `json:"gameName"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Origin          string `json:"origin"`
	DurationSeconds int    `json:"durationSeconds"`
}

type SessionsResponse struct {
	Sessions []SessionInfo `json:"sessions"`
}

type AddSessionParams struct {
	GameName        string `json:"gameName" validate:"required"`
	EndTime         string `json:"endTime,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DurationSeconds int    `json:"durationSeconds" validate:"required,min=1"`
}

type AddSessionResponse struct {
	ID string `json:"id"`
}

type StatsResponse struct {
	TotalSeconds  int64 `json:"totalSeconds"`
	TotalSessions int   `json:"totalSessions"`
}

type ChampionStats struct {
	Name    string `json:"name"`
	Matches int    `json:"matches"`
	Wins    int    `json:"wins"`
}

type RiotStatsResponse struct {
	TopChampions  []ChampionStats `json:"topChampions"`
	LeagueMatches int             `json:"leagueMatches"`
	LeagueSeconds int64           `json:"leagueSeconds"`
	TFTMatches    int             `json:"tftMatches"`
	TFTSeconds    int64           `json:"tftSeconds"`
}

type WoWCharacterInfo struct {
	Name         string `json:"name"`
	Realm        string `json:"realm"`
	Class        string `json:"class"`
	Version      string `json:"version"`
	Level        int    `json:"level"`
	TotalSeconds int64  `json:"totalSeconds"`
}

type WoWCharactersResponse struct {
	Characters []WoWCharacterInfo `json:"characters"`
}

type CustomGameInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Executable string `json:"executable"`
	Path       string `json:"path,omitempty"`
}

type GamesResponse struct {
	Games []CustomGameInfo `json:"games"`
}

type AddGameParams struct {
	Name       string `json:"name" validate:"required"`
	Executable string `json:"executable" validate:"required"`
	Path       string `json:"path,omitempty"`
}

type DeleteGameParams struct {
	ID string `json:"id" validate:"required,uuid"`
}

type SettingsResponse struct {
	SampleInterval    string   `json:"sampleInterval"`
	LibraryMinSeconds int64    `json:"libraryMinSeconds"`
	ExcludedTitles    []string `json:"excludedTitles"`
	RiotRegion        string   `json:"riotRegion"`
	RiotLinked        bool     `json:"riotLinked"`
	SteamAccountIDs   []string `json:"steamAccountIds"`
	WoWInstallPath    string   `json:"wowInstallPath,omitempty"`
	DebugLogging      bool     `json:"debugLogging"`
}

type UpdateSettingsParams struct {
	WoWInstallPath *string `json:"wowInstallPath,omitempty"`
	DebugLogging   *bool   `json:"debugLogging,omitempty"`
}

type RiotLinkParams struct {
	RiotID string `json:"riotId" validate:"required,contains=#"`
	APIKey string `json:"apiKey,omitempty"`
	Region string `json:"region,omitempty"`
}

type SteamAccountAddParams struct {
	APIKey    string `json:"apiKey,omitempty"`
	AccountID string `json:"accountId,omitempty" validate:"omitempty,numeric"`
	ReturnURL string `json:"returnUrl,omitempty" validate:"omitempty,url"`
}

type SteamAccountDeleteParams struct {
	AccountID string `json:"accountId" validate:"required,numeric"`
}

type SyncResponse struct {
	Added int `json:"added"`
}
