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

package gamevault

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Petlus/UltimateGametimeTracker/pkg/shared/httpclient"
)

const (
	// SourceUbisoft is the provider and watermark source name for Ubisoft
	// Connect.
	SourceUbisoft = "ubisoft"

	ubiAPIHost = "https://public-ubiservices.ubi.com"

	// ubiAppID identifies the Ubisoft Connect web client to the services API.
	ubiAppID = "314d4fef-e568-454a-ae06-43e3bece12a6"
)

// ubiCredential is the stored credential blob for the Ubisoft provider.
type ubiCredential struct {
	Ticket    string `json:"ticket"`
	ProfileID string `json:"profile_id"`
	SessionID string `json:"session_id"`
}

// ubiGamesResponse is the subset of the Ubisoft playtime payload this
// service consumes.
type ubiGamesResponse struct {
	Games []struct {
		SpaceID         string `json:"spaceId"`
		Title           string `json:"title"`
		PlaytimeMinutes int64  `json:"totalPlaytimeMinutes"`
	} `json:"games"`
}

// UbisoftProvider fetches the per-game playtime listing from the Ubisoft
// services API.
type UbisoftProvider struct {
	http *httpclient.Client
	host string
}

func NewUbisoftProvider() *UbisoftProvider {
	return &UbisoftProvider{
		http: httpclient.NewClient(),
		host: ubiAPIHost,
	}
}

func (p *UbisoftProvider) Name() string { return SourceUbisoft }

func (p *UbisoftProvider) Games(ctx context.Context, credential []byte) ([]OwnedGame, error) {
	var cred ubiCredential
	if err := json.Unmarshal(credential, &cred); err != nil {
		return nil, fmt.Errorf("corrupt ubisoft credential blob: %w", err)
	}
	if cred.Ticket == "" || cred.ProfileID == "" {
		return nil, ErrNoCredentials
	}

	reqURL := fmt.Sprintf("%s/v1/profiles/%s/games/playtime", p.host, cred.ProfileID)
	headers := map[string]string{
		"Authorization": "ubi_v1 t=" + cred.Ticket,
		"Ubi-AppId":     ubiAppID,
		"Ubi-SessionId": cred.SessionID,
	}

	var resp ubiGamesResponse
	if err := p.http.GetJSON(ctx, reqURL, headers, &resp); err != nil {
		return nil, err
	}

	games := make([]OwnedGame, 0, len(resp.Games))
	for _, g := range resp.Games {
		games = append(games, OwnedGame{
			ID:           g.SpaceID,
			Title:        g.Title,
			TotalMinutes: g.PlaytimeMinutes,
		})
	}
	return games, nil
}
